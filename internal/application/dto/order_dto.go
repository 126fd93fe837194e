package dto

import "time"

// CreateInboundOrderRequest entrada para crear una orden de entrada.
type CreateInboundOrderRequest struct {
	OrderNumber  string                   `json:"order_number" validate:"required,min=1,max=50"`
	SupplierName string                   `json:"supplier_name" validate:"required,min=1,max=200"`
	ExpectedDate *time.Time               `json:"expected_date,omitempty"`
	Notes        *string                  `json:"notes,omitempty"`
	Items        []InboundOrderItemInput  `json:"items" validate:"required,min=1,dive"`
}

// InboundOrderItemInput línea esperada de una orden de entrada.
type InboundOrderItemInput struct {
	ProductID        string     `json:"product_id" validate:"required"`
	ExpectedQuantity int64      `json:"expected_quantity" validate:"required,gt=0"`
	LotNumber        *string    `json:"lot_number,omitempty"`
	ExpiryDate       *time.Time `json:"expiry_date,omitempty"`
}

// ReceiveItemRequest body para POST /api/inbound-orders/:id/receive.
type ReceiveItemRequest struct {
	ItemID     string `json:"item_id" validate:"required"`
	LocationID string `json:"location_id" validate:"required"`
	Quantity   int64  `json:"quantity" validate:"required,gt=0"`
}

// InboundOrderItemResponse línea de una orden de entrada.
type InboundOrderItemResponse struct {
	ID               string     `json:"id"`
	ProductID        string     `json:"product_id"`
	ExpectedQuantity int64      `json:"expected_quantity"`
	ReceivedQuantity int64      `json:"received_quantity"`
	LotNumber        string     `json:"lot_number,omitempty"`
	ExpiryDate       *time.Time `json:"expiry_date,omitempty"`
}

// InboundOrderResponse salida de una orden de entrada.
type InboundOrderResponse struct {
	ID           string                     `json:"id"`
	OrderNumber  string                     `json:"order_number"`
	SupplierName string                     `json:"supplier_name"`
	Status       string                     `json:"status"`
	ExpectedDate *time.Time                 `json:"expected_date,omitempty"`
	Notes        *string                    `json:"notes,omitempty"`
	Items        []InboundOrderItemResponse `json:"items,omitempty"`
	CreatedAt    time.Time                  `json:"created_at"`
	UpdatedAt    time.Time                  `json:"updated_at"`
}

// CreateOutboundOrderRequest entrada para crear una orden de salida.
type CreateOutboundOrderRequest struct {
	OrderNumber  string                   `json:"order_number" validate:"required,min=1,max=50"`
	CustomerName string                   `json:"customer_name" validate:"required,min=1,max=200"`
	Priority     int                      `json:"priority" validate:"min=0,max=9"`
	ShipDate     *time.Time               `json:"ship_date,omitempty"`
	Notes        *string                  `json:"notes,omitempty"`
	Items        []OutboundOrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// OutboundOrderItemInput línea solicitada de una orden de salida.
type OutboundOrderItemInput struct {
	ProductID         string `json:"product_id" validate:"required"`
	RequestedQuantity int64  `json:"requested_quantity" validate:"required,gt=0"`
}

// ShipItemRequest body para POST /api/outbound-orders/:id/ship.
type ShipItemRequest struct {
	ItemID     string  `json:"item_id" validate:"required"`
	LocationID string  `json:"location_id" validate:"required"`
	Quantity   int64   `json:"quantity" validate:"required,gt=0"`
	LotNumber  *string `json:"lot_number,omitempty"`
}

// OutboundOrderItemResponse línea de una orden de salida.
type OutboundOrderItemResponse struct {
	ID                string `json:"id"`
	ProductID         string `json:"product_id"`
	RequestedQuantity int64  `json:"requested_quantity"`
	PickedQuantity    int64  `json:"picked_quantity"`
}

// OutboundOrderResponse salida de una orden de salida.
type OutboundOrderResponse struct {
	ID           string                      `json:"id"`
	OrderNumber  string                      `json:"order_number"`
	CustomerName string                      `json:"customer_name"`
	Status       string                      `json:"status"`
	Priority     int                         `json:"priority"`
	ShipDate     *time.Time                  `json:"ship_date,omitempty"`
	Notes        *string                     `json:"notes,omitempty"`
	Items        []OutboundOrderItemResponse `json:"items,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}
