package dto

import "time"

// TransferRequest body para POST /api/inventory/transfer.
type TransferRequest struct {
	ProductID      string  `json:"product_id" validate:"required"`
	FromLocationID string  `json:"from_location_id" validate:"required"`
	ToLocationID   string  `json:"to_location_id" validate:"required"`
	Quantity       int64   `json:"quantity" validate:"required,gt=0"`
	LotNumber      *string `json:"lot_number,omitempty"`
	Reason         *string `json:"reason,omitempty"`
}

// TransferResponse resultado de un traslado.
type TransferResponse struct {
	Message        string `json:"message"`
	ProductID      string `json:"product_id"`
	FromLocationID string `json:"from_location_id"`
	ToLocationID   string `json:"to_location_id"`
	Quantity       int64  `json:"quantity"`
	LotNumber      string `json:"lot_number"`
	MovementID     string `json:"movement_id"`
}

// AdjustRequest body para POST /api/inventory/adjust. Quantity puede ser
// negativa (merma) o positiva (hallazgo); nunca cero.
type AdjustRequest struct {
	ProductID  string  `json:"product_id" validate:"required"`
	LocationID string  `json:"location_id" validate:"required"`
	Quantity   int64   `json:"quantity" validate:"required"`
	LotNumber  *string `json:"lot_number,omitempty"`
	Reason     string  `json:"reason" validate:"required"`
}

// AdjustResponse resultado de un ajuste.
type AdjustResponse struct {
	Message     string `json:"message"`
	ProductID   string `json:"product_id"`
	LocationID  string `json:"location_id"`
	NewQuantity int64  `json:"new_quantity"`
	MovementID  string `json:"movement_id"`
}

// CheckStockRequest filtros para GET /api/inventory.
type CheckStockRequest struct {
	ProductID      string `query:"product_id"`
	LocationID     string `query:"location_id"`
	SKU            string `query:"sku"`
	IncludeDetails bool   `query:"include_details"`
}

// StockLineResponse una fila de saldo con contexto de producto y ubicación.
type StockLineResponse struct {
	ProductID    string     `json:"product_id"`
	SKU          string     `json:"sku"`
	ProductName  string     `json:"product_name"`
	LocationID   string     `json:"location_id"`
	LocationCode string     `json:"location_code"`
	Quantity     int64      `json:"quantity"`
	LotNumber    string     `json:"lot_number"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// StockSummaryLine proyección resumida (include_details=false).
type StockSummaryLine struct {
	SKU          string     `json:"sku"`
	LocationCode string     `json:"location_code"`
	Quantity     int64      `json:"quantity"`
	LotNumber    string     `json:"lot_number,omitempty"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
}

// CheckStockResponse salida de la consulta de stock.
type CheckStockResponse struct {
	TotalQuantity int64               `json:"total_quantity"`
	Lines         []StockLineResponse `json:"lines,omitempty"`
	Summary       []StockSummaryLine  `json:"summary,omitempty"`
}

// MovementResponse una fila del libro de movimientos.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	FromLocationID *string   `json:"from_location_id,omitempty"`
	ToLocationID   *string   `json:"to_location_id,omitempty"`
	Quantity       int64     `json:"quantity"`
	Type           string    `json:"type"`
	ReferenceType  *string   `json:"reference_type,omitempty"`
	ReferenceID    *string   `json:"reference_id,omitempty"`
	Reason         *string   `json:"reason,omitempty"`
	PerformedBy    string    `json:"performed_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ListMovementsRequest filtros para GET /api/inventory/movements.
type ListMovementsRequest struct {
	ProductID string `query:"product_id"`
	From      string `query:"from"` // RFC 3339
	To        string `query:"to"`
	PageRequest
}
