package entity

import "time"

// Estados de una orden de salida.
const (
	OutboundStatusPending   = "PENDING"
	OutboundStatusPicking   = "PICKING"
	OutboundStatusShipped   = "SHIPPED"
	OutboundStatusCancelled = "CANCELLED"
)

// OutboundOrder representa una orden de salida (despacho) de mercancía.
// Priority: 1 = más urgente.
type OutboundOrder struct {
	ID           string
	OrderNumber  string
	CustomerName string
	Status       string
	Priority     int
	ShipDate     *time.Time
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OutboundOrderItem es una línea de la orden de salida.
type OutboundOrderItem struct {
	ID                string
	OrderID           string
	ProductID         string
	RequestedQuantity int64
	PickedQuantity    int64
}
