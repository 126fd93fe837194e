package entity

import "time"

// Estados de una orden de entrada.
const (
	InboundStatusPending   = "PENDING"
	InboundStatusReceiving = "RECEIVING"
	InboundStatusCompleted = "COMPLETED"
	InboundStatusCancelled = "CANCELLED"
)

// InboundOrder representa una orden de entrada (recepción) de mercancía.
type InboundOrder struct {
	ID           string
	OrderNumber  string
	SupplierName string
	Status       string
	ExpectedDate *time.Time
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InboundOrderItem es una línea de la orden de entrada. ReceivedQuantity avanza
// con cada recepción parcial hasta alcanzar ExpectedQuantity.
type InboundOrderItem struct {
	ID               string
	OrderID          string
	ProductID        string
	ExpectedQuantity int64
	ReceivedQuantity int64
	LotNumber        string
	ExpiryDate       *time.Time
}
