package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN       = "IN"       // entrada
	MovementTypeOUT      = "OUT"      // salida
	MovementTypeTRANSFER = "TRANSFER" // traslado entre ubicaciones
	MovementTypeADJUST   = "ADJUST"   // ajuste
)

// Movement es un registro inmutable del libro de movimientos: cada cambio de
// cantidad deja exactamente una fila, que nunca se actualiza ni se borra.
// FromLocationID/ToLocationID pueden faltar según el tipo (entrada pura sin
// origen, salida pura sin destino); Quantity es siempre positiva.
type Movement struct {
	ID             string
	ProductID      string
	FromLocationID *string
	ToLocationID   *string
	Quantity       int64
	Type           string
	ReferenceType  *string // p.ej. "inbound_order" / "outbound_order"
	ReferenceID    *string
	Reason         *string
	PerformedBy    string
	CreatedAt      time.Time
}
