package entity

import "time"

// Location representa una ubicación dentro de un almacén.
// Los campos de dirección jerárquica (zona/pasillo/estantería/nivel/casilla) son
// texto libre opcional. Capacity es informativo: no se valida contra los saldos.
type Location struct {
	ID          string
	WarehouseID string
	Code        string
	Zone        *string
	Aisle       *string
	Rack        *string
	Level       *string
	Bin         *string
	Capacity    int64
	IsActive    bool
	CreatedAt   time.Time
}
