package entity

import "time"

// Warehouse representa un almacén físico que agrupa ubicaciones.
// IsActive implementa el borrado lógico (soft delete) de datos maestros.
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
