package repository

import (
	"time"

	"github.com/tu-usuario/wms-core/internal/domain/entity"
)

// MovementRepository define el puerto del libro de movimientos (append-only).
// No existe Update ni Delete: los movimientos son la pista de auditoría.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListRecent(limit, offset int) ([]*entity.Movement, error)
}
