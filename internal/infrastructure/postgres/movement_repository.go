package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/wms-core/internal/domain"
	"github.com/tu-usuario/wms-core/internal/domain/entity"
	"github.com/tu-usuario/wms-core/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, from_location_id, to_location_id, quantity, movement_type, reference_type, reference_id, reason, performed_by, created_at`

// MovementRepo implementación del libro de movimientos sobre PostgreSQL (usable
// con pool o tx). Solo inserta y lista: los movimientos nunca se actualizan ni
// se borran.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento. Exige cantidad positiva y producto conocido;
// no valida nada más (la validación de negocio vive en los casos de uso).
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.Quantity <= 0 || movement.ProductID == "" {
		return domain.ErrInvalidInput
	}
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.FromLocationID, movement.ToLocationID,
		movement.Quantity, movement.Type, movement.ReferenceType, movement.ReferenceID,
		movement.Reason, movement.PerformedBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto en un rango de fechas.
func (r *MovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(query, args...)
}

// ListRecent lista los movimientos más recientes de todos los productos.
func (r *MovementRepo) ListRecent(limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *MovementRepo) list(query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.FromLocationID, &m.ToLocationID,
			&m.Quantity, &m.Type, &m.ReferenceType, &m.ReferenceID,
			&m.Reason, &m.PerformedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
