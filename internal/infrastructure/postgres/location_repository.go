package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/wms-core/internal/domain"
	"github.com/tu-usuario/wms-core/internal/domain/entity"
	"github.com/tu-usuario/wms-core/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

const locationColumns = `id, warehouse_id, code, zone, aisle, rack, level, bin, capacity, is_active, created_at`

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	pool *pgxpool.Pool
}

// NewLocationRepository construye el adaptador de persistencia para ubicaciones.
func NewLocationRepository(pool *pgxpool.Pool) *LocationRepo {
	return &LocationRepo{pool: pool}
}

// Create persiste una ubicación nueva. Devuelve domain.ErrDuplicate si el código
// ya existe dentro del almacén.
func (r *LocationRepo) Create(l *entity.Location) error {
	query := `
		INSERT INTO locations (` + locationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(context.Background(), query,
		l.ID, l.WarehouseID, l.Code, l.Zone, l.Aisle, l.Rack, l.Level, l.Bin,
		l.Capacity, l.IsActive, l.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`
	var l entity.Location
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.WarehouseID, &l.Code, &l.Zone, &l.Aisle, &l.Rack, &l.Level,
		&l.Bin, &l.Capacity, &l.IsActive, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// Update actualiza una ubicación existente.
func (r *LocationRepo) Update(l *entity.Location) error {
	query := `
		UPDATE locations
		SET code = $2, zone = $3, aisle = $4, rack = $5, level = $6, bin = $7, capacity = $8
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		l.ID, l.Code, l.Zone, l.Aisle, l.Rack, l.Level, l.Bin, l.Capacity,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// Deactivate marca la ubicación como inactiva (borrado lógico).
func (r *LocationRepo) Deactivate(id string) error {
	query := `UPDATE locations SET is_active = false WHERE id = $1`
	cmd, err := r.pool.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate location: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByWarehouse lista ubicaciones de un almacén con paginación.
func (r *LocationRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Location, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM locations WHERE warehouse_id = $1 AND is_active = true
		ORDER BY code LIMIT $2 OFFSET $3`
	return r.list(query, warehouseID, limit, offset)
}

// ListActive lista todas las ubicaciones activas con paginación.
func (r *LocationRepo) ListActive(limit, offset int) ([]*entity.Location, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM locations WHERE is_active = true ORDER BY code LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *LocationRepo) list(query string, args ...any) ([]*entity.Location, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.WarehouseID, &l.Code, &l.Zone, &l.Aisle, &l.Rack,
			&l.Level, &l.Bin, &l.Capacity, &l.IsActive, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
