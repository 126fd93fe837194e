package repository

import "github.com/tu-usuario/wms-core/internal/domain/entity"

// LocationRepository define el puerto de persistencia para Location.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	Update(location *entity.Location) error
	Deactivate(id string) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Location, error)
	ListActive(limit, offset int) ([]*entity.Location, error)
}
