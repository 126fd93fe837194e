package repository

import "github.com/tu-usuario/wms-core/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	Deactivate(id string) error
	ListActive(limit, offset int) ([]*entity.Warehouse, error)
}
