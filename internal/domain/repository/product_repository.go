package repository

import "github.com/tu-usuario/wms-core/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// Deactivate marca el producto como inactivo (borrado lógico).
	Deactivate(id string) error
	ListActive(limit, offset int) ([]*entity.Product, error)
}
