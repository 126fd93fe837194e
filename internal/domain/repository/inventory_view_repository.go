package repository

import "github.com/tu-usuario/wms-core/internal/domain/entity"

// InventoryFilter acota las consultas de inventario. Campos vacíos no filtran.
type InventoryFilter struct {
	ProductID  string
	LocationID string
	SKU        string
}

// BalanceDetail es un saldo con los atributos de producto y ubicación ya unidos.
type BalanceDetail struct {
	Balance  entity.Balance
	Product  ProductSummary
	Location LocationSummary
}

// ProductSummary son los atributos de producto que acompañan a una fila de inventario.
type ProductSummary struct {
	SKU      string
	Name     string
	Category *string
	Unit     string
	MinStock int64
	MaxStock int64
}

// LocationSummary son los atributos de ubicación que acompañan a una fila de inventario.
type LocationSummary struct {
	Code  string
	Zone  *string
	Aisle *string
	Rack  *string
}

// ProductStockTotal es la cantidad agregada de un producto sobre todas sus
// ubicaciones y lotes, con los umbrales para clasificar su estado.
type ProductStockTotal struct {
	ProductID     string
	SKU           string
	Name          string
	Unit          string
	MinStock      int64
	MaxStock      int64
	TotalQuantity int64
}

// InventoryViewRepository define el puerto de lectura de inventario (solo consultas,
// sin mutaciones): listados filtrados con joins y agregados para reportes.
type InventoryViewRepository interface {
	List(filter InventoryFilter) ([]*BalanceDetail, error)
	// ProductTotals agrega cantidad por producto activo (suma, no por fila).
	ProductTotals() ([]*ProductStockTotal, error)
}
