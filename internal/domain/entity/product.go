package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo maestro.
// MinStock/MaxStock son umbrales para la clasificación de estado de stock
// (por convención MinStock <= MaxStock, no se fuerza en persistencia).
// El motor de inventario lo trata como solo lectura.
type Product struct {
	ID          string
	SKU         string // código único, clave visible para el usuario
	Name        string
	Description *string
	Category    *string
	Unit        string // unidad de medida, por defecto "PCS"
	Weight      *decimal.Decimal
	Volume      *decimal.Decimal
	Barcode     *string
	MinStock    int64
	MaxStock    int64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
