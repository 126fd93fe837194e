package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU         string           `json:"sku" validate:"required,min=1,max=100"`
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Barcode     *string          `json:"barcode,omitempty"`
	Unit        string           `json:"unit" validate:"required"`
	Weight      *decimal.Decimal `json:"weight,omitempty"`
	Volume      *decimal.Decimal `json:"volume,omitempty"`
	MinStock    int64            `json:"min_stock" validate:"min=0"`
	MaxStock    int64            `json:"max_stock" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Barcode     *string          `json:"barcode,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	Weight      *decimal.Decimal `json:"weight,omitempty"`
	Volume      *decimal.Decimal `json:"volume,omitempty"`
	MinStock    *int64           `json:"min_stock,omitempty" validate:"omitempty,min=0"`
	MaxStock    *int64           `json:"max_stock,omitempty" validate:"omitempty,min=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string           `json:"id"`
	SKU         string           `json:"sku"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Barcode     *string          `json:"barcode,omitempty"`
	Unit        string           `json:"unit"`
	Weight      *decimal.Decimal `json:"weight,omitempty"`
	Volume      *decimal.Decimal `json:"volume,omitempty"`
	MinStock    int64            `json:"min_stock"`
	MaxStock    int64            `json:"max_stock"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ProductListResponse lista de productos activos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}
