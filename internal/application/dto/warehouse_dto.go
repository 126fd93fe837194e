package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Code    string  `json:"code" validate:"required,min=1,max=50"`
	Name    string  `json:"name" validate:"required,min=1,max=200"`
	Address *string `json:"address,omitempty"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
type UpdateWarehouseRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address,omitempty"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateLocationRequest entrada para crear una ubicación dentro de una bodega.
type CreateLocationRequest struct {
	WarehouseID string  `json:"warehouse_id" validate:"required"`
	Code        string  `json:"code" validate:"required,min=1,max=50"`
	Zone        *string `json:"zone,omitempty"`
	Aisle       *string `json:"aisle,omitempty"`
	Rack        *string `json:"rack,omitempty"`
	Level       *string `json:"level,omitempty"`
	Bin         *string `json:"bin,omitempty"`
	Capacity    int64   `json:"capacity" validate:"min=0"`
}

// UpdateLocationRequest entrada para actualizar una ubicación.
type UpdateLocationRequest struct {
	Code     *string `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Zone     *string `json:"zone,omitempty"`
	Aisle    *string `json:"aisle,omitempty"`
	Rack     *string `json:"rack,omitempty"`
	Level    *string `json:"level,omitempty"`
	Bin      *string `json:"bin,omitempty"`
	Capacity *int64  `json:"capacity,omitempty" validate:"omitempty,min=0"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID          string    `json:"id"`
	WarehouseID string    `json:"warehouse_id"`
	Code        string    `json:"code"`
	Zone        *string   `json:"zone,omitempty"`
	Aisle       *string   `json:"aisle,omitempty"`
	Rack        *string   `json:"rack,omitempty"`
	Level       *string   `json:"level,omitempty"`
	Bin         *string   `json:"bin,omitempty"`
	Capacity    int64     `json:"capacity"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
