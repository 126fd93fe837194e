package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/wms-core/internal/application/dto"
	"github.com/tu-usuario/wms-core/internal/domain"
	"github.com/tu-usuario/wms-core/internal/domain/entity"
	"github.com/tu-usuario/wms-core/internal/domain/repository"
)

// LocationUseCase gestiona ubicaciones dentro de bodegas.
type LocationUseCase struct {
	locationRepo  repository.LocationRepository
	warehouseRepo repository.WarehouseRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(
	locationRepo repository.LocationRepository,
	warehouseRepo repository.WarehouseRepository,
) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo, warehouseRepo: warehouseRepo}
}

// Create da de alta una ubicación validando que la bodega exista.
func (uc *LocationUseCase) Create(ctx context.Context, req dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	location := &entity.Location{
		ID:          uuid.New().String(),
		WarehouseID: req.WarehouseID,
		Code:        req.Code,
		Zone:        req.Zone,
		Aisle:       req.Aisle,
		Rack:        req.Rack,
		Level:       req.Level,
		Bin:         req.Bin,
		Capacity:    req.Capacity,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	if err := uc.locationRepo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación por id.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(location), nil
}

// Update aplica cambios parciales sobre una ubicación.
func (uc *LocationUseCase) Update(ctx context.Context, id string, req dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	if req.Code != nil {
		location.Code = *req.Code
	}
	if req.Zone != nil {
		location.Zone = req.Zone
	}
	if req.Aisle != nil {
		location.Aisle = req.Aisle
	}
	if req.Rack != nil {
		location.Rack = req.Rack
	}
	if req.Level != nil {
		location.Level = req.Level
	}
	if req.Bin != nil {
		location.Bin = req.Bin
	}
	if req.Capacity != nil {
		location.Capacity = *req.Capacity
	}
	if err := uc.locationRepo.Update(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// Deactivate marca la ubicación como inactiva.
func (uc *LocationUseCase) Deactivate(ctx context.Context, id string) error {
	return uc.locationRepo.Deactivate(id)
}

// ListByWarehouse lista las ubicaciones de una bodega.
func (uc *LocationUseCase) ListByWarehouse(ctx context.Context, warehouseID string, page dto.PageRequest) ([]dto.LocationResponse, error) {
	page.DefaultPage()
	locations, err := uc.locationRepo.ListByWarehouse(warehouseID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, *toLocationResponse(l))
	}
	return out, nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:          l.ID,
		WarehouseID: l.WarehouseID,
		Code:        l.Code,
		Zone:        l.Zone,
		Aisle:       l.Aisle,
		Rack:        l.Rack,
		Level:       l.Level,
		Bin:         l.Bin,
		Capacity:    l.Capacity,
		IsActive:    l.IsActive,
		CreatedAt:   l.CreatedAt,
	}
}
