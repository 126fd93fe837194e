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

// WarehouseUseCase gestiona bodegas.
type WarehouseUseCase struct {
	warehouseRepo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(warehouseRepo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouseRepo: warehouseRepo}
}

// Create da de alta una bodega. Código duplicado devuelve domain.ErrDuplicate.
func (uc *WarehouseUseCase) Create(ctx context.Context, req dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	now := time.Now()
	var address string
	if req.Address != nil {
		address = *req.Address
	}
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Code:      req.Code,
		Name:      req.Name,
		Address:   address,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouseRepo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por id.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(warehouse), nil
}

// Update aplica cambios parciales sobre una bodega.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, req dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if req.Name != nil {
		warehouse.Name = *req.Name
	}
	if req.Address != nil {
		warehouse.Address = *req.Address
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.warehouseRepo.Update(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// Deactivate marca la bodega como inactiva.
func (uc *WarehouseUseCase) Deactivate(ctx context.Context, id string) error {
	return uc.warehouseRepo.Deactivate(id)
}

// ListActive lista las bodegas activas.
func (uc *WarehouseUseCase) ListActive(ctx context.Context, page dto.PageRequest) ([]dto.WarehouseResponse, error) {
	page.DefaultPage()
	warehouses, err := uc.warehouseRepo.ListActive(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(warehouses))
	for _, w := range warehouses {
		out = append(out, *toWarehouseResponse(w))
	}
	return out, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Address:   &w.Address,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
