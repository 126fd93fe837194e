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

// ProductUseCase gestiona el catálogo de productos.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create da de alta un producto. SKU duplicado devuelve domain.ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.MaxStock > 0 && req.MaxStock < req.MinStock {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Barcode:     req.Barcode,
		Unit:        req.Unit,
		Weight:      req.Weight,
		Volume:      req.Volume,
		MinStock:    req.MinStock,
		MaxStock:    req.MaxStock,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por id.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// GetBySKU obtiene un producto por SKU.
func (uc *ProductUseCase) GetBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update aplica cambios parciales sobre un producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Category != nil {
		product.Category = req.Category
	}
	if req.Barcode != nil {
		product.Barcode = req.Barcode
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.Weight != nil {
		product.Weight = req.Weight
	}
	if req.Volume != nil {
		product.Volume = req.Volume
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}
	if req.MaxStock != nil {
		product.MaxStock = *req.MaxStock
	}
	if product.MaxStock > 0 && product.MaxStock < product.MinStock {
		return nil, domain.ErrInvalidInput
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Deactivate marca el producto como inactivo (baja lógica, nunca se borra).
func (uc *ProductUseCase) Deactivate(ctx context.Context, id string) error {
	return uc.productRepo.Deactivate(id)
}

// ListActive lista los productos activos.
func (uc *ProductUseCase) ListActive(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.ListActive(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		resp.Items = append(resp.Items, *toProductResponse(p))
	}
	return resp, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Barcode:     p.Barcode,
		Unit:        p.Unit,
		Weight:      p.Weight,
		Volume:      p.Volume,
		MinStock:    p.MinStock,
		MaxStock:    p.MaxStock,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
