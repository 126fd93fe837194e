package inventory

import (
	"context"
	"fmt"

	"github.com/tu-usuario/wms-core/internal/application/dto"
	"github.com/tu-usuario/wms-core/internal/domain/repository"
)

// QueryUseCase responde consultas de stock sobre la vista de inventario
// (lecturas sin transacción, fuera del camino de mutación).
type QueryUseCase struct {
	viewRepo repository.InventoryViewRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(viewRepo repository.InventoryViewRepository) *QueryUseCase {
	return &QueryUseCase{viewRepo: viewRepo}
}

// Check lista los saldos que cumplen el filtro y devuelve el total agregado.
// Con includeDetails las filas salen completas; sin él, una proyección resumida
// (sku, ubicación, cantidad, lote, vencimiento).
func (uc *QueryUseCase) Check(ctx context.Context, req dto.CheckStockRequest) (*dto.CheckStockResponse, error) {
	filter := repository.InventoryFilter{
		ProductID:  req.ProductID,
		LocationID: req.LocationID,
		SKU:        req.SKU,
	}
	details, err := uc.viewRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}

	resp := &dto.CheckStockResponse{}
	for _, d := range details {
		resp.TotalQuantity += d.Balance.Quantity
		if req.IncludeDetails {
			resp.Lines = append(resp.Lines, dto.StockLineResponse{
				ProductID:    d.Balance.ProductID,
				SKU:          d.Product.SKU,
				ProductName:  d.Product.Name,
				LocationID:   d.Balance.LocationID,
				LocationCode: d.Location.Code,
				Quantity:     d.Balance.Quantity,
				LotNumber:    d.Balance.LotNumber,
				ExpiryDate:   d.Balance.ExpiryDate,
				UpdatedAt:    d.Balance.UpdatedAt,
			})
		} else {
			resp.Summary = append(resp.Summary, dto.StockSummaryLine{
				SKU:          d.Product.SKU,
				LocationCode: d.Location.Code,
				Quantity:     d.Balance.Quantity,
				LotNumber:    d.Balance.LotNumber,
				ExpiryDate:   d.Balance.ExpiryDate,
			})
		}
	}
	return resp, nil
}
