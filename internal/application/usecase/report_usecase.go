package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/wms-core/internal/application/dto"
	"github.com/tu-usuario/wms-core/internal/domain/repository"
	"github.com/tu-usuario/wms-core/internal/domain/stock"
)

// StockReportPDFGenerator genera la representación PDF de un reporte de stock.
type StockReportPDFGenerator interface {
	GenerateStockReportPDF(ctx context.Context, report *dto.StockStatusReport) ([]byte, error)
}

// ReportUseCase arma reportes de estado de stock: agrega la cantidad total por
// producto, clasifica cada uno contra sus umbrales y cuenta por categoría.
type ReportUseCase struct {
	viewRepo repository.InventoryViewRepository
	pdfGen   StockReportPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(viewRepo repository.InventoryViewRepository, pdfGen StockReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{viewRepo: viewRepo, pdfGen: pdfGen}
}

// StockStatus clasifica cada producto activo por su total agregado. Un producto
// sin filas de saldo cuenta como agotado (total cero).
func (uc *ReportUseCase) StockStatus(ctx context.Context) (*dto.StockStatusReport, error) {
	totals, err := uc.viewRepo.ProductTotals()
	if err != nil {
		return nil, fmt.Errorf("aggregate product totals: %w", err)
	}

	report := &dto.StockStatusReport{Items: make([]dto.StockStatusLine, 0, len(totals))}
	for _, t := range totals {
		status := stock.Classify(t.TotalQuantity, t.MinStock, t.MaxStock)
		report.Items = append(report.Items, dto.StockStatusLine{
			ProductID:     t.ProductID,
			SKU:           t.SKU,
			Name:          t.Name,
			Unit:          t.Unit,
			TotalQuantity: t.TotalQuantity,
			MinStock:      t.MinStock,
			MaxStock:      t.MaxStock,
			Status:        string(status),
		})
		switch status {
		case stock.StatusNormal:
			report.Normal++
		case stock.StatusLow:
			report.Low++
		case stock.StatusOutOfStock:
			report.OutOfStock++
		case stock.StatusOverstock:
			report.Overstock++
		}
	}
	return report, nil
}

// StockStatusPDF genera el reporte y lo renderiza como PDF.
func (uc *ReportUseCase) StockStatusPDF(ctx context.Context) ([]byte, error) {
	report, err := uc.StockStatus(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateStockReportPDF(ctx, report)
}
