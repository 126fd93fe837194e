package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/wms-core/internal/application/usecase"
)

// ReportHandler maneja las peticiones HTTP de reportes (protegido).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockStatus godoc
// @Summary      Reporte de estado de stock
// @Description  Clasifica cada producto activo por su total agregado contra sus
//
//	umbrales: normal, low, out_of_stock, overstock.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockStatusReport
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/stock-status [get]
func (h *ReportHandler) StockStatus(c *fiber.Ctx) error {
	report, err := h.uc.StockStatus(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// StockStatusPDF godoc
// @Summary      Reporte de estado de stock en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/stock-status/pdf [get]
func (h *ReportHandler) StockStatusPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.StockStatusPDF(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="stock-status.pdf"`)
	return c.Send(pdfBytes)
}
