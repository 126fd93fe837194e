// Package pdf genera la representación PDF del reporte de estado de stock.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: normal / bajo / agotado / exceso                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Total | Mín | Máx | Estado          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/wms-core/internal/application/dto"
	"github.com/tu-usuario/wms-core/internal/application/usecase"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// MarotoReportGenerator implementa usecase.StockReportPDFGenerator con Maroto v2.
type MarotoReportGenerator struct{}

var _ usecase.StockReportPDFGenerator = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateStockReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockReportPDF(_ context.Context, report *dto.StockStatusReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de estado de stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	for _, item := range report.Items {
		m.AddRows(itemRow(item))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate stock report pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow() core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte de estado de stock", props.Text{
				Size: 14, Style: fontstyle.Bold, Color: colorPrimary,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+time.Now().Format("2006-01-02 15:04"), props.Text{
				Size: 8, Color: colorGray, Align: align.Right, Top: 4,
			}),
		),
	)
}

func summaryRow(report *dto.StockStatusReport) core.Row {
	cell := func(label string, n int, color *props.Color) core.Col {
		return col.New(3).Add(
			text.New(fmt.Sprintf("%s: %d", label, n), props.Text{
				Size: 9, Style: fontstyle.Bold, Color: color, Align: align.Center, Top: 2,
			}),
		)
	}
	return row.New(10).Add(
		cell("Normal", report.Normal, colorPrimary),
		cell("Bajo", report.Low, colorAlert),
		cell("Agotado", report.OutOfStock, colorAlert),
		cell("Exceso", report.Overstock, colorGray),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string, al align.Type) core.Col {
		return col.New(size).Add(
			text.New(label, props.Text{Size: 8, Style: fontstyle.Bold, Align: al}),
		)
	}
	return row.New(7).Add(
		header(2, "SKU", align.Left),
		header(4, "Producto", align.Left),
		header(2, "Total", align.Right),
		header(1, "Mín", align.Right),
		header(1, "Máx", align.Right),
		header(2, "Estado", align.Center),
	)
}

func itemRow(item dto.StockStatusLine) core.Row {
	statusColor := colorGray
	if item.Status == "low" || item.Status == "out_of_stock" {
		statusColor = colorAlert
	}
	cell := func(size int, value string, al align.Type, color *props.Color) core.Col {
		return col.New(size).Add(
			text.New(value, props.Text{Size: 8, Align: al, Color: color}),
		)
	}
	return row.New(6).Add(
		cell(2, item.SKU, align.Left, nil),
		cell(4, item.Name, align.Left, nil),
		cell(2, fmt.Sprintf("%d %s", item.TotalQuantity, item.Unit), align.Right, nil),
		cell(1, fmt.Sprintf("%d", item.MinStock), align.Right, nil),
		cell(1, fmt.Sprintf("%d", item.MaxStock), align.Right, nil),
		cell(2, item.Status, align.Center, statusColor),
	)
}
