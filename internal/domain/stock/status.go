// Package stock contiene la lógica pura de clasificación de estado de stock.
package stock

// Status es la clasificación derivada del stock agregado de un producto frente a
// sus umbrales configurados.
type Status string

const (
	StatusNormal     Status = "normal"
	StatusLow        Status = "low"
	StatusOutOfStock Status = "out_of_stock"
	StatusOverstock  Status = "overstock"
)

// Classify clasifica la cantidad TOTAL de un producto (sumada sobre todas sus
// ubicaciones y lotes) frente a sus umbrales mínimo y máximo. El orden de los
// chequeos importa: cero se evalúa antes que el umbral mínimo.
func Classify(totalQuantity, minStock, maxStock int64) Status {
	switch {
	case totalQuantity == 0:
		return StatusOutOfStock
	case totalQuantity < minStock:
		return StatusLow
	case totalQuantity > maxStock:
		return StatusOverstock
	default:
		return StatusNormal
	}
}
