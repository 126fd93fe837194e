package dto

// StockStatusLine estado de stock agregado de un producto.
type StockStatusLine struct {
	ProductID     string `json:"product_id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	Unit          string `json:"unit"`
	TotalQuantity int64  `json:"total_quantity"`
	MinStock      int64  `json:"min_stock"`
	MaxStock      int64  `json:"max_stock"`
	Status        string `json:"status"` // normal | low | out_of_stock | overstock
}

// StockStatusReport reporte de estado de stock con conteos por clasificación.
type StockStatusReport struct {
	Items      []StockStatusLine `json:"items"`
	Normal     int               `json:"normal"`
	Low        int               `json:"low"`
	OutOfStock int               `json:"out_of_stock"`
	Overstock  int               `json:"overstock"`
}
