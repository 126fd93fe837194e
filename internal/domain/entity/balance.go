package entity

import "time"

// Balance representa el saldo actual de un producto en una ubicación para un lote.
// Invariantes: a lo sumo una fila por (producto, ubicación, lote); Quantity siempre
// positiva — una fila que llega a cero se borra, nunca se conserva en cero.
type Balance struct {
	ID         string
	ProductID  string
	LocationID string
	Quantity   int64
	LotNumber  string // "" = sin lote (bucket de lote vacío)
	ExpiryDate *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizeLot coacciona un lote ausente (nil) al string vacío. Es el único punto
// donde se resuelve la identidad de lote: nil y "" son el mismo bucket.
func NormalizeLot(lot *string) string {
	if lot == nil {
		return ""
	}
	return *lot
}
