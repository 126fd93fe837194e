package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/wms-core/internal/domain/repository"
)

var _ repository.InventoryViewRepository = (*InventoryViewRepo)(nil)

// InventoryViewRepo implementación de lectura de inventario sobre PostgreSQL:
// listados con joins a productos/ubicaciones y agregados por producto.
type InventoryViewRepo struct {
	q Querier
}

// NewInventoryViewRepository construye el adaptador de consultas. Pasar pool o tx (Querier).
func NewInventoryViewRepository(q Querier) *InventoryViewRepo {
	return &InventoryViewRepo{q: q}
}

// List devuelve saldos con detalle de producto y ubicación, filtrados por
// producto, ubicación y/o SKU. Filtros vacíos no acotan.
func (r *InventoryViewRepo) List(filter repository.InventoryFilter) ([]*repository.BalanceDetail, error) {
	query := `
		SELECT b.id, b.product_id, b.location_id, b.quantity, b.lot_number, b.expiry_date,
		       b.created_at, b.updated_at,
		       p.sku, p.name, p.category, p.unit, p.min_stock, p.max_stock,
		       l.code, l.zone, l.aisle, l.rack
		FROM balances b
		JOIN products p ON p.id = b.product_id
		JOIN locations l ON l.id = b.location_id
		WHERE 1=1`
	var args []any
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND b.product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.LocationID != "" {
		query += fmt.Sprintf(" AND b.location_id = $%d", pos)
		args = append(args, filter.LocationID)
		pos++
	}
	if filter.SKU != "" {
		query += fmt.Sprintf(" AND p.sku = $%d", pos)
		args = append(args, filter.SKU)
		pos++
	}
	query += " ORDER BY p.name, l.code, b.lot_number"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*repository.BalanceDetail
	for rows.Next() {
		var d repository.BalanceDetail
		if err := rows.Scan(
			&d.Balance.ID, &d.Balance.ProductID, &d.Balance.LocationID, &d.Balance.Quantity,
			&d.Balance.LotNumber, &d.Balance.ExpiryDate, &d.Balance.CreatedAt, &d.Balance.UpdatedAt,
			&d.Product.SKU, &d.Product.Name, &d.Product.Category, &d.Product.Unit,
			&d.Product.MinStock, &d.Product.MaxStock,
			&d.Location.Code, &d.Location.Zone, &d.Location.Aisle, &d.Location.Rack,
		); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ProductTotals agrega la cantidad por producto activo sobre todas sus
// ubicaciones y lotes. Un producto sin saldos aparece con total 0 (LEFT JOIN):
// así el clasificador puede reportarlo como agotado.
func (r *InventoryViewRepo) ProductTotals() ([]*repository.ProductStockTotal, error) {
	query := `
		SELECT p.id, p.sku, p.name, p.unit, p.min_stock, p.max_stock,
		       COALESCE(SUM(b.quantity), 0) AS total_quantity
		FROM products p
		LEFT JOIN balances b ON b.product_id = p.id
		WHERE p.is_active = true
		GROUP BY p.id, p.sku, p.name, p.unit, p.min_stock, p.max_stock
		ORDER BY p.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("product totals: %w", err)
	}
	defer rows.Close()
	var list []*repository.ProductStockTotal
	for rows.Next() {
		var t repository.ProductStockTotal
		if err := rows.Scan(&t.ProductID, &t.SKU, &t.Name, &t.Unit, &t.MinStock,
			&t.MaxStock, &t.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan product total: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
