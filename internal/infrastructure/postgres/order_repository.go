package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/wms-core/internal/domain"
	"github.com/tu-usuario/wms-core/internal/domain/entity"
	"github.com/tu-usuario/wms-core/internal/domain/repository"
)

var _ repository.InboundOrderRepository = (*InboundOrderRepo)(nil)
var _ repository.OutboundOrderRepository = (*OutboundOrderRepo)(nil)

// InboundOrderRepo implementación de InboundOrderRepository sobre PostgreSQL
// (usable con pool o tx).
type InboundOrderRepo struct {
	q Querier
}

// NewInboundOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInboundOrderRepository(q Querier) *InboundOrderRepo {
	return &InboundOrderRepo{q: q}
}

// Create persiste la orden de entrada con sus líneas.
func (r *InboundOrderRepo) Create(order *entity.InboundOrder, items []*entity.InboundOrderItem) error {
	query := `
		INSERT INTO inbound_orders (id, order_number, supplier_name, status, expected_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.SupplierName, order.Status,
		order.ExpectedDate, order.Notes, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inbound order: %w", err)
	}
	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		itemQuery := `
			INSERT INTO inbound_order_items (id, order_id, product_id, expected_quantity, received_quantity, lot_number, expiry_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		if _, err := r.q.Exec(context.Background(), itemQuery,
			it.ID, order.ID, it.ProductID, it.ExpectedQuantity, it.ReceivedQuantity,
			it.LotNumber, it.ExpiryDate,
		); err != nil {
			return fmt.Errorf("insert inbound order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden y sus líneas.
func (r *InboundOrderRepo) GetByID(id string) (*entity.InboundOrder, []*entity.InboundOrderItem, error) {
	query := `
		SELECT id, order_number, supplier_name, status, expected_date, notes, created_at, updated_at
		FROM inbound_orders WHERE id = $1`
	var o entity.InboundOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.OrderNumber, &o.SupplierName, &o.Status, &o.ExpectedDate,
		&o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get inbound order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, expected_quantity, received_quantity, lot_number, expiry_date
		FROM inbound_order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), itemsQuery, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list inbound order items: %w", err)
	}
	defer rows.Close()
	var items []*entity.InboundOrderItem
	for rows.Next() {
		var it entity.InboundOrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ExpectedQuantity,
			&it.ReceivedQuantity, &it.LotNumber, &it.ExpiryDate); err != nil {
			return nil, nil, fmt.Errorf("scan inbound order item: %w", err)
		}
		items = append(items, &it)
	}
	return &o, items, rows.Err()
}

// GetItemForUpdate bloquea la línea (SELECT FOR UPDATE) para avanzar
// received_quantity sin carreras entre recepciones concurrentes.
func (r *InboundOrderRepo) GetItemForUpdate(itemID string) (*entity.InboundOrderItem, error) {
	query := `
		SELECT id, order_id, product_id, expected_quantity, received_quantity, lot_number, expiry_date
		FROM inbound_order_items WHERE id = $1
		FOR UPDATE`
	var it entity.InboundOrderItem
	err := r.q.QueryRow(context.Background(), query, itemID).Scan(
		&it.ID, &it.OrderID, &it.ProductID, &it.ExpectedQuantity,
		&it.ReceivedQuantity, &it.LotNumber, &it.ExpiryDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inbound order item for update: %w", err)
	}
	return &it, nil
}

// UpdateItemReceived fija la cantidad recibida acumulada de una línea.
func (r *InboundOrderRepo) UpdateItemReceived(itemID string, receivedQuantity int64) error {
	query := `UPDATE inbound_order_items SET received_quantity = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, itemID, receivedQuantity)
	if err != nil {
		return fmt.Errorf("update inbound order item: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado de la orden.
func (r *InboundOrderRepo) UpdateStatus(orderID, status string) error {
	query := `UPDATE inbound_orders SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, orderID, status)
	if err != nil {
		return fmt.Errorf("update inbound order status: %w", err)
	}
	return nil
}

// List lista órdenes de entrada, más recientes primero.
func (r *InboundOrderRepo) List(limit, offset int) ([]*entity.InboundOrder, error) {
	query := `
		SELECT id, order_number, supplier_name, status, expected_date, notes, created_at, updated_at
		FROM inbound_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inbound orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.InboundOrder
	for rows.Next() {
		var o entity.InboundOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.SupplierName, &o.Status,
			&o.ExpectedDate, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inbound order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// OutboundOrderRepo implementación de OutboundOrderRepository sobre PostgreSQL
// (usable con pool o tx).
type OutboundOrderRepo struct {
	q Querier
}

// NewOutboundOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOutboundOrderRepository(q Querier) *OutboundOrderRepo {
	return &OutboundOrderRepo{q: q}
}

// Create persiste la orden de salida con sus líneas.
func (r *OutboundOrderRepo) Create(order *entity.OutboundOrder, items []*entity.OutboundOrderItem) error {
	query := `
		INSERT INTO outbound_orders (id, order_number, customer_name, status, priority, ship_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.CustomerName, order.Status, order.Priority,
		order.ShipDate, order.Notes, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert outbound order: %w", err)
	}
	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		itemQuery := `
			INSERT INTO outbound_order_items (id, order_id, product_id, requested_quantity, picked_quantity)
			VALUES ($1, $2, $3, $4, $5)`
		if _, err := r.q.Exec(context.Background(), itemQuery,
			it.ID, order.ID, it.ProductID, it.RequestedQuantity, it.PickedQuantity,
		); err != nil {
			return fmt.Errorf("insert outbound order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden y sus líneas.
func (r *OutboundOrderRepo) GetByID(id string) (*entity.OutboundOrder, []*entity.OutboundOrderItem, error) {
	query := `
		SELECT id, order_number, customer_name, status, priority, ship_date, notes, created_at, updated_at
		FROM outbound_orders WHERE id = $1`
	var o entity.OutboundOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.OrderNumber, &o.CustomerName, &o.Status, &o.Priority,
		&o.ShipDate, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get outbound order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, requested_quantity, picked_quantity
		FROM outbound_order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), itemsQuery, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list outbound order items: %w", err)
	}
	defer rows.Close()
	var items []*entity.OutboundOrderItem
	for rows.Next() {
		var it entity.OutboundOrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.RequestedQuantity,
			&it.PickedQuantity); err != nil {
			return nil, nil, fmt.Errorf("scan outbound order item: %w", err)
		}
		items = append(items, &it)
	}
	return &o, items, rows.Err()
}

// GetItemForUpdate bloquea la línea (SELECT FOR UPDATE).
func (r *OutboundOrderRepo) GetItemForUpdate(itemID string) (*entity.OutboundOrderItem, error) {
	query := `
		SELECT id, order_id, product_id, requested_quantity, picked_quantity
		FROM outbound_order_items WHERE id = $1
		FOR UPDATE`
	var it entity.OutboundOrderItem
	err := r.q.QueryRow(context.Background(), query, itemID).Scan(
		&it.ID, &it.OrderID, &it.ProductID, &it.RequestedQuantity, &it.PickedQuantity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get outbound order item for update: %w", err)
	}
	return &it, nil
}

// UpdateItemPicked fija la cantidad despachada acumulada de una línea.
func (r *OutboundOrderRepo) UpdateItemPicked(itemID string, pickedQuantity int64) error {
	query := `UPDATE outbound_order_items SET picked_quantity = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, itemID, pickedQuantity)
	if err != nil {
		return fmt.Errorf("update outbound order item: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado de la orden.
func (r *OutboundOrderRepo) UpdateStatus(orderID, status string) error {
	query := `UPDATE outbound_orders SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, orderID, status)
	if err != nil {
		return fmt.Errorf("update outbound order status: %w", err)
	}
	return nil
}

// List lista órdenes de salida, más recientes primero.
func (r *OutboundOrderRepo) List(limit, offset int) ([]*entity.OutboundOrder, error) {
	query := `
		SELECT id, order_number, customer_name, status, priority, ship_date, notes, created_at, updated_at
		FROM outbound_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list outbound orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.OutboundOrder
	for rows.Next() {
		var o entity.OutboundOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.Status, &o.Priority,
			&o.ShipDate, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan outbound order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
