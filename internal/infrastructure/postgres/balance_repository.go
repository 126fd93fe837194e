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

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

const balanceColumns = `id, product_id, location_id, quantity, lot_number, expiry_date, created_at, updated_at`

// BalanceRepo implementación de BalanceRepository sobre PostgreSQL (usable con
// pool o tx). La tabla balances lleva un constraint único sobre
// (product_id, location_id, lot_number); las acreditaciones concurrentes del
// mismo triple se resuelven con ON CONFLICT dentro de AddQuantity.
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// FindByKey obtiene el saldo de un triple (producto, ubicación, lote) o nil.
func (r *BalanceRepo) FindByKey(productID, locationID, lotNumber string) (*entity.Balance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM balances WHERE product_id = $1 AND location_id = $2 AND lot_number = $3`
	return r.scanOne(query, productID, locationID, lotNumber)
}

// FindByKeyForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *BalanceRepo) FindByKeyForUpdate(productID, locationID, lotNumber string) (*entity.Balance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM balances WHERE product_id = $1 AND location_id = $2 AND lot_number = $3
		FOR UPDATE`
	return r.scanOne(query, productID, locationID, lotNumber)
}

func (r *BalanceRepo) scanOne(query string, args ...any) (*entity.Balance, error) {
	var b entity.Balance
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&b.ID, &b.ProductID, &b.LocationID, &b.Quantity, &b.LotNumber,
		&b.ExpiryDate, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// SetQuantity actualiza la cantidad de un saldo; con cantidad 0 borra la fila.
// Los saldos en cero no existen: se eliminan en lugar de conservarse.
func (r *BalanceRepo) SetQuantity(balanceID string, quantity int64) error {
	if quantity == 0 {
		return r.DeleteByID(balanceID)
	}
	query := `UPDATE balances SET quantity = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, balanceID, quantity)
	if err != nil {
		return fmt.Errorf("update balance quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddQuantity acredita cantidad sobre el triple (producto, ubicación, lote) en
// una sola sentencia: inserta la fila o, si el constraint único salta porque
// otra transacción la creó primero, acumula sobre la existente. El conflicto se
// resuelve dentro del propio INSERT; un insert fallido dejaría la transacción
// abortada (25P02) y ninguna sentencia posterior podría repararla.
func (r *BalanceRepo) AddQuantity(balance *entity.Balance) error {
	if balance.ID == "" {
		balance.ID = uuid.New().String()
	}
	query := `
		INSERT INTO balances (id, product_id, location_id, quantity, lot_number, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		ON CONFLICT (product_id, location_id, lot_number)
		DO UPDATE SET quantity = balances.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		balance.ID, balance.ProductID, balance.LocationID, balance.Quantity,
		balance.LotNumber, balance.ExpiryDate,
	)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}

// DeleteByID borra un saldo por ID.
func (r *BalanceRepo) DeleteByID(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM balances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete balance: %w", err)
	}
	return nil
}

// ListByProduct lista los saldos de un producto en todas sus ubicaciones y lotes.
func (r *BalanceRepo) ListByProduct(productID string) ([]*entity.Balance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM balances WHERE product_id = $1 ORDER BY location_id, lot_number`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.Balance
	for rows.Next() {
		var b entity.Balance
		if err := rows.Scan(&b.ID, &b.ProductID, &b.LocationID, &b.Quantity, &b.LotNumber,
			&b.ExpiryDate, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
