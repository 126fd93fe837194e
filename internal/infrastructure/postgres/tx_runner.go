package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/wms-core/internal/application/inventory"
	"github.com/tu-usuario/wms-core/internal/application/usecase"
	"github.com/tu-usuario/wms-core/internal/domain"
	"github.com/tu-usuario/wms-core/internal/domain/repository"
)

// mapTxErr traduce deadlocks (40P01) y fallos de serialización (40001) a
// domain.ErrTxConflict: Postgres ya mató la transacción y la operación puede
// reintentarse sin cambios.
func mapTxErr(err error) error {
	if isTxConflict(err) {
		return domain.ErrTxConflict
	}
	return err
}

// Ensure TxRunner implements inventory.TxRunner and usecase.OrderTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ usecase.OrderTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Es el único
// mecanismo por el que el motor de inventario toca los saldos: todo el algoritmo
// de traslado corre entre Begin y Commit, con las filas bloqueadas FOR UPDATE.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit
// o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	balances repository.BalanceRepository,
	movements repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewBalanceRepository(tx), NewMovementRepository(tx)); err != nil {
		return mapTxErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxErr(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunInbound inicia una transacción con repos de inventario y de órdenes de
// entrada (recepción de mercancía).
func (r *TxRunner) RunInbound(ctx context.Context, fn func(
	balances repository.BalanceRepository,
	movements repository.MovementRepository,
	orders repository.InboundOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewBalanceRepository(tx), NewMovementRepository(tx), NewInboundOrderRepository(tx)); err != nil {
		return mapTxErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxErr(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunOutbound inicia una transacción con repos de inventario y de órdenes de
// salida (despacho de mercancía).
func (r *TxRunner) RunOutbound(ctx context.Context, fn func(
	balances repository.BalanceRepository,
	movements repository.MovementRepository,
	orders repository.OutboundOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewBalanceRepository(tx), NewMovementRepository(tx), NewOutboundOrderRepository(tx)); err != nil {
		return mapTxErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxErr(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
