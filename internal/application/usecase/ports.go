package usecase

import (
	"context"

	"github.com/tu-usuario/wms-core/internal/domain/repository"
)

// OrderTxRunner abre transacciones que tocan a la vez saldos, movimientos y
// órdenes: la recepción y el despacho mutan inventario y avanzan la orden en
// la misma transacción.
type OrderTxRunner interface {
	RunInbound(ctx context.Context, fn func(
		balances repository.BalanceRepository,
		movements repository.MovementRepository,
		orders repository.InboundOrderRepository,
	) error) error
	RunOutbound(ctx context.Context, fn func(
		balances repository.BalanceRepository,
		movements repository.MovementRepository,
		orders repository.OutboundOrderRepository,
	) error) error
}
