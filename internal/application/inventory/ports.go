package inventory

import (
	"context"

	"github.com/tu-usuario/wms-core/internal/domain/repository"
)

// TxRunner abre una transacción y ejecuta fn con repos atados a ella. Si fn
// devuelve error la transacción se revierte; si no, se confirma. Todo el
// algoritmo de traslado corre dentro de una sola llamada a Run.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		balances repository.BalanceRepository,
		movements repository.MovementRepository,
	) error) error
}
