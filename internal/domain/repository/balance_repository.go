package repository

import "github.com/tu-usuario/wms-core/internal/domain/entity"

// BalanceRepository define el puerto de acceso a saldos por (producto, ubicación, lote).
// Se usa dentro de transacciones para garantizar consistencia.
type BalanceRepository interface {
	// FindByKey devuelve el saldo del triple o nil si no existe.
	FindByKey(productID, locationID, lotNumber string) (*entity.Balance, error)
	// FindByKeyForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	FindByKeyForUpdate(productID, locationID, lotNumber string) (*entity.Balance, error)
	// SetQuantity actualiza la cantidad en sitio; con cantidad 0 borra la fila
	// (nunca se conservan saldos en cero).
	SetQuantity(balanceID string, quantity int64) error
	// AddQuantity acredita cantidad sobre el triple en una sola sentencia
	// atómica: inserta la fila o, si otra transacción ya la creó, acumula
	// sobre la existente. Un perdedor de la carrera del insert nunca aborta
	// la transacción en curso.
	AddQuantity(balance *entity.Balance) error
	DeleteByID(id string) error
	ListByProduct(productID string) ([]*entity.Balance, error)
}
