package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/wms-core/internal/domain"
	"github.com/tu-usuario/wms-core/internal/domain/entity"
	"github.com/tu-usuario/wms-core/internal/domain/repository"
)

const defaultTransferReason = "Manual transfer"

// TransferUseCase mueve stock entre ubicaciones de forma transaccional:
// bloquea origen y destino (SELECT FOR UPDATE), descuenta, acredita y deja
// exactamente un movimiento TRANSFER en el libro. O todo ocurre, o nada.
type TransferUseCase struct {
	txRunner TxRunner
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(txRunner TxRunner) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner}
}

// TransferInput entrada del traslado. LotNumber nil equivale a lote vacío.
type TransferInput struct {
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Quantity       int64
	LotNumber      *string
	Reason         *string
	PerformedBy    string
}

// TransferResult resultado del traslado confirmado.
type TransferResult struct {
	Message    string
	MovementID string
	LotNumber  string
}

// Transfer ejecuta el traslado completo dentro de una transacción:
//  1. valida entrada (cantidad > 0, origen distinto de destino, ids presentes),
//  2. bloquea y lee el saldo de origen; si no existe, ErrSourceNotFound,
//  3. si el disponible no alcanza, InsufficientStockError con el disponible,
//  4. descuenta en origen (la fila se borra si queda en cero) y acredita en
//     destino (actualiza la fila existente o crea una nueva copiando la fecha
//     de vencimiento del origen),
//  5. registra un único movimiento TRANSFER con ambas ubicaciones.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if input.ProductID == "" || input.FromLocationID == "" || input.ToLocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	// Trasladar a la misma ubicación sería un no-op que igualmente dejaría un
	// movimiento en el libro; se rechaza.
	if input.FromLocationID == input.ToLocationID {
		return nil, domain.ErrInvalidInput
	}

	lot := entity.NormalizeLot(input.LotNumber)
	reason := defaultTransferReason
	if input.Reason != nil && *input.Reason != "" {
		reason = *input.Reason
	}
	performedBy := input.PerformedBy
	if performedBy == "" {
		performedBy = "system"
	}

	now := time.Now()
	movementID := uuid.New().String()

	err := uc.txRunner.Run(ctx, func(
		balances repository.BalanceRepository,
		movements repository.MovementRepository,
	) error {
		source, err := balances.FindByKeyForUpdate(input.ProductID, input.FromLocationID, lot)
		if err != nil {
			return fmt.Errorf("lock source balance: %w", err)
		}
		if source == nil {
			return domain.ErrSourceNotFound
		}
		if source.Quantity < input.Quantity {
			return &domain.InsufficientStockError{Available: source.Quantity}
		}

		// SetQuantity borra la fila cuando la cantidad restante es cero.
		if err := balances.SetQuantity(source.ID, source.Quantity-input.Quantity); err != nil {
			return fmt.Errorf("debit source balance: %w", err)
		}

		if err := uc.credit(balances, input, lot, source.ExpiryDate, now); err != nil {
			return err
		}

		movement := &entity.Movement{
			ID:             movementID,
			ProductID:      input.ProductID,
			FromLocationID: &input.FromLocationID,
			ToLocationID:   &input.ToLocationID,
			Quantity:       input.Quantity,
			Type:           entity.MovementTypeTRANSFER,
			Reason:         &reason,
			PerformedBy:    performedBy,
			CreatedAt:      now,
		}
		if err := movements.Create(movement); err != nil {
			return fmt.Errorf("record transfer movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &TransferResult{
		Message:    fmt.Sprintf("Traslado de %d unidades confirmado", input.Quantity),
		MovementID: movementID,
		LotNumber:  lot,
	}, nil
}

// credit acredita la cantidad en el destino con un upsert atómico: inserta la
// fila (copiando la fecha de vencimiento del origen) o acumula sobre la
// existente, todo en una sola sentencia. Un buscar-luego-insertar perdería la
// carrera contra un creador concurrente y el insert fallido dejaría la
// transacción abortada; con el upsert el conflicto se resuelve sin abortar.
func (uc *TransferUseCase) credit(
	balances repository.BalanceRepository,
	input TransferInput,
	lot string,
	expiryDate *time.Time,
	now time.Time,
) error {
	err := balances.AddQuantity(&entity.Balance{
		ID:         uuid.New().String(),
		ProductID:  input.ProductID,
		LocationID: input.ToLocationID,
		Quantity:   input.Quantity,
		LotNumber:  lot,
		ExpiryDate: expiryDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return fmt.Errorf("credit destination balance: %w", err)
	}
	return nil
}
