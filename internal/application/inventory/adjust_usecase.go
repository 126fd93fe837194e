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

// AdjustUseCase corrige saldos por conteo físico: cantidad positiva acredita
// (hallazgo), negativa descuenta (merma). Siempre deja un movimiento ADJUST.
type AdjustUseCase struct {
	txRunner TxRunner
}

// NewAdjustUseCase construye el caso de uso.
func NewAdjustUseCase(txRunner TxRunner) *AdjustUseCase {
	return &AdjustUseCase{txRunner: txRunner}
}

// AdjustInput entrada del ajuste. Quantity distinta de cero; Reason obligatorio.
type AdjustInput struct {
	ProductID   string
	LocationID  string
	Quantity    int64
	LotNumber   *string
	Reason      string
	PerformedBy string
}

// AdjustResult resultado del ajuste confirmado.
type AdjustResult struct {
	NewQuantity int64
	MovementID  string
}

// Adjust aplica la corrección dentro de una transacción con la fila bloqueada.
// Un ajuste negativo mayor que el disponible se rechaza con el disponible real;
// el saldo que queda en cero se borra.
func (uc *AdjustUseCase) Adjust(ctx context.Context, input AdjustInput) (*AdjustResult, error) {
	if input.ProductID == "" || input.LocationID == "" || input.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity == 0 {
		return nil, domain.ErrInvalidInput
	}

	lot := entity.NormalizeLot(input.LotNumber)
	performedBy := input.PerformedBy
	if performedBy == "" {
		performedBy = "system"
	}

	now := time.Now()
	movementID := uuid.New().String()
	var newQuantity int64

	err := uc.txRunner.Run(ctx, func(
		balances repository.BalanceRepository,
		movements repository.MovementRepository,
	) error {
		balance, err := balances.FindByKeyForUpdate(input.ProductID, input.LocationID, lot)
		if err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}

		current := int64(0)
		if balance != nil {
			current = balance.Quantity
		}
		newQuantity = current + input.Quantity
		if newQuantity < 0 {
			return &domain.InsufficientStockError{Available: current}
		}

		switch {
		case balance != nil:
			if err := balances.SetQuantity(balance.ID, newQuantity); err != nil {
				return fmt.Errorf("apply adjustment: %w", err)
			}
		case newQuantity > 0:
			// Upsert atómico: si otra transacción creó la fila entre la
			// lectura y el insert, se acumula sobre ella en vez de fallar.
			created := &entity.Balance{
				ID:         uuid.New().String(),
				ProductID:  input.ProductID,
				LocationID: input.LocationID,
				Quantity:   newQuantity,
				LotNumber:  lot,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := balances.AddQuantity(created); err != nil {
				return fmt.Errorf("create balance: %w", err)
			}
		default:
			// Ajustar un saldo inexistente a cero no deja fila ni movimiento útil.
			return domain.ErrInvalidInput
		}

		qty := input.Quantity
		movement := &entity.Movement{
			ID:          movementID,
			ProductID:   input.ProductID,
			Quantity:    qty,
			Type:        entity.MovementTypeADJUST,
			Reason:      &input.Reason,
			PerformedBy: performedBy,
			CreatedAt:   now,
		}
		if qty > 0 {
			movement.ToLocationID = &input.LocationID
		} else {
			movement.Quantity = -qty
			movement.FromLocationID = &input.LocationID
		}
		if err := movements.Create(movement); err != nil {
			return fmt.Errorf("record adjustment movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &AdjustResult{NewQuantity: newQuantity, MovementID: movementID}, nil
}
