package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrSourceNotFound     = errors.New("saldo de origen no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrOrderNotOpen       = errors.New("la orden no admite más operaciones")
	// ErrTxConflict señala un conflicto transitorio entre transacciones
	// concurrentes (deadlock o fallo de serialización): la operación no se
	// aplicó y puede reintentarse tal cual.
	ErrTxConflict = errors.New("conflicto de concurrencia, reintente la operación")
)

// InsufficientStockError reporta la cantidad disponible cuando el stock no alcanza
// la cantidad solicitada. Compatible con errors.Is(err, ErrInsufficientStock).
type InsufficientStockError struct {
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d", e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
