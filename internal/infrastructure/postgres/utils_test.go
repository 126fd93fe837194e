package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/wms-core/internal/domain"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert balance: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "40P01"}))
	assert.False(t, isUniqueViolation(errors.New("otra cosa")))
}

func TestIsTxConflict_DetectaDeadlockYFalloDeSerializacion(t *testing.T) {
	casos := []struct {
		nombre string
		err    error
		quiere bool
	}{
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"fallo de serialización", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock envuelto", fmt.Errorf("commit transaction: %w", &pgconn.PgError{Code: "40P01"}), true},
		{"violación de unicidad", &pgconn.PgError{Code: "23505"}, false},
		{"error cualquiera", errors.New("boom"), false},
		{"error de dominio", domain.ErrInvalidInput, false},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.quiere, isTxConflict(c.err))
		})
	}
}

func TestMapTxErr_TraduceConflictosAReintentables(t *testing.T) {
	err := mapTxErr(fmt.Errorf("commit transaction: %w", &pgconn.PgError{Code: "40P01"}))
	assert.ErrorIs(t, err, domain.ErrTxConflict)

	// Los errores de dominio pasan intactos: el que llamó decide cómo mapearlos.
	original := &domain.InsufficientStockError{Available: 3}
	assert.Equal(t, error(original), mapTxErr(original))
}
