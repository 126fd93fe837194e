package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/wms-core/internal/domain/stock"
)

// TestClassify_Limites verifica los bordes de la clasificación con umbrales
// min=5, max=100.
func TestClassify_Limites(t *testing.T) {
	cases := []struct {
		name     string
		total    int64
		min, max int64
		want     stock.Status
	}{
		{"cero es agotado", 0, 5, 100, stock.StatusOutOfStock},
		{"debajo del minimo es bajo", 4, 5, 100, stock.StatusLow},
		{"justo en el minimo es normal", 5, 5, 100, stock.StatusNormal},
		{"dentro del rango es normal", 50, 5, 100, stock.StatusNormal},
		{"justo en el maximo es normal", 100, 5, 100, stock.StatusNormal},
		{"sobre el maximo es exceso", 101, 5, 100, stock.StatusOverstock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stock.Classify(tc.total, tc.min, tc.max))
		})
	}
}

// TestClassify_CeroAntesQueMinimo: con minimo 0 y total 0, gana out_of_stock,
// no normal — el chequeo de cero va primero.
func TestClassify_CeroAntesQueMinimo(t *testing.T) {
	assert.Equal(t, stock.StatusOutOfStock, stock.Classify(0, 0, 100))
}
