package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/wms-core/internal/application/inventory"
	"github.com/tu-usuario/wms-core/internal/domain"
	"github.com/tu-usuario/wms-core/internal/domain/entity"
	"github.com/tu-usuario/wms-core/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// errTxAborted imita el contrato del driver: tras una sentencia fallida la
// transacción queda abortada y toda sentencia posterior falla hasta el rollback.
var errTxAborted = errors.New("transacción abortada: las sentencias se ignoran hasta el rollback")

// memStore guarda saldos y movimientos en memoria. El TxRunner fake serializa
// las transacciones con un mutex y restaura un snapshot si el callback falla,
// imitando el Commit/Rollback real. El flag aborted reproduce el contrato de
// PostgreSQL: una sentencia fallida deja la transacción inservible.
type memStore struct {
	mu        sync.Mutex
	balances  map[string]*entity.Balance // key: product|location|lot
	movements []*entity.Movement
	nextID    int
	aborted   bool
}

func newMemStore() *memStore {
	return &memStore{balances: make(map[string]*entity.Balance)}
}

func balanceKey(productID, locationID, lot string) string {
	return productID + "|" + locationID + "|" + lot
}

func (s *memStore) seed(productID, locationID string, quantity int64, lot string) {
	s.nextID++
	id := fmt.Sprintf("bal-%d", s.nextID)
	s.balances[balanceKey(productID, locationID, lot)] = &entity.Balance{
		ID:         id,
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   quantity,
		LotNumber:  lot,
	}
}

func (s *memStore) quantity(productID, locationID, lot string) int64 {
	b, ok := s.balances[balanceKey(productID, locationID, lot)]
	if !ok {
		return 0
	}
	return b.Quantity
}

func (s *memStore) totalQuantity(productID string) int64 {
	var total int64
	for _, b := range s.balances {
		if b.ProductID == productID {
			total += b.Quantity
		}
	}
	return total
}

func (s *memStore) snapshot() (map[string]*entity.Balance, []*entity.Movement) {
	balances := make(map[string]*entity.Balance, len(s.balances))
	for k, v := range s.balances {
		cp := *v
		balances[k] = &cp
	}
	movements := append([]*entity.Movement(nil), s.movements...)
	return balances, movements
}

// fakeBalanceRepo implementa repository.BalanceRepository sobre memStore.
// Cada método respeta el contrato del driver: si una sentencia anterior falló,
// la transacción está abortada y nada más puede ejecutarse.
type fakeBalanceRepo struct {
	store *memStore
	// beforeAdd se ejecuta justo antes del upsert: permite simular que otra
	// transacción creó la fila destino en la ventana entre el bloqueo del
	// origen y la acreditación.
	beforeAdd func()
}

// fail marca la transacción como abortada y devuelve el error de la sentencia.
func (r *fakeBalanceRepo) fail(err error) error {
	r.store.aborted = true
	return err
}

func (r *fakeBalanceRepo) FindByKey(productID, locationID, lotNumber string) (*entity.Balance, error) {
	if r.store.aborted {
		return nil, errTxAborted
	}
	b, ok := r.store.balances[balanceKey(productID, locationID, lotNumber)]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBalanceRepo) FindByKeyForUpdate(productID, locationID, lotNumber string) (*entity.Balance, error) {
	return r.FindByKey(productID, locationID, lotNumber)
}

func (r *fakeBalanceRepo) SetQuantity(balanceID string, quantity int64) error {
	if r.store.aborted {
		return errTxAborted
	}
	for key, b := range r.store.balances {
		if b.ID != balanceID {
			continue
		}
		if quantity == 0 {
			delete(r.store.balances, key)
		} else {
			b.Quantity = quantity
		}
		return nil
	}
	return r.fail(domain.ErrNotFound)
}

// AddQuantity acumula o inserta en una sola sentencia, como el upsert real:
// no hay ventana entre la comprobación y el insert, y por tanto ningún insert
// fallido que deje la transacción abortada.
func (r *fakeBalanceRepo) AddQuantity(balance *entity.Balance) error {
	if r.store.aborted {
		return errTxAborted
	}
	if r.beforeAdd != nil {
		hook := r.beforeAdd
		r.beforeAdd = nil
		hook()
	}
	key := balanceKey(balance.ProductID, balance.LocationID, balance.LotNumber)
	if existing, ok := r.store.balances[key]; ok {
		existing.Quantity += balance.Quantity
		return nil
	}
	cp := *balance
	r.store.balances[key] = &cp
	return nil
}

func (r *fakeBalanceRepo) DeleteByID(id string) error {
	if r.store.aborted {
		return errTxAborted
	}
	for key, b := range r.store.balances {
		if b.ID == id {
			delete(r.store.balances, key)
			return nil
		}
	}
	return r.fail(domain.ErrNotFound)
}

func (r *fakeBalanceRepo) ListByProduct(productID string) ([]*entity.Balance, error) {
	if r.store.aborted {
		return nil, errTxAborted
	}
	var out []*entity.Balance
	for _, b := range r.store.balances {
		if b.ProductID == productID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeMovementRepo implementa repository.MovementRepository sobre memStore.
type fakeMovementRepo struct {
	store *memStore
}

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	if r.store.aborted {
		return errTxAborted
	}
	if m.Quantity <= 0 || m.ProductID == "" {
		r.store.aborted = true
		return domain.ErrInvalidInput
	}
	cp := *m
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(string, *time.Time, *time.Time, int, int) ([]*entity.Movement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) ListRecent(int, int) ([]*entity.Movement, error) {
	return nil, nil
}

// fakeTxRunner serializa transacciones y revierte al snapshot si fn falla.
type fakeTxRunner struct {
	store       *memStore
	balanceRepo *fakeBalanceRepo
}

func newFakeTxRunner(store *memStore) *fakeTxRunner {
	return &fakeTxRunner{store: store, balanceRepo: &fakeBalanceRepo{store: store}}
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	balances repository.BalanceRepository,
	movements repository.MovementRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Begin: transacción nueva, sin estado abortado heredado.
	r.store.aborted = false
	savedBalances, savedMovements := r.store.snapshot()
	err := fn(r.balanceRepo, &fakeMovementRepo{store: r.store})
	// Rollback/Commit cierran la transacción en cualquier caso.
	r.store.aborted = false
	if err != nil {
		r.store.balances = savedBalances
		r.store.movements = savedMovements
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de traslado
// ──────────────────────────────────────────────────────────────────────────────

const (
	prodA = "prod-a"
	locA  = "loc-a"
	locB  = "loc-b"
)

func newTransferFixture() (*memStore, *fakeTxRunner, *inventory.TransferUseCase) {
	store := newMemStore()
	runner := newFakeTxRunner(store)
	return store, runner, inventory.NewTransferUseCase(runner)
}

func TestTransfer_MueveCantidadYConservaElTotal(t *testing.T) {
	store, _, uc := newTransferFixture()
	store.seed(prodA, locA, 100, "")
	store.seed(prodA, locB, 10, "")

	res, err := uc.Transfer(context.Background(), inventory.TransferInput{
		ProductID:      prodA,
		FromLocationID: locA,
		ToLocationID:   locB,
		Quantity:       30,
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, int64(70), store.quantity(prodA, locA, ""))
	assert.Equal(t, int64(40), store.quantity(prodA, locB, ""))
	assert.Equal(t, int64(110), store.totalQuantity(prodA), "el total no cambia con un traslado")
}

func TestTransfer_RegistraUnSoloMovimientoTransfer(t *testing.T) {
	store, _, uc := newTransferFixture()
	store.seed(prodA, locA, 50, "")

	res, err := uc.Transfer(context.Background(), inventory.TransferInput{
		ProductID:      prodA,
		FromLocationID: locA,
		ToLocationID:   locB,
		Quantity:       20,
		PerformedBy:    "tester",
	})
	require.NoError(t, err)

	require.Len(t, store.movements, 1)
	m := store.movements[0]
	assert.Equal(t, res.MovementID, m.ID)
	assert.Equal(t, entity.MovementTypeTRANSFER, m.Type)
	assert.Equal(t, int64(20), m.Quantity, "la cantidad registrada es positiva")
	require.NotNil(t, m.FromLocationID)
	require.NotNil(t, m.ToLocationID)
	assert.Equal(t, locA, *m.FromLocationID)
	assert.Equal(t, locB, *m.ToLocationID)
	assert.Equal(t, "tester", m.PerformedBy)
	require.NotNil(t, m.Reason)
	assert.Equal(t, "Manual transfer", *m.Reason)
}

func TestTransfer_SaldoEnCeroSeBorra(t *testing.T) {
	store, _, uc := newTransferFixture()
	store.seed(prodA, locA, 25, "")

	_, err := uc.Transfer(context.Background(), inventory.TransferInput{
		ProductID:      prodA,
		FromLocationID: locA,
		ToLocationID:   locB,
		Quantity:       25,
	})
	require.NoError(t, err)

	_, exists := store.balances[balanceKey(prodA, locA, "")]
	assert.False(t, exists, "la fila de origen agotada debe borrarse, no quedar en cero")
	assert.Equal(t, int64(25), store.quantity(prodA, locB, ""))
}

func TestTransfer_StockInsuficienteReportaDisponible(t *testing.T) {
	store, _, uc := newTransferFixture()
	store.seed(prodA, locA, 5, "")

	_, err := uc.Transfer(context.Background(), inventory.TransferInput{
		ProductID:      prodA,
		FromLocationID: locA,
		ToLocationID:   locB,
		Quantity:       10,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, int64(5), insErr.Available)

	// Nada cambió: rollback completo.
	assert.Equal(t, int64(5), store.quantity(prodA, locA, ""))
	assert.Equal(t, int64(0), store.quantity(prodA, locB, ""))
	assert.Empty(t, store.movements)
}

func TestTransfer_OrigenInexistente(t *testing.T) {
	_, _, uc := newTransferFixture()

	_, err := uc.Transfer(context.Background(), inventory.TransferInput{
		ProductID:      prodA,
		FromLocationID: locA,
		ToLocationID:   locB,
		Quantity:       1,
	})
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
}

func TestTransfer_EntradaInvalida(t *testing.T) {
	store, _, uc := newTransferFixture()
	store.seed(prodA, locA, 100, "")

	cases := []struct {
		name  string
		input inventory.TransferInput
	}{
		{"cantidad cero", inventory.TransferInput{ProductID: prodA, FromLocationID: locA, ToLocationID: locB, Quantity: 0}},
		{"cantidad negativa", inventory.TransferInput{ProductID: prodA, FromLocationID: locA, ToLocationID: locB, Quantity: -5}},
		{"misma ubicación", inventory.TransferInput{ProductID: prodA, FromLocationID: locA, ToLocationID: locA, Quantity: 10}},
		{"sin producto", inventory.TransferInput{FromLocationID: locA, ToLocationID: locB, Quantity: 10}},
		{"sin origen", inventory.TransferInput{ProductID: prodA, ToLocationID: locB, Quantity: 10}},
		{"sin destino", inventory.TransferInput{ProductID: prodA, FromLocationID: locA, Quantity: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Transfer(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, int64(100), store.quantity(prodA, locA, ""))
	assert.Empty(t, store.movements)
}

func TestTransfer_LotesSonBucketsSeparados(t *testing.T) {
	store, _, uc := newTransferFixture()
	store.seed(prodA, locA, 40, "LOTE-1")
	store.seed(prodA, locA, 60, "LOTE-2")

	lot := "LOTE-1"
	_, err := uc.Transfer(context.Background(), inventory.TransferInput{
		ProductID:      prodA,
		FromLocationID: locA,
		ToLocationID:   locB,
		Quantity:       15,
		LotNumber:      &lot,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(25), store.quantity(prodA, locA, "LOTE-1"))
	assert.Equal(t, int64(60), store.quantity(prodA, locA, "LOTE-2"), "el otro lote no se toca")
	assert.Equal(t, int64(15), store.quantity(prodA, locB, "LOTE-1"))
}

func TestTransfer_LoteNilEsLoteVacio(t *testing.T) {
	store, _, uc := newTransferFixture()
	store.seed(prodA, locA, 30, "")

	res, err := uc.Transfer(context.Background(), inventory.TransferInput{
		ProductID:      prodA,
		FromLocationID: locA,
		ToLocationID:   locB,
		Quantity:       10,
		LotNumber:      nil,
	})
	require.NoError(t, err)
	assert.Equal(t, "", res.LotNumber)
	assert.Equal(t, int64(20), store.quantity(prodA, locA, ""))
	assert.Equal(t, int64(10), store.quantity(prodA, locB, ""))
}

func TestTransfer_CopiaFechaDeVencimientoAlCrearDestino(t *testing.T) {
	store, _, uc := newTransferFixture()
	store.seed(prodA, locA, 30, "LOTE-X")
	expiry := mustTime(t, "2027-01-15")
	store.balances[balanceKey(prodA, locA, "LOTE-X")].ExpiryDate = &expiry

	lot := "LOTE-X"
	_, err := uc.Transfer(context.Background(), inventory.TransferInput{
		ProductID:      prodA,
		FromLocationID: locA,
		ToLocationID:   locB,
		Quantity:       30,
		LotNumber:      &lot,
	})
	require.NoError(t, err)

	dest := store.balances[balanceKey(prodA, locB, "LOTE-X")]
	require.NotNil(t, dest)
	require.NotNil(t, dest.ExpiryDate)
	assert.True(t, dest.ExpiryDate.Equal(expiry))
}

func TestTransfer_CarreraDeInsertEnDestinoAcumulaSinAbortar(t *testing.T) {
	store, runner, uc := newTransferFixture()
	store.seed(prodA, locA, 50, "")

	// Otra transacción crea la fila destino en la ventana entre el bloqueo del
	// origen y la acreditación. Un buscar-luego-insertar perdería aquí con el
	// constraint único y dejaría la transacción abortada (toda sentencia
	// posterior del fake falla); el upsert debe acumular sobre la fila
	// ganadora en una sola sentencia.
	runner.balanceRepo.beforeAdd = func() {
		store.balances[balanceKey(prodA, locB, "")] = &entity.Balance{
			ID: "bal-race", ProductID: prodA, LocationID: locB, Quantity: 7, LotNumber: "",
		}
	}

	_, err := uc.Transfer(context.Background(), inventory.TransferInput{
		ProductID:      prodA,
		FromLocationID: locA,
		ToLocationID:   locB,
		Quantity:       20,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(30), store.quantity(prodA, locA, ""))
	assert.Equal(t, int64(27), store.quantity(prodA, locB, ""), "acumula sobre la fila ganadora")
	assert.Len(t, store.movements, 1)
}

func TestTransfer_ConcurrenciaConservaTotalYNuncaNegativo(t *testing.T) {
	store, _, uc := newTransferFixture()
	store.seed(prodA, locA, 100, "")

	const workers = 20
	var wg sync.WaitGroup
	var successes int32
	var mu sync.Mutex

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Transfer(context.Background(), inventory.TransferInput{
				ProductID:      prodA,
				FromLocationID: locA,
				ToLocationID:   locB,
				Quantity:       10,
			})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			// Las demás deben fallar limpio por stock insuficiente o porque la
			// fila de origen ya se borró al agotarse.
			assert.True(t,
				errorIsAny(err, domain.ErrInsufficientStock, domain.ErrSourceNotFound),
				"error inesperado: %v", err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), successes, "solo caben 10 traslados de 10 en 100 unidades")
	assert.Equal(t, int64(0), store.quantity(prodA, locA, ""))
	assert.Equal(t, int64(100), store.quantity(prodA, locB, ""))
	assert.Equal(t, int64(100), store.totalQuantity(prodA), "conservación bajo concurrencia")
	assert.Len(t, store.movements, 10, "un movimiento por traslado confirmado")
	for _, m := range store.movements {
		assert.Greater(t, m.Quantity, int64(0))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de ajuste
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_PositivoCreaSaldoYMovimiento(t *testing.T) {
	store := newMemStore()
	uc := inventory.NewAdjustUseCase(newFakeTxRunner(store))

	res, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID:  prodA,
		LocationID: locA,
		Quantity:   15,
		Reason:     "conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), res.NewQuantity)
	assert.Equal(t, int64(15), store.quantity(prodA, locA, ""))

	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.MovementTypeADJUST, store.movements[0].Type)
	assert.Equal(t, int64(15), store.movements[0].Quantity)
}

func TestAdjust_NegativoMayorQueDisponibleSeRechaza(t *testing.T) {
	store := newMemStore()
	store.seed(prodA, locA, 8, "")
	uc := inventory.NewAdjustUseCase(newFakeTxRunner(store))

	_, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID:  prodA,
		LocationID: locA,
		Quantity:   -20,
		Reason:     "merma",
	})
	require.Error(t, err)
	var insErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, int64(8), insErr.Available)
	assert.Equal(t, int64(8), store.quantity(prodA, locA, ""))
}

func TestAdjust_NegativoHastaCeroBorraLaFila(t *testing.T) {
	store := newMemStore()
	store.seed(prodA, locA, 12, "")
	uc := inventory.NewAdjustUseCase(newFakeTxRunner(store))

	res, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID:  prodA,
		LocationID: locA,
		Quantity:   -12,
		Reason:     "merma total",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.NewQuantity)

	_, exists := store.balances[balanceKey(prodA, locA, "")]
	assert.False(t, exists)
	require.Len(t, store.movements, 1)
	assert.Equal(t, int64(12), store.movements[0].Quantity, "el libro registra magnitudes positivas")
}

func TestAdjust_SinRazonNiCantidadSeRechaza(t *testing.T) {
	store := newMemStore()
	uc := inventory.NewAdjustUseCase(newFakeTxRunner(store))

	_, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: prodA, LocationID: locA, Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "razón obligatoria")

	_, err = uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: prodA, LocationID: locA, Quantity: 0, Reason: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero no ajusta nada")
}

func TestAdjust_PositivoConCreadorConcurrenteAcumula(t *testing.T) {
	store := newMemStore()
	runner := newFakeTxRunner(store)
	uc := inventory.NewAdjustUseCase(runner)

	// La fila no existía al leer, pero otra transacción la crea antes del
	// upsert. El ajuste no debe fallar con duplicado ni abortar: acumula.
	runner.balanceRepo.beforeAdd = func() {
		store.balances[balanceKey(prodA, locA, "")] = &entity.Balance{
			ID: "bal-race", ProductID: prodA, LocationID: locA, Quantity: 3, LotNumber: "",
		}
	}

	_, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: prodA, LocationID: locA, Quantity: 10, Reason: "conteo físico",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(13), store.quantity(prodA, locA, ""))
	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.MovementTypeADJUST, store.movements[0].Type)
}

// ──────────────────────────────────────────────────────────────────────────────
// Utilidades
// ──────────────────────────────────────────────────────────────────────────────

func errorIsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}
