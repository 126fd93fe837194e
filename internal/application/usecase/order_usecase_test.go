package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/wms-core/internal/application/dto"
	"github.com/tu-usuario/wms-core/internal/application/usecase"
	"github.com/tu-usuario/wms-core/internal/domain"
	"github.com/tu-usuario/wms-core/internal/domain/entity"
	"github.com/tu-usuario/wms-core/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el flujo de órdenes
// ──────────────────────────────────────────────────────────────────────────────

type orderStore struct {
	mu        sync.Mutex
	balances  map[string]*entity.Balance // key: product|location|lot
	movements []*entity.Movement

	inbound       map[string]*entity.InboundOrder
	inboundItems  map[string]*entity.InboundOrderItem
	outbound      map[string]*entity.OutboundOrder
	outboundItems map[string]*entity.OutboundOrderItem

	// beforeAdd simula un creador concurrente del saldo justo antes del upsert.
	beforeAdd func()
}

func newOrderStore() *orderStore {
	return &orderStore{
		balances:      make(map[string]*entity.Balance),
		inbound:       make(map[string]*entity.InboundOrder),
		inboundItems:  make(map[string]*entity.InboundOrderItem),
		outbound:      make(map[string]*entity.OutboundOrder),
		outboundItems: make(map[string]*entity.OutboundOrderItem),
	}
}

func key(productID, locationID, lot string) string {
	return productID + "|" + locationID + "|" + lot
}

func (s *orderStore) quantity(productID, locationID, lot string) int64 {
	if b, ok := s.balances[key(productID, locationID, lot)]; ok {
		return b.Quantity
	}
	return 0
}

type obBalanceRepo struct{ s *orderStore }

func (r obBalanceRepo) FindByKey(productID, locationID, lot string) (*entity.Balance, error) {
	if b, ok := r.s.balances[key(productID, locationID, lot)]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r obBalanceRepo) FindByKeyForUpdate(productID, locationID, lot string) (*entity.Balance, error) {
	return r.FindByKey(productID, locationID, lot)
}

func (r obBalanceRepo) SetQuantity(balanceID string, quantity int64) error {
	for k, b := range r.s.balances {
		if b.ID == balanceID {
			if quantity == 0 {
				delete(r.s.balances, k)
			} else {
				b.Quantity = quantity
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

// AddQuantity acumula o inserta en una sola sentencia, como el upsert real.
func (r obBalanceRepo) AddQuantity(b *entity.Balance) error {
	if r.s.beforeAdd != nil {
		hook := r.s.beforeAdd
		r.s.beforeAdd = nil
		hook()
	}
	k := key(b.ProductID, b.LocationID, b.LotNumber)
	if existing, ok := r.s.balances[k]; ok {
		existing.Quantity += b.Quantity
		return nil
	}
	cp := *b
	r.s.balances[k] = &cp
	return nil
}

func (r obBalanceRepo) DeleteByID(id string) error {
	for k, b := range r.s.balances {
		if b.ID == id {
			delete(r.s.balances, k)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r obBalanceRepo) ListByProduct(string) ([]*entity.Balance, error) { return nil, nil }

type obMovementRepo struct{ s *orderStore }

func (r obMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r obMovementRepo) ListByProduct(string, *time.Time, *time.Time, int, int) ([]*entity.Movement, error) {
	return nil, nil
}

func (r obMovementRepo) ListRecent(int, int) ([]*entity.Movement, error) { return nil, nil }

type obInboundRepo struct{ s *orderStore }

func (r obInboundRepo) Create(o *entity.InboundOrder, items []*entity.InboundOrderItem) error {
	cp := *o
	r.s.inbound[o.ID] = &cp
	for _, it := range items {
		ic := *it
		r.s.inboundItems[it.ID] = &ic
	}
	return nil
}

func (r obInboundRepo) GetByID(id string) (*entity.InboundOrder, []*entity.InboundOrderItem, error) {
	o, ok := r.s.inbound[id]
	if !ok {
		return nil, nil, nil
	}
	oc := *o
	var items []*entity.InboundOrderItem
	for _, it := range r.s.inboundItems {
		if it.OrderID == id {
			ic := *it
			items = append(items, &ic)
		}
	}
	return &oc, items, nil
}

func (r obInboundRepo) GetItemForUpdate(itemID string) (*entity.InboundOrderItem, error) {
	if it, ok := r.s.inboundItems[itemID]; ok {
		ic := *it
		return &ic, nil
	}
	return nil, nil
}

func (r obInboundRepo) UpdateItemReceived(itemID string, received int64) error {
	it, ok := r.s.inboundItems[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	it.ReceivedQuantity = received
	return nil
}

func (r obInboundRepo) UpdateStatus(orderID, status string) error {
	o, ok := r.s.inbound[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r obInboundRepo) List(int, int) ([]*entity.InboundOrder, error) { return nil, nil }

type obOutboundRepo struct{ s *orderStore }

func (r obOutboundRepo) Create(o *entity.OutboundOrder, items []*entity.OutboundOrderItem) error {
	cp := *o
	r.s.outbound[o.ID] = &cp
	for _, it := range items {
		ic := *it
		r.s.outboundItems[it.ID] = &ic
	}
	return nil
}

func (r obOutboundRepo) GetByID(id string) (*entity.OutboundOrder, []*entity.OutboundOrderItem, error) {
	o, ok := r.s.outbound[id]
	if !ok {
		return nil, nil, nil
	}
	oc := *o
	var items []*entity.OutboundOrderItem
	for _, it := range r.s.outboundItems {
		if it.OrderID == id {
			ic := *it
			items = append(items, &ic)
		}
	}
	return &oc, items, nil
}

func (r obOutboundRepo) GetItemForUpdate(itemID string) (*entity.OutboundOrderItem, error) {
	if it, ok := r.s.outboundItems[itemID]; ok {
		ic := *it
		return &ic, nil
	}
	return nil, nil
}

func (r obOutboundRepo) UpdateItemPicked(itemID string, picked int64) error {
	it, ok := r.s.outboundItems[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	it.PickedQuantity = picked
	return nil
}

func (r obOutboundRepo) UpdateStatus(orderID, status string) error {
	o, ok := r.s.outbound[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r obOutboundRepo) List(int, int) ([]*entity.OutboundOrder, error) { return nil, nil }

// orderTxRunner serializa con mutex; los fakes mutan en sitio (sin rollback,
// los tests de rollback del motor viven junto al caso de uso de traslado).
type orderTxRunner struct{ s *orderStore }

func (r orderTxRunner) RunInbound(_ context.Context, fn func(
	balances repository.BalanceRepository,
	movements repository.MovementRepository,
	orders repository.InboundOrderRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(obBalanceRepo{r.s}, obMovementRepo{r.s}, obInboundRepo{r.s})
}

func (r orderTxRunner) RunOutbound(_ context.Context, fn func(
	balances repository.BalanceRepository,
	movements repository.MovementRepository,
	orders repository.OutboundOrderRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(obBalanceRepo{r.s}, obMovementRepo{r.s}, obOutboundRepo{r.s})
}

func newOrderFixture() (*orderStore, *usecase.OrderUseCase) {
	store := newOrderStore()
	uc := usecase.NewOrderUseCase(orderTxRunner{store}, obInboundRepo{store}, obOutboundRepo{store})
	return store, uc
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de recepción
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_AcreditaSaldoYRegistraMovimientoIN(t *testing.T) {
	store, uc := newOrderFixture()
	ctx := context.Background()

	lot := "LOTE-7"
	order, err := uc.CreateInbound(ctx, dto.CreateInboundOrderRequest{
		OrderNumber:  "IN-001",
		SupplierName: "Proveedor SA",
		Items: []dto.InboundOrderItemInput{
			{ProductID: "p1", ExpectedQuantity: 100, LotNumber: &lot},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	itemID := order.Items[0].ID

	err = uc.Receive(ctx, order.ID, dto.ReceiveItemRequest{
		ItemID: itemID, LocationID: "loc-1", Quantity: 40,
	}, "recepcionista")
	require.NoError(t, err)

	assert.Equal(t, int64(40), store.quantity("p1", "loc-1", "LOTE-7"))
	require.Len(t, store.movements, 1)
	m := store.movements[0]
	assert.Equal(t, entity.MovementTypeIN, m.Type)
	require.NotNil(t, m.ToLocationID)
	assert.Equal(t, "loc-1", *m.ToLocationID)
	require.NotNil(t, m.ReferenceType)
	assert.Equal(t, "inbound_order", *m.ReferenceType)
	assert.Equal(t, "recepcionista", m.PerformedBy)

	// Recepción parcial: la orden queda en RECEIVING.
	got, err := uc.GetInbound(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InboundStatusReceiving, got.Status)
	assert.Equal(t, int64(40), got.Items[0].ReceivedQuantity)
}

func TestReceive_CompletaLaOrdenAlLlegarALoEsperado(t *testing.T) {
	store, uc := newOrderFixture()
	ctx := context.Background()

	order, err := uc.CreateInbound(ctx, dto.CreateInboundOrderRequest{
		OrderNumber:  "IN-002",
		SupplierName: "Proveedor SA",
		Items:        []dto.InboundOrderItemInput{{ProductID: "p1", ExpectedQuantity: 50}},
	})
	require.NoError(t, err)
	itemID := order.Items[0].ID

	require.NoError(t, uc.Receive(ctx, order.ID, dto.ReceiveItemRequest{ItemID: itemID, LocationID: "loc-1", Quantity: 50}, ""))

	got, err := uc.GetInbound(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InboundStatusCompleted, got.Status)
	assert.Equal(t, int64(50), store.quantity("p1", "loc-1", ""))
}

func TestReceive_CreadorConcurrenteDelSaldoAcumula(t *testing.T) {
	store, uc := newOrderFixture()
	ctx := context.Background()

	order, err := uc.CreateInbound(ctx, dto.CreateInboundOrderRequest{
		OrderNumber:  "IN-005",
		SupplierName: "Proveedor SA",
		Items:        []dto.InboundOrderItemInput{{ProductID: "p1", ExpectedQuantity: 30}},
	})
	require.NoError(t, err)

	// Otra transacción crea la fila del saldo entre la lectura y el upsert:
	// la recepción acumula sobre ella en vez de fallar con duplicado.
	store.beforeAdd = func() {
		seedBalance(store, "p1", "loc-1", 4, "")
	}

	require.NoError(t, uc.Receive(ctx, order.ID, dto.ReceiveItemRequest{
		ItemID: order.Items[0].ID, LocationID: "loc-1", Quantity: 30,
	}, ""))

	assert.Equal(t, int64(34), store.quantity("p1", "loc-1", ""))
	require.Len(t, store.movements, 1)
}

func TestReceive_MasDeLoEsperadoSeRechaza(t *testing.T) {
	store, uc := newOrderFixture()
	ctx := context.Background()

	order, err := uc.CreateInbound(ctx, dto.CreateInboundOrderRequest{
		OrderNumber:  "IN-003",
		SupplierName: "Proveedor SA",
		Items:        []dto.InboundOrderItemInput{{ProductID: "p1", ExpectedQuantity: 10}},
	})
	require.NoError(t, err)

	err = uc.Receive(ctx, order.ID, dto.ReceiveItemRequest{
		ItemID: order.Items[0].ID, LocationID: "loc-1", Quantity: 11,
	}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(0), store.quantity("p1", "loc-1", ""))
	assert.Empty(t, store.movements)
}

func TestReceive_OrdenCanceladaNoAdmiteRecepciones(t *testing.T) {
	_, uc := newOrderFixture()
	ctx := context.Background()

	order, err := uc.CreateInbound(ctx, dto.CreateInboundOrderRequest{
		OrderNumber:  "IN-004",
		SupplierName: "Proveedor SA",
		Items:        []dto.InboundOrderItemInput{{ProductID: "p1", ExpectedQuantity: 10}},
	})
	require.NoError(t, err)
	require.NoError(t, uc.CancelInbound(ctx, order.ID))

	err = uc.Receive(ctx, order.ID, dto.ReceiveItemRequest{
		ItemID: order.Items[0].ID, LocationID: "loc-1", Quantity: 5,
	}, "")
	assert.ErrorIs(t, err, domain.ErrOrderNotOpen)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de despacho
// ──────────────────────────────────────────────────────────────────────────────

func seedBalance(store *orderStore, productID, locationID string, qty int64, lot string) {
	store.balances[key(productID, locationID, lot)] = &entity.Balance{
		ID: "bal-" + productID + "-" + locationID + "-" + lot,
		ProductID: productID, LocationID: locationID, Quantity: qty, LotNumber: lot,
	}
}

func TestShip_DescuentaSaldoYRegistraMovimientoOUT(t *testing.T) {
	store, uc := newOrderFixture()
	ctx := context.Background()
	seedBalance(store, "p1", "loc-1", 80, "")

	order, err := uc.CreateOutbound(ctx, dto.CreateOutboundOrderRequest{
		OrderNumber:  "OUT-001",
		CustomerName: "Cliente SA",
		Items:        []dto.OutboundOrderItemInput{{ProductID: "p1", RequestedQuantity: 30}},
	})
	require.NoError(t, err)

	err = uc.Ship(ctx, order.ID, dto.ShipItemRequest{
		ItemID: order.Items[0].ID, LocationID: "loc-1", Quantity: 30,
	}, "despachador")
	require.NoError(t, err)

	assert.Equal(t, int64(50), store.quantity("p1", "loc-1", ""))
	require.Len(t, store.movements, 1)
	m := store.movements[0]
	assert.Equal(t, entity.MovementTypeOUT, m.Type)
	require.NotNil(t, m.FromLocationID)
	assert.Equal(t, "loc-1", *m.FromLocationID)
	require.NotNil(t, m.ReferenceType)
	assert.Equal(t, "outbound_order", *m.ReferenceType)

	got, err := uc.GetOutbound(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OutboundStatusShipped, got.Status)
}

func TestShip_StockInsuficienteReportaDisponible(t *testing.T) {
	store, uc := newOrderFixture()
	ctx := context.Background()
	seedBalance(store, "p1", "loc-1", 5, "")

	order, err := uc.CreateOutbound(ctx, dto.CreateOutboundOrderRequest{
		OrderNumber:  "OUT-002",
		CustomerName: "Cliente SA",
		Items:        []dto.OutboundOrderItemInput{{ProductID: "p1", RequestedQuantity: 20}},
	})
	require.NoError(t, err)

	err = uc.Ship(ctx, order.ID, dto.ShipItemRequest{
		ItemID: order.Items[0].ID, LocationID: "loc-1", Quantity: 20,
	}, "")
	require.Error(t, err)

	var insErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, int64(5), insErr.Available)
	assert.Equal(t, int64(5), store.quantity("p1", "loc-1", ""))
}

func TestShip_AgotarElSaldoBorraLaFila(t *testing.T) {
	store, uc := newOrderFixture()
	ctx := context.Background()
	seedBalance(store, "p1", "loc-1", 15, "")

	order, err := uc.CreateOutbound(ctx, dto.CreateOutboundOrderRequest{
		OrderNumber:  "OUT-003",
		CustomerName: "Cliente SA",
		Items:        []dto.OutboundOrderItemInput{{ProductID: "p1", RequestedQuantity: 15}},
	})
	require.NoError(t, err)

	require.NoError(t, uc.Ship(ctx, order.ID, dto.ShipItemRequest{
		ItemID: order.Items[0].ID, LocationID: "loc-1", Quantity: 15,
	}, ""))

	_, exists := store.balances[key("p1", "loc-1", "")]
	assert.False(t, exists, "la fila agotada debe borrarse")
}
