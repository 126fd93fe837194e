package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/wms-core/internal/application/dto"
	"github.com/tu-usuario/wms-core/internal/domain"
	"github.com/tu-usuario/wms-core/internal/domain/entity"
	"github.com/tu-usuario/wms-core/internal/domain/repository"
)

// OrderUseCase gestiona órdenes de entrada y salida. Las operaciones que mutan
// inventario (Receive, Ship) corren completas dentro de una transacción: el
// saldo, el movimiento y el avance de la línea se confirman juntos o ninguno.
type OrderUseCase struct {
	txRunner     OrderTxRunner
	inboundRepo  repository.InboundOrderRepository
	outboundRepo repository.OutboundOrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner OrderTxRunner,
	inboundRepo repository.InboundOrderRepository,
	outboundRepo repository.OutboundOrderRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:     txRunner,
		inboundRepo:  inboundRepo,
		outboundRepo: outboundRepo,
	}
}

// ── Órdenes de entrada ────────────────────────────────────────────────────────

// CreateInbound da de alta una orden de entrada en estado PENDING.
func (uc *OrderUseCase) CreateInbound(ctx context.Context, req dto.CreateInboundOrderRequest) (*dto.InboundOrderResponse, error) {
	now := time.Now()
	order := &entity.InboundOrder{
		ID:           uuid.New().String(),
		OrderNumber:  req.OrderNumber,
		SupplierName: req.SupplierName,
		Status:       entity.InboundStatusPending,
		ExpectedDate: req.ExpectedDate,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	items := make([]*entity.InboundOrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		items = append(items, &entity.InboundOrderItem{
			ID:               uuid.New().String(),
			OrderID:          order.ID,
			ProductID:        in.ProductID,
			ExpectedQuantity: in.ExpectedQuantity,
			LotNumber:        entity.NormalizeLot(in.LotNumber),
			ExpiryDate:       in.ExpiryDate,
		})
	}
	if err := uc.inboundRepo.Create(order, items); err != nil {
		return nil, err
	}
	return toInboundResponse(order, items), nil
}

// GetInbound obtiene una orden de entrada con sus líneas.
func (uc *OrderUseCase) GetInbound(ctx context.Context, id string) (*dto.InboundOrderResponse, error) {
	order, items, err := uc.inboundRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toInboundResponse(order, items), nil
}

// ListInbound lista órdenes de entrada.
func (uc *OrderUseCase) ListInbound(ctx context.Context, page dto.PageRequest) ([]dto.InboundOrderResponse, error) {
	page.DefaultPage()
	orders, err := uc.inboundRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InboundOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *toInboundResponse(o, nil))
	}
	return out, nil
}

// Receive recibe mercancía contra una línea: acredita el saldo en la ubicación
// indicada, deja un movimiento IN referenciando la orden y avanza la cantidad
// recibida. Recibir más de lo esperado se rechaza. Cuando todas las líneas
// quedan completas la orden pasa a COMPLETED; si no, a RECEIVING.
func (uc *OrderUseCase) Receive(ctx context.Context, orderID string, req dto.ReceiveItemRequest, performedBy string) error {
	if req.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	order, _, err := uc.inboundRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status != entity.InboundStatusPending && order.Status != entity.InboundStatusReceiving {
		return domain.ErrOrderNotOpen
	}
	if performedBy == "" {
		performedBy = "system"
	}

	now := time.Now()
	refType := "inbound_order"

	return uc.txRunner.RunInbound(ctx, func(
		balances repository.BalanceRepository,
		movements repository.MovementRepository,
		orders repository.InboundOrderRepository,
	) error {
		item, err := orders.GetItemForUpdate(req.ItemID)
		if err != nil {
			return err
		}
		if item == nil || item.OrderID != orderID {
			return domain.ErrNotFound
		}
		if item.ReceivedQuantity+req.Quantity > item.ExpectedQuantity {
			return domain.ErrInvalidInput
		}

		// Acreditar el saldo en destino (crear la fila si no existe).
		if err := creditBalance(balances, item.ProductID, req.LocationID, item.LotNumber, req.Quantity, item.ExpiryDate, now); err != nil {
			return err
		}

		movement := &entity.Movement{
			ID:            uuid.New().String(),
			ProductID:     item.ProductID,
			ToLocationID:  &req.LocationID,
			Quantity:      req.Quantity,
			Type:          entity.MovementTypeIN,
			ReferenceType: &refType,
			ReferenceID:   &orderID,
			PerformedBy:   performedBy,
			CreatedAt:     now,
		}
		if err := movements.Create(movement); err != nil {
			return fmt.Errorf("record receipt movement: %w", err)
		}

		if err := orders.UpdateItemReceived(item.ID, item.ReceivedQuantity+req.Quantity); err != nil {
			return err
		}
		return uc.advanceInboundStatus(orders, orderID)
	})
}

// advanceInboundStatus recalcula el estado según el progreso de las líneas.
func (uc *OrderUseCase) advanceInboundStatus(orders repository.InboundOrderRepository, orderID string) error {
	_, items, err := orders.GetByID(orderID)
	if err != nil {
		return err
	}
	complete := true
	for _, it := range items {
		if it.ReceivedQuantity < it.ExpectedQuantity {
			complete = false
			break
		}
	}
	status := entity.InboundStatusReceiving
	if complete {
		status = entity.InboundStatusCompleted
	}
	return orders.UpdateStatus(orderID, status)
}

// CancelInbound cancela una orden de entrada que aún no terminó.
func (uc *OrderUseCase) CancelInbound(ctx context.Context, id string) error {
	order, _, err := uc.inboundRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status == entity.InboundStatusCompleted || order.Status == entity.InboundStatusCancelled {
		return domain.ErrOrderNotOpen
	}
	return uc.inboundRepo.UpdateStatus(id, entity.InboundStatusCancelled)
}

// ── Órdenes de salida ─────────────────────────────────────────────────────────

// CreateOutbound da de alta una orden de salida en estado PENDING.
func (uc *OrderUseCase) CreateOutbound(ctx context.Context, req dto.CreateOutboundOrderRequest) (*dto.OutboundOrderResponse, error) {
	now := time.Now()
	priority := req.Priority
	if priority <= 0 {
		priority = 5
	}
	order := &entity.OutboundOrder{
		ID:           uuid.New().String(),
		OrderNumber:  req.OrderNumber,
		CustomerName: req.CustomerName,
		Status:       entity.OutboundStatusPending,
		Priority:     priority,
		ShipDate:     req.ShipDate,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	items := make([]*entity.OutboundOrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		items = append(items, &entity.OutboundOrderItem{
			ID:                uuid.New().String(),
			OrderID:           order.ID,
			ProductID:         in.ProductID,
			RequestedQuantity: in.RequestedQuantity,
		})
	}
	if err := uc.outboundRepo.Create(order, items); err != nil {
		return nil, err
	}
	return toOutboundResponse(order, items), nil
}

// GetOutbound obtiene una orden de salida con sus líneas.
func (uc *OrderUseCase) GetOutbound(ctx context.Context, id string) (*dto.OutboundOrderResponse, error) {
	order, items, err := uc.outboundRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOutboundResponse(order, items), nil
}

// ListOutbound lista órdenes de salida.
func (uc *OrderUseCase) ListOutbound(ctx context.Context, page dto.PageRequest) ([]dto.OutboundOrderResponse, error) {
	page.DefaultPage()
	orders, err := uc.outboundRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OutboundOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *toOutboundResponse(o, nil))
	}
	return out, nil
}

// Ship despacha mercancía contra una línea: descuenta el saldo de la ubicación
// indicada (con la fila bloqueada), deja un movimiento OUT referenciando la
// orden y avanza la cantidad despachada. Stock insuficiente devuelve el
// disponible real y revierte todo. Con todas las líneas completas la orden
// pasa a SHIPPED; si no, a PICKING.
func (uc *OrderUseCase) Ship(ctx context.Context, orderID string, req dto.ShipItemRequest, performedBy string) error {
	if req.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	order, _, err := uc.outboundRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status != entity.OutboundStatusPending && order.Status != entity.OutboundStatusPicking {
		return domain.ErrOrderNotOpen
	}
	if performedBy == "" {
		performedBy = "system"
	}

	lot := entity.NormalizeLot(req.LotNumber)
	now := time.Now()
	refType := "outbound_order"

	return uc.txRunner.RunOutbound(ctx, func(
		balances repository.BalanceRepository,
		movements repository.MovementRepository,
		orders repository.OutboundOrderRepository,
	) error {
		item, err := orders.GetItemForUpdate(req.ItemID)
		if err != nil {
			return err
		}
		if item == nil || item.OrderID != orderID {
			return domain.ErrNotFound
		}
		if item.PickedQuantity+req.Quantity > item.RequestedQuantity {
			return domain.ErrInvalidInput
		}

		balance, err := balances.FindByKeyForUpdate(item.ProductID, req.LocationID, lot)
		if err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}
		if balance == nil {
			return domain.ErrSourceNotFound
		}
		if balance.Quantity < req.Quantity {
			return &domain.InsufficientStockError{Available: balance.Quantity}
		}
		if err := balances.SetQuantity(balance.ID, balance.Quantity-req.Quantity); err != nil {
			return fmt.Errorf("debit balance: %w", err)
		}

		movement := &entity.Movement{
			ID:             uuid.New().String(),
			ProductID:      item.ProductID,
			FromLocationID: &req.LocationID,
			Quantity:       req.Quantity,
			Type:           entity.MovementTypeOUT,
			ReferenceType:  &refType,
			ReferenceID:    &orderID,
			PerformedBy:    performedBy,
			CreatedAt:      now,
		}
		if err := movements.Create(movement); err != nil {
			return fmt.Errorf("record shipment movement: %w", err)
		}

		if err := orders.UpdateItemPicked(item.ID, item.PickedQuantity+req.Quantity); err != nil {
			return err
		}
		return uc.advanceOutboundStatus(orders, orderID)
	})
}

// advanceOutboundStatus recalcula el estado según el progreso de las líneas.
func (uc *OrderUseCase) advanceOutboundStatus(orders repository.OutboundOrderRepository, orderID string) error {
	_, items, err := orders.GetByID(orderID)
	if err != nil {
		return err
	}
	complete := true
	for _, it := range items {
		if it.PickedQuantity < it.RequestedQuantity {
			complete = false
			break
		}
	}
	status := entity.OutboundStatusPicking
	if complete {
		status = entity.OutboundStatusShipped
	}
	return orders.UpdateStatus(orderID, status)
}

// CancelOutbound cancela una orden de salida que aún no se despachó.
func (uc *OrderUseCase) CancelOutbound(ctx context.Context, id string) error {
	order, _, err := uc.outboundRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status == entity.OutboundStatusShipped || order.Status == entity.OutboundStatusCancelled {
		return domain.ErrOrderNotOpen
	}
	return uc.outboundRepo.UpdateStatus(id, entity.OutboundStatusCancelled)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// creditBalance acredita cantidad sobre el triple (producto, ubicación, lote)
// con un upsert atómico: una creación concurrente del mismo triple se resuelve
// dentro de la misma sentencia, sin un insert fallido que aborte la transacción.
func creditBalance(
	balances repository.BalanceRepository,
	productID, locationID, lot string,
	quantity int64,
	expiryDate *time.Time,
	now time.Time,
) error {
	err := balances.AddQuantity(&entity.Balance{
		ID:         uuid.New().String(),
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   quantity,
		LotNumber:  lot,
		ExpiryDate: expiryDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}
	return nil
}

func toInboundResponse(o *entity.InboundOrder, items []*entity.InboundOrderItem) *dto.InboundOrderResponse {
	resp := &dto.InboundOrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		SupplierName: o.SupplierName,
		Status:       o.Status,
		ExpectedDate: o.ExpectedDate,
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.InboundOrderItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			ExpectedQuantity: it.ExpectedQuantity,
			ReceivedQuantity: it.ReceivedQuantity,
			LotNumber:        it.LotNumber,
			ExpiryDate:       it.ExpiryDate,
		})
	}
	return resp
}

func toOutboundResponse(o *entity.OutboundOrder, items []*entity.OutboundOrderItem) *dto.OutboundOrderResponse {
	resp := &dto.OutboundOrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerName: o.CustomerName,
		Status:       o.Status,
		Priority:     o.Priority,
		ShipDate:     o.ShipDate,
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OutboundOrderItemResponse{
			ID:                it.ID,
			ProductID:         it.ProductID,
			RequestedQuantity: it.RequestedQuantity,
			PickedQuantity:    it.PickedQuantity,
		})
	}
	return resp
}
