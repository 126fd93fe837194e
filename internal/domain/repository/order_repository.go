package repository

import "github.com/tu-usuario/wms-core/internal/domain/entity"

// InboundOrderRepository define el puerto de persistencia para órdenes de entrada.
type InboundOrderRepository interface {
	Create(order *entity.InboundOrder, items []*entity.InboundOrderItem) error
	GetByID(id string) (*entity.InboundOrder, []*entity.InboundOrderItem, error)
	// GetItemForUpdate bloquea la línea para avanzar received_quantity sin carreras.
	GetItemForUpdate(itemID string) (*entity.InboundOrderItem, error)
	UpdateItemReceived(itemID string, receivedQuantity int64) error
	UpdateStatus(orderID, status string) error
	List(limit, offset int) ([]*entity.InboundOrder, error)
}

// OutboundOrderRepository define el puerto de persistencia para órdenes de salida.
type OutboundOrderRepository interface {
	Create(order *entity.OutboundOrder, items []*entity.OutboundOrderItem) error
	GetByID(id string) (*entity.OutboundOrder, []*entity.OutboundOrderItem, error)
	GetItemForUpdate(itemID string) (*entity.OutboundOrderItem, error)
	UpdateItemPicked(itemID string, pickedQuantity int64) error
	UpdateStatus(orderID, status string) error
	List(limit, offset int) ([]*entity.OutboundOrder, error)
}
