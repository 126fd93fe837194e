package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/wms-core/internal/application/dto"
	"github.com/tu-usuario/wms-core/internal/application/usecase"
	"github.com/tu-usuario/wms-core/pkg/validator"
)

// OrderHandler maneja las peticiones HTTP de órdenes de entrada y salida (protegido).
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// ── Órdenes de entrada ────────────────────────────────────────────────────────

// CreateInbound godoc
// @Summary      Crear orden de entrada
// @Tags         inbound-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInboundOrderRequest  true  "order_number, supplier_name, items"
// @Success      201   {object}  dto.InboundOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inbound-orders [post]
func (h *OrderHandler) CreateInbound(c *fiber.Ctx) error {
	var req dto.CreateInboundOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validator.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	res, err := h.uc.CreateInbound(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// GetInbound godoc
// @Summary      Obtener orden de entrada con sus líneas
// @Tags         inbound-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.InboundOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inbound-orders/{id} [get]
func (h *OrderHandler) GetInbound(c *fiber.Ctx) error {
	res, err := h.uc.GetInbound(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// ListInbound godoc
// @Summary      Listar órdenes de entrada
// @Tags         inbound-orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.InboundOrderResponse
// @Router       /api/inbound-orders [get]
func (h *OrderHandler) ListInbound(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	res, err := h.uc.ListInbound(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// ReceiveInbound godoc
// @Summary      Recibir mercancía contra una línea de la orden
// @Description  Acredita el saldo en la ubicación, registra un movimiento IN y
//
//	avanza la cantidad recibida, todo en una transacción.
//
// @Tags         inbound-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la orden"
// @Param        body  body  dto.ReceiveItemRequest  true  "item_id, location_id, quantity"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inbound-orders/{id}/receive [post]
func (h *OrderHandler) ReceiveInbound(c *fiber.Ctx) error {
	var req dto.ReceiveItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validator.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.uc.Receive(c.Context(), c.Params("id"), req, GetActorName(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "recepción registrada"})
}

// CancelInbound godoc
// @Summary      Cancelar orden de entrada
// @Tags         inbound-orders
// @Security     Bearer
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inbound-orders/{id}/cancel [post]
func (h *OrderHandler) CancelInbound(c *fiber.Ctx) error {
	if err := h.uc.CancelInbound(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden cancelada"})
}

// ── Órdenes de salida ─────────────────────────────────────────────────────────

// CreateOutbound godoc
// @Summary      Crear orden de salida
// @Tags         outbound-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOutboundOrderRequest  true  "order_number, customer_name, priority, items"
// @Success      201   {object}  dto.OutboundOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/outbound-orders [post]
func (h *OrderHandler) CreateOutbound(c *fiber.Ctx) error {
	var req dto.CreateOutboundOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validator.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	res, err := h.uc.CreateOutbound(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// GetOutbound godoc
// @Summary      Obtener orden de salida con sus líneas
// @Tags         outbound-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OutboundOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/outbound-orders/{id} [get]
func (h *OrderHandler) GetOutbound(c *fiber.Ctx) error {
	res, err := h.uc.GetOutbound(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// ListOutbound godoc
// @Summary      Listar órdenes de salida
// @Tags         outbound-orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.OutboundOrderResponse
// @Router       /api/outbound-orders [get]
func (h *OrderHandler) ListOutbound(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	res, err := h.uc.ListOutbound(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// ShipOutbound godoc
// @Summary      Despachar mercancía contra una línea de la orden
// @Description  Descuenta el saldo de la ubicación, registra un movimiento OUT y
//
//	avanza la cantidad despachada, todo en una transacción.
//
// @Tags         outbound-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la orden"
// @Param        body  body  dto.ShipItemRequest  true  "item_id, location_id, quantity, lot_number (opcional)"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/outbound-orders/{id}/ship [post]
func (h *OrderHandler) ShipOutbound(c *fiber.Ctx) error {
	var req dto.ShipItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validator.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.uc.Ship(c.Context(), c.Params("id"), req, GetActorName(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "despacho registrado"})
}

// CancelOutbound godoc
// @Summary      Cancelar orden de salida
// @Tags         outbound-orders
// @Security     Bearer
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/outbound-orders/{id}/cancel [post]
func (h *OrderHandler) CancelOutbound(c *fiber.Ctx) error {
	if err := h.uc.CancelOutbound(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden cancelada"})
}
