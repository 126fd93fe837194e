package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/wms-core/internal/application/dto"
	"github.com/tu-usuario/wms-core/internal/application/inventory"
	"github.com/tu-usuario/wms-core/internal/domain/entity"
	"github.com/tu-usuario/wms-core/internal/domain/repository"
	"github.com/tu-usuario/wms-core/pkg/validator"
)

// InventoryHandler maneja las peticiones HTTP de inventario (protegido).
type InventoryHandler struct {
	transferUC   *inventory.TransferUseCase
	queryUC      *inventory.QueryUseCase
	adjustUC     *inventory.AdjustUseCase
	movementRepo repository.MovementRepository
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	transferUC *inventory.TransferUseCase,
	queryUC *inventory.QueryUseCase,
	adjustUC *inventory.AdjustUseCase,
	movementRepo repository.MovementRepository,
) *InventoryHandler {
	return &InventoryHandler{
		transferUC:   transferUC,
		queryUC:      queryUC,
		adjustUC:     adjustUC,
		movementRepo: movementRepo,
	}
}

// Transfer godoc
// @Summary      Trasladar stock entre ubicaciones
// @Description  Mueve la cantidad del origen al destino de forma atómica y deja
//
//	un movimiento TRANSFER en el libro.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "product_id, from_location_id, to_location_id, quantity, lot_number (opcional), reason (opcional)"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var req dto.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validator.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	res, err := h.transferUC.Transfer(c.Context(), inventory.TransferInput{
		ProductID:      req.ProductID,
		FromLocationID: req.FromLocationID,
		ToLocationID:   req.ToLocationID,
		Quantity:       req.Quantity,
		LotNumber:      req.LotNumber,
		Reason:         req.Reason,
		PerformedBy:    GetActorName(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TransferResponse{
		Message:        res.Message,
		ProductID:      req.ProductID,
		FromLocationID: req.FromLocationID,
		ToLocationID:   req.ToLocationID,
		Quantity:       req.Quantity,
		LotNumber:      res.LotNumber,
		MovementID:     res.MovementID,
	})
}

// Check godoc
// @Summary      Consultar stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id       query  string  false  "Filtrar por producto"
// @Param        location_id      query  string  false  "Filtrar por ubicación"
// @Param        sku              query  string  false  "Filtrar por SKU"
// @Param        include_details  query  bool    false  "Filas completas en vez de resumen"
// @Success      200  {object}  dto.CheckStockResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	var req dto.CheckStockRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	res, err := h.queryUC.Check(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Adjust godoc
// @Summary      Ajustar stock por conteo físico
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "product_id, location_id, quantity (+/-), lot_number (opcional), reason"
// @Success      200   {object}  dto.AdjustResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var req dto.AdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validator.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	res, err := h.adjustUC.Adjust(c.Context(), inventory.AdjustInput{
		ProductID:   req.ProductID,
		LocationID:  req.LocationID,
		Quantity:    req.Quantity,
		LotNumber:   req.LotNumber,
		Reason:      req.Reason,
		PerformedBy: GetActorName(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AdjustResponse{
		Message:     "Ajuste aplicado",
		ProductID:   req.ProductID,
		LocationID:  req.LocationID,
		NewQuantity: res.NewQuantity,
		MovementID:  res.MovementID,
	})
}

// ListMovements godoc
// @Summary      Consultar el libro de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        from        query  string  false  "Desde (RFC 3339)"
// @Param        to          query  string  false  "Hasta (RFC 3339)"
// @Param        limit       query  int     false  "Tamaño de página"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var req dto.ListMovementsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	req.DefaultPage()

	var from, to *time.Time
	if req.From != "" {
		parsed, err := time.Parse(time.RFC3339, req.From)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from: fecha inválida (RFC 3339)"})
		}
		from = &parsed
	}
	if req.To != "" {
		parsed, err := time.Parse(time.RFC3339, req.To)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to: fecha inválida (RFC 3339)"})
		}
		to = &parsed
	}

	var movements []*entity.Movement
	var err error
	if req.ProductID != "" {
		movements, err = h.movementRepo.ListByProduct(req.ProductID, from, to, req.Limit, req.Offset)
	} else {
		movements, err = h.movementRepo.ListRecent(req.Limit, req.Offset)
	}
	if err != nil {
		return respondError(c, err)
	}

	resp := dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(movements)),
		Page:  dto.PageResponse{Limit: req.Limit, Offset: req.Offset},
	}
	for _, m := range movements {
		resp.Items = append(resp.Items, dto.MovementResponse{
			ID:             m.ID,
			ProductID:      m.ProductID,
			FromLocationID: m.FromLocationID,
			ToLocationID:   m.ToLocationID,
			Quantity:       m.Quantity,
			Type:           m.Type,
			ReferenceType:  m.ReferenceType,
			ReferenceID:    m.ReferenceID,
			Reason:         m.Reason,
			PerformedBy:    m.PerformedBy,
			CreatedAt:      m.CreatedAt,
		})
	}
	return c.JSON(resp)
}
