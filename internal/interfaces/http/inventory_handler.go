package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/conamormarket-lgtm/inventario-api/internal/application/dto"
	"github.com/conamormarket-lgtm/inventario-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de stock y movimientos (protegido).
type InventoryHandler struct {
	query    *inventory.StockQueryUseCase
	movement *inventory.MovementUseCase
	undo     *inventory.UndoUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(query *inventory.StockQueryUseCase, movement *inventory.MovementUseCase, undo *inventory.UndoUseCase) *InventoryHandler {
	return &InventoryHandler{query: query, movement: movement, undo: undo}
}

// GetStock godoc
// @Summary      Snapshot del inventario de prendas
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.StockSnapshot
// @Router       /api/inventario/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	snap, err := h.query.Snapshot(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snap)
}

// AddMovement godoc
// @Summary      Registrar una entrada o salida de prendas
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovimientoRequest  true  "accion, tipo, color, talla, cantidad"
// @Success      201   {object}  dto.MovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos [post]
func (h *InventoryHandler) AddMovement(c *fiber.Ctx) error {
	var in dto.MovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	newStock, err := h.movement.AddMovement(c.Context(), inventory.MovementInputDTO{
		Accion:   in.Accion,
		Tipo:     in.Tipo,
		Color:    in.Color,
		Talla:    in.Talla,
		Cantidad: in.Cantidad,
		Usuario:  GetUserName(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovimientoResponse{Message: "movimiento registrado", NewStock: newStock})
}

// UndoLastAction godoc
// @Summary      Deshacer el movimiento más reciente
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MovimientoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventario/deshacer [post]
func (h *InventoryHandler) UndoLastAction(c *fiber.Ctx) error {
	newStock, err := h.undo.UndoLastAction(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MovimientoResponse{Message: "movimiento deshecho", NewStock: newStock})
}

// GetGenericStock devuelve el stock de un inventario genérico.
func (h *InventoryHandler) GetGenericStock(c *fiber.Ctx) error {
	items, err := h.query.ListGenerico(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "total": len(items)})
}

// GetGenericHistory devuelve el historial de un inventario genérico.
func (h *InventoryHandler) GetGenericHistory(c *fiber.Ctx) error {
	logs, err := h.query.HistorialGenerico(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"logs": logs, "total": len(logs)})
}

// AddGenericMovement registra una entrada o salida en un inventario genérico.
func (h *InventoryHandler) AddGenericMovement(c *fiber.Ctx) error {
	var in dto.MovimientoGenericoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	newStock, err := h.movement.AddMovementGenerico(c.Context(), inventory.GenericMovementInputDTO{
		InventarioID: c.Params("id"),
		Accion:       in.Accion,
		Tipo:         in.Tipo,
		Attrs:        in.Attrs,
		Cantidad:     in.Cantidad,
		Usuario:      GetUserName(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovimientoResponse{Message: "movimiento registrado", NewStock: newStock})
}

// UndoGenericAction deshace el movimiento más reciente de un inventario genérico.
func (h *InventoryHandler) UndoGenericAction(c *fiber.Ctx) error {
	newStock, err := h.undo.UndoLastActionGenerico(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MovimientoResponse{Message: "movimiento deshecho", NewStock: newStock})
}
