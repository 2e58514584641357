package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/conamormarket-lgtm/inventario-api/internal/application/dto"
	"github.com/conamormarket-lgtm/inventario-api/internal/application/inventory"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
)

// MetadataHandler maneja los vocabularios configurables: tipos de prenda,
// colores, tallas y los esquemas de inventarios genéricos.
type MetadataHandler struct {
	uc *inventory.MetadataUseCase
}

// NewMetadataHandler construye el handler.
func NewMetadataHandler(uc *inventory.MetadataUseCase) *MetadataHandler {
	return &MetadataHandler{uc: uc}
}

// GetMetadata devuelve los tres vocabularios del inventario de prendas.
func (h *MetadataHandler) GetMetadata(c *fiber.Ctx) error {
	meta, err := h.uc.GetMetadata(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(meta)
}

// AddTipoPrenda agrega un tipo de prenda al final de la lista.
func (h *MetadataHandler) AddTipoPrenda(c *fiber.Ctx) error {
	return h.add(c, func(in dto.MetadataItemRequest) error {
		return h.uc.AddTipoPrenda(c.Context(), in.Nombre)
	})
}

// RemoveTipoPrenda elimina un tipo de prenda si ningún SKU lo usa.
func (h *MetadataHandler) RemoveTipoPrenda(c *fiber.Ctx) error {
	if err := h.uc.RemoveTipoPrenda(c.Context(), c.Params("nombre")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "tipo de prenda eliminado"})
}

// AddColor agrega un color (con su hex para la UI) al final de la lista.
func (h *MetadataHandler) AddColor(c *fiber.Ctx) error {
	return h.add(c, func(in dto.MetadataItemRequest) error {
		return h.uc.AddColor(c.Context(), in.Nombre, in.Hex)
	})
}

// RemoveColor elimina un color si ningún SKU lo usa.
func (h *MetadataHandler) RemoveColor(c *fiber.Ctx) error {
	if err := h.uc.RemoveColor(c.Context(), c.Params("nombre")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "color eliminado"})
}

// AddTalla agrega una talla al final de la lista.
func (h *MetadataHandler) AddTalla(c *fiber.Ctx) error {
	return h.add(c, func(in dto.MetadataItemRequest) error {
		return h.uc.AddTalla(c.Context(), in.Nombre)
	})
}

// RemoveTalla elimina una talla si ningún SKU la usa.
func (h *MetadataHandler) RemoveTalla(c *fiber.Ctx) error {
	if err := h.uc.RemoveTalla(c.Context(), c.Params("nombre")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "talla eliminada"})
}

// GetGenericConfig devuelve el esquema de un inventario genérico.
func (h *MetadataHandler) GetGenericConfig(c *fiber.Ctx) error {
	cfg, err := h.uc.GetGenericConfig(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cfg)
}

// SetGenericConfig crea o reemplaza el esquema de un inventario genérico.
func (h *MetadataHandler) SetGenericConfig(c *fiber.Ctx) error {
	var cfg entity.GenericConfig
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetGenericConfig(c.Context(), c.Params("id"), cfg); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "configuración guardada"})
}

func (h *MetadataHandler) add(c *fiber.Ctx, fn func(dto.MetadataItemRequest) error) error {
	var in dto.MetadataItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := fn(in); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "agregado"})
}
