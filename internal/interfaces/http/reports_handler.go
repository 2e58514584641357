package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/conamormarket-lgtm/inventario-api/internal/application/dto"
	"github.com/conamormarket-lgtm/inventario-api/internal/application/reports"
)

// ReportsHandler maneja el historial filtrado, las descargas de reportes y
// las operaciones administrativas sobre el ledger.
type ReportsHandler struct {
	uc *reports.UseCase
}

// NewReportsHandler construye el handler.
func NewReportsHandler(uc *reports.UseCase) *ReportsHandler {
	return &ReportsHandler{uc: uc}
}

// GetHistory godoc
// @Summary      Historial de movimientos de un rango de fechas
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  true  "YYYY-MM-DD"
// @Param        hasta  query  string  true  "YYYY-MM-DD"
// @Success      200  {array}   entity.HistoryLog
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/historial [get]
func (h *ReportsHandler) GetHistory(c *fiber.Ctx) error {
	logs, err := h.uc.HistoryByDateRange(c.Context(), c.Query("desde"), c.Query("hasta"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"logs": logs, "total": len(logs)})
}

// Export godoc
// @Summary      Descargar el reporte agregado de un rango
// @Description  tipo=entradas|salidas, formato=xlsx|csv|pdf (xlsx por defecto;
//
//	si la hoja de cálculo falla se degrada a CSV).
//
// @Tags         reportes
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        tipo     query  string  true   "entradas | salidas"
// @Param        desde    query  string  true   "YYYY-MM-DD"
// @Param        hasta    query  string  true   "YYYY-MM-DD"
// @Param        formato  query  string  false  "xlsx | csv | pdf"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/export [get]
func (h *ReportsHandler) Export(c *fiber.Ctx) error {
	result, err := h.uc.ExportReport(c.Context(), c.Query("tipo"), c.Query("desde"), c.Query("hasta"), c.Query("formato"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, result.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+result.Filename+`"`)
	return c.Send(result.Content)
}

// DeleteHistory borra definitivamente el historial del rango (solo admin).
func (h *ReportsHandler) DeleteHistory(c *fiber.Ctx) error {
	count, err := h.uc.DeleteLogsByDateRange(c.Context(), c.Query("desde"), c.Query("hasta"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CountResponse{Message: "registros eliminados", Count: count})
}

// ResetStock deja todas las cantidades en cero sin tocar el historial (solo admin).
func (h *ReportsHandler) ResetStock(c *fiber.Ctx) error {
	count, err := h.uc.ResetAllStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CountResponse{Message: "stock reseteado", Count: count})
}

// Normalize repara claves y fusiona SKUs duplicados (solo admin). Devuelve
// cuántos ítems fueron reparados; una segunda pasada devuelve 0.
func (h *ReportsHandler) Normalize(c *fiber.Ctx) error {
	count, err := h.uc.Normalize(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CountResponse{Message: "inventario normalizado", Count: count})
}
