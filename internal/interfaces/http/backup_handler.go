package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/conamormarket-lgtm/inventario-api/internal/application/backup"
	"github.com/conamormarket-lgtm/inventario-api/internal/application/dto"
)

// BackupHandler maneja la exportación del respaldo CSV del historial y las
// importaciones masivas (historial y stock).
type BackupHandler struct {
	uc *backup.UseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *backup.UseCase) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// Export descarga el respaldo CSV de los últimos N días (14 por defecto).
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	dias, err := strconv.Atoi(c.Query("dias", "14"))
	if err != nil || dias <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dias debe ser un entero positivo"})
	}
	result, err := h.uc.ExportLastDays(c.Context(), dias)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+result.Filename+`"`)
	return c.SendString(result.Content)
}

// ImportHistory restaura registros de historial desde un respaldo CSV.
// No recalcula stock: solo repone el log.
func (h *BackupHandler) ImportHistory(c *fiber.Ctx) error {
	var in dto.HistoryImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	count, err := h.uc.ImportHistoryCSV(c.Context(), in.CSV)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CountResponse{Message: "historial importado", Count: count})
}

// ImportStock aplica una carga masiva de stock desde CSV (solo admin). Las
// cantidades del archivo REEMPLAZAN las actuales de cada SKU. Con simulacro
// en true valida y cuenta sin escribir nada.
func (h *BackupHandler) ImportStock(c *fiber.Ctx) error {
	var in dto.StockImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.ImportStockCSV(c.Context(), in.CSV, in.Simulacro)
	if err != nil {
		return respondError(c, err)
	}
	msg := "stock importado"
	if in.Simulacro {
		msg = "simulacro: el archivo es válido, no se escribió nada"
	}
	return c.JSON(dto.StockImportResponse{
		Message:    msg,
		Count:      result.Count,
		TotalUnits: result.TotalUnits,
		Simulacro:  in.Simulacro,
	})
}
