package reports

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	"github.com/conamormarket-lgtm/inventario-api/internal/infrastructure/memory"
)

// fakeRenderer permite forzar el fallo del xlsx para probar la degradación a CSV.
type fakeRenderer struct {
	failXLSX bool
}

func (f *fakeRenderer) RenderXLSX(titulo string, rows []ReportRow, generado time.Time) ([]byte, error) {
	if f.failXLSX {
		return nil, errors.New("zip corrupto")
	}
	return []byte("xlsx:" + titulo), nil
}

func (f *fakeRenderer) RenderCSV(rows []ReportRow, generado time.Time) []byte {
	return []byte("csv")
}

type fakePDF struct{}

func (fakePDF) RenderPDF(titulo string, rows []ReportRow, generado time.Time) ([]byte, error) {
	return []byte("pdf:" + titulo), nil
}

func newTestUseCase(t *testing.T, failXLSX bool) (*UseCase, *memory.StockRepo, *memory.HistoryRepo) {
	t.Helper()
	store, err := memory.NewStore(filepath.Join(t.TempDir(), "inventario.json"))
	require.NoError(t, err)
	stockRepo := memory.NewStockRepository(store)
	historyRepo := memory.NewHistoryRepository(store)
	uc := NewUseCase(memory.NewTxRunner(store), stockRepo, historyRepo,
		&fakeRenderer{failXLSX: failXLSX}, fakePDF{})
	// Reloj fijo para que los rangos sean deterministas.
	uc.now = func() time.Time {
		return time.Date(2026, 8, 28, 12, 0, 0, 0, time.Local)
	}
	return uc, stockRepo, historyRepo
}

func appendLog(t *testing.T, repo *memory.HistoryRepo, ts time.Time, accion, tipo, color, talla string, cantidad int) {
	t.Helper()
	require.NoError(t, repo.Append(&entity.HistoryLog{
		Timestamp: ts,
		User:      "Tester",
		Action:    accion,
		Details:   tipo + " - " + color + " - Talla " + talla + " (Cant: 0)",
		Quantity:  cantidad,
		Metadata:  entity.LogMetadata{Tipo: tipo, Color: color, Talla: talla, Cantidad: cantidad},
	}))
}

func TestHistoryByDateRange_DiasCompletos(t *testing.T) {
	uc, _, historyRepo := newTestUseCase(t, false)

	dentro := time.Date(2026, 8, 10, 23, 59, 0, 0, time.Local)
	fuera := time.Date(2026, 8, 11, 0, 1, 0, 0, time.Local)
	appendLog(t, historyRepo, dentro, entity.ActionEntrada, "Polera", "Negro", "M", 5)
	appendLog(t, historyRepo, fuera, entity.ActionEntrada, "Polera", "Negro", "M", 7)

	logs, err := uc.HistoryByDateRange(context.Background(), "2026-08-01", "2026-08-10")
	require.NoError(t, err)
	require.Len(t, logs, 1, "el rango cubre el día final completo pero no el siguiente")
	assert.Equal(t, 5, logs[0].Quantity)
}

func TestHistoryByDateRange_FinFuturoSeRecortaAHoy(t *testing.T) {
	uc, _, historyRepo := newTestUseCase(t, false)

	hoy := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)
	appendLog(t, historyRepo, hoy, entity.ActionSalida, "Polera", "Negro", "M", 2)

	logs, err := uc.HistoryByDateRange(context.Background(), "2026-08-01", "2026-12-31")
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestHistoryByDateRange_RangoInvertido(t *testing.T) {
	uc, _, _ := newTestUseCase(t, false)

	_, err := uc.HistoryByDateRange(context.Background(), "2026-08-10", "2026-08-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryByDateRange_FechaIlegible(t *testing.T) {
	uc, _, _ := newTestUseCase(t, false)

	_, err := uc.HistoryByDateRange(context.Background(), "10/08/2026", "2026-08-20")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAggregate_FusionaPorCategoriaYDetalle(t *testing.T) {
	logs := []entity.HistoryLog{
		{Action: entity.ActionEntrada, Quantity: 5, Metadata: entity.LogMetadata{Tipo: "Polera", Color: "Negro", Talla: "M"}},
		{Action: entity.ActionEntrada, Quantity: 3, Metadata: entity.LogMetadata{Tipo: "Polera", Color: "Negro", Talla: "M"}},
		{Action: entity.ActionEntrada, Quantity: 20, Metadata: entity.LogMetadata{Tipo: "Casaca", Color: "Azul", Talla: "L"}},
		{Action: entity.ActionSalida, Quantity: 99, Metadata: entity.LogMetadata{Tipo: "Polera", Color: "Negro", Talla: "M"}},
	}
	rows := Aggregate(logs, entity.ActionEntrada)
	require.Len(t, rows, 2)
	// Orden descendente por cantidad.
	assert.Equal(t, ReportRow{Categoria: "Casaca", Detalle: "Azul - L", Cantidad: 20}, rows[0])
	assert.Equal(t, ReportRow{Categoria: "Polera", Detalle: "Negro - M", Cantidad: 8}, rows[1])
}

func TestAggregate_SinMetadataParseaElDetalle(t *testing.T) {
	logs := []entity.HistoryLog{
		{Action: entity.ActionEntrada, Quantity: 5, Details: "Polera - Negro - Talla M (Cant: 5)"},
	}
	rows := Aggregate(logs, entity.ActionEntrada)
	require.Len(t, rows, 1)
	assert.Equal(t, ReportRow{Categoria: "Polera", Detalle: "Negro - M", Cantidad: 5}, rows[0])
}

func TestAggregate_DetalleLibreUsaPrimerSegmento(t *testing.T) {
	logs := []entity.HistoryLog{
		{Action: entity.ActionEntrada, Quantity: 2, Details: "Ajuste manual - bodega (Cant: 2)"},
	}
	rows := Aggregate(logs, entity.ActionEntrada)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ajuste manual", rows[0].Categoria)
	assert.Equal(t, "Ajuste manual - bodega", rows[0].Detalle)
}

func TestAggregate_SinCategoriaResolubleSeDescarta(t *testing.T) {
	logs := []entity.HistoryLog{
		{Action: entity.ActionEntrada, Quantity: 2, Details: ""},
	}
	assert.Empty(t, Aggregate(logs, entity.ActionEntrada))
}

func TestAggregate_SoloTallaOColorEnMetadata(t *testing.T) {
	logs := []entity.HistoryLog{
		{Action: entity.ActionEntrada, Quantity: 4, Metadata: entity.LogMetadata{Tipo: "Tela", Color: "Rojo"}},
		{Action: entity.ActionEntrada, Quantity: 6, Metadata: entity.LogMetadata{Tipo: "Hilo"}},
	}
	rows := Aggregate(logs, entity.ActionEntrada)
	require.Len(t, rows, 2)
	assert.Equal(t, ReportRow{Categoria: "Hilo", Detalle: "-", Cantidad: 6}, rows[0])
	assert.Equal(t, ReportRow{Categoria: "Tela", Detalle: "Rojo", Cantidad: 4}, rows[1])
}

func TestExportReport_XLSXPorDefecto(t *testing.T) {
	uc, _, historyRepo := newTestUseCase(t, false)
	appendLog(t, historyRepo, time.Date(2026, 8, 5, 10, 0, 0, 0, time.Local),
		entity.ActionEntrada, "Polera", "Negro", "M", 5)

	result, err := uc.ExportReport(context.Background(), "entradas", "2026-08-01", "2026-08-10", "")
	require.NoError(t, err)
	assert.Equal(t, "Reporte ENTRADAS (2026-08-01 al 2026-08-10).xlsx", result.Filename)
	assert.Equal(t, []byte("xlsx:ENTRADAS"), result.Content)
	assert.Contains(t, result.ContentType, "spreadsheetml")
}

func TestExportReport_DegradaACSVCuandoElXLSXFalla(t *testing.T) {
	uc, _, _ := newTestUseCase(t, true)

	result, err := uc.ExportReport(context.Background(), "salidas", "2026-08-01", "2026-08-10", "xlsx")
	require.NoError(t, err)
	assert.Equal(t, "Reporte SALIDAS (2026-08-01 al 2026-08-10).csv", result.Filename)
	assert.Equal(t, []byte("csv"), result.Content)
	assert.Contains(t, result.ContentType, "text/csv")
}

func TestExportReport_PDF(t *testing.T) {
	uc, _, _ := newTestUseCase(t, false)

	result, err := uc.ExportReport(context.Background(), "salidas", "2026-08-01", "2026-08-10", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "Reporte SALIDAS (2026-08-01 al 2026-08-10).pdf", result.Filename)
	assert.Equal(t, []byte("pdf:SALIDAS"), result.Content)
}

func TestExportReport_TipoYFormatoInvalidos(t *testing.T) {
	uc, _, _ := newTestUseCase(t, false)
	ctx := context.Background()

	_, err := uc.ExportReport(ctx, "ajustes", "2026-08-01", "2026-08-10", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ExportReport(ctx, "entradas", "2026-08-01", "2026-08-10", "docx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteLogsByDateRange(t *testing.T) {
	uc, _, historyRepo := newTestUseCase(t, false)

	appendLog(t, historyRepo, time.Date(2026, 8, 5, 10, 0, 0, 0, time.Local), entity.ActionEntrada, "Polera", "Negro", "M", 5)
	appendLog(t, historyRepo, time.Date(2026, 8, 20, 10, 0, 0, 0, time.Local), entity.ActionEntrada, "Polera", "Negro", "M", 7)

	count, err := uc.DeleteLogsByDateRange(context.Background(), "2026-08-01", "2026-08-10")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	logs, err := historyRepo.List()
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 7, logs[0].Quantity)
}

func TestResetAllStock_NoTocaElHistorial(t *testing.T) {
	uc, stockRepo, historyRepo := newTestUseCase(t, false)

	require.NoError(t, stockRepo.Upsert(&entity.StockItem{ID: "polera-negro-m", Tipo: "Polera", Color: "Negro", Talla: "M", Cantidad: 9}))
	appendLog(t, historyRepo, time.Now(), entity.ActionEntrada, "Polera", "Negro", "M", 9)

	count, err := uc.ResetAllStock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	item, err := stockRepo.GetByKey("Polera", "Negro", "M")
	require.NoError(t, err)
	assert.Equal(t, 0, item.Cantidad, "la fila se conserva con cantidad cero")

	logs, err := historyRepo.List()
	require.NoError(t, err)
	assert.Len(t, logs, 1, "el historial no se toca")
}

func TestNormalize_ReparaYEsIdempotente(t *testing.T) {
	uc, stockRepo, _ := newTestUseCase(t, false)

	// Ledger con claves sin normalizar, duplicados y una fila irrecuperable.
	require.NoError(t, stockRepo.ReplaceAll([]entity.StockItem{
		{ID: "x1", Tipo: " Polera ", Color: "NEGRO", Talla: "M", Cantidad: 3},
		{ID: "polera-negro-m", Tipo: "Polera", Color: "Negro", Talla: "M", Cantidad: 4},
		{ID: "x2", Tipo: "Casaca", Color: "", Talla: "L", Cantidad: 2},
		{ID: "x3", Tipo: "", Color: "Azul", Talla: "M", Cantidad: 9},
	}))

	repaired, err := uc.Normalize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, repaired, "espacios, duplicado fusionado, color por defecto y fila descartada")

	snap, err := stockRepo.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Items, 2)

	merged, err := stockRepo.GetByKey("Polera", "Negro", "M")
	require.NoError(t, err)
	assert.Equal(t, 7, merged.Cantidad, "los duplicados suman sus cantidades")

	casaca, err := stockRepo.GetByKey("Casaca", "Unico", "L")
	require.NoError(t, err)
	require.NotNil(t, casaca, "color vacío recibe el valor por defecto")

	// Segunda pasada: nada que reparar.
	repaired, err = uc.Normalize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, repaired)
}
