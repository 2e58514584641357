package backup_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conamormarket-lgtm/inventario-api/internal/application/backup"
	appinv "github.com/conamormarket-lgtm/inventario-api/internal/application/inventory"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	"github.com/conamormarket-lgtm/inventario-api/internal/infrastructure/memory"
)

func newBackupEnv(t *testing.T) (*backup.UseCase, *memory.StockRepo, *memory.HistoryRepo) {
	t.Helper()
	store, err := memory.NewStore(filepath.Join(t.TempDir(), "inventario.json"))
	require.NoError(t, err)
	stockRepo := memory.NewStockRepository(store)
	historyRepo := memory.NewHistoryRepository(store)
	return backup.NewUseCase(memory.NewTxRunner(store), historyRepo), stockRepo, historyRepo
}

func TestExportLastDays_FiltraPorVentana(t *testing.T) {
	uc, _, historyRepo := newBackupEnv(t)

	require.NoError(t, historyRepo.Append(&entity.HistoryLog{
		Timestamp: time.Now().AddDate(0, 0, -2),
		User:      "Ana", Action: entity.ActionEntrada,
		Details: "Polera - Negro - Talla M (Cant: 5)", Quantity: 5,
	}))
	require.NoError(t, historyRepo.Append(&entity.HistoryLog{
		Timestamp: time.Now().AddDate(0, 0, -30),
		User:      "Ana", Action: entity.ActionSalida,
		Details: "Casaca - Azul - Talla L (Cant: 1)", Quantity: 1,
	}))

	result, err := uc.ExportLastDays(context.Background(), 14)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count, "el registro de hace 30 días queda fuera de la ventana")
	assert.Equal(t, "backup_inventory_"+time.Now().Format("2006-01-02")+".csv", result.Filename)
	assert.Contains(t, result.Content, "Polera - Negro - Talla M")
	assert.NotContains(t, result.Content, "Casaca")
}

func TestExportLastDays_DiasInvalidos(t *testing.T) {
	uc, _, _ := newBackupEnv(t)

	_, err := uc.ExportLastDays(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportHistoryCSV_ReponeElLogSinTocarStock(t *testing.T) {
	uc, stockRepo, historyRepo := newBackupEnv(t)

	text := "Fecha,Hora,Tipo,Usuario,Detalle,Cantidad\n" +
		"15/08/2026,10:00:00,Entrada,Ana,Polera - Negro - Talla M (Cant: 5),5\n" +
		"15/08/2026,11:00:00,Salida,Ana,Polera - Negro - Talla M (Cant: 2),2\n"

	count, err := uc.ImportHistoryCSV(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	logs, err := historyRepo.List()
	require.NoError(t, err)
	require.Len(t, logs, 2)
	// La metadata se reconstruye del detalle legible.
	assert.Equal(t, "Polera", logs[0].Metadata.Tipo)
	assert.Equal(t, "Negro", logs[0].Metadata.Color)
	assert.Equal(t, "M", logs[0].Metadata.Talla)
	assert.True(t, logs[0].Restaurado, "los registros importados quedan marcados como restaurados")

	// Restauración pura de historial: el ledger no se toca.
	snap, err := stockRepo.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
}

func TestImportHistoryCSV_NoSecuestraElDeshacer(t *testing.T) {
	store, err := memory.NewStore(filepath.Join(t.TempDir(), "inventario.json"))
	require.NoError(t, err)
	txRunner := memory.NewTxRunner(store)
	stockRepo := memory.NewStockRepository(store)
	configRepo := memory.NewConfigRepository(store)
	backupUC := backup.NewUseCase(txRunner, memory.NewHistoryRepository(store))
	movementUC := appinv.NewMovementUseCase(txRunner, configRepo)
	undoUC := appinv.NewUndoUseCase(txRunner, configRepo)
	ctx := context.Background()

	_, err = movementUC.AddMovement(ctx, appinv.MovementInputDTO{
		Accion: entity.ActionEntrada, Tipo: "Polera", Color: "Negro", Talla: "M",
		Cantidad: 50, Usuario: "Ana",
	})
	require.NoError(t, err)

	// Un backup antiguo llega después del movimiento real.
	_, err = backupUC.ImportHistoryCSV(ctx,
		"Fecha,Hora,Tipo,Usuario,Detalle,Cantidad\n"+
			"10/01/2020,09:00:00,Salida,Ana,Polera - Negro - Talla M (Cant: 20),20\n")
	require.NoError(t, err)

	// El deshacer revierte la entrada real, no la salida restaurada (cuyo
	// efecto de stock nunca se aplicó).
	newStock, err := undoUC.UndoLastAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, newStock)

	item, err := stockRepo.GetByKey("Polera", "Negro", "M")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 0, item.Cantidad)

	// Solo queda el registro restaurado, que ya no es susceptible de deshacer.
	logs, err := memory.NewHistoryRepository(store).List()
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.True(t, logs[0].Restaurado)
	_, err = undoUC.UndoLastAction(ctx)
	assert.ErrorIs(t, err, domain.ErrEmptyHistory)
}

func TestImportHistoryCSV_SinRegistrosLegibles(t *testing.T) {
	uc, _, _ := newBackupEnv(t)

	_, err := uc.ImportHistoryCSV(context.Background(), "Fecha,Hora,Tipo,Usuario,Detalle,Cantidad\n")
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestImportStockCSV_AsignacionDirecta(t *testing.T) {
	uc, stockRepo, historyRepo := newBackupEnv(t)

	// Stock previo que el import debe REEMPLAZAR, no acumular.
	require.NoError(t, stockRepo.Upsert(&entity.StockItem{
		ID: "polera-negro-m", Tipo: "Polera", Color: "Negro", Talla: "M", Cantidad: 99,
	}))

	text := "TIPO,COLOR,TALLA,CANTIDAD\n" +
		"Polera,Negro,M,10\n" +
		"Casaca,,L,4\n"

	result, err := uc.ImportStockCSV(context.Background(), text, false)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 14, result.TotalUnits)

	item, err := stockRepo.GetByKey("Polera", "Negro", "M")
	require.NoError(t, err)
	assert.Equal(t, 10, item.Cantidad, "la cantidad del CSV reemplaza la existente")

	casaca, err := stockRepo.GetByKey("Casaca", "Unico", "L")
	require.NoError(t, err)
	require.NotNil(t, casaca, "sin columna COLOR con valor se usa Unico")
	assert.Equal(t, 4, casaca.Cantidad)

	// La carga masiva no genera movimientos.
	logs, err := historyRepo.List()
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestImportStockCSV_DuplicadoGanaLaUltimaFila(t *testing.T) {
	uc, stockRepo, _ := newBackupEnv(t)

	text := "TIPO,COLOR,TALLA,CANTIDAD\n" +
		"Polera,Negro,M,10\n" +
		"polera,NEGRO,m,25\n"

	_, err := uc.ImportStockCSV(context.Background(), text, false)
	require.NoError(t, err)

	item, err := stockRepo.GetByKey("Polera", "Negro", "M")
	require.NoError(t, err)
	assert.Equal(t, 25, item.Cantidad)
}

func TestImportStockCSV_SaltaFilasInvalidas(t *testing.T) {
	uc, _, _ := newBackupEnv(t)

	text := "TIPO,COLOR,TALLA,CANTIDAD\n" +
		"Polera,Negro,M,diez\n" + // cantidad ilegible
		"Polera,Negro,M,-5\n" + // negativa
		",Negro,M,5\n" + // sin tipo
		"Casaca,Azul,L,3\n"

	result, err := uc.ImportStockCSV(context.Background(), text, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, 3, result.TotalUnits)
}

func TestImportStockCSV_Simulacro(t *testing.T) {
	uc, stockRepo, _ := newBackupEnv(t)

	text := "TIPO,COLOR,TALLA,CANTIDAD\nPolera,Negro,M,10\n"
	result, err := uc.ImportStockCSV(context.Background(), text, true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, 10, result.TotalUnits)

	snap, err := stockRepo.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Items, "el simulacro no escribe nada")
}

func TestImportStockCSV_CabeceraAusente(t *testing.T) {
	uc, _, _ := newBackupEnv(t)

	_, err := uc.ImportStockCSV(context.Background(), "a,b\n1,2\n", false)
	assert.ErrorIs(t, err, domain.ErrParse)

	_, err = uc.ImportStockCSV(context.Background(), strings.Repeat("x", 10), false)
	assert.ErrorIs(t, err, domain.ErrParse)
}
