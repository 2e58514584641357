package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conamormarket-lgtm/inventario-api/internal/application/inventory"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
)

func TestUndo_RevierteLaSalidaMasReciente(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	entrada(t, env, "Polera", "Negro", "M", 50)
	stock, err := salida(env, "Polera", "Negro", "M", 20)
	require.NoError(t, err)
	require.Equal(t, 30, stock)

	stock, err = env.undo.UndoLastAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, stock, "deshacer la salida debe devolver las unidades")

	// El registro deshecho desaparece del historial; queda solo la entrada.
	logs, err := env.historyRepo.List()
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionEntrada, logs[0].Action)
}

func TestUndo_RevierteLaEntradaMasReciente(t *testing.T) {
	env := newTestEnv(t)

	entrada(t, env, "Polera", "Negro", "M", 50)
	entrada(t, env, "Polera", "Negro", "M", 10)

	stock, err := env.undo.UndoLastAction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, stock)
}

func TestUndo_DosVecesDeshaceDosAcciones(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	entrada(t, env, "Polera", "Negro", "M", 50)
	_, err := salida(env, "Polera", "Negro", "M", 20)
	require.NoError(t, err)

	_, err = env.undo.UndoLastAction(ctx)
	require.NoError(t, err)
	stock, err := env.undo.UndoLastAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stock, "la segunda pasada deshace la entrada inicial")

	logs, err := env.historyRepo.List()
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestUndo_HistorialVacio(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.undo.UndoLastAction(context.Background())
	assert.ErrorIs(t, err, domain.ErrEmptyHistory)
}

func TestUndo_EntradaConStockInsuficienteFalla(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	entrada(t, env, "Polera", "Negro", "M", 50)
	_, err := salida(env, "Polera", "Negro", "M", 40)
	require.NoError(t, err)

	// Borramos manualmente la salida del historial para que la acción más
	// reciente sea la entrada de 50 con solo 10 en stock.
	logs, err := env.historyRepo.List()
	require.NoError(t, err)
	require.NoError(t, env.historyRepo.Delete(logs[0].ID))

	_, err = env.undo.UndoLastAction(ctx)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	item, err := env.stockRepo.GetByKey("Polera", "Negro", "M")
	require.NoError(t, err)
	assert.Equal(t, 10, item.Cantidad, "un deshacer fallido no debe mutar el stock")
}

func TestUndo_SalidaRecreaElItemSiFueEliminado(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	entrada(t, env, "Polera", "Negro", "M", 10)
	_, err := salida(env, "Polera", "Negro", "M", 10)
	require.NoError(t, err)

	// El ítem queda en cero; deshacer la salida lo repone a 10.
	stock, err := env.undo.UndoLastAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, stock)
}

func TestUndoGenerico_RevierteMovimiento(t *testing.T) {
	env := newTestEnv(t)
	configurarInsumos(t, env)
	ctx := context.Background()

	attrs := map[string]string{"Material": "Algodón"}
	_, err := env.movement.AddMovementGenerico(ctx, inventory.GenericMovementInputDTO{
		InventarioID: "insumos", Accion: entity.ActionEntrada, Tipo: "Tela",
		Attrs: attrs, Cantidad: 8, Usuario: "Tester",
	})
	require.NoError(t, err)
	_, err = env.movement.AddMovementGenerico(ctx, inventory.GenericMovementInputDTO{
		InventarioID: "insumos", Accion: entity.ActionSalida, Tipo: "Tela",
		Attrs: attrs, Cantidad: 3, Usuario: "Tester",
	})
	require.NoError(t, err)

	stock, err := env.undo.UndoLastActionGenerico(ctx, "insumos")
	require.NoError(t, err)
	assert.Equal(t, 8, stock)
}

func TestUndoGenerico_HistorialVacio(t *testing.T) {
	env := newTestEnv(t)
	configurarInsumos(t, env)

	_, err := env.undo.UndoLastActionGenerico(context.Background(), "insumos")
	assert.ErrorIs(t, err, domain.ErrEmptyHistory)
}
