package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
)

func TestNewStore_ArrancaConVocabulariosPorDefecto(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	doc, err := NewConfigRepository(store).Load()
	require.NoError(t, err)
	assert.Contains(t, doc.ConfigInventarioPrendas.TiposPrenda, "Polera")
	assert.NotEmpty(t, doc.ConfigInventarioPrendas.Colores)
}

func TestStore_SnapshotSobreviveReinicio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventario.json")

	store, err := NewStore(path)
	require.NoError(t, err)
	stockRepo := NewStockRepository(store)
	historyRepo := NewHistoryRepository(store)

	require.NoError(t, stockRepo.Upsert(&entity.StockItem{
		ID: "polera-negro-m", Tipo: "Polera", Color: "Negro", Talla: "M", Cantidad: 7,
	}))
	require.NoError(t, historyRepo.Append(&entity.HistoryLog{
		User: "Ana", Action: entity.ActionEntrada, Details: "d", Quantity: 7,
	}))

	// "Reinicio": un store nuevo sobre el mismo archivo.
	store2, err := NewStore(path)
	require.NoError(t, err)

	item, err := NewStockRepository(store2).GetByKey("Polera", "Negro", "M")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 7, item.Cantidad)

	// El secuencial continúa donde quedó, no se reinicia.
	log := &entity.HistoryLog{User: "Ana", Action: entity.ActionSalida, Details: "d", Quantity: 1}
	require.NoError(t, NewHistoryRepository(store2).Append(log))
	assert.Equal(t, uint64(2), log.Seq)
}

func TestHistoryRepo_AsignaIDYSeq(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)
	repo := NewHistoryRepository(store)

	a := &entity.HistoryLog{User: "Ana", Action: entity.ActionEntrada, Quantity: 1}
	b := &entity.HistoryLog{User: "Ana", Action: entity.ActionEntrada, Quantity: 2}
	require.NoError(t, repo.Append(a))
	require.NoError(t, repo.Append(b))

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, uint64(1), a.Seq)
	assert.Equal(t, uint64(2), b.Seq)

	last, err := repo.Last()
	require.NoError(t, err)
	assert.Equal(t, b.ID, last.ID)
}

func TestHistoryRepo_DeleteInexistente(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)

	err = NewHistoryRepository(store).Delete("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTxRunner_RollbackDescartaTodosLosEfectos(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventario.json")
	store, err := NewStore(path)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = NewTxRunner(store).Run(context.Background(), func(
		stockRepo repository.StockRepository,
		historyRepo repository.HistoryRepository,
		_ repository.GenericStockRepository,
		_ repository.GenericHistoryRepository,
	) error {
		if err := stockRepo.Upsert(&entity.StockItem{
			ID: "polera-negro-m", Tipo: "Polera", Color: "Negro", Talla: "M", Cantidad: 5,
		}); err != nil {
			return err
		}
		if err := historyRepo.Append(&entity.HistoryLog{User: "Ana", Action: entity.ActionEntrada, Quantity: 5}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// Ningún efecto parcial: ni stock, ni historial, ni snapshot en disco.
	item, err := NewStockRepository(store).GetByKey("Polera", "Negro", "M")
	require.NoError(t, err)
	assert.Nil(t, item)

	logs, err := NewHistoryRepository(store).List()
	require.NoError(t, err)
	assert.Empty(t, logs)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "una transacción fallida no persiste snapshot")
}

func TestTxRunner_CommitPublicaYPersiste(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventario.json")
	store, err := NewStore(path)
	require.NoError(t, err)

	err = NewTxRunner(store).Run(context.Background(), func(
		stockRepo repository.StockRepository,
		historyRepo repository.HistoryRepository,
		_ repository.GenericStockRepository,
		_ repository.GenericHistoryRepository,
	) error {
		return stockRepo.Upsert(&entity.StockItem{
			ID: "polera-negro-m", Tipo: "Polera", Color: "Negro", Talla: "M", Cantidad: 5,
		})
	})
	require.NoError(t, err)

	item, err := NewStockRepository(store).GetByKey("Polera", "Negro", "M")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 5, item.Cantidad)

	_, err = os.Stat(path)
	assert.NoError(t, err, "el commit reescribe el snapshot")
}

func TestGenericHistoryRepo_SeqPorInventario(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)
	repo := NewGenericHistoryRepository(store)

	a := &entity.HistoryLog{Action: entity.ActionEntrada, Quantity: 1}
	b := &entity.HistoryLog{Action: entity.ActionEntrada, Quantity: 1}
	require.NoError(t, repo.Append("insumos", a))
	require.NoError(t, repo.Append("activos", b))

	// Cada inventario lleva su propio secuencial.
	assert.Equal(t, uint64(1), a.Seq)
	assert.Equal(t, uint64(1), b.Seq)

	last, err := repo.Last("insumos")
	require.NoError(t, err)
	assert.Equal(t, a.ID, last.ID)

	last, err = repo.Last("productos")
	require.NoError(t, err)
	assert.Nil(t, last)
}
