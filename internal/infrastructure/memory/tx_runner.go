package memory

import (
	"context"

	"github.com/conamormarket-lgtm/inventario-api/internal/application/inventory"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner implementa la unidad read-modify-write sobre el store en memoria:
// toma el lock exclusivo, clona el documento, ejecuta fn con repositorios
// atados al clon y, solo si fn termina bien, publica el clon y persiste.
// Un fallo a mitad de camino descarta el clon: ningún efecto parcial queda
// visible, igual que un Rollback.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn como transacción.
func (r *TxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	historyRepo repository.HistoryRepository,
	genStockRepo repository.GenericStockRepository,
	genHistoryRepo repository.GenericHistoryRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	clone, err := r.store.data.clone()
	if err != nil {
		return err
	}
	sess := &txSession{d: clone}
	if err := fn(
		NewStockRepository(sess),
		NewHistoryRepository(sess),
		NewGenericStockRepository(sess),
		NewGenericHistoryRepository(sess),
	); err != nil {
		return err
	}
	r.store.data = *clone
	return r.store.persistLocked()
}
