package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appinv "github.com/conamormarket-lgtm/inventario-api/internal/application/inventory"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
)

// TxRunner ejecuta la función dentro de una transacción real de PostgreSQL,
// con los repositorios atados a esa transacción. Si fn devuelve error se hace
// rollback; ningún estado intermedio queda visible fuera de la transacción.
type TxRunner struct {
	pool *pgxpool.Pool
}

var _ appinv.TxRunner = (*TxRunner)(nil)

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	historyRepo repository.HistoryRepository,
	genStockRepo repository.GenericStockRepository,
	genHistoryRepo repository.GenericHistoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewStockRepo(ctx, tx),
		NewHistoryRepo(ctx, tx),
		NewGenericStockRepo(ctx, tx),
		NewGenericHistoryRepo(ctx, tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("confirmar transacción: %w", err)
	}
	return nil
}
