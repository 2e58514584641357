package inventory

import (
	"context"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
)

// TxRunner ejecuta una función como unidad read-modify-write atómica, pasando
// repositorios atados a esa unidad. Con el store en memoria es un lock con
// snapshot/rollback; con PostgreSQL es una transacción con Commit/Rollback.
// Ningún estado intermedio es observable entre validación y commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		historyRepo repository.HistoryRepository,
		genStockRepo repository.GenericStockRepository,
		genHistoryRepo repository.GenericHistoryRepository,
	) error) error
}
