package inventory

import (
	"context"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
)

// StockQueryUseCase expone las lecturas del ledger que no necesitan
// transacción: el snapshot de prendas y el listado de un inventario genérico.
type StockQueryUseCase struct {
	stockRepo      repository.StockRepository
	genStockRepo   repository.GenericStockRepository
	genHistoryRepo repository.GenericHistoryRepository
}

func NewStockQueryUseCase(
	stockRepo repository.StockRepository,
	genStockRepo repository.GenericStockRepository,
	genHistoryRepo repository.GenericHistoryRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo, genStockRepo: genStockRepo, genHistoryRepo: genHistoryRepo}
}

// Snapshot devuelve el inventario de prendas completo con su marca de última
// actualización.
func (uc *StockQueryUseCase) Snapshot(_ context.Context) (*entity.StockSnapshot, error) {
	return uc.stockRepo.Snapshot()
}

// ListGenerico devuelve el stock de un inventario genérico.
func (uc *StockQueryUseCase) ListGenerico(_ context.Context, inventarioID string) ([]entity.GenericStockItem, error) {
	return uc.genStockRepo.List(inventarioID)
}

// HistorialGenerico devuelve el historial completo de un inventario genérico,
// del movimiento más reciente al más antiguo.
func (uc *StockQueryUseCase) HistorialGenerico(_ context.Context, inventarioID string) ([]entity.HistoryLog, error) {
	return uc.genHistoryRepo.List(inventarioID)
}
