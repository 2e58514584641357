package inventory

import (
	"context"
	"fmt"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	domaininv "github.com/conamormarket-lgtm/inventario-api/internal/domain/inventory"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
)

// UndoUseCase deshace el último movimiento registrado: aplica el ajuste
// inverso al ledger y borra ese registro del historial (no se sustituye por
// un registro compensatorio; la acción desaparece del historial). Deshacer
// dos veces seguidas deshace dos acciones distintas.
type UndoUseCase struct {
	txRunner   TxRunner
	configRepo repository.ConfigRepository
}

// NewUndoUseCase construye el caso de uso.
func NewUndoUseCase(txRunner TxRunner, configRepo repository.ConfigRepository) *UndoUseCase {
	return &UndoUseCase{txRunner: txRunner, configRepo: configRepo}
}

// UndoLastAction revierte el movimiento más reciente del historial de prendas.
// "Más reciente" es el de mayor Seq, entre entradas y salidas por igual.
// Devuelve el stock resultante del SKU afectado.
func (uc *UndoUseCase) UndoLastAction(ctx context.Context) (int, error) {
	var newStock int
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		historyRepo repository.HistoryRepository,
		_ repository.GenericStockRepository,
		_ repository.GenericHistoryRepository,
	) error {
		last, err := historyRepo.Last()
		if err != nil {
			return err
		}
		if last == nil {
			return domain.ErrEmptyHistory
		}

		meta := last.Metadata
		if meta.Tipo == "" || meta.Color == "" || meta.Talla == "" {
			return fmt.Errorf("%w: el registro no tiene metadata suficiente para revertir", domain.ErrNotFound)
		}
		item, err := stockRepo.GetByKey(meta.Tipo, meta.Color, meta.Talla)
		if err != nil {
			return err
		}

		switch last.Action {
		case entity.ActionEntrada:
			// Revertir una entrada resta la cantidad registrada.
			if item == nil {
				return fmt.Errorf("%w: ítem no encontrado para revertir", domain.ErrNotFound)
			}
			if item.Cantidad < meta.Cantidad {
				return fmt.Errorf("%w: stock insuficiente para revertir", domain.ErrInsufficientStock)
			}
			item.Cantidad -= meta.Cantidad
		case entity.ActionSalida:
			// Revertir una salida devuelve la cantidad, creando el SKU si ya no existe.
			if item == nil {
				item = &entity.StockItem{
					ID:    domaininv.ItemID(meta.Tipo, meta.Color, meta.Talla),
					Tipo:  meta.Tipo,
					Color: meta.Color,
					Talla: meta.Talla,
				}
			}
			item.Cantidad += meta.Cantidad
		default:
			return fmt.Errorf("%w: acción %q no reversible", domain.ErrInvalidInput, last.Action)
		}

		if err := stockRepo.Upsert(item); err != nil {
			return err
		}
		newStock = item.Cantidad
		return historyRepo.Delete(last.ID)
	})
	if err != nil {
		return 0, err
	}
	return newStock, nil
}

// UndoLastActionGenerico revierte el movimiento más reciente de un inventario
// genérico, con las mismas garantías que UndoLastAction.
func (uc *UndoUseCase) UndoLastActionGenerico(ctx context.Context, inventarioID string) (int, error) {
	if inventarioID == "" {
		return 0, fmt.Errorf("%w: inventario obligatorio", domain.ErrInvalidInput)
	}
	doc, err := uc.configRepo.Load()
	if err != nil {
		return 0, err
	}
	cfg, ok := doc.ConfigInventarioGenerico[inventarioID]
	if !ok {
		return 0, fmt.Errorf("%w: inventario %q sin configuración", domain.ErrNotFound, inventarioID)
	}
	orden := make([]string, 0, len(cfg.Caracteristicas))
	for _, c := range cfg.Caracteristicas {
		orden = append(orden, c.Nombre)
	}

	var newStock int
	err = uc.txRunner.Run(ctx, func(
		_ repository.StockRepository,
		_ repository.HistoryRepository,
		genStockRepo repository.GenericStockRepository,
		genHistoryRepo repository.GenericHistoryRepository,
	) error {
		last, err := genHistoryRepo.Last(inventarioID)
		if err != nil {
			return err
		}
		if last == nil {
			return domain.ErrEmptyHistory
		}
		meta := last.Metadata
		if meta.Tipo == "" {
			return fmt.Errorf("%w: el registro no tiene metadata suficiente para revertir", domain.ErrNotFound)
		}
		key := domaininv.GenericKey(meta.Tipo, meta.Attrs, orden)
		item, err := genStockRepo.GetByKey(inventarioID, key)
		if err != nil {
			return err
		}

		switch last.Action {
		case entity.ActionEntrada:
			if item == nil {
				return fmt.Errorf("%w: ítem no encontrado para revertir", domain.ErrNotFound)
			}
			if item.Cantidad < meta.Cantidad {
				return fmt.Errorf("%w: stock insuficiente para revertir", domain.ErrInsufficientStock)
			}
			item.Cantidad -= meta.Cantidad
		case entity.ActionSalida:
			if item == nil {
				item = &entity.GenericStockItem{ID: key, Tipo: meta.Tipo, Attrs: meta.Attrs}
			}
			item.Cantidad += meta.Cantidad
		default:
			return fmt.Errorf("%w: acción %q no reversible", domain.ErrInvalidInput, last.Action)
		}

		if err := genStockRepo.Upsert(inventarioID, item); err != nil {
			return err
		}
		newStock = item.Cantidad
		return genHistoryRepo.Delete(inventarioID, last.ID)
	})
	if err != nil {
		return 0, err
	}
	return newStock, nil
}
