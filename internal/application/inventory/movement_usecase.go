package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	domaininv "github.com/conamormarket-lgtm/inventario-api/internal/domain/inventory"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
)

// MovementUseCase registra entradas y salidas contra el ledger y el historial
// dentro de una misma unidad atómica: o se aplican ambos efectos o ninguno.
type MovementUseCase struct {
	txRunner   TxRunner
	configRepo repository.ConfigRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner, configRepo repository.ConfigRepository) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, configRepo: configRepo}
}

// MovementInputDTO entrada para registrar un movimiento de prendas.
type MovementInputDTO struct {
	Accion   string // Entrada | Salida
	Tipo     string
	Color    string
	Talla    string
	Cantidad int
	Usuario  string
}

// GenericMovementInputDTO entrada para registrar un movimiento en un
// inventario genérico. Attrs va nombrado por característica configurada.
type GenericMovementInputDTO struct {
	InventarioID string
	Accion       string
	Tipo         string
	Attrs        map[string]string
	Cantidad     int
	Usuario      string
}

// AddMovement valida y aplica un movimiento de prendas. Devuelve el stock
// resultante del SKU afectado. Una salida que dejaría el stock negativo no
// muta nada y devuelve domain.ErrInsufficientStock.
func (uc *MovementUseCase) AddMovement(ctx context.Context, input MovementInputDTO) (int, error) {
	if input.Accion != entity.ActionEntrada && input.Accion != entity.ActionSalida {
		return 0, fmt.Errorf("%w: acción %q", domain.ErrInvalidInput, input.Accion)
	}
	if input.Tipo == "" || input.Color == "" || input.Talla == "" {
		return 0, fmt.Errorf("%w: selecciona prenda, color y talla", domain.ErrInvalidInput)
	}
	if input.Cantidad <= 0 {
		return 0, fmt.Errorf("%w: la cantidad debe ser mayor a 0", domain.ErrInvalidInput)
	}

	now := time.Now()
	var newStock int
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		historyRepo repository.HistoryRepository,
		_ repository.GenericStockRepository,
		_ repository.GenericHistoryRepository,
	) error {
		item, err := stockRepo.GetByKey(input.Tipo, input.Color, input.Talla)
		if err != nil {
			return err
		}
		if input.Accion == entity.ActionSalida {
			if item == nil {
				return fmt.Errorf("%w: ítem no encontrado en inventario", domain.ErrNotFound)
			}
			if item.Cantidad < input.Cantidad {
				return fmt.Errorf("%w: disponible %d", domain.ErrInsufficientStock, item.Cantidad)
			}
			item.Cantidad -= input.Cantidad
		} else {
			if item == nil {
				item = &entity.StockItem{
					ID:    domaininv.ItemID(input.Tipo, input.Color, input.Talla),
					Tipo:  input.Tipo,
					Color: input.Color,
					Talla: input.Talla,
				}
			}
			item.Cantidad += input.Cantidad
		}
		if err := stockRepo.Upsert(item); err != nil {
			return err
		}
		newStock = item.Cantidad

		log := &entity.HistoryLog{
			ID:        uuid.New().String(),
			Timestamp: now,
			User:      input.Usuario,
			Action:    input.Accion,
			Details:   domaininv.FormatDetails(input.Tipo, input.Color, input.Talla, input.Cantidad),
			Quantity:  input.Cantidad,
			Metadata: entity.LogMetadata{
				Tipo:     input.Tipo,
				Color:    input.Color,
				Talla:    input.Talla,
				Cantidad: input.Cantidad,
			},
		}
		return historyRepo.Append(log)
	})
	if err != nil {
		return 0, err
	}
	return newStock, nil
}

// AddMovementGenerico aplica el mismo contrato que AddMovement sobre un
// inventario genérico, parametrizado por inventarioID y atributos nombrados.
func (uc *MovementUseCase) AddMovementGenerico(ctx context.Context, input GenericMovementInputDTO) (int, error) {
	if input.Accion != entity.ActionEntrada && input.Accion != entity.ActionSalida {
		return 0, fmt.Errorf("%w: acción %q", domain.ErrInvalidInput, input.Accion)
	}
	if input.InventarioID == "" || input.Tipo == "" {
		return 0, fmt.Errorf("%w: inventario y tipo son obligatorios", domain.ErrInvalidInput)
	}
	if input.Cantidad <= 0 {
		return 0, fmt.Errorf("%w: la cantidad debe ser mayor a 0", domain.ErrInvalidInput)
	}

	doc, err := uc.configRepo.Load()
	if err != nil {
		return 0, err
	}
	cfg, ok := doc.ConfigInventarioGenerico[input.InventarioID]
	if !ok {
		return 0, fmt.Errorf("%w: inventario %q sin configuración", domain.ErrNotFound, input.InventarioID)
	}
	orden := make([]string, 0, len(cfg.Caracteristicas))
	permitidos := make(map[string]bool, len(cfg.Caracteristicas))
	for _, c := range cfg.Caracteristicas {
		orden = append(orden, c.Nombre)
		permitidos[c.Nombre] = true
	}
	for nombre := range input.Attrs {
		if !permitidos[nombre] {
			return 0, fmt.Errorf("%w: característica %q no configurada", domain.ErrInvalidInput, nombre)
		}
	}

	key := domaininv.GenericKey(input.Tipo, input.Attrs, orden)
	now := time.Now()
	var newStock int
	err = uc.txRunner.Run(ctx, func(
		_ repository.StockRepository,
		_ repository.HistoryRepository,
		genStockRepo repository.GenericStockRepository,
		genHistoryRepo repository.GenericHistoryRepository,
	) error {
		item, err := genStockRepo.GetByKey(input.InventarioID, key)
		if err != nil {
			return err
		}
		if input.Accion == entity.ActionSalida {
			if item == nil {
				return fmt.Errorf("%w: ítem no encontrado en inventario", domain.ErrNotFound)
			}
			if item.Cantidad < input.Cantidad {
				return fmt.Errorf("%w: disponible %d", domain.ErrInsufficientStock, item.Cantidad)
			}
			item.Cantidad -= input.Cantidad
		} else {
			if item == nil {
				attrs := make(map[string]string, len(input.Attrs))
				for k, v := range input.Attrs {
					attrs[k] = v
				}
				item = &entity.GenericStockItem{ID: key, Tipo: input.Tipo, Attrs: attrs}
			}
			item.Cantidad += input.Cantidad
		}
		if err := genStockRepo.Upsert(input.InventarioID, item); err != nil {
			return err
		}
		newStock = item.Cantidad

		log := &entity.HistoryLog{
			ID:        uuid.New().String(),
			Timestamp: now,
			User:      input.Usuario,
			Action:    input.Accion,
			Details:   domaininv.FormatGenericDetails(input.Tipo, input.Attrs, orden, input.Cantidad),
			Quantity:  input.Cantidad,
			Metadata: entity.LogMetadata{
				InventarioID: input.InventarioID,
				Tipo:         input.Tipo,
				Attrs:        input.Attrs,
				Cantidad:     input.Cantidad,
			},
		}
		return genHistoryRepo.Append(input.InventarioID, log)
	})
	if err != nil {
		return 0, err
	}
	return newStock, nil
}
