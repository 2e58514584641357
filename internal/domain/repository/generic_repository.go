package repository

import "github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"

// GenericStockRepository es el puerto del ledger de inventarios genéricos,
// particionado por inventarioID. La clave del ítem la calcula el caller con
// inventory.GenericKey según el orden de características configurado.
type GenericStockRepository interface {
	List(inventarioID string) ([]entity.GenericStockItem, error)
	GetByKey(inventarioID, key string) (*entity.GenericStockItem, error)
	Upsert(inventarioID string, item *entity.GenericStockItem) error
}

// GenericHistoryRepository es el historial por inventario genérico; mismo
// contrato de Seq que HistoryRepository.
type GenericHistoryRepository interface {
	Append(inventarioID string, log *entity.HistoryLog) error
	List(inventarioID string) ([]entity.HistoryLog, error)
	Last(inventarioID string) (*entity.HistoryLog, error)
	Delete(inventarioID, id string) error
}
