package memory

import (
	"github.com/google/uuid"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
)

var (
	_ repository.GenericStockRepository   = (*GenericStockRepo)(nil)
	_ repository.GenericHistoryRepository = (*GenericHistoryRepo)(nil)
)

// GenericStockRepo ledger de inventarios genéricos, particionado por
// inventarioID. El ID del ítem es su clave canónica.
type GenericStockRepo struct {
	s session
}

// NewGenericStockRepository construye el adaptador.
func NewGenericStockRepository(s session) *GenericStockRepo {
	return &GenericStockRepo{s: s}
}

// List devuelve los ítems de un inventario.
func (r *GenericStockRepo) List(inventarioID string) ([]entity.GenericStockItem, error) {
	var out []entity.GenericStockItem
	err := r.s.view(func(d *storeData) error {
		items := d.GenericStock[inventarioID]
		out = make([]entity.GenericStockItem, len(items))
		copy(out, items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByKey busca por clave canónica; nil si no existe.
func (r *GenericStockRepo) GetByKey(inventarioID, key string) (*entity.GenericStockItem, error) {
	var found *entity.GenericStockItem
	err := r.s.view(func(d *storeData) error {
		for _, it := range d.GenericStock[inventarioID] {
			if it.ID == key {
				cp := it
				found = &cp
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Upsert crea o reemplaza el ítem.
func (r *GenericStockRepo) Upsert(inventarioID string, item *entity.GenericStockItem) error {
	return r.s.update(func(d *storeData) error {
		items := d.GenericStock[inventarioID]
		for i := range items {
			if items[i].ID == item.ID {
				items[i] = *item
				return nil
			}
		}
		d.GenericStock[inventarioID] = append(items, *item)
		return nil
	})
}

// GenericHistoryRepo historial por inventario genérico, cada uno con su
// secuencial propio.
type GenericHistoryRepo struct {
	s session
}

// NewGenericHistoryRepository construye el adaptador.
func NewGenericHistoryRepository(s session) *GenericHistoryRepo {
	return &GenericHistoryRepo{s: s}
}

// Append inserta el registro asignando ID y Seq si faltan.
func (r *GenericHistoryRepo) Append(inventarioID string, log *entity.HistoryLog) error {
	return r.s.update(func(d *storeData) error {
		if log.ID == "" {
			log.ID = uuid.New().String()
		}
		next := d.GenericNextSeq[inventarioID]
		if next == 0 {
			next = 1
		}
		if log.Seq == 0 {
			log.Seq = next
		}
		if log.Seq >= next {
			d.GenericNextSeq[inventarioID] = log.Seq + 1
		}
		d.GenericHistory[inventarioID] = append(d.GenericHistory[inventarioID], *log)
		return nil
	})
}

// List devuelve el historial de un inventario, más reciente primero.
func (r *GenericHistoryRepo) List(inventarioID string) ([]entity.HistoryLog, error) {
	var out []entity.HistoryLog
	err := r.s.view(func(d *storeData) error {
		logs := d.GenericHistory[inventarioID]
		out = make([]entity.HistoryLog, 0, len(logs))
		for i := len(logs) - 1; i >= 0; i-- {
			out = append(out, logs[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Last devuelve el registro de mayor Seq del inventario, o nil.
func (r *GenericHistoryRepo) Last(inventarioID string) (*entity.HistoryLog, error) {
	var last *entity.HistoryLog
	err := r.s.view(func(d *storeData) error {
		for _, l := range d.GenericHistory[inventarioID] {
			if last == nil || l.Seq > last.Seq {
				cp := l
				last = &cp
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return last, nil
}

// Delete elimina exactamente un registro por ID.
func (r *GenericHistoryRepo) Delete(inventarioID, id string) error {
	return r.s.update(func(d *storeData) error {
		logs := d.GenericHistory[inventarioID]
		for i := range logs {
			if logs[i].ID == id {
				d.GenericHistory[inventarioID] = append(logs[:i], logs[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}
