package memory

import (
	"time"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	domaininv "github.com/conamormarket-lgtm/inventario-api/internal/domain/inventory"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre el store en memoria.
// Pasar el Store o una txSession (session).
type StockRepo struct {
	s session
}

// NewStockRepository construye el adaptador de stock.
func NewStockRepository(s session) *StockRepo {
	return &StockRepo{s: s}
}

// Snapshot devuelve una copia del ledger con su marca de actualización.
func (r *StockRepo) Snapshot() (*entity.StockSnapshot, error) {
	var snap entity.StockSnapshot
	err := r.s.view(func(d *storeData) error {
		snap.Items = make([]entity.StockItem, len(d.Stock))
		copy(snap.Items, d.Stock)
		snap.LastUpdated = d.LastUpdated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// GetByKey busca por clave canónica; nil si no existe.
func (r *StockRepo) GetByKey(tipo, color, talla string) (*entity.StockItem, error) {
	key := domaininv.ItemKey(tipo, color, talla)
	var found *entity.StockItem
	err := r.s.view(func(d *storeData) error {
		for i := range d.Stock {
			it := d.Stock[i]
			if domaininv.ItemKey(it.Tipo, it.Color, it.Talla) == key {
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

// Upsert crea o reemplaza el ítem por clave canónica.
func (r *StockRepo) Upsert(item *entity.StockItem) error {
	key := domaininv.ItemKey(item.Tipo, item.Color, item.Talla)
	return r.s.update(func(d *storeData) error {
		d.LastUpdated = time.Now()
		for i := range d.Stock {
			if domaininv.ItemKey(d.Stock[i].Tipo, d.Stock[i].Color, d.Stock[i].Talla) == key {
				d.Stock[i] = *item
				return nil
			}
		}
		d.Stock = append(d.Stock, *item)
		return nil
	})
}

// ReplaceAll sustituye el ledger completo.
func (r *StockRepo) ReplaceAll(items []entity.StockItem) error {
	return r.s.update(func(d *storeData) error {
		d.Stock = make([]entity.StockItem, len(items))
		copy(d.Stock, items)
		d.LastUpdated = time.Now()
		return nil
	})
}

// ResetAll deja todas las cantidades en cero.
func (r *StockRepo) ResetAll() (int, error) {
	count := 0
	err := r.s.update(func(d *storeData) error {
		for i := range d.Stock {
			d.Stock[i].Cantidad = 0
		}
		count = len(d.Stock)
		d.LastUpdated = time.Now()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
