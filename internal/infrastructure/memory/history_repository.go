package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo implementación de HistoryRepository sobre el store en memoria.
type HistoryRepo struct {
	s session
}

// NewHistoryRepository construye el adaptador de historial.
func NewHistoryRepository(s session) *HistoryRepo {
	return &HistoryRepo{s: s}
}

// Append inserta el registro asignando ID y Seq si faltan.
func (r *HistoryRepo) Append(log *entity.HistoryLog) error {
	return r.s.update(func(d *storeData) error {
		if log.ID == "" {
			log.ID = uuid.New().String()
		}
		if log.Seq == 0 {
			log.Seq = d.NextSeq
			d.NextSeq++
		} else if log.Seq >= d.NextSeq {
			d.NextSeq = log.Seq + 1
		}
		d.History = append(d.History, *log)
		return nil
	})
}

// List devuelve el historial completo, más reciente (mayor Seq) primero.
func (r *HistoryRepo) List() ([]entity.HistoryLog, error) {
	var out []entity.HistoryLog
	err := r.s.view(func(d *storeData) error {
		out = make([]entity.HistoryLog, len(d.History))
		copy(out, d.History)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seq > out[j].Seq })
	return out, nil
}

// ListByDateRange devuelve los registros con from <= Timestamp <= to.
func (r *HistoryRepo) ListByDateRange(from, to time.Time) ([]entity.HistoryLog, error) {
	var out []entity.HistoryLog
	err := r.s.view(func(d *storeData) error {
		for _, l := range d.History {
			if !l.Timestamp.Before(from) && !l.Timestamp.After(to) {
				out = append(out, l)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seq > out[j].Seq })
	return out, nil
}

// Last devuelve el registro de mayor Seq que no sea restaurado, o nil si no
// queda ningún movimiento real.
func (r *HistoryRepo) Last() (*entity.HistoryLog, error) {
	var last *entity.HistoryLog
	err := r.s.view(func(d *storeData) error {
		for i := range d.History {
			// Los registros restaurados de backups no cuentan como recencia.
			if d.History[i].Restaurado {
				continue
			}
			if last == nil || d.History[i].Seq > last.Seq {
				cp := d.History[i]
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
func (r *HistoryRepo) Delete(id string) error {
	return r.s.update(func(d *storeData) error {
		for i := range d.History {
			if d.History[i].ID == id {
				d.History = append(d.History[:i], d.History[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// DeleteByDateRange elimina los registros del rango y devuelve cuántos.
func (r *HistoryRepo) DeleteByDateRange(from, to time.Time) (int, error) {
	count := 0
	err := r.s.update(func(d *storeData) error {
		kept := d.History[:0]
		for _, l := range d.History {
			if !l.Timestamp.Before(from) && !l.Timestamp.After(to) {
				count++
				continue
			}
			kept = append(kept, l)
		}
		d.History = kept
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
