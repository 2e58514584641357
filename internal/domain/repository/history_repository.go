package repository

import (
	"time"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
)

// HistoryRepository define el puerto de persistencia del historial de movimientos.
// El repositorio asigna Seq (secuencial monótono) al insertar; ese número, no el
// timestamp, es el orden de recencia autoritativo.
type HistoryRepository interface {
	// Append inserta el registro y le asigna ID/Seq si faltan.
	Append(log *entity.HistoryLog) error
	// List devuelve el historial completo, más reciente primero.
	List() ([]entity.HistoryLog, error)
	// ListByDateRange devuelve los registros con from <= Timestamp <= to,
	// más reciente primero.
	ListByDateRange(from, to time.Time) ([]entity.HistoryLog, error)
	// Last devuelve el registro de mayor Seq excluyendo los restaurados de
	// backups, o nil si no queda ningún movimiento real.
	Last() (*entity.HistoryLog, error)
	// Delete elimina exactamente un registro por ID.
	Delete(id string) error
	// DeleteByDateRange elimina los registros del rango y devuelve cuántos.
	DeleteByDateRange(from, to time.Time) (int, error)
}
