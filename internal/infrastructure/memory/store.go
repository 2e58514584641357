// Package memory implementa los repositorios sobre un store de documentos en
// proceso, de un solo escritor: el equivalente del backend real para una sola
// pestaña. Opcionalmente se respalda en un archivo JSON que se carga al
// arrancar y se reescribe tras cada mutación confirmada.
package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
)

// storeData es el documento completo del store. Todo lo que persiste vive acá.
type storeData struct {
	Stock          []entity.StockItem                   `json:"stock"`
	LastUpdated    time.Time                            `json:"last_updated"`
	History        []entity.HistoryLog                  `json:"history"`
	NextSeq        uint64                               `json:"next_seq"`
	GenericStock   map[string][]entity.GenericStockItem `json:"generic_stock"`
	GenericHistory map[string][]entity.HistoryLog       `json:"generic_history"`
	GenericNextSeq map[string]uint64                    `json:"generic_next_seq"`
	Config         entity.ConfigDocument                `json:"config"`
}

// session abstrae "pool o transacción" para los repositorios: el Store aplica
// locking y persistencia; una txSession opera directo sobre la copia de la
// transacción sin locks.
type session interface {
	view(fn func(d *storeData) error) error
	update(fn func(d *storeData) error) error
}

// Store es el documento compartido con su mutex. Implementa session.
type Store struct {
	mu   sync.RWMutex
	data storeData
	path string // "" = solo memoria, sin snapshot en disco
}

// NewStore crea el store. Si path no es vacío y el archivo existe, carga el
// snapshot; si no, arranca con los vocabularios por defecto.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	s.data = storeData{
		NextSeq:        1,
		GenericStock:   map[string][]entity.GenericStockItem{},
		GenericHistory: map[string][]entity.HistoryLog{},
		GenericNextSeq: map[string]uint64{},
		Config:         DefaultConfig(),
	}
	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer snapshot %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("parsear snapshot %s: %w", path, err)
	}
	if s.data.NextSeq == 0 {
		s.data.NextSeq = 1
	}
	if s.data.GenericStock == nil {
		s.data.GenericStock = map[string][]entity.GenericStockItem{}
	}
	if s.data.GenericHistory == nil {
		s.data.GenericHistory = map[string][]entity.HistoryLog{}
	}
	if s.data.GenericNextSeq == nil {
		s.data.GenericNextSeq = map[string]uint64{}
	}
	return s, nil
}

func (s *Store) view(fn func(d *storeData) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.data)
}

// update ejecuta fn bajo el lock de escritura y persiste el snapshot si todo
// fue bien. fn debe mutar solo en su camino de éxito.
func (s *Store) update(fn func(d *storeData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(&s.data); err != nil {
		return err
	}
	return s.persistLocked()
}

// persistLocked reescribe el snapshot JSON. Caller debe tener el lock.
func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(&s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar snapshot: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("escribir snapshot: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// clone hace una copia profunda del documento (para transacciones).
func (d *storeData) clone() (*storeData, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var out storeData
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out.GenericStock == nil {
		out.GenericStock = map[string][]entity.GenericStockItem{}
	}
	if out.GenericHistory == nil {
		out.GenericHistory = map[string][]entity.HistoryLog{}
	}
	if out.GenericNextSeq == nil {
		out.GenericNextSeq = map[string]uint64{}
	}
	return &out, nil
}

// txSession opera directo sobre la copia de una transacción, sin locks: el
// TxRunner ya tiene el lock exclusivo del Store.
type txSession struct {
	d *storeData
}

func (t *txSession) view(fn func(d *storeData) error) error   { return fn(t.d) }
func (t *txSession) update(fn func(d *storeData) error) error { return fn(t.d) }
