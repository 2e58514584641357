package repository

import "github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"

// StockRepository define el puerto de persistencia del ledger de prendas.
// Usado dentro del TxRunner para garantizar consistencia.
type StockRepository interface {
	// Snapshot devuelve todos los ítems con la marca de última actualización.
	Snapshot() (*entity.StockSnapshot, error)
	// GetByKey busca un SKU por su clave canónica (tipo, color, talla).
	// Devuelve nil sin error si no existe.
	GetByKey(tipo, color, talla string) (*entity.StockItem, error)
	// Upsert crea o reemplaza el ítem (la cantidad ya validada por el caller).
	Upsert(item *entity.StockItem) error
	// ReplaceAll sustituye el ledger completo (normalización, import masivo).
	ReplaceAll(items []entity.StockItem) error
	// ResetAll deja todas las cantidades en cero y devuelve cuántos ítems afectó.
	ResetAll() (int, error)
}
