package memory

import (
	"encoding/json"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
)

var _ repository.ConfigRepository = (*ConfigRepo)(nil)

// ConfigRepo persiste el documento de configuración dentro del store.
type ConfigRepo struct {
	s session
}

// NewConfigRepository construye el adaptador de configuración.
func NewConfigRepository(s session) *ConfigRepo {
	return &ConfigRepo{s: s}
}

// Load devuelve una copia profunda del documento: los casos de uso lo mutan
// libremente antes de Save sin tocar el estado compartido.
func (r *ConfigRepo) Load() (*entity.ConfigDocument, error) {
	var doc entity.ConfigDocument
	err := r.s.view(func(d *storeData) error {
		raw, err := json.Marshal(&d.Config)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, &doc)
	})
	if err != nil {
		return nil, err
	}
	if doc.ConfigInventarioGenerico == nil {
		doc.ConfigInventarioGenerico = map[string]entity.GenericConfig{}
	}
	return &doc, nil
}

// Save reemplaza el documento completo y persiste el snapshot.
func (r *ConfigRepo) Save(doc *entity.ConfigDocument) error {
	return r.s.update(func(d *storeData) error {
		d.Config = *doc
		return nil
	})
}
