package repository

import "github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"

// ConfigRepository persiste el documento único de configuración de inventarios
// (vocabularios de prendas + esquemas genéricos). Se carga al arrancar y se
// guarda completo tras cada mutación de metadata.
type ConfigRepository interface {
	Load() (*entity.ConfigDocument, error)
	Save(doc *entity.ConfigDocument) error
}
