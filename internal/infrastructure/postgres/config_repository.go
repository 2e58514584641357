package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
)

// ConfigRepo persiste el documento de configuración como una única fila JSONB
// en inventario_config. Si la fila no existe todavía, Load devuelve los valores
// por defecto recibidos en el constructor.
type ConfigRepo struct {
	ctx      context.Context
	db       Querier
	defaults func() *entity.ConfigDocument
}

var _ repository.ConfigRepository = (*ConfigRepo)(nil)

func NewConfigRepo(ctx context.Context, db Querier, defaults func() *entity.ConfigDocument) *ConfigRepo {
	return &ConfigRepo{ctx: ctx, db: db, defaults: defaults}
}

func (r *ConfigRepo) Load() (*entity.ConfigDocument, error) {
	var doc entity.ConfigDocument
	err := r.db.QueryRow(r.ctx, `SELECT doc FROM inventario_config WHERE id = 1`).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.defaults(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	return &doc, nil
}

func (r *ConfigRepo) Save(doc *entity.ConfigDocument) error {
	_, err := r.db.Exec(r.ctx, `
		INSERT INTO inventario_config (id, doc, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`, doc)
	if err != nil {
		return fmt.Errorf("guardar configuración: %w", err)
	}
	return nil
}
