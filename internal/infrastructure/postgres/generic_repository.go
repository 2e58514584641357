package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
)

// GenericStockRepo implementa el ledger de inventarios genéricos sobre
// inventario_generico_stock, particionado por inventario_id. Los atributos
// nombrados viajan como JSONB; la clave del ítem la calcula el caller.
type GenericStockRepo struct {
	ctx context.Context
	db  Querier
}

var _ repository.GenericStockRepository = (*GenericStockRepo)(nil)

func NewGenericStockRepo(ctx context.Context, db Querier) *GenericStockRepo {
	return &GenericStockRepo{ctx: ctx, db: db}
}

func (r *GenericStockRepo) List(inventarioID string) ([]entity.GenericStockItem, error) {
	rows, err := r.db.Query(r.ctx, `
		SELECT id, tipo, attrs, cantidad
		FROM inventario_generico_stock
		WHERE inventario_id = $1
		ORDER BY tipo, id`, inventarioID)
	if err != nil {
		return nil, fmt.Errorf("consultar stock genérico: %w", err)
	}
	defer rows.Close()

	var items []entity.GenericStockItem
	for rows.Next() {
		var item entity.GenericStockItem
		if err := rows.Scan(&item.ID, &item.Tipo, &item.Attrs, &item.Cantidad); err != nil {
			return nil, fmt.Errorf("escanear stock genérico: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *GenericStockRepo) GetByKey(inventarioID, key string) (*entity.GenericStockItem, error) {
	var item entity.GenericStockItem
	err := r.db.QueryRow(r.ctx, `
		SELECT id, tipo, attrs, cantidad
		FROM inventario_generico_stock
		WHERE inventario_id = $1 AND id = $2`, inventarioID, key).
		Scan(&item.ID, &item.Tipo, &item.Attrs, &item.Cantidad)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscar ítem genérico: %w", err)
	}
	return &item, nil
}

func (r *GenericStockRepo) Upsert(inventarioID string, item *entity.GenericStockItem) error {
	_, err := r.db.Exec(r.ctx, `
		INSERT INTO inventario_generico_stock (inventario_id, id, tipo, attrs, cantidad)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (inventario_id, id) DO UPDATE
		SET tipo = EXCLUDED.tipo, attrs = EXCLUDED.attrs, cantidad = EXCLUDED.cantidad`,
		inventarioID, item.ID, item.Tipo, item.Attrs, item.Cantidad)
	if err != nil {
		return fmt.Errorf("guardar ítem genérico: %w", err)
	}
	return nil
}

// GenericHistoryRepo es el historial por inventario genérico; el BIGSERIAL es
// compartido entre inventarios pero el orden relativo dentro de cada uno se
// conserva, que es lo único que el deshacer necesita.
type GenericHistoryRepo struct {
	ctx context.Context
	db  Querier
}

var _ repository.GenericHistoryRepository = (*GenericHistoryRepo)(nil)

func NewGenericHistoryRepo(ctx context.Context, db Querier) *GenericHistoryRepo {
	return &GenericHistoryRepo{ctx: ctx, db: db}
}

func (r *GenericHistoryRepo) Append(inventarioID string, log *entity.HistoryLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now()
	}
	err := r.db.QueryRow(r.ctx, `
		INSERT INTO inventario_generico_historial (inventario_id, id, ts, usuario, accion, detalle, cantidad, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq`,
		inventarioID, log.ID, log.Timestamp, log.User, log.Action, log.Details, log.Quantity, log.Metadata).
		Scan(&log.Seq)
	if err != nil {
		return fmt.Errorf("insertar movimiento genérico: %w", err)
	}
	return nil
}

func (r *GenericHistoryRepo) List(inventarioID string) ([]entity.HistoryLog, error) {
	rows, err := r.db.Query(r.ctx, `
		SELECT id, seq, ts, usuario, accion, detalle, cantidad, metadata
		FROM inventario_generico_historial
		WHERE inventario_id = $1
		ORDER BY seq DESC`, inventarioID)
	if err != nil {
		return nil, fmt.Errorf("consultar historial genérico: %w", err)
	}
	defer rows.Close()
	return scanHistoryLogs(rows)
}

func (r *GenericHistoryRepo) Last(inventarioID string) (*entity.HistoryLog, error) {
	rows, err := r.db.Query(r.ctx, `
		SELECT id, seq, ts, usuario, accion, detalle, cantidad, metadata
		FROM inventario_generico_historial
		WHERE inventario_id = $1
		ORDER BY seq DESC
		LIMIT 1`, inventarioID)
	if err != nil {
		return nil, fmt.Errorf("consultar historial genérico: %w", err)
	}
	defer rows.Close()
	logs, err := scanHistoryLogs(rows)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, nil
	}
	return &logs[0], nil
}

func scanHistoryLogs(rows pgx.Rows) ([]entity.HistoryLog, error) {
	var logs []entity.HistoryLog
	for rows.Next() {
		var log entity.HistoryLog
		if err := rows.Scan(&log.ID, &log.Seq, &log.Timestamp, &log.User,
			&log.Action, &log.Details, &log.Quantity, &log.Metadata); err != nil {
			return nil, fmt.Errorf("escanear movimiento: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (r *GenericHistoryRepo) Delete(inventarioID, id string) error {
	tag, err := r.db.Exec(r.ctx,
		`DELETE FROM inventario_generico_historial WHERE inventario_id = $1 AND id = $2`,
		inventarioID, id)
	if err != nil {
		return fmt.Errorf("eliminar movimiento genérico: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, id)
	}
	return nil
}
