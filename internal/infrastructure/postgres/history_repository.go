package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
)

// HistoryRepo implementa repository.HistoryRepository sobre inventario_historial.
// La columna seq es un BIGSERIAL: Postgres asigna el secuencial monótono que
// el dominio usa como orden de recencia. La metadata estructurada va en JSONB.
type HistoryRepo struct {
	ctx context.Context
	db  Querier
}

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

func NewHistoryRepo(ctx context.Context, db Querier) *HistoryRepo {
	return &HistoryRepo{ctx: ctx, db: db}
}

func (r *HistoryRepo) Append(log *entity.HistoryLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now()
	}
	err := r.db.QueryRow(r.ctx, `
		INSERT INTO inventario_historial (id, ts, usuario, accion, detalle, cantidad, metadata, restaurado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq`,
		log.ID, log.Timestamp, log.User, log.Action, log.Details, log.Quantity, log.Metadata, log.Restaurado).
		Scan(&log.Seq)
	if err != nil {
		return fmt.Errorf("insertar movimiento: %w", err)
	}
	return nil
}

func (r *HistoryRepo) List() ([]entity.HistoryLog, error) {
	return r.query(`
		SELECT id, seq, ts, usuario, accion, detalle, cantidad, metadata, restaurado
		FROM inventario_historial
		ORDER BY seq DESC`)
}

func (r *HistoryRepo) ListByDateRange(from, to time.Time) ([]entity.HistoryLog, error) {
	return r.query(`
		SELECT id, seq, ts, usuario, accion, detalle, cantidad, metadata, restaurado
		FROM inventario_historial
		WHERE ts >= $1 AND ts <= $2
		ORDER BY seq DESC`, from, to)
}

// Last ignora los registros restaurados: un backup repuesto no debe volverse
// el movimiento a deshacer.
func (r *HistoryRepo) Last() (*entity.HistoryLog, error) {
	logs, err := r.query(`
		SELECT id, seq, ts, usuario, accion, detalle, cantidad, metadata, restaurado
		FROM inventario_historial
		WHERE NOT restaurado
		ORDER BY seq DESC
		LIMIT 1`)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, nil
	}
	return &logs[0], nil
}

func (r *HistoryRepo) Delete(id string) error {
	tag, err := r.db.Exec(r.ctx, `DELETE FROM inventario_historial WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar movimiento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *HistoryRepo) DeleteByDateRange(from, to time.Time) (int, error) {
	tag, err := r.db.Exec(r.ctx,
		`DELETE FROM inventario_historial WHERE ts >= $1 AND ts <= $2`, from, to)
	if err != nil {
		return 0, fmt.Errorf("eliminar movimientos por rango: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *HistoryRepo) query(sql string, args ...any) ([]entity.HistoryLog, error) {
	rows, err := r.db.Query(r.ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("consultar historial: %w", err)
	}
	defer rows.Close()

	var logs []entity.HistoryLog
	for rows.Next() {
		var log entity.HistoryLog
		if err := rows.Scan(&log.ID, &log.Seq, &log.Timestamp, &log.User,
			&log.Action, &log.Details, &log.Quantity, &log.Metadata, &log.Restaurado); err != nil {
			return nil, fmt.Errorf("escanear movimiento: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
