package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/inventory"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
)

// StockRepo implementa repository.StockRepository sobre la tabla inventario_stock.
// La clave canónica del SKU se calcula en Go (inventory.ItemKey) y se persiste
// como columna para que el upsert sea un ON CONFLICT simple.
type StockRepo struct {
	ctx context.Context
	db  Querier
}

var _ repository.StockRepository = (*StockRepo)(nil)

func NewStockRepo(ctx context.Context, db Querier) *StockRepo {
	return &StockRepo{ctx: ctx, db: db}
}

func (r *StockRepo) Snapshot() (*entity.StockSnapshot, error) {
	rows, err := r.db.Query(r.ctx, `
		SELECT id, tipo, color, talla, cantidad, updated_at
		FROM inventario_stock
		ORDER BY tipo, color, talla`)
	if err != nil {
		return nil, fmt.Errorf("consultar stock: %w", err)
	}
	defer rows.Close()

	snap := &entity.StockSnapshot{}
	for rows.Next() {
		var item entity.StockItem
		var updated time.Time
		if err := rows.Scan(&item.ID, &item.Tipo, &item.Color, &item.Talla, &item.Cantidad, &updated); err != nil {
			return nil, fmt.Errorf("escanear stock: %w", err)
		}
		if updated.After(snap.LastUpdated) {
			snap.LastUpdated = updated
		}
		snap.Items = append(snap.Items, item)
	}
	return snap, rows.Err()
}

func (r *StockRepo) GetByKey(tipo, color, talla string) (*entity.StockItem, error) {
	var item entity.StockItem
	err := r.db.QueryRow(r.ctx, `
		SELECT id, tipo, color, talla, cantidad
		FROM inventario_stock
		WHERE sku_key = $1`, inventory.ItemKey(tipo, color, talla)).
		Scan(&item.ID, &item.Tipo, &item.Color, &item.Talla, &item.Cantidad)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscar SKU: %w", err)
	}
	return &item, nil
}

func (r *StockRepo) Upsert(item *entity.StockItem) error {
	_, err := r.db.Exec(r.ctx, `
		INSERT INTO inventario_stock (sku_key, id, tipo, color, talla, cantidad, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (sku_key) DO UPDATE
		SET id = EXCLUDED.id, tipo = EXCLUDED.tipo, color = EXCLUDED.color,
		    talla = EXCLUDED.talla, cantidad = EXCLUDED.cantidad, updated_at = NOW()`,
		inventory.ItemKey(item.Tipo, item.Color, item.Talla),
		item.ID, item.Tipo, item.Color, item.Talla, item.Cantidad)
	if err != nil {
		return fmt.Errorf("guardar SKU: %w", err)
	}
	return nil
}

func (r *StockRepo) ReplaceAll(items []entity.StockItem) error {
	if _, err := r.db.Exec(r.ctx, `DELETE FROM inventario_stock`); err != nil {
		return fmt.Errorf("vaciar stock: %w", err)
	}
	for i := range items {
		if err := r.Upsert(&items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *StockRepo) ResetAll() (int, error) {
	tag, err := r.db.Exec(r.ctx, `UPDATE inventario_stock SET cantidad = 0, updated_at = NOW()`)
	if err != nil {
		return 0, fmt.Errorf("resetear stock: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
