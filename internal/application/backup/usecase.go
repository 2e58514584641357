package backup

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	appinv "github.com/conamormarket-lgtm/inventario-api/internal/application/inventory"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	domaininv "github.com/conamormarket-lgtm/inventario-api/internal/domain/inventory"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
)

// UseCase implementa backup y restauración del historial y la carga masiva de
// stock. Las importaciones parsean y validan el archivo completo antes de
// mutar nada: un fallo de lectura nunca deja efectos parciales.
type UseCase struct {
	txRunner    appinv.TxRunner
	historyRepo repository.HistoryRepository

	now func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner appinv.TxRunner, historyRepo repository.HistoryRepository) *UseCase {
	return &UseCase{txRunner: txRunner, historyRepo: historyRepo, now: time.Now}
}

// BackupResult es un backup de historial listo para descargar.
type BackupResult struct {
	Filename string
	Content  string
	Count    int
}

// ExportLastDays exporta como CSV los registros de los últimos n días.
func (uc *UseCase) ExportLastDays(_ context.Context, dias int) (*BackupResult, error) {
	if dias <= 0 {
		return nil, fmt.Errorf("%w: días debe ser mayor a 0", domain.ErrInvalidInput)
	}
	logs, err := uc.historyRepo.List()
	if err != nil {
		return nil, err
	}
	now := uc.now()
	limite := now.AddDate(0, 0, -dias)
	recent := make([]entity.HistoryLog, 0, len(logs))
	for _, l := range logs {
		if !l.Timestamp.Before(limite) {
			recent = append(recent, l)
		}
	}
	return &BackupResult{
		Filename: fmt.Sprintf("backup_inventory_%s.csv", now.Format("2006-01-02")),
		Content:  ExportHistoryToCSV(recent),
		Count:    len(recent),
	}, nil
}

// ImportHistoryCSV parsea un backup y añade sus registros al historial sin
// tocar el ledger: es restauración pura de historial, no re-ejecuta los
// efectos de stock. La metadata se reconstruye del detalle cuando es posible.
// Los registros entran marcados como restaurados para que nunca se vuelvan
// el movimiento "más reciente": deshacerlos revertiría un efecto de stock
// que nunca se aplicó.
func (uc *UseCase) ImportHistoryCSV(ctx context.Context, text string) (int, error) {
	parsed, err := ParseHistoryCSV(text)
	if err != nil {
		return 0, err
	}
	if len(parsed) == 0 {
		return 0, fmt.Errorf("%w: no se pudieron leer registros del CSV", domain.ErrParse)
	}
	err = uc.txRunner.Run(ctx, func(
		_ repository.StockRepository,
		historyRepo repository.HistoryRepository,
		_ repository.GenericStockRepository,
		_ repository.GenericHistoryRepository,
	) error {
		for _, p := range parsed {
			meta := entity.LogMetadata{Cantidad: p.Quantity}
			if tipo, color, talla, ok := domaininv.ParseDetails(p.Details); ok {
				meta.Tipo, meta.Color, meta.Talla = tipo, color, talla
			}
			log := &entity.HistoryLog{
				ID:         uuid.New().String(),
				Timestamp:  p.Timestamp,
				User:       p.User,
				Action:     p.Action,
				Details:    p.Details,
				Quantity:   p.Quantity,
				Metadata:   meta,
				Restaurado: true,
			}
			if err := historyRepo.Append(log); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(parsed), nil
}

// StockImportResult resume una carga masiva de stock.
type StockImportResult struct {
	Count      int `json:"count"`
	TotalUnits int `json:"total_units"`
}

// ImportStockCSV parsea el formato TIPO,COLOR,TALLA,CANTIDAD y aplica cada
// fila válida como asignación directa de stock (no como movimiento: la carga
// masiva no genera historial). COLOR es opcional y por defecto "Unico". Las
// filas malformadas se saltan; el resultado cuenta solo las aplicadas. Con
// simulacro=true se parsea y valida todo pero no se aplica nada.
func (uc *UseCase) ImportStockCSV(ctx context.Context, text string, simulacro bool) (*StockImportResult, error) {
	items, result, err := parseStockCSV(text)
	if err != nil {
		return nil, err
	}
	if simulacro {
		return result, nil
	}
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.HistoryRepository,
		_ repository.GenericStockRepository,
		_ repository.GenericHistoryRepository,
	) error {
		for _, row := range items {
			item, err := stockRepo.GetByKey(row.Tipo, row.Color, row.Talla)
			if err != nil {
				return err
			}
			if item == nil {
				item = &entity.StockItem{
					ID:    domaininv.ItemID(row.Tipo, row.Color, row.Talla),
					Tipo:  row.Tipo,
					Color: row.Color,
					Talla: row.Talla,
				}
			}
			item.Cantidad = row.Cantidad
			if err := stockRepo.Upsert(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// parseStockCSV valida la cabecera, resuelve índices de columnas y devuelve
// las filas aplicables. Filas repetidas para el mismo SKU: gana la última
// (asignación directa).
func parseStockCSV(text string) ([]entity.StockItem, *StockImportResult, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	headerIdx := -1
	var idxTipo, idxColor, idxTalla, idxCant int
	for i, cols := range records {
		upper := strings.ToUpper(strings.Join(cols, ","))
		if strings.Contains(upper, "TIPO") && strings.Contains(upper, "CANTIDAD") {
			headerIdx = i
			idxTipo, idxColor, idxTalla, idxCant = -1, -1, -1, -1
			for j, h := range cols {
				switch strings.ToUpper(strings.TrimSpace(h)) {
				case "TIPO":
					idxTipo = j
				case "COLOR":
					idxColor = j
				case "TALLA":
					idxTalla = j
				case "CANTIDAD":
					idxCant = j
				}
			}
			break
		}
	}
	if headerIdx == -1 {
		return nil, nil, fmt.Errorf("%w: cabecera TIPO,COLOR,TALLA,CANTIDAD no encontrada", domain.ErrParse)
	}
	if idxTipo == -1 || idxTalla == -1 || idxCant == -1 {
		return nil, nil, fmt.Errorf("%w: faltan columnas TIPO, TALLA o CANTIDAD", domain.ErrParse)
	}

	byKey := make(map[string]int)
	items := make([]entity.StockItem, 0, len(records))
	result := &StockImportResult{}
	for _, cols := range records[headerIdx+1:] {
		if len(cols) <= idxTipo || len(cols) <= idxTalla || len(cols) <= idxCant {
			continue
		}
		tipo := strings.TrimSpace(cols[idxTipo])
		talla := strings.TrimSpace(cols[idxTalla])
		color := domaininv.ColorUnico
		if idxColor != -1 && len(cols) > idxColor && strings.TrimSpace(cols[idxColor]) != "" {
			color = strings.TrimSpace(cols[idxColor])
		}
		if tipo == "" || talla == "" {
			continue
		}
		cantidad, err := strconv.Atoi(strings.TrimSpace(cols[idxCant]))
		if err != nil || cantidad < 0 {
			continue
		}
		key := domaininv.ItemKey(tipo, color, talla)
		if idx, ok := byKey[key]; ok {
			result.TotalUnits += cantidad - items[idx].Cantidad
			items[idx].Cantidad = cantidad
			result.Count++
			continue
		}
		byKey[key] = len(items)
		items = append(items, entity.StockItem{
			ID:       domaininv.ItemID(tipo, color, talla),
			Tipo:     tipo,
			Color:    color,
			Talla:    talla,
			Cantidad: cantidad,
		})
		result.Count++
		result.TotalUnits += cantidad
	}
	return items, result, nil
}
