package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	appinv "github.com/conamormarket-lgtm/inventario-api/internal/application/inventory"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	domaininv "github.com/conamormarket-lgtm/inventario-api/internal/domain/inventory"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/repository"
)

// Tipos de reporte aceptados por la API.
const (
	TipoEntradas = "entradas"
	TipoSalidas  = "salidas"
)

// UseCase implementa la consulta por rango de fechas, la agregación para
// exportes y las operaciones administrativas sobre ledger e historial.
type UseCase struct {
	txRunner    appinv.TxRunner
	stockRepo   repository.StockRepository
	historyRepo repository.HistoryRepository
	renderer    ReportRenderer
	pdfRenderer ReportPDFRenderer

	now func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner appinv.TxRunner,
	stockRepo repository.StockRepository,
	historyRepo repository.HistoryRepository,
	renderer ReportRenderer,
	pdfRenderer ReportPDFRenderer,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		stockRepo:   stockRepo,
		historyRepo: historyRepo,
		renderer:    renderer,
		pdfRenderer: pdfRenderer,
		now:         time.Now,
	}
}

// HistoryByDateRange devuelve el historial del rango [desde, hasta] en días
// completos. Un fin de rango futuro se recorta a "ahora": nunca se reporta
// más de lo pedido ni datos que todavía no existen.
func (uc *UseCase) HistoryByDateRange(_ context.Context, desde, hasta string) ([]entity.HistoryLog, error) {
	from, to, err := uc.resolveRange(desde, hasta)
	if err != nil {
		return nil, err
	}
	return uc.historyRepo.ListByDateRange(from, to)
}

// ExportResult es el archivo listo para descargar.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportReport agrega los movimientos del rango filtrados por tipo y los
// entrega en el formato pedido. Si la hoja de cálculo falla al generarse,
// degrada a CSV plano con BOM (mismas columnas, extensión .csv).
func (uc *UseCase) ExportReport(ctx context.Context, tipo, desde, hasta, formato string) (*ExportResult, error) {
	accion, titulo, err := accionDeTipo(tipo)
	if err != nil {
		return nil, err
	}
	logs, err := uc.HistoryByDateRange(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	rows := Aggregate(logs, accion)
	generado := uc.now()

	switch formato {
	case "", "xlsx":
		content, err := uc.renderer.RenderXLSX(titulo, rows, generado)
		if err == nil {
			return &ExportResult{
				Filename:    exportFilename(titulo, desde, hasta, "xlsx"),
				ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
				Content:     content,
			}, nil
		}
		fallthrough
	case "csv":
		return &ExportResult{
			Filename:    exportFilename(titulo, desde, hasta, "csv"),
			ContentType: "text/csv; charset=utf-8",
			Content:     uc.renderer.RenderCSV(rows, generado),
		}, nil
	case "pdf":
		content, err := uc.pdfRenderer.RenderPDF(titulo, rows, generado)
		if err != nil {
			return nil, fmt.Errorf("generar PDF: %w", err)
		}
		return &ExportResult{
			Filename:    exportFilename(titulo, desde, hasta, "pdf"),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, formato)
	}
}

// DeleteLogsByDateRange borra definitivamente el historial del rango.
func (uc *UseCase) DeleteLogsByDateRange(_ context.Context, desde, hasta string) (int, error) {
	from, to, err := uc.resolveRange(desde, hasta)
	if err != nil {
		return 0, err
	}
	return uc.historyRepo.DeleteByDateRange(from, to)
}

// ResetAllStock deja todas las cantidades del ledger en cero sin tocar el
// historial. Devuelve cuántos ítems afectó.
func (uc *UseCase) ResetAllStock(_ context.Context) (int, error) {
	return uc.stockRepo.ResetAll()
}

// Normalize es la pasada de reparación estructural del ledger: colapsa claves
// duplicadas, descarta filas sin tipo o talla, aplica el color por defecto y
// recalcula IDs canónicos. Es idempotente: sobre datos ya normalizados
// devuelve 0 sin reescribir nada.
func (uc *UseCase) Normalize(ctx context.Context) (int, error) {
	repaired := 0
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.HistoryRepository,
		_ repository.GenericStockRepository,
		_ repository.GenericHistoryRepository,
	) error {
		snap, err := stockRepo.Snapshot()
		if err != nil {
			return err
		}
		seen := make(map[string]int) // clave canónica -> índice en out
		out := make([]entity.StockItem, 0, len(snap.Items))
		for _, it := range snap.Items {
			tipo := strings.TrimSpace(it.Tipo)
			color := strings.TrimSpace(it.Color)
			talla := strings.TrimSpace(it.Talla)
			if color == "" {
				color = domaininv.ColorUnico
			}
			if tipo == "" || talla == "" {
				repaired++ // fila irrecuperable, se descarta
				continue
			}
			key := domaininv.ItemKey(tipo, color, talla)
			canonicalID := domaininv.ItemID(tipo, color, talla)
			if idx, ok := seen[key]; ok {
				out[idx].Cantidad += it.Cantidad
				repaired++
				continue
			}
			if tipo != it.Tipo || color != it.Color || talla != it.Talla || it.ID != canonicalID {
				repaired++
			}
			seen[key] = len(out)
			out = append(out, entity.StockItem{
				ID:       canonicalID,
				Tipo:     tipo,
				Color:    color,
				Talla:    talla,
				Cantidad: it.Cantidad,
			})
		}
		if repaired == 0 {
			return nil
		}
		return stockRepo.ReplaceAll(out)
	})
	if err != nil {
		return 0, err
	}
	return repaired, nil
}

// Aggregate agrupa los movimientos de la acción dada por (categoría, detalle)
// y suma cantidades. La metadata estructurada es la fuente primaria; para
// registros antiguos sin metadata se recurre al parseo del detalle legible y,
// en último término, al primer segmento antes de " - " con "Sin categoría"
// como valor por defecto. Filas sin categoría resoluble se descartan.
func Aggregate(logs []entity.HistoryLog, accion string) []ReportRow {
	type acc struct {
		row   ReportRow
		order int
	}
	m := make(map[string]*acc)
	order := 0
	for _, l := range logs {
		if l.Action != accion {
			continue
		}
		categoria := strings.TrimSpace(l.Metadata.Tipo)
		detalle := "-"
		if categoria != "" {
			color := strings.TrimSpace(l.Metadata.Color)
			talla := strings.TrimSpace(l.Metadata.Talla)
			switch {
			case talla != "":
				detalle = color + " - " + talla
			case color != "":
				detalle = color
			}
		} else if l.Details != "" {
			if tipo, color, talla, ok := domaininv.ParseDetails(l.Details); ok {
				categoria = tipo
				detalle = color + " - " + talla
			} else {
				categoria = strings.TrimSpace(strings.SplitN(l.Details, " - ", 2)[0])
				if categoria == "" {
					categoria = "Sin categoría"
				}
				if d := domaininv.StripCantidad(l.Details); d != "" {
					detalle = d
				}
			}
		}
		if categoria == "" {
			continue
		}
		key := categoria + "\t" + detalle
		if prev, ok := m[key]; ok {
			prev.row.Cantidad += l.Quantity
			continue
		}
		m[key] = &acc{row: ReportRow{Categoria: categoria, Detalle: detalle, Cantidad: l.Quantity}, order: order}
		order++
	}

	rows := make([]*acc, 0, len(m))
	for _, a := range m {
		rows = append(rows, a)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].row.Cantidad != rows[j].row.Cantidad {
			return rows[i].row.Cantidad > rows[j].row.Cantidad
		}
		return rows[i].order < rows[j].order
	})
	out := make([]ReportRow, len(rows))
	for i, a := range rows {
		out[i] = a.row
	}
	return out
}

// resolveRange convierte fechas "2006-01-02" al rango [inicio de desde,
// fin de hasta], recortando el fin a "ahora" si está en el futuro.
func (uc *UseCase) resolveRange(desde, hasta string) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(desde), time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha desde %q", domain.ErrInvalidInput, desde)
	}
	toDay, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(hasta), time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha hasta %q", domain.ErrInvalidInput, hasta)
	}
	if from.After(toDay) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: la fecha de inicio debe ser anterior a la de fin", domain.ErrInvalidInput)
	}
	to := toDay.AddDate(0, 0, 1).Add(-time.Nanosecond)
	if now := uc.now(); to.After(now) {
		to = now
	}
	return from, to, nil
}

func accionDeTipo(tipo string) (accion, titulo string, err error) {
	switch tipo {
	case TipoEntradas:
		return entity.ActionEntrada, "ENTRADAS", nil
	case TipoSalidas:
		return entity.ActionSalida, "SALIDAS", nil
	default:
		return "", "", fmt.Errorf("%w: tipo de reporte %q", domain.ErrInvalidInput, tipo)
	}
}

func exportFilename(titulo, desde, hasta, ext string) string {
	return fmt.Sprintf("Reporte %s (%s al %s).%s", titulo, desde, hasta, ext)
}
