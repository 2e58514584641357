// Package excel genera las descargas tabulares de los reportes agregados:
// hoja de cálculo .xlsx y el CSV plano de respaldo.
package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/conamormarket-lgtm/inventario-api/internal/application/reports"
)

var reportHeader = []string{"CATEGORÍA", "DETALLE (SKU)", "CANTIDAD", "FECHA GENERACIÓN"}

const fechaGeneracionLayout = "02/01/2006"

// ReportWriter implementa reports.ReportRenderer con excelize.
type ReportWriter struct{}

var _ reports.ReportRenderer = (*ReportWriter)(nil)

func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// RenderXLSX arma la hoja "Reporte <TITULO>" con encabezado verde corporativo
// y una fila por par (categoría, detalle).
func (w *ReportWriter) RenderXLSX(titulo string, rows []reports.ReportRow, generado time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Reporte " + titulo
	f.SetSheetName(f.GetSheetName(0), sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2E7D32"}},
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("crear estilo de encabezado: %w", err)
	}
	cantidadStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("crear estilo de cantidad: %w", err)
	}

	for i, title := range reportHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("celda de encabezado: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("escribir encabezado: %w", err)
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", headerStyle); err != nil {
		return nil, fmt.Errorf("aplicar estilo de encabezado: %w", err)
	}

	fecha := generado.Format(fechaGeneracionLayout)
	for i, row := range rows {
		n := strconv.Itoa(i + 2)
		if err := f.SetSheetRow(sheet, "A"+n, &[]any{row.Categoria, row.Detalle, row.Cantidad, fecha}); err != nil {
			return nil, fmt.Errorf("escribir fila %d: %w", i+2, err)
		}
		if err := f.SetCellStyle(sheet, "C"+n, "C"+n, cantidadStyle); err != nil {
			return nil, fmt.Errorf("aplicar estilo de fila %d: %w", i+2, err)
		}
	}

	// Anchos pensados para etiquetas de prenda largas ("Pijama Temática").
	if err := f.SetColWidth(sheet, "A", "B", 28); err != nil {
		return nil, fmt.Errorf("ajustar columnas: %w", err)
	}
	if err := f.SetColWidth(sheet, "C", "D", 18); err != nil {
		return nil, fmt.Errorf("ajustar columnas: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serializar hoja de cálculo: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderCSV produce las mismas columnas en CSV plano. El BOM inicial hace que
// Excel abra el archivo como UTF-8 y no rompa los acentos.
func (w *ReportWriter) RenderCSV(rows []reports.ReportRow, generado time.Time) []byte {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	cw := csv.NewWriter(&buf)
	_ = cw.Write(reportHeader)
	fecha := generado.Format(fechaGeneracionLayout)
	for _, row := range rows {
		_ = cw.Write([]string{row.Categoria, row.Detalle, strconv.Itoa(row.Cantidad), fecha})
	}
	cw.Flush()
	return buf.Bytes()
}
