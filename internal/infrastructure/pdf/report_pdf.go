// Package pdf implementa la versión imprimible del reporte agregado de
// movimientos usando Maroto v2.
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/conamormarket-lgtm/inventario-api/internal/application/reports"
)

// Paleta: el verde del encabezado es el mismo de la hoja de cálculo (2E7D32).
var (
	colorVerde  = &props.Color{Red: 46, Green: 125, Blue: 50}
	colorGris   = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorBlanco = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// MarotoReportRenderer implementa reports.ReportPDFRenderer usando Maroto v2.
type MarotoReportRenderer struct{}

var _ reports.ReportPDFRenderer = (*MarotoReportRenderer)(nil)

// NewMarotoReportRenderer construye el renderer.
func NewMarotoReportRenderer() *MarotoReportRenderer { return &MarotoReportRenderer{} }

// RenderPDF genera el reporte y devuelve sus bytes.
func (g *MarotoReportRenderer) RenderPDF(titulo string, rows []reports.ReportRow, generado time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte "+titulo, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(tituloRow(titulo, generado))
	m.AddRows(line.NewRow(1, props.Line{Color: colorVerde, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(tableDataRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGris, Thickness: 0.3}))
	m.AddRows(totalRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// tituloRow: "Reporte ENTRADAS" + fecha de generación.
func tituloRow(titulo string, generado time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte "+titulo, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorVerde, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generado.Format("02/01/2006"), props.Text{
				Size: 9, Top: 4, Color: colorGris, Align: align.Right,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string, alineacion align.Type) core.Col {
		return col.New(size).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorBlanco,
				Align: alineacion, Top: 1.5,
			}),
		)
	}
	return row.New(8).Add(
		header(5, "CATEGORÍA", align.Left),
		header(5, "DETALLE (SKU)", align.Left),
		header(2, "CANTIDAD", align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorVerde})
}

func tableDataRow(r reports.ReportRow) core.Row {
	return row.New(6).Add(
		col.New(5).Add(text.New(r.Categoria, props.Text{Size: 9, Top: 1})),
		col.New(5).Add(text.New(r.Detalle, props.Text{Size: 9, Top: 1})),
		col.New(2).Add(text.New(strconv.Itoa(r.Cantidad), props.Text{
			Size: 9, Top: 1, Align: align.Right,
		})),
	)
}

func totalRow(rows []reports.ReportRow) core.Row {
	total := 0
	for _, r := range rows {
		total += r.Cantidad
	}
	return row.New(8).Add(
		col.New(10).Add(text.New("TOTAL", props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 1.5, Align: align.Right,
		})),
		col.New(2).Add(text.New(strconv.Itoa(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 1.5, Align: align.Right, Color: colorVerde,
		})),
	)
}
