package reports

import "time"

// ReportRow es una fila del reporte agregado: cantidades sumadas por par
// (categoría, detalle), ordenadas de mayor a menor.
type ReportRow struct {
	Categoria string `json:"categoria"`
	Detalle   string `json:"detalle"`
	Cantidad  int    `json:"cantidad"`
}

// ReportRenderer produce la representación descargable del reporte agregado.
// RenderXLSX puede fallar (la librería de hojas de cálculo escribe un ZIP);
// el caso de uso degrada entonces al CSV plano, que no falla.
type ReportRenderer interface {
	RenderXLSX(titulo string, rows []ReportRow, generado time.Time) ([]byte, error)
	RenderCSV(rows []ReportRow, generado time.Time) []byte
}

// ReportPDFRenderer produce la representación PDF del mismo agregado.
type ReportPDFRenderer interface {
	RenderPDF(titulo string, rows []ReportRow, generado time.Time) ([]byte, error)
}
