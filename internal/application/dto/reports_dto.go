package dto

// CountResponse respuesta de operaciones que reportan ítems afectados.
type CountResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// StockImportRequest body para POST /api/backup/stock.
type StockImportRequest struct {
	CSV       string `json:"csv"`
	Simulacro bool   `json:"simulacro"`
}

// StockImportResponse resultado de la carga masiva de stock.
type StockImportResponse struct {
	Message    string `json:"message"`
	Count      int    `json:"count"`
	TotalUnits int    `json:"total_units"`
	Simulacro  bool   `json:"simulacro"`
}

// HistoryImportRequest body para POST /api/backup/historial.
type HistoryImportRequest struct {
	CSV string `json:"csv"`
}
