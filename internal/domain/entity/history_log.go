package entity

import "time"

// Acciones registradas en el historial de movimientos.
const (
	ActionEntrada = "Entrada" // movimiento que aumenta stock
	ActionSalida  = "Salida"  // movimiento que disminuye stock
)

// LogMetadata conserva los campos estructurados del movimiento. Es la fuente
// de verdad para reportes; el string Details es solo presentación (y vía de
// rescate para registros importados de backups antiguos sin metadata).
type LogMetadata struct {
	Tipo         string            `json:"tipo,omitempty"`
	Color        string            `json:"color,omitempty"`
	Talla        string            `json:"talla,omitempty"`
	InventarioID string            `json:"inventario_id,omitempty"`
	Attrs        map[string]string `json:"attrs,omitempty"`
	Cantidad     int               `json:"cantidad"`
}

// HistoryLog es un registro inmutable del historial de movimientos.
// Seq es un secuencial monótono asignado por el repositorio al insertar: es el
// orden de recencia autoritativo (el timestamp puede repetirse entre clics
// rápidos). Solo lo elimina el deshacer (el más reciente) o la limpieza por rango.
type HistoryLog struct {
	ID        string      `json:"id"`
	Seq       uint64      `json:"seq"`
	Timestamp time.Time   `json:"timestamp"`
	User      string      `json:"user"`
	Action    string      `json:"action"`
	Details   string      `json:"details"`
	Quantity  int         `json:"quantity"`
	Metadata  LogMetadata `json:"metadata"`

	// Restaurado marca registros repuestos desde un backup. Su efecto de stock
	// nunca se aplicó al restaurar, así que no cuentan como "último movimiento"
	// y el deshacer no puede revertirlos.
	Restaurado bool `json:"restaurado,omitempty"`
}
