package dto

// MovimientoRequest body para POST /api/inventario/movimientos.
type MovimientoRequest struct {
	Accion   string `json:"accion"` // Entrada | Salida
	Tipo     string `json:"tipo"`
	Color    string `json:"color"`
	Talla    string `json:"talla"`
	Cantidad int    `json:"cantidad"`
}

// MovimientoGenericoRequest body para POST /api/inventario/generico/:id/movimientos.
type MovimientoGenericoRequest struct {
	Accion   string            `json:"accion"`
	Tipo     string            `json:"tipo"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Cantidad int               `json:"cantidad"`
}

// MovimientoResponse respuesta de un movimiento o deshacer exitoso.
type MovimientoResponse struct {
	Message  string `json:"message"`
	NewStock int    `json:"new_stock"`
}

// MetadataItemRequest body para altas de tipos de prenda, colores y tallas.
// Hex solo aplica a colores.
type MetadataItemRequest struct {
	Nombre string `json:"nombre"`
	Hex    string `json:"hex,omitempty"`
}
