package entity

import "time"

// StockItem representa el stock actual de un SKU de prendas.
// La clave única es la tupla (Tipo, Color, Talla); Cantidad nunca es negativa.
// Una fila con Cantidad 0 es válida: representa un SKU conocido sin existencias.
type StockItem struct {
	ID       string `json:"id"`
	Tipo     string `json:"tipo"`
	Color    string `json:"color"`
	Talla    string `json:"talla"`
	Cantidad int    `json:"cantidad"`
}

// StockSnapshot agrupa el inventario completo con su marca de última actualización.
type StockSnapshot struct {
	Items       []StockItem `json:"items"`
	LastUpdated time.Time   `json:"last_updated"`
}
