package entity

// GenericStockItem representa el stock de un ítem en un inventario genérico
// (productos, insumos, activos...). Los atributos se guardan nombrados, nunca
// por posición: el orden canónico lo define la configuración del inventario.
type GenericStockItem struct {
	ID       string            `json:"id"`
	Tipo     string            `json:"tipo"`
	Attrs    map[string]string `json:"attrs"`
	Cantidad int               `json:"cantidad"`
}

// GenericConfig define qué se inventaría en un inventario genérico: el nombre
// del ítem, sus tipos posibles y las características con sus valores permitidos.
type GenericConfig struct {
	NombreItem      string           `json:"nombreItem"`
	Tipos           []string         `json:"tipos"`
	Caracteristicas []Caracteristica `json:"caracteristicas"`
}

// Caracteristica es un par (nombre, valores permitidos) de un inventario genérico.
type Caracteristica struct {
	Nombre  string   `json:"nombre"`
	Valores []string `json:"valores"`
}
