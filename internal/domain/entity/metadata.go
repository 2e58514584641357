package entity

// ColorDef es un color configurable del inventario de prendas, con su hex para la UI.
type ColorDef struct {
	Nombre string `json:"nombre"`
	Hex    string `json:"hex"`
}

// PrendasMetadata agrupa los vocabularios configurables del inventario de
// prendas. El orden de cada lista es el orden de presentación y se preserva:
// los altas agregan al final.
type PrendasMetadata struct {
	TiposPrenda []string   `json:"tiposPrenda"`
	Colores     []ColorDef `json:"colores"`
	Tallas      []string   `json:"tallas"`
}

// ConfigDocument es el documento único de configuración de inventarios que se
// carga al arrancar y se guarda tras cada mutación de metadata.
type ConfigDocument struct {
	ConfigInventarioPrendas  PrendasMetadata          `json:"configInventarioPrendas"`
	ConfigInventarioGenerico map[string]GenericConfig `json:"configInventarioGenerico"`
}
