package memory

import "github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"

// DefaultConfig devuelve los vocabularios iniciales del inventario de prendas.
// Se usan cuando no existe todavía un documento de configuración persistido.
func DefaultConfig() entity.ConfigDocument {
	return entity.ConfigDocument{
		ConfigInventarioPrendas: entity.PrendasMetadata{
			TiposPrenda: []string{
				"Polera", "Casaca", "Jogger", "Polo", "Cuello R", "Crop",
				"Bomber", "Polera Temática", "Pijama Temática", "Pantalón P",
			},
			Colores: []entity.ColorDef{
				{Nombre: "Negro", Hex: "#000000"}, {Nombre: "Blanco", Hex: "#FFFFFF"},
				{Nombre: "Melange 3%", Hex: "#E0E0E0"}, {Nombre: "Melange 10%", Hex: "#9E9E9E"},
				{Nombre: "Rata Oscuro", Hex: "#424242"}, {Nombre: "Verde Fosforecente", Hex: "#39FF14"},
				{Nombre: "Verde Perico", Hex: "#76FF03"}, {Nombre: "Verde Botella", Hex: "#1B5E20"},
				{Nombre: "Verde Militar", Hex: "#556B2F"}, {Nombre: "Acero Pal", Hex: "#B0C4DE"},
				{Nombre: "Azul Marino", Hex: "#0D47A1"}, {Nombre: "Azulino", Hex: "#2962FF"},
				{Nombre: "Azul Cielo", Hex: "#4FC3F7"}, {Nombre: "Bijou Blue", Hex: "#4682B4"},
				{Nombre: "Menta bb", Hex: "#B9F6CA"}, {Nombre: "Celeste", Hex: "#81D4FA"},
				{Nombre: "Morado", Hex: "#9C27B0"}, {Nombre: "Lila bb", Hex: "#E1BEE7"},
				{Nombre: "Rosado bb", Hex: "#F8BBD0"}, {Nombre: "Rosado Fuerte", Hex: "#F06292"},
				{Nombre: "Palo Rosa", Hex: "#D8A1A1"}, {Nombre: "Palo Rosa Fuerte", Hex: "#C27474"},
				{Nombre: "Chicle", Hex: "#FF80AB"}, {Nombre: "Fucsia Brillante", Hex: "#D500F9"},
				{Nombre: "Rojo", Hex: "#D32F2F"}, {Nombre: "Guinda", Hex: "#880E4F"},
				{Nombre: "Naranja", Hex: "#FF9800"}, {Nombre: "Amarillo Brazil", Hex: "#FFEB3B"},
				{Nombre: "Amarillo Oro", Hex: "#FFC107"}, {Nombre: "Mostaza", Hex: "#FBC02D"},
				{Nombre: "Camello", Hex: "#C19A6B"}, {Nombre: "Kaki", Hex: "#F0E68C"},
				{Nombre: "Beigue", Hex: "#F5F5DC"}, {Nombre: "Perla", Hex: "#FAFAFA"},
				{Nombre: "Panda", Hex: "#E0E0E0"}, {Nombre: "Negro/Blanco", Hex: "#333333"},
				{Nombre: "Blanco/Negro", Hex: "#F5F5F5"}, {Nombre: "Negro/Rosado", Hex: "#333333"},
				{Nombre: "Rosado/Negro", Hex: "#F8BBD0"}, {Nombre: "Rosado/Celeste", Hex: "#F8BBD0"},
				{Nombre: "Celeste/Rosado", Hex: "#81D4FA"},
			},
			Tallas: []string{"2", "4", "6", "8", "10", "12", "14", "16", "S", "M", "L", "XL", "XXL", "XXXL"},
		},
		ConfigInventarioGenerico: map[string]entity.GenericConfig{},
	}
}
