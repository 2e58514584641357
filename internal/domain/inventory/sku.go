// Package inventory contiene los servicios de dominio puros del inventario:
// construcción de claves SKU y formato/parseo del detalle de movimientos.
package inventory

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var idSeparators = regexp.MustCompile(`[\s/_]+`)

// ColorUnico es el color por defecto cuando la fuente no trae columna COLOR.
const ColorUnico = "Unico"

// NormalizeKeyPart normaliza un componente de clave SKU: NFC (etiquetas con
// acentos pueden llegar en NFD desde CSVs generados en macOS), trim y minúsculas.
func NormalizeKeyPart(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

// ItemKey construye la clave canónica de un SKU de prendas. Dos ítems con la
// misma clave son el mismo SKU aunque difieran en mayúsculas o normalización
// Unicode de sus etiquetas.
func ItemKey(tipo, color, talla string) string {
	return NormalizeKeyPart(tipo) + "_" + NormalizeKeyPart(color) + "_" + NormalizeKeyPart(talla)
}

// ItemID deriva el identificador legible de un SKU (clave con separadores "-").
func ItemID(tipo, color, talla string) string {
	return idSeparators.ReplaceAllString(ItemKey(tipo, color, talla), "-")
}

// GenericKey construye la clave de un ítem genérico: tipo más los valores de
// atributo en el orden canónico que define la configuración del inventario.
// Atributos ausentes participan como cadena vacía para que la clave sea estable
// cuando se edita el esquema.
func GenericKey(tipo string, attrs map[string]string, orden []string) string {
	parts := make([]string, 0, len(orden)+1)
	parts = append(parts, NormalizeKeyPart(tipo))
	for _, nombre := range orden {
		parts = append(parts, NormalizeKeyPart(attrs[nombre]))
	}
	return strings.Join(parts, "_")
}
