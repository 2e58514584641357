package inventory

import (
	"fmt"
	"regexp"
	"strings"
)

// Formato del detalle legible de un movimiento de prendas. Los reportes lo
// usan como último recurso para recuperar categoría/detalle de registros
// antiguos sin metadata, así que el formato no puede cambiar.
const detailsFormat = "%s - %s - Talla %s (Cant: %d)"

var (
	detailsPattern = regexp.MustCompile(`^(.+?)\s*-\s*(.+?)\s*-\s*Talla\s*(.+?)\s*\(Cant:`)
	cantPattern    = regexp.MustCompile(`\(Cant:\s*(\d+)\)`)
)

// FormatDetails arma el detalle legible de un movimiento de prendas.
func FormatDetails(tipo, color, talla string, cantidad int) string {
	return fmt.Sprintf(detailsFormat, tipo, color, talla, cantidad)
}

// FormatGenericDetails arma el detalle de un movimiento genérico: tipo y
// valores de atributos en orden canónico, con la misma anotación de cantidad.
func FormatGenericDetails(tipo string, attrs map[string]string, orden []string, cantidad int) string {
	parts := []string{tipo}
	for _, nombre := range orden {
		if v := strings.TrimSpace(attrs[nombre]); v != "" {
			parts = append(parts, v)
		}
	}
	return fmt.Sprintf("%s (Cant: %d)", strings.Join(parts, " - "), cantidad)
}

// ParseDetails intenta recuperar (tipo, color, talla) del detalle legible.
// Solo aplica a registros sin metadata estructurada (backups antiguos).
func ParseDetails(details string) (tipo, color, talla string, ok bool) {
	m := detailsPattern.FindStringSubmatch(details)
	if m == nil {
		return "", "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), strings.TrimSpace(m[3]), true
}

// ParseCantidad extrae la cantidad anotada en el detalle, si existe.
func ParseCantidad(details string) (int, bool) {
	m := cantPattern.FindStringSubmatch(details)
	if m == nil {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(m[1], "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}

// StripCantidad elimina la anotación "(Cant: n)" del detalle.
func StripCantidad(details string) string {
	return strings.TrimSpace(cantPattern.ReplaceAllString(details, ""))
}
