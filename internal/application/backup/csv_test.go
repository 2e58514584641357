package backup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
)

func TestExportHistoryToCSV_Vacio(t *testing.T) {
	assert.Equal(t, historyHeader+"\n", ExportHistoryToCSV(nil))
}

func TestExportYParse_RoundTrip(t *testing.T) {
	ts := time.Date(2026, 8, 15, 14, 30, 45, 0, time.Local)
	logs := []entity.HistoryLog{
		{
			Timestamp: ts,
			User:      "María José",
			Action:    entity.ActionEntrada,
			Details:   "Polera Temática - Azul Bebé - Talla M (Cant: 5)",
			Quantity:  5,
		},
		{
			Timestamp: ts.Add(-time.Hour),
			User:      "Ana, la de bodega", // coma dentro del campo
			Action:    entity.ActionSalida,
			Details:   "Casaca - Negro - Talla L (Cant: 2)",
			Quantity:  2,
		},
	}

	parsed, err := ParseHistoryCSV(ExportHistoryToCSV(logs))
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	assert.Equal(t, ts, parsed[0].Timestamp)
	assert.Equal(t, "María José", parsed[0].User)
	assert.Equal(t, entity.ActionEntrada, parsed[0].Action)
	assert.Equal(t, "Polera Temática - Azul Bebé - Talla M (Cant: 5)", parsed[0].Details)
	assert.Equal(t, 5, parsed[0].Quantity)

	assert.Equal(t, "Ana, la de bodega", parsed[1].User)
	assert.Equal(t, 2, parsed[1].Quantity)
}

func TestExportHistoryToCSV_CantidadCeroUsaMetadataODetalle(t *testing.T) {
	logs := []entity.HistoryLog{
		{Timestamp: time.Now(), Action: entity.ActionEntrada, Details: "d", Metadata: entity.LogMetadata{Cantidad: 7}},
		{Timestamp: time.Now(), Action: entity.ActionEntrada, Details: "Polera - Negro - Talla M (Cant: 3)"},
		{Timestamp: time.Now(), Action: entity.ActionEntrada, Details: "sin pista"},
	}
	parsed, err := ParseHistoryCSV(ExportHistoryToCSV(logs))
	require.NoError(t, err)
	require.Len(t, parsed, 3)
	assert.Equal(t, 7, parsed[0].Quantity)
	assert.Equal(t, 3, parsed[1].Quantity)
	assert.Equal(t, 1, parsed[2].Quantity, "sin pista alguna la cantidad por defecto es 1")
}

func TestParseHistoryCSV_CabeceraDesconocida(t *testing.T) {
	_, err := ParseHistoryCSV("a,b,c\n1,2,3\n")
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestParseHistoryCSV_SaltaFilasMalformadas(t *testing.T) {
	text := historyHeader + "\n" +
		"15/08/2026,10:00:00,Entrada,Ana,Polera - Negro - Talla M (Cant: 2),2\n" +
		"fecha rota,10:00:00,Entrada,Ana,detalle,2\n" +
		"corta,fila\n"
	parsed, err := ParseHistoryCSV(text)
	require.NoError(t, err)
	assert.Len(t, parsed, 1)
}

func TestParseHistoryCSV_HoraSinSegundosEISO(t *testing.T) {
	text := historyHeader + "\n" +
		"15/08/2026,10:30,Entrada,Ana,detalle,2\n" +
		"2026-08-15,10:30:00,Salida,Ana,detalle,3\n"
	parsed, err := ParseHistoryCSV(text)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, time.Date(2026, 8, 15, 10, 30, 0, 0, time.Local), parsed[0].Timestamp)
	assert.Equal(t, time.Date(2026, 8, 15, 10, 30, 0, 0, time.Local), parsed[1].Timestamp)
}
