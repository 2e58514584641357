package backup

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/conamormarket-lgtm/inventario-api/internal/domain"
	"github.com/conamormarket-lgtm/inventario-api/internal/domain/entity"
	domaininv "github.com/conamormarket-lgtm/inventario-api/internal/domain/inventory"
)

// Formato de backup del historial. Cantidad va siempre sin signo: la
// dirección del movimiento la lleva la columna Tipo (Entrada|Salida), y el
// parseo asume la misma convención.
const historyHeader = "Fecha,Hora,Tipo,Usuario,Detalle,Cantidad"

const (
	fechaLayout = "02/01/2006"
	horaLayout  = "15:04:05"
)

// ParsedLog es un registro de historial leído de un backup externo, todavía
// sin ID ni Seq (los asigna el repositorio al importar).
type ParsedLog struct {
	Timestamp time.Time
	User      string
	Action    string
	Details   string
	Quantity  int
}

// ExportHistoryToCSV serializa el historial en el formato de backup.
// Exportar y re-parsear reproduce acción, cantidad, usuario y timestamp
// (a precisión de segundos) de cada registro.
func ExportHistoryToCSV(logs []entity.HistoryLog) string {
	var sb strings.Builder
	sb.WriteString(historyHeader + "\n")
	w := csv.NewWriter(&sb)
	for _, log := range logs {
		qty := log.Quantity
		if qty == 0 {
			if log.Metadata.Cantidad != 0 {
				qty = log.Metadata.Cantidad
			} else if n, ok := domaininv.ParseCantidad(log.Details); ok {
				qty = n
			} else {
				qty = 1
			}
		}
		_ = w.Write([]string{
			log.Timestamp.Format(fechaLayout),
			log.Timestamp.Format(horaLayout),
			log.Action,
			log.User,
			log.Details,
			strconv.Itoa(qty),
		})
	}
	w.Flush()
	return sb.String()
}

// ParseHistoryCSV parsea un backup de historial. Falla completo solo si la
// cabecera no se reconoce; las filas malformadas se saltan una a una.
func ParseHistoryCSV(text string) ([]ParsedLog, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: backup vacío", domain.ErrParse)
	}
	header := strings.ToUpper(strings.Join(records[0], ","))
	if !strings.Contains(header, "FECHA") || !strings.Contains(header, "CANTIDAD") {
		return nil, fmt.Errorf("%w: cabecera esperada %q", domain.ErrParse, historyHeader)
	}

	logs := make([]ParsedLog, 0, len(records)-1)
	for _, cols := range records[1:] {
		if len(cols) < 5 {
			continue
		}
		ts, ok := parseFechaHora(strings.TrimSpace(cols[0]), strings.TrimSpace(cols[1]))
		if !ok {
			continue
		}
		action := strings.TrimSpace(cols[2])
		user := strings.TrimSpace(cols[3])
		details := strings.TrimSpace(cols[4])
		qty := 1
		if len(cols) > 5 {
			if n, err := strconv.Atoi(strings.TrimSpace(cols[5])); err == nil && n > 0 {
				qty = n
			}
		}
		logs = append(logs, ParsedLog{Timestamp: ts, User: user, Action: action, Details: details, Quantity: qty})
	}
	return logs, nil
}

func parseFechaHora(fecha, hora string) (time.Time, bool) {
	if hora == "" {
		hora = "00:00:00"
	}
	// Horas sin segundos (backups de versiones viejas) también se aceptan.
	for _, layout := range []string{fechaLayout + " " + horaLayout, fechaLayout + " 15:04"} {
		if ts, err := time.ParseInLocation(layout, fecha+" "+hora, time.Local); err == nil {
			return ts, true
		}
	}
	if ts, err := time.ParseInLocation("2006-01-02 15:04:05", fecha+" "+hora, time.Local); err == nil {
		return ts, true
	}
	return time.Time{}, false
}
