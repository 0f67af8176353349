package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fundacion-horas/horas-backend/internal/models"
	"github.com/xuri/excelize/v2"
)

func hours(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FleetWorkbook renders the administrator dashboard aggregate: a summary
// sheet with the fleet totals and one row per intern.
func FleetWorkbook(f models.FleetProgress) (*excelize.File, error) {
	summary := SheetSpec{
		Title:  "Resumen",
		Header: []string{"Indicador", "Valor"},
		Rows: [][]string{
			{"Total becarios", strconv.Itoa(f.Stats.TotalBecarios)},
			{"Total horas aprobadas", hours(f.Stats.TotalHorasAprobadas)},
			{"Generado", time.Now().Format("2006-01-02 15:04")},
		},
	}

	rows := make([][]string, 0, len(f.Becarios))
	for _, b := range f.Becarios {
		rows = append(rows, []string{
			strconv.FormatInt(b.BecarioID, 10),
			b.BecarioNombre,
			hours(b.HorasAprobadas),
			hours(b.MetaTotal),
			hours(b.PorcentajeCumpl),
		})
	}
	interns := SheetSpec{
		Title:  "Progreso becarios",
		Header: []string{"ID", "Becario", "Horas aprobadas", "Meta total", "% cumplimiento"},
		Rows:   rows,
	}

	return NewWorkbook([]SheetSpec{summary, interns})
}

var stateLabels = map[models.RecordState]string{
	models.StatePending:  "Pendiente",
	models.StateApproved: "Aprobado",
	models.StateRejected: "Rechazado",
}

// HistoryWorkbook renders one user's full record history.
func HistoryWorkbook(nombre string, records []models.RecordWithDetails) (*excelize.File, error) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		aprobador := ""
		if r.AprobadorNombre != nil {
			aprobador = *r.AprobadorNombre
		}
		rows = append(rows, []string{
			r.FechaRegistro.Format("2006-01-02"),
			r.ActividadTitulo,
			string(r.ActividadTipo),
			hours(r.Horas),
			stateLabels[r.Estado],
			aprobador,
		})
	}
	sheet := SheetSpec{
		Title:  fmt.Sprintf("Historial %s", sanitizeSheet(nombre)),
		Header: []string{"Fecha", "Actividad", "Tipo", "Horas", "Estado", "Aprobó"},
		Rows:   rows,
	}
	return NewWorkbook([]SheetSpec{sheet})
}

// sanitizeSheet drops characters excel rejects and caps the name at 21 runes,
// so "Historial " plus the name stays within the 31-char sheet name limit.
func sanitizeSheet(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			continue
		}
		out = append(out, r)
		if len(out) >= 21 {
			break
		}
	}
	return string(out)
}
