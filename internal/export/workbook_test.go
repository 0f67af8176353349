package export

import (
	"testing"
	"time"

	"github.com/fundacion-horas/horas-backend/internal/models"
)

func TestFleetWorkbook(t *testing.T) {
	f, err := FleetWorkbook(models.FleetProgress{
		Stats: models.FleetStats{TotalBecarios: 2, TotalHorasAprobadas: 13.5},
		Becarios: []models.InternProgress{
			{BecarioID: 1, BecarioNombre: "Ana", HorasAprobadas: 10, MetaTotal: 20, PorcentajeCumpl: 50},
			{BecarioID: 2, BecarioNombre: "Luis", HorasAprobadas: 3.5, MetaTotal: 0, PorcentajeCumpl: 0},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Resumen" || sheets[1] != "Progreso becarios" {
		t.Fatalf("sheets = %v", sheets)
	}

	v, err := f.GetCellValue("Resumen", "B1")
	if err != nil {
		t.Fatal(err)
	}
	if v != "Valor" {
		t.Fatalf("summary header B1 = %q", v)
	}
	if v, _ := f.GetCellValue("Resumen", "B2"); v != "2" {
		t.Fatalf("total becarios = %q, want 2", v)
	}
	if v, _ := f.GetCellValue("Progreso becarios", "B2"); v != "Ana" {
		t.Fatalf("first intern = %q", v)
	}
	if v, _ := f.GetCellValue("Progreso becarios", "E2"); v != "50.00" {
		t.Fatalf("pct = %q, want 50.00", v)
	}
}

func TestHistoryWorkbook(t *testing.T) {
	aprobador := "Admin"
	reg := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	f, err := HistoryWorkbook("Ana López", []models.RecordWithDetails{
		{
			HourRecord: models.HourRecord{
				Horas:         2.5,
				Estado:        models.StateApproved,
				FechaRegistro: reg,
			},
			ActividadTitulo: "Taller de lectura",
			ActividadTipo:   models.CategoryTalleres,
			AprobadorNombre: &aprobador,
		},
		{
			HourRecord: models.HourRecord{
				Horas:         1,
				Estado:        models.StatePending,
				FechaRegistro: reg.AddDate(0, 0, 1),
			},
			ActividadTitulo: "Chat de inglés",
			ActividadTipo:   models.CategoryChat,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetList()[0]
	if sheet != "Historial Ana López" {
		t.Fatalf("sheet = %q", sheet)
	}
	if v, _ := f.GetCellValue(sheet, "A2"); v != "2026-03-14" {
		t.Fatalf("fecha = %q", v)
	}
	if v, _ := f.GetCellValue(sheet, "E2"); v != "Aprobado" {
		t.Fatalf("estado label = %q", v)
	}
	if v, _ := f.GetCellValue(sheet, "F3"); v != "" {
		t.Fatalf("pending row should have no approver, got %q", v)
	}
}

func TestSanitizeSheet(t *testing.T) {
	if got := sanitizeSheet("a/b:c*d"); got != "abcd" {
		t.Fatalf("got %q", got)
	}
	long := sanitizeSheet("abcdefghijklmnopqrstuvwxyz")
	if len([]rune(long)) > 21 {
		t.Fatalf("sheet name not truncated: %q", long)
	}
}

func TestHistoryWorkbook_LongName(t *testing.T) {
	f, err := HistoryWorkbook("Maria Fernanda Gutierrez Lopez", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetList()[0]
	if len([]rune(sheet)) > 31 {
		t.Fatalf("sheet name %q exceeds the 31-char excel limit", sheet)
	}
	if sheet != "Historial Maria Fernanda Gutier" {
		t.Fatalf("sheet = %q", sheet)
	}
}

func TestColName(t *testing.T) {
	cases := map[int]string{1: "A", 2: "B", 26: "Z", 27: "AA", 52: "AZ", 53: "BA"}
	for in, want := range cases {
		if got := colName(in); got != want {
			t.Errorf("colName(%d) = %q, want %q", in, got, want)
		}
	}
}
