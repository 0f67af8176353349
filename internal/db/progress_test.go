//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/fundacion-horas/horas-backend/internal/db"
	"github.com/fundacion-horas/horas-backend/internal/models"
	"github.com/fundacion-horas/horas-backend/internal/testutil/testdb"
)

func TestApprovedHoursAggregation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	admin := mustSeedUser(t, h.DB, "Admin", models.Administrador)
	becario := mustSeedUser(t, h.DB, "Becario", models.Becario)
	interna := mustSeedActivity(t, h.DB, admin, models.CategoryInterna, true)
	taller := mustSeedActivity(t, h.DB, admin, models.CategoryTalleres, true)

	approve := func(id int64) {
		t.Helper()
		ok, err := db.DecideRecord(ctx, h.DB, id, models.StateApproved, admin, time.Now(), "")
		if err != nil || !ok {
			t.Fatalf("approve %d: ok=%v err=%v", id, ok, err)
		}
	}

	approve(mustSubmit(t, h.DB, becario, interna, 2.5))
	approve(mustSubmit(t, h.DB, becario, interna, 1.5))
	approve(mustSubmit(t, h.DB, becario, taller, 3))

	// pending and rejected hours stay out of the totals
	mustSubmit(t, h.DB, becario, interna, 10)
	rejected := mustSubmit(t, h.DB, becario, taller, 10)
	if ok, err := db.DecideRecord(ctx, h.DB, rejected, models.StateRejected, admin, time.Now(), "sin evidencia"); err != nil || !ok {
		t.Fatalf("reject: ok=%v err=%v", ok, err)
	}

	byCat, err := db.ApprovedHoursByCategory(ctx, h.DB, becario)
	if err != nil {
		t.Fatal(err)
	}
	if byCat[models.CategoryInterna] != 4 {
		t.Fatalf("interna = %v, want 4", byCat[models.CategoryInterna])
	}
	if byCat[models.CategoryTalleres] != 3 {
		t.Fatalf("taller = %v, want 3", byCat[models.CategoryTalleres])
	}
	if v, ok := byCat[models.CategoryChat]; ok && v != 0 {
		t.Fatalf("chat should have no approved hours, got %v", v)
	}

	total, err := db.SumApprovedHours(ctx, h.DB)
	if err != nil {
		t.Fatal(err)
	}
	if total != 7 {
		t.Fatalf("fleet total = %v, want 7", total)
	}
}

func TestApprovedTotalsPerIntern(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	admin := mustSeedUser(t, h.DB, "Admin", models.Administrador)
	b1 := mustSeedUser(t, h.DB, "Becario 1", models.Becario)
	b2 := mustSeedUser(t, h.DB, "Becario 2", models.Becario)
	inactive := mustSeedUser(t, h.DB, "Baja", models.Becario)
	if ok, err := db.SetUserActive(ctx, h.DB, inactive, false); err != nil || !ok {
		t.Fatalf("deactivate: ok=%v err=%v", ok, err)
	}

	act := mustSeedActivity(t, h.DB, admin, models.CategoryExterna, true)
	rec := mustSubmit(t, h.DB, b1, act, 6)
	if ok, err := db.DecideRecord(ctx, h.DB, rec, models.StateApproved, admin, time.Now(), ""); err != nil || !ok {
		t.Fatalf("approve: ok=%v err=%v", ok, err)
	}

	rows, err := db.ApprovedTotalsPerIntern(ctx, h.DB)
	if err != nil {
		t.Fatal(err)
	}
	// only active interns, ordered by id; admins and inactive users excluded
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].UserID != b1 || rows[1].UserID != b2 {
		t.Fatalf("ordering by id broken: %d, %d", rows[0].UserID, rows[1].UserID)
	}
	if rows[0].HorasAprobadas != 6 {
		t.Fatalf("becario 1 approved = %v, want 6", rows[0].HorasAprobadas)
	}
	if rows[1].HorasAprobadas != 0 {
		t.Fatalf("becario 2 should have no approved hours: %v", rows[1].HorasAprobadas)
	}

	n, err := db.CountActiveInterns(ctx, h.DB)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("active interns = %d, want 2", n)
	}
}
