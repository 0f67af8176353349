//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fundacion-horas/horas-backend/internal/db"
	"github.com/fundacion-horas/horas-backend/internal/models"
	"github.com/fundacion-horas/horas-backend/internal/testutil/testdb"
)

// Two admins racing to decide the same pending record: exactly one decision
// lands, the other sees the record already out of the pending state.
func TestDecideRecord_Race(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	a1 := mustSeedUser(t, h.DB, "Admin 1", models.Administrador)
	a2 := mustSeedUser(t, h.DB, "Admin 2", models.Administrador)
	becario := mustSeedUser(t, h.DB, "Becario", models.Becario)
	act := mustSeedActivity(t, h.DB, a1, models.CategoryTalleres, true)

	for i := 0; i < 20; i++ {
		recID := mustSubmit(t, h.DB, becario, act, 2)

		var applied int64
		wg := sync.WaitGroup{}
		wg.Add(2)
		go func() {
			defer wg.Done()
			ok, err := db.DecideRecord(ctx, h.DB, recID, models.StateApproved, a1, time.Now(), "")
			if err != nil {
				t.Error(err)
				return
			}
			if ok {
				atomic.AddInt64(&applied, 1)
			}
		}()
		go func() {
			defer wg.Done()
			ok, err := db.DecideRecord(ctx, h.DB, recID, models.StateRejected, a2, time.Now(), "")
			if err != nil {
				t.Error(err)
				return
			}
			if ok {
				atomic.AddInt64(&applied, 1)
			}
		}()
		wg.Wait()

		if applied != 1 {
			t.Fatalf("record %d: %d decisions applied, want exactly 1", recID, applied)
		}
		rec, err := db.GetRecordByID(ctx, h.DB, recID)
		if err != nil {
			t.Fatal(err)
		}
		if rec.Estado == models.StatePending {
			t.Fatalf("record %d still pending after a decision applied", recID)
		}
	}
}

func TestParallelSubmissions(t *testing.T) {
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
	act := mustSeedActivity(t, h.DB, admin, models.CategoryChat, true)

	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = db.InsertRecord(ctx, h.DB, models.HourRecord{
				BecarioID: b1, ActividadID: act, Horas: 1,
			})
		}()
		go func() {
			defer wg.Done()
			_, _ = db.InsertRecord(ctx, h.DB, models.HourRecord{
				BecarioID: b2, ActividadID: act, Horas: 1,
			})
		}()
	}
	wg.Wait()

	for _, id := range []int64{b1, b2} {
		own, err := db.ListRecords(ctx, h.DB, &id)
		if err != nil {
			t.Fatal(err)
		}
		if len(own) != 50 {
			t.Fatalf("user %d: %d records, want 50", id, len(own))
		}
	}
}
