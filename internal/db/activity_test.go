//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"testing"

	"github.com/fundacion-horas/horas-backend/internal/db"
	"github.com/fundacion-horas/horas-backend/internal/models"
	"github.com/fundacion-horas/horas-backend/internal/testutil/testdb"
)

func TestDeleteActivityIfUnreferenced(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	admin := mustSeedUser(t, h.DB, "Admin", models.Administrador)
	becario := mustSeedUser(t, h.DB, "Becario", models.Becario)
	referenced := mustSeedActivity(t, h.DB, admin, models.CategoryInterna, true)
	empty := mustSeedActivity(t, h.DB, admin, models.CategoryExterna, true)
	mustSubmit(t, h.DB, becario, referenced, 2)

	deleted, refs, err := db.DeleteActivityIfUnreferenced(ctx, h.DB, referenced)
	if err != nil {
		t.Fatal(err)
	}
	if deleted || refs != 1 {
		t.Fatalf("referenced activity: deleted=%v refs=%d, want kept with 1 ref", deleted, refs)
	}
	if a, err := db.GetActivityByID(ctx, h.DB, referenced); err != nil || a == nil {
		t.Fatalf("referenced activity must survive: %v %v", a, err)
	}

	deleted, refs, err = db.DeleteActivityIfUnreferenced(ctx, h.DB, empty)
	if err != nil {
		t.Fatal(err)
	}
	if !deleted || refs != 0 {
		t.Fatalf("empty activity: deleted=%v refs=%d, want deleted", deleted, refs)
	}

	deleted, refs, err = db.DeleteActivityIfUnreferenced(ctx, h.DB, empty)
	if err != nil {
		t.Fatal(err)
	}
	if deleted || refs != 0 {
		t.Fatalf("missing activity: deleted=%v refs=%d, want neither", deleted, refs)
	}
}
