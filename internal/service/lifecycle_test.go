//go:build testutil
// +build testutil

package service_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fundacion-horas/horas-backend/internal/apperr"
	"github.com/fundacion-horas/horas-backend/internal/models"
	"github.com/fundacion-horas/horas-backend/internal/service"
	"github.com/fundacion-horas/horas-backend/internal/testutil/testdb"
)

type fixture struct {
	svc     *service.Service
	db      *sql.DB
	admin   service.Actor
	becario service.Actor
	actID   int64
}

func setup(t *testing.T) (*fixture, func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	h, err := testdb.Start(ctx)
	if err != nil {
		cancel()
		t.Fatal(err)
	}

	seedUser := func(nombre string, rol models.Role) int64 {
		var id int64
		err := h.DB.QueryRow(`
			INSERT INTO users (email, nombre, rol)
			VALUES ($1, $2, $3) RETURNING id`,
			fmt.Sprintf("%s-%d@test.local", rol, time.Now().UnixNano()), nombre, string(rol)).Scan(&id)
		if err != nil {
			t.Fatal(err)
		}
		return id
	}

	adminID := seedUser("Admin", models.Administrador)
	becarioID := seedUser("Becario", models.Becario)

	var actID int64
	err = h.DB.QueryRow(`
		INSERT INTO activities (titulo, tipo, fecha, duracion_horas, modalidad, creador_id, en_catalogo)
		VALUES ('Voluntariado', 'Interna', CURRENT_DATE, 2, 'P', $1, TRUE) RETURNING id`, adminID).Scan(&actID)
	if err != nil {
		t.Fatal(err)
	}

	f := &fixture{
		svc:     service.New(h.DB, zap.NewNop().Sugar()),
		db:      h.DB,
		admin:   service.Actor{ID: adminID, Rol: models.Administrador},
		becario: service.Actor{ID: becarioID, Rol: models.Becario},
		actID:   actID,
	}
	return f, func() { h.Close(); cancel() }
}

func TestSubmitAndDecideWorkflow(t *testing.T) {
	f, done := setup(t)
	defer done()
	ctx := context.Background()

	// invalid hours never reach the database
	if _, err := f.svc.Submit(ctx, f.becario, service.SubmitInput{ActividadID: f.actID, Horas: 0}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("zero hours: %v, want validation error", err)
	}
	if _, err := f.svc.Submit(ctx, f.becario, service.SubmitInput{ActividadID: 99999, Horas: 2}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("unknown activity: %v, want validation error", err)
	}

	rec, err := f.svc.Submit(ctx, f.becario, service.SubmitInput{ActividadID: f.actID, Horas: 3, Descripcion: "apoyo"})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Estado != models.StatePending {
		t.Fatalf("estado = %q, want P", rec.Estado)
	}

	// interns never decide, not even their own records
	if err := f.svc.Decide(ctx, f.becario, rec.ID, models.DecisionApprove, ""); !errors.Is(err, apperr.ErrPermission) {
		t.Fatalf("intern decision: %v, want permission error", err)
	}
	if err := f.svc.Decide(ctx, f.admin, rec.ID, models.Decision("cancelar"), ""); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("bad decision verb: %v, want validation error", err)
	}
	if err := f.svc.Decide(ctx, f.admin, 99999, models.DecisionApprove, ""); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("decide missing: %v, want not found", err)
	}

	if err := f.svc.Decide(ctx, f.admin, rec.ID, models.DecisionApprove, "ok"); err != nil {
		t.Fatal(err)
	}
	// second decision hits the already-decided record
	if err := f.svc.Decide(ctx, f.admin, rec.ID, models.DecisionReject, ""); !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("re-decide: %v, want invalid state", err)
	}
	// and the decided record is no longer owner-editable
	if err := f.svc.UpdatePending(ctx, f.becario, rec.ID, 5, "más"); !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("edit decided: %v, want invalid state", err)
	}
	// the activity now carries a record, so hard-delete is refused
	if err := f.svc.DeleteActivity(ctx, f.admin, f.actID); !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("delete referenced activity: %v, want invalid state", err)
	}
}

func TestAdminSelfSubmissionStaysPending(t *testing.T) {
	f, done := setup(t)
	defer done()
	ctx := context.Background()

	rec, err := f.svc.Submit(ctx, f.admin, service.SubmitInput{ActividadID: f.actID, Horas: 1})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Estado != models.StatePending {
		t.Fatalf("admin self-submission estado = %q, want P", rec.Estado)
	}

	pending, err := f.svc.ListPending(ctx, f.admin)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].ID != rec.ID {
		t.Fatalf("admin record should sit in the queue: %+v", pending)
	}
}

func TestAdminSubmitsAgainstAnyActiveActivity(t *testing.T) {
	f, done := setup(t)
	defer done()
	ctx := context.Background()

	// non-catalog activity created by an intern: invisible to other interns,
	// but an admin's scope is unrestricted
	var privateID int64
	if err := f.db.QueryRow(`
		INSERT INTO activities (titulo, tipo, fecha, duracion_horas, modalidad, creador_id, en_catalogo)
		VALUES ('Apoyo privado', 'Externa', CURRENT_DATE, 1, 'V', $1, FALSE) RETURNING id`,
		f.becario.ID).Scan(&privateID); err != nil {
		t.Fatal(err)
	}

	rec, err := f.svc.Submit(ctx, f.admin, service.SubmitInput{ActividadID: privateID, Horas: 2})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Estado != models.StatePending {
		t.Fatalf("estado = %q, want P", rec.Estado)
	}

	// a deactivated activity stays off limits even for admins
	if _, err := f.db.Exec(`UPDATE activities SET is_active = FALSE WHERE id = $1`, privateID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Submit(ctx, f.admin, service.SubmitInput{ActividadID: privateID, Horas: 2}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("inactive activity: %v, want validation error", err)
	}
}

func TestVisibilityScoping(t *testing.T) {
	f, done := setup(t)
	defer done()
	ctx := context.Background()

	other := service.Actor{ID: 0, Rol: models.Becario}
	var otherID int64
	if err := f.db.QueryRow(`
		INSERT INTO users (email, nombre, rol)
		VALUES ('otro@test.local', 'Otro', 'becario') RETURNING id`).Scan(&otherID); err != nil {
		t.Fatal(err)
	}
	other.ID = otherID

	mine, err := f.svc.Submit(ctx, f.becario, service.SubmitInput{ActividadID: f.actID, Horas: 2})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Submit(ctx, other, service.SubmitInput{ActividadID: f.actID, Horas: 4}); err != nil {
		t.Fatal(err)
	}

	own, err := f.svc.ListRecords(ctx, f.becario)
	if err != nil {
		t.Fatal(err)
	}
	if len(own) != 1 || own[0].ID != mine.ID {
		t.Fatalf("intern listing = %+v, want only own record", own)
	}

	all, err := f.svc.ListRecords(ctx, f.admin)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("admin listing = %d records, want 2", len(all))
	}

	if _, err := f.svc.ListPending(ctx, f.becario); !errors.Is(err, apperr.ErrPermission) {
		t.Fatalf("intern pending queue: %v, want permission error", err)
	}

	// editing someone else's pending record is a permission fault
	if err := f.svc.UpdatePending(ctx, other, mine.ID, 9, ""); !errors.Is(err, apperr.ErrPermission) {
		t.Fatalf("foreign edit: %v, want permission error", err)
	}
}

func TestFleetProgress(t *testing.T) {
	f, done := setup(t)
	defer done()
	ctx := context.Background()

	if _, err := f.svc.FleetProgress(ctx, f.becario); !errors.Is(err, apperr.ErrPermission) {
		t.Fatalf("intern fleet report: %v, want permission error", err)
	}

	if err := f.svc.UpdateGoals(ctx, f.admin, f.becario.ID, models.Goals{MetaInterna: 20, MetaTalleres: 10}); err != nil {
		t.Fatal(err)
	}

	rec, err := f.svc.Submit(ctx, f.becario, service.SubmitInput{ActividadID: f.actID, Horas: 6})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.svc.Decide(ctx, f.admin, rec.ID, models.DecisionApprove, ""); err != nil {
		t.Fatal(err)
	}
	// pending hours stay out of the report
	if _, err := f.svc.Submit(ctx, f.becario, service.SubmitInput{ActividadID: f.actID, Horas: 50}); err != nil {
		t.Fatal(err)
	}

	fleet, err := f.svc.FleetProgress(ctx, f.admin)
	if err != nil {
		t.Fatal(err)
	}
	if fleet.Stats.TotalBecarios != 1 || fleet.Stats.TotalHorasAprobadas != 6 {
		t.Fatalf("stats = %+v", fleet.Stats)
	}
	if len(fleet.Becarios) != 1 {
		t.Fatalf("rows = %d, want 1", len(fleet.Becarios))
	}
	row := fleet.Becarios[0]
	if row.MetaTotal != 30 || row.HorasAprobadas != 6 || row.PorcentajeCumpl != 20 {
		t.Fatalf("row = %+v", row)
	}

	prog, err := f.svc.UserProgress(ctx, f.becario.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(prog) != 2 {
		t.Fatalf("progress entries = %d, want interna and talleres", len(prog))
	}
	if prog[0].Tipo != models.CategoryInterna || prog[0].HorasLogradas != 6 || prog[0].Porcentaje != 30 {
		t.Fatalf("interna entry = %+v", prog[0])
	}
	if prog[1].Tipo != models.CategoryTalleres || prog[1].HorasRestantes != 10 {
		t.Fatalf("talleres entry = %+v", prog[1])
	}
}
