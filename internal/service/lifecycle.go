package service

import (
	"context"

	"github.com/fundacion-horas/horas-backend/internal/apperr"
	"github.com/fundacion-horas/horas-backend/internal/ctxutil"
	"github.com/fundacion-horas/horas-backend/internal/db"
	"github.com/fundacion-horas/horas-backend/internal/metrics"
	"github.com/fundacion-horas/horas-backend/internal/models"
)

type SubmitInput struct {
	ActividadID int64
	Horas       float64
	Descripcion string
}

// Submit creates an hour record in Pending state for the actor. Nothing
// auto-approves: an administrator claiming their own hours waits in the same
// queue.
func (s *Service) Submit(ctx context.Context, actor Actor, in SubmitInput) (*models.HourRecord, error) {
	if in.Horas <= 0 {
		return nil, apperr.New(apperr.Validation, "horas must be greater than zero")
	}

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	// unrestricted scope logs against any active activity; interns need it
	// in the catalog, created by them, or assigned to them
	var ok bool
	if scope := PolicyFor(actor).OwnerScope(); scope == nil {
		a, err := db.GetActivityByID(dbCtx, s.DB, in.ActividadID)
		if err != nil {
			return nil, err
		}
		ok = a != nil && a.IsActive
	} else {
		var err error
		ok, err = db.ActivityAccessibleTo(dbCtx, s.DB, in.ActividadID, *scope)
		if err != nil {
			return nil, err
		}
	}
	if !ok {
		return nil, apperr.Newf(apperr.Validation, "activity %d does not exist or is not accessible", in.ActividadID)
	}

	rec := models.HourRecord{
		BecarioID:     actor.ID,
		ActividadID:   in.ActividadID,
		Descripcion:   in.Descripcion,
		Horas:         in.Horas,
		Estado:        models.StatePending,
		FechaRegistro: s.Now(),
	}
	id, err := db.InsertRecord(dbCtx, s.DB, rec)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	metrics.RecordsSubmitted.Inc()
	s.Log.Infow("hour record submitted", "record_id", id, "becario_id", actor.ID, "actividad_id", in.ActividadID, "horas", in.Horas)
	return &rec, nil
}

// Decide transitions a Pending record to Approved or Rejected. Only the
// estado='P' compare-and-swap writes; a record already decided fails with
// InvalidState and stays untouched.
func (s *Service) Decide(ctx context.Context, actor Actor, recordID int64, decision models.Decision, nota string) error {
	if !actor.IsAdmin() {
		return apperr.New(apperr.Permission, "only administrators decide hour records")
	}
	if decision != models.DecisionApprove && decision != models.DecisionReject {
		return apperr.Newf(apperr.Validation, "unknown decision %q", decision)
	}

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rec, err := db.GetRecordByID(dbCtx, s.DB, recordID)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperr.Newf(apperr.NotFound, "hour record %d not found", recordID)
	}

	ok, err := db.DecideRecord(dbCtx, s.DB, recordID, decision.State(), actor.ID, s.Now(), nota)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Newf(apperr.InvalidState, "hour record %d is no longer pending", recordID)
	}
	metrics.RecordDecisions.WithLabelValues(string(decision)).Inc()
	s.Log.Infow("hour record decided", "record_id", recordID, "decision", decision, "admin_id", actor.ID)
	return nil
}

// ListRecords applies the actor's visibility policy: administrators see all
// records, interns only their own.
func (s *Service) ListRecords(ctx context.Context, actor Actor) ([]models.RecordWithDetails, error) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.ListRecords(dbCtx, s.DB, PolicyFor(actor).OwnerScope())
}

// ListPending is the administrator approval queue.
func (s *Service) ListPending(ctx context.Context, actor Actor) ([]models.RecordWithDetails, error) {
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.Permission, "only administrators list pending records")
	}
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.ListPendingRecords(dbCtx, s.DB)
}

// UpdatePending lets the claimant adjust hours and note while the record is
// still Pending. Decided records are immutable.
func (s *Service) UpdatePending(ctx context.Context, actor Actor, recordID int64, horas float64, descripcion string) error {
	if horas <= 0 {
		return apperr.New(apperr.Validation, "horas must be greater than zero")
	}

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rec, err := db.GetRecordByID(dbCtx, s.DB, recordID)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperr.Newf(apperr.NotFound, "hour record %d not found", recordID)
	}
	if rec.BecarioID != actor.ID {
		return apperr.New(apperr.Permission, "records can only be edited by their claimant")
	}

	ok, err := db.UpdatePendingRecord(dbCtx, s.DB, recordID, actor.ID, horas, descripcion)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Newf(apperr.InvalidState, "hour record %d is no longer pending", recordID)
	}
	return nil
}

// DeleteRecord removes a record. An intern may only remove their own Pending
// records; an administrator removes any record.
func (s *Service) DeleteRecord(ctx context.Context, actor Actor, recordID int64) error {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rec, err := db.GetRecordByID(dbCtx, s.DB, recordID)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperr.Newf(apperr.NotFound, "hour record %d not found", recordID)
	}

	if actor.IsAdmin() {
		_, err := db.DeleteRecord(dbCtx, s.DB, recordID)
		return err
	}

	if rec.BecarioID != actor.ID {
		return apperr.New(apperr.Permission, "records can only be deleted by their claimant")
	}
	ok, err := db.DeletePendingOwned(dbCtx, s.DB, recordID, actor.ID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Newf(apperr.InvalidState, "hour record %d is no longer pending", recordID)
	}
	return nil
}
