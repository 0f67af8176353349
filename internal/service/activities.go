package service

import (
	"context"

	"github.com/fundacion-horas/horas-backend/internal/apperr"
	"github.com/fundacion-horas/horas-backend/internal/ctxutil"
	"github.com/fundacion-horas/horas-backend/internal/db"
	"github.com/fundacion-horas/horas-backend/internal/models"
)

// ListActivities is visibility-filtered: administrators see everything
// active, interns see the catalog plus what they created or were assigned.
func (s *Service) ListActivities(ctx context.Context, actor Actor) ([]models.Activity, error) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	if actor.IsAdmin() {
		return db.ListActivities(dbCtx, s.DB, false)
	}
	return db.ListVisibleActivities(dbCtx, s.DB, actor.ID)
}

func (s *Service) Catalog(ctx context.Context) ([]models.Activity, error) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.ListCatalog(dbCtx, s.DB)
}

// CreateActivity: anyone may create; an administrator's activity enters the
// catalog, an intern's stays private to them until assigned.
func (s *Service) CreateActivity(ctx context.Context, actor Actor, a models.Activity) (int64, error) {
	if a.Titulo == "" {
		return 0, apperr.New(apperr.Validation, "titulo is required")
	}
	if !a.Tipo.Valid() {
		return 0, apperr.Newf(apperr.Validation, "unknown category %q", a.Tipo)
	}
	if a.Modalidad != models.Presencial && a.Modalidad != models.Virtual {
		return 0, apperr.Newf(apperr.Validation, "unknown modality %q", a.Modalidad)
	}

	a.CreadorID = actor.ID
	a.EnCatalogo = actor.IsAdmin()

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.CreateActivity(dbCtx, s.DB, a)
}

func (s *Service) GetActivity(ctx context.Context, actor Actor, id int64) (*models.Activity, error) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	a, err := db.GetActivityByID(dbCtx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if a == nil || (!a.IsActive && !actor.IsAdmin()) {
		return nil, apperr.Newf(apperr.NotFound, "activity %d not found", id)
	}
	if actor.IsAdmin() || a.EnCatalogo || a.CreadorID == actor.ID {
		return a, nil
	}
	ok, err := db.ActivityAccessibleTo(dbCtx, s.DB, id, actor.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Newf(apperr.NotFound, "activity %d not found", id)
	}
	return a, nil
}

func (s *Service) UpdateActivity(ctx context.Context, actor Actor, a models.Activity) error {
	if !actor.IsAdmin() {
		return apperr.New(apperr.Permission, "only administrators update activities")
	}
	if !a.Tipo.Valid() {
		return apperr.Newf(apperr.Validation, "unknown category %q", a.Tipo)
	}

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	ok, err := db.UpdateActivity(dbCtx, s.DB, a)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Newf(apperr.NotFound, "activity %d not found", a.ID)
	}
	return nil
}

// DeleteActivity hard-deletes only when no hour record references the
// activity; otherwise the caller must deactivate instead.
func (s *Service) DeleteActivity(ctx context.Context, actor Actor, id int64) error {
	if !actor.IsAdmin() {
		return apperr.New(apperr.Permission, "only administrators delete activities")
	}

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	deleted, refs, err := db.DeleteActivityIfUnreferenced(dbCtx, s.DB, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperr.Newf(apperr.InvalidState, "activity %d has %d hour records; deactivate it instead", id, refs)
	}
	if !deleted {
		return apperr.Newf(apperr.NotFound, "activity %d not found", id)
	}
	return nil
}

func (s *Service) DeactivateActivity(ctx context.Context, actor Actor, id int64) error {
	if !actor.IsAdmin() {
		return apperr.New(apperr.Permission, "only administrators deactivate activities")
	}
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	ok, err := db.SetActivityActive(dbCtx, s.DB, id, false)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Newf(apperr.NotFound, "activity %d not found", id)
	}
	return nil
}
