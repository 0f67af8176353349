package service

import (
	"context"

	"github.com/fundacion-horas/horas-backend/internal/apperr"
	"github.com/fundacion-horas/horas-backend/internal/ctxutil"
	"github.com/fundacion-horas/horas-backend/internal/db"
	"github.com/fundacion-horas/horas-backend/internal/models"
)

func (s *Service) Profile(ctx context.Context, actor Actor) (*models.User, error) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	u, err := db.GetUserByID(dbCtx, s.DB, actor.ID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.Newf(apperr.NotFound, "user %d not found", actor.ID)
	}
	return u, nil
}

func (s *Service) ListUsers(ctx context.Context, actor Actor) ([]models.User, error) {
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.Permission, "only administrators list users")
	}
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.ListUsers(dbCtx, s.DB, false)
}

// CreateUser onboards a participant. Goals start at whatever the
// administrator provides, zero otherwise.
func (s *Service) CreateUser(ctx context.Context, actor Actor, u models.User) (int64, error) {
	if !actor.IsAdmin() {
		return 0, apperr.New(apperr.Permission, "only administrators create users")
	}
	if u.Email == "" || u.Nombre == "" {
		return 0, apperr.New(apperr.Validation, "email and nombre are required")
	}
	if u.Rol != models.Becario && u.Rol != models.Administrador {
		return 0, apperr.Newf(apperr.Validation, "unknown role %q", u.Rol)
	}

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.CreateUser(dbCtx, s.DB, u)
}

// UpdateGoals overwrites a user's four per-category hour goals.
func (s *Service) UpdateGoals(ctx context.Context, actor Actor, userID int64, g models.Goals) error {
	if !actor.IsAdmin() {
		return apperr.New(apperr.Permission, "only administrators set goals")
	}
	if g.MetaInterna < 0 || g.MetaExterna < 0 || g.MetaChat < 0 || g.MetaTalleres < 0 {
		return apperr.New(apperr.Validation, "goals cannot be negative")
	}

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	ok, err := db.UpdateGoals(dbCtx, s.DB, userID, g)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Newf(apperr.NotFound, "user %d not found", userID)
	}
	return nil
}

// DeactivateUser soft-deactivates; users are never hard-deleted.
func (s *Service) DeactivateUser(ctx context.Context, actor Actor, userID int64) error {
	if !actor.IsAdmin() {
		return apperr.New(apperr.Permission, "only administrators deactivate users")
	}
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	ok, err := db.SetUserActive(dbCtx, s.DB, userID, false)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Newf(apperr.NotFound, "user %d not found", userID)
	}
	return nil
}
