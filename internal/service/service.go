// Package service implements the hour-approval and progress workflows on top
// of the db layer. Handlers translate its errors; it never touches HTTP.
package service

import (
	"database/sql"
	"time"

	"github.com/fundacion-horas/horas-backend/internal/models"
	"go.uber.org/zap"
)

type Service struct {
	DB  *sql.DB
	Log *zap.SugaredLogger
	Now func() time.Time
}

func New(database *sql.DB, log *zap.SugaredLogger) *Service {
	return &Service{DB: database, Log: log, Now: time.Now}
}

// Actor is the authenticated caller as reported by the identity middleware.
// The service trusts it fully and never accepts a caller-supplied identity
// for someone else.
type Actor struct {
	ID  int64
	Rol models.Role
}

func (a Actor) IsAdmin() bool { return a.Rol == models.Administrador }
