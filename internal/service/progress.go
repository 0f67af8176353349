package service

import (
	"context"
	"math"

	"github.com/fundacion-horas/horas-backend/internal/apperr"
	"github.com/fundacion-horas/horas-backend/internal/ctxutil"
	"github.com/fundacion-horas/horas-backend/internal/db"
	"github.com/fundacion-horas/horas-backend/internal/models"
)

// BuildProgressEntry derives one per-category entry from a goal and the
// achieved approved hours. A zero goal yields percentage 0, never a division
// error; remaining never goes negative.
func BuildProgressEntry(tipo models.Category, goal, achieved float64) models.ProgressEntry {
	pct := 0.0
	if goal > 0 {
		pct = achieved / goal * 100
	}
	return models.ProgressEntry{
		Tipo:           tipo,
		HorasObjetivo:  goal,
		HorasLogradas:  achieved,
		Porcentaje:     pct,
		HorasRestantes: math.Max(goal-achieved, 0),
	}
}

// UserProgress computes the per-category progress of one user from their
// approved records and goal fields. Categories with zero goal and no approved
// records are omitted. Pure read: recomputed on every call.
func (s *Service) UserProgress(ctx context.Context, userID int64) ([]models.ProgressEntry, error) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	user, err := db.GetUserByID(dbCtx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Newf(apperr.NotFound, "user %d not found", userID)
	}

	achieved, err := db.ApprovedHoursByCategory(dbCtx, s.DB, userID)
	if err != nil {
		return nil, err
	}

	out := make([]models.ProgressEntry, 0, len(models.Categories))
	for _, tipo := range models.Categories {
		goal := user.GoalFor(tipo)
		horas := achieved[tipo]
		if goal == 0 && horas == 0 {
			continue
		}
		out = append(out, BuildProgressEntry(tipo, goal, horas))
	}
	return out, nil
}

// UserHistory returns every record of the user, any state, joined with
// activity details, newest registration first.
func (s *Service) UserHistory(ctx context.Context, userID int64) ([]models.RecordWithDetails, error) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.ListRecords(dbCtx, s.DB, &userID)
}

// Round2 rounds to two decimal places, used for fleet percentages.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FleetProgress is the administrator dashboard aggregate: one row per active
// intern plus system-wide totals. Rows come back ordered by user id.
func (s *Service) FleetProgress(ctx context.Context, actor Actor) (*models.FleetProgress, error) {
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.Permission, "only administrators see the fleet report")
	}

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	totals, err := db.ApprovedTotalsPerIntern(dbCtx, s.DB)
	if err != nil {
		return nil, err
	}
	count, err := db.CountActiveInterns(dbCtx, s.DB)
	if err != nil {
		return nil, err
	}
	sum, err := db.SumApprovedHours(dbCtx, s.DB)
	if err != nil {
		return nil, err
	}

	rows := make([]models.InternProgress, 0, len(totals))
	for _, t := range totals {
		pct := 0.0
		if t.MetaTotal > 0 {
			pct = Round2(t.HorasAprobadas / t.MetaTotal * 100)
		}
		rows = append(rows, models.InternProgress{
			BecarioID:       t.UserID,
			BecarioNombre:   t.Nombre,
			HorasAprobadas:  t.HorasAprobadas,
			MetaTotal:       t.MetaTotal,
			PorcentajeCumpl: pct,
		})
	}

	return &models.FleetProgress{
		Stats: models.FleetStats{
			TotalBecarios:       count,
			TotalHorasAprobadas: sum,
		},
		Becarios: rows,
	}, nil
}
