package service

import (
	"context"

	"github.com/fundacion-horas/horas-backend/internal/apperr"
	"github.com/fundacion-horas/horas-backend/internal/ctxutil"
	"github.com/fundacion-horas/horas-backend/internal/db"
)

// AssignUsersToActivity adds assignment edges, all-or-nothing: any unknown id
// aborts the call with NotFound and no edge is written. Re-assigning an
// existing pair is a no-op.
func (s *Service) AssignUsersToActivity(ctx context.Context, actor Actor, activityID int64, userIDs []int64) error {
	if !actor.IsAdmin() {
		return apperr.New(apperr.Permission, "only administrators manage assignments")
	}
	if len(userIDs) == 0 {
		return apperr.New(apperr.Validation, "no user ids given")
	}

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	missing, err := db.AssignUsersToActivity(dbCtx, s.DB, activityID, userIDs)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return apperr.Newf(apperr.NotFound, "unknown ids: %v", missing)
	}
	return nil
}

// UnassignUsersFromActivity removes edges; absent edges are ignored.
func (s *Service) UnassignUsersFromActivity(ctx context.Context, actor Actor, activityID int64, userIDs []int64) error {
	if !actor.IsAdmin() {
		return apperr.New(apperr.Permission, "only administrators manage assignments")
	}
	if len(userIDs) == 0 {
		return nil
	}
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.UnassignUsersFromActivity(dbCtx, s.DB, activityID, userIDs)
}

// AssignActivitiesToUser is the user-side mirror; it writes the same edge
// table, so reads from either side stay consistent.
func (s *Service) AssignActivitiesToUser(ctx context.Context, actor Actor, userID int64, activityIDs []int64) error {
	if !actor.IsAdmin() {
		return apperr.New(apperr.Permission, "only administrators manage assignments")
	}
	if len(activityIDs) == 0 {
		return apperr.New(apperr.Validation, "no activity ids given")
	}

	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	missing, err := db.AssignActivitiesToUser(dbCtx, s.DB, userID, activityIDs)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return apperr.Newf(apperr.NotFound, "unknown ids: %v", missing)
	}
	return nil
}

func (s *Service) UnassignActivitiesFromUser(ctx context.Context, actor Actor, userID int64, activityIDs []int64) error {
	if !actor.IsAdmin() {
		return apperr.New(apperr.Permission, "only administrators manage assignments")
	}
	if len(activityIDs) == 0 {
		return nil
	}
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.UnassignActivitiesFromUser(dbCtx, s.DB, userID, activityIDs)
}

// AssignedUsers lists the user ids assigned to an activity.
func (s *Service) AssignedUsers(ctx context.Context, actor Actor, activityID int64) ([]int64, error) {
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.Permission, "only administrators read assignments")
	}
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	return db.ListAssignedUserIDs(dbCtx, s.DB, activityID)
}
