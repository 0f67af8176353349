package db

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

// The assignment edge table is shared by both directions: assigning users to
// an activity and activities to a user write the same rows, so either side
// reads a consistent relation.

// AssignUsersToActivity adds edges for every id in userIDs, all or nothing.
// Unknown ids abort the whole call and are returned as missing. Re-adding an
// existing edge is a no-op.
func AssignUsersToActivity(ctx context.Context, database *sql.DB, activityID int64, userIDs []int64) (missing []int64, err error) {
	tx, err := database.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM activities WHERE id = $1)`, activityID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return []int64{activityID}, nil
	}

	missing, err = missingIDs(ctx, tx, `users`, userIDs)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return missing, nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO activity_assignments (activity_id, user_id)
		SELECT $1, uid FROM unnest($2::bigint[]) AS uid
		ON CONFLICT (activity_id, user_id) DO NOTHING`,
		activityID, pq.Array(userIDs)); err != nil {
		return nil, err
	}
	return nil, tx.Commit()
}

// UnassignUsersFromActivity removes edges unconditionally; absent edges are
// ignored.
func UnassignUsersFromActivity(ctx context.Context, database *sql.DB, activityID int64, userIDs []int64) error {
	_, err := database.ExecContext(ctx, `
		DELETE FROM activity_assignments
		WHERE activity_id = $1 AND user_id = ANY($2::bigint[])`,
		activityID, pq.Array(userIDs))
	return err
}

// AssignActivitiesToUser is the user-side mirror of AssignUsersToActivity,
// with the same validation and idempotence contract.
func AssignActivitiesToUser(ctx context.Context, database *sql.DB, userID int64, activityIDs []int64) (missing []int64, err error) {
	tx, err := database.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return []int64{userID}, nil
	}

	missing, err = missingIDs(ctx, tx, `activities`, activityIDs)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return missing, nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO activity_assignments (activity_id, user_id)
		SELECT aid, $1 FROM unnest($2::bigint[]) AS aid
		ON CONFLICT (activity_id, user_id) DO NOTHING`,
		userID, pq.Array(activityIDs)); err != nil {
		return nil, err
	}
	return nil, tx.Commit()
}

func UnassignActivitiesFromUser(ctx context.Context, database *sql.DB, userID int64, activityIDs []int64) error {
	_, err := database.ExecContext(ctx, `
		DELETE FROM activity_assignments
		WHERE user_id = $1 AND activity_id = ANY($2::bigint[])`,
		userID, pq.Array(activityIDs))
	return err
}

// ListAssignedUserIDs returns the ids assigned to an activity, ascending.
func ListAssignedUserIDs(ctx context.Context, database *sql.DB, activityID int64) ([]int64, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT user_id FROM activity_assignments
		WHERE activity_id = $1 ORDER BY user_id`, activityID)
	if err != nil {
		return nil, err
	}
	return collectIDs(rows)
}

// ListAssignedActivityIDs returns the ids assigned to a user, ascending.
func ListAssignedActivityIDs(ctx context.Context, database *sql.DB, userID int64) ([]int64, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT activity_id FROM activity_assignments
		WHERE user_id = $1 ORDER BY activity_id`, userID)
	if err != nil {
		return nil, err
	}
	return collectIDs(rows)
}

// missingIDs reports which of ids have no row in table. Duplicates in ids are
// collapsed.
func missingIDs(ctx context.Context, tx *sql.Tx, table string, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM `+table+` WHERE id = ANY($1::bigint[])`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	found, err := collectIDs(rows)
	if err != nil {
		return nil, err
	}
	present := make(map[int64]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	seen := make(map[int64]struct{}, len(ids))
	var missing []int64
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func collectIDs(rows *sql.Rows) ([]int64, error) {
	defer func() { _ = rows.Close() }()
	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
