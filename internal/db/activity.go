package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/fundacion-horas/horas-backend/internal/models"
)

const activityColumns = `id, titulo, descripcion, tipo, fecha, duracion_horas, modalidad,
	organizacion, facilitador, creador_id, en_catalogo, is_active, created_at`

func scanActivity(row interface{ Scan(...any) error }) (*models.Activity, error) {
	var a models.Activity
	err := row.Scan(&a.ID, &a.Titulo, &a.Descripcion, &a.Tipo, &a.Fecha, &a.DuracionHoras,
		&a.Modalidad, &a.Organizacion, &a.Facilitador, &a.CreadorID, &a.EnCatalogo,
		&a.IsActive, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectActivities(rows *sql.Rows) ([]models.Activity, error) {
	defer func() { _ = rows.Close() }()
	var out []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func CreateActivity(ctx context.Context, database *sql.DB, a models.Activity) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO activities (titulo, descripcion, tipo, fecha, duracion_horas, modalidad,
			organizacion, facilitador, creador_id, en_catalogo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		a.Titulo, a.Descripcion, a.Tipo, a.Fecha, a.DuracionHoras, a.Modalidad,
		a.Organizacion, a.Facilitador, a.CreadorID, a.EnCatalogo,
	).Scan(&id)
	return id, err
}

func GetActivityByID(ctx context.Context, database *sql.DB, id int64) (*models.Activity, error) {
	a, err := scanActivity(database.QueryRowContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

// ListActivities is the administrator view. includeInactive also returns
// deactivated activities.
func ListActivities(ctx context.Context, database *sql.DB, includeInactive bool) ([]models.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities`
	if !includeInactive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY fecha DESC, id DESC`

	rows, err := database.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectActivities(rows)
}

// ListVisibleActivities is the intern view: catalog activities plus ones the
// user created or was assigned to. Deactivated activities are never shown.
func ListVisibleActivities(ctx context.Context, database *sql.DB, userID int64) ([]models.Activity, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT `+activityColumns+`
		FROM activities a
		WHERE a.is_active
		  AND (a.en_catalogo
		       OR a.creador_id = $1
		       OR EXISTS (SELECT 1 FROM activity_assignments aa
		                  WHERE aa.activity_id = a.id AND aa.user_id = $1))
		ORDER BY fecha DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectActivities(rows)
}

func ListCatalog(ctx context.Context, database *sql.DB) ([]models.Activity, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT `+activityColumns+`
		FROM activities
		WHERE is_active AND en_catalogo
		ORDER BY fecha DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collectActivities(rows)
}

// ActivityAccessibleTo reports whether userID may log hours against the
// activity: it must be active and in the catalog, created by the user or
// assigned to them.
func ActivityAccessibleTo(ctx context.Context, database *sql.DB, activityID, userID int64) (bool, error) {
	var ok bool
	err := database.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM activities a
			WHERE a.id = $1 AND a.is_active
			  AND (a.en_catalogo
			       OR a.creador_id = $2
			       OR EXISTS (SELECT 1 FROM activity_assignments aa
			                  WHERE aa.activity_id = a.id AND aa.user_id = $2)))`,
		activityID, userID).Scan(&ok)
	return ok, err
}

func UpdateActivity(ctx context.Context, database *sql.DB, a models.Activity) (bool, error) {
	res, err := database.ExecContext(ctx, `
		UPDATE activities
		SET titulo = $1, descripcion = $2, tipo = $3, fecha = $4, duracion_horas = $5,
		    modalidad = $6, organizacion = $7, facilitador = $8, en_catalogo = $9
		WHERE id = $10 AND is_active`,
		a.Titulo, a.Descripcion, a.Tipo, a.Fecha, a.DuracionHoras,
		a.Modalidad, a.Organizacion, a.Facilitador, a.EnCatalogo, a.ID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

func SetActivityActive(ctx context.Context, database *sql.DB, id int64, active bool) (bool, error) {
	res, err := database.ExecContext(ctx,
		`UPDATE activities SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

// DeleteActivityIfUnreferenced hard-deletes the activity unless hour records
// reference it. Check and delete run in one transaction; a record committing
// in between trips the FK RESTRICT, which is reported as refs too rather than
// surfacing as a driver error.
func DeleteActivityIfUnreferenced(ctx context.Context, database *sql.DB, id int64) (deleted bool, refs int, err error) {
	tx, err := database.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return false, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM hour_records WHERE actividad_id = $1`, id).Scan(&refs); err != nil {
		return false, 0, err
	}
	if refs > 0 {
		return false, refs, nil
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		if isFKViolation(err) {
			return false, 1, nil
		}
		return false, 0, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return false, 0, nil
	}
	return true, 0, tx.Commit()
}

// isFKViolation matches SQLSTATE 23503 from either postgres driver in use.
func isFKViolation(err error) bool {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == "23503"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	return false
}
