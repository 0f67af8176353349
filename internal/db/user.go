package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fundacion-horas/horas-backend/internal/models"
)

const userColumns = `id, email, nombre, rol, carrera, universidad, semestre,
	meta_voluntariado_interno, meta_voluntariado_externo, meta_chat_ingles, meta_talleres,
	is_active, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Nombre, &u.Rol, &u.Carrera, &u.Universidad, &u.Semestre,
		&u.MetaInterna, &u.MetaExterna, &u.MetaChat, &u.MetaTalleres,
		&u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func CreateUser(ctx context.Context, database *sql.DB, u models.User) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO users (email, nombre, rol, carrera, universidad, semestre,
			meta_voluntariado_interno, meta_voluntariado_externo, meta_chat_ingles, meta_talleres)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		u.Email, u.Nombre, u.Rol, u.Carrera, u.Universidad, u.Semestre,
		u.MetaInterna, u.MetaExterna, u.MetaChat, u.MetaTalleres,
	).Scan(&id)
	return id, err
}

// GetUserByID returns the user regardless of activation state; listings do
// the is_active filtering.
func GetUserByID(ctx context.Context, database *sql.DB, id int64) (*models.User, error) {
	u, err := scanUser(database.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

// ListUsers returns active users ordered by id. includeInactive also returns
// soft-deactivated ones.
func ListUsers(ctx context.Context, database *sql.DB, includeInactive bool) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	if !includeInactive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY id`

	rows, err := database.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// UpdateGoals overwrites the four goal fields. Returns false when the user
// does not exist or is deactivated.
func UpdateGoals(ctx context.Context, database *sql.DB, userID int64, g models.Goals) (bool, error) {
	res, err := database.ExecContext(ctx, `
		UPDATE users
		SET meta_voluntariado_interno = $1,
		    meta_voluntariado_externo = $2,
		    meta_chat_ingles = $3,
		    meta_talleres = $4
		WHERE id = $5 AND is_active`,
		g.MetaInterna, g.MetaExterna, g.MetaChat, g.MetaTalleres, userID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

// SetUserActive flips the soft-deactivation flag. Users are never hard-deleted.
func SetUserActive(ctx context.Context, database *sql.DB, userID int64, active bool) (bool, error) {
	res, err := database.ExecContext(ctx,
		`UPDATE users SET is_active = $1 WHERE id = $2`, active, userID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}
