package db

import (
	"context"
	"database/sql"

	"github.com/fundacion-horas/horas-backend/internal/models"
)

// ApprovedHoursByCategory sums the approved hours of one user grouped by the
// activity category. Categories without approved records are absent from the
// map.
func ApprovedHoursByCategory(ctx context.Context, database *sql.DB, userID int64) (map[models.Category]float64, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT a.tipo, COALESCE(SUM(r.horas), 0)
		FROM hour_records r
		JOIN activities a ON a.id = r.actividad_id
		WHERE r.becario_id = $1 AND r.estado = 'A'
		GROUP BY a.tipo`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make(map[models.Category]float64, len(models.Categories))
	for rows.Next() {
		var c models.Category
		var horas float64
		if err := rows.Scan(&c, &horas); err != nil {
			return nil, err
		}
		out[c] = horas
	}
	return out, rows.Err()
}

// InternTotals is one intern's aggregate pulled for the fleet report.
type InternTotals struct {
	UserID         int64
	Nombre         string
	MetaTotal      float64
	HorasAprobadas float64
}

// ApprovedTotalsPerIntern returns every active intern with their total
// approved hours and summed goals, ordered by user id so the report is
// deterministic.
func ApprovedTotalsPerIntern(ctx context.Context, database *sql.DB) ([]InternTotals, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT u.id, u.nombre,
		       u.meta_voluntariado_interno + u.meta_voluntariado_externo
		           + u.meta_chat_ingles + u.meta_talleres,
		       COALESCE(SUM(r.horas) FILTER (WHERE r.estado = 'A'), 0)
		FROM users u
		LEFT JOIN hour_records r ON r.becario_id = u.id
		WHERE u.rol = 'becario' AND u.is_active
		GROUP BY u.id, u.nombre
		ORDER BY u.id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []InternTotals
	for rows.Next() {
		var t InternTotals
		if err := rows.Scan(&t.UserID, &t.Nombre, &t.MetaTotal, &t.HorasAprobadas); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SumApprovedHours is the system-wide approved total, any user.
func SumApprovedHours(ctx context.Context, database *sql.DB) (float64, error) {
	var total float64
	err := database.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(horas), 0) FROM hour_records WHERE estado = 'A'`).Scan(&total)
	return total, err
}

func CountActiveInterns(ctx context.Context, database *sql.DB) (int, error) {
	var n int
	err := database.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE rol = 'becario' AND is_active`).Scan(&n)
	return n, err
}
