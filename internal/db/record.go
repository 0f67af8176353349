package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fundacion-horas/horas-backend/internal/models"
)

func InsertRecord(ctx context.Context, database *sql.DB, r models.HourRecord) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO hour_records (becario_id, actividad_id, descripcion, horas, estado, fecha_registro)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		r.BecarioID, r.ActividadID, r.Descripcion, r.Horas, r.Estado, r.FechaRegistro,
	).Scan(&id)
	return id, err
}

func GetRecordByID(ctx context.Context, database *sql.DB, id int64) (*models.HourRecord, error) {
	var r models.HourRecord
	err := database.QueryRowContext(ctx, `
		SELECT id, becario_id, actividad_id, descripcion, horas, estado,
		       fecha_registro, fecha_aprobacion, aprobado_por, nota_decision, created_at
		FROM hour_records WHERE id = $1`, id,
	).Scan(&r.ID, &r.BecarioID, &r.ActividadID, &r.Descripcion, &r.Horas, &r.Estado,
		&r.FechaRegistro, &r.FechaAprobacion, &r.AprobadoPor, &r.NotaDecision, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

const recordDetailQuery = `
	SELECT r.id, r.becario_id, r.actividad_id, r.descripcion, r.horas, r.estado,
	       r.fecha_registro, r.fecha_aprobacion, r.aprobado_por, r.nota_decision, r.created_at,
	       a.titulo, a.tipo, u.nombre, ap.nombre
	FROM hour_records r
	JOIN activities a ON a.id = r.actividad_id
	JOIN users u ON u.id = r.becario_id
	LEFT JOIN users ap ON ap.id = r.aprobado_por`

func collectRecordDetails(rows *sql.Rows) ([]models.RecordWithDetails, error) {
	defer func() { _ = rows.Close() }()
	var out []models.RecordWithDetails
	for rows.Next() {
		var r models.RecordWithDetails
		if err := rows.Scan(&r.ID, &r.BecarioID, &r.ActividadID, &r.Descripcion, &r.Horas,
			&r.Estado, &r.FechaRegistro, &r.FechaAprobacion, &r.AprobadoPor, &r.NotaDecision,
			&r.CreatedAt, &r.ActividadTitulo, &r.ActividadTipo, &r.BecarioNombre,
			&r.AprobadorNombre); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListRecords returns records with activity details, newest first. owner nil
// means all records (administrator view); otherwise only the owner's.
func ListRecords(ctx context.Context, database *sql.DB, owner *int64) ([]models.RecordWithDetails, error) {
	query := recordDetailQuery
	args := []any{}
	if owner != nil {
		query += ` WHERE r.becario_id = $1`
		args = append(args, *owner)
	}
	query += ` ORDER BY r.fecha_registro DESC, r.id DESC`

	rows, err := database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectRecordDetails(rows)
}

// ListPendingRecords is the approval queue, oldest claims first.
func ListPendingRecords(ctx context.Context, database *sql.DB) ([]models.RecordWithDetails, error) {
	rows, err := database.QueryContext(ctx,
		recordDetailQuery+` WHERE r.estado = 'P' ORDER BY r.fecha_registro ASC, r.id ASC`)
	if err != nil {
		return nil, err
	}
	return collectRecordDetails(rows)
}

// DecideRecord moves a pending record to its terminal state. The estado='P'
// predicate is the compare-and-swap: of two concurrent decisions exactly one
// sees RowsAffected=1, the other gets false and no write happens.
func DecideRecord(ctx context.Context, database *sql.DB, recordID int64, state models.RecordState, adminID int64, at time.Time, nota string) (bool, error) {
	res, err := database.ExecContext(ctx, `
		UPDATE hour_records
		SET estado = $1, fecha_aprobacion = $2, aprobado_por = $3, nota_decision = $4
		WHERE id = $5 AND estado = 'P'`,
		state, at, adminID, nota, recordID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

// UpdatePendingRecord lets the owner edit hours and note while the record is
// still pending. Same CAS shape as DecideRecord.
func UpdatePendingRecord(ctx context.Context, database *sql.DB, recordID, ownerID int64, horas float64, descripcion string) (bool, error) {
	res, err := database.ExecContext(ctx, `
		UPDATE hour_records
		SET horas = $1, descripcion = $2
		WHERE id = $3 AND becario_id = $4 AND estado = 'P'`,
		horas, descripcion, recordID, ownerID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

// DeletePendingOwned removes the owner's record only while it is pending.
func DeletePendingOwned(ctx context.Context, database *sql.DB, recordID, ownerID int64) (bool, error) {
	res, err := database.ExecContext(ctx,
		`DELETE FROM hour_records WHERE id = $1 AND becario_id = $2 AND estado = 'P'`,
		recordID, ownerID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

// DeleteRecord removes a record unconditionally (administrator path).
func DeleteRecord(ctx context.Context, database *sql.DB, recordID int64) (bool, error) {
	res, err := database.ExecContext(ctx,
		`DELETE FROM hour_records WHERE id = $1`, recordID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

func CountPendingRecords(ctx context.Context, database *sql.DB) (int, error) {
	var n int
	err := database.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM hour_records WHERE estado = 'P'`).Scan(&n)
	return n, err
}
