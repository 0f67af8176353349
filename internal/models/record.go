package models

import "time"

// RecordState is the approval state of an hour record. Initial state is
// Pending; Approved and Rejected are terminal.
type RecordState string

const (
	StatePending  RecordState = "P"
	StateApproved RecordState = "A"
	StateRejected RecordState = "R"
)

type Decision string

const (
	DecisionApprove Decision = "aprobar"
	DecisionReject  Decision = "rechazar"
)

// State returns the state a decision moves a pending record into.
func (d Decision) State() RecordState {
	if d == DecisionApprove {
		return StateApproved
	}
	return StateRejected
}

type HourRecord struct {
	ID              int64
	BecarioID       int64
	ActividadID     int64
	Descripcion     string
	Horas           float64
	Estado          RecordState
	FechaRegistro   time.Time
	FechaAprobacion *time.Time
	AprobadoPor     *int64
	NotaDecision    string
	CreatedAt       time.Time
}

// RecordWithDetails is an hour record joined with its activity and the names
// needed for listings.
type RecordWithDetails struct {
	HourRecord
	ActividadTitulo string
	ActividadTipo   Category
	BecarioNombre   string
	AprobadorNombre *string
}
