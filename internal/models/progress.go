package models

// ProgressEntry is the per-category progress of one user, derived from the
// approved records and the goal catalog. Never persisted.
type ProgressEntry struct {
	Tipo           Category
	HorasObjetivo  float64
	HorasLogradas  float64
	Porcentaje     float64
	HorasRestantes float64
}

// InternProgress is one row of the fleet report: total approved hours of an
// intern against the sum of their four goals.
type InternProgress struct {
	BecarioID       int64
	BecarioNombre   string
	HorasAprobadas  float64
	MetaTotal       float64
	PorcentajeCumpl float64
}

// FleetStats are the system-wide totals shown on the administrator dashboard.
type FleetStats struct {
	TotalBecarios       int
	TotalHorasAprobadas float64
}

type FleetProgress struct {
	Stats    FleetStats
	Becarios []InternProgress
}
