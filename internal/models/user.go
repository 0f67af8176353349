package models

import "time"

type Role string

const (
	Becario       Role = "becario"
	Administrador Role = "administrador"
)

// User is a program participant. The four meta fields hold per-category hour
// goals; they stay at zero until an administrator sets them.
type User struct {
	ID           int64
	Email        string
	Nombre       string
	Rol          Role
	Carrera      string
	Universidad  string
	Semestre     string
	MetaInterna  float64
	MetaExterna  float64
	MetaChat     float64
	MetaTalleres float64
	IsActive     bool
	CreatedAt    time.Time
}

// GoalFor maps an activity category to the matching goal field.
func (u User) GoalFor(c Category) float64 {
	switch c {
	case CategoryInterna:
		return u.MetaInterna
	case CategoryExterna:
		return u.MetaExterna
	case CategoryChat:
		return u.MetaChat
	case CategoryTalleres:
		return u.MetaTalleres
	}
	return 0
}

// TotalGoal is the sum of the four goal fields.
func (u User) TotalGoal() float64 {
	return u.MetaInterna + u.MetaExterna + u.MetaChat + u.MetaTalleres
}

// Goals carries a goal update applied by an administrator.
type Goals struct {
	MetaInterna  float64
	MetaExterna  float64
	MetaChat     float64
	MetaTalleres float64
}
