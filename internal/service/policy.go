package service

// Visibility decides how far a query may see. It replaces per-handler role
// branching: build one from the actor and hand it to the query.
type Visibility interface {
	// OwnerScope returns the user id record queries are restricted to, or
	// nil when the caller sees everything.
	OwnerScope() *int64
}

// AdminPolicy sees every record.
type AdminPolicy struct{}

func (AdminPolicy) OwnerScope() *int64 { return nil }

// InternPolicy sees only the intern's own records.
type InternPolicy struct {
	UserID int64
}

func (p InternPolicy) OwnerScope() *int64 { return &p.UserID }

// PolicyFor builds the visibility policy matching the actor's role.
func PolicyFor(a Actor) Visibility {
	if a.IsAdmin() {
		return AdminPolicy{}
	}
	return InternPolicy{UserID: a.ID}
}
