package httpapi

import (
	"net/http"
	"sync"
)

// actorLimiter serializes mutating requests of the same user so two
// overlapping edits cannot interleave mid-flight.
type actorLimiter struct {
	mu   sync.Mutex
	byID map[int64]*sync.Mutex
}

func newActorLimiter() *actorLimiter {
	return &actorLimiter{byID: make(map[int64]*sync.Mutex)}
}

func (l *actorLimiter) lock(userID int64) func() {
	l.mu.Lock()
	m, ok := l.byID[userID]
	if !ok {
		m = &sync.Mutex{}
		l.byID[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return func() { m.Unlock() }
}

// serializeWrites holds reads through untouched and takes the per-actor lock
// around anything that mutates.
func (l *actorLimiter) serializeWrites(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}
		if actor, ok := actorFrom(r.Context()); ok {
			defer l.lock(actor.ID)()
		}
		next.ServeHTTP(w, r)
	})
}
