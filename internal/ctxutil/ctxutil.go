package ctxutil

import (
	"context"
	"time"
)

var DefaultDBTimeout = 5 * time.Second

// WithDBTimeout caps a DB call at DefaultDBTimeout, or at the parent's
// remaining deadline when that is shorter.
func WithDBTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok {
		remain := time.Until(dl)
		if remain < DefaultDBTimeout {
			return context.WithTimeout(parent, remain)
		}
	}
	return context.WithTimeout(parent, DefaultDBTimeout)
}
