package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := New(NotFound, "user 5 not found")
	if KindOf(err) != NotFound {
		t.Fatalf("KindOf = %v, want NotFound", KindOf(err))
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Fatal("plain errors have no kind")
	}

	wrapped := fmt.Errorf("handler: %w", err)
	if KindOf(wrapped) != NotFound {
		t.Fatal("kind should survive fmt.Errorf wrapping")
	}
}

func TestIsSentinel(t *testing.T) {
	err := Newf(InvalidState, "record %d already decided", 12)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatal("errors.Is should match the kind sentinel")
	}
	if errors.Is(err, ErrPermission) {
		t.Fatal("errors.Is must not match a different kind")
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("sql: no rows")
	err := Wrap(NotFound, "loading record", cause)
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause should be reachable via errors.Is")
	}
	if err.Error() != "loading record: sql: no rows" {
		t.Fatalf("message = %q", err.Error())
	}
}
