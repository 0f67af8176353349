package httpapi

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/fundacion-horas/horas-backend/internal/apperr"
)

func TestWriteServiceError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", apperr.New(apperr.Validation, "horas must be greater than zero"), 400, "validation"},
		{"permission", apperr.New(apperr.Permission, "administrator role required"), 403, "permission"},
		{"not found", apperr.Newf(apperr.NotFound, "record %d not found", 3), 404, "not_found"},
		{"invalid state", apperr.New(apperr.InvalidState, "record already decided"), 409, "invalid_state"},
		{"unknown", errors.New("pq: connection refused"), 500, "internal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tc.err)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			var body errorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Error != tc.wantCode {
				t.Fatalf("code = %q, want %q", body.Error, tc.wantCode)
			}
			if tc.wantStatus == 500 && body.Message != "internal error" {
				t.Fatalf("internal faults must not leak details, got %q", body.Message)
			}
		})
	}
}
