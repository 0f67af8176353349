package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/fundacion-horas/horas-backend/internal/apperr"
	"github.com/fundacion-horas/horas-backend/internal/observability"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: code, Message: message})
}

// writeServiceError maps the error taxonomy onto HTTP statuses. Anything
// without a kind is a server fault and goes to sentry.
func writeServiceError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	switch kind {
	case apperr.Validation:
		writeError(w, http.StatusBadRequest, kind.String(), err.Error())
	case apperr.Permission:
		writeError(w, http.StatusForbidden, kind.String(), err.Error())
	case apperr.NotFound:
		writeError(w, http.StatusNotFound, kind.String(), err.Error())
	case apperr.InvalidState:
		writeError(w, http.StatusConflict, kind.String(), err.Error())
	default:
		observability.CaptureErr(err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
