package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fundacion-horas/horas-backend/internal/export"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(w http.ResponseWriter, f *excelize.File, name string) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_ = f.Write(w)
}

// exportFleet streams the fleet progress workbook. Admin only (routing).
func (h *Handler) exportFleet(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	fleet, err := h.svc.FleetProgress(r.Context(), actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	f, err := export.FleetWorkbook(*fleet)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeWorkbook(w, f, fmt.Sprintf("progreso_general_%s.xlsx", time.Now().Format("2006-01-02")))
}

// exportHistory streams the caller's own record history.
func (h *Handler) exportHistory(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	u, err := h.svc.Profile(r.Context(), actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	records, err := h.svc.UserHistory(r.Context(), actor.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	f, err := export.HistoryWorkbook(u.Nombre, records)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeWorkbook(w, f, fmt.Sprintf("historial_%s.xlsx", time.Now().Format("2006-01-02")))
}
