package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/fundacion-horas/horas-backend/internal/models"
	"github.com/fundacion-horas/horas-backend/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	svc *service.Service
	log *zap.SugaredLogger
}

func NewHandler(svc *service.Service, log *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) mustActor(w http.ResponseWriter, r *http.Request) (service.Actor, bool) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing identity")
	}
	return actor, ok
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// --- hour records ---

func (h *Handler) submitRecord(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	var req submitRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "unable to parse body")
		return
	}

	rec, err := h.svc.Submit(r.Context(), actor, service.SubmitInput{
		ActividadID: req.Actividad,
		Horas:       req.HorasReportadas,
		Descripcion: req.DescripcionManual,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": rec.ID})
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	records, err := h.svc.ListRecords(r.Context(), actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordViews(records))
}

func (h *Handler) listPending(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	records, err := h.svc.ListPending(r.Context(), actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordViews(records))
}

func (h *Handler) decideRecord(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "bad record id")
		return
	}
	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "unable to parse body")
		return
	}

	if err := h.svc.Decide(r.Context(), actor, id, models.Decision(req.Accion), req.Nota); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Message: "registro " + req.Accion + " correctamente"})
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "bad record id")
		return
	}
	var req updateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "unable to parse body")
		return
	}

	if err := h.svc.UpdatePending(r.Context(), actor, id, req.HorasReportadas, req.DescripcionManual); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Message: "registro actualizado"})
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "bad record id")
		return
	}
	if err := h.svc.DeleteRecord(r.Context(), actor, id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- progress ---

func (h *Handler) myProgress(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	entries, err := h.svc.UserProgress(r.Context(), actor.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProgressViews(entries))
}

func (h *Handler) myHistory(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	records, err := h.svc.UserHistory(r.Context(), actor.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordViews(records))
}

func (h *Handler) fleetProgress(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	fleet, err := h.svc.FleetProgress(r.Context(), actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFleetView(*fleet))
}

// --- activities ---

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	activities, err := h.svc.ListActivities(r.Context(), actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityViews(activities))
}

func (h *Handler) catalog(w http.ResponseWriter, r *http.Request) {
	activities, err := h.svc.Catalog(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityViews(activities))
}

func parseActivity(req activityRequest) (models.Activity, error) {
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return models.Activity{}, err
	}
	return models.Activity{
		Titulo:        req.Titulo,
		Descripcion:   req.Descripcion,
		Tipo:          models.Category(req.Tipo),
		Fecha:         fecha,
		DuracionHoras: req.DuracionHoras,
		Modalidad:     models.Modality(req.Modalidad),
		Organizacion:  req.Organizacion,
		Facilitador:   req.Facilitador,
	}, nil
}

func (h *Handler) createActivity(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "unable to parse body")
		return
	}
	a, err := parseActivity(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "bad fecha, want YYYY-MM-DD")
		return
	}
	id, err := h.svc.CreateActivity(r.Context(), actor, a)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) getActivity(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "bad activity id")
		return
	}
	a, err := h.svc.GetActivity(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityView(*a))
}

func (h *Handler) updateActivity(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "bad activity id")
		return
	}
	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "unable to parse body")
		return
	}
	a, err := parseActivity(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "bad fecha, want YYYY-MM-DD")
		return
	}
	a.ID = id
	current, err := h.svc.GetActivity(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	a.EnCatalogo = current.EnCatalogo
	if err := h.svc.UpdateActivity(r.Context(), actor, a); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Message: "actividad actualizada"})
}

func (h *Handler) deleteActivity(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "bad activity id")
		return
	}
	if err := h.svc.DeleteActivity(r.Context(), actor, id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deactivateActivity(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "bad activity id")
		return
	}
	if err := h.svc.DeactivateActivity(r.Context(), actor, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Message: "actividad desactivada"})
}

// --- assignments ---

func (h *Handler) assignUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "bad activity id")
		return
	}
	var req assignUsersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "unable to parse body")
		return
	}
	if err := h.svc.AssignUsersToActivity(r.Context(), actor, id, req.UserIDs); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Message: "asignaciones registradas"})
}

func (h *Handler) unassignUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "bad activity id")
		return
	}
	var req assignUsersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "unable to parse body")
		return
	}
	if err := h.svc.UnassignUsersFromActivity(r.Context(), actor, id, req.UserIDs); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Message: "asignaciones eliminadas"})
}

func (h *Handler) listAssignedUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "bad activity id")
		return
	}
	ids, err := h.svc.AssignedUsers(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]int64{"user_ids": ids})
}

func (h *Handler) assignActivities(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "bad user id")
		return
	}
	var req assignActivitiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "unable to parse body")
		return
	}
	if err := h.svc.AssignActivitiesToUser(r.Context(), actor, id, req.ActivityIDs); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Message: "asignaciones registradas"})
}

func (h *Handler) unassignActivities(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "bad user id")
		return
	}
	var req assignActivitiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "unable to parse body")
		return
	}
	if err := h.svc.UnassignActivitiesFromUser(r.Context(), actor, id, req.ActivityIDs); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Message: "asignaciones eliminadas"})
}

// --- users ---

func (h *Handler) myProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	u, err := h.svc.Profile(r.Context(), actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(*u))
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	users, err := h.svc.ListUsers(r.Context(), actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, toUserView(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "unable to parse body")
		return
	}
	id, err := h.svc.CreateUser(r.Context(), actor, models.User{
		Email:        req.Email,
		Nombre:       req.Nombre,
		Rol:          models.Role(req.Rol),
		Carrera:      req.Carrera,
		Universidad:  req.Universidad,
		Semestre:     req.Semestre,
		MetaInterna:  req.MetaInterna,
		MetaExterna:  req.MetaExterna,
		MetaChat:     req.MetaChat,
		MetaTalleres: req.MetaTalleres,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) updateGoals(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "bad user id")
		return
	}
	var req goalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "unable to parse body")
		return
	}
	if err := h.svc.UpdateGoals(r.Context(), actor, id, models.Goals{
		MetaInterna:  req.MetaInterna,
		MetaExterna:  req.MetaExterna,
		MetaChat:     req.MetaChat,
		MetaTalleres: req.MetaTalleres,
	}); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Message: "metas actualizadas"})
}

func (h *Handler) deactivateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.mustActor(w, r)
	if !ok {
		return
	}
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "bad user id")
		return
	}
	if err := h.svc.DeactivateUser(r.Context(), actor, id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
