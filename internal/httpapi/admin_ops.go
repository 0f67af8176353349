package httpapi

import (
	"net/http"

	"github.com/fundacion-horas/horas-backend/internal/backupclient"
)

func (h *Handler) triggerBackup(w http.ResponseWriter, r *http.Request) {
	out, err := backupclient.TriggerBackup(r.Context())
	if err != nil {
		h.log.Errorw("backup trigger failed", "err", err)
		writeError(w, http.StatusBadGateway, "backup", err.Error())
		return
	}
	h.log.Infow("backup triggered", "report", out)
	writeJSON(w, http.StatusOK, ackResponse{Message: out})
}

func (h *Handler) restoreLatest(w http.ResponseWriter, r *http.Request) {
	out, err := backupclient.RestoreLatest(r.Context())
	if err != nil {
		h.log.Errorw("restore failed", "err", err)
		writeError(w, http.StatusBadGateway, "restore", err.Error())
		return
	}
	h.log.Warnw("database restored from latest dump", "report", out)
	writeJSON(w, http.StatusOK, ackResponse{Message: out})
}
