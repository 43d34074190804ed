package rest

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/userdirectory/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
}

// handleError answers 400 with the reason for client errors and a generic
// 500 for everything else.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if common.IsClientError(err) {
		h.logger.Warn(r.Context(), "request rejected", "reason", err.Error())
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: err.Error()})
		return
	}

	h.logger.Error(r.Context(), "request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, messageResponse{Message: common.ErrorInternal.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
