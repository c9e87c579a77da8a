package handlers

import (
	"net/http"
)

func (h *Handlers) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.TablesService.GetStats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, stats, http.StatusOK)
}
