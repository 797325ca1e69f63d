package handlers

import (
	"context"
	"net/http"
)

// HandlePingDB checks that the storage is reachable.
func (h *StudyHandler) HandlePingDB() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.storage.PingDB(); err != nil {
			writeError(w, "HandlePingDB", http.StatusInternalServerError, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// HandleGetStats provides client with storage-wide counters.
func (h *StudyHandler) HandleGetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
		defer cancel()
		stats, err := h.storage.GetStats(ctx)
		if err != nil {
			writeError(w, "HandleGetStats", statusOf(err), err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}
