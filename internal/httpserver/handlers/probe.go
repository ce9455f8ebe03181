package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/httpserver/deps"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/logger"
)

// ProbeServer runs an on-demand liveness check for one entry and
// records the result in the status cache.
func ProbeServer(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		entry, ok := d.Store.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown server id")
			return
		}

		result := d.Prober.Probe(r.Context(), entry.Address)
		d.StatusCache.Set(entry.ID, result)

		d.Logger.Debug("probe requested",
			logger.String("id", entry.ID),
			logger.String("outcome", string(result.Outcome)))
		writeJSON(w, http.StatusOK, result)
	}
}
