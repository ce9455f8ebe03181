package handlers

import (
	"net/http"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready   bool `json:"ready"`
	Entries int  `json:"entries"`
}

// Readyz reports ready once the store has been initialized with at
// least the bundled seed.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.Store.Count()
		status := http.StatusOK
		if count == 0 {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, readyzResponse{Ready: count > 0, Entries: count})
	}
}
