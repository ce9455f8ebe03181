package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/httpserver/deps"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/probe"
)

type componentStatus struct {
	OK    bool   `json:"ok"`
	Mode  string `json:"mode,omitempty"`
	Error string `json:"error,omitempty"`
}

type statusResponse struct {
	Entries    int                        `json:"entries"`
	LastSweep  string                     `json:"last_sweep"`
	Results    map[string]probe.Result    `json:"results"`
	Components map[string]componentStatus `json:"components"`
}

// Status exposes the directory size, the latest sweep results and the
// health of the storage backend.
func Status(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lastSweep := "never"
		if t := d.StatusCache.LastSweep(); !t.IsZero() {
			lastSweep = t.UTC().Format(time.RFC3339)
		}

		components := map[string]componentStatus{
			"storage": checkStorage(d),
		}

		writeJSON(w, http.StatusOK, statusResponse{
			Entries:    d.Store.Count(),
			LastSweep:  lastSweep,
			Results:    d.StatusCache.All(),
			Components: components,
		})
	}
}

func checkStorage(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{OK: true, Mode: "file"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{OK: false, Mode: "redis", Error: err.Error()}
	}
	return componentStatus{OK: true, Mode: "redis"}
}
