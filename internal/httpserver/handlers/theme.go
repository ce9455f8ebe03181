package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/httpserver/deps"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/store"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/utils"
)

type themePayload struct {
	Theme string `json:"theme"`
}

// GetTheme reports the persisted UI theme, defaulting to dark.
func GetTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, themePayload{Theme: d.Store.Theme(r.Context())})
	}
}

// SetTheme persists the UI theme slot.
func SetTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		var req themePayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "request body must be a JSON object")
			return
		}

		if err := d.Store.SetTheme(r.Context(), req.Theme); err != nil {
			if errors.Is(err, store.ErrInvalidTheme) {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "could not persist theme")
			return
		}
		writeJSON(w, http.StatusOK, themePayload{Theme: req.Theme})
	}
}
