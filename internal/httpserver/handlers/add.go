package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/domain"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/httpserver/deps"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/logger"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/utils"
)

type addRequest struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Address          string       `json:"address"`
	Tags             []domain.Tag `json:"tags"`
	ShortDescription string       `json:"shortDescription"`
	Region           string       `json:"region"`
	SourceLabel      string       `json:"sourceLabel"`
}

// AddServer handles manual additions. Entries added here are always
// user-supplied and land at the top of the directory.
func AddServer(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		var req addRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "request body must be a JSON object")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		req.Address = strings.TrimSpace(req.Address)

		if req.Name == "" {
			writeError(w, http.StatusUnprocessableEntity, "name is required")
			return
		}
		if !domain.ValidAddress(req.Address) {
			writeError(w, http.StatusUnprocessableEntity, "address must start with wss://")
			return
		}
		for _, t := range req.Tags {
			if !domain.KnownTag(t) {
				writeError(w, http.StatusUnprocessableEntity, "unknown tag: "+string(t))
				return
			}
		}

		if req.ID == "" {
			req.ID = uuid.NewString()
		}

		entry := &domain.Entry{
			ID:               req.ID,
			Name:             req.Name,
			Address:          req.Address,
			Tags:             req.Tags,
			ShortDescription: req.ShortDescription,
			Region:           req.Region,
			IsUserSupplied:   true,
			SourceLabel:      req.SourceLabel,
		}
		d.Store.Add(r.Context(), entry)

		d.Logger.Info("server added",
			logger.String("id", entry.ID),
			logger.String("address", entry.Address))
		writeJSON(w, http.StatusCreated, entry)
	}
}
