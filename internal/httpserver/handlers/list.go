package handlers

import (
	"net/http"
	"strings"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/domain"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/httpserver/deps"
)

type listResponse struct {
	Servers []*domain.Entry `json:"servers"`
	Total   int             `json:"total"`
}

// ListServers serves the filtered, sorted directory.
// Query params: q (free text), tags (comma separated, conjunctive),
// sort (name | votes | source).
func ListServers(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := domain.Filter{Query: q.Get("q")}
		if raw := q.Get("tags"); raw != "" {
			for _, t := range strings.Split(raw, ",") {
				if t = strings.TrimSpace(t); t != "" {
					filter.Tags = append(filter.Tags, domain.Tag(t))
				}
			}
		}
		sortKey := domain.ParseSortKey(q.Get("sort"))

		servers := domain.Search(d.Store.Snapshot(), filter, sortKey)
		writeJSON(w, http.StatusOK, listResponse{Servers: servers, Total: len(servers)})
	}
}
