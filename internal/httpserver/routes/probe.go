package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/httpserver/deps"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/httpserver/handlers"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/httpserver/mw"
)

func init() { Register(registerProbe) }

func registerProbe(r chi.Router, d deps.Deps) {
	r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:      d.ProbeRateBurst,
		PerMinute:  d.ProbeRatePerMinute,
		TrustProxy: d.TrustProxy,
	})).Post("/servers/{id}/probe", handlers.ProbeServer(d))
}
