package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/httpserver/deps"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/httpserver/handlers"
)

func init() { Register(registerImportExport) }

func registerImportExport(r chi.Router, d deps.Deps) {
	r.Post("/import", handlers.Import(d))
	r.Get("/export", handlers.Export(d))
}
