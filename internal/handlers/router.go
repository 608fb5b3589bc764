package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/craft-flags/internal/economy"
	"github.com/jwebster45206/craft-flags/internal/world"
	"github.com/jwebster45206/craft-flags/pkg/flags"
	"github.com/jwebster45206/craft-flags/pkg/item"
	"github.com/jwebster45206/craft-flags/pkg/messages"
)

// Deps are the collaborators shared by the handlers.
type Deps struct {
	Registry *flags.Registry
	Items    *item.Catalog
	Messages *messages.Catalog
	Ledger   economy.Ledger
	World    *world.State
	Logger   *slog.Logger
}

// NewRouter registers every endpoint and wraps the mux in request logging.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /health", NewHealthHandler(d.Ledger, d.Logger))

	flagsHandler := NewFlagsHandler(d.Registry, d.Logger)
	mux.HandleFunc("GET /v1/flags", flagsHandler.List)
	mux.HandleFunc("GET /v1/flags/{name}", flagsHandler.Get)

	recipeHandler := NewRecipeHandler(d)
	mux.HandleFunc("POST /v1/recipes/validate", recipeHandler.Validate)
	mux.HandleFunc("POST /v1/craft", recipeHandler.Craft)

	worldHandler := NewWorldHandler(d.World, d.Items, d.Logger)
	mux.HandleFunc("GET /v1/worlds/{world}", worldHandler.GetWeather)
	mux.HandleFunc("PUT /v1/worlds/{world}/weather", worldHandler.SetWeather)
	mux.HandleFunc("GET /v1/players/{player}/held", worldHandler.GetHeld)
	mux.HandleFunc("PUT /v1/players/{player}/held", worldHandler.SetHeld)
	mux.HandleFunc("DELETE /v1/players/{player}/held", worldHandler.ClearHeld)

	return RequestLogger(d.Logger, mux)
}
