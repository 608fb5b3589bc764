package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/craft-flags/internal/diagnostics"
	"github.com/jwebster45206/craft-flags/internal/logger"
	"github.com/jwebster45206/craft-flags/pkg/flags"
	"github.com/jwebster45206/craft-flags/pkg/recipe"
)

// RecipeRequest carries a recipe as flag lines.
type RecipeRequest struct {
	Name  string `json:"name"`
	Flags string `json:"flags"`
}

// CraftRequest is a recipe plus the facts of one craft attempt.
type CraftRequest struct {
	RecipeRequest
	Player string `json:"player,omitempty"`
	World  string `json:"world,omitempty"`
}

type Diagnostic struct {
	Severity string   `json:"severity"`
	Message  string   `json:"message"`
	Details  []string `json:"details,omitempty"`
	Line     int      `json:"line"`
}

type ValidateResponse struct {
	Valid       bool         `json:"valid"`
	Flags       []string     `json:"flags"`
	Lore        []string     `json:"lore,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

type CraftResponse struct {
	AttemptID uuid.UUID `json:"attempt_id"`
	Allowed   bool      `json:"allowed"`
	Reasons   []string  `json:"reasons,omitempty"`
	Effects   []string  `json:"effects,omitempty"`
	Problems  []string  `json:"problems,omitempty"`
	Balance   *string   `json:"balance,omitempty"`
}

// RecipeHandler parses recipes sent in requests and resolves craft attempts
// against the shared world and economy.
type RecipeHandler struct {
	deps Deps
}

func NewRecipeHandler(d Deps) *RecipeHandler {
	return &RecipeHandler{deps: d}
}

func (h *RecipeHandler) services() flags.Services {
	var svc flags.Services
	if h.deps.World != nil {
		svc.World = h.deps.World
	}
	if h.deps.Ledger != nil {
		svc.Economy = h.deps.Ledger
	}
	return svc
}

func (h *RecipeHandler) parse(req RecipeRequest) (*recipe.Recipe, *diagnostics.Collector, error) {
	diags := diagnostics.NewCollector(h.deps.Logger)
	pc := &flags.ParseContext{
		Reporter: diags,
		Services: h.services(),
		Items:    h.deps.Items,
	}

	name := req.Name
	if name == "" {
		name = "recipe"
	}
	r := recipe.New(name)
	_, err := r.LoadFlags(strings.NewReader(req.Flags), name, h.deps.Registry, pc)
	return r, diags, err
}

func toDiagnostics(c *diagnostics.Collector) []Diagnostic {
	out := make([]Diagnostic, 0)
	for _, e := range c.Entries() {
		out = append(out, Diagnostic{
			Severity: string(e.Severity),
			Message:  e.Message,
			Details:  e.Details,
			Line:     e.Line,
		})
	}
	return out
}

// Validate parses a recipe and reports its diagnostics
func (h *RecipeHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req RecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.deps.Logger.Warn("Invalid request body", "error", err)
		writeError(w, h.deps.Logger, http.StatusBadRequest, "Invalid request body. Expected JSON with 'flags' field.")
		return
	}

	rec, diags, err := h.parse(req)
	if err != nil {
		writeError(w, h.deps.Logger, http.StatusBadRequest, err.Error())
		return
	}

	names := make([]string, 0)
	for _, f := range rec.Flags() {
		names = append(names, f.Name())
	}

	writeJSON(w, h.deps.Logger, http.StatusOK, ValidateResponse{
		Valid:       !diags.HasErrors(),
		Flags:       names,
		Lore:        rec.Lore(),
		Diagnostics: toDiagnostics(diags),
	})
}

// Craft runs one attempt. A recipe with parse errors is rejected with 422.
func (h *RecipeHandler) Craft(w http.ResponseWriter, r *http.Request) {
	var req CraftRequest
	if err := decodeJSON(r, &req); err != nil {
		h.deps.Logger.Warn("Invalid request body", "error", err)
		writeError(w, h.deps.Logger, http.StatusBadRequest, "Invalid request body. Expected JSON with 'flags' field.")
		return
	}

	rec, diags, err := h.parse(req.RecipeRequest)
	if err != nil {
		writeError(w, h.deps.Logger, http.StatusBadRequest, err.Error())
		return
	}
	if diags.HasErrors() {
		writeJSON(w, h.deps.Logger, http.StatusUnprocessableEntity, ValidateResponse{
			Valid:       false,
			Flags:       []string{},
			Diagnostics: toDiagnostics(diags),
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	args := flags.NewArgs(h.services()).WithContext(ctx)
	if req.Player != "" {
		args.WithPlayer(flags.Player{Name: req.Player})
	}
	if req.World != "" {
		args.WithLocation(flags.Location{World: req.World})
	}

	log := logger.WithRecipe(logger.WithAttempt(h.deps.Logger, args.ID), rec.Name)
	outcome := recipe.NewCrafter(h.deps.Messages, log).Craft(rec, args)

	resp := CraftResponse{
		AttemptID: outcome.AttemptID,
		Allowed:   outcome.Allowed,
		Reasons:   outcome.Reasons,
		Effects:   outcome.Effects,
		Problems:  outcome.Problems,
	}
	if req.Player != "" && h.deps.Ledger != nil && h.deps.Ledger.Enabled() {
		if balance, err := h.deps.Ledger.Balance(ctx, req.Player); err == nil {
			formatted := h.deps.Ledger.Format(balance)
			resp.Balance = &formatted
		} else {
			log.Warn("Failed to read balance", "error", err)
		}
	}

	writeJSON(w, log, http.StatusOK, resp)
}
