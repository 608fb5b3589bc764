package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/craft-flags/pkg/flags"
)

// FlagDoc is the documentation of one flag kind, with "{flag}" already
// replaced by the flag's "@name".
type FlagDoc struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Cumulative  bool     `json:"cumulative"`
	Arguments   []string `json:"arguments"`
	Description []string `json:"description"`
	Examples    []string `json:"examples"`
}

func newFlagDoc(def flags.Definition) FlagDoc {
	fill := strings.NewReplacer("{flag}", "@"+def.Name)
	render := func(lines []string) []string {
		out := make([]string, len(lines))
		for i, l := range lines {
			out[i] = fill.Replace(l)
		}
		return out
	}
	return FlagDoc{
		Name:        def.Name,
		Aliases:     def.Aliases,
		Cumulative:  def.Cumulative,
		Arguments:   render(def.Arguments),
		Description: render(def.Description),
		Examples:    render(def.Examples),
	}
}

type FlagsHandler struct {
	registry *flags.Registry
	log      *slog.Logger
}

func NewFlagsHandler(registry *flags.Registry, log *slog.Logger) *FlagsHandler {
	return &FlagsHandler{
		registry: registry,
		log:      log,
	}
}

// List returns the documentation of every registered flag
func (h *FlagsHandler) List(w http.ResponseWriter, r *http.Request) {
	defs := h.registry.Definitions()
	docs := make([]FlagDoc, 0, len(defs))
	for _, def := range defs {
		docs = append(docs, newFlagDoc(def))
	}
	writeJSON(w, h.log, http.StatusOK, docs)
}

// Get returns one flag by name or alias
func (h *FlagsHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	def, ok := h.registry.Lookup(name)
	if !ok {
		_, err := h.registry.New(name)
		writeError(w, h.log, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, h.log, http.StatusOK, newFlagDoc(def))
}
