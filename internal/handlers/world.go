package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/craft-flags/internal/world"
	"github.com/jwebster45206/craft-flags/pkg/flags"
	"github.com/jwebster45206/craft-flags/pkg/item"
)

type WeatherRequest struct {
	Condition string `json:"condition"`
}

type WeatherResponse struct {
	World     string `json:"world"`
	Condition string `json:"condition"`
}

// HeldRequest describes an item as kind[:data[:amount]] plus optional
// "name:level, ..." enchantments.
type HeldRequest struct {
	Item         string `json:"item"`
	Enchantments string `json:"enchantments,omitempty"`
}

type HeldResponse struct {
	Player string     `json:"player"`
	Item   *item.Item `json:"item"`
}

// WorldHandler exposes the shared world state crafts are checked against.
type WorldHandler struct {
	state *world.State
	items *item.Catalog
	log   *slog.Logger
}

func NewWorldHandler(state *world.State, items *item.Catalog, log *slog.Logger) *WorldHandler {
	if items == nil {
		items = item.DefaultCatalog()
	}
	return &WorldHandler{
		state: state,
		items: items,
		log:   log,
	}
}

func (h *WorldHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("world")
	writeJSON(w, h.log, http.StatusOK, WeatherResponse{
		World:     name,
		Condition: flags.Observe(h.state, name).String(),
	})
}

func (h *WorldHandler) SetWeather(w http.ResponseWriter, r *http.Request) {
	var req WeatherRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "Invalid request body. Expected JSON with 'condition' field.")
		return
	}

	c, ok := flags.ParseCondition(req.Condition)
	if !ok {
		writeError(w, h.log, http.StatusBadRequest, "condition must be one of clear, downfall or thunder")
		return
	}

	name := r.PathValue("world")
	h.state.SetCondition(name, c)
	h.log.Info("Weather changed", "world", name, "condition", c.String())

	writeJSON(w, h.log, http.StatusOK, WeatherResponse{World: name, Condition: c.String()})
}

func (h *WorldHandler) GetHeld(w http.ResponseWriter, r *http.Request) {
	player := r.PathValue("player")
	resp := HeldResponse{Player: player}
	if held, ok := h.state.HeldItem(flags.Player{Name: player}); ok {
		resp.Item = &held
	}
	writeJSON(w, h.log, http.StatusOK, resp)
}

func (h *WorldHandler) SetHeld(w http.ResponseWriter, r *http.Request) {
	var req HeldRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "Invalid request body. Expected JSON with 'item' field.")
		return
	}

	held, err := h.items.ParseItem(req.Item, req.Enchantments)
	if err != nil {
		writeError(w, h.log, http.StatusBadRequest, err.Error())
		return
	}

	player := r.PathValue("player")
	h.state.Hold(flags.Player{Name: player}, held)
	writeJSON(w, h.log, http.StatusOK, HeldResponse{Player: player, Item: &held})
}

func (h *WorldHandler) ClearHeld(w http.ResponseWriter, r *http.Request) {
	h.state.EmptyHand(flags.Player{Name: r.PathValue("player")})
	w.WriteHeader(http.StatusNoContent)
}
