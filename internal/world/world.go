// Package world is an in-memory world-state provider: per-world weather and
// the item each player holds.
package world

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/jwebster45206/craft-flags/pkg/flags"
	"github.com/jwebster45206/craft-flags/pkg/item"
	"gopkg.in/yaml.v3"
)

// Weather is the raw weather state of one world.
type Weather struct {
	Storm   bool `yaml:"storm"`
	Thunder bool `yaml:"thunder"`
}

// State holds world state and is safe for concurrent use.
type State struct {
	mu      sync.RWMutex
	weather map[string]Weather
	byID    map[uuid.UUID]item.Item
	byName  map[string]item.Item
}

var _ flags.World = (*State)(nil)

func New() *State {
	return &State{
		weather: make(map[string]Weather),
		byID:    make(map[uuid.UUID]item.Item),
		byName:  make(map[string]item.Item),
	}
}

func (s *State) SetWeather(world string, w Weather) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weather[world] = w
}

// SetCondition sets a world's weather so that it is observed as c.
func (s *State) SetCondition(world string, c flags.Condition) {
	var w Weather
	switch c {
	case flags.Downfall:
		w.Storm = true
	case flags.Thunder:
		w.Storm = true
		w.Thunder = true
	}
	s.SetWeather(world, w)
}

func (s *State) HasStorm(world string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weather[world].Storm
}

func (s *State) IsThundering(world string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weather[world].Thunder
}

// Hold puts it in the player's hand. Players are keyed by ID when they have
// one, by name otherwise.
func (s *State) Hold(p flags.Player, it item.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID != uuid.Nil {
		s.byID[p.ID] = it.Clone()
		return
	}
	s.byName[p.Name] = it.Clone()
}

func (s *State) EmptyHand(p flags.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, p.ID)
	delete(s.byName, p.Name)
}

// HeldItem returns a copy of what p holds.
func (s *State) HeldItem(p flags.Player) (item.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.byID[p.ID]
	if !ok || p.ID == uuid.Nil {
		it, ok = s.byName[p.Name]
	}
	if !ok {
		return item.Item{}, false
	}
	return it.Clone(), true
}

// snapshot is the YAML layout read by LoadYAML:
//
//	worlds:
//	  overworld: {storm: true, thunder: false}
//	players:
//	  steve: {kind: iron_axe, data: 0}
type snapshot struct {
	Worlds  map[string]Weather   `yaml:"worlds"`
	Players map[string]item.Item `yaml:"players"`
}

// LoadYAML merges a snapshot into the state. Players are keyed by name.
func (s *State) LoadYAML(r io.Reader) error {
	var snap snapshot
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode world snapshot: %w", err)
	}

	for name, w := range snap.Worlds {
		s.SetWeather(name, w)
	}
	for name, it := range snap.Players {
		if it.Kind == "" {
			return fmt.Errorf("player %s holds an item without a kind", name)
		}
		it.Kind = item.Normalize(it.Kind)
		if len(it.Enchantments) > 0 {
			ench := make(map[string]int, len(it.Enchantments))
			for name, level := range it.Enchantments {
				ench[item.Normalize(name)] = level
			}
			it.Enchantments = ench
		}
		s.Hold(flags.Player{Name: name}, it)
	}
	return nil
}
