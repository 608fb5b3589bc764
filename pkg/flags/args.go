package flags

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/jwebster45206/craft-flags/pkg/messages"
)

// Player identifies the crafting player.
type Player struct {
	ID   uuid.UUID
	Name string
}

// Location is a position in a named world.
type Location struct {
	World   string
	X, Y, Z float64
}

// Notice is an unrendered message: either a keyed template with its override
// and placeholders, or a custom text used for missing-context diagnostics.
type Notice struct {
	Key          messages.Key
	Override     messages.Override
	Placeholders []messages.Placeholder
	Text         string
}

// Custom reports whether the notice carries fixed text instead of a template.
func (n Notice) Custom() bool {
	return n.Key == ""
}

// Args is the evaluation context of one craft attempt. Every fact is
// optional; flags check for presence before use.
type Args struct {
	ID       uuid.UUID
	Services Services

	ctx        context.Context
	player     *Player
	playerName *string
	location   *Location

	reasons []Notice
	effects []Notice
}

// NewArgs creates the context for a new attempt.
func NewArgs(svc Services) *Args {
	return &Args{
		ID:       uuid.New(),
		Services: svc,
		ctx:      context.Background(),
	}
}

// WithContext sets the context used for backend calls.
// Returns the Args for method chaining
func (a *Args) WithContext(ctx context.Context) *Args {
	a.ctx = ctx
	return a
}

func (a *Args) WithPlayer(p Player) *Args {
	a.player = &p
	return a
}

// WithPlayerName sets the player name independently of a player, e.g. for
// crafting done on a player's behalf while they are offline.
func (a *Args) WithPlayerName(name string) *Args {
	a.playerName = &name
	return a
}

func (a *Args) WithLocation(l Location) *Args {
	a.location = &l
	return a
}

func (a *Args) Context() context.Context {
	return a.ctx
}

func (a *Args) Player() (Player, bool) {
	if a.player == nil {
		return Player{}, false
	}
	return *a.player, true
}

// PlayerName returns the explicit player name, falling back to the player's
// own name.
func (a *Args) PlayerName() (string, bool) {
	if a.playerName != nil {
		return *a.playerName, true
	}
	if a.player != nil && a.player.Name != "" {
		return a.player.Name, true
	}
	return "", false
}

func (a *Args) Location() (Location, bool) {
	if a.location == nil {
		return Location{}, false
	}
	return *a.location, true
}

// AddReason records why the attempt is blocked.
func (a *Args) AddReason(key messages.Key, override messages.Override, placeholders ...messages.Placeholder) {
	a.reasons = append(a.reasons, Notice{Key: key, Override: override, Placeholders: placeholders})
}

// AddCustomReason records a fixed-text reason, used when a required fact is
// missing from the context.
func (a *Args) AddCustomReason(text string) {
	a.reasons = append(a.reasons, Notice{Text: text})
}

// AddEffect records a confirmation of an applied effect.
func (a *Args) AddEffect(key messages.Key, override messages.Override, placeholders ...messages.Placeholder) {
	a.effects = append(a.effects, Notice{Key: key, Override: override, Placeholders: placeholders})
}

func (a *Args) AddCustomEffect(text string) {
	a.effects = append(a.effects, Notice{Text: text})
}

func (a *Args) HasReasons() bool {
	return len(a.reasons) > 0
}

func (a *Args) Reasons() []Notice {
	return slices.Clone(a.reasons)
}

func (a *Args) Effects() []Notice {
	return slices.Clone(a.effects)
}
