// Package flags implements recipe flags: small rules attached to a crafting
// recipe that gate whether a craft may happen (Check) and apply side effects
// once it has (Apply).
//
// A flag is created from its registry definition, configured by one or more
// calls to Parse with the author's argument text, and deep-copied with Clone
// whenever its recipe is copied. At craft time every flag's Check runs against
// a fresh Args; only if no flag blocked does each flag's Apply run, in recipe
// order.
package flags

import (
	"context"
	"fmt"

	"github.com/jwebster45206/craft-flags/pkg/item"
)

// Flag is one configured rule attached to a recipe.
type Flag interface {
	// Name is the registry name of the flag kind.
	Name() string
	// Parse configures the flag from one occurrence's argument text. On
	// failure a diagnostic has been reported and the flag is unchanged.
	Parse(value string, pc *ParseContext) bool
	// Clone returns a copy sharing no mutable state with the receiver.
	Clone() Flag
	// Check adds at most one block-reason to a. It must not mutate anything
	// outside a.
	Check(a *Args)
	// Apply performs the flag's effect. It is only called when no flag of
	// the recipe blocked the attempt.
	Apply(a *Args)
}

// Lorer is implemented by flags that describe themselves on the crafted
// result.
type Lorer interface {
	Lore() string
}

// Reporter receives parse diagnostics.
type Reporter interface {
	Warning(msg string)
	// Error records a fatal problem and always returns false so callers can
	// write `return r.Error(...)`.
	Error(msg string, details ...string) bool
}

// Economy is a currency backend keyed by player name.
type Economy interface {
	Enabled() bool
	Balance(ctx context.Context, player string) (float64, error)
	Modify(ctx context.Context, player string, delta float64) error
	Format(amount float64) string
}

// World exposes the world state flags can inspect.
type World interface {
	HasStorm(world string) bool
	IsThundering(world string) bool
	HeldItem(p Player) (item.Item, bool)
}

// Services are the external collaborators a flag may use. Any of them may be
// nil; flags treat a nil service as unavailable.
type Services struct {
	Economy Economy
	World   World
}

// ParseContext carries what Parse needs besides the argument text.
type ParseContext struct {
	Reporter Reporter
	Services Services
	// Items resolves item names; nil means item.DefaultCatalog.
	Items *item.Catalog
}

func (pc *ParseContext) items() *item.Catalog {
	if pc == nil || pc.Items == nil {
		return item.DefaultCatalog()
	}
	return pc.Items
}

func (pc *ParseContext) services() Services {
	if pc == nil {
		return Services{}
	}
	return pc.Services
}

func (pc *ParseContext) warn(f Flag, format string, args ...any) {
	if pc == nil || pc.Reporter == nil {
		return
	}
	pc.Reporter.Warning(fmt.Sprintf("Flag @%s "+format, append([]any{f.Name()}, args...)...))
}

func (pc *ParseContext) fail(f Flag, msg string, details ...string) bool {
	if pc == nil || pc.Reporter == nil {
		return false
	}
	return pc.Reporter.Error(fmt.Sprintf("Flag @%s %s", f.Name(), msg), details...)
}
