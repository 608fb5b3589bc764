package recipe

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/jwebster45206/craft-flags/pkg/flags"
	"github.com/jwebster45206/craft-flags/pkg/messages"
)

// Renderer turns a keyed message into text. *messages.Catalog implements it.
type Renderer interface {
	Render(key messages.Key, override messages.Override, placeholders ...messages.Placeholder) (string, bool)
}

// Outcome is the resolved result of one craft attempt.
type Outcome struct {
	AttemptID uuid.UUID
	// Allowed is true when no flag blocked the attempt.
	Allowed bool
	// Reasons are the rendered block-reasons; suppressed messages are left out.
	Reasons []string
	// Effects are the rendered confirmations of applied flags.
	Effects []string
	// Problems are reasons raised while applying, e.g. a backend failure.
	// Effects applied before a problem are not rolled back.
	Problems []string
}

// Crafter resolves craft attempts.
type Crafter struct {
	renderer Renderer
	logger   *slog.Logger
}

// NewCrafter creates a crafter. A nil renderer uses the default message
// catalog.
func NewCrafter(renderer Renderer, logger *slog.Logger) *Crafter {
	if renderer == nil {
		renderer = messages.NewCatalog()
	}
	return &Crafter{renderer: renderer, logger: logger}
}

// Craft runs every flag's Check against a. If none blocked, every flag's
// Apply runs in recipe order.
func (c *Crafter) Craft(r *Recipe, a *flags.Args) Outcome {
	out := Outcome{AttemptID: a.ID}

	for _, f := range r.flags {
		f.Check(a)
	}
	if a.HasReasons() {
		out.Reasons = c.render(a.Reasons())
		if c.logger != nil {
			c.logger.Debug("Craft blocked",
				"attempt_id", a.ID.String(),
				"recipe", r.Name,
				"reasons", len(a.Reasons()))
		}
		return out
	}

	out.Allowed = true
	for _, f := range r.flags {
		f.Apply(a)
	}
	out.Effects = c.render(a.Effects())
	out.Problems = c.render(a.Reasons())

	if c.logger != nil {
		if len(out.Problems) > 0 {
			c.logger.Warn("Craft applied with problems",
				"attempt_id", a.ID.String(),
				"recipe", r.Name,
				"problems", out.Problems)
		} else {
			c.logger.Debug("Craft applied",
				"attempt_id", a.ID.String(),
				"recipe", r.Name,
				"effects", len(out.Effects))
		}
	}
	return out
}

func (c *Crafter) render(notices []flags.Notice) []string {
	var out []string
	for _, n := range notices {
		if n.Custom() {
			out = append(out, n.Text)
			continue
		}
		if text, ok := c.renderer.Render(n.Key, n.Override, n.Placeholders...); ok {
			out = append(out, text)
		}
	}
	return out
}
