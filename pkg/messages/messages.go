// Package messages holds the player-facing message templates used by recipe
// flags and renders them with placeholder substitution.
package messages

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Key names a message template.
type Key string

const (
	HoldItem    Key = "flag.holditem"
	Weather     Key = "flag.weather"
	ModMoneyAdd Key = "flag.modmoney.add"
	ModMoneySub Key = "flag.modmoney.sub"
	ModMoneySet Key = "flag.modmoney.set"
)

var defaultTemplates = map[Key]string{
	HoldItem:    "You need to hold one of: {items}",
	Weather:     "Can only be crafted in {weather} weather.",
	ModMoneyAdd: "Gained {money}.",
	ModMoneySub: "Lost {money}.",
	ModMoneySet: "Your money was set to {money}.",
}

// suppressLiteral is the override text that hides a message entirely.
const suppressLiteral = "false"

// Override is an optional author-supplied replacement for a default message.
type Override struct {
	Text    string
	Present bool
}

// NewOverride returns an override carrying text.
func NewOverride(text string) Override {
	return Override{Text: text, Present: true}
}

// Suppressed reports whether the author asked for no message at all.
func (o Override) Suppressed() bool {
	return o.Present && o.Text == suppressLiteral
}

// Placeholder is one {name} -> value substitution.
type Placeholder struct {
	Name  string
	Value string
}

// P builds a placeholder, formatting floats without trailing zeros.
func P(name string, value any) Placeholder {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case rune:
		s = string(v)
	default:
		s = fmt.Sprint(v)
	}
	return Placeholder{Name: name, Value: s}
}

// Fill replaces every placeholder name in tmpl with its value.
func Fill(tmpl string, placeholders ...Placeholder) string {
	if len(placeholders) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(placeholders)*2)
	for _, p := range placeholders {
		pairs = append(pairs, p.Name, p.Value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// Catalog maps keys to templates.
type Catalog struct {
	templates map[Key]string
}

// NewCatalog returns a catalog populated with the default templates.
func NewCatalog() *Catalog {
	return &Catalog{templates: maps.Clone(defaultTemplates)}
}

func (c *Catalog) Set(key Key, tmpl string) {
	c.templates[key] = tmpl
}

func (c *Catalog) Template(key Key) (string, bool) {
	tmpl, ok := c.templates[key]
	return tmpl, ok
}

// LoadYAML overrides templates from a flat "key: template" document.
func (c *Catalog) LoadYAML(r io.Reader) error {
	var doc map[string]string
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode messages: %w", err)
	}
	for k, v := range doc {
		c.templates[Key(k)] = v
	}
	return nil
}

// Render produces the text for key. The override, when present, replaces the
// template; a "false" override suppresses the message and ok is false.
// Unknown keys render as the key itself so a missing template stays visible.
func (c *Catalog) Render(key Key, override Override, placeholders ...Placeholder) (string, bool) {
	if override.Suppressed() {
		return "", false
	}

	tmpl := override.Text
	if !override.Present {
		var found bool
		tmpl, found = c.templates[key]
		if !found {
			tmpl = string(key)
		}
	}

	return Fill(tmpl, placeholders...), true
}
