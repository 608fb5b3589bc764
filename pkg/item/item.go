package item

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxData is the largest data (damage/variant) value an item can carry.
const MaxData = 32767

// Item is a concrete item stack, e.g. the one a player holds.
type Item struct {
	Kind         string         `json:"kind"`
	Data         int            `json:"data,omitempty"` // damage or variant value
	Amount       int            `json:"amount,omitempty"`
	Enchantments map[string]int `json:"enchantments,omitempty"`
}

// Clone returns a copy of the item that shares no maps with the original.
func (i Item) Clone() Item {
	c := i
	if i.Enchantments != nil {
		c.Enchantments = maps.Clone(i.Enchantments)
	}
	return c
}

// Pattern is a partial item description. Unset fields accept any value.
type Pattern struct {
	Kind string
	// Data, when non-nil, must equal the item's data value exactly.
	Data *int
	// Amount is informative only; a held stack of any size matches.
	Amount int
	// Enchantments maps enchantment name to the minimum level required.
	Enchantments map[string]int
}

// Clone deep-copies the pattern: the data pointer and the enchantment map
// are duplicated so the copy can be mutated independently.
func (p Pattern) Clone() Pattern {
	c := Pattern{
		Kind:   p.Kind,
		Amount: p.Amount,
	}
	if p.Data != nil {
		d := *p.Data
		c.Data = &d
	}
	if p.Enchantments != nil {
		c.Enchantments = maps.Clone(p.Enchantments)
	}
	return c
}

// Matches reports whether it satisfies the pattern. Kind must be equal, data
// is compared only when the pattern specifies it, and every required
// enchantment must be present at or above the required level.
func (p Pattern) Matches(it Item) bool {
	if p.Kind != it.Kind {
		return false
	}
	if p.Data != nil && *p.Data != it.Data {
		return false
	}
	for name, min := range p.Enchantments {
		if it.Enchantments[name] < min {
			return false
		}
	}
	return true
}

// String returns a human-readable description of the pattern, for example
// "Iron Axe (data 0)" or "Chainmail Helmet (Protection Fire 1+)".
func (p Pattern) String() string {
	caser := cases.Title(language.English)

	var sb strings.Builder
	if p.Amount > 1 {
		fmt.Fprintf(&sb, "%dx ", p.Amount)
	}
	sb.WriteString(caser.String(humanize(p.Kind)))

	var details []string
	if p.Data != nil {
		details = append(details, fmt.Sprintf("data %d", *p.Data))
	}
	for _, name := range slices.Sorted(maps.Keys(p.Enchantments)) {
		details = append(details, fmt.Sprintf("%s %d+", caser.String(humanize(name)), p.Enchantments[name]))
	}
	if len(details) > 0 {
		sb.WriteString(" (" + strings.Join(details, ", ") + ")")
	}
	return sb.String()
}

// Describe joins the descriptions of several patterns with ", ".
func Describe(patterns []Pattern) string {
	parts := make([]string, len(patterns))
	for i, p := range patterns {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

func humanize(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// Normalize converts an item or enchantment name to its canonical key:
// trimmed, lowercase, spaces and dashes replaced by underscores.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(name)
}
