package item

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownKind        = errors.New("unknown item")
	ErrUnknownEnchantment = errors.New("unknown enchantment")
	ErrInvalidPattern     = errors.New("invalid item pattern")
)

var defaultKinds = []string{
	"wood_axe", "stone_axe", "iron_axe", "gold_axe", "diamond_axe",
	"wood_pickaxe", "stone_pickaxe", "iron_pickaxe", "gold_pickaxe", "diamond_pickaxe",
	"wood_sword", "stone_sword", "iron_sword", "gold_sword", "diamond_sword",
	"wood_spade", "stone_spade", "iron_spade", "gold_spade", "diamond_spade",
	"leather_helmet", "chainmail_helmet", "iron_helmet", "gold_helmet", "diamond_helmet",
	"leather_chestplate", "chainmail_chestplate", "iron_chestplate", "diamond_chestplate",
	"bow", "fishing_rod", "shears", "flint_and_steel", "compass", "clock",
	"stick", "torch", "book", "paper", "bucket", "water_bucket", "lava_bucket",
	"iron_ingot", "gold_ingot", "diamond", "emerald", "coal", "wool",
}

var defaultEnchantments = []string{
	"protection", "protection_fire", "protection_fall", "protection_explosions",
	"protection_projectile", "respiration", "aqua_affinity", "thorns",
	"sharpness", "smite", "bane_of_arthropods", "knockback", "fire_aspect", "looting",
	"efficiency", "silk_touch", "unbreaking", "fortune",
	"power", "punch", "flame", "infinity", "luck", "lure", "mending",
}

// enchantToken recognizes a single "name:level" enchantment requirement.
var enchantToken = regexp.MustCompile(`^[a-z_]+\s*:\s*\d+$`)

// Catalog resolves item and enchantment names written by recipe authors.
type Catalog struct {
	kinds        map[string]struct{}
	enchantments map[string]struct{}
}

// NewCatalog creates a catalog with the given item kinds and enchantments.
func NewCatalog(kinds, enchantments []string) *Catalog {
	c := &Catalog{
		kinds:        make(map[string]struct{}),
		enchantments: make(map[string]struct{}),
	}
	c.AddKinds(kinds...)
	c.AddEnchantments(enchantments...)
	return c
}

// DefaultCatalog returns a catalog of the stock item kinds and enchantments.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultKinds, defaultEnchantments)
}

func (c *Catalog) AddKinds(kinds ...string) {
	for _, k := range kinds {
		c.kinds[Normalize(k)] = struct{}{}
	}
}

func (c *Catalog) AddEnchantments(names ...string) {
	for _, n := range names {
		c.enchantments[Normalize(n)] = struct{}{}
	}
}

// LoadYAML extends the catalog from a document of the form
//
//	kinds: [copper_axe, ...]
//	enchantments: [swift_sneak, ...]
func (c *Catalog) LoadYAML(r io.Reader) error {
	var doc struct {
		Kinds        []string `yaml:"kinds"`
		Enchantments []string `yaml:"enchantments"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode item catalog: %w", err)
	}
	c.AddKinds(doc.Kinds...)
	c.AddEnchantments(doc.Enchantments...)
	return nil
}

func (c *Catalog) HasKind(kind string) bool {
	_, ok := c.kinds[Normalize(kind)]
	return ok
}

func (c *Catalog) HasEnchantment(name string) bool {
	_, ok := c.enchantments[Normalize(name)]
	return ok
}

// ParsePattern parses "kind[:data[:amount]]". Data may be "*" for any value.
func (c *Catalog) ParsePattern(text string) (Pattern, error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) > 3 {
		return Pattern{}, fmt.Errorf("%w: too many ':' separated values in %q", ErrInvalidPattern, text)
	}

	kind := Normalize(parts[0])
	if kind == "" {
		return Pattern{}, fmt.Errorf("%w: missing item name", ErrInvalidPattern)
	}
	if !c.HasKind(kind) {
		if s := suggest(kind, c.kinds); s != "" {
			return Pattern{}, fmt.Errorf("%w: %s (did you mean %s?)", ErrUnknownKind, kind, s)
		}
		return Pattern{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	p := Pattern{Kind: kind}

	if len(parts) > 1 {
		raw := strings.TrimSpace(parts[1])
		if raw != "*" && raw != "" {
			data, err := strconv.Atoi(raw)
			if err != nil || data < 0 || data > MaxData {
				return Pattern{}, fmt.Errorf("%w: data value %q must be between 0 and %d", ErrInvalidPattern, raw, MaxData)
			}
			p.Data = &data
		}
	}

	if len(parts) > 2 {
		raw := strings.TrimSpace(parts[2])
		amount, err := strconv.Atoi(raw)
		if err != nil || amount < 1 {
			return Pattern{}, fmt.Errorf("%w: amount %q must be a positive number", ErrInvalidPattern, raw)
		}
		p.Amount = amount
	}

	return p, nil
}

// ParseItem builds a concrete item from "kind[:data[:amount]]" and optional
// "name:level, ..." enchantments. A wildcard or missing data value means 0.
func (c *Catalog) ParseItem(text, enchantments string) (Item, error) {
	p, err := c.ParsePattern(text)
	if err != nil {
		return Item{}, err
	}

	it := Item{Kind: p.Kind, Amount: p.Amount}
	if p.Data != nil {
		it.Data = *p.Data
	}
	if strings.TrimSpace(enchantments) != "" {
		ench, err := c.ParseEnchantments(enchantments)
		if err != nil {
			return Item{}, err
		}
		it.Enchantments = ench
	}
	return it, nil
}

// LooksLikeEnchantments reports whether text has the shape of an enchantment
// clause: comma separated "name:level" tokens.
func LooksLikeEnchantments(text string) bool {
	text = strings.TrimSpace(strings.ToLower(text))
	if text == "" {
		return false
	}
	for _, tok := range strings.Split(text, ",") {
		if !enchantToken.MatchString(strings.TrimSpace(tok)) {
			return false
		}
	}
	return true
}

// ParseEnchantments parses "name:level, name:level" into minimum levels.
func (c *Catalog) ParseEnchantments(text string) (map[string]int, error) {
	out := make(map[string]int)
	for _, tok := range strings.Split(text, ",") {
		name, rawLevel, ok := strings.Cut(strings.TrimSpace(tok), ":")
		if !ok {
			return nil, fmt.Errorf("%w: enchantment %q needs a level", ErrInvalidPattern, tok)
		}
		name = Normalize(name)
		if !c.HasEnchantment(name) {
			if s := suggest(name, c.enchantments); s != "" {
				return nil, fmt.Errorf("%w: %s (did you mean %s?)", ErrUnknownEnchantment, name, s)
			}
			return nil, fmt.Errorf("%w: %s", ErrUnknownEnchantment, name)
		}
		level, err := strconv.Atoi(strings.TrimSpace(rawLevel))
		if err != nil || level < 1 {
			return nil, fmt.Errorf("%w: enchantment level %q must be a positive number", ErrInvalidPattern, rawLevel)
		}
		out[name] = level
	}
	return out, nil
}

// suggest returns the closest known name within a small edit distance.
func suggest(name string, known map[string]struct{}) string {
	best, bestDist := "", len(name)/2+1
	for cand := range known {
		dist := levenshtein.ComputeDistance(name, cand)
		if dist < bestDist || (dist == bestDist && best != "" && cand < best) {
			best, bestDist = cand, dist
		}
	}
	return best
}
