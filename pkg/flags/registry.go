package flags

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	ErrUnknownFlag   = errors.New("unknown flag")
	ErrDuplicateFlag = errors.New("flag already registered")
)

// Definition describes a flag kind: how to construct it and how to document
// it. In Arguments and Examples, "{flag}" stands for the flag's name as an
// author writes it.
type Definition struct {
	Name    string
	Aliases []string
	// Cumulative flags accept repeated occurrences on one recipe, each parsed
	// into the same instance. Other flags replace the previous occurrence.
	Cumulative  bool
	Arguments   []string
	Description []string
	Examples    []string
	New         func() Flag
}

// Registry maps flag names and aliases to definitions.
type Registry struct {
	defs    map[string]Definition
	aliases map[string]string
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{
		defs:    make(map[string]Definition),
		aliases: make(map[string]string),
	}
}

// Builtin returns a registry holding the stock flags.
func Builtin() *Registry {
	r := NewRegistry()
	r.MustRegister(holdItemDefinition())
	r.MustRegister(modMoneyDefinition())
	r.MustRegister(weatherDefinition())
	return r
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "@"))
}

// Register adds def. Names and aliases are case-insensitive and must be
// unique across the registry.
func (r *Registry) Register(def Definition) error {
	if def.New == nil {
		return fmt.Errorf("flag %q has no constructor", def.Name)
	}
	name := normalizeName(def.Name)
	names := append([]string{name}, def.Aliases...)
	for _, n := range names {
		n = normalizeName(n)
		if _, taken := r.aliases[n]; taken {
			return fmt.Errorf("%w: %s", ErrDuplicateFlag, n)
		}
	}

	def.Name = name
	r.defs[name] = def
	r.order = append(r.order, name)
	for _, n := range names {
		r.aliases[normalizeName(n)] = name
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Lookup resolves a name or alias, with or without a leading "@".
func (r *Registry) Lookup(name string) (Definition, bool) {
	canonical, ok := r.aliases[normalizeName(name)]
	if !ok {
		return Definition{}, false
	}
	def := r.defs[canonical]
	def.Aliases = slices.Clone(def.Aliases)
	def.Arguments = slices.Clone(def.Arguments)
	def.Description = slices.Clone(def.Description)
	def.Examples = slices.Clone(def.Examples)
	return def, true
}

// Definitions returns every definition in registration order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		def, _ := r.Lookup(name)
		out = append(out, def)
	}
	return out
}

// New constructs an unconfigured flag by name or alias.
func (r *Registry) New(name string) (Flag, error) {
	def, ok := r.Lookup(name)
	if !ok {
		if s := r.Suggest(name); s != "" {
			return nil, fmt.Errorf("%w: @%s (did you mean @%s?)", ErrUnknownFlag, normalizeName(name), s)
		}
		return nil, fmt.Errorf("%w: @%s", ErrUnknownFlag, normalizeName(name))
	}
	return def.New(), nil
}

// Suggest returns the registered name or alias closest to name, or "" when
// nothing is close.
func (r *Registry) Suggest(name string) string {
	name = normalizeName(name)
	best, bestDist := "", len(name)/2+1
	for _, cand := range slices.Sorted(maps.Keys(r.aliases)) {
		if dist := levenshtein.ComputeDistance(name, cand); dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}
