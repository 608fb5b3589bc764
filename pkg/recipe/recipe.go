// Package recipe attaches parsed flags to recipe templates and resolves craft
// attempts against them.
package recipe

import (
	"strings"

	"github.com/jwebster45206/craft-flags/pkg/flags"
)

// removeLiteral as a flag value detaches every flag of that kind.
const removeLiteral = "false"

// Recipe is a template: a name and its flags in attachment order.
type Recipe struct {
	Name  string
	flags []flags.Flag
}

func New(name string) *Recipe {
	return &Recipe{Name: name}
}

// Flags returns the attached flags in order. The instances are shared with
// the recipe; Clone the recipe before specializing them.
func (r *Recipe) Flags() []flags.Flag {
	out := make([]flags.Flag, len(r.flags))
	copy(out, r.flags)
	return out
}

// Flag returns the first attached flag of the named kind.
func (r *Recipe) Flag(name string) (flags.Flag, bool) {
	if i := r.index(name); i >= 0 {
		return r.flags[i], true
	}
	return nil, false
}

func (r *Recipe) index(name string) int {
	for i, f := range r.flags {
		if f.Name() == name {
			return i
		}
	}
	return -1
}

// Attach appends an already configured flag.
func (r *Recipe) Attach(f flags.Flag) {
	r.flags = append(r.flags, f)
}

// Remove detaches every flag of the named kind and returns how many there
// were.
func (r *Recipe) Remove(name string) int {
	kept := r.flags[:0]
	removed := 0
	for _, f := range r.flags {
		if f.Name() == name {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	clear(r.flags[len(kept):])
	r.flags = kept
	return removed
}

// AddFlag parses one "@name value" occurrence into the recipe. Cumulative
// kinds parse into the flag already attached; other kinds replace it in
// place. The value "false" removes the kind. On failure the recipe is
// unchanged and a diagnostic has been reported.
func (r *Recipe) AddFlag(reg *flags.Registry, name, value string, pc *flags.ParseContext) bool {
	def, ok := reg.Lookup(name)
	if !ok {
		_, err := reg.New(name)
		return report(pc, err.Error())
	}

	value = strings.TrimSpace(value)
	if strings.EqualFold(value, removeLiteral) {
		r.Remove(def.Name)
		return true
	}

	existing := r.index(def.Name)
	if def.Cumulative && existing >= 0 {
		return r.flags[existing].Parse(value, pc)
	}

	f := def.New()
	if !f.Parse(value, pc) {
		return false
	}
	if existing >= 0 {
		r.flags[existing] = f
	} else {
		r.flags = append(r.flags, f)
	}
	return true
}

func report(pc *flags.ParseContext, msg string, details ...string) bool {
	if pc == nil || pc.Reporter == nil {
		return false
	}
	return pc.Reporter.Error(msg, details...)
}

// Clone deep-copies the recipe and every attached flag.
func (r *Recipe) Clone() *Recipe {
	c := &Recipe{Name: r.Name}
	if r.flags != nil {
		c.flags = make([]flags.Flag, len(r.flags))
		for i, f := range r.flags {
			c.flags[i] = f.Clone()
		}
	}
	return c
}

// Lore collects the lines flags contribute to the crafted result.
func (r *Recipe) Lore() []string {
	var lines []string
	for _, f := range r.flags {
		if l, ok := f.(flags.Lorer); ok {
			lines = append(lines, l.Lore())
		}
	}
	return lines
}
