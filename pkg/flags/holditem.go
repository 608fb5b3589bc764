package flags

import (
	"strings"

	"github.com/jwebster45206/craft-flags/pkg/item"
	"github.com/jwebster45206/craft-flags/pkg/messages"
)

const NameHoldItem = "holditem"

func holdItemDefinition() Definition {
	return Definition{
		Name:       NameHoldItem,
		Aliases:    []string{"hold"},
		Cumulative: true,
		Arguments: []string{
			"{flag} <item> | [enchantments] | [fail message]",
		},
		Description: []string{
			"Makes the recipe require the crafter to hold an item.",
			"",
			"This flag can be used more than once to add more items, the player will need to hold one of them to craft.",
			"",
			"The <item> argument can be in this format: material:data:amount",
			"Just like recipe results, not all values from the item are required; data may be * for any value.",
			"The optional enchantments argument lists minimum enchantment levels as name:level, separated by commas.",
			"",
			"Optionally you can set the 'fail message' argument to overwrite the failure message or set it to 'false' to hide it.",
			"In the fail message you can use the following variables:",
			"  {items} = the list of items that can be held.",
		},
		Examples: []string{
			"{flag} iron_pickaxe // any data/damage value",
			"{flag} iron_axe:0 // only undamaged axe!",
			"{flag} chainmail_helmet | protection_fire:1 // requires chain helmet with any level of damage and fire protection enchant level 1",
			"{flag} false // removes all previous statements",
		},
		New: func() Flag { return NewHoldItem() },
	}
}

// HoldItem requires the crafting player to hold an item matching any of its
// patterns.
type HoldItem struct {
	patterns []item.Pattern
	message  messages.Override
}

func NewHoldItem() *HoldItem {
	return &HoldItem{}
}

func (f *HoldItem) Name() string {
	return NameHoldItem
}

// Patterns returns a copy of the accepted item patterns.
func (f *HoldItem) Patterns() []item.Pattern {
	out := make([]item.Pattern, len(f.patterns))
	for i, p := range f.patterns {
		out[i] = p.Clone()
	}
	return out
}

func (f *HoldItem) AddPattern(p item.Pattern) {
	f.patterns = append(f.patterns, p.Clone())
}

func (f *HoldItem) Message() messages.Override {
	return f.message
}

func (f *HoldItem) SetMessage(o messages.Override) {
	f.message = o
}

// Parse appends one pattern. The text after the item is split on pipes: with
// two further segments they are enchantments and message; with one, it is
// read as enchantments when it has the "name:level" shape, otherwise as the
// message. A blank message keeps the default.
func (f *HoldItem) Parse(value string, pc *ParseContext) bool {
	itemText, rest, hasRest := strings.Cut(value, "|")

	var enchText string
	var message messages.Override
	if hasRest {
		if first, msg, hasMsg := strings.Cut(rest, "|"); hasMsg {
			enchText = first
			message = messageOverride(msg)
		} else if item.LooksLikeEnchantments(rest) {
			enchText = rest
		} else {
			message = messageOverride(rest)
		}
	}

	catalog := pc.items()
	pattern, err := catalog.ParsePattern(itemText)
	if err != nil {
		return pc.fail(f, "has invalid item: "+strings.TrimSpace(itemText), err.Error())
	}

	if strings.TrimSpace(enchText) != "" {
		ench, err := catalog.ParseEnchantments(enchText)
		if err != nil {
			return pc.fail(f, "has invalid enchantments: "+strings.TrimSpace(enchText), err.Error())
		}
		pattern.Enchantments = ench
	}

	f.patterns = append(f.patterns, pattern)
	if message.Present {
		f.message = message
	}
	return true
}

// Clone copies every pattern element-wise.
func (f *HoldItem) Clone() Flag {
	c := &HoldItem{message: f.message}
	if f.patterns != nil {
		c.patterns = make([]item.Pattern, len(f.patterns))
		for i, p := range f.patterns {
			c.patterns[i] = p.Clone()
		}
	}
	return c
}

func (f *HoldItem) Check(a *Args) {
	player, ok := a.Player()
	if !ok {
		a.AddCustomReason("Needs a player!")
		return
	}
	if a.Services.World == nil {
		a.AddCustomReason("Needs world state!")
		return
	}

	if held, ok := a.Services.World.HeldItem(player); ok {
		for _, p := range f.patterns {
			if p.Matches(held) {
				return
			}
		}
	}

	a.AddReason(messages.HoldItem, f.message, messages.P("{items}", item.Describe(f.patterns)))
}

// Apply does nothing; holding an item is a requirement only.
func (f *HoldItem) Apply(a *Args) {}
