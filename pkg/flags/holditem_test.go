package flags

import (
	"testing"

	"github.com/jwebster45206/craft-flags/pkg/item"
	"github.com/jwebster45206/craft-flags/pkg/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldItem_Parse(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		kind         string
		data         *int
		enchantments map[string]int
		message      messages.Override
	}{
		{
			name:  "any data",
			value: "iron_pickaxe",
			kind:  "iron_pickaxe",
		},
		{
			name:  "exact data",
			value: "iron_axe:0",
			kind:  "iron_axe",
			data:  intPtr(0),
		},
		{
			name:  "wildcard data",
			value: "iron_axe:*",
			kind:  "iron_axe",
		},
		{
			name:         "enchantments",
			value:        "chainmail_helmet | protection_fire:1",
			kind:         "chainmail_helmet",
			enchantments: map[string]int{"protection_fire": 1},
		},
		{
			name:    "message only",
			value:   "iron_axe | Grab an axe!",
			kind:    "iron_axe",
			message: messages.NewOverride("Grab an axe!"),
		},
		{
			name:         "enchantments and message",
			value:        "bow | power:2, flame:1 | false",
			kind:         "bow",
			enchantments: map[string]int{"power": 2, "flame": 1},
			message:      messages.NewOverride("false"),
		},
		{
			name:  "trailing pipe keeps default message",
			value: "iron_axe |",
			kind:  "iron_axe",
		},
		{
			name:         "enchantments with blank message",
			value:        "bow | power:2 |  ",
			kind:         "bow",
			enchantments: map[string]int{"power": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc, rep := newParseContext(Services{})
			f := NewHoldItem()

			require.True(t, f.Parse(tt.value, pc))
			assert.Empty(t, rep.errors)

			patterns := f.Patterns()
			require.Len(t, patterns, 1)
			assert.Equal(t, tt.kind, patterns[0].Kind)
			assert.Equal(t, tt.data, patterns[0].Data)
			if tt.enchantments == nil {
				assert.Empty(t, patterns[0].Enchantments)
			} else {
				assert.Equal(t, tt.enchantments, patterns[0].Enchantments)
			}
			assert.Equal(t, tt.message, f.Message())
		})
	}
}

func TestHoldItem_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		message string
		detail  string
	}{
		{"unknown item", "iron_axx", "Flag @holditem has invalid item: iron_axx", "did you mean iron_axe?"},
		{"bad data", "iron_axe:99999", "Flag @holditem has invalid item: iron_axe:99999", "between 0 and 32767"},
		{"unknown enchantment", "bow | powr:1 | nope", "Flag @holditem has invalid enchantments: powr:1", "did you mean power?"},
		{"zero level", "bow | power:0", "Flag @holditem has invalid enchantments: power:0", "positive number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc, rep := newParseContext(Services{})
			f := NewHoldItem()

			assert.False(t, f.Parse(tt.value, pc))
			assert.Empty(t, f.Patterns())

			require.Len(t, rep.errors, 1)
			assert.Equal(t, tt.message, rep.errors[0].msg)
			require.Len(t, rep.errors[0].details, 1)
			assert.Contains(t, rep.errors[0].details[0], tt.detail)
		})
	}
}

func TestHoldItem_Check(t *testing.T) {
	pc, _ := newParseContext(Services{})
	f := NewHoldItem()
	require.True(t, f.Parse("iron_axe:0", pc))
	require.True(t, f.Parse("chainmail_helmet | protection_fire:1", pc))

	tests := []struct {
		name    string
		held    *item.Item
		blocked bool
	}{
		{"undamaged axe", &item.Item{Kind: "iron_axe", Data: 0}, false},
		{"damaged axe", &item.Item{Kind: "iron_axe", Data: 12}, true},
		{"enchanted helmet", &item.Item{Kind: "chainmail_helmet", Data: 40, Enchantments: map[string]int{"protection_fire": 3}}, false},
		{"plain helmet", &item.Item{Kind: "chainmail_helmet"}, true},
		{"other item", &item.Item{Kind: "torch", Amount: 16}, true},
		{"empty hand", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newFakeWorld()
			if tt.held != nil {
				w.held["steve"] = *tt.held
			}

			a := NewArgs(Services{World: w}).WithPlayer(Player{Name: "steve"})
			f.Check(a)
			assert.Equal(t, tt.blocked, a.HasReasons())
		})
	}
}

func TestHoldItem_CheckReason(t *testing.T) {
	pc, _ := newParseContext(Services{})
	f := NewHoldItem()
	require.True(t, f.Parse("iron_axe:0", pc))
	require.True(t, f.Parse("chainmail_helmet", pc))

	a := NewArgs(Services{World: newFakeWorld()}).WithPlayer(Player{Name: "steve"})
	f.Check(a)

	reasons := a.Reasons()
	require.Len(t, reasons, 1)
	text, ok := messages.NewCatalog().Render(reasons[0].Key, reasons[0].Override, reasons[0].Placeholders...)
	assert.True(t, ok)
	assert.Equal(t, "You need to hold one of: Iron Axe (data 0), Chainmail Helmet", text)
}

func TestHoldItem_CheckSuppressedMessage(t *testing.T) {
	pc, _ := newParseContext(Services{})
	f := NewHoldItem()
	require.True(t, f.Parse("iron_axe | false", pc))

	a := NewArgs(Services{World: newFakeWorld()}).WithPlayer(Player{Name: "steve"})
	f.Check(a)

	reasons := a.Reasons()
	require.Len(t, reasons, 1)
	_, ok := messages.NewCatalog().Render(reasons[0].Key, reasons[0].Override, reasons[0].Placeholders...)
	assert.False(t, ok)
}

func TestHoldItem_CheckMissingContext(t *testing.T) {
	f := NewHoldItem()
	f.AddPattern(item.Pattern{Kind: "iron_axe"})

	a := NewArgs(Services{World: newFakeWorld()})
	f.Check(a)
	require.Len(t, a.Reasons(), 1)
	assert.Equal(t, "Needs a player!", a.Reasons()[0].Text)
	assert.True(t, a.Reasons()[0].Custom())

	a = NewArgs(Services{}).WithPlayer(Player{Name: "steve"})
	f.Check(a)
	require.Len(t, a.Reasons(), 1)
	assert.Equal(t, "Needs world state!", a.Reasons()[0].Text)
}

func TestHoldItem_Clone(t *testing.T) {
	pc, _ := newParseContext(Services{})
	f := NewHoldItem()
	require.True(t, f.Parse("chainmail_helmet:3 | protection_fire:1", pc))

	c := f.Clone().(*HoldItem)
	require.True(t, f.Parse("iron_axe", pc))
	assert.Len(t, c.Patterns(), 1)
	assert.Len(t, f.Patterns(), 2)

	// Mutating what Patterns returns must not reach either flag.
	got := c.Patterns()
	*got[0].Data = 7
	got[0].Enchantments["protection_fire"] = 9
	assert.Equal(t, 3, *c.Patterns()[0].Data)
	assert.Equal(t, 1, f.Patterns()[0].Enchantments["protection_fire"])
}

func TestHoldItem_ApplyDoesNothing(t *testing.T) {
	f := NewHoldItem()
	f.AddPattern(item.Pattern{Kind: "iron_axe"})

	a := NewArgs(Services{})
	f.Apply(a)
	assert.Empty(t, a.Reasons())
	assert.Empty(t, a.Effects())
}

func intPtr(i int) *int {
	return &i
}
