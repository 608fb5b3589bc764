package world

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jwebster45206/craft-flags/pkg/flags"
	"github.com/jwebster45206/craft-flags/pkg/item"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_SetCondition(t *testing.T) {
	tests := []struct {
		condition flags.Condition
	}{
		{flags.Clear},
		{flags.Downfall},
		{flags.Thunder},
	}

	for _, tt := range tests {
		t.Run(tt.condition.String(), func(t *testing.T) {
			s := New()
			s.SetCondition("overworld", tt.condition)
			assert.Equal(t, tt.condition, flags.Observe(s, "overworld"))
		})
	}
}

func TestState_UnknownWorldIsClear(t *testing.T) {
	s := New()
	assert.False(t, s.HasStorm("nether"))
	assert.False(t, s.IsThundering("nether"))
}

func TestState_HeldItem(t *testing.T) {
	s := New()
	steve := flags.Player{ID: uuid.New(), Name: "steve"}
	alex := flags.Player{Name: "alex"}

	s.Hold(steve, item.Item{Kind: "iron_axe", Enchantments: map[string]int{"sharpness": 2}})
	s.Hold(alex, item.Item{Kind: "torch", Amount: 3})

	held, ok := s.HeldItem(steve)
	require.True(t, ok)
	assert.Equal(t, "iron_axe", held.Kind)

	// Copies are returned.
	held.Enchantments["sharpness"] = 5
	again, _ := s.HeldItem(steve)
	assert.Equal(t, 2, again.Enchantments["sharpness"])

	held, ok = s.HeldItem(alex)
	require.True(t, ok)
	assert.Equal(t, 3, held.Amount)

	_, ok = s.HeldItem(flags.Player{ID: uuid.New(), Name: "herobrine"})
	assert.False(t, ok)

	s.EmptyHand(steve)
	_, ok = s.HeldItem(steve)
	assert.False(t, ok)
}

func TestState_LoadYAML(t *testing.T) {
	doc := `
worlds:
  overworld: {storm: true, thunder: true}
  desert: {storm: false}
players:
  steve:
    kind: Chainmail Helmet
    data: 4
    enchantments:
      protection_fire: 2
`
	s := New()
	require.NoError(t, s.LoadYAML(strings.NewReader(doc)))

	assert.Equal(t, flags.Thunder, flags.Observe(s, "overworld"))
	assert.Equal(t, flags.Clear, flags.Observe(s, "desert"))

	held, ok := s.HeldItem(flags.Player{Name: "steve"})
	require.True(t, ok)
	assert.Equal(t, item.Item{Kind: "chainmail_helmet", Data: 4, Enchantments: map[string]int{"protection_fire": 2}}, held)

	assert.NoError(t, New().LoadYAML(strings.NewReader("")))
	assert.Error(t, New().LoadYAML(strings.NewReader("players:\n  steve: {data: 1}\n")))
	assert.Error(t, New().LoadYAML(strings.NewReader("worlds: [")))
}

func TestState_LoadYAMLNormalizesEnchantments(t *testing.T) {
	doc := `
players:
  alex:
    kind: chainmail_helmet
    enchantments:
      Protection_Fire: 2
      fire aspect: 1
`
	s := New()
	require.NoError(t, s.LoadYAML(strings.NewReader(doc)))

	held, ok := s.HeldItem(flags.Player{Name: "alex"})
	require.True(t, ok)
	assert.Equal(t, map[string]int{"protection_fire": 2, "fire_aspect": 1}, held.Enchantments)

	pattern, err := item.DefaultCatalog().ParsePattern("chainmail_helmet")
	require.NoError(t, err)
	pattern.Enchantments = map[string]int{"protection_fire": 1}
	assert.True(t, pattern.Matches(held))
}

func TestState_Concurrent(t *testing.T) {
	s := New()
	p := flags.Player{Name: "steve"}

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Hold(p, item.Item{Kind: "torch", Amount: i + 1})
			s.SetCondition("overworld", flags.Condition(i%3))
		}()
		go func() {
			defer wg.Done()
			s.HeldItem(p)
			flags.Observe(s, "overworld")
		}()
	}
	wg.Wait()

	held, ok := s.HeldItem(p)
	assert.True(t, ok)
	assert.Equal(t, "torch", held.Kind)
}
