package messages

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Render(t *testing.T) {
	c := NewCatalog()

	tests := []struct {
		name         string
		key          Key
		override     Override
		placeholders []Placeholder
		expected     string
		expectedOK   bool
	}{
		{
			name:         "default template",
			key:          HoldItem,
			placeholders: []Placeholder{P("{items}", "Iron Axe")},
			expected:     "You need to hold one of: Iron Axe",
			expectedOK:   true,
		},
		{
			name:         "override replaces template",
			key:          ModMoneySub,
			override:     NewOverride("You lost {money}!"),
			placeholders: []Placeholder{P("{money}", "2.50 coins")},
			expected:     "You lost 2.50 coins!",
			expectedOK:   true,
		},
		{
			name:       "false suppresses",
			key:        Weather,
			override:   NewOverride("false"),
			expectedOK: false,
		},
		{
			name:       "empty override renders empty",
			key:        Weather,
			override:   NewOverride(""),
			expected:   "",
			expectedOK: true,
		},
		{
			name:       "unknown key renders the key",
			key:        Key("flag.unknown"),
			expected:   "flag.unknown",
			expectedOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Render(tt.key, tt.override, tt.placeholders...)
			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestP(t *testing.T) {
	assert.Equal(t, "2.5", P("{amount}", 2.5).Value)
	assert.Equal(t, "0.5", P("{amount}", float32(0.5)).Value)
	assert.Equal(t, "-", P("{modifier}", '-').Value)
	assert.Equal(t, "7", P("{n}", 7).Value)
}

func TestCatalog_LoadYAML(t *testing.T) {
	c := NewCatalog()
	err := c.LoadYAML(strings.NewReader("flag.weather: \"Wait for {weather}.\"\n"))
	require.NoError(t, err)

	got, ok := c.Render(Weather, Override{}, P("{weather}", "thunder"))
	assert.True(t, ok)
	assert.Equal(t, "Wait for thunder.", got)

	tmpl, ok := c.Template(HoldItem)
	assert.True(t, ok)
	assert.Equal(t, defaultTemplates[HoldItem], tmpl)

	assert.Error(t, c.LoadYAML(strings.NewReader("- not\n- a map\n")))
}

func TestNewCatalog_DoesNotShareDefaults(t *testing.T) {
	a := NewCatalog()
	a.Set(HoldItem, "changed")

	b := NewCatalog()
	tmpl, _ := b.Template(HoldItem)
	assert.Equal(t, "You need to hold one of: {items}", tmpl)
}
