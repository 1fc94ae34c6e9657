package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/showcase/internal/domain"
	"github.com/h0rv/showcase/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_ApplyTheme(t *testing.T) {
	p := NewPage()
	p.AddClass("container")

	themes := domain.Themes()
	theme.Apply(p, themes[3]) // sunset
	assert.Equal(t, []string{"container", "sunset-theme"}, p.Classes())
	assert.Equal(t, themes[3].Background, p.HeroBackground())
	assert.Equal(t, lipgloss.Color("#ff9a9e"), p.Accent())

	// The default theme has no class; only theme classes are removed.
	theme.Apply(p, themes[0])
	assert.Equal(t, []string{"container"}, p.Classes())
	assert.Equal(t, lipgloss.Color("#667eea"), p.Accent())
}

func TestPage_SetHeroBackgroundWithoutStops(t *testing.T) {
	p := NewPage()
	accent := p.Accent()

	p.SetHeroBackground("none")
	assert.Equal(t, "none", p.HeroBackground())
	assert.Equal(t, accent, p.Accent())
	assert.Len(t, strings.Split(p.Hero(20, "x"), "\n"), heroHeight)
}

func TestPage_Hero(t *testing.T) {
	p := NewPage()
	assert.Empty(t, p.Hero(0, "x"))

	hero := p.Hero(40, "Welcome")
	lines := strings.Split(hero, "\n")
	require.Len(t, lines, heroHeight)
	assert.Contains(t, lines[heroHeight/2], "Welcome")
	for _, line := range lines {
		assert.Equal(t, 40, lipgloss.Width(line))
	}
}

func TestPage_Blend(t *testing.T) {
	p := NewPage()
	p.SetHeroBackground("linear-gradient(90deg, #000000 0%, #ffffff 100%)")

	assert.Equal(t, "#000000", p.blend(0, 10).Hex())
	assert.Equal(t, "#ffffff", p.blend(9, 10).Hex())
	assert.Equal(t, "#000000", p.blend(0, 1).Hex())
}

func TestExpandHex(t *testing.T) {
	assert.Equal(t, "#aabbcc", expandHex("#abc"))
	assert.Equal(t, "#123456", expandHex("#123456"))
}

func TestOverlayTop(t *testing.T) {
	assert.Equal(t, "a\nb", overlayTop("a\nb", ""))
	assert.Equal(t, "X\nb", overlayTop("a\nb", "X"))
	assert.Equal(t, "X\nY\nZ", overlayTop("a", "X\nY\nZ"))

	// Right-aligned lines keep the start of the line underneath.
	assert.Equal(t, "1 Home 2 XY\nrow two", overlayTop("1 Home 2 Posts\nrow two", "         XY"))
	assert.Equal(t, "ab   X", overlayTop("ab", "     X"))
}
