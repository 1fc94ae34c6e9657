package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/showcase/internal/theme"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	heroHeight      = 3
	defaultAccent   = "#667eea"
	fallbackHeroEnd = "#764ba2"
)

// Page is the terminal rendition of the page root: the style classes on the
// root container and the hero backdrop. It implements theme.Surface.
type Page struct {
	classes        map[string]struct{}
	heroBackground string
	stops          []colorful.Color
}

var _ theme.Surface = (*Page)(nil)

// NewPage creates a page with no classes and the default hero backdrop.
func NewPage() *Page {
	p := &Page{classes: make(map[string]struct{})}
	p.SetHeroBackground("linear-gradient(135deg, " + defaultAccent + " 0%, " + fallbackHeroEnd + " 100%)")
	return p
}

// ClearThemeClasses removes every "<name>-theme" class.
func (p *Page) ClearThemeClasses() {
	for class := range p.classes {
		if theme.IsThemeClass(class) {
			delete(p.classes, class)
		}
	}
}

// AddClass adds class to the root container.
func (p *Page) AddClass(class string) {
	p.classes[class] = struct{}{}
}

// HasClass reports whether the root container carries class.
func (p *Page) HasClass(class string) bool {
	_, ok := p.classes[class]
	return ok
}

// Classes returns the root container classes, sorted.
func (p *Page) Classes() []string {
	out := make([]string, 0, len(p.classes))
	for class := range p.classes {
		out = append(out, class)
	}
	sort.Strings(out)
	return out
}

// SetHeroBackground sets the hero descriptor to background. Descriptors
// without parsable stops keep the previous colours.
func (p *Page) SetHeroBackground(background string) {
	p.heroBackground = background

	var stops []colorful.Color
	for _, hex := range theme.ParseStops(background) {
		c, err := colorful.Hex(expandHex(hex))
		if err != nil {
			continue
		}
		stops = append(stops, c)
	}
	if len(stops) > 0 {
		p.stops = stops
	}
}

// HeroBackground returns the descriptor last painted on the hero.
func (p *Page) HeroBackground() string {
	return p.heroBackground
}

// Accent is the first gradient stop, used for controls and highlights.
func (p *Page) Accent() lipgloss.Color {
	if len(p.stops) == 0 {
		return lipgloss.Color(defaultAccent)
	}
	return lipgloss.Color(p.stops[0].Hex())
}

// Hero renders the backdrop as a horizontal gradient band of width cells with
// content centred on its middle row.
func (p *Page) Hero(width int, content string) string {
	if width <= 0 {
		return ""
	}
	rows := make([]string, heroHeight)
	for row := range rows {
		var b strings.Builder
		for x := 0; x < width; x++ {
			b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(p.blend(x, width).Hex())).Render(" "))
		}
		rows[row] = b.String()
	}

	if content != "" {
		mid := p.blend(width/2, width)
		rows[heroHeight/2] = lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color(mid.Hex())).
			Render(content)
	}
	return strings.Join(rows, "\n")
}

// blend returns the gradient colour at column x of width.
func (p *Page) blend(x, width int) colorful.Color {
	switch len(p.stops) {
	case 0:
		c, _ := colorful.Hex(defaultAccent)
		return c
	case 1:
		return p.stops[0]
	}
	if width <= 1 {
		return p.stops[0]
	}

	t := float64(x) / float64(width-1)
	segments := len(p.stops) - 1
	pos := t * float64(segments)
	i := int(pos)
	if i >= segments {
		i = segments - 1
	}
	return p.stops[i].BlendLab(p.stops[i+1], pos-float64(i)).Clamped()
}

// expandHex turns "#abc" into "#aabbcc".
func expandHex(hex string) string {
	if len(hex) != 4 {
		return hex
	}
	return string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
}
