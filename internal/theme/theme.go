// Package theme implements the theme cycle: an ordered, wrapping sequence of
// theme descriptors applied to a page surface and persisted as a preference.
package theme

import (
	"errors"
	"regexp"
	"time"

	"github.com/h0rv/showcase/internal/domain"
	"github.com/h0rv/showcase/internal/logger"
	"github.com/h0rv/showcase/internal/prefs"
	"github.com/h0rv/showcase/internal/textutil"
)

// DefaultLabel is the static label of the theme trigger.
const DefaultLabel = "Change Theme"

// LabelResetDelay is how long the trigger shows the new theme name.
const LabelResetDelay = 2000 * time.Millisecond

// Surface is the part of the page a theme is applied to.
type Surface interface {
	// ClearThemeClasses removes every theme class from the root container.
	ClearThemeClasses()
	// AddClass adds a style class to the root container.
	AddClass(class string)
	// SetHeroBackground paints the hero backdrop with a gradient descriptor.
	SetHeroBackground(background string)
}

// Cycle owns the current theme index. It is not safe for concurrent use;
// all calls come from the UI event loop.
type Cycle struct {
	themes []domain.Theme
	index  int
	store  prefs.Store
	log    *logger.Logger
}

// NewCycle creates a cycle over themes starting at index 0.
// A nil store disables persistence.
func NewCycle(themes []domain.Theme, store prefs.Store, log *logger.Logger) *Cycle {
	if len(themes) == 0 {
		themes = domain.Themes()
	}
	return &Cycle{
		themes: themes,
		store:  store,
		log:    log,
	}
}

// Current returns the active theme.
func (c *Cycle) Current() domain.Theme {
	return c.themes[c.index]
}

// Index returns the position of the active theme.
func (c *Cycle) Index() int {
	return c.index
}

// Len returns the number of themes in the cycle.
func (c *Cycle) Len() int {
	return len(c.themes)
}

// Advance activates the next theme, applies it to s and persists its name.
// A failed write is logged; the theme change still takes effect.
func (c *Cycle) Advance(s Surface) domain.Theme {
	c.index = (c.index + 1) % len(c.themes)
	t := c.themes[c.index]
	Apply(s, t)

	if c.store != nil {
		if err := c.store.Set(prefs.ThemeKey, t.Name); err != nil {
			c.log.Error(err, "failed to persist theme preference")
		}
	}
	c.log.WithFields(map[string]any{"theme": t.Name}).Info("theme changed")
	return t
}

// Restore reads the persisted theme and, if it names a known theme, activates
// and applies it without writing the preference again.
func (c *Cycle) Restore(s Surface) (domain.Theme, bool) {
	if c.store == nil {
		return c.Current(), false
	}

	name, err := c.store.Get(prefs.ThemeKey)
	if err != nil {
		if !errors.Is(err, prefs.ErrNotFound) {
			c.log.Error(err, "failed to read theme preference")
		}
		return c.Current(), false
	}

	for i, t := range c.themes {
		if t.Name == name {
			c.index = i
			Apply(s, t)
			return t, true
		}
	}

	c.log.WithFields(map[string]any{"theme": name}).Warn("ignoring unknown theme preference")
	return c.Current(), false
}

// Apply removes any previous theme class, adds the theme's class when set and
// paints the hero background.
func Apply(s Surface, t domain.Theme) {
	s.ClearThemeClasses()
	if t.Class != "" {
		s.AddClass(t.Class)
	}
	s.SetHeroBackground(t.Background)
}

// Label is the transient trigger label announcing t.
func Label(t domain.Theme) string {
	return "Theme: " + textutil.Capitalize(t.Name)
}

// IsThemeClass reports whether class is a theme style class ("<name>-theme").
func IsThemeClass(class string) bool {
	return themeClassPattern.MatchString(class)
}

var (
	themeClassPattern = regexp.MustCompile(`^\w+-theme$`)
	hexStopPattern    = regexp.MustCompile(`#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)
)

// ParseStops extracts the hex colour stops of a gradient descriptor in order.
func ParseStops(background string) []string {
	return hexStopPattern.FindAllString(background, -1)
}
