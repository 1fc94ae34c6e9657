package theme

import (
	"errors"
	"testing"

	"github.com/h0rv/showcase/internal/domain"
	"github.com/h0rv/showcase/internal/logger"
	"github.com/h0rv/showcase/internal/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSurface records what was applied.
type fakeSurface struct {
	classes    map[string]bool
	background string
	clears     int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{classes: map[string]bool{"container": true}}
}

func (f *fakeSurface) ClearThemeClasses() {
	f.clears++
	for c := range f.classes {
		if IsThemeClass(c) {
			delete(f.classes, c)
		}
	}
}

func (f *fakeSurface) AddClass(class string) { f.classes[class] = true }

func (f *fakeSurface) SetHeroBackground(bg string) { f.background = bg }

// countingStore counts writes and can fail them.
type countingStore struct {
	*prefs.MemoryStore
	sets    int
	failSet bool
}

func (c *countingStore) Set(key, value string) error {
	c.sets++
	if c.failSet {
		return errors.New("quota exceeded")
	}
	return c.MemoryStore.Set(key, value)
}

func TestAdvance_CyclicClosure(t *testing.T) {
	themes := domain.Themes()
	for start := range themes {
		c := NewCycle(themes, prefs.NewMemoryStore(), logger.Nop())
		c.index = start
		s := newFakeSurface()

		for i := 0; i < c.Len(); i++ {
			c.Advance(s)
		}
		assert.Equal(t, start, c.Index(), "start index %d", start)
		assert.Equal(t, themes[start], c.Current())
	}
}

func TestAdvance_AppliesAndPersists(t *testing.T) {
	store := &countingStore{MemoryStore: prefs.NewMemoryStore()}
	c := NewCycle(domain.Themes(), store, logger.Nop())
	s := newFakeSurface()

	got := c.Advance(s)
	assert.Equal(t, "dark", got.Name)
	assert.True(t, s.classes["dark-theme"])
	assert.True(t, s.classes["container"], "non-theme classes are kept")
	assert.Equal(t, got.Background, s.background)

	v, err := store.Get(prefs.ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	got = c.Advance(s)
	assert.Equal(t, "ocean", got.Name)
	assert.False(t, s.classes["dark-theme"], "previous theme class removed")
	assert.True(t, s.classes["ocean-theme"])
	assert.Equal(t, 2, store.sets)
}

func TestAdvance_WrapsToDefaultWithoutClass(t *testing.T) {
	c := NewCycle(domain.Themes(), nil, logger.Nop())
	s := newFakeSurface()

	for i := 0; i < c.Len(); i++ {
		c.Advance(s)
	}
	assert.Equal(t, "light", c.Current().Name)
	for class := range s.classes {
		assert.False(t, IsThemeClass(class), "unexpected theme class %q", class)
	}
}

func TestAdvance_StorageFailureDoesNotBlock(t *testing.T) {
	store := &countingStore{MemoryStore: prefs.NewMemoryStore(), failSet: true}
	c := NewCycle(domain.Themes(), store, logger.Nop())
	s := newFakeSurface()

	assert.NotPanics(t, func() { c.Advance(s) })
	assert.Equal(t, "dark", c.Current().Name)
	assert.True(t, s.classes["dark-theme"])
}

func TestRestore_KnownName(t *testing.T) {
	store := &countingStore{MemoryStore: prefs.NewMemoryStore()}
	require.NoError(t, store.MemoryStore.Set(prefs.ThemeKey, "sunset"))

	c := NewCycle(domain.Themes(), store, logger.Nop())
	s := newFakeSurface()

	got, ok := c.Restore(s)
	require.True(t, ok)
	assert.Equal(t, "sunset", got.Name)
	assert.Equal(t, 3, c.Index())
	assert.True(t, s.classes["sunset-theme"])
	assert.Equal(t, got.Background, s.background)
	assert.Equal(t, 0, store.sets, "restore must not persist")

	// The cycle continues from the restored theme.
	assert.Equal(t, "forest", c.Advance(s).Name)
}

func TestRestore_UnknownOrMissing(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		c := NewCycle(domain.Themes(), prefs.NewMemoryStore(), logger.Nop())
		s := newFakeSurface()

		got, ok := c.Restore(s)
		assert.False(t, ok)
		assert.Equal(t, "light", got.Name)
		assert.Equal(t, 0, s.clears, "nothing applied")
		assert.Empty(t, s.background)
	})

	t.Run("unknown", func(t *testing.T) {
		store := prefs.NewMemoryStore()
		require.NoError(t, store.Set(prefs.ThemeKey, "neon"))
		c := NewCycle(domain.Themes(), store, logger.Nop())
		s := newFakeSurface()

		got, ok := c.Restore(s)
		assert.False(t, ok)
		assert.Equal(t, "light", got.Name)
		assert.Equal(t, 0, c.Index())
		assert.Equal(t, 0, s.clears)
	})
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Theme: Ocean", Label(domain.Theme{Name: "ocean"}))
}

func TestIsThemeClass(t *testing.T) {
	assert.True(t, IsThemeClass("dark-theme"))
	assert.True(t, IsThemeClass("forest-theme"))
	assert.False(t, IsThemeClass("theme"))
	assert.False(t, IsThemeClass("container"))
}

func TestParseStops(t *testing.T) {
	assert.Equal(t, []string{"#667eea", "#764ba2"}, ParseStops("linear-gradient(135deg, #667eea 0%, #764ba2 100%)"))
	assert.Empty(t, ParseStops("none"))
}
