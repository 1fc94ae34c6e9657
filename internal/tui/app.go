package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/showcase/internal/domain"
	"github.com/h0rv/showcase/internal/logger"
	"github.com/h0rv/showcase/internal/notify"
	"github.com/h0rv/showcase/internal/posts"
	"github.com/h0rv/showcase/internal/submit"
	"github.com/h0rv/showcase/internal/theme"
	"github.com/muesli/reflow/truncate"
)

const ansiReset = "\x1b[0m"

// Section is one of the page sections.
type Section int

const (
	SectionHome Section = iota
	SectionPosts
	SectionContact
)

var sectionNames = [...]string{
	SectionHome:    "Home",
	SectionPosts:   "Posts",
	SectionContact: "Contact",
}

// String returns the section title.
func (s Section) String() string {
	if int(s) < len(sectionNames) {
		return sectionNames[s]
	}
	return "Unknown"
}

var (
	navStyle = lipgloss.NewStyle().
			Padding(0, 1)

	emphasisStyle = lipgloss.NewStyle().
			Bold(true).
			Reverse(true)
)

// Deps are the collaborators of the app.
type Deps struct {
	Source    posts.Source
	Submitter submit.Submitter
	Cycle     *theme.Cycle
	BaseURL   string // Root of the browser links to posts
	Log       *logger.Logger
}

// AppModel is the root Bubble Tea model: the page with its three sections,
// the detail overlay and the toasts.
type AppModel struct {
	// Dependencies
	cycle *theme.Cycle
	log   *logger.Logger

	// Page surface the theme is applied to
	page *Page

	// Sections
	section Section
	posts   PostsModel
	form    FormModel
	detail  *DetailModel
	pending int // Post ID whose details are awaited, 0 when none
	toaster notify.Toaster

	// UI components
	keymap   KeyMap
	help     HelpModel
	showHelp bool

	// Theme trigger label
	themeLabel string
	labelGen   int

	// View state
	width  int
	height int
}

// NewAppModel creates the app and restores the persisted theme.
func NewAppModel(ctx context.Context, deps Deps) AppModel {
	cycle := deps.Cycle
	if cycle == nil {
		cycle = theme.NewCycle(domain.Themes(), nil, deps.Log)
	}
	submitter := deps.Submitter
	if submitter == nil {
		submitter = submit.NewSimulated(deps.Log)
	}

	m := AppModel{
		cycle:      cycle,
		log:        deps.Log,
		page:       NewPage(),
		posts:      NewPostsModel(ctx, deps.Source, deps.BaseURL, deps.Log),
		form:       NewFormModel(ctx, submitter, deps.Log),
		toaster:    notify.NewToaster(),
		keymap:     DefaultKeyMap(),
		help:       NewHelpModel(DefaultKeyMap()),
		themeLabel: theme.DefaultLabel,
	}

	theme.Apply(m.page, cycle.Current())
	if t, ok := cycle.Restore(m.page); ok {
		m.log.WithFields(map[string]any{"theme": t.Name}).Debug("restored theme")
	}
	m.syncAccent()
	return m
}

// Init initializes the app model.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.posts.Init(), m.form.Init(), tea.WindowSize())
}

// Update handles messages and routes them to the sections.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		var postsCmd, formCmd, detailCmd tea.Cmd
		m.posts, postsCmd = m.posts.Update(msg)
		m.form, formCmd = m.form.Update(msg)
		if m.detail != nil {
			var d DetailModel
			d, detailCmd = m.detail.Update(msg)
			m.detail = &d
		}
		return m, tea.Batch(postsCmd, formCmd, detailCmd)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		if m.detail != nil {
			d, cmd := m.detail.Update(msg)
			m.detail = &d
			return m, cmd
		}
		return m, nil

	case ErrorMsg:
		m.log.Error(msg.Err, "unexpected error")
		return m, toast(msg.Err.Error(), domain.KindError)

	case NotifyMsg:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Push(msg.Message, msg.Kind)
		return m, cmd

	case notify.ExpireMsg, notify.RemoveMsg:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Update(msg)
		return m, cmd

	case themeLabelResetMsg:
		// A newer theme change owns the label.
		if msg.gen == m.labelGen {
			m.themeLabel = theme.DefaultLabel
		}
		return m, nil

	case detailPreviewMsg:
		d := NewDetailModel(msg.post, m.width, m.height, m.page.Accent())
		d.SetLoading(true)
		m.detail = &d
		m.pending = msg.post.ID
		return m, nil

	case postDetailMsg:
		awaited := msg.id == m.pending
		if awaited {
			m.pending = 0
		}
		if msg.err != nil {
			fields := map[string]any{"id": msg.id}
			if errors.Is(msg.err, posts.ErrNotFound) {
				m.log.WithFields(fields).Warn("post not found")
			} else {
				m.log.WithFields(fields).Error(msg.err, "error fetching post details")
			}
			if awaited {
				m.detail = nil
			}
			return m, toast(detailFailToast, domain.KindError)
		}
		// Dismissed or superseded previews drop the result.
		if !awaited {
			return m, nil
		}
		d := NewDetailModel(msg.post, m.width, m.height, m.page.Accent())
		m.detail = &d
		return m, nil

	case closeDetailMsg:
		m.detail = nil
		m.pending = 0
		return m, nil
	}

	// Everything else (results, timers, spinner and cursor ticks) reaches
	// both sections, whichever is shown.
	var postsCmd, formCmd tea.Cmd
	m.posts, postsCmd = m.posts.Update(msg)
	m.form, formCmd = m.form.Update(msg)
	return m, tea.Batch(postsCmd, formCmd)
}

// handleKeyPress processes keyboard input
func (m AppModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		return m, tea.Quit
	}

	// The overlay takes every key while open.
	if m.detail != nil {
		d, cmd := m.detail.Update(msg)
		m.detail = &d
		return m, cmd
	}

	if m.showHelp {
		switch msg.String() {
		case "?", "q", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	// Global keys that never collide with typing.
	switch msg.String() {
	case "ctrl+t":
		return m.advanceTheme()
	case "ctrl+x":
		m.toaster = m.toaster.CloseLatest()
		return m, nil
	case "f1":
		return m.switchSection(SectionHome)
	case "f2":
		return m.switchSection(SectionPosts)
	case "f3":
		return m.switchSection(SectionContact)
	}

	// The form owns plain keys while it is shown.
	if m.section == SectionContact {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keymap.Home):
		return m.switchSection(SectionHome)
	case key.Matches(msg, m.keymap.Posts):
		return m.switchSection(SectionPosts)
	case key.Matches(msg, m.keymap.Contact):
		return m.switchSection(SectionContact)
	case key.Matches(msg, m.keymap.Theme):
		return m.advanceTheme()
	}

	switch m.section {
	case SectionHome:
		if msg.String() == "enter" {
			return m.advanceTheme()
		}
	case SectionPosts:
		var cmd tea.Cmd
		m.posts, cmd = m.posts.Update(msg)
		return m, cmd
	}
	return m, nil
}

// switchSection shows section s.
func (m AppModel) switchSection(s Section) (tea.Model, tea.Cmd) {
	m.section = s
	return m, nil
}

// advanceTheme moves to the next theme, announces it on the trigger and
// schedules the label revert.
func (m AppModel) advanceTheme() (tea.Model, tea.Cmd) {
	t := m.cycle.Advance(m.page)
	m.syncAccent()

	m.labelGen++
	m.themeLabel = theme.Label(t)
	gen := m.labelGen
	return m, tea.Tick(theme.LabelResetDelay, func(time.Time) tea.Msg {
		return themeLabelResetMsg{gen: gen}
	})
}

// syncAccent pushes the page accent into the sections.
func (m *AppModel) syncAccent() {
	accent := m.page.Accent()
	m.posts.SetAccent(accent)
	m.form.SetAccent(accent)
}

// ThemeLabel returns the current label of the theme trigger.
func (m AppModel) ThemeLabel() string {
	return m.themeLabel
}

// View renders the page.
func (m AppModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	var view string
	if m.detail != nil {
		view = m.detail.View()
	} else {
		view = m.renderPage(width)
	}

	return overlayTop(view, m.toaster.View(width))
}

// renderPage renders the navigation, the current section and the key hints.
func (m AppModel) renderPage(width int) string {
	var sections []string
	sections = append(sections, m.renderNav(width))

	switch {
	case m.showHelp:
		sections = append(sections, m.help.View(width, m.page.Accent()))
	case m.section == SectionHome:
		sections = append(sections, m.renderHome(width))
	case m.section == SectionPosts:
		sections = append(sections, "", m.posts.View())
	case m.section == SectionContact:
		sections = append(sections, "", m.form.View())
	}

	sections = append(sections, HelpStyle.Render(m.help.ShortView(width, m.section)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderNav renders the section tabs.
func (m AppModel) renderNav(width int) string {
	accent := m.page.Accent()
	tabs := make([]string, 0, len(sectionNames))
	for i, name := range sectionNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Section(i) == m.section {
			tabs = append(tabs, navStyle.Bold(true).Foreground(accent).Underline(true).Render(label))
		} else {
			tabs = append(tabs, navStyle.Foreground(lipgloss.Color("245")).Render(label))
		}
	}
	nav := strings.Join(tabs, " ")
	return lipgloss.NewStyle().Width(width).Render(nav)
}

// renderHome renders the hero and the theme trigger.
func (m AppModel) renderHome(width int) string {
	hero := m.page.Hero(width, "Welcome to the Showcase")

	label := m.themeLabel
	trigger := button(label, m.page.Accent(), true)
	if label != theme.DefaultLabel {
		trigger = emphasisStyle.Render(trigger)
	}

	current := dimStyle.Render("Current theme: " + m.cycle.Current().Name)
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		hero,
		"",
		trigger,
		current,
	)
}

// overlayTop draws the right-aligned lines of top over the first lines of
// base. Only the cells covered by a top line are replaced, so the start of the
// base line stays visible.
func overlayTop(base, top string) string {
	if top == "" {
		return base
	}
	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")
	for i, line := range topLines {
		if i >= len(baseLines) {
			baseLines = append(baseLines, line)
			continue
		}
		baseLines[i] = spliceRight(baseLines[i], line)
	}
	return strings.Join(baseLines, "\n")
}

// spliceRight keeps the cells of under left of the first visible cell of over.
func spliceRight(under, over string) string {
	content := strings.TrimLeft(over, " ")
	lead := len(over) - len(content)
	if lead == 0 {
		return over
	}

	prefix := truncate.String(under, uint(lead))
	if strings.Contains(prefix, "\x1b[") {
		prefix += ansiReset
	}
	if w := lipgloss.Width(prefix); w < lead {
		prefix += strings.Repeat(" ", lead-w)
	}
	return prefix + content
}
