package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/showcase/internal/domain"
	"github.com/muesli/reflow/wordwrap"
)

// Layout constants
const (
	maxDetailWidth  = 60
	detailChrome    = 4 // Border + padding on each axis
	detailMinHeight = 3
	detailFixedRows = 4 // Heading, blank, blank, footer
)

// Detail view styles
var (
	detailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	detailHeadingStyle = lipgloss.NewStyle().
				Bold(true)

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252"))

	detailBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))
)

// DetailModel is the post details overlay. It is dismissed with the close
// keys or a click outside its box.
type DetailModel struct {
	post     domain.Post
	viewport viewport.Model
	accent   lipgloss.Color
	loading  bool // Showing the card preview while the full post loads

	// Screen dimensions the box is centred in
	width  int
	height int
}

// NewDetailModel creates the overlay for post on a width x height screen.
func NewDetailModel(post domain.Post, width, height int, accent lipgloss.Color) DetailModel {
	vp := viewport.New(maxDetailWidth, detailMinHeight)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := DetailModel{
		post:     post,
		viewport: vp,
		accent:   accent,
	}
	m.resize(width, height)
	return m
}

// SetLoading marks the overlay as a preview awaiting the full post.
func (m *DetailModel) SetLoading(loading bool) {
	m.loading = loading
}

// Loading reports whether the overlay still shows the preview.
func (m DetailModel) Loading() bool {
	return m.loading
}

// Post returns the displayed post.
func (m DetailModel) Post() domain.Post {
	return m.post
}

// Update handles messages
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "q":
			return m, closeDetail
		case "j", "down":
			m.viewport.LineDown(1)
		case "k", "up":
			m.viewport.LineUp(1)
		case "g":
			m.viewport.GotoTop()
		case "G":
			m.viewport.GotoBottom()
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if !m.contains(msg.X, msg.Y) {
				return m, closeDetail
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func closeDetail() tea.Msg {
	return closeDetailMsg{}
}

// resize fits the box to a width x height screen and rewraps the content.
func (m *DetailModel) resize(width, height int) {
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}
	m.width = width
	m.height = height

	inner := width - detailChrome - 4 // Keep a margin around the box
	if inner > maxDetailWidth {
		inner = maxDetailWidth
	}
	if inner < minCardInner {
		inner = minCardInner
	}
	m.viewport.Width = inner

	content := m.renderContent(inner)
	lines := strings.Count(content, "\n") + 1
	maxLines := height - detailChrome - detailFixedRows - 2
	if maxLines < detailMinHeight {
		maxLines = detailMinHeight
	}
	if lines > maxLines {
		lines = maxLines
	}
	m.viewport.Height = lines
	m.viewport.SetContent(content)
}

// renderContent wraps the full title and body to width.
func (m DetailModel) renderContent(width int) string {
	title := detailTitleStyle.Render(wordwrap.String(m.post.Title, width))
	body := detailBodyStyle.Render(wordwrap.String(m.post.Body, width))
	return title + "\n\n" + body
}

// box renders the overlay box.
func (m DetailModel) box() string {
	inner := m.viewport.Width

	metaText := fmt.Sprintf("Post ID: %d | User ID: %d", m.post.ID, m.post.UserID)
	if m.loading {
		metaText += " | Loading..."
	}
	meta := dimStyle.Render(metaText)
	closeBtn := button("Close", m.accent, true)
	gap := inner - lipgloss.Width(meta) - lipgloss.Width(closeBtn)
	if gap < 1 {
		gap = 1
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		detailHeadingStyle.Foreground(m.accent).Render("Post Details"),
		"",
		m.viewport.View(),
		"",
		meta+strings.Repeat(" ", gap)+closeBtn,
	)
	return detailBoxStyle.BorderForeground(m.accent).Render(content)
}

// bounds returns the top-left corner and size of the box on screen.
func (m DetailModel) bounds() (x, y, w, h int) {
	b := m.box()
	w, h = lipgloss.Width(b), lipgloss.Height(b)
	// Same rounding as lipgloss.Place with Center alignment.
	x = int(math.Round(float64(m.width-w) * 0.5))
	y = int(math.Round(float64(m.height-h) * 0.5))
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y, w, h
}

// contains reports whether the screen cell (x, y) lies inside the box.
func (m DetailModel) contains(x, y int) bool {
	bx, by, bw, bh := m.bounds()
	return x >= bx && x < bx+bw && y >= by && y < by+bh
}

// View renders the box centred on the screen.
func (m DetailModel) View() string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.box(),
		lipgloss.WithWhitespaceChars(" "))
}
