package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/showcase/internal/domain"
	"github.com/h0rv/showcase/internal/logger"
	"github.com/h0rv/showcase/internal/posts"
	"github.com/h0rv/showcase/internal/store"
	"github.com/h0rv/showcase/internal/textutil"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pkg/browser"
)

// Layout constants
const (
	cardWidth     = 34 // Outer width including border
	cardBodyLines = 3
	minCardInner  = 16
)

// Copy shown by the posts section.
const (
	fetchSuccessToast = "Data fetched successfully!"
	fetchFailureToast = "Failed to fetch data. Please try again."
	detailFailToast   = "Failed to load post details"
	fetchErrorHeading = "Error!"
	fetchErrorText    = "Failed to fetch data from the API. Please check your internet connection and try again."
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true)

	cardBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246"))

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	errorPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)
)

// PostsModel is the posts section: the fetch trigger, the card grid and the
// inline error panel.
type PostsModel struct {
	// Dependencies
	source  posts.Source
	store   *store.Store
	ctx     context.Context
	log     *logger.Logger
	baseURL string

	// UI components
	spinner spinner.Model

	// View state
	selected int
	width    int
	height   int
	accent   lipgloss.Color
}

// NewPostsModel creates the posts section over source. baseURL roots the
// browser links of the cards.
func NewPostsModel(ctx context.Context, source posts.Source, baseURL string, log *logger.Logger) PostsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return PostsModel{
		source:  source,
		store:   store.New(posts.ListLimit),
		ctx:     ctx,
		log:     log,
		baseURL: baseURL,
		spinner: sp,
		accent:  lipgloss.Color(defaultAccent),
	}
}

// Init initializes the section.
func (m PostsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m PostsModel) Update(msg tea.Msg) (PostsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.store.State() != store.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case postsFetchedMsg:
		if msg.err != nil {
			m.store.Fail(msg.err)
			m.log.Error(msg.err, "error fetching posts")
			return m, toast(fetchFailureToast, domain.KindError)
		}
		m.store.Complete(msg.posts)
		m.selected = 0
		m.log.WithFields(map[string]any{"count": m.store.Len()}).Info("posts fetched")
		return m, toast(fetchSuccessToast, domain.KindSuccess)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m PostsModel) handleKeyPress(msg tea.KeyMsg) (PostsModel, tea.Cmd) {
	switch msg.String() {
	case "f":
		return m.trigger()
	case "h", "left":
		(&m).moveSelection(-1)
	case "l", "right":
		(&m).moveSelection(1)
	case "k", "up":
		(&m).moveSelection(-m.columns())
	case "j", "down":
		(&m).moveSelection(m.columns())
	case "enter":
		if p, ok := m.selectedPost(); ok {
			return m, m.openDetail(p.ID)
		}
	case "o":
		if p, ok := m.selectedPost(); ok {
			url := posts.URL(m.baseURL, p.ID)
			if err := browser.OpenURL(url); err != nil {
				return m, func() tea.Msg {
					return ErrorMsg{Err: fmt.Errorf("failed to open %s: %w", url, err)}
				}
			}
		}
	}
	return m, nil
}

// trigger presses the fetch trigger. It does nothing while a fetch is in flight.
func (m PostsModel) trigger() (PostsModel, tea.Cmd) {
	switch m.store.State() {
	case store.Loading:
		return m, nil
	case store.Loaded:
		// Toggle back to Idle without touching the network.
		m.store.Clear()
		m.selected = 0
		return m, nil
	default:
		m.store.Begin()
		return m, tea.Batch(m.spinner.Tick, m.fetchList())
	}
}

// fetchList creates a command that requests the bounded post list.
func (m PostsModel) fetchList() tea.Cmd {
	source, ctx := m.source, m.ctx
	return func() tea.Msg {
		list, err := source.List(ctx, posts.ListLimit)
		return postsFetchedMsg{posts: list, err: err}
	}
}

// openDetail shows the rendered post at once and requests the full one.
func (m PostsModel) openDetail(id int) tea.Cmd {
	preview, err := m.store.Post(id)
	if err != nil {
		m.log.WithFields(map[string]any{"id": id}).Warn("post is not rendered")
		return nil
	}
	return tea.Batch(
		func() tea.Msg { return detailPreviewMsg{post: preview} },
		m.loadDetail(id),
	)
}

// loadDetail creates a command that requests a single post.
func (m PostsModel) loadDetail(id int) tea.Cmd {
	source, ctx := m.source, m.ctx
	return func() tea.Msg {
		p, err := source.Get(ctx, id)
		return postDetailMsg{id: id, post: p, err: err}
	}
}

// moveSelection moves the card cursor by delta, staying within the grid.
func (m *PostsModel) moveSelection(delta int) {
	n := m.store.Len()
	if n == 0 {
		return
	}
	next := m.selected + delta
	if next < 0 || next >= n {
		return
	}
	m.selected = next
}

// selectedPost returns the post under the cursor.
func (m PostsModel) selectedPost() (domain.Post, bool) {
	list := m.store.Posts()
	if m.selected < 0 || m.selected >= len(list) {
		return domain.Post{}, false
	}
	return list[m.selected], true
}

// columns returns how many cards fit side by side.
func (m PostsModel) columns() int {
	width := m.width
	if width == 0 {
		width = 80
	}
	cols := width / cardWidth
	if cols < 1 {
		cols = 1
	}
	return cols
}

// TriggerLabel is the current label of the fetch trigger.
func (m PostsModel) TriggerLabel() string {
	return store.TriggerLabel(m.store.State())
}

// State returns the fetch state.
func (m PostsModel) State() store.FetchState {
	return m.store.State()
}

// SetAccent sets the theme accent used for the trigger and the selection.
func (m *PostsModel) SetAccent(accent lipgloss.Color) {
	m.accent = accent
}

// View renders the section.
func (m PostsModel) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	var sections []string
	sections = append(sections, TitleStyle.Foreground(m.accent).Render("Latest Posts"))
	sections = append(sections, m.renderTrigger())
	sections = append(sections, "")

	switch m.store.State() {
	case store.Idle:
		sections = append(sections, PromptStyle.Render("Press f to fetch the latest posts."))
	case store.Loading:
		sections = append(sections, m.spinner.View()+" Loading...")
	case store.Error:
		sections = append(sections, m.renderErrorPanel(width))
	case store.Loaded:
		sections = append(sections, m.renderGrid())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTrigger renders the fetch trigger in its current state.
func (m PostsModel) renderTrigger() string {
	switch m.store.State() {
	case store.Loading:
		return button(m.spinner.View()+" "+m.TriggerLabel(), m.accent, false)
	case store.Error:
		return warningButtonStyle.Render(m.TriggerLabel())
	default:
		return button(m.TriggerLabel(), m.accent, true)
	}
}

// renderErrorPanel renders the inline error with the failure reason.
func (m PostsModel) renderErrorPanel(width int) string {
	inner := width - 4
	if inner > 76 {
		inner = 76
	}
	if inner < minCardInner {
		inner = minCardInner
	}

	reason := ""
	if err := m.store.Err(); err != nil {
		reason = err.Error()
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(fetchErrorHeading))
	b.WriteString("\n")
	b.WriteString(wordwrap.String(fetchErrorText, inner))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", inner))
	b.WriteString("\n")
	b.WriteString(wordwrap.String("Error details: "+reason, inner))

	return errorPanelStyle.Width(inner + 2).Render(b.String())
}

// renderGrid lays the cards out in rows, preserving source order.
func (m PostsModel) renderGrid() string {
	list := m.store.Posts()
	cols := m.columns()

	var rows []string
	for start := 0; start < len(list); start += cols {
		end := start + cols
		if end > len(list) {
			end = len(list)
		}
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(list[i], i == m.selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard renders one post: id badge, capitalized title and body, owner and
// the details action.
func (m PostsModel) renderCard(p domain.Post, selected bool) string {
	inner := cardWidth - 4 // border + padding

	badge := badgeStyle.Background(m.accent).Render(fmt.Sprintf("Post #%d", p.ID))
	tag := dimStyle.Render("API Data")
	gap := inner - lipgloss.Width(badge) - lipgloss.Width(tag)
	if gap < 1 {
		gap = 1
	}
	header := badge + strings.Repeat(" ", gap) + tag

	title := cardTitleStyle.Render(textutil.Truncate(textutil.Capitalize(textutil.SingleLine(p.Title)), inner))
	body := cardBodyStyle.Render(clampLines(wordwrap.String(textutil.Capitalize(textutil.SingleLine(p.Body)), inner), cardBodyLines, inner))

	action := "View Details"
	if selected {
		action = SelectedItemStyle.Foreground(m.accent).Render("[" + action + "]")
	} else {
		action = dimStyle.Render(" " + action + " ")
	}
	owner := dimStyle.Render(fmt.Sprintf("User ID: %d", p.UserID))
	gap = inner - lipgloss.Width(owner) - lipgloss.Width(action)
	if gap < 1 {
		gap = 1
	}
	footer := owner + strings.Repeat(" ", gap) + action

	style := cardStyle.Width(cardWidth - 2)
	if selected {
		style = style.BorderForeground(m.accent)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", title, body, "", footer))
}

// clampLines keeps at most n lines of s, marking the cut on the last one.
func clampLines(s string, n, width int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	lines = lines[:n]
	lines[n-1] = textutil.Truncate(lines[n-1]+" …", width)
	return strings.Join(lines, "\n")
}
