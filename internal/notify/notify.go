// Package notify provides the two message surfaces of the UI: floating,
// auto-dismissing toasts and the inline form banner. Both are Bubble Tea
// components; every timer carries the id (or generation) it was scheduled
// for, so a stale timer never touches a newer message.
package notify

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/showcase/internal/domain"
)

// Display timings.
const (
	ToastDuration  = 4000 * time.Millisecond
	ToastExit      = 500 * time.Millisecond
	BannerDuration = 5000 * time.Millisecond
	BannerFade     = 150 * time.Millisecond
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("22")).
			Background(lipgloss.Color("157")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("88")).
			Background(lipgloss.Color("224")).
			Padding(0, 1)

	leavingStyle = lipgloss.NewStyle().
			Faint(true).
			Padding(0, 1)

	bannerSuccessStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("34")).
				Foreground(lipgloss.Color("34")).
				Padding(0, 1)

	bannerErrorStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("196")).
				Foreground(lipgloss.Color("196")).
				Padding(0, 1)
)

// icon returns the marker shown in front of a message of kind k.
func icon(k domain.Kind) string {
	if k == domain.KindSuccess {
		return "✅"
	}
	return "❌"
}

// Toast is one floating notification.
type Toast struct {
	ID        int
	Message   string
	Kind      domain.Kind
	CreatedAt time.Time
	Leaving   bool // exit transition running
}

// ExpireMsg starts the exit transition of toast ID.
type ExpireMsg struct{ ID int }

// RemoveMsg removes toast ID after its exit transition.
type RemoveMsg struct{ ID int }

// Toaster holds the visible toasts, oldest first.
type Toaster struct {
	toasts []Toast
	nextID int
	now    func() time.Time
}

// NewToaster creates an empty Toaster.
func NewToaster() Toaster {
	return Toaster{now: time.Now}
}

// Push shows a new toast and returns the command that expires it.
// Existing toasts are not repositioned.
func (t Toaster) Push(message string, kind domain.Kind) (Toaster, tea.Cmd) {
	t.nextID++
	id := t.nextID
	now := time.Now
	if t.now != nil {
		now = t.now
	}

	toasts := make([]Toast, len(t.toasts), len(t.toasts)+1)
	copy(toasts, t.toasts)
	t.toasts = append(toasts, Toast{
		ID:        id,
		Message:   PlainText(message),
		Kind:      kind,
		CreatedAt: now(),
	})

	return t, tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return ExpireMsg{ID: id}
	})
}

// Update handles the expiry timers.
func (t Toaster) Update(msg tea.Msg) (Toaster, tea.Cmd) {
	switch msg := msg.(type) {
	case ExpireMsg:
		i := t.find(msg.ID)
		if i < 0 {
			// Closed explicitly before expiring.
			return t, nil
		}
		toasts := make([]Toast, len(t.toasts))
		copy(toasts, t.toasts)
		toasts[i].Leaving = true
		t.toasts = toasts
		id := msg.ID
		return t, tea.Tick(ToastExit, func(time.Time) tea.Msg {
			return RemoveMsg{ID: id}
		})

	case RemoveMsg:
		return t.Close(msg.ID), nil
	}
	return t, nil
}

// Close removes toast id immediately.
func (t Toaster) Close(id int) Toaster {
	i := t.find(id)
	if i < 0 {
		return t
	}
	toasts := make([]Toast, 0, len(t.toasts)-1)
	toasts = append(toasts, t.toasts[:i]...)
	toasts = append(toasts, t.toasts[i+1:]...)
	t.toasts = toasts
	return t
}

// CloseLatest removes the most recent toast, if any.
func (t Toaster) CloseLatest() Toaster {
	if len(t.toasts) == 0 {
		return t
	}
	return t.Close(t.toasts[len(t.toasts)-1].ID)
}

// Toasts returns the visible toasts, oldest first.
func (t Toaster) Toasts() []Toast {
	out := make([]Toast, len(t.toasts))
	copy(out, t.toasts)
	return out
}

// Len returns the number of visible toasts.
func (t Toaster) Len() int {
	return len(t.toasts)
}

func (t Toaster) find(id int) int {
	for i, toast := range t.toasts {
		if toast.ID == id {
			return i
		}
	}
	return -1
}

// View renders the toasts right-aligned within width, one per line.
func (t Toaster) View(width int) string {
	if len(t.toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(t.toasts))
	for _, toast := range t.toasts {
		text := icon(toast.Kind) + " " + toast.Message + "  ×"
		style := errorStyle
		if toast.Kind == domain.KindSuccess {
			style = successStyle
		}
		if toast.Leaving {
			style = leavingStyle
		}
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Right, style.Render(text)))
	}
	return strings.Join(lines, "\n")
}

// BannerExpireMsg starts the fade of banner generation Gen.
type BannerExpireMsg struct{ Gen int }

// BannerRemoveMsg clears banner generation Gen.
type BannerRemoveMsg struct{ Gen int }

// Banner is the single inline message slot of the form.
type Banner struct {
	message string
	kind    domain.Kind
	gen     int
	visible bool
	fading  bool
}

// Show replaces the banner content and returns the auto-clear command.
func (b Banner) Show(message string, kind domain.Kind) (Banner, tea.Cmd) {
	b.gen++
	b.message = PlainText(message)
	b.kind = kind
	b.visible = true
	b.fading = false

	gen := b.gen
	return b, tea.Tick(BannerDuration, func(time.Time) tea.Msg {
		return BannerExpireMsg{Gen: gen}
	})
}

// Update handles the banner timers. Timers of a replaced banner are ignored.
func (b Banner) Update(msg tea.Msg) (Banner, tea.Cmd) {
	switch msg := msg.(type) {
	case BannerExpireMsg:
		if msg.Gen != b.gen || !b.visible {
			return b, nil
		}
		b.fading = true
		gen := b.gen
		return b, tea.Tick(BannerFade, func(time.Time) tea.Msg {
			return BannerRemoveMsg{Gen: gen}
		})

	case BannerRemoveMsg:
		if msg.Gen != b.gen {
			return b, nil
		}
		return b.Dismiss(), nil
	}
	return b, nil
}

// Dismiss clears the banner immediately.
func (b Banner) Dismiss() Banner {
	b.visible = false
	b.fading = false
	b.message = ""
	return b
}

// Visible reports whether the banner shows a message.
func (b Banner) Visible() bool { return b.visible }

// Fading reports whether the banner is in its fade-out.
func (b Banner) Fading() bool { return b.fading }

// Message returns the current banner text.
func (b Banner) Message() string { return b.message }

// Kind returns the kind of the current banner.
func (b Banner) Kind() domain.Kind { return b.kind }

// View renders the banner within width, or nothing when hidden.
func (b Banner) View(width int) string {
	if !b.visible {
		return ""
	}
	style := bannerErrorStyle
	if b.kind == domain.KindSuccess {
		style = bannerSuccessStyle
	}
	if b.fading {
		style = style.Faint(true)
	}
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(b.message)
}
