package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var helpOverlayStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(1, 2).
	MarginTop(1)

// HelpModel renders the key hints of the page.
type HelpModel struct {
	help   help.Model
	keymap KeyMap

	// Function-key only bindings, shown while the form owns plain keys
	formSections key.Binding
	formTheme    key.Binding
}

// NewHelpModel creates the help model over keymap.
func NewHelpModel(keymap KeyMap) HelpModel {
	h := help.New()
	h.ShowAll = true

	return HelpModel{
		help:         h,
		keymap:       keymap,
		formSections: key.NewBinding(key.WithKeys("f1", "f2"), key.WithHelp("F1/F2", "leave form")),
		formTheme:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "change theme")),
	}
}

// View renders the full key list framed in the accent colour.
func (m HelpModel) View(width int, accent lipgloss.Color) string {
	m.help.Width = width - 8 // Account for padding and border
	return helpOverlayStyle.
		BorderForeground(accent).
		Render(m.help.View(m.keymap))
}

// ShortView renders the one-line key hints for section.
func (m HelpModel) ShortView(width int, section Section) string {
	m.help.Width = width
	return m.help.ShortHelpView(m.sectionKeys(section))
}

// sectionKeys returns the bindings worth hinting in section.
func (m HelpModel) sectionKeys(section Section) []key.Binding {
	k := m.keymap
	switch section {
	case SectionPosts:
		return []key.Binding{k.Fetch, k.Details, k.Open, k.Right, k.Down, k.Home, k.Contact, k.Help, k.Quit}
	case SectionContact:
		return []key.Binding{k.NextField, k.PrevField, k.Submit, m.formTheme, k.CloseToast, m.formSections}
	default:
		return k.ShortHelp()
	}
}
