package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// subjectItem wraps a subject option for use in bubbles/list.
type subjectItem string

func (i subjectItem) FilterValue() string {
	return string(i)
}

// subjectDelegate renders one subject per line.
type subjectDelegate struct{}

func (d subjectDelegate) Height() int                             { return 1 }
func (d subjectDelegate) Spacing() int                            { return 0 }
func (d subjectDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d subjectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(subjectItem)
	if !ok {
		return
	}

	if index == m.Index() {
		fmt.Fprint(w, SelectedItemStyle.Render("> "+string(i)))
	} else {
		fmt.Fprint(w, NormalItemStyle.Render("  "+string(i)))
	}
}

// SubjectPickerModel is the popup of the subject select.
type SubjectPickerModel struct {
	list list.Model
}

// NewSubjectPickerModel creates a picker over options with current preselected.
func NewSubjectPickerModel(options []string, current string) SubjectPickerModel {
	items := make([]list.Item, len(options))
	selected := 0
	for i, o := range options {
		items[i] = subjectItem(o)
		if o == current {
			selected = i
		}
	}

	l := list.New(items, subjectDelegate{}, 40, len(options)+6)
	l.Title = "Choose a subject"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.Styles.Title = TitleStyle
	l.Select(selected)

	return SubjectPickerModel{list: l}
}

// Selected returns the highlighted subject.
func (m SubjectPickerModel) Selected() string {
	if item, ok := m.list.SelectedItem().(subjectItem); ok {
		return string(item)
	}
	return ""
}

// Update handles messages and updates the model state.
func (m SubjectPickerModel) Update(msg tea.Msg) (SubjectPickerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg {
				return subjectPickerClosedMsg{}
			}
		case "enter":
			subject := m.Selected()
			if subject == "" {
				return m, nil
			}
			return m, func() tea.Msg {
				return SubjectSelectedMsg{Subject: subject}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the model.
func (m SubjectPickerModel) View() string {
	return m.list.View()
}
