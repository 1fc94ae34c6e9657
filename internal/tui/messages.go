// Package tui provides Bubble Tea models for the interactive TUI.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/showcase/internal/domain"
)

// ErrorMsg is emitted when an error occurs.
type ErrorMsg struct {
	Err error
}

// SubjectSelectedMsg is emitted when the user picks a form subject.
type SubjectSelectedMsg struct {
	Subject string
}

// NotifyMsg asks the app to show a toast.
type NotifyMsg struct {
	Message string
	Kind    domain.Kind
}

// toast returns a command that emits a NotifyMsg.
func toast(message string, kind domain.Kind) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg{Message: message, Kind: kind}
	}
}

// Custom messages exchanged between the section models and the app.
type (
	postsFetchedMsg struct {
		posts []domain.Post
		err   error
	}

	detailPreviewMsg struct {
		post domain.Post
	}

	postDetailMsg struct {
		id   int
		post domain.Post
		err  error
	}

	closeDetailMsg struct{}

	subjectPickerClosedMsg struct{}

	submitDoneMsg struct {
		err error
	}

	themeLabelResetMsg struct {
		gen int
	}
)
