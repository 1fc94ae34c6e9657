package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/showcase/internal/domain"
	"github.com/h0rv/showcase/internal/logger"
	"github.com/h0rv/showcase/internal/notify"
	"github.com/h0rv/showcase/internal/submit"
	"github.com/h0rv/showcase/internal/validation"
)

// Focus positions of the form, in tab order.
const (
	focusFirstName = iota
	focusLastName
	focusEmail
	focusSubject
	focusMessage
	focusSubmit
	focusCount
)

const (
	maxFormWidth       = 60
	messageInputHeight = 4
	subjectPlaceholder = "Choose..."
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true)

	feedbackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			PaddingLeft(2)

	selectBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// fieldOrder maps the input focus positions to field names.
var fieldOrder = [...]string{
	focusFirstName: domain.FieldFirstName,
	focusLastName:  domain.FieldLastName,
	focusEmail:     domain.FieldEmail,
	focusSubject:   domain.FieldSubject,
	focusMessage:   domain.FieldMessage,
}

var fieldLabels = map[string]string{
	domain.FieldFirstName: "First Name",
	domain.FieldLastName:  "Last Name",
	domain.FieldEmail:     "Email Address",
	domain.FieldSubject:   "Subject",
	domain.FieldMessage:   "Message",
}

// FormModel is the contact form: five validated fields, the submit control
// and the inline message banner.
type FormModel struct {
	// Dependencies
	rules     validation.RuleSet
	submitter submit.Submitter
	ctx       context.Context
	log       *logger.Logger

	// UI components
	inputs  [focusSubject]textinput.Model // firstName, lastName, email
	message textarea.Model
	picker  *SubjectPickerModel
	spinner spinner.Model
	banner  notify.Banner

	// Form state
	subject    string
	states     map[string]validation.FieldState // Marked fields only
	focus      int
	submitting bool

	// View state
	width  int
	accent lipgloss.Color
}

// NewFormModel creates the contact form.
func NewFormModel(ctx context.Context, submitter submit.Submitter, log *logger.Logger) FormModel {
	placeholders := [focusSubject]string{"Jane", "Doe", "jane@example.com"}
	var inputs [focusSubject]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = "  "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 120
		ti.Width = maxFormWidth - 6
		inputs[i] = ti
	}

	ta := textarea.New()
	ta.Placeholder = "How can we help?"
	ta.ShowLineNumbers = false
	ta.SetHeight(messageInputHeight)
	ta.SetWidth(maxFormWidth - 4)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := FormModel{
		rules:     validation.ContactRules(),
		submitter: submitter,
		ctx:       ctx,
		log:       log,
		inputs:    inputs,
		message:   ta,
		spinner:   sp,
		states:    make(map[string]validation.FieldState),
		accent:    lipgloss.Color(defaultAccent),
	}
	m.inputs[focusFirstName].Focus()
	return m
}

// Init starts the cursor blink.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.picker != nil {
			picker, cmd := m.picker.Update(msg)
			m.picker = &picker
			return m, cmd
		}
		return m.handleKeyPress(msg)

	case SubjectSelectedMsg:
		// Selecting an option is the select's input event.
		m.picker = nil
		m.subject = msg.Subject
		(&m).mark(domain.FieldSubject)
		return m, nil

	case subjectPickerClosedMsg:
		// Closing without a choice blurs the select.
		m.picker = nil
		(&m).mark(domain.FieldSubject)
		return m, nil

	case submitDoneMsg:
		return m.finishSubmit(msg.err)

	case notify.BannerExpireMsg, notify.BannerRemoveMsg:
		var cmd tea.Cmd
		m.banner, cmd = m.banner.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other component messages go to the focused input.
	return m.updateFocused(msg)
}

// handleKeyPress processes keyboard input
func (m FormModel) handleKeyPress(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		return m.submit()
	case "tab":
		return m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case "enter":
		switch m.focus {
		case focusSubject:
			return m.openPicker()
		case focusSubmit:
			return m.submit()
		case focusMessage:
			// Newline in the message body.
		default:
			return m.setFocus(m.focus + 1)
		}
	case " ":
		switch m.focus {
		case focusSubject:
			return m.openPicker()
		case focusSubmit:
			return m.submit()
		}
	}

	if m.focus == focusSubject || m.focus == focusSubmit {
		return m, nil
	}

	field := fieldOrder[m.focus]
	before := m.value(field)
	m, cmd := m.updateFocused(msg)
	if m.value(field) != before {
		(&m).mark(field)
	}
	return m, cmd
}

// updateFocused forwards msg to the focused text component.
func (m FormModel) updateFocused(msg tea.Msg) (FormModel, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.focus < focusSubject:
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	case m.focus == focusMessage:
		m.message, cmd = m.message.Update(msg)
	}
	return m, cmd
}

// setFocus moves the focus to position next. Leaving a field is its blur
// event and marks it.
func (m FormModel) setFocus(next int) (FormModel, tea.Cmd) {
	if m.focus < len(fieldOrder) {
		(&m).mark(fieldOrder[m.focus])
	}

	switch {
	case m.focus < focusSubject:
		m.inputs[m.focus].Blur()
	case m.focus == focusMessage:
		m.message.Blur()
	}

	m.focus = next
	switch {
	case next < focusSubject:
		return m, m.inputs[next].Focus()
	case next == focusMessage:
		return m, m.message.Focus()
	}
	return m, nil
}

// openPicker shows the subject options.
func (m FormModel) openPicker() (FormModel, tea.Cmd) {
	picker := NewSubjectPickerModel(domain.SubjectOptions, m.subject)
	m.picker = &picker
	return m, nil
}

// value returns the current raw value of field.
func (m FormModel) value(field string) string {
	switch field {
	case domain.FieldFirstName:
		return m.inputs[focusFirstName].Value()
	case domain.FieldLastName:
		return m.inputs[focusLastName].Value()
	case domain.FieldEmail:
		return m.inputs[focusEmail].Value()
	case domain.FieldSubject:
		return m.subject
	case domain.FieldMessage:
		return m.message.Value()
	}
	return ""
}

// Values returns the raw value of every field keyed by field name.
func (m FormModel) Values() map[string]string {
	values := make(map[string]string, len(fieldOrder))
	for _, field := range m.rules.Fields() {
		values[field] = m.value(field)
	}
	return values
}

// mark re-validates field and records its marker state.
func (m *FormModel) mark(field string) {
	m.states[field] = m.rules.Check(field, m.value(field))
}

// Marker returns the visual state of field and its feedback text.
func (m FormModel) Marker(field string) (validation.Marker, string) {
	st, ok := m.states[field]
	if !ok {
		return validation.MarkerNone, ""
	}
	return validation.Mark(st)
}

// submit validates every field and, when all pass, starts the submission.
func (m FormModel) submit() (FormModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	values := m.Values()
	states, ok := m.rules.CheckAll(values)
	for _, st := range states {
		m.states[st.Field] = st
	}
	if !ok {
		var cmd tea.Cmd
		m.banner, cmd = m.banner.Show(submit.InvalidBanner, domain.KindError)
		return m, cmd
	}

	m.submitting = true
	return m, tea.Batch(m.spinner.Tick, m.send(values))
}

// send creates a command that hands values to the submitter.
func (m FormModel) send(values map[string]string) tea.Cmd {
	submitter, ctx := m.submitter, m.ctx
	return func() tea.Msg {
		return submitDoneMsg{err: submitter.Submit(ctx, values)}
	}
}

// finishSubmit reports the outcome. The submit control is restored on both paths.
func (m FormModel) finishSubmit(err error) (FormModel, tea.Cmd) {
	m.submitting = false

	var bannerCmd tea.Cmd
	if err != nil {
		m.log.Error(err, "form submission failed")
		m.banner, bannerCmd = m.banner.Show(submit.FailureBanner, domain.KindError)
		return m, tea.Batch(bannerCmd, toast(submit.FailureToast, domain.KindError))
	}

	m.banner, bannerCmd = m.banner.Show(submit.SuccessBanner, domain.KindSuccess)
	m, focusCmd := m.reset()
	return m, tea.Batch(bannerCmd, focusCmd, toast(submit.SuccessToast, domain.KindSuccess))
}

// reset clears every value and marker and focuses the first field.
func (m FormModel) reset() (FormModel, tea.Cmd) {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.message.Reset()
	m.subject = ""
	m.states = make(map[string]validation.FieldState)
	m.picker = nil

	// Move focus without the blur marking of setFocus.
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.message.Blur()
	m.focus = focusFirstName
	return m, m.inputs[focusFirstName].Focus()
}

// Submitting reports whether a submission is in flight.
func (m FormModel) Submitting() bool {
	return m.submitting
}

// SubmitLabel is the current label of the submit control.
func (m FormModel) SubmitLabel() string {
	if m.submitting {
		return submit.LabelSending
	}
	return submit.LabelIdle
}

// Banner returns the inline message banner.
func (m FormModel) Banner() notify.Banner {
	return m.banner
}

// PickerOpen reports whether the subject popup is shown.
func (m FormModel) PickerOpen() bool {
	return m.picker != nil
}

// SetAccent sets the theme accent used for labels and the submit control.
func (m *FormModel) SetAccent(accent lipgloss.Color) {
	m.accent = accent
}

// View renders the form.
func (m FormModel) View() string {
	width := m.width
	if width == 0 || width > maxFormWidth {
		width = maxFormWidth
	}

	var sections []string
	sections = append(sections, TitleStyle.Foreground(m.accent).Render("Contact Us"))

	if banner := m.banner.View(width); banner != "" {
		sections = append(sections, banner)
	}

	if m.picker != nil {
		sections = append(sections, m.picker.View())
		sections = append(sections, dimStyle.Render("enter select • esc cancel"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	for pos, field := range fieldOrder {
		sections = append(sections, m.renderField(pos, field))
	}

	label := m.SubmitLabel()
	if m.submitting {
		label = m.spinner.View() + " " + label
	}
	btn := button(label, m.accent, !m.submitting)
	if m.focus == focusSubmit && !m.submitting {
		btn = lipgloss.NewStyle().Underline(true).Render(">") + " " + btn
	}
	sections = append(sections, "", btn)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderField renders the label, control, marker and feedback of one field.
func (m FormModel) renderField(pos int, field string) string {
	labelStyle := fieldLabelStyle
	if m.focus == pos {
		labelStyle = labelStyle.Foreground(m.accent)
	}
	label := labelStyle.Render(fieldLabels[field] + " *")

	var control string
	switch {
	case pos < focusSubject:
		control = m.inputs[pos].View()
	case pos == focusSubject:
		text := m.subject
		if text == "" {
			text = dimStyle.Render(subjectPlaceholder)
		}
		control = "  " + selectBoxStyle.Render(text+" ▾")
	case pos == focusMessage:
		control = m.message.View()
	}

	marker, feedback := m.Marker(field)
	switch marker {
	case validation.MarkerValid:
		label += " " + SuccessStyle.Render("✓")
	case validation.MarkerInvalid:
		label += " " + ErrorStyle.Render("✗")
	}

	lines := []string{"", label, control}
	if marker == validation.MarkerInvalid && feedback != "" {
		lines = append(lines, feedbackStyle.Render(feedback))
	}
	return strings.Join(lines, "\n")
}
