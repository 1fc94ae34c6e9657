// Package domain defines the normalized domain types for the showcase application.
// These types represent the core concepts independent of the remote API and of the terminal UI.
package domain

// Theme describes one entry of the theme cycle.
type Theme struct {
	Name       string // Identifier, persisted as the theme preference (e.g., "ocean")
	Background string // CSS gradient descriptor painted on the hero backdrop
	Class      string // Style class added to the root container, empty for the default theme
}

// themes is the fixed, ordered theme cycle. Index 0 is the default.
var themes = []Theme{
	{Name: "light", Background: "linear-gradient(135deg, #667eea 0%, #764ba2 100%)", Class: ""},
	{Name: "dark", Background: "linear-gradient(135deg, #2c3e50 0%, #34495e 100%)", Class: "dark-theme"},
	{Name: "ocean", Background: "linear-gradient(135deg, #667db6 0%, #0082c8 100%)", Class: "ocean-theme"},
	{Name: "sunset", Background: "linear-gradient(135deg, #ff9a9e 0%, #fecfef 100%)", Class: "sunset-theme"},
	{Name: "forest", Background: "linear-gradient(135deg, #56ab2f 0%, #a8e6cf 100%)", Class: "forest-theme"},
}

// Themes returns a copy of the theme cycle in order.
func Themes() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// Post represents a remote post in a normalized format.
type Post struct {
	ID     int    // Post ID
	Title  string // Post title
	Body   string // Post body text
	UserID int    // Owner (author) ID
}

// Contact form field names, in form order.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldSubject   = "subject"
	FieldMessage   = "message"
)

// ContactFields returns the contact form field names in form order.
func ContactFields() []string {
	return []string{FieldFirstName, FieldLastName, FieldEmail, FieldSubject, FieldMessage}
}

// SubjectOptions are the selectable values of the subject field.
var SubjectOptions = []string{
	"General Inquiry",
	"Web Development",
	"Consulting",
	"Support",
	"Other",
}

// Kind selects the styling of a user-visible message.
type Kind string

// Kind constants for notifications and banners.
const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)
