// Package validation implements the contact form rule engine.
// Validate is a pure decision function; rendering the outcome (markers,
// feedback text) is left to the form surface.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/h0rv/showcase/internal/domain"
)

// Messages produced by the built-in checks.
const (
	MsgRequired      = "This field is required"
	MsgInvalidFormat = "Invalid format"
)

// Rule is the declarative constraint set of one form field.
// Checks run in the order required, minimum length, pattern.
type Rule struct {
	Required  bool
	MinLength int            // 0 disables the check
	Pattern   *regexp.Regexp // nil disables the check
	Message   string         // shown when Pattern fails
}

// Result is the outcome of validating one value.
type Result struct {
	Valid   bool
	Message string
}

// Validate checks value against rule. The first failing check decides the message.
func Validate(value string, rule Rule) Result {
	trimmed := strings.TrimSpace(value)

	if rule.Required && trimmed == "" {
		return Result{Message: MsgRequired}
	}

	if rule.MinLength > 0 && utf8.RuneCountInString(trimmed) < rule.MinLength {
		return Result{Message: fmt.Sprintf("Must be at least %d characters long", rule.MinLength)}
	}

	if rule.Pattern != nil && !rule.Pattern.MatchString(trimmed) {
		msg := rule.Message
		if msg == "" {
			msg = MsgInvalidFormat
		}
		return Result{Message: msg}
	}

	return Result{Valid: true}
}

// FieldState is derived from a field value on every input, blur and submit event.
type FieldState struct {
	Field   string
	Raw     string
	Trimmed string
	Valid   bool
	Message string
}

// FieldRule binds a rule to a field name.
type FieldRule struct {
	Field string
	Rule  Rule
}

// RuleSet is an ordered, immutable mapping from field name to rule.
type RuleSet struct {
	rules []FieldRule
	index map[string]int
}

// NewRuleSet builds a RuleSet preserving the given order.
func NewRuleSet(rules ...FieldRule) RuleSet {
	rs := RuleSet{
		rules: make([]FieldRule, len(rules)),
		index: make(map[string]int, len(rules)),
	}
	copy(rs.rules, rules)
	for i, r := range rs.rules {
		rs.index[r.Field] = i
	}
	return rs
}

var (
	lettersPattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ContactRules returns the rule set of the contact form.
func ContactRules() RuleSet {
	return NewRuleSet(
		FieldRule{Field: domain.FieldFirstName, Rule: Rule{
			Required:  true,
			MinLength: 2,
			Pattern:   lettersPattern,
			Message:   "First name must contain only letters and be at least 2 characters long",
		}},
		FieldRule{Field: domain.FieldLastName, Rule: Rule{
			Required:  true,
			MinLength: 2,
			Pattern:   lettersPattern,
			Message:   "Last name must contain only letters and be at least 2 characters long",
		}},
		FieldRule{Field: domain.FieldEmail, Rule: Rule{
			Required: true,
			Pattern:  emailPattern,
			Message:  "Please enter a valid email address",
		}},
		FieldRule{Field: domain.FieldSubject, Rule: Rule{
			Required: true,
			Message:  "Please select a subject",
		}},
		FieldRule{Field: domain.FieldMessage, Rule: Rule{
			Required:  true,
			MinLength: 10,
			Message:   "Message must be at least 10 characters long",
		}},
	)
}

// Fields returns the field names in declaration order.
func (rs RuleSet) Fields() []string {
	out := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		out[i] = r.Field
	}
	return out
}

// Rule returns the rule for field.
func (rs RuleSet) Rule(field string) (Rule, bool) {
	i, ok := rs.index[field]
	if !ok {
		return Rule{}, false
	}
	return rs.rules[i].Rule, true
}

// Check derives the state of one field. Unknown fields are always valid.
func (rs RuleSet) Check(field, value string) FieldState {
	state := FieldState{
		Field:   field,
		Raw:     value,
		Trimmed: strings.TrimSpace(value),
		Valid:   true,
	}
	rule, ok := rs.Rule(field)
	if !ok {
		return state
	}
	res := Validate(value, rule)
	state.Valid = res.Valid
	state.Message = res.Message
	return state
}

// CheckAll validates every declared field, even after a failure, and reports
// whether all of them passed. Missing values are treated as empty.
func (rs RuleSet) CheckAll(values map[string]string) ([]FieldState, bool) {
	states := make([]FieldState, 0, len(rs.rules))
	allValid := true
	for _, r := range rs.rules {
		st := rs.Check(r.Field, values[r.Field])
		if !st.Valid {
			allValid = false
		}
		states = append(states, st)
	}
	return states, allValid
}

// Marker is the visual validity state of a form field.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerValid
	MarkerInvalid
)

// Mark converts a field state into its marker and feedback text.
func Mark(state FieldState) (Marker, string) {
	if state.Valid {
		return MarkerValid, ""
	}
	return MarkerInvalid, state.Message
}
