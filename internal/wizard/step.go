package wizard

import (
	"strings"
	"unicode/utf8"

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
)

// Values holds the form fields entered so far, keyed by field name.
type Values map[string]string

// Predicate reports whether a field value lets the wizard move past its step.
type Predicate func(value string) bool

// MinLength accepts values with at least n characters, ignoring surrounding
// whitespace.
func MinLength(n int) Predicate {
	return func(value string) bool {
		return utf8.RuneCountInString(strings.TrimSpace(value)) >= n
	}
}

// OneOf accepts a selection from options.
func OneOf(options []domain.Option) Predicate {
	return func(value string) bool {
		return domain.HasOption(options, value)
	}
}

// Always accepts anything, including the empty string.
func Always(string) bool { return true }

// Step describes one screen of a form.
type Step struct {
	Field string
	// Title renders the question. It may read fields from earlier steps.
	Title       func(Values) string
	Hint        string
	Placeholder string
	// Options is set for selection steps.
	Options  []domain.Option
	Optional bool
	Valid    Predicate
}

// Prompt renders the step title against v.
func (s Step) Prompt(v Values) string {
	if s.Title == nil {
		return s.Field
	}
	return s.Title(v)
}

// check returns a *StepError when the step's predicate rejects the value.
func (s Step) check(v Values) error {
	if s.Valid == nil || s.Valid(v[s.Field]) {
		return nil
	}
	return &StepError{Field: s.Field, Hint: s.Hint}
}

func title(s string) func(Values) string {
	return func(Values) string { return s }
}
