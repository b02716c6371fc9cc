// Package wizard implements the multi-step application form: a fixed list
// of steps walked one at a time, each gated by a predicate, finishing with a
// single submission.
package wizard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
)

// Status is the submission state of a wizard session.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusComplete
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusComplete:
		return "complete"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Form is the static definition of one applicant funnel.
type Form struct {
	Kind  domain.Kind
	Title string
	Steps []Step
	// Done is shown once the application has been accepted.
	Done string
}

// Submission is what the wizard hands to the Submitter on the final step.
type Submission struct {
	Kind           domain.Kind
	Values         Values
	IdempotencyKey string
}

// Submitter delivers a finished application and returns its assigned ID.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) (string, error)
}

// Wizard is one form session. It is safe for concurrent use; at most one
// submission is ever in flight.
type Wizard struct {
	form      Form
	submitter Submitter
	newKey    func() string

	mu          sync.Mutex
	step        int
	values      Values
	status      Status
	key         string
	submittedID string
}

// New starts a session for form. The form must have at least one step.
func New(form Form, submitter Submitter) *Wizard {
	if len(form.Steps) == 0 {
		panic("wizard: form has no steps")
	}
	w := &Wizard{
		form:      form,
		submitter: submitter,
		newKey:    uuid.NewString,
	}
	w.clear()
	return w
}

// clear empties the values and issues a new idempotency key. Caller holds mu
// or owns w exclusively.
func (w *Wizard) clear() {
	w.values = make(Values, len(w.form.Steps))
	for _, s := range w.form.Steps {
		w.values[s.Field] = ""
	}
	w.key = w.newKey()
	w.submittedID = ""
}

// UpdateField sets one field. Fields can be edited on any step until the
// session is submitted.
func (w *Wizard) UpdateField(name, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editable(); err != nil {
		return err
	}
	if _, ok := w.values[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	w.values[name] = value
	return nil
}

// Advance moves to the next step, or submits on the last one. Nothing
// changes when the current step is incomplete; the returned *StepError says
// why. A failed submission leaves the values in place and the wizard idle so
// it can be retried with the same idempotency key.
func (w *Wizard) Advance(ctx context.Context) error {
	w.mu.Lock()
	if err := w.editable(); err != nil {
		w.mu.Unlock()
		return err
	}
	if err := w.form.Steps[w.step].check(w.values); err != nil {
		w.mu.Unlock()
		return err
	}
	if w.step < len(w.form.Steps)-1 {
		w.step++
		w.mu.Unlock()
		return nil
	}

	w.status = StatusSubmitting
	sub := Submission{Kind: w.form.Kind, Values: w.copyValues(), IdempotencyKey: w.key}
	w.mu.Unlock()

	id, err := w.submitter.Submit(ctx, sub)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.status = StatusIdle
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	w.status = StatusComplete
	w.submittedID = id
	return nil
}

// Retreat moves back one step. It reports false on the first step or when
// the session is not idle.
func (w *Wizard) Retreat() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.status != StatusIdle || w.step == 0 {
		return false
	}
	w.step--
	return true
}

// HandleKey maps key presses onto wizard actions. Enter advances; every
// other key is ignored.
func (w *Wizard) HandleKey(ctx context.Context, key string) error {
	if key != "Enter" {
		return nil
	}
	return w.Advance(ctx)
}

// Reopen shows the form again from the first step. After a completed
// submission the values are cleared and a new idempotency key is issued;
// an unfinished session keeps what was typed.
func (w *Wizard) Reopen() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.status {
	case StatusSubmitting:
		return ErrSubmitting
	case StatusComplete:
		w.clear()
	}
	w.step = 0
	w.status = StatusIdle
	return nil
}

func (w *Wizard) editable() error {
	switch w.status {
	case StatusSubmitting:
		return ErrSubmitting
	case StatusComplete:
		return ErrComplete
	}
	return nil
}

func (w *Wizard) copyValues() Values {
	out := make(Values, len(w.values))
	for k, v := range w.values {
		out[k] = v
	}
	return out
}

func (w *Wizard) Form() Form { return w.form }

// Current returns the step on screen.
func (w *Wizard) Current() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form.Steps[w.step]
}

// Prompt renders the current step's title with the values entered so far.
func (w *Wizard) Prompt() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form.Steps[w.step].Prompt(w.values)
}

func (w *Wizard) StepIndex() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) TotalSteps() int { return len(w.form.Steps) }

// Progress is the fraction of steps reached, in (0, 1].
func (w *Wizard) Progress() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return float64(w.step+1) / float64(len(w.form.Steps))
}

func (w *Wizard) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Values returns a copy of the entered fields.
func (w *Wizard) Values() Values {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.copyValues()
}

// CanProceed reports whether Advance would leave the current step.
func (w *Wizard) CanProceed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status == StatusIdle && w.form.Steps[w.step].check(w.values) == nil
}

// SubmittedID is the application ID assigned by the server, once complete.
func (w *Wizard) SubmittedID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submittedID
}

func (w *Wizard) IdempotencyKey() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.key
}

// FirstName is the first word of fullName, used to greet the applicant.
func (w *Wizard) FirstName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return firstName(w.values)
}

func firstName(v Values) string {
	fields := strings.Fields(v[FieldFullName])
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
