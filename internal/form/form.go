// Package form validates the submission form. Only required-ness is
// checked: a required field whose trimmed value is empty is invalid, and
// every other field is valid. Validation runs in full on each submit.
package form

import (
	"strings"
	"sync"

	"Cryptbook/internal/event"

	"github.com/go-playground/validator/v10"
)

// State is the validation state of one field.
type State int

const (
	Unvalidated State = iota
	Valid
	Invalid
)

func (s State) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unvalidated"
	}
}

// Field is one input of a form. Widgets push their text in with Set.
type Field struct {
	Name     string
	Required bool

	mu      sync.Mutex
	value   string
	state   State
	changed event.Registry[State]
}

// NewField creates an empty, unvalidated field.
func NewField(name string, required bool) *Field {
	return &Field{Name: name, Required: required}
}

// Value returns the current raw value.
func (f *Field) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Set replaces the value. It does not touch the validation state.
func (f *Field) Set(v string) {
	f.mu.Lock()
	f.value = v
	f.mu.Unlock()
}

// State returns the state left by the last validation.
func (f *Field) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// OnStateChanged registers fn for state transitions.
func (f *Field) OnStateChanged(fn func(State)) *event.Subscription {
	return f.changed.Subscribe(fn)
}

func (f *Field) setState(s State) {
	f.mu.Lock()
	changed := f.state != s
	f.state = s
	f.mu.Unlock()
	if changed {
		f.changed.Emit(s)
	}
}

// Form is an ordered set of fields.
type Form struct {
	Name   string
	fields []*Field
}

// New creates a form with the given fields in display order.
func New(name string, fields ...*Field) *Form {
	return &Form{Name: name, fields: fields}
}

// Add appends fields.
func (f *Form) Add(fields ...*Field) {
	f.fields = append(f.fields, fields...)
}

// Fields returns the fields in order.
func (f *Form) Fields() []*Field {
	out := make([]*Field, len(f.fields))
	copy(out, f.fields)
	return out
}

// Field looks a field up by name.
func (f *Form) Field(name string) (*Field, bool) {
	for _, fd := range f.fields {
		if fd.Name == name {
			return fd, true
		}
	}
	return nil, false
}

// Reset clears every value and returns every field to Unvalidated.
func (f *Form) Reset() {
	for _, fd := range f.fields {
		fd.Set("")
		fd.setState(Unvalidated)
	}
}

var validate = validator.New()

// Validate marks every field and reports whether the form may be submitted.
func Validate(f *Form) bool {
	return len(check(f)) == 0
}

// check marks every field and returns the names of the failing ones.
func check(f *Form) []string {
	var failed []string
	for _, fd := range f.fields {
		if !fd.Required {
			fd.setState(Valid)
			continue
		}
		if err := validate.Var(strings.TrimSpace(fd.Value()), "required"); err != nil {
			fd.setState(Invalid)
			failed = append(failed, fd.Name)
			continue
		}
		fd.setState(Valid)
	}
	return failed
}
