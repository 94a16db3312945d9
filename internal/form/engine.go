package form

import (
	"Cryptbook/internal/errors"
	"Cryptbook/internal/event"
	"Cryptbook/internal/log"
	"Cryptbook/internal/notify"
)

// RequiredFieldsMessage is the warning shown when a submit is blocked.
const RequiredFieldsMessage = "Please fill in all required fields"

// Engine gates form submission.
type Engine struct {
	notifier notify.Notifier
	accepted event.Registry[*Form]
}

// NewEngine creates an Engine reporting blocked submits through n.
func NewEngine(n notify.Notifier) *Engine {
	return &Engine{notifier: n}
}

// OnAccepted registers fn for every submit that passes validation.
func (e *Engine) OnAccepted(fn func(*Form)) *event.Subscription {
	return e.accepted.Subscribe(fn)
}

// Submit validates f from scratch. On failure the submit is cancelled, a
// warning alert is shown and a *errors.ValidationError listing the failing
// fields is returned. On success the accept handlers run.
func (e *Engine) Submit(f *Form) error {
	failed := check(f)
	if len(failed) > 0 {
		log.Info("submit blocked", log.String("form", f.Name), log.Strings("fields", failed))
		if e.notifier != nil {
			e.notifier.ShowAlert(RequiredFieldsMessage, notify.Warning)
		}
		return &errors.ValidationError{
			Fields:  failed,
			Message: "required",
			Err:     errors.ErrValidationFailed,
		}
	}
	log.Debug("submit accepted", log.String("form", f.Name))
	e.accepted.Emit(f)
	return nil
}
