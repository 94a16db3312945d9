// Package app holds the per-window state of the client and the glue that
// turns long-running jobs into progress updates.
//
//  1. State (state.go) owns the file intake, the submission form, the
//     strength reports and the submit flow of one window. Nothing in it is
//     global, so each test builds its own.
//
//  2. Progress reporting (reporter.go, runner.go) bridges jobs that know
//     their real progress to whatever displays it: the GUI presenter or the
//     terminal.
package app

import (
	"sync"

	"Cryptbook/internal/event"
	"Cryptbook/internal/form"
	"Cryptbook/internal/intake"
	"Cryptbook/internal/log"
	"Cryptbook/internal/notify"
	"Cryptbook/internal/strength"
	"Cryptbook/internal/util"

	"github.com/samber/lo"
)

// Form field names.
const (
	FieldFile     = "file"
	FieldPassword = "password"
	FieldCode     = "code"
)

// PasswordInputMode represents the visibility state of password inputs.
type PasswordInputMode int

const (
	PasswordModeHidden PasswordInputMode = iota
	PasswordModeVisible
)

// Submission is the accepted content of the form.
type Submission struct {
	ID         string
	File       intake.StagedFile
	Password   string
	Code       string
	Rounds     int
	Algorithms []string
}

// State is the state of one encryption window.
type State struct {
	mu sync.RWMutex

	Intake *intake.Controller
	Form   *form.Form
	Engine *form.Engine

	File     *form.Field
	Password *form.Field
	Code     *form.Field

	rounds       int
	algorithms   []string
	passwordMode PasswordInputMode
	working      bool

	passwordReport   strength.Report
	encryptionReport strength.EncryptionReport

	submitted event.Registry[Submission]
	subs      []*event.Subscription
}

// NewState wires a fresh window state. Blocked submits are reported
// through n.
func NewState(n notify.Notifier, opts ...intake.Option) *State {
	s := &State{
		Intake:   intake.New(opts...),
		File:     form.NewField(FieldFile, true),
		Password: form.NewField(FieldPassword, true),
		Code:     form.NewField(FieldCode, false),
		Engine:   form.NewEngine(n),
	}
	s.Form = form.New("encrypt", s.File, s.Password, s.Code)
	s.resetLocked()

	s.subs = append(s.subs,
		s.Intake.OnFileChosen(func(f intake.StagedFile) {
			s.File.Set(f.Path)
		}),
		s.Engine.OnAccepted(func(*form.Form) {
			s.accept()
		}),
	)
	return s
}

// Close detaches the state from its components.
func (s *State) Close() {
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	s.subs = nil
}

// OnSubmitted registers fn for every accepted submission.
func (s *State) OnSubmitted(fn func(Submission)) *event.Subscription {
	return s.submitted.Subscribe(fn)
}

// Submit validates the form. When it passes, OnSubmitted handlers receive
// the submission and the staged file is discarded.
func (s *State) Submit() error {
	return s.Engine.Submit(s.Form)
}

func (s *State) accept() {
	file, _ := s.Intake.Active()
	id, err := util.GenerateID(util.DefaultIDLength)
	if err != nil {
		log.Warn("submission id", log.Err(err))
	}

	s.mu.Lock()
	sub := Submission{
		ID:         id,
		File:       file,
		Password:   s.Password.Value(),
		Code:       s.Code.Value(),
		Rounds:     strength.ResolveRounds(s.Code.Value(), s.rounds),
		Algorithms: append([]string(nil), s.algorithms...),
	}
	s.working = true
	s.mu.Unlock()

	log.Info("submission accepted",
		log.String("id", sub.ID),
		log.String("file", sub.File.Name),
		log.Int("rounds", sub.Rounds),
		log.Strings("algorithms", sub.Algorithms))

	s.Intake.Reset()
	s.File.Set("")
	s.submitted.Emit(sub)
}

// Reset returns the window to its initial state.
func (s *State) Reset() {
	s.Intake.Reset()
	s.Form.Reset()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *State) resetLocked() {
	s.rounds = strength.DefaultRounds
	s.algorithms = append([]string(nil), strength.SupportedAlgorithms...)
	s.passwordMode = PasswordModeHidden
	s.working = false
	s.passwordReport = strength.Estimate("")
	s.encryptionReport = strength.EstimateEncryption("", s.rounds, s.algorithms)
}

// SetRounds sets the manual round count, clamped to the backend limits.
func (s *State) SetRounds(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds = strength.ClampRounds(n)
	return s.rounds
}

// Rounds returns the manual round count.
func (s *State) Rounds() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rounds
}

// SetAlgorithm enables or disables one compression algorithm. Unknown
// names are ignored.
func (s *State) SetAlgorithm(alg string, enabled bool) {
	if !strength.IsSupported(alg) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if enabled {
		s.algorithms = lo.Uniq(append(s.algorithms, alg))
	} else {
		s.algorithms = lo.Without(s.algorithms, alg)
	}
}

// Algorithms returns the enabled algorithms.
func (s *State) Algorithms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.algorithms...)
}

// ScorePassword recomputes the password report from the current value.
func (s *State) ScorePassword() strength.Report {
	var inputs []string
	if f, ok := s.Intake.Active(); ok {
		inputs = append(inputs, f.Name)
	}
	r := strength.Estimate(s.Password.Value(), inputs...)

	s.mu.Lock()
	s.passwordReport = r
	s.mu.Unlock()
	return r
}

// ScoreEncryption recomputes the encryption report from rounds, code and
// algorithms.
func (s *State) ScoreEncryption() strength.EncryptionReport {
	s.mu.RLock()
	rounds, algs := s.rounds, append([]string(nil), s.algorithms...)
	s.mu.RUnlock()

	r := strength.EstimateEncryption(s.Code.Value(), rounds, algs)

	s.mu.Lock()
	s.encryptionReport = r
	s.mu.Unlock()
	return r
}

// PasswordReport returns the last computed password report.
func (s *State) PasswordReport() strength.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.passwordReport
}

// EncryptionReport returns the last computed encryption report.
func (s *State) EncryptionReport() strength.EncryptionReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.encryptionReport
}

// TogglePasswordVisibility toggles password show/hide.
func (s *State) TogglePasswordVisibility() PasswordInputMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.passwordMode == PasswordModeHidden {
		s.passwordMode = PasswordModeVisible
	} else {
		s.passwordMode = PasswordModeHidden
	}
	return s.passwordMode
}

// IsPasswordHidden returns true if password should be hidden.
func (s *State) IsPasswordHidden() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.passwordMode == PasswordModeHidden
}

// Working reports whether a submission is in flight.
func (s *State) Working() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.working
}

// Done marks the in-flight submission finished.
func (s *State) Done() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.working = false
}

// GenPassword fills the password field with a random password.
func (s *State) GenPassword(opts util.PassgenOptions) (string, error) {
	pw, err := util.GenPassword(opts)
	if err != nil {
		return "", err
	}
	s.Password.Set(pw)
	return pw, nil
}
