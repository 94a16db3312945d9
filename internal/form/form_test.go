package form

import (
	"sync"
	"testing"

	"Cryptbook/internal/errors"
	"Cryptbook/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alerts struct {
	messages   []string
	severities []notify.Severity
}

func (a *alerts) ShowAlert(message string, severity notify.Severity) {
	a.messages = append(a.messages, message)
	a.severities = append(a.severities, severity)
}

func newEncryptForm() (*Form, *Field, *Field, *Field) {
	file := NewField("file", true)
	password := NewField("password", true)
	code := NewField("code", false)
	return New("encrypt", file, password, code), file, password, code
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		password string
		want     bool
		states   [3]State
	}{
		{"all filled", "a.pdf", "secret", true, [3]State{Valid, Valid, Valid}},
		{"empty password", "a.pdf", "", false, [3]State{Valid, Invalid, Valid}},
		{"whitespace only", "a.pdf", "   \t", false, [3]State{Valid, Invalid, Valid}},
		{"both empty", "", "", false, [3]State{Invalid, Invalid, Valid}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, file, password, code := newEncryptForm()
			file.Set(tt.file)
			password.Set(tt.password)

			assert.Equal(t, tt.want, Validate(f))
			assert.Equal(t, tt.states, [3]State{file.State(), password.State(), code.State()})
		})
	}
}

func TestSubmitBlocked(t *testing.T) {
	f, file, password, _ := newEncryptForm()
	file.Set("report.pdf")

	a := &alerts{}
	e := NewEngine(a)
	var accepted int
	e.OnAccepted(func(*Form) { accepted++ })

	err := e.Submit(f)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidationFailed))

	var ve *errors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"password"}, ve.Fields)

	assert.Equal(t, Invalid, password.State())
	assert.Equal(t, Valid, file.State())
	assert.Equal(t, []string{RequiredFieldsMessage}, a.messages)
	assert.Equal(t, []notify.Severity{notify.Warning}, a.severities)
	assert.Zero(t, accepted)
}

func TestSubmitRevalidatesEveryTime(t *testing.T) {
	f, file, password, _ := newEncryptForm()
	file.Set("report.pdf")
	e := NewEngine(&alerts{})

	var accepted []*Form
	e.OnAccepted(func(got *Form) { accepted = append(accepted, got) })

	require.Error(t, e.Submit(f))
	password.Set("fixed")
	require.NoError(t, e.Submit(f))
	assert.Equal(t, Valid, password.State())

	password.Set("")
	require.Error(t, e.Submit(f), "a previous pass is not remembered")
	assert.Equal(t, Invalid, password.State())

	assert.Len(t, accepted, 1)
	assert.Same(t, f, accepted[0])
}

func TestFieldStateEvents(t *testing.T) {
	f, _, password, _ := newEncryptForm()
	var seen []State
	password.OnStateChanged(func(s State) { seen = append(seen, s) })

	Validate(f)
	Validate(f)
	password.Set("x")
	Validate(f)
	f.Reset()

	assert.Equal(t, []State{Invalid, Valid, Unvalidated}, seen)
	assert.Equal(t, "", password.Value())
}

func TestFormLookup(t *testing.T) {
	f, _, _, _ := newEncryptForm()
	extra := NewField("notes", false)
	f.Add(extra)

	got, ok := f.Field("notes")
	require.True(t, ok)
	assert.Same(t, extra, got)
	_, ok = f.Field("missing")
	assert.False(t, ok)
	assert.Len(t, f.Fields(), 4)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unvalidated", Unvalidated.String())
	assert.Equal(t, "valid", Valid.String())
	assert.Equal(t, "invalid", Invalid.String())
}

func TestFieldWorksWithoutUI(t *testing.T) {
	f, file, password, _ := newEncryptForm()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			password.Set("secret")
			_ = password.Value()
		}()
	}
	wg.Wait()
	file.Set("report.pdf")

	assert.Equal(t, "secret", password.Value())
	assert.True(t, Validate(f))
	require.NoError(t, NewEngine(&alerts{}).Submit(f))
}
