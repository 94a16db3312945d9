package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"Cryptbook/internal/app"
	"Cryptbook/internal/config"
	"Cryptbook/internal/errors"
	"Cryptbook/internal/form"
	"Cryptbook/internal/notify"
	"Cryptbook/internal/passbook"
	"Cryptbook/internal/progress"
	"Cryptbook/internal/schedule"
	"Cryptbook/internal/schedule/schedtest"
	"Cryptbook/internal/util"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	books map[string]*passbook.Metadata
	err   error
}

func (f stubFetcher) FetchMetadata(_ context.Context, id string) (*passbook.Metadata, error) {
	if f.err != nil {
		return nil, f.err
	}
	if m, ok := f.books[id]; ok {
		return m, nil
	}
	return nil, &passbook.NotFoundError{ID: id}
}

type memClipboard struct {
	mu   sync.Mutex
	text string
	err  error
}

func (c *memClipboard) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		BackendURL:       "http://127.0.0.1:5000",
		LogLevel:         "info",
		FetchTimeout:     10 * time.Second,
		AlertTimeout:     notify.DefaultTimeout,
		StrengthDebounce: 300 * time.Millisecond,
		RoundsThrottle:   100 * time.Millisecond,
		ProgressDelay:    progress.DefaultDelay,
		ProgressDuration: progress.DefaultDuration,
		MaxUploadMiB:     500,
		EnforcePolicy:    true,
	}
}

func newTestApp(t *testing.T, opts ...Option) (*App, *schedtest.FakeClock) {
	t.Helper()
	fa := test.NewTempApp(t)
	clock := schedtest.NewFakeClock()
	base := []Option{
		WithClock(clock),
		WithFrames(progress.NewTickerFrames(progress.DefaultFrameInterval, schedule.WithClock(clock))),
		WithFetcher(stubFetcher{}),
		WithClipboard(&memClipboard{}),
	}
	a, err := newApp(fa, "test", testConfig(), append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(a.close)
	return a, clock
}

func writeFile(t *testing.T, name, content string) fyne.URI {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return storage.NewFileURI(path)
}

func alertMessages(a *App) []string {
	var out []string
	for _, al := range a.Alerts.Alerts() {
		out = append(out, al.Message)
	}
	return out
}

func TestNewAppRejectsBadBackend(t *testing.T) {
	cfg := testConfig()
	cfg.BackendURL = "ftp://example.com"
	_, err := newApp(test.NewTempApp(t), "test", cfg)
	assert.Error(t, err)
}

func TestDropStagesFirstFile(t *testing.T) {
	a, _ := newTestApp(t)
	first := writeFile(t, "notes.txt", "hello")
	second := writeFile(t, "report.pdf", "%PDF-1.4")

	a.onDrop(fyne.NewPos(0, 0), []fyne.URI{first, second})

	label, _ := a.boundFile.Label.Get()
	assert.Equal(t, "notes.txt", label)
	assert.Equal(t, first.Path(), a.State.File.Value())
	assert.False(t, a.dropZone.Highlighted())
	assert.False(t, a.hashBtn.Disabled())
	assert.Empty(t, a.Alerts.Alerts())
}

func TestDropNothingKeepsState(t *testing.T) {
	a, _ := newTestApp(t)
	a.onDrop(fyne.NewPos(0, 0), nil)

	label, _ := a.boundFile.Label.Get()
	assert.Equal(t, app.DefaultInputLabel, label)
	assert.Empty(t, a.State.File.Value())
	assert.True(t, a.hashBtn.Disabled())
}

func TestDropRejectedFile(t *testing.T) {
	a, _ := newTestApp(t)
	a.onDrop(fyne.NewPos(0, 0), []fyne.URI{writeFile(t, "setup.exe", "MZ")})

	label, _ := a.boundFile.Label.Get()
	assert.Equal(t, app.DefaultInputLabel, label)
	require.Len(t, a.Alerts.Alerts(), 1)
	assert.Equal(t, notify.Warning, a.Alerts.Alerts()[0].Severity)
	assert.Contains(t, a.Alerts.Alerts()[0].Message, ".exe")
}

func TestSubmitBlockedByRequiredFields(t *testing.T) {
	a, _ := newTestApp(t)
	a.onClickSubmit()

	require.NotEmpty(t, a.Alerts.Alerts())
	assert.Equal(t, form.RequiredFieldsMessage, a.Alerts.Alerts()[0].Message)
	assert.Equal(t, notify.Warning, a.Alerts.Alerts()[0].Severity)
	assert.Equal(t, form.Invalid, a.fileIndicator.state)
	assert.Equal(t, form.Invalid, a.passwordIndicator.state)
	assert.False(t, a.State.Working())
}

func TestSubmitRunsProgressToCompletion(t *testing.T) {
	a, clock := newTestApp(t)
	a.onDrop(fyne.NewPos(0, 0), []fyne.URI{writeFile(t, "notes.txt", "hello")})
	a.passwordEntry.SetText("Abcdefgh1!")

	a.onClickSubmit()
	require.True(t, a.State.Working())
	assert.True(t, a.submitBtn.Disabled())
	label, _ := a.boundFile.Label.Get()
	assert.Equal(t, app.DefaultInputLabel, label, "staged file is discarded on submit")
	assert.Equal(t, "notes.txt", a.lastSub.File.Name)

	clock.Advance(progress.DefaultDelay)
	clock.Advance(progress.DefaultDuration / 2)
	mid := a.submitBar.Value()
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 100.0)

	clock.Advance(progress.DefaultDuration)
	assert.Equal(t, 100.0, a.submitBar.Value())
	assert.False(t, a.State.Working())
	assert.False(t, a.submitBtn.Disabled())
	assert.Contains(t, alertMessages(a), "notes.txt encrypted")
}

func TestPasswordStrengthIsDebounced(t *testing.T) {
	a, clock := newTestApp(t)

	a.passwordEntry.SetText("a")
	a.passwordEntry.SetText("ab")
	a.passwordEntry.SetText("abc")

	score, _ := a.boundPassword.Score.Get()
	assert.Zero(t, score, "nothing runs before the quiet period")

	clock.Advance(300 * time.Millisecond)
	score, _ = a.boundPassword.Score.Get()
	assert.Equal(t, 15.0, score)
	text, _ := a.boundPassword.Label.Get()
	assert.Equal(t, "Weak (15)", text)
	assert.Equal(t, 15, a.passwordStrength.score)
}

func TestRoundsAndCode(t *testing.T) {
	a, clock := newTestApp(t)

	a.roundsSlider.SetValue(10)
	assert.Equal(t, 10, a.State.Rounds())
	text, _ := a.boundEncryption.Label.Get()
	assert.Equal(t, "Very strong (100)", text)
	assert.Equal(t, "Rounds: 10", a.roundsLabel.Text)

	// inside the throttle window only the state moves
	a.roundsSlider.SetValue(1)
	assert.Equal(t, 1, a.State.Rounds())
	assert.Equal(t, "Rounds: 10", a.roundsLabel.Text)

	clock.Advance(100 * time.Millisecond)
	a.roundsSlider.SetValue(2)
	assert.Equal(t, "Rounds: 2", a.roundsLabel.Text)

	a.codeEntry.SetText("abc")
	assert.Equal(t, "Rounds: 5 (code)", a.roundsLabel.Text)
	assert.True(t, a.roundsSlider.Disabled())

	a.codeEntry.SetText("")
	assert.False(t, a.roundsSlider.Disabled())
}

func TestAlgorithmToggle(t *testing.T) {
	a, _ := newTestApp(t)

	for alg, c := range a.algorithmChecks {
		if alg != "zip" && alg != "tar" {
			c.SetChecked(false)
		}
	}
	assert.ElementsMatch(t, []string{"zip", "tar"}, a.State.Algorithms())
	text, _ := a.boundEncryption.Label.Get()
	assert.Equal(t, "Medium (40)", text)
}

func TestAlertsRenderAndExpire(t *testing.T) {
	a, clock := newTestApp(t)

	a.Alerts.ShowAlert("first", notify.Info)
	a.Alerts.ShowAlert("second", notify.Error)
	assert.Len(t, a.alertBox.Objects, 2)

	a.Alerts.Dismiss(a.Alerts.Alerts()[0].ID)
	assert.Len(t, a.alertBox.Objects, 1)

	clock.Advance(notify.DefaultTimeout)
	assert.Empty(t, a.alertBox.Objects)
}

func TestCopyPassword(t *testing.T) {
	cb := &memClipboard{}
	a, _ := newTestApp(t, WithClipboard(cb))
	a.passwordEntry.SetText("s3cret")

	test.Tap(a.copyBtn)
	assert.Equal(t, "s3cret", cb.text)
	assert.Contains(t, alertMessages(a), "Copied to clipboard")
}

func TestCopyDenied(t *testing.T) {
	a, _ := newTestApp(t, WithClipboard(&memClipboard{err: errors.ErrClipboardDenied}))
	a.passwordEntry.SetText("s3cret")

	test.Tap(a.copyBtn)
	require.NotEmpty(t, a.Alerts.Alerts())
	assert.Equal(t, "Copy failed", a.Alerts.Alerts()[0].Message)
	assert.Equal(t, notify.Error, a.Alerts.Alerts()[0].Severity)
}

func TestLookupFound(t *testing.T) {
	book := &passbook.Metadata{ID: "a1b2c3d4", Filename: "password_book_a1b2c3d4.json", Rounds: 3}
	cb := &memClipboard{}
	a, _ := newTestApp(t,
		WithFetcher(stubFetcher{books: map[string]*passbook.Metadata{book.ID: book}}),
		WithClipboard(cb))

	a.bookEntry.SetText(" a1b2c3d4 ")
	a.onClickLookup()

	require.Eventually(t, func() bool { return a.bookDetails.Visible() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "password_book_a1b2c3d4.json", a.bookFields["Filename"].Text)
	assert.Equal(t, "3", a.bookFields["Rounds"].Text)
	assert.Equal(t, "Load", a.lookupBtn.Text)

	test.Tap(a.bookCopyBtn)
	assert.Equal(t, "a1b2c3d4", cb.text)
}

func TestLookupNotFound(t *testing.T) {
	a, _ := newTestApp(t)
	a.bookEntry.SetText("missing")
	a.onClickLookup()

	require.Eventually(t, func() bool {
		for _, m := range alertMessages(a) {
			if strings.Contains(m, "No password book with ID missing") {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
	assert.False(t, a.bookDetails.Visible())
}

func TestLookupEmptyID(t *testing.T) {
	a, _ := newTestApp(t)
	a.onClickLookup()
	assert.Equal(t, []string{"Enter a password book ID"}, alertMessages(a))
	assert.Nil(t, a.lookupStop)
}

func TestFingerprintStagedFile(t *testing.T) {
	a, _ := newTestApp(t)
	uri := writeFile(t, "notes.txt", "hello")
	a.onDrop(fyne.NewPos(0, 0), []fyne.URI{uri})

	want, err := util.FingerprintFile(uri.Path())
	require.NoError(t, err)

	a.startFingerprint()
	require.Eventually(t, func() bool { return a.fingerprint.Text == want }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 100.0, a.hashBar.Value())
}

func TestResetRestoresDefaults(t *testing.T) {
	a, _ := newTestApp(t)
	a.onDrop(fyne.NewPos(0, 0), []fyne.URI{writeFile(t, "notes.txt", "hello")})
	a.passwordEntry.SetText("Abcdefgh1!")
	a.codeEntry.SetText("abc")
	a.roundsSlider.SetValue(9)

	a.onClickReset()

	label, _ := a.boundFile.Label.Get()
	assert.Equal(t, app.DefaultInputLabel, label)
	assert.Empty(t, a.State.Password.Value())
	assert.Empty(t, a.State.Code.Value())
	assert.Equal(t, 3, a.State.Rounds())
	assert.Equal(t, "Rounds: 3", a.roundsLabel.Text)
	assert.True(t, a.passwordEntry.IsHidden())
	assert.True(t, a.hashBtn.Disabled())
}
