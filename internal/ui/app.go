// Package ui provides the Cryptbook graphical user interface using Fyne.
//
// The window is a thin layer over app.State: widgets forward their events
// to the controllers in internal/, and the controllers' signals update the
// widgets. Everything that happens off the UI goroutine (timers, fetches,
// fingerprinting) comes back through fyne.Do.
package ui

import (
	"context"
	"net/http"

	"Cryptbook/internal/app"
	"Cryptbook/internal/config"
	"Cryptbook/internal/event"
	"Cryptbook/internal/form"
	"Cryptbook/internal/intake"
	"Cryptbook/internal/log"
	"Cryptbook/internal/notify"
	"Cryptbook/internal/passbook"
	"Cryptbook/internal/progress"
	"Cryptbook/internal/schedule"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const (
	appID        = "io.cryptbook.client"
	windowWidth  = 460
	windowHeight = 640
)

// App is the main application structure.
type App struct {
	fyneApp fyne.App
	Window  fyne.Window
	Version string

	cfg       *config.Config
	clock     schedule.Clock
	frames    progress.FrameSource
	fetcher   passbook.Fetcher
	clipboard notify.ClipboardWriter
	logger    log.Logger

	State     *app.State
	Alerts    *notify.Center
	Presenter *progress.Presenter

	boundFile       *app.BoundFile
	boundPassword   *app.BoundStrength
	boundEncryption *app.BoundStrength
	boundProgress   *app.BoundProgress

	// Input section
	dropZone      *DropZone
	chooseBtn     *widget.Button
	fileIndicator *ValidationIndicator
	fingerprint   *DisabledEntry
	hashBtn       *TooltipButton
	hashBar       *barIndicator
	hashCancel    context.CancelFunc

	// Password section
	passwordEntry     *PasswordEntry
	passwordIndicator *ValidationIndicator
	passwordStrength  *StrengthIndicator
	passwordLabel     *ColoredLabel
	guessLabel        *widget.Label
	showHideBtn       *widget.Button
	copyBtn           *widget.Button
	createBtn         *widget.Button
	passgenModal      dialog.Dialog

	// Advanced section
	codeEntry          *widget.Entry
	roundsSlider       *widget.Slider
	roundsLabel        *widget.Label
	algorithmChecks    map[string]*TooltipCheckbox
	encryptionStrength *StrengthIndicator
	encryptionLabel    *ColoredLabel

	// Submit section
	submitBtn *widget.Button
	resetBtn  *widget.Button
	submitBar *barIndicator
	statusLbl *widget.Label
	lastSub   app.Submission

	// Password book section
	bookEntry   *widget.Entry
	lookupBtn   *widget.Button
	bookDetails *widget.Form
	bookFields  map[string]*widget.Label
	bookCopyBtn *widget.Button
	lookupStop  context.CancelFunc

	alertBox *fyne.Container

	scorePassword  func(string)
	cancelScore    func()
	throttleRounds func(int) bool

	subs []*event.Subscription
}

// Option configures an App before its window is built.
type Option func(*App)

// WithClock replaces the wall clock behind debouncing, alerts and progress.
func WithClock(c schedule.Clock) Option {
	return func(a *App) { a.clock = c }
}

// WithFrames replaces the Fyne animation frame source.
func WithFrames(f progress.FrameSource) Option {
	return func(a *App) { a.frames = f }
}

// WithFetcher replaces the HTTP password book client.
func WithFetcher(f passbook.Fetcher) Option {
	return func(a *App) { a.fetcher = f }
}

// WithClipboard replaces the system clipboard.
func WithClipboard(w notify.ClipboardWriter) Option {
	return func(a *App) { a.clipboard = w }
}

// NewApp creates the application and its main window.
func NewApp(version string, cfg *config.Config, opts ...Option) (*App, error) {
	return newApp(fyneapp.NewWithID(appID), version, cfg, opts...)
}

func newApp(fa fyne.App, version string, cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{
		fyneApp: fa,
		Version: version,
		cfg:     cfg,
		clock:   schedule.System(),
		logger:  log.With(log.String("component", "ui")),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.frames == nil {
		a.frames = newAnimationFrames(a.clock)
	}
	if a.clipboard == nil {
		a.clipboard = &fyneClipboard{app: fa}
	}
	if a.fetcher == nil {
		client, err := passbook.NewClient(cfg.BackendURL,
			passbook.WithHTTPClient(&http.Client{Timeout: cfg.FetchTimeout}))
		if err != nil {
			return nil, err
		}
		a.fetcher = client
	}
	fa.Settings().SetTheme(newTheme())

	sched := []schedule.Option{schedule.WithClock(a.clock), schedule.WithDispatch(fyne.Do)}
	a.Alerts = notify.NewCenter(cfg.AlertTimeout, sched...)
	a.Presenter = progress.NewPresenter(a.frames, sched...)
	a.Presenter.Delay = cfg.ProgressDelay
	a.Presenter.Duration = cfg.ProgressDuration

	var intakeOpts []intake.Option
	if cfg.EnforcePolicy {
		policy := intake.DefaultPolicy()
		policy.MaxSize = cfg.MaxUploadBytes()
		intakeOpts = append(intakeOpts, intake.WithPolicy(policy))
	}
	a.State = app.NewState(a.Alerts, intakeOpts...)

	a.boundFile = app.NewBoundFile()
	a.boundPassword = app.NewBoundStrength()
	a.boundEncryption = app.NewBoundStrength()
	a.boundProgress = app.NewBoundProgress()

	a.scorePassword, a.cancelScore = schedule.Debounce(cfg.StrengthDebounce, func(string) {
		a.updatePasswordStrength()
	}, sched...)
	a.throttleRounds = schedule.Throttle(cfg.RoundsThrottle, func(int) {
		a.updateEncryptionStrength()
	}, sched...)

	a.Window = fa.NewWindow("Cryptbook " + version)
	a.Window.SetContent(a.buildUI())
	a.Window.Resize(fyne.NewSize(windowWidth, windowHeight))
	a.Window.SetOnDropped(a.onDrop)
	a.Window.SetOnClosed(a.close)

	a.subscribe()
	a.updatePasswordStrength()
	a.updateEncryptionStrength()
	return a, nil
}

// Run shows the window and blocks until the application quits.
func (a *App) Run() {
	a.logger.Info("starting", log.String("version", a.Version), log.String("backend", a.cfg.BackendURL))
	a.Window.ShowAndRun()
}

func (a *App) buildUI() fyne.CanvasObject {
	a.alertBox = container.NewVBox()

	sections := container.NewVBox(
		a.buildInputSection(),
		widget.NewSeparator(),
		a.buildPasswordSection(),
		widget.NewSeparator(),
		a.buildAdvancedSection(),
		widget.NewSeparator(),
		a.buildSubmitSection(),
		widget.NewSeparator(),
		a.buildPassbookSection(),
	)
	return container.NewBorder(a.alertBox, nil, nil, nil, container.NewVScroll(container.NewPadded(sections)))
}

// subscribe connects controller signals to widgets.
func (a *App) subscribe() {
	a.subs = append(a.subs,
		a.State.Intake.OnFileChosen(a.onFileChosen),
		a.State.Intake.OnDragActive(func(active bool) {
			a.dropZone.SetHighlighted(active)
		}),
		a.State.File.OnStateChanged(func(s form.State) {
			a.fileIndicator.SetState(s)
		}),
		a.State.Password.OnStateChanged(func(s form.State) {
			a.passwordIndicator.SetState(s)
		}),
		a.State.OnSubmitted(a.onSubmitted),
		a.Alerts.OnChange(a.renderAlerts),
		a.submitBar.OnChange(a.onSubmitProgress),
	)
}

func (a *App) close() {
	a.cancelScore()
	a.cancelFingerprint()
	a.cancelLookup()
	for _, sub := range a.subs {
		sub.Unsubscribe()
	}
	a.subs = nil
	a.State.Close()
	a.Alerts.Clear()
}
