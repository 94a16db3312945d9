package ui

import (
	"context"
	"fmt"
	"sync"

	"Cryptbook/internal/app"
	"Cryptbook/internal/errors"
	"Cryptbook/internal/event"
	"Cryptbook/internal/log"
	"Cryptbook/internal/notify"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// barIndicator adapts a progress bar to progress.Indicator. Values are
// percentages; the bar itself is only touched on the UI goroutine.
type barIndicator struct {
	bar *widget.ProgressBar

	mu      sync.Mutex
	value   float64
	changed event.Registry[float64]
}

func newBarIndicator() *barIndicator {
	b := &barIndicator{bar: widget.NewProgressBar()}
	b.bar.Max = 100
	return b
}

func (b *barIndicator) Value() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

func (b *barIndicator) SetValue(percent float64) {
	b.mu.Lock()
	b.value = percent
	b.mu.Unlock()
	fyne.Do(func() { b.bar.SetValue(percent) })
	b.changed.Emit(percent)
}

// OnChange registers fn for every new value.
func (b *barIndicator) OnChange(fn func(float64)) *event.Subscription {
	return b.changed.Subscribe(fn)
}

// buildInputSection creates the drop zone and the fingerprint row.
func (a *App) buildInputSection() fyne.CanvasObject {
	a.dropZone = NewDropZone(a.boundFile, a.chooseFile)
	a.chooseBtn = widget.NewButtonWithIcon("Choose file", theme.FolderOpenIcon(), a.chooseFile)
	a.fileIndicator = NewValidationIndicator()

	a.fingerprint = NewDisabledEntry()
	a.fingerprint.SetPlaceHolder("BLAKE2b-256 fingerprint")
	a.hashBar = newBarIndicator()
	a.hashBtn = NewTooltipButton("Fingerprint", "Hash the staged file before submitting", a.startFingerprint)
	a.hashBtn.Disable()

	label := widget.NewLabel("File:")
	label.TextStyle = fyne.TextStyle{Bold: true}

	return container.NewVBox(
		container.NewBorder(nil, nil, label, container.NewHBox(a.fileIndicator, a.chooseBtn)),
		a.dropZone,
		container.NewBorder(nil, nil, nil, a.hashBtn, a.fingerprint),
		a.hashBar.bar,
		widget.NewLabelWithData(a.boundProgress.Status),
	)
}

// startFingerprint hashes the staged file in the background. The bar shows
// real progress through the presenter.
func (a *App) startFingerprint() {
	f, ok := a.State.Intake.Active()
	if !ok {
		return
	}
	a.cancelFingerprint()

	ctx, cancel := context.WithCancel(context.Background())
	a.hashCancel = cancel
	a.hashBtn.Disable()

	reporter := app.NewPresenterReporter(a.Presenter, a.hashBar, func(status string) {
		fyne.Do(func() { _ = a.boundProgress.Status.Set(status) })
	})

	go func() {
		sum, err := app.Fingerprint(ctx, f.Path, reporter)
		fyne.Do(func() {
			a.hashBtn.Enable()
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, app.ErrCancelled) {
					return
				}
				a.logger.Error("fingerprint", log.String("path", f.Path), log.Err(err))
				a.Alerts.ShowAlert("Could not fingerprint "+f.Name, notify.Error)
				return
			}
			if cur, ok := a.State.Intake.Active(); !ok || cur.Path != f.Path {
				return
			}
			a.fingerprint.SetText(sum)
		})
	}()
}

func (a *App) cancelFingerprint() {
	if a.hashCancel != nil {
		a.hashCancel()
		a.hashCancel = nil
	}
}

// buildSubmitSection creates the submit row and its progress bar.
func (a *App) buildSubmitSection() fyne.CanvasObject {
	a.submitBtn = widget.NewButtonWithIcon("Encrypt", theme.ConfirmIcon(), a.onClickSubmit)
	a.submitBtn.Importance = widget.HighImportance
	a.resetBtn = widget.NewButtonWithIcon("Reset", theme.ContentClearIcon(), a.onClickReset)
	a.submitBar = newBarIndicator()
	a.statusLbl = widget.NewLabel("")

	return container.NewVBox(
		container.NewGridWithColumns(2, a.resetBtn, a.submitBtn),
		a.submitBar.bar,
		a.statusLbl,
	)
}

// onClickSubmit validates the form. A blocked submit is reported by the
// engine and marks the failing fields.
func (a *App) onClickSubmit() {
	if a.State.Working() {
		return
	}
	if err := a.State.Submit(); err != nil {
		a.logger.Debug("submit blocked", log.Err(err))
	}
}

// onSubmitted starts the progress display for an accepted submission.
func (a *App) onSubmitted(sub app.Submission) {
	a.lastSub = sub
	a.cancelFingerprint()
	a.boundFile.Reset()
	a.fingerprint.SetText("")
	a.hashBtn.Disable()
	a.Presenter.SetPercent(a.hashBar, 0)

	a.submitBtn.Disable()
	a.statusLbl.SetText(fmt.Sprintf("Encrypting %s with %d rounds", sub.File.Name, sub.Rounds))
	a.Presenter.SetPercent(a.submitBar, 0)
	a.Presenter.AutoAnimate(a.submitBar)
}

// onSubmitProgress finishes the submission once the bar is full.
func (a *App) onSubmitProgress(percent float64) {
	if percent < 100 || !a.State.Working() {
		return
	}
	a.State.Done()
	sub := a.lastSub
	fyne.Do(func() {
		a.submitBtn.Enable()
		a.statusLbl.SetText(fmt.Sprintf("Submission %s complete", sub.ID))
		a.Alerts.ShowAlert(fmt.Sprintf("%s encrypted", sub.File.Name), notify.Success)
	})
}

// onClickReset returns the window to its initial state.
func (a *App) onClickReset() {
	a.cancelScore()
	a.cancelFingerprint()
	a.Presenter.Stop(a.submitBar)
	a.State.Reset()

	a.boundFile.Reset()
	a.boundProgress.Reset()
	a.fingerprint.SetText("")
	a.hashBtn.Disable()
	a.Presenter.SetPercent(a.hashBar, 0)
	a.Presenter.SetPercent(a.submitBar, 0)
	a.statusLbl.SetText("")
	a.submitBtn.Enable()

	a.passwordEntry.SetText("")
	a.passwordEntry.SetHidden(true)
	a.showHideBtn.SetText(visibilityLabel(true))
	a.resetAdvancedSection()
	a.updatePasswordStrength()
}
