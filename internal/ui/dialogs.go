package ui

import (
	"fmt"

	"Cryptbook/internal/errors"
	"Cryptbook/internal/log"
	"Cryptbook/internal/notify"
	"Cryptbook/internal/util"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// chooseFile opens the file chooser. The picked file goes through the same
// intake path as a drop.
func (a *App) chooseFile() {
	if a.State.Working() {
		return
	}
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.reportIntakeError(err)
			return
		}
		if reader == nil {
			return // cancelled
		}
		uri := reader.URI()
		_ = reader.Close()
		if err := a.State.Intake.Choose(uri); err != nil {
			a.reportIntakeError(err)
		}
	}, a.Window)
	d.Show()
}

// Defaults of the password generator dialog.
const (
	passgenMinLength     = 12
	passgenMaxLength     = 64
	passgenDefaultLength = 32
)

// showPassgenModal shows the password generator dialog.
func (a *App) showPassgenModal() {
	opts := util.PassgenOptions{
		Length:  passgenDefaultLength,
		Upper:   true,
		Lower:   true,
		Numbers: true,
		Symbols: true,
	}
	copyResult := false

	lengthLabel := widget.NewLabel(fmt.Sprintf("Length: %d", opts.Length))
	lengthSlider := widget.NewSlider(passgenMinLength, passgenMaxLength)
	lengthSlider.Step = 1
	lengthSlider.Value = float64(opts.Length)
	lengthSlider.OnChanged = func(value float64) {
		opts.Length = int(value)
		lengthLabel.SetText(fmt.Sprintf("Length: %d", opts.Length))
	}

	check := func(label string, target *bool) *widget.Check {
		c := widget.NewCheck(label, func(checked bool) { *target = checked })
		c.SetChecked(*target)
		return c
	}

	content := container.NewVBox(
		lengthLabel,
		lengthSlider,
		check("Uppercase", &opts.Upper),
		check("Lowercase", &opts.Lower),
		check("Numbers", &opts.Numbers),
		check("Symbols", &opts.Symbols),
		check("Copy to clipboard", &copyResult),
	)

	a.passgenModal = dialog.NewCustomConfirm("Generate password:", "Generate", "Cancel", content, func(generate bool) {
		if !generate {
			return
		}
		pw, err := a.State.GenPassword(opts)
		if err != nil {
			a.logger.Error("generate password", log.Err(err))
			a.Alerts.ShowAlert("Could not generate a password", notify.Error)
			return
		}
		if pw == "" {
			a.Alerts.ShowAlert("Select at least one character type", notify.Warning)
			return
		}
		a.passwordEntry.SetText(pw)
		if copyResult {
			_ = notify.CopyToClipboard(a.clipboard, a.Alerts, pw)
		}
	}, a.Window)
	a.passgenModal.Show()
}

// fyneClipboard writes through the application clipboard. Platforms that
// refuse the write leave the old content in place, which is read back to
// detect it.
type fyneClipboard struct {
	app fyne.App
}

func (c *fyneClipboard) WriteText(text string) error {
	cb := c.app.Clipboard()
	if cb == nil {
		return errors.ErrClipboardDenied
	}
	cb.SetContent(text)
	if cb.Content() != text {
		return errors.ErrClipboardDenied
	}
	return nil
}
