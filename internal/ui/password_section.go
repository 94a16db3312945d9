package ui

import (
	"fmt"

	"Cryptbook/internal/app"
	"Cryptbook/internal/notify"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// buildPasswordSection creates the password input section.
func (a *App) buildPasswordSection() fyne.CanvasObject {
	a.showHideBtn = widget.NewButton(visibilityLabel(a.State.IsPasswordHidden()), func() {
		mode := a.State.TogglePasswordVisibility()
		hidden := mode == app.PasswordModeHidden
		a.passwordEntry.SetHidden(hidden)
		a.showHideBtn.SetText(visibilityLabel(hidden))
	})

	clearBtn := widget.NewButton("Clear", func() {
		a.passwordEntry.SetText("")
	})

	a.copyBtn = widget.NewButton("Copy", func() {
		_ = notify.CopyToClipboard(a.clipboard, a.Alerts, a.State.Password.Value())
	})

	pasteBtn := widget.NewButton("Paste", func() {
		if cb := a.fyneApp.Clipboard(); cb != nil {
			a.passwordEntry.SetText(cb.Content())
		}
	})

	a.createBtn = widget.NewButton("Create", func() {
		a.showPassgenModal()
	})

	buttonRow := container.NewGridWithColumns(5,
		a.showHideBtn, clearBtn, a.copyBtn, pasteBtn, a.createBtn,
	)

	a.passwordEntry = NewPasswordEntry()
	a.passwordEntry.SetPlaceHolder("Password")
	a.passwordEntry.OnChanged = func(text string) {
		a.State.Password.Set(text)
		a.scorePassword(text)
	}

	a.passwordIndicator = NewValidationIndicator()
	a.passwordStrength = NewStrengthIndicator()
	a.passwordLabel = NewColoredLabel("", classColor(""))
	a.guessLabel = widget.NewLabel("")
	a.guessLabel.Importance = widget.LowImportance

	passwordRow := container.NewBorder(nil, nil, nil,
		container.NewHBox(a.passwordIndicator, a.passwordStrength), a.passwordEntry)

	passwordLabel := widget.NewLabel("Password:")
	passwordLabel.TextStyle = fyne.TextStyle{Bold: true}

	return container.NewVBox(
		passwordLabel,
		buttonRow,
		passwordRow,
		container.NewHBox(a.passwordLabel, a.guessLabel),
	)
}

func visibilityLabel(hidden bool) string {
	if hidden {
		return "Show"
	}
	return "Hide"
}

// updatePasswordStrength rescores the password. It runs debounced while
// the user types.
func (a *App) updatePasswordStrength() {
	r := a.State.ScorePassword()
	showStrength(a.boundPassword, a.passwordStrength, a.passwordLabel, r.Score)
	if r.Score == 0 {
		a.guessLabel.SetText("")
		return
	}
	a.guessLabel.SetText(fmt.Sprintf("%.0f bits, guessability %d/4", r.Entropy, r.Guesses))
}

// showStrength pushes score into a strength binding and its widgets.
func showStrength(b *app.BoundStrength, ind *StrengthIndicator, lbl *ColoredLabel, score int) {
	b.Set(score)
	ind.SetScore(score)
	text, _ := b.Label.Get()
	class, _ := b.Class.Get()
	lbl.SetText(text)
	lbl.SetColor(classColor(class))
}
