package ui

import (
	"fmt"

	"Cryptbook/internal/strength"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/samber/lo"
)

var algorithmTooltips = map[string]string{
	"zip":     "Deflate inside a .zip container",
	"tar":     "Plain tar archive, no compression",
	"gzip":    "Single-stream gzip",
	"tar.gz":  "tar archive compressed with gzip",
	"tar.bz2": "tar archive compressed with bzip2",
}

// buildAdvancedSection creates the encryption options: rounds, an optional
// code that derives them, and the compression algorithms.
func (a *App) buildAdvancedSection() fyne.CanvasObject {
	a.roundsLabel = widget.NewLabel("")

	a.roundsSlider = widget.NewSlider(strength.MinRounds, strength.MaxRounds)
	a.roundsSlider.Step = 1
	a.roundsSlider.Value = float64(a.State.Rounds())
	a.roundsSlider.OnChanged = func(value float64) {
		n := a.State.SetRounds(int(value))
		a.throttleRounds(n)
	}
	// Throttling drops the last drag event; settle on release.
	a.roundsSlider.OnChangeEnded = func(float64) {
		a.updateEncryptionStrength()
	}

	a.codeEntry = widget.NewEntry()
	a.codeEntry.SetPlaceHolder("Code (optional, overrides rounds)")
	a.codeEntry.OnChanged = func(text string) {
		a.State.Code.Set(text)
		a.updateEncryptionStrength()
	}

	a.algorithmChecks = make(map[string]*TooltipCheckbox, len(strength.SupportedAlgorithms))
	enabled := a.State.Algorithms()
	checks := make([]fyne.CanvasObject, 0, len(strength.SupportedAlgorithms))
	for _, alg := range strength.SupportedAlgorithms {
		c := NewTooltipCheckbox(alg, algorithmTooltips[alg], func(checked bool) {
			a.State.SetAlgorithm(alg, checked)
			a.updateEncryptionStrength()
		})
		c.Checked = lo.Contains(enabled, alg)
		a.algorithmChecks[alg] = c
		checks = append(checks, c)
	}

	a.encryptionStrength = NewStrengthIndicator()
	a.encryptionLabel = NewColoredLabel("", classColor(""))

	label := widget.NewLabel("Encryption:")
	label.TextStyle = fyne.TextStyle{Bold: true}

	return container.NewVBox(
		label,
		container.NewBorder(nil, nil, a.roundsLabel, nil, a.roundsSlider),
		a.codeEntry,
		container.NewGridWithColumns(3, checks...),
		container.NewHBox(a.encryptionStrength, a.encryptionLabel),
	)
}

// updateEncryptionStrength rescores rounds and algorithms.
func (a *App) updateEncryptionStrength() {
	r := a.State.ScoreEncryption()
	showStrength(a.boundEncryption, a.encryptionStrength, a.encryptionLabel, r.Score)
	if a.State.Code.Value() != "" {
		a.roundsLabel.SetText(fmt.Sprintf("Rounds: %d (code)", r.Rounds))
		a.roundsSlider.Disable()
		return
	}
	a.roundsLabel.SetText(fmt.Sprintf("Rounds: %d", r.Rounds))
	a.roundsSlider.Enable()
}

// resetAdvancedSection restores the defaults after State.Reset.
func (a *App) resetAdvancedSection() {
	a.codeEntry.SetText("")
	a.roundsSlider.SetValue(float64(a.State.Rounds()))
	enabled := a.State.Algorithms()
	for alg, c := range a.algorithmChecks {
		c.SetChecked(lo.Contains(enabled, alg))
	}
	a.updateEncryptionStrength()
}
