package ui

import (
	"Cryptbook/internal/notify"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// renderAlerts rebuilds the alert stack, newest on top.
func (a *App) renderAlerts(alerts []notify.Alert) {
	rows := make([]fyne.CanvasObject, 0, len(alerts))
	for _, al := range alerts {
		rows = append(rows, a.alertRow(al))
	}
	a.alertBox.Objects = rows
	a.alertBox.Refresh()
}

func (a *App) alertRow(al notify.Alert) fyne.CanvasObject {
	msg := widget.NewLabel(al.Message)
	msg.Importance = severityImportance(al.Severity)
	msg.Wrapping = fyne.TextWrapWord

	id := al.ID
	dismiss := widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
		a.Alerts.Dismiss(id)
	})
	dismiss.Importance = widget.LowImportance

	return container.NewBorder(nil, nil, widget.NewIcon(severityIcon(al.Severity)), dismiss, msg)
}

func severityImportance(s notify.Severity) widget.Importance {
	switch s {
	case notify.Success:
		return widget.SuccessImportance
	case notify.Error:
		return widget.DangerImportance
	case notify.Warning:
		return widget.WarningImportance
	}
	return widget.MediumImportance
}

func severityIcon(s notify.Severity) fyne.Resource {
	switch s {
	case notify.Success:
		return theme.ConfirmIcon()
	case notify.Error:
		return theme.ErrorIcon()
	case notify.Warning:
		return theme.WarningIcon()
	}
	return theme.InfoIcon()
}
