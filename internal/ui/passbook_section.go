package ui

import (
	"context"
	"strings"

	"Cryptbook/internal/errors"
	"Cryptbook/internal/log"
	"Cryptbook/internal/notify"
	"Cryptbook/internal/passbook"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// buildPassbookSection creates the password book lookup.
func (a *App) buildPassbookSection() fyne.CanvasObject {
	a.bookEntry = widget.NewEntry()
	a.bookEntry.SetPlaceHolder("Password book ID")
	a.bookEntry.OnSubmitted = func(string) { a.onClickLookup() }

	a.lookupBtn = widget.NewButtonWithIcon("Load", theme.SearchIcon(), a.onClickLookup)

	a.bookFields = make(map[string]*widget.Label)
	a.bookDetails = widget.NewForm()
	for _, f := range (&passbook.Metadata{}).Fields() {
		l := widget.NewLabel(f.Value)
		l.Truncation = fyne.TextTruncateEllipsis
		a.bookFields[f.Name] = l
		a.bookDetails.Append(f.Name, l)
	}
	a.bookDetails.Hide()

	a.bookCopyBtn = widget.NewButtonWithIcon("Copy ID", theme.ContentCopyIcon(), func() {
		if id := a.bookFields["ID"].Text; id != "" && id != "-" {
			_ = notify.CopyToClipboard(a.clipboard, a.Alerts, id)
		}
	})
	a.bookCopyBtn.Hide()

	label := widget.NewLabel("Password book:")
	label.TextStyle = fyne.TextStyle{Bold: true}

	return container.NewVBox(
		label,
		container.NewBorder(nil, nil, nil, a.lookupBtn, a.bookEntry),
		a.bookDetails,
		a.bookCopyBtn,
	)
}

// onClickLookup starts a fetch, or cancels the one in flight.
func (a *App) onClickLookup() {
	if a.lookupStop != nil {
		a.cancelLookup()
		return
	}
	id := strings.TrimSpace(a.bookEntry.Text)
	if id == "" {
		a.Alerts.ShowAlert("Enter a password book ID", notify.Warning)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.lookupStop = cancel
	a.lookupBtn.SetText("Cancel")
	a.lookupBtn.SetIcon(theme.CancelIcon())

	results := passbook.FetchAsync(ctx, a.fetcher, id)
	go func() {
		res := <-results
		fyne.Do(func() {
			if ctx.Err() != nil {
				return // cancelled or superseded
			}
			a.cancelLookup()
			a.showLookupResult(id, res)
		})
	}()
}

func (a *App) cancelLookup() {
	if a.lookupStop == nil {
		return
	}
	a.lookupStop()
	a.lookupStop = nil
	a.lookupBtn.SetText("Load")
	a.lookupBtn.SetIcon(theme.SearchIcon())
}

func (a *App) showLookupResult(id string, res passbook.Result) {
	if res.Err != nil {
		a.bookDetails.Hide()
		a.bookCopyBtn.Hide()
		if errors.IsNotFound(res.Err) {
			a.Alerts.ShowAlert("No password book with ID "+id, notify.Warning)
			return
		}
		a.logger.Error("fetch password book", log.String("id", id), log.Err(res.Err))
		a.Alerts.ShowAlert("Could not load password book "+id, notify.Error)
		return
	}

	for _, f := range res.Metadata.Fields() {
		if l, ok := a.bookFields[f.Name]; ok {
			l.SetText(f.Value)
		}
	}
	a.bookDetails.Show()
	a.bookCopyBtn.Show()
}
