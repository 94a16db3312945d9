package ui

import (
	"image/color"

	"Cryptbook/internal/app"
	"Cryptbook/internal/errors"
	"Cryptbook/internal/intake"
	"Cryptbook/internal/log"
	"Cryptbook/internal/notify"
	"Cryptbook/internal/util"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// DropZone shows the staged file and opens the file chooser when tapped.
// It is highlighted while a drag is active.
type DropZone struct {
	widget.BaseWidget

	OnTapped func()

	file        *app.BoundFile
	highlighted bool
}

var _ fyne.Tappable = (*DropZone)(nil)

// NewDropZone creates a drop zone showing file.
func NewDropZone(file *app.BoundFile, tapped func()) *DropZone {
	d := &DropZone{file: file, OnTapped: tapped}
	d.ExtendBaseWidget(d)
	return d
}

// SetHighlighted marks an active drag.
func (d *DropZone) SetHighlighted(on bool) {
	d.highlighted = on
	d.Refresh()
}

// Highlighted reports whether the zone is marked.
func (d *DropZone) Highlighted() bool {
	return d.highlighted
}

func (d *DropZone) Tapped(*fyne.PointEvent) {
	if d.OnTapped != nil {
		d.OnTapped()
	}
}

func (d *DropZone) CreateRenderer() fyne.WidgetRenderer {
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeWidth = 2
	border.CornerRadius = theme.InputRadiusSize()

	icon := widget.NewIcon(kindIcon(util.KindFile))
	name := widget.NewLabelWithData(d.file.Label)
	name.Truncation = fyne.TextTruncateEllipsis
	details := widget.NewLabelWithData(binding.NewSprintf("%s  %s", d.file.Size, d.file.Type))
	details.Importance = widget.LowImportance

	r := &dropZoneRenderer{
		zone:    d,
		border:  border,
		icon:    icon,
		content: container.NewBorder(nil, nil, icon, nil, container.NewVBox(name, details)),
	}
	r.listener = binding.NewDataListener(func() {
		kind, _ := d.file.Kind.Get()
		icon.SetResource(kindIcon(util.FileKind(kind)))
	})
	d.file.Kind.AddListener(r.listener)
	r.Refresh()
	return r
}

type dropZoneRenderer struct {
	zone     *DropZone
	border   *canvas.Rectangle
	icon     *widget.Icon
	content  *fyne.Container
	listener binding.DataListener
}

func (r *dropZoneRenderer) Layout(size fyne.Size) {
	r.border.Resize(size)
	pad := theme.Padding()
	r.content.Move(fyne.NewPos(pad, pad))
	r.content.Resize(size.SubtractWidthHeight(2*pad, 2*pad))
}

func (r *dropZoneRenderer) MinSize() fyne.Size {
	pad := theme.Padding()
	return r.content.MinSize().AddWidthHeight(2*pad, 2*pad)
}

func (r *dropZoneRenderer) Refresh() {
	if r.zone.highlighted {
		r.border.StrokeColor = theme.Color(theme.ColorNamePrimary)
		r.border.FillColor = theme.Color(theme.ColorNameHover)
	} else {
		r.border.StrokeColor = theme.Color(theme.ColorNameInputBorder)
		r.border.FillColor = color.Transparent
	}
	r.border.Refresh()
	r.content.Refresh()
}

func (r *dropZoneRenderer) Destroy() {
	r.zone.file.Kind.RemoveListener(r.listener)
}

func (r *dropZoneRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.border, r.content}
}

// kindIcon maps a file kind to a theme icon.
func kindIcon(kind util.FileKind) fyne.Resource {
	switch kind {
	case util.KindImage:
		return theme.FileImageIcon()
	case util.KindAudio:
		return theme.FileAudioIcon()
	case util.KindVideo:
		return theme.FileVideoIcon()
	case util.KindText, util.KindWord, util.KindExcel:
		return theme.FileTextIcon()
	case util.KindPDF, util.KindArchive:
		return theme.FileApplicationIcon()
	}
	return theme.FileIcon()
}

// onDrop handles files dropped onto the window. Fyne reports only the
// drop itself, so the drag marker is raised and cleared around it.
func (a *App) onDrop(_ fyne.Position, uris []fyne.URI) {
	if a.State.Working() {
		return
	}
	a.State.Intake.DragOver()
	if err := a.State.Intake.Drop(uris); err != nil {
		a.reportIntakeError(err)
	}
}

// onFileChosen shows a newly staged file.
func (a *App) onFileChosen(f intake.StagedFile) {
	a.logger.Debug("file chosen", log.String("name", f.Name), log.String("source", f.Source.String()))
	a.cancelFingerprint()
	a.boundFile.Set(f)
	a.fingerprint.SetText("")
	a.hashBar.SetValue(0)
	a.hashBtn.Enable()
	a.scorePassword(f.Name)
}

func (a *App) reportIntakeError(err error) {
	a.logger.Warn("file rejected", log.Err(err))
	var ve *errors.ValidationError
	if errors.As(err, &ve) {
		a.Alerts.ShowAlert(ve.Message, notify.Warning)
		return
	}
	a.Alerts.ShowAlert("Could not read the selected file", notify.Error)
}
