package ui

import (
	"image/color"

	"Cryptbook/internal/form"
	"Cryptbook/internal/strength"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// StrengthIndicator displays a 0-100 score as a circular arc, colored from
// red (weak) to green (strong).
type StrengthIndicator struct {
	widget.BaseWidget
	score   int
	visible bool
}

// NewStrengthIndicator creates a new strength indicator.
func NewStrengthIndicator() *StrengthIndicator {
	p := &StrengthIndicator{visible: true}
	p.ExtendBaseWidget(p)
	return p
}

// SetScore updates the score, clamped to 0-100.
func (p *StrengthIndicator) SetScore(score int) {
	p.score = min(max(score, 0), strength.MaxScore)
	p.Refresh()
}

// SetVisible sets whether the indicator should be visible.
func (p *StrengthIndicator) SetVisible(visible bool) {
	p.visible = visible
	p.Refresh()
}

// MinSize returns the minimum size of the indicator.
func (p *StrengthIndicator) MinSize() fyne.Size {
	return fyne.NewSize(24, 24)
}

// CreateRenderer creates the renderer for the widget.
func (p *StrengthIndicator) CreateRenderer() fyne.WidgetRenderer {
	// StartAngle 0 is 12 o'clock, positive is clockwise
	arc := canvas.NewArc(0, 0, 0.6, color.Transparent)
	arc.SetMinSize(fyne.NewSize(20, 20))

	r := &strengthRenderer{
		indicator: p,
		arc:       arc,
	}
	r.updateArc()
	return r
}

type strengthRenderer struct {
	indicator *StrengthIndicator
	arc       *canvas.Arc
}

func (r *strengthRenderer) Layout(size fyne.Size) {
	arcSize := fyne.NewSize(20, 20)
	offset := fyne.NewPos(
		(size.Width-arcSize.Width)/2,
		(size.Height-arcSize.Height)/2,
	)
	r.arc.Move(offset)
	r.arc.Resize(arcSize)
}

func (r *strengthRenderer) MinSize() fyne.Size {
	return r.indicator.MinSize()
}

// strengthColor blends 0xc84c4b (score 0) into 0x4cc84b (score 100).
func strengthColor(score int) color.RGBA {
	shift := uint8(0x7c * score / strength.MaxScore)
	return color.RGBA{R: 0xc8 - shift, G: 0x4c + shift, B: 0x4b, A: 0xff}
}

// strengthAngle never draws less than a tenth of the ring so an empty score
// is still visible.
func strengthAngle(score int) float32 {
	return float32(36 + 324*score/strength.MaxScore)
}

func (r *strengthRenderer) updateArc() {
	if !r.indicator.visible {
		r.arc.FillColor = color.Transparent
		return
	}
	r.arc.StartAngle = 0
	r.arc.EndAngle = strengthAngle(r.indicator.score)
	r.arc.FillColor = strengthColor(r.indicator.score)
}

func (r *strengthRenderer) Refresh() {
	r.updateArc()
	canvas.Refresh(r.arc)
}

func (r *strengthRenderer) Destroy() {}

func (r *strengthRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.arc}
}

// ValidationIndicator shows the validation state of one form field: hidden
// until the field has been validated, then green or red.
type ValidationIndicator struct {
	widget.BaseWidget
	state form.State
}

// NewValidationIndicator creates a new validation indicator.
func NewValidationIndicator() *ValidationIndicator {
	v := &ValidationIndicator{}
	v.ExtendBaseWidget(v)
	return v
}

// SetState shows s.
func (v *ValidationIndicator) SetState(s form.State) {
	v.state = s
	v.Refresh()
}

// MinSize returns the minimum size of the indicator.
func (v *ValidationIndicator) MinSize() fyne.Size {
	return fyne.NewSize(24, 24)
}

// CreateRenderer creates the renderer for the widget.
func (v *ValidationIndicator) CreateRenderer() fyne.WidgetRenderer {
	circle := canvas.NewCircle(color.Transparent)
	circle.StrokeWidth = 2

	r := &validationRenderer{indicator: v, circle: circle}
	r.updateColor()
	return r
}

type validationRenderer struct {
	indicator *ValidationIndicator
	circle    *canvas.Circle
}

func (r *validationRenderer) Layout(size fyne.Size) {
	circleSize := fyne.NewSize(20, 20)
	offset := fyne.NewPos(
		(size.Width-circleSize.Width)/2,
		(size.Height-circleSize.Height)/2,
	)
	r.circle.Move(offset)
	r.circle.Resize(circleSize)
}

func (r *validationRenderer) MinSize() fyne.Size {
	return r.indicator.MinSize()
}

func (r *validationRenderer) updateColor() {
	r.circle.FillColor = color.Transparent
	switch r.indicator.state {
	case form.Valid:
		r.circle.StrokeColor = classColor("success")
	case form.Invalid:
		r.circle.StrokeColor = classColor("danger")
	default:
		r.circle.StrokeColor = color.Transparent
	}
}

func (r *validationRenderer) Refresh() {
	r.updateColor()
	canvas.Refresh(r.circle)
}

func (r *validationRenderer) Destroy() {}

func (r *validationRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.circle}
}

// DisabledEntry is an Entry widget that appears disabled but still shows content.
type DisabledEntry struct {
	widget.Entry
}

// NewDisabledEntry creates a new disabled entry.
func NewDisabledEntry() *DisabledEntry {
	e := &DisabledEntry{}
	e.ExtendBaseWidget(e)
	e.Disable()
	return e
}

// SetText sets the text of the disabled entry.
func (e *DisabledEntry) SetText(text string) {
	e.Entry.SetText(text)
}

// PasswordEntry is an Entry widget that can toggle between password and text mode.
type PasswordEntry struct {
	widget.Entry
	hidden bool
}

// NewPasswordEntry creates a new password entry.
func NewPasswordEntry() *PasswordEntry {
	e := &PasswordEntry{hidden: true}
	e.ExtendBaseWidget(e)
	e.Password = true
	return e
}

// SetHidden sets whether the password is hidden.
func (e *PasswordEntry) SetHidden(hidden bool) {
	e.hidden = hidden
	e.Password = hidden
	e.Refresh()
}

// IsHidden returns whether the password is currently hidden.
func (e *PasswordEntry) IsHidden() bool {
	return e.hidden
}

// showTooltip pops text up just below obj. It returns nil when obj is not on
// a canvas yet.
func showTooltip(obj fyne.CanvasObject, tip string) *widget.PopUp {
	drv := fyne.CurrentApp().Driver()
	c := drv.CanvasForObject(obj)
	if c == nil {
		return nil
	}
	text := canvas.NewText(tip, theme.Color(theme.ColorNameForeground))
	text.TextSize = theme.CaptionTextSize()
	bg := canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))
	pop := widget.NewPopUp(container.NewStack(bg, container.NewPadded(text)), c)
	pos := drv.AbsolutePositionForObject(obj)
	pop.ShowAtPosition(fyne.NewPos(pos.X, pos.Y+obj.Size().Height+2))
	return pop
}

// TooltipButton is a button with a tooltip that shows on hover.
type TooltipButton struct {
	widget.Button
	tooltip string
	popup   *widget.PopUp
}

var _ desktop.Hoverable = (*TooltipButton)(nil)

// NewTooltipButton creates a new button with a tooltip.
func NewTooltipButton(label string, tooltip string, onTapped func()) *TooltipButton {
	b := &TooltipButton{tooltip: tooltip}
	b.Text = label
	b.OnTapped = onTapped
	b.ExtendBaseWidget(b)
	return b
}

// SetTooltip updates the tooltip text.
func (b *TooltipButton) SetTooltip(tooltip string) {
	b.tooltip = tooltip
}

func (b *TooltipButton) MouseIn(e *desktop.MouseEvent) {
	if b.tooltip == "" || b.Disabled() {
		return
	}
	b.popup = showTooltip(b, b.tooltip)
}

func (b *TooltipButton) MouseMoved(e *desktop.MouseEvent) {}

func (b *TooltipButton) MouseOut() {
	if b.popup != nil {
		b.popup.Hide()
		b.popup = nil
	}
}

// TooltipCheckbox is a checkbox with a tooltip that shows on hover.
type TooltipCheckbox struct {
	widget.Check
	tooltip string
	popup   *widget.PopUp
}

var _ desktop.Hoverable = (*TooltipCheckbox)(nil)

// NewTooltipCheckbox creates a new checkbox with a tooltip.
func NewTooltipCheckbox(label string, tooltip string, changed func(bool)) *TooltipCheckbox {
	c := &TooltipCheckbox{tooltip: tooltip}
	c.Text = label
	c.OnChanged = changed
	c.ExtendBaseWidget(c)
	return c
}

func (c *TooltipCheckbox) MouseIn(e *desktop.MouseEvent) {
	if c.tooltip == "" || c.Disabled() {
		return
	}
	c.popup = showTooltip(c, c.tooltip)
}

func (c *TooltipCheckbox) MouseMoved(e *desktop.MouseEvent) {}

func (c *TooltipCheckbox) MouseOut() {
	if c.popup != nil {
		c.popup.Hide()
		c.popup = nil
	}
}

// ColoredLabel is a label with custom text color.
type ColoredLabel struct {
	widget.BaseWidget
	text  string
	color color.Color
}

// NewColoredLabel creates a new label with custom color.
func NewColoredLabel(text string, col color.Color) *ColoredLabel {
	l := &ColoredLabel{text: text, color: col}
	l.ExtendBaseWidget(l)
	return l
}

// SetText updates the label text.
func (l *ColoredLabel) SetText(text string) {
	l.text = text
	l.Refresh()
}

// SetColor updates the label color.
func (l *ColoredLabel) SetColor(col color.Color) {
	l.color = col
	l.Refresh()
}

// MinSize returns the minimum size needed to display the label.
func (l *ColoredLabel) MinSize() fyne.Size {
	textSize := fyne.MeasureText(l.text, theme.TextSize(), fyne.TextStyle{})
	return textSize
}

// CreateRenderer creates the renderer for the colored label.
func (l *ColoredLabel) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(l.text, l.color)
	text.TextSize = theme.TextSize()
	return &coloredLabelRenderer{label: l, text: text}
}

type coloredLabelRenderer struct {
	label *ColoredLabel
	text  *canvas.Text
}

func (r *coloredLabelRenderer) Layout(size fyne.Size) {
	r.text.Move(fyne.NewPos(0, 0))
}

func (r *coloredLabelRenderer) MinSize() fyne.Size {
	return r.label.MinSize()
}

func (r *coloredLabelRenderer) Refresh() {
	r.text.Text = r.label.text
	r.text.Color = r.label.color
	canvas.Refresh(r.text)
}

func (r *coloredLabelRenderer) Destroy() {}

func (r *coloredLabelRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.text}
}
