package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Colors of the four strength classes. They double as alert accents.
const (
	colorNameDanger  fyne.ThemeColorName = "cryptbookDanger"
	colorNameWarning fyne.ThemeColorName = "cryptbookWarning"
	colorNameInfo    fyne.ThemeColorName = "cryptbookInfo"
	colorNameSuccess fyne.ThemeColorName = "cryptbookSuccess"
)

var classColorNames = map[string]fyne.ThemeColorName{
	"danger":  colorNameDanger,
	"warning": colorNameWarning,
	"info":    colorNameInfo,
	"success": colorNameSuccess,
}

// cryptbookTheme is the default theme with the strength palette, stronger
// input contrast and a slightly more compact layout.
type cryptbookTheme struct{}

var _ fyne.Theme = (*cryptbookTheme)(nil)

func newTheme() fyne.Theme {
	return &cryptbookTheme{}
}

func (c *cryptbookTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	light := variant == theme.VariantLight
	switch name {
	case colorNameDanger, theme.ColorNameError:
		return pick(light, color.RGBA{R: 0xc8, G: 0x4c, B: 0x4b, A: 0xff}, color.RGBA{R: 0xe0, G: 0x66, B: 0x64, A: 0xff})
	case colorNameWarning, theme.ColorNameWarning:
		return pick(light, color.RGBA{R: 0xd9, G: 0x8e, B: 0x04, A: 0xff}, color.RGBA{R: 0xf0, G: 0xa8, B: 0x20, A: 0xff})
	case colorNameInfo:
		return pick(light, color.RGBA{R: 0x3b, G: 0x82, B: 0xc4, A: 0xff}, color.RGBA{R: 0x5a, G: 0x9e, B: 0xe0, A: 0xff})
	case colorNameSuccess, theme.ColorNameSuccess:
		return pick(light, color.RGBA{R: 0x4c, G: 0xa8, B: 0x4b, A: 0xff}, color.RGBA{R: 0x4c, G: 0xc8, B: 0x4b, A: 0xff})

	case theme.ColorNamePlaceHolder:
		return pick(light, color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}, color.RGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff})
	case theme.ColorNameInputBorder:
		return pick(light, color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}, color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff})
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func pick(light bool, l, d color.RGBA) color.Color {
	if light {
		return l
	}
	return d
}

func (c *cryptbookTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (c *cryptbookTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (c *cryptbookTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInputBorder:
		return 2
	case theme.SizeNameInputRadius:
		return 4
	default:
		return theme.DefaultTheme().Size(name)
	}
}

// classColor maps a strength class to its palette color in the current
// variant. Unknown classes use the foreground color.
func classColor(class string) color.Color {
	name, ok := classColorNames[class]
	if !ok {
		return theme.Color(theme.ColorNameForeground)
	}
	variant := theme.VariantDark
	if app := fyne.CurrentApp(); app != nil {
		variant = app.Settings().ThemeVariant()
	}
	return (&cryptbookTheme{}).Color(name, variant)
}
