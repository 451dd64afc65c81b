package desktop

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var (
	darkBackground = color.NRGBA{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff}
	darkForeground = color.White
)

// todoTheme is the default fyne theme, or its dark variant with the
// application's own background and text colors.
type todoTheme struct {
	dark bool
}

var _ fyne.Theme = todoTheme{}

func (t todoTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if !t.dark {
		return theme.DefaultTheme().Color(name, theme.VariantLight)
	}
	switch name {
	case theme.ColorNameBackground, theme.ColorNameInputBackground:
		return darkBackground
	case theme.ColorNameForeground:
		return darkForeground
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (t todoTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t todoTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t todoTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}

// hexColor parses a "#rrggbb" string. Malformed input gives black.
func hexColor(s string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.Black
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
