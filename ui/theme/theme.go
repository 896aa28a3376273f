package theme

// Palette and style setup for the viewer window. The status bar and the area
// around the image follow the active light/dark mode.

import (
	"fmt"
	"image/color"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	Light = "light"
	Dark  = "dark"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#f7f9fb" // window background
	ColorSurface   = "#ffffff" // around the image
	ColorBorder    = "#d0d7de"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Text      string
	TextMuted string
}

// PaletteFor returns the colors of a mode.
func PaletteFor(dark bool) PaletteSnapshot {
	if dark {
		return PaletteSnapshot{
			AppBg:     "#0f172a",
			Surface:   "#1e293b",
			Border:    "#334155",
			Text:      "#f1f5f9",
			TextMuted: "#94a3b8",
		}
	}
	return PaletteSnapshot{
		AppBg:     ColorBg,
		Surface:   ColorSurface,
		Border:    ColorBorder,
		Text:      ColorText,
		TextMuted: ColorTextMuted,
	}
}

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot { return PaletteFor(darkMode) }

// SurfaceColor is the canvas fill behind the image for the current mode.
func SurfaceColor() color.Color { return HexColor(CurrentPalette().Surface) }

// HexColor parses "#rrggbb". Malformed input yields opaque black.
func HexColor(s string) color.NRGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{A: 0xff}
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// ParseMode maps a theme name to the dark flag.
func ParseMode(name string) (dark bool, err error) {
	switch name {
	case Light:
		return false, nil
	case Dark:
		return true, nil
	default:
		return false, fmt.Errorf("theme: unknown theme %q (want %s or %s)", name, Light, Dark)
	}
}

// ModeName returns the name of a mode.
func ModeName(dark bool) string {
	if dark {
		return Dark
	}
	return Light
}

// style names used with Style("status.TLabel") etc.
const (
	StyleStatusLabel = "status.TLabel"
)

// internal flag for current mode
var darkMode bool

// InitStyles (re)applies styles for the current darkMode value.
func InitStyles() { applyStyles(darkMode) }

// SetDark toggles dark mode and reapplies styles. Returns new mode value.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles(darkMode)
	return darkMode
}

// IsDark reports current mode.
func IsDark() bool { return darkMode }

func applyStyles(dark bool) {
	p := PaletteFor(dark)
	_ = ActivateTheme("azure " + ModeName(dark))
	App.Configure(Background(p.AppBg))
	StyleConfigure(StyleStatusLabel,
		Foreground(p.TextMuted),
		Background(p.AppBg),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
}
