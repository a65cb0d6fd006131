// Package theme provides the window chrome colors for nyxos, both as
// lipgloss colors for the terminal monitor and as hex strings for the
// browser client.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var (
	enabled bool
	active  string
)

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming is disabled and the built-in colors are used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		active = ""
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		active = "default"
		return fmt.Errorf("unknown theme %q, using default", themeName)
	}
	active = themeName
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Name returns the active theme id, or "" when theming is disabled.
func Name() string {
	return active
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Desktop background and text
func DesktopBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#1a1a2e")
	}
	return t.Bg
}

func DesktopFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// Window border colors
func BorderUnfocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#808090")
	}
	return t.BrightBlack
}

func BorderFocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AFFFFF")
	}
	return t.BrightCyan
}

func BorderSplit() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#5c5cff")
	}
	return t.BrightBlue
}

func BorderPinned() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd00cd")
	}
	return t.Purple
}

// Title bar colors
func TitleBarBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#2a2a3e")
	}
	return t.Black
}

func TitleBarFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#a0a0a8")
	}
	return t.White
}

// Title bar buttons
func ButtonClose() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd0000")
	}
	return t.Red
}

func ButtonMinimize() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cdcd00")
	}
	return t.Yellow
}

func ButtonMaximize() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00cd00")
	}
	return t.Green
}

// Taskbar colors
func TaskbarBg() color.Color {
	return lipgloss.Color("#2a2a3e")
}

func TaskbarHighlight() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00ff00")
	}
	return t.BrightGreen
}

func TaskbarDimmed() color.Color {
	return lipgloss.Color("#808090")
}

// Playback status colors
func StatusPlaying() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00cd00")
	}
	return t.Green
}

func StatusPaused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cdcd00")
	}
	return t.Yellow
}

func StatusFailed() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd0000")
	}
	return t.Red
}

// Help overlay colors
func HelpKeyBadge() color.Color {
	return lipgloss.Color("5") // Purple/magenta
}

func HelpGray() color.Color {
	return lipgloss.Color("8")
}

func HelpBorder() color.Color {
	return lipgloss.Color("14")
}

// CLI table colors
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

func CLITableBorder() color.Color {
	return lipgloss.Color("14")
}

func CLITableKey() color.Color {
	return lipgloss.Color("11")
}

func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString converts a color.Color to a hex string
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	// RGBA returns values in range 0-65535, convert to 0-255
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
	return fmt.Sprintf("#%02x%02x%02x", r8, g8, b8)
}
