package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette is the window chrome palette served to the browser client.
type Palette struct {
	Theme           string `json:"theme,omitempty"`
	Background      string `json:"background"`
	Foreground      string `json:"foreground"`
	BorderFocused   string `json:"borderFocused"`
	BorderUnfocused string `json:"borderUnfocused"`
	BorderSplit     string `json:"borderSplit"`
	BorderPinned    string `json:"borderPinned"`
	TitleBarBg      string `json:"titleBarBg"`
	TitleBarFg      string `json:"titleBarFg"`
	Close           string `json:"close"`
	Minimize        string `json:"minimize"`
	Maximize        string `json:"maximize"`
	Taskbar         string `json:"taskbar"`
	Highlight       string `json:"highlight"`
}

// CurrentPalette returns the active colors as hex strings.
func CurrentPalette() Palette {
	return Palette{
		Theme:           Name(),
		Background:      ColorToString(DesktopBg()),
		Foreground:      ColorToString(DesktopFg()),
		BorderFocused:   ColorToString(BorderFocused()),
		BorderUnfocused: ColorToString(BorderUnfocused()),
		BorderSplit:     ColorToString(BorderSplit()),
		BorderPinned:    ColorToString(BorderPinned()),
		TitleBarBg:      ColorToString(TitleBarBg()),
		TitleBarFg:      ColorToString(TitleBarFg()),
		Close:           ColorToString(ButtonClose()),
		Minimize:        ColorToString(ButtonMinimize()),
		Maximize:        ColorToString(ButtonMaximize()),
		Taskbar:         ColorToString(TaskbarBg()),
		Highlight:       ColorToString(TaskbarHighlight()),
	}
}

// WindowStyle returns the border style for a window row in the terminal
// monitor.
func WindowStyle(focused, split, pinned bool) lipgloss.Style {
	border := BorderUnfocused()
	switch {
	case focused:
		border = BorderFocused()
	case split:
		border = BorderSplit()
	case pinned:
		border = BorderPinned()
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

// TitleStyle styles a window title.
func TitleStyle(focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(TitleBarFg())
	if focused {
		s = s.Bold(true).Foreground(BorderFocused())
	}
	return s
}
