package desktop

import "strings"

// Mode represents the layout mode a window is displayed in.
type Mode string

const (
	// ModeWindowed is the default free-floating window chrome.
	ModeWindowed Mode = "windowed"
	// ModeFullscreen is set while a window is maximized.
	ModeFullscreen Mode = "fullscreen"
	// ModeSplitLeft occupies the left half of a split-screen pairing.
	ModeSplitLeft Mode = "split-left"
	// ModeSplitRight occupies the right half of a split-screen pairing.
	ModeSplitRight Mode = "split-right"
	// ModeFloating marks an always-floating utility window.
	ModeFloating Mode = "floating"
	// ModePIP is picture-in-picture.
	ModePIP Mode = "pip"
)

// IsSplit reports whether the mode is one of the split-screen halves.
func (m Mode) IsSplit() bool {
	return strings.HasPrefix(string(m), "split-")
}

// ParseMode converts a string into a Mode. The empty string maps to ModeWindowed.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case "", ModeWindowed:
		return ModeWindowed, true
	case ModeFullscreen, ModeSplitLeft, ModeSplitRight, ModeFloating, ModePIP:
		return Mode(s), true
	}
	return ModeWindowed, false
}

// DisplayState is the tagged view of the minimized/maximized flags.
type DisplayState int

const (
	// StateNormal is neither minimized nor maximized.
	StateNormal DisplayState = iota
	// StateMinimized hides the window regardless of any other flag.
	StateMinimized
	// StateMaximized fills the viewport.
	StateMaximized
)

// String returns a string representation of the display state.
func (s DisplayState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateMinimized:
		return "minimized"
	case StateMaximized:
		return "maximized"
	default:
		return "unknown"
	}
}

// Renderable is the hosted application a window carries. The window manager
// never calls into it; it is threaded through to the view unchanged.
type Renderable interface {
	ComponentName() string
}

// Component is a Renderable identified only by its component name.
type Component string

// ComponentName implements Renderable.
func (c Component) ComponentName() string { return string(c) }

// Props is the opaque property bag handed to a hosted application.
type Props map[string]any

// Window is one open instance of a hosted application.
type Window struct {
	ID           string     `json:"id"`
	AppID        string     `json:"appId"`
	Title        string     `json:"title"`
	Position     Point      `json:"position"`
	Size         Size       `json:"size"`
	IsMinimized  bool       `json:"isMinimized"`
	IsMaximized  bool       `json:"isMaximized"`
	IsPinned     bool       `json:"isPinned"`
	IsFloating   bool       `json:"isFloating"`
	Mode         Mode       `json:"mode"`
	ZIndex       int64      `json:"zIndex"`
	Desktop      int        `json:"desktopId"`
	SplitPartner string     `json:"splitPartner,omitempty"`
	Opacity      float64    `json:"opacity"`
	Component    Renderable `json:"-"`
	Props        Props      `json:"props,omitempty"`
}

// DisplayState derives the tagged display state. Minimized wins over
// maximized because a minimized window is never rendered.
func (w Window) DisplayState() DisplayState {
	switch {
	case w.IsMinimized:
		return StateMinimized
	case w.IsMaximized:
		return StateMaximized
	default:
		return StateNormal
	}
}

// OnDesktop is the virtual desktop visibility predicate: pinned windows are on
// every desktop, everything else only on its own.
func (w Window) OnDesktop(desktop int) bool {
	return w.IsPinned || w.Desktop == desktop
}

// VisibleOn reports whether the window is painted on the given desktop.
func (w Window) VisibleOn(desktop int) bool {
	return !w.IsMinimized && w.OnDesktop(desktop)
}

// Frame returns the rectangle the window occupies on screen. Maximized
// windows fill the viewport; the stored geometry is left untouched so that
// un-maximizing restores it.
func (w Window) Frame(vp Viewport) Rect {
	if w.IsMaximized {
		vw, vh := viewportSize(vp)
		return MaximizedFrame(vw, vh)
	}
	return Rect{X: w.Position.X, Y: w.Position.Y, Width: w.Size.Width, Height: w.Size.Height}
}

// ComponentName returns the hosted component's name or "" when none is set.
func (w Window) ComponentName() string {
	if w.Component == nil {
		return ""
	}
	return w.Component.ComponentName()
}

// restingMode is the mode a window falls back to when it stops being
// maximized.
func (w *Window) restingMode(split SplitPair) Mode {
	switch {
	case split.Left == w.ID:
		return ModeSplitLeft
	case split.Right == w.ID:
		return ModeSplitRight
	case w.IsFloating:
		return ModeFloating
	default:
		return ModeWindowed
	}
}

func (w *Window) clone() *Window {
	c := *w
	return &c
}
