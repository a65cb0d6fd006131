package desktop

// WindowSnapshot is a window as the view sees it.
type WindowSnapshot struct {
	Window
	Component string `json:"component,omitempty"`
	State     string `json:"state"`
	Focused   bool   `json:"focused"`
	Frame     Rect   `json:"frame"`
}

// Snapshot is a point-in-time copy of everything a view needs to paint the
// current desktop.
type Snapshot struct {
	Windows        []WindowSnapshot `json:"windows"` // paint order
	Focused        string           `json:"focused,omitempty"`
	CurrentDesktop int              `json:"currentDesktop"`
	DesktopCount   int              `json:"desktopCount"`
	Split          SplitPair        `json:"split"`
	RecentApps     []string         `json:"recentApps"`
	Viewport       Size             `json:"viewport"`
}

// Snapshot captures the visible state.
func (d *Desktop) Snapshot() Snapshot {
	vis := d.visible()
	s := Snapshot{
		Windows:        make([]WindowSnapshot, 0, len(vis)),
		Focused:        d.focused,
		CurrentDesktop: d.current,
		DesktopCount:   d.count,
		Split:          d.split,
		RecentApps:     d.RecentApps(),
		Viewport:       d.ViewportSize(),
	}
	if s.RecentApps == nil {
		s.RecentApps = []string{}
	}
	for _, w := range vis {
		s.Windows = append(s.Windows, WindowSnapshot{
			Window:    *w,
			Component: w.ComponentName(),
			State:     w.DisplayState().String(),
			Focused:   w.ID == d.focused,
			Frame:     w.Frame(d.viewport),
		})
	}
	return s
}
