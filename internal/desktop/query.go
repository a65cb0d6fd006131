package desktop

import (
	"cmp"
	"slices"
)

// GetWindow returns a copy of the window with the given id.
func (d *Desktop) GetWindow(id string) (Window, bool) {
	w, ok := d.byID[id]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// Windows returns copies of all open windows in creation order.
func (d *Desktop) Windows() []Window {
	out := make([]Window, 0, len(d.windows))
	for _, w := range d.windows {
		out = append(out, *w)
	}
	return out
}

// WindowsByApp returns copies of every open window hosting appID, in creation
// order.
func (d *Desktop) WindowsByApp(appID string) []Window {
	var out []Window
	for _, w := range d.windows {
		if w.AppID == appID {
			out = append(out, *w)
		}
	}
	return out
}

// VisibleWindows returns the windows painted on the current desktop in paint
// order (ascending z-index).
func (d *Desktop) VisibleWindows() []Window {
	vis := d.visible()
	out := make([]Window, len(vis))
	for i, w := range vis {
		out[i] = *w
	}
	return out
}

func (d *Desktop) visible() []*Window {
	var out []*Window
	for _, w := range d.windows {
		if w.VisibleOn(d.current) {
			out = append(out, w)
		}
	}
	slices.SortFunc(out, func(a, b *Window) int { return cmp.Compare(a.ZIndex, b.ZIndex) })
	return out
}

// FocusedID returns the id of the focused window, or "" when none is focused.
func (d *Desktop) FocusedID() string {
	return d.focused
}

// FocusedWindow returns a copy of the focused window.
func (d *Desktop) FocusedWindow() (Window, bool) {
	if d.focused == "" {
		return Window{}, false
	}
	return d.GetWindow(d.focused)
}

// RecentApps returns the recent app ids, most recent first.
func (d *Desktop) RecentApps() []string {
	return slices.Clone(d.recent)
}

// InstanceCount returns how many windows have ever been opened for appID.
func (d *Desktop) InstanceCount(appID string) int {
	return d.instances[appID]
}

// WindowAt returns the topmost visible window whose frame contains p.
func (d *Desktop) WindowAt(p Point) (Window, bool) {
	vis := d.visible()
	for i := len(vis) - 1; i >= 0; i-- {
		if vis[i].Frame(d.viewport).Contains(p) {
			return *vis[i], true
		}
	}
	return Window{}, false
}
