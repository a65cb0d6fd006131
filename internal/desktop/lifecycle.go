package desktop

import (
	"fmt"
	"slices"
)

// WindowSpec describes the application a new window hosts.
type WindowSpec struct {
	AppID     string
	Title     string
	Position  Point
	Size      Size // non-positive width/height fall back to the defaults
	Component Renderable
	Props     Props
	Mode      Mode // empty means ModeWindowed
	Desktop   *int // nil means the current desktop
}

// ComponentName returns the hosted component's name or "" when none is set.
func (s WindowSpec) ComponentName() string {
	if s.Component == nil {
		return ""
	}
	return s.Component.ComponentName()
}

// OpenWindow creates a window, stacks it above every other window, focuses it
// and records the app in the recent apps list. It always succeeds.
func (d *Desktop) OpenWindow(spec WindowSpec) string {
	appID := spec.AppID
	if appID == "" {
		appID = "app"
	}

	instance := d.instances[appID] + 1
	id := fmt.Sprintf("%s-%d-%d", appID, instance, d.stamp())

	size := spec.Size
	if !PositiveFinite(size.Width) {
		size.Width = DefaultWidth
	}
	if !PositiveFinite(size.Height) {
		size.Height = DefaultHeight
	}

	mode := spec.Mode
	if mode == "" {
		mode = ModeWindowed
	}

	desktop := d.current
	if spec.Desktop != nil {
		desktop = d.clampDesktop(*spec.Desktop)
	}

	w := &Window{
		ID:        id,
		AppID:     appID,
		Title:     spec.Title,
		Position:  SanitizePosition(spec.Position),
		Size:      SanitizeSize(size),
		Mode:      mode,
		ZIndex:    d.nextStack(),
		Desktop:   desktop,
		Opacity:   MaxOpacity,
		Component: spec.Component,
		Props:     spec.Props,
	}

	d.windows = append(d.windows, w)
	d.byID[id] = w
	d.focused = id
	d.instances[appID] = instance
	d.pushRecent(appID)

	d.emit(EventOpened, id)
	return id
}

// stamp returns a creation timestamp in milliseconds that is strictly greater
// than the previous one, so two windows opened in the same millisecond still
// get distinct ids.
func (d *Desktop) stamp() int64 {
	s := d.clock().UnixMilli()
	if s <= d.lastStamp {
		s = d.lastStamp + 1
	}
	d.lastStamp = s
	return s
}

func (d *Desktop) pushRecent(appID string) {
	d.recent = slices.DeleteFunc(d.recent, func(a string) bool { return a == appID })
	d.recent = slices.Insert(d.recent, 0, appID)
	if len(d.recent) > d.maxRecent {
		d.recent = d.recent[:d.maxRecent]
	}
}

// CloseWindow removes a window. Focus is dropped, not transferred, when the
// closed window held it, and any split pairing it took part in is cleared.
func (d *Desktop) CloseWindow(id string) error {
	if _, err := d.lookup(id); err != nil {
		return err
	}

	if d.split.Contains(id) {
		d.ClearSplitScreen()
	}

	d.windows = slices.DeleteFunc(d.windows, func(w *Window) bool { return w.ID == id })
	delete(d.byID, id)

	if d.focused == id {
		d.focused = ""
	}

	d.emit(EventClosed, id)
	return nil
}

// MinimizeWindow toggles the minimized flag.
func (d *Desktop) MinimizeWindow(id string) error {
	w, err := d.lookup(id)
	if err != nil {
		return err
	}
	w.IsMinimized = !w.IsMinimized
	d.emit(EventMinimized, id)
	return nil
}

// MaximizeWindow toggles the maximized flag. It does not touch the minimized
// flag; see Window.DisplayState for how the two combine.
func (d *Desktop) MaximizeWindow(id string) error {
	w, err := d.lookup(id)
	if err != nil {
		return err
	}
	w.IsMaximized = !w.IsMaximized
	if w.IsMaximized {
		w.Mode = ModeFullscreen
	} else {
		w.Mode = w.restingMode(d.split)
	}
	d.emit(EventMaximized, id)
	return nil
}

// TogglePin flips the pinned flag. Pinned windows show on every desktop.
func (d *Desktop) TogglePin(id string) error {
	w, err := d.lookup(id)
	if err != nil {
		return err
	}
	w.IsPinned = !w.IsPinned
	d.emit(EventPinned, id)
	return nil
}

// MakeFloating sets the floating flag and forces the mode to match.
func (d *Desktop) MakeFloating(id string, floating bool) error {
	w, err := d.lookup(id)
	if err != nil {
		return err
	}
	w.IsFloating = floating
	if floating {
		w.Mode = ModeFloating
	} else {
		w.Mode = ModeWindowed
	}
	d.emit(EventFloating, id)
	return nil
}

// SetWindowOpacity stores the opacity clamped into [MinOpacity, MaxOpacity].
func (d *Desktop) SetWindowOpacity(id string, value float64) error {
	w, err := d.lookup(id)
	if err != nil {
		return err
	}
	w.Opacity = ClampOpacity(value)
	d.emit(EventOpacity, id)
	return nil
}

// MoveWindow sets the position directly. Coordinates are NaN-guarded and
// clamped to be non-negative.
func (d *Desktop) MoveWindow(id string, pos Point) error {
	w, err := d.lookup(id)
	if err != nil {
		return err
	}
	w.Position = ClampPosition(pos)
	d.emit(EventMoved, id)
	return nil
}

// DragWindow moves a window by a pointer offset from its last known position,
// keeping it retrievable within the current viewport.
func (d *Desktop) DragWindow(id string, offset Point) error {
	w, err := d.lookup(id)
	if err != nil {
		return err
	}
	vw, vh := viewportSize(d.viewport)
	w.Position = DragClamp(w.Position, offset, w.Size, vw, vh)
	d.emit(EventMoved, id)
	return nil
}

// ResizeWindow sets the size, NaN-guarded and floored at MinWidth x MinHeight.
func (d *Desktop) ResizeWindow(id string, size Size) error {
	w, err := d.lookup(id)
	if err != nil {
		return err
	}
	w.Size = ConstrainSize(size)
	d.emit(EventResized, id)
	return nil
}
