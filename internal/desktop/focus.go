package desktop

import "slices"

// FocusWindow makes the window the sole focused window and raises it above
// every window focused or opened before it.
func (d *Desktop) FocusWindow(id string) error {
	w, err := d.lookup(id)
	if err != nil {
		return err
	}
	d.focused = id
	w.ZIndex = d.nextStack()
	d.emit(EventFocused, id)
	return nil
}

// CycleFocus focuses the next (or previous) visible window on the current
// desktop in creation order and returns its id. It wraps around at either
// end and returns false when nothing is visible.
func (d *Desktop) CycleFocus(forward bool) (string, bool) {
	var visible []*Window
	for _, w := range d.windows {
		if w.VisibleOn(d.current) {
			visible = append(visible, w)
		}
	}
	if len(visible) == 0 {
		return "", false
	}

	pos := slices.IndexFunc(visible, func(w *Window) bool { return w.ID == d.focused })

	var target *Window
	switch {
	case pos < 0 && forward:
		target = visible[0]
	case pos < 0:
		target = visible[len(visible)-1]
	case forward:
		target = visible[(pos+1)%len(visible)]
	default:
		target = visible[(pos-1+len(visible))%len(visible)]
	}

	_ = d.FocusWindow(target.ID)
	return target.ID, true
}
