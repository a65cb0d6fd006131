package desktop

// clampDesktop clamps index into [0, count).
func (d *Desktop) clampDesktop(index int) int {
	return max(0, min(index, d.count-1))
}

// SwitchDesktop makes index the current desktop. Out of range indices are
// clamped rather than rejected.
func (d *Desktop) SwitchDesktop(index int) {
	d.current = d.clampDesktop(index)
	d.emit(EventDesktopSwitched, "")
}

// NextDesktop moves to the following desktop, wrapping to the first.
func (d *Desktop) NextDesktop() {
	d.SwitchDesktop((d.current + 1) % d.count)
}

// PrevDesktop moves to the preceding desktop, wrapping to the last.
func (d *Desktop) PrevDesktop() {
	d.SwitchDesktop((d.current - 1 + d.count) % d.count)
}

// AddDesktop appends a desktop and switches to it.
func (d *Desktop) AddDesktop() {
	d.count++
	d.current = d.count - 1
	d.emit(EventDesktopAdded, "")
}

// RemoveCurrentDesktop removes the current desktop. At least one desktop
// always remains. Windows on the removed desktop move to the new current
// desktop; windows on later desktops shift down by one.
func (d *Desktop) RemoveCurrentDesktop() error {
	if d.count <= 1 {
		return ErrLastDesktop
	}

	removed := d.current
	d.count--
	d.current = d.clampDesktop(removed)

	for _, w := range d.windows {
		switch {
		case w.Desktop == removed:
			w.Desktop = d.current
		case w.Desktop > removed:
			w.Desktop--
		}
	}

	d.emit(EventDesktopRemoved, "")
	return nil
}

// MoveWindowToDesktop reassigns a window to another desktop, clamping index.
func (d *Desktop) MoveWindowToDesktop(id string, index int) error {
	w, err := d.lookup(id)
	if err != nil {
		return err
	}
	w.Desktop = d.clampDesktop(index)
	d.emit(EventMovedToDesktop, id)
	return nil
}

// CurrentDesktop returns the index of the current desktop.
func (d *Desktop) CurrentDesktop() int {
	return d.current
}

// DesktopCount returns the number of virtual desktops.
func (d *Desktop) DesktopCount() int {
	return d.count
}
