package desktop

// SplitPair is the split-screen pairing record. Right is empty while a
// single pane waits for a partner.
type SplitPair struct {
	Left  string `json:"left,omitempty"`
	Right string `json:"right,omitempty"`
}

// Empty reports whether no pairing is recorded.
func (p SplitPair) Empty() bool {
	return p.Left == "" && p.Right == ""
}

// Contains reports whether id takes part in the pairing.
func (p SplitPair) Contains(id string) bool {
	return id != "" && (p.Left == id || p.Right == id)
}

// SetSplitScreen pairs two windows into the left and right halves of the
// viewport. Pass an empty rightID to assign only the left pane. Any existing
// pairing is torn down first.
func (d *Desktop) SetSplitScreen(leftID, rightID string) error {
	left, err := d.lookup(leftID)
	if err != nil {
		return err
	}
	var right *Window
	if rightID != "" {
		if rightID == leftID {
			return ErrSelfSplit
		}
		if right, err = d.lookup(rightID); err != nil {
			return err
		}
	}

	if !d.split.Empty() {
		d.clearSplit()
	}

	vw, vh := viewportSize(d.viewport)
	leftFrame, rightFrame := SplitFrames(vw, vh)

	placeSplit(left, leftFrame, ModeSplitLeft)
	d.split = SplitPair{Left: leftID}
	if right != nil {
		placeSplit(right, rightFrame, ModeSplitRight)
		left.SplitPartner = rightID
		right.SplitPartner = leftID
		d.split.Right = rightID
	}

	d.emit(EventSplit, leftID)
	return nil
}

func placeSplit(w *Window, frame Rect, mode Mode) {
	w.IsMaximized = false
	w.IsFloating = false
	w.Mode = mode
	w.Position = Point{X: frame.X, Y: frame.Y}
	w.Size = Size{Width: frame.Width, Height: frame.Height}
}

// ClearSplitScreen drops the pairing record, clears both partner fields and
// reverts every split-mode window to windowed.
func (d *Desktop) ClearSplitScreen() {
	if d.clearSplit() {
		d.emit(EventUnsplit, "")
	}
}

func (d *Desktop) clearSplit() bool {
	changed := !d.split.Empty()
	for _, w := range d.windows {
		if w.Mode.IsSplit() {
			w.Mode = ModeWindowed
			changed = true
		}
		if w.SplitPartner != "" {
			w.SplitPartner = ""
			changed = true
		}
	}
	d.split = SplitPair{}
	return changed
}

// Split returns the current pairing record.
func (d *Desktop) Split() SplitPair {
	return d.split
}
