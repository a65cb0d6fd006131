package desktop

// Command is a single state transition. The set of commands is closed; every
// mutator on Desktop has a matching command.
type Command interface {
	apply(d *Desktop) error
}

// OpenCmd opens a window. The assigned id is not returned; read FocusedID
// after applying it.
type OpenCmd struct{ Spec WindowSpec }

// CloseCmd closes a window.
type CloseCmd struct{ ID string }

// FocusCmd focuses and raises a window.
type FocusCmd struct{ ID string }

// CycleFocusCmd focuses the next or previous visible window.
type CycleFocusCmd struct{ Forward bool }

// MinimizeCmd toggles the minimized flag.
type MinimizeCmd struct{ ID string }

// MaximizeCmd toggles the maximized flag.
type MaximizeCmd struct{ ID string }

// PinCmd toggles the pinned flag.
type PinCmd struct{ ID string }

// FloatCmd sets the floating flag.
type FloatCmd struct {
	ID       string
	Floating bool
}

// OpacityCmd sets the window opacity.
type OpacityCmd struct {
	ID    string
	Value float64
}

// MoveCmd sets the position directly.
type MoveCmd struct {
	ID       string
	Position Point
}

// ResizeCmd sets the size directly.
type ResizeCmd struct {
	ID   string
	Size Size
}

// DragCmd moves a window by a pointer offset.
type DragCmd struct {
	ID     string
	Offset Point
}

// SplitCmd pairs two windows. Right may be empty.
type SplitCmd struct {
	Left  string
	Right string
}

// UnsplitCmd clears the split-screen pairing.
type UnsplitCmd struct{}

// SwitchDesktopCmd switches to a virtual desktop.
type SwitchDesktopCmd struct{ Index int }

// NextDesktopCmd switches to the following desktop.
type NextDesktopCmd struct{}

// PrevDesktopCmd switches to the preceding desktop.
type PrevDesktopCmd struct{}

// AddDesktopCmd appends a desktop.
type AddDesktopCmd struct{}

// RemoveDesktopCmd removes the current desktop.
type RemoveDesktopCmd struct{}

// MoveToDesktopCmd reassigns a window to a desktop.
type MoveToDesktopCmd struct {
	ID    string
	Index int
}

func (c OpenCmd) apply(d *Desktop) error {
	d.OpenWindow(c.Spec)
	return nil
}

func (c CloseCmd) apply(d *Desktop) error    { return d.CloseWindow(c.ID) }
func (c FocusCmd) apply(d *Desktop) error    { return d.FocusWindow(c.ID) }
func (c MinimizeCmd) apply(d *Desktop) error { return d.MinimizeWindow(c.ID) }
func (c MaximizeCmd) apply(d *Desktop) error { return d.MaximizeWindow(c.ID) }
func (c PinCmd) apply(d *Desktop) error      { return d.TogglePin(c.ID) }
func (c FloatCmd) apply(d *Desktop) error    { return d.MakeFloating(c.ID, c.Floating) }
func (c OpacityCmd) apply(d *Desktop) error  { return d.SetWindowOpacity(c.ID, c.Value) }
func (c MoveCmd) apply(d *Desktop) error     { return d.MoveWindow(c.ID, c.Position) }
func (c ResizeCmd) apply(d *Desktop) error   { return d.ResizeWindow(c.ID, c.Size) }
func (c DragCmd) apply(d *Desktop) error     { return d.DragWindow(c.ID, c.Offset) }
func (c SplitCmd) apply(d *Desktop) error    { return d.SetSplitScreen(c.Left, c.Right) }

func (c CycleFocusCmd) apply(d *Desktop) error {
	d.CycleFocus(c.Forward)
	return nil
}

func (UnsplitCmd) apply(d *Desktop) error {
	d.ClearSplitScreen()
	return nil
}

func (c SwitchDesktopCmd) apply(d *Desktop) error {
	d.SwitchDesktop(c.Index)
	return nil
}

func (NextDesktopCmd) apply(d *Desktop) error {
	d.NextDesktop()
	return nil
}

func (PrevDesktopCmd) apply(d *Desktop) error {
	d.PrevDesktop()
	return nil
}

func (AddDesktopCmd) apply(d *Desktop) error {
	d.AddDesktop()
	return nil
}

func (RemoveDesktopCmd) apply(d *Desktop) error { return d.RemoveCurrentDesktop() }

func (c MoveToDesktopCmd) apply(d *Desktop) error { return d.MoveWindowToDesktop(c.ID, c.Index) }

// Apply runs cmd against the desktop in place.
func (d *Desktop) Apply(cmd Command) error {
	if cmd == nil {
		return nil
	}
	return cmd.apply(d)
}

// Reduce is the pure form of Apply: it returns a new state with cmd applied
// and leaves state untouched. When cmd reports an error the returned state
// equals the input.
func Reduce(state *Desktop, cmd Command) (*Desktop, error) {
	next := state.Clone()
	if err := next.Apply(cmd); err != nil {
		return state, err
	}
	return next, nil
}
