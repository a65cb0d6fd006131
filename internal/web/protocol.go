package web

import (
	"errors"
	"fmt"

	"github.com/Gaurav-Gosain/nyxos/internal/config"
	"github.com/Gaurav-Gosain/nyxos/internal/desktop"
)

// Request ops sent by the client.
const (
	OpOpen          = "open"
	OpClose         = "close"
	OpFocus         = "focus"
	OpCycle         = "cycle"
	OpMinimize      = "minimize"
	OpMaximize      = "maximize"
	OpPin           = "pin"
	OpFloat         = "float"
	OpOpacity       = "opacity"
	OpMove          = "move"
	OpResize        = "resize"
	OpDrag          = "drag"
	OpSplit         = "split"
	OpUnsplit       = "unsplit"
	OpSwitchDesktop = "switch_desktop"
	OpNextDesktop   = "next_desktop"
	OpPrevDesktop   = "prev_desktop"
	OpAddDesktop    = "add_desktop"
	OpRemoveDesktop = "remove_desktop"
	OpMoveToDesktop = "move_to_desktop"
	OpViewport      = "viewport"
	OpState         = "state"
)

// Response types sent by the server.
const (
	TypeHello = "hello"
	TypeState = "state"
	TypeError = "error"
)

// Protocol errors.
var (
	ErrUnknownOp = errors.New("unknown op")
	ErrReadOnly  = errors.New("session is read-only")
	ErrMissingID = errors.New("missing window id")
)

// Request is one client message. Which fields matter depends on Op.
type Request struct {
	Op       string        `json:"op"`
	ID       string        `json:"id,omitempty"`
	AppID    string        `json:"appId,omitempty"`
	Title    string        `json:"title,omitempty"`
	Left     string        `json:"left,omitempty"`
	Right    string        `json:"right,omitempty"`
	X        *float64      `json:"x,omitempty"`
	Y        *float64      `json:"y,omitempty"`
	Width    float64       `json:"width,omitempty"`
	Height   float64       `json:"height,omitempty"`
	Floating bool          `json:"floating,omitempty"`
	Value    float64       `json:"value,omitempty"`
	Index    int           `json:"index,omitempty"`
	Forward  bool          `json:"forward,omitempty"`
	Props    desktop.Props `json:"props,omitempty"`
}

// EventMessage is a desktop.Event as sent to the client.
type EventMessage struct {
	Kind     string `json:"kind"`
	WindowID string `json:"windowId,omitempty"`
	Desktop  int    `json:"desktop"`
}

// Response is one server message.
type Response struct {
	Type     string            `json:"type"`
	Op       string            `json:"op,omitempty"`
	Session  string            `json:"session,omitempty"`
	ReadOnly bool              `json:"readOnly,omitempty"`
	Opened   string            `json:"opened,omitempty"`
	Error    string            `json:"error,omitempty"`
	Events   []EventMessage    `json:"events,omitempty"`
	State    *desktop.Snapshot `json:"state,omitempty"`
}

// Mutates reports whether the op changes desktop state.
func (r Request) Mutates() bool {
	return r.Op != OpState && r.Op != OpViewport
}

// point reads the x/y pair, treating a missing coordinate as zero.
func (r Request) point() desktop.Point {
	var p desktop.Point
	if r.X != nil {
		p.X = *r.X
	}
	if r.Y != nil {
		p.Y = *r.Y
	}
	return p
}

// OpenSpec builds the window spec for an open request from the catalog.
// Request fields override the catalog entry.
func (r Request) OpenSpec(user *config.UserConfig) desktop.WindowSpec {
	spec := user.WindowSpec(r.AppID)
	if r.Title != "" {
		spec.Title = r.Title
	}
	if r.Width > 0 {
		spec.Size.Width = r.Width
	}
	if r.Height > 0 {
		spec.Size.Height = r.Height
	}
	spec.Position = desktop.Point{X: desktop.DefaultX, Y: desktop.DefaultY}
	if r.X != nil {
		spec.Position.X = *r.X
	}
	if r.Y != nil {
		spec.Position.Y = *r.Y
	}
	if r.Props != nil {
		spec.Props = r.Props
	}
	return spec
}

// Command translates a mutating request into a reducer command.
func (r Request) Command(user *config.UserConfig) (desktop.Command, error) {
	needID := func() error {
		if r.ID == "" {
			return fmt.Errorf("%s: %w", r.Op, ErrMissingID)
		}
		return nil
	}

	switch r.Op {
	case OpOpen:
		return desktop.OpenCmd{Spec: r.OpenSpec(user)}, nil
	case OpCycle:
		return desktop.CycleFocusCmd{Forward: r.Forward}, nil
	case OpSplit:
		if r.Left == "" {
			return nil, fmt.Errorf("%s: %w", r.Op, ErrMissingID)
		}
		return desktop.SplitCmd{Left: r.Left, Right: r.Right}, nil
	case OpUnsplit:
		return desktop.UnsplitCmd{}, nil
	case OpSwitchDesktop:
		return desktop.SwitchDesktopCmd{Index: r.Index}, nil
	case OpNextDesktop:
		return desktop.NextDesktopCmd{}, nil
	case OpPrevDesktop:
		return desktop.PrevDesktopCmd{}, nil
	case OpAddDesktop:
		return desktop.AddDesktopCmd{}, nil
	case OpRemoveDesktop:
		return desktop.RemoveDesktopCmd{}, nil
	}

	if err := needID(); err != nil {
		switch r.Op {
		case OpClose, OpFocus, OpMinimize, OpMaximize, OpPin, OpFloat,
			OpOpacity, OpMove, OpResize, OpDrag, OpMoveToDesktop:
			return nil, err
		}
		return nil, fmt.Errorf("%w %q", ErrUnknownOp, r.Op)
	}

	switch r.Op {
	case OpClose:
		return desktop.CloseCmd{ID: r.ID}, nil
	case OpFocus:
		return desktop.FocusCmd{ID: r.ID}, nil
	case OpMinimize:
		return desktop.MinimizeCmd{ID: r.ID}, nil
	case OpMaximize:
		return desktop.MaximizeCmd{ID: r.ID}, nil
	case OpPin:
		return desktop.PinCmd{ID: r.ID}, nil
	case OpFloat:
		return desktop.FloatCmd{ID: r.ID, Floating: r.Floating}, nil
	case OpOpacity:
		return desktop.OpacityCmd{ID: r.ID, Value: r.Value}, nil
	case OpMove:
		return desktop.MoveCmd{ID: r.ID, Position: r.point()}, nil
	case OpResize:
		return desktop.ResizeCmd{ID: r.ID, Size: desktop.Size{Width: r.Width, Height: r.Height}}, nil
	case OpDrag:
		return desktop.DragCmd{ID: r.ID, Offset: r.point()}, nil
	case OpMoveToDesktop:
		return desktop.MoveToDesktopCmd{ID: r.ID, Index: r.Index}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownOp, r.Op)
}
