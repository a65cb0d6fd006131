package tape

import (
	"math"
	"strconv"
	"strings"

	"github.com/Gaurav-Gosain/nyxos/internal/desktop"
)

const (
	nudgeStep   = 20.0 // pixels per move_* action
	resizeStep  = 40.0 // pixels per grow/shrink action
	opacityStep = 10.0 // percent per opacity action
)

// ActionConverter turns keybinding actions into tape commands so that key
// presses and scripts share one execution path. Window arguments are left
// empty (focused window) or filled with raw window ids.
type ActionConverter struct {
	desk   *desktop.Desktop
	apps   []string
	launch int
}

// NewActionConverter creates a converter reading state from d. launch_app
// cycles through apps in order.
func NewActionConverter(d *desktop.Desktop, apps []string) *ActionConverter {
	return &ActionConverter{desk: d, apps: apps}
}

// ActionToCommand converts an action name from the keybinding registry into
// a command. It reports false for actions that do not touch the desktop or
// that cannot apply in the current state.
func (c *ActionConverter) ActionToCommand(action string) (Command, bool) {
	if n, ok := strings.CutPrefix(action, "switch_desktop_"); ok {
		idx, err := strconv.Atoi(n)
		if err != nil {
			return Command{}, false
		}
		return newCommand(CommandType_SwitchDesktop, strconv.Itoa(idx-1)), true
	}
	if n, ok := strings.CutPrefix(action, "move_to_desktop_"); ok {
		idx, err := strconv.Atoi(n)
		if err != nil || c.desk.FocusedID() == "" {
			return Command{}, false
		}
		return newCommand(CommandType_MoveToDesktop, "", strconv.Itoa(idx-1)), true
	}

	switch action {
	case "launch_app":
		if len(c.apps) == 0 {
			return Command{}, false
		}
		app := c.apps[c.launch%len(c.apps)]
		c.launch++
		return newCommand(CommandType_OpenApp, app, ""), true
	case "next_window":
		return newCommand(CommandType_NextWindow), true
	case "prev_window":
		return newCommand(CommandType_PrevWindow), true
	case "next_desktop":
		return newCommand(CommandType_NextDesktop), true
	case "prev_desktop":
		return newCommand(CommandType_PrevDesktop), true
	case "add_desktop":
		return newCommand(CommandType_AddDesktop), true
	case "remove_desktop":
		return newCommand(CommandType_RemoveDesktop), true
	case "unsplit":
		return newCommand(CommandType_Unsplit), true
	}

	w, ok := c.desk.FocusedWindow()
	if !ok {
		return Command{}, false
	}

	switch action {
	case "close_window":
		return newCommand(CommandType_CloseWindow, ""), true
	case "minimize_window":
		return newCommand(CommandType_Minimize, ""), true
	case "maximize_window":
		return newCommand(CommandType_Maximize, ""), true
	case "pin_window":
		return newCommand(CommandType_Pin, ""), true
	case "toggle_floating":
		return newCommand(CommandType_Float, "", strconv.FormatBool(!w.IsFloating)), true
	case "opacity_up", "opacity_down":
		pct := math.Round(w.Opacity * 100)
		if action == "opacity_up" {
			pct += opacityStep
		} else {
			pct -= opacityStep
		}
		return newCommand(CommandType_Opacity, "", formatNumber(pct)), true
	case "move_left":
		return newCommand(CommandType_Drag, "", formatNumber(-nudgeStep), "0"), true
	case "move_right":
		return newCommand(CommandType_Drag, "", formatNumber(nudgeStep), "0"), true
	case "move_up":
		return newCommand(CommandType_Drag, "", "0", formatNumber(-nudgeStep)), true
	case "move_down":
		return newCommand(CommandType_Drag, "", "0", formatNumber(nudgeStep)), true
	case "grow_window", "shrink_window":
		delta := resizeStep
		if action == "shrink_window" {
			delta = -resizeStep
		}
		return newCommand(CommandType_Resize, "",
			formatNumber(w.Size.Width+delta), formatNumber(w.Size.Height+delta)), true
	case "split_screen":
		return newCommand(CommandType_Split, w.ID, c.splitPartner(w.ID)), true
	}

	return Command{}, false
}

// splitPartner picks the most recently raised other visible window, or ""
// for a single pane.
func (c *ActionConverter) splitPartner(id string) string {
	visible := c.desk.VisibleWindows()
	for i := len(visible) - 1; i >= 0; i-- {
		if visible[i].ID != id {
			return visible[i].ID
		}
	}
	return ""
}

func newCommand(ct CommandType, args ...string) Command {
	cmd := Command{Type: ct, Args: args}
	cmd.Raw = cmd.String()
	return cmd
}
