package tape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/nyxos/internal/desktop"
)

// Package-level logger
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "tape",
})

// SetLogLevel sets the logging level for the tape package.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// ErrExpectationFailed is returned when an Expect command does not hold.
var ErrExpectationFailed = errors.New("expectation failed")

// AppResolver turns an app id into the spec of the window it opens.
type AppResolver func(appID string) desktop.WindowSpec

// Runner executes tape commands against a desktop without rendering.
type Runner struct {
	desk       *desktop.Desktop
	resolve    AppResolver
	names      map[string]string // script name -> window id
	skipDelays bool
	verbose    bool
	output     strings.Builder
	outputLock sync.Mutex
	stats      ExecutionStats
}

// ExecutionStats contains statistics about a script execution
type ExecutionStats struct {
	TotalCommands int
	ExecutedCount int
	Rejected      int // commands the desktop refused, e.g. removing the last desktop
	Expectations  int
	StartTime     time.Time
	EndTime       time.Time
	ExecutedTime  time.Duration
	Success       bool
	ErrorMessage  string
}

// NewRunner creates a runner driving d. A nil resolver opens bare windows
// carrying only the app id.
func NewRunner(d *desktop.Desktop, resolve AppResolver) *Runner {
	if resolve == nil {
		resolve = func(appID string) desktop.WindowSpec {
			return desktop.WindowSpec{AppID: appID}
		}
	}
	return &Runner{
		desk:    d,
		resolve: resolve,
		names:   make(map[string]string),
	}
}

// SetSkipDelays makes Run ignore Sleep and @ delays.
func (r *Runner) SetSkipDelays(skip bool) {
	r.skipDelays = skip
}

// SetVerbose enables verbose output logging
func (r *Runner) SetVerbose(verbose bool) {
	r.verbose = verbose
}

// Desktop returns the desktop being driven.
func (r *Runner) Desktop() *desktop.Desktop {
	return r.desk
}

// Run executes all commands in order, honouring delays and ctx.
func (r *Runner) Run(ctx context.Context, commands []Command) (ExecutionStats, error) {
	r.stats = ExecutionStats{
		TotalCommands: len(commands),
		StartTime:     time.Now(),
	}
	r.logf("Starting headless script execution with %d commands\n", len(commands))

	err := r.run(ctx, commands)

	r.stats.EndTime = time.Now()
	r.stats.ExecutedTime = r.stats.EndTime.Sub(r.stats.StartTime)
	r.stats.Success = err == nil
	if err != nil {
		r.stats.ErrorMessage = err.Error()
	}
	r.logf("Script execution completed in %v\n", r.stats.ExecutedTime)
	return r.stats, err
}

func (r *Runner) run(ctx context.Context, commands []Command) error {
	for i := range commands {
		cmd := &commands[i]

		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.skipDelays && cmd.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cmd.Delay):
			}
		}

		r.logf("[%d/%d] %s\n", i+1, len(commands), cmd.String())
		if err := r.Step(cmd); err != nil {
			return err
		}
		r.stats.ExecutedCount++
	}
	return nil
}

// Stats returns the statistics of the last Run.
func (r *Runner) Stats() ExecutionStats {
	return r.stats
}

// Step executes a single command immediately, ignoring its delay. Desktop
// rejections are counted and logged; script errors and failed expectations
// are returned.
func (r *Runner) Step(cmd *Command) error {
	if cmd.Type == CommandType_Sleep {
		return nil
	}
	if cmd.Type == CommandType_Expect {
		r.stats.Expectations++
		return r.expect(cmd)
	}
	if cmd.Type == CommandType_Viewport {
		w, err := cmd.Float(0)
		if err != nil {
			return err
		}
		h, err := cmd.Float(1)
		if err != nil {
			return err
		}
		r.desk.SetViewport(desktop.FixedViewport{Width: w, Height: h})
		return nil
	}

	dcmd, err := r.Translate(cmd)
	if err != nil {
		return err
	}

	if err := r.desk.Apply(dcmd); err != nil {
		r.stats.Rejected++
		logger.Warn("command rejected", "line", cmd.Line, "command", cmd.Type, "err", err)
		r.logf("  -> rejected: %v\n", err)
		return nil
	}

	switch c := dcmd.(type) {
	case desktop.OpenCmd:
		id := r.desk.FocusedID()
		name := cmd.Arg(2)
		if name == "" {
			name = c.Spec.AppID
		}
		r.names[name] = id
	case desktop.CloseCmd:
		for name, id := range r.names {
			if id == c.ID {
				delete(r.names, name)
			}
		}
	}
	return nil
}

// Translate converts a tape command into the desktop command it drives.
func (r *Runner) Translate(cmd *Command) (desktop.Command, error) {
	var id string
	if usesWindowArg(cmd.Type) {
		var err error
		if id, err = r.window(cmd, cmd.Arg(0)); err != nil {
			return nil, err
		}
	}

	switch cmd.Type {
	case CommandType_OpenApp:
		spec := r.resolve(cmd.Arg(0))
		if spec.AppID == "" {
			spec.AppID = cmd.Arg(0)
		}
		if t := cmd.Arg(1); t != "" {
			spec.Title = t
		}
		return desktop.OpenCmd{Spec: spec}, nil

	case CommandType_CloseWindow:
		return desktop.CloseCmd{ID: id}, nil
	case CommandType_Minimize:
		return desktop.MinimizeCmd{ID: id}, nil
	case CommandType_Maximize:
		return desktop.MaximizeCmd{ID: id}, nil
	case CommandType_Pin:
		return desktop.PinCmd{ID: id}, nil
	case CommandType_Float:
		return desktop.FloatCmd{ID: id, Floating: cmd.Arg(1) != "false"}, nil

	case CommandType_Opacity:
		pct, err := cmd.Float(1)
		if err != nil {
			return nil, err
		}
		return desktop.OpacityCmd{ID: id, Value: pct / 100}, nil

	case CommandType_Move, CommandType_Resize, CommandType_Drag:
		a, err := cmd.Float(1)
		if err != nil {
			return nil, err
		}
		b, err := cmd.Float(2)
		if err != nil {
			return nil, err
		}
		switch cmd.Type {
		case CommandType_Move:
			return desktop.MoveCmd{ID: id, Position: desktop.Point{X: a, Y: b}}, nil
		case CommandType_Resize:
			return desktop.ResizeCmd{ID: id, Size: desktop.Size{Width: a, Height: b}}, nil
		default:
			return desktop.DragCmd{ID: id, Offset: desktop.Point{X: a, Y: b}}, nil
		}

	case CommandType_Focus:
		target, err := r.window(cmd, cmd.Arg(0))
		if err != nil {
			return nil, err
		}
		return desktop.FocusCmd{ID: target}, nil
	case CommandType_NextWindow:
		return desktop.CycleFocusCmd{Forward: true}, nil
	case CommandType_PrevWindow:
		return desktop.CycleFocusCmd{Forward: false}, nil

	case CommandType_Split:
		left, err := r.window(cmd, cmd.Arg(0))
		if err != nil {
			return nil, err
		}
		right := ""
		if cmd.Arg(1) != "" {
			if right, err = r.window(cmd, cmd.Arg(1)); err != nil {
				return nil, err
			}
		}
		return desktop.SplitCmd{Left: left, Right: right}, nil
	case CommandType_Unsplit:
		return desktop.UnsplitCmd{}, nil

	case CommandType_SwitchDesktop:
		n, err := cmd.Int(0)
		if err != nil {
			return nil, err
		}
		return desktop.SwitchDesktopCmd{Index: n}, nil
	case CommandType_NextDesktop:
		return desktop.NextDesktopCmd{}, nil
	case CommandType_PrevDesktop:
		return desktop.PrevDesktopCmd{}, nil
	case CommandType_AddDesktop:
		return desktop.AddDesktopCmd{}, nil
	case CommandType_RemoveDesktop:
		return desktop.RemoveDesktopCmd{}, nil
	case CommandType_MoveToDesktop:
		n, err := cmd.Int(1)
		if err != nil {
			return nil, err
		}
		return desktop.MoveToDesktopCmd{ID: id, Index: n}, nil
	}

	return nil, fmt.Errorf("line %d: %s cannot be applied to a desktop", cmd.Line, cmd.Type)
}

// window resolves a script window reference. An empty name means the focused
// window.
func (r *Runner) window(cmd *Command, name string) (string, error) {
	if name == "" {
		if id := r.desk.FocusedID(); id != "" {
			return id, nil
		}
		return "", fmt.Errorf("line %d: %s: no focused window", cmd.Line, cmd.Type)
	}
	if id, ok := r.names[name]; ok {
		return id, nil
	}
	if _, ok := r.desk.GetWindow(name); ok {
		return name, nil
	}
	return "", fmt.Errorf("line %d: %s: unknown window %q", cmd.Line, cmd.Type, name)
}

// nameOrNone resolves a window reference for comparison; "none" maps to "".
func (r *Runner) nameOrNone(name string) string {
	if name == "none" {
		return ""
	}
	if id, ok := r.names[name]; ok {
		return id
	}
	return name
}

func (r *Runner) expect(cmd *Command) error {
	property := cmd.Arg(0)
	want := cmd.Arg(len(cmd.Args) - 1)
	d := r.desk

	fail := func(got any) error {
		return fmt.Errorf("line %d: %w: %s: want %s, got %v", cmd.Line, ErrExpectationFailed, strings.Join(cmd.Args[:len(cmd.Args)-1], " "), want, got)
	}
	count := func(got int) error {
		if strconv.Itoa(got) != want {
			return fail(got)
		}
		return nil
	}

	switch property {
	case "focused":
		if d.FocusedID() != r.nameOrNone(want) {
			return fail(r.describe(d.FocusedID()))
		}
		return nil
	case "windows":
		return count(len(d.Windows()))
	case "visible":
		return count(len(d.VisibleWindows()))
	case "desktop":
		return count(d.CurrentDesktop())
	case "desktops":
		return count(d.DesktopCount())
	case "recent":
		recent := d.RecentApps()
		got := ""
		if len(recent) > 0 {
			got = recent[0]
		}
		if got != want {
			return fail(got)
		}
		return nil
	case "instances":
		return count(d.InstanceCount(cmd.Arg(1)))
	case "split":
		s := d.Split()
		if s.Left != r.nameOrNone(cmd.Arg(1)) || s.Right != r.nameOrNone(want) {
			return fmt.Errorf("line %d: %w: split: want %s %s, got %s %s", cmd.Line, ErrExpectationFailed,
				cmd.Arg(1), want, r.describe(s.Left), r.describe(s.Right))
		}
		return nil
	case "exists":
		_, ok := d.GetWindow(r.nameOrNone(cmd.Arg(1)))
		if strconv.FormatBool(ok) != want {
			return fail(ok)
		}
		return nil
	}

	id, err := r.window(cmd, cmd.Arg(1))
	if err != nil {
		return err
	}
	w, _ := d.GetWindow(id)

	var got string
	switch property {
	case "mode":
		got = string(w.Mode)
	case "state":
		got = w.DisplayState().String()
	case "minimized":
		got = strconv.FormatBool(w.IsMinimized)
	case "maximized":
		got = strconv.FormatBool(w.IsMaximized)
	case "pinned":
		got = strconv.FormatBool(w.IsPinned)
	case "floating":
		got = strconv.FormatBool(w.IsFloating)
	case "partner":
		if w.SplitPartner != r.nameOrNone(want) {
			return fail(r.describe(w.SplitPartner))
		}
		return nil
	case "assigned":
		return count(w.Desktop)
	case "opacity":
		return r.expectNumber(cmd, math.Round(w.Opacity*100), want, fail)
	case "x":
		return r.expectNumber(cmd, w.Position.X, want, fail)
	case "y":
		return r.expectNumber(cmd, w.Position.Y, want, fail)
	case "width":
		return r.expectNumber(cmd, w.Size.Width, want, fail)
	case "height":
		return r.expectNumber(cmd, w.Size.Height, want, fail)
	default:
		return fmt.Errorf("line %d: unknown Expect property %q", cmd.Line, property)
	}

	if got != want {
		return fail(got)
	}
	return nil
}

func (r *Runner) expectNumber(cmd *Command, got float64, want string, fail func(any) error) error {
	w, err := strconv.ParseFloat(want, 64)
	if err != nil {
		return fmt.Errorf("line %d: Expect %s: %q is not a number", cmd.Line, cmd.Arg(0), want)
	}
	if math.Abs(got-w) > 1e-9 {
		return fail(got)
	}
	return nil
}

// describe maps a window id back to its script name for messages.
func (r *Runner) describe(id string) string {
	if id == "" {
		return "none"
	}
	for name, wid := range r.names {
		if wid == id {
			return name
		}
	}
	return id
}

// GetOutput returns the captured output
func (r *Runner) GetOutput() string {
	r.outputLock.Lock()
	defer r.outputLock.Unlock()
	return r.output.String()
}

// WriteOutput writes the output to a writer
func (r *Runner) WriteOutput(w io.Writer) error {
	r.outputLock.Lock()
	defer r.outputLock.Unlock()
	_, err := io.WriteString(w, r.output.String())
	return err
}

// logf logs a message to the internal output buffer
func (r *Runner) logf(format string, args ...any) {
	if !r.verbose {
		return
	}
	r.outputLock.Lock()
	defer r.outputLock.Unlock()
	fmt.Fprintf(&r.output, format, args...)
}
