package tape

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/nyxos/internal/desktop"
)

// Recorder turns desktop changes into tape commands. Subscribe it to a
// desktop with Desktop.Subscribe; it reads the desktop to fill in arguments.
type Recorder struct {
	desk          *desktop.Desktop
	commands      []Command
	names         map[string]string // window id -> script name
	nextName      int
	startTime     time.Time
	lastEventTime time.Time
	enabled       bool
	minSleep      time.Duration // Gaps shorter than this are not written as Sleep
	now           func() time.Time
}

// NewRecorder creates a recorder reading from d. Call Start to begin.
func NewRecorder(d *desktop.Desktop) *Recorder {
	now := time.Now()
	return &Recorder{
		desk:          d,
		names:         make(map[string]string),
		startTime:     now,
		lastEventTime: now,
		minSleep:      100 * time.Millisecond,
		now:           time.Now,
	}
}

// Start begins recording
func (r *Recorder) Start() {
	r.enabled = true
	r.startTime = r.now()
	r.lastEventTime = r.startTime
	r.commands = []Command{}
}

// Stop ends recording
func (r *Recorder) Stop() {
	r.enabled = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.enabled
}

// DesktopChanged implements desktop.Listener.
func (r *Recorder) DesktopChanged(ev desktop.Event) {
	if !r.enabled {
		return
	}

	cmd, ok := r.eventToCommand(ev)
	if !ok {
		return
	}

	now := r.now()
	if gap := now.Sub(r.lastEventTime); gap >= r.minSleep {
		r.append(Command{Type: CommandType_Sleep, Args: []string{gap.Round(time.Millisecond).String()}, Delay: gap})
	}
	r.lastEventTime = now
	r.append(cmd)
}

func (r *Recorder) append(cmd Command) {
	cmd.Line = len(r.commands) + 1
	cmd.Column = 1
	cmd.Raw = cmd.String()
	r.commands = append(r.commands, cmd)
}

func (r *Recorder) eventToCommand(ev desktop.Event) (Command, bool) {
	w, hasWindow := r.desk.GetWindow(ev.WindowID)
	name := r.nameFor(ev.WindowID)

	switch ev.Kind {
	case desktop.EventOpened:
		if !hasWindow {
			return Command{}, false
		}
		return Command{Type: CommandType_OpenApp, Args: []string{w.AppID, w.Title, name}}, true
	case desktop.EventClosed:
		delete(r.names, ev.WindowID)
		return Command{Type: CommandType_CloseWindow, Args: []string{name}}, true
	case desktop.EventFocused:
		return Command{Type: CommandType_Focus, Args: []string{name}}, true
	case desktop.EventMinimized:
		return Command{Type: CommandType_Minimize, Args: []string{name}}, true
	case desktop.EventMaximized:
		return Command{Type: CommandType_Maximize, Args: []string{name}}, true
	case desktop.EventPinned:
		return Command{Type: CommandType_Pin, Args: []string{name}}, true
	case desktop.EventFloating:
		return Command{Type: CommandType_Float, Args: []string{name, strconv.FormatBool(w.IsFloating)}}, true
	case desktop.EventOpacity:
		return Command{Type: CommandType_Opacity, Args: []string{name, formatNumber(math.Round(w.Opacity * 100))}}, true
	case desktop.EventMoved:
		return Command{Type: CommandType_Move, Args: []string{name, formatNumber(w.Position.X), formatNumber(w.Position.Y)}}, true
	case desktop.EventResized:
		return Command{Type: CommandType_Resize, Args: []string{name, formatNumber(w.Size.Width), formatNumber(w.Size.Height)}}, true
	case desktop.EventSplit:
		s := r.desk.Split()
		args := []string{r.nameFor(s.Left)}
		if s.Right != "" {
			args = append(args, r.nameFor(s.Right))
		}
		return Command{Type: CommandType_Split, Args: args}, true
	case desktop.EventUnsplit:
		return Command{Type: CommandType_Unsplit}, true
	case desktop.EventDesktopSwitched:
		return Command{Type: CommandType_SwitchDesktop, Args: []string{strconv.Itoa(ev.Desktop)}}, true
	case desktop.EventDesktopAdded:
		return Command{Type: CommandType_AddDesktop}, true
	case desktop.EventDesktopRemoved:
		return Command{Type: CommandType_RemoveDesktop}, true
	case desktop.EventMovedToDesktop:
		return Command{Type: CommandType_MoveToDesktop, Args: []string{name, strconv.Itoa(w.Desktop)}}, true
	}
	return Command{}, false
}

// nameFor returns the script name assigned to a window, assigning w1, w2, ...
// on first sight.
func (r *Recorder) nameFor(id string) string {
	if id == "" {
		return ""
	}
	if name, ok := r.names[id]; ok {
		return name
	}
	r.nextName++
	name := fmt.Sprintf("w%d", r.nextName)
	r.names[id] = name
	return name
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// GetCommands returns all recorded commands
func (r *Recorder) GetCommands() []Command {
	return r.commands
}

// CommandCount returns the number of recorded commands
func (r *Recorder) CommandCount() int {
	return len(r.commands)
}

// String returns the tape content as a formatted string
func (r *Recorder) String(header string) string {
	var sb strings.Builder

	if header != "" {
		fmt.Fprintf(&sb, "# %s\n", header)
		fmt.Fprintf(&sb, "# Recorded: %s\n\n", r.startTime.Format(time.RFC3339))
	}

	for _, cmd := range r.commands {
		sb.WriteString(cmd.Raw + "\n")
	}

	return sb.String()
}

// WriteToFile saves the recorded tape to a file
func (r *Recorder) WriteToFile(filename string, header string) error {
	return os.WriteFile(filename, []byte(r.String(header)), 0o644)
}

// RecordingStats contains statistics about the recording
type RecordingStats struct {
	CommandCount int
	Duration     time.Duration
	IsRecording  bool
}

// GetStats returns recording statistics
func (r *Recorder) GetStats() RecordingStats {
	return RecordingStats{
		CommandCount: len(r.commands),
		Duration:     r.now().Sub(r.startTime),
		IsRecording:  r.enabled,
	}
}

// Clear clears all recorded commands
func (r *Recorder) Clear() {
	r.commands = []Command{}
	r.startTime = r.now()
	r.lastEventTime = r.startTime
}
