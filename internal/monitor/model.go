// Package monitor is the terminal view of a nyxos desktop. It plays a tape
// script against a desktop step by step, lets the user drive the same desktop
// through the configured keybindings and draws the result.
package monitor

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/nyxos/internal/config"
	"github.com/Gaurav-Gosain/nyxos/internal/desktop"
	"github.com/Gaurav-Gosain/nyxos/internal/sysinfo"
	"github.com/Gaurav-Gosain/nyxos/internal/tape"
)

// CPUSampleInterval is how often the status bar graph is refreshed.
const CPUSampleInterval = time.Second

// playbackTickMsg advances script playback. Ticks from an older generation
// are dropped so pausing and resuming never runs two timers at once.
type playbackTickMsg struct {
	gen int
}

// cpuSampleMsg carries one CPU usage reading.
type cpuSampleMsg struct {
	usage float64
	err   error
}

// Options configures a monitor.
type Options struct {
	Config       *config.UserConfig // nil uses the defaults
	Script       []tape.Command     // nil for an interactive desktop
	Interval     time.Duration      // pause between commands without a delay
	Paused       bool               // start with playback paused
	SampleCPU    bool               // show a live CPU graph
	QuitWhenDone bool               // exit once the script finishes or fails
}

// Model is the bubbletea model for the monitor.
type Model struct {
	cfg          *config.UserConfig
	desk         *desktop.Desktop
	runner       *tape.Runner
	player       *tape.Player
	keys         *config.KeybindRegistry
	converter    *tape.ActionConverter
	cpu          sysinfo.History
	sampleCPU    bool
	quitWhenDone bool

	width    int
	height   int
	showHelp bool
	tickGen  int
	lastErr  error
	lastCmd  string
}

// New builds a monitor over a fresh desktop seeded from the configuration.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	desk := desktop.New(cfg.DesktopOptions(nil))
	m := &Model{
		cfg:          cfg,
		desk:         desk,
		runner:       tape.NewRunner(desk, cfg.WindowSpec),
		keys:         config.NewKeybindRegistry(cfg),
		converter:    tape.NewActionConverter(desk, cfg.AppIDs()),
		sampleCPU:    opts.SampleCPU,
		quitWhenDone: opts.QuitWhenDone,
		width:        80,
		height:       24,
	}

	if opts.Script != nil {
		m.player = tape.NewPlayer(opts.Script)
		m.player.SetInterval(opts.Interval)
		m.player.SetPaused(opts.Paused)
	}
	return m
}

// Desktop returns the desktop being shown.
func (m *Model) Desktop() *desktop.Desktop {
	return m.desk
}

// Player returns the script player, or nil in interactive mode.
func (m *Model) Player() *tape.Player {
	return m.player
}

// Err returns the last script or key error.
func (m *Model) Err() error {
	return m.lastErr
}

// Init starts playback and CPU sampling.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.scheduleTick()}
	if m.sampleCPU {
		cmds = append(cmds, sampleCPU())
	}
	return tea.Batch(cmds...)
}

// Update handles key presses, playback ticks and CPU samples.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg.String())

	case playbackTickMsg:
		if msg.gen != m.tickGen || m.player == nil || m.player.IsPaused() {
			return m, nil
		}
		m.stepPlayer()
		if cmd := m.finishCmd(); cmd != nil {
			return m, cmd
		}
		return m, m.scheduleTick()

	case cpuSampleMsg:
		if msg.err == nil {
			m.cpu.Add(msg.usage)
		}
		return m, sampleCPU()
	}

	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	action := m.keys.GetAction(key)
	switch action {
	case "":
		return nil
	case "quit":
		return tea.Quit
	case "toggle_help":
		m.showHelp = !m.showHelp
		return nil
	case "pause":
		return m.togglePause()
	case "step":
		if m.player != nil && m.player.IsPaused() {
			m.stepPlayer()
			return m.finishCmd()
		}
		return nil
	}

	cmd, ok := m.converter.ActionToCommand(action)
	if !ok {
		return nil
	}
	m.lastCmd = cmd.String()
	if err := m.runner.Step(&cmd); err != nil {
		m.lastErr = err
	}
	return nil
}

func (m *Model) togglePause() tea.Cmd {
	if m.player == nil {
		return nil
	}
	m.player.SetPaused(!m.player.IsPaused())
	if m.player.IsPaused() {
		return nil
	}
	m.tickGen++
	return m.scheduleTick()
}

func (m *Model) stepPlayer() {
	if m.player.IsFinished() {
		return
	}
	m.lastCmd = m.player.CommandStr()
	if err := m.player.Step(m.runner); err != nil {
		m.lastErr = err
	}
}

func (m *Model) scheduleTick() tea.Cmd {
	p := m.player
	if p == nil || p.IsPaused() || p.IsFinished() || p.Err() != nil {
		return nil
	}
	gen := m.tickGen
	return tea.Tick(p.NextDelay(), func(time.Time) tea.Msg {
		return playbackTickMsg{gen: gen}
	})
}

func (m *Model) finishCmd() tea.Cmd {
	if !m.quitWhenDone || m.player == nil {
		return nil
	}
	if m.player.IsFinished() || m.player.Err() != nil {
		return tea.Quit
	}
	return nil
}

func sampleCPU() tea.Cmd {
	return tea.Tick(CPUSampleInterval, func(time.Time) tea.Msg {
		perf, err := sysinfo.Performance(context.Background())
		return cpuSampleMsg{usage: perf.CPUUsage, err: err}
	})
}
