package tape

import (
	"fmt"
	"time"
)

// DefaultStepInterval is the pause between commands that carry no delay of
// their own during interactive playback.
const DefaultStepInterval = 400 * time.Millisecond

// Player manages step-by-step script playback
type Player struct {
	commands []Command
	index    int  // Current command index
	paused   bool // Whether playback is paused
	interval time.Duration
	lastErr  error
}

// NewPlayer creates a new script player from a list of commands
func NewPlayer(commands []Command) *Player {
	return &Player{
		commands: commands,
		interval: DefaultStepInterval,
	}
}

// SetInterval sets the pause used for commands without an explicit delay.
func (p *Player) SetInterval(d time.Duration) {
	if d > 0 {
		p.interval = d
	}
}

// NextCommand returns the next command to execute without advancing
func (p *Player) NextCommand() *Command {
	if p.index >= len(p.commands) {
		return nil
	}
	return &p.commands[p.index]
}

// NextDelay returns how long to wait before executing the next command.
func (p *Player) NextDelay() time.Duration {
	cmd := p.NextCommand()
	if cmd == nil {
		return 0
	}
	if cmd.Delay > 0 {
		return cmd.Delay
	}
	return p.interval
}

// Step executes the next command with r and advances. It is a no-op once
// playback has finished or failed.
func (p *Player) Step(r *Runner) error {
	cmd := p.NextCommand()
	if cmd == nil || p.lastErr != nil {
		return p.lastErr
	}
	if err := r.Step(cmd); err != nil {
		p.lastErr = err
		return err
	}
	p.index++
	return nil
}

// Err returns the error that stopped playback, if any.
func (p *Player) Err() error {
	return p.lastErr
}

// IsFinished returns true if all commands have been executed
func (p *Player) IsFinished() bool {
	return p.index >= len(p.commands)
}

// IsPaused returns true if playback is paused
func (p *Player) IsPaused() bool {
	return p.paused
}

// SetPaused sets the paused state
func (p *Player) SetPaused(paused bool) {
	p.paused = paused
}

// Reset resets the player to the beginning
func (p *Player) Reset() {
	p.index = 0
	p.paused = false
	p.lastErr = nil
}

// CurrentIndex returns the current command index
func (p *Player) CurrentIndex() int {
	return p.index
}

// TotalCommands returns the total number of commands
func (p *Player) TotalCommands() int {
	return len(p.commands)
}

// Progress returns a value between 0 and 100 representing playback progress
func (p *Player) Progress() int {
	if len(p.commands) == 0 {
		return 100
	}
	return (p.index * 100) / len(p.commands)
}

// CommandStr returns a string representation of the current command for display
func (p *Player) CommandStr() string {
	cmd := p.NextCommand()
	if cmd == nil {
		return "Script finished"
	}
	return cmd.String()
}

// PlaybackStatus contains state information about script playback
type PlaybackStatus struct {
	State    string // "playing", "paused", "finished", "failed"
	Index    int    // Current command index
	Total    int    // Total commands
	Progress int    // 0-100
	Current  string // Current command display string
}

// Status returns current playback status
func (p *Player) Status() PlaybackStatus {
	state := "playing"
	switch {
	case p.lastErr != nil:
		state = "failed"
	case p.IsFinished():
		state = "finished"
	case p.paused:
		state = "paused"
	}

	return PlaybackStatus{
		State:    state,
		Index:    p.index,
		Total:    len(p.commands),
		Progress: p.Progress(),
		Current:  p.CommandStr(),
	}
}

// String returns a debug string representation
func (p *Player) String() string {
	return fmt.Sprintf(
		"Player{index=%d/%d, paused=%v, finished=%v}",
		p.index, len(p.commands), p.paused, p.IsFinished(),
	)
}
