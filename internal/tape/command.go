package tape

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CommandType represents the type of a tape command
type CommandType string

const (
	// Lifecycle
	CommandType_OpenApp     CommandType = "OpenApp"
	CommandType_CloseWindow CommandType = "CloseWindow"
	CommandType_Minimize    CommandType = "Minimize"
	CommandType_Maximize    CommandType = "Maximize"
	CommandType_Pin         CommandType = "Pin"
	CommandType_Float       CommandType = "Float"
	CommandType_Opacity     CommandType = "Opacity"

	// Focus
	CommandType_Focus      CommandType = "Focus"
	CommandType_NextWindow CommandType = "NextWindow"
	CommandType_PrevWindow CommandType = "PrevWindow"

	// Geometry
	CommandType_Move     CommandType = "Move"
	CommandType_Resize   CommandType = "Resize"
	CommandType_Drag     CommandType = "Drag"
	CommandType_Viewport CommandType = "Viewport"

	// Split screen
	CommandType_Split   CommandType = "Split"
	CommandType_Unsplit CommandType = "Unsplit"

	// Desktops
	CommandType_SwitchDesktop CommandType = "SwitchDesktop"
	CommandType_NextDesktop   CommandType = "NextDesktop"
	CommandType_PrevDesktop   CommandType = "PrevDesktop"
	CommandType_AddDesktop    CommandType = "AddDesktop"
	CommandType_RemoveDesktop CommandType = "RemoveDesktop"
	CommandType_MoveToDesktop CommandType = "MoveToDesktop"

	// Synchronization
	CommandType_Sleep  CommandType = "Sleep"
	CommandType_Expect CommandType = "Expect"
)

// Command represents a parsed tape command.
//
// Window arguments are names bound with OpenApp ... As <name>, raw window
// ids, or empty for the focused window. The layout of Args per type:
//
//	OpenApp        appId [title [name]]
//	CloseWindow    [window]
//	Minimize       [window]     (Maximize and Pin likewise)
//	Float          window true|false
//	Opacity        window percent
//	Move           window x y   (Resize and Drag likewise)
//	Viewport       width height
//	Split          left [right]
//	SwitchDesktop  index
//	MoveToDesktop  window index
//	Sleep          duration
//	Expect         property args...
type Command struct {
	Type   CommandType
	Args   []string      // Command arguments
	Delay  time.Duration // Delay before this command
	Line   int           // Source line number
	Column int           // Source column number
	Raw    string        // Original raw command text
}

// Arg returns the i-th argument or "" when absent.
func (c *Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// Float returns the i-th argument as a number.
func (c *Command) Float(i int) (float64, error) {
	v, err := strconv.ParseFloat(c.Arg(i), 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s expects a number, got %q", c.Line, c.Type, c.Arg(i))
	}
	return v, nil
}

// Int returns the i-th argument as an integer.
func (c *Command) Int(i int) (int, error) {
	v, err := strconv.Atoi(c.Arg(i))
	if err != nil {
		return 0, fmt.Errorf("line %d: %s expects an integer, got %q", c.Line, c.Type, c.Arg(i))
	}
	return v, nil
}

// String returns the command as tape source.
func (c *Command) String() string {
	var sb strings.Builder
	sb.WriteString(string(c.Type))
	if c.Delay > 0 && c.Type != CommandType_Sleep {
		sb.WriteString("@" + c.Delay.String())
	}

	args := c.Args
	if c.Type == CommandType_OpenApp && len(args) > 0 {
		sb.WriteString(" " + formatName(args[0]))
		if len(args) > 1 && args[1] != "" {
			sb.WriteString(" " + strconv.Quote(args[1]))
		}
		if len(args) > 2 && args[2] != "" {
			sb.WriteString(" As " + formatName(args[2]))
		}
		return sb.String()
	}

	for _, a := range args {
		if a == "" {
			continue
		}
		sb.WriteString(" " + formatName(a))
	}
	return sb.String()
}

// formatName quotes an argument unless it lexes as a single token.
func formatName(s string) string {
	if s == "" {
		return `""`
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s
	}
	if _, err := time.ParseDuration(s); err == nil && isDigit(s[0]) {
		return s
	}
	if !isIdentifierStart(s[0]) {
		return strconv.Quote(s)
	}
	for i := 0; i < len(s); i++ {
		if !isIdentifierChar(s[i]) {
			return strconv.Quote(s)
		}
	}
	if LookupKeyword(s) != TOKEN_IDENTIFIER && s != "true" && s != "false" {
		return strconv.Quote(s)
	}
	return s
}

// IsCommand returns true if the command type is a valid command
func (ct CommandType) IsCommand() bool {
	switch ct {
	case CommandType_OpenApp, CommandType_CloseWindow, CommandType_Minimize,
		CommandType_Maximize, CommandType_Pin, CommandType_Float, CommandType_Opacity,
		CommandType_Focus, CommandType_NextWindow, CommandType_PrevWindow,
		CommandType_Move, CommandType_Resize, CommandType_Drag, CommandType_Viewport,
		CommandType_Split, CommandType_Unsplit,
		CommandType_SwitchDesktop, CommandType_NextDesktop, CommandType_PrevDesktop,
		CommandType_AddDesktop, CommandType_RemoveDesktop, CommandType_MoveToDesktop,
		CommandType_Sleep, CommandType_Expect:
		return true
	}
	return false
}

// ParseDuration parses a duration string (e.g., "500ms", "1s")
func ParseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
