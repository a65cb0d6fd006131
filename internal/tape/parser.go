package tape

import (
	"fmt"
	"slices"
)

// ExpectArity lists every Expect property and the number of values it takes.
var ExpectArity = map[string]int{
	"focused":   1, // window | none
	"windows":   1, // open window count
	"visible":   1, // visible window count on the current desktop
	"desktop":   1, // current desktop index
	"desktops":  1, // desktop count
	"recent":    1, // most recent app id
	"instances": 2, // appId count
	"split":     2, // left|none right|none
	"exists":    2, // window true|false
	"mode":      2, // window mode
	"state":     2, // window normal|minimized|maximized
	"minimized": 2, // window true|false
	"maximized": 2,
	"pinned":    2,
	"floating":  2,
	"opacity":   2, // window percent
	"partner":   2, // window window|none
	"assigned":  2, // window desktop
	"x":         2, // window number
	"y":         2,
	"width":     2,
	"height":    2,
}

// Parser parses .tape files into commands
type Parser struct {
	lexer   *Lexer
	curTok  Token
	peekTok Token
	errors  []string
}

// NewParser creates a new parser from a lexer
func NewParser(l *Lexer) *Parser {
	p := &Parser{
		lexer:  l,
		errors: []string{},
	}
	p.nextToken()
	p.nextToken()
	return p
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lexer.NextToken()
}

// Parse parses the entire tape file and returns all commands
func (p *Parser) Parse() []Command {
	var commands []Command

	for p.curTok.Type != TOKEN_EOF {
		// Skip newlines
		if p.curTok.Type == TOKEN_NEWLINE {
			p.nextToken()
			continue
		}

		cmd, ok := p.parseCommand()
		if !ok {
			p.skipToNextLine()
			continue
		}

		commands = append(commands, cmd)
	}

	return commands
}

// parseCommand parses a single command line
func (p *Parser) parseCommand() (Command, bool) {
	tt := p.curTok.Type
	if !tt.IsCommand() {
		p.addError(fmt.Sprintf("unexpected token: %v %q", tt, p.curTok.Literal))
		return Command{}, false
	}

	cmd := Command{
		Type:   CommandType(tt),
		Line:   p.curTok.Line,
		Column: p.curTok.Column,
	}
	p.nextToken()

	if !p.parseDelay(&cmd) {
		return cmd, false
	}

	var ok bool
	switch tt {
	case TOKEN_OPEN_APP:
		ok = p.parseOpenApp(&cmd)
	case TOKEN_CLOSE_WINDOW, TOKEN_MINIMIZE, TOKEN_MAXIMIZE, TOKEN_PIN:
		cmd.Args = []string{p.optionalName()}
		ok = true
	case TOKEN_FOCUS:
		ok = p.parseNames(&cmd, 1, 1)
	case TOKEN_SPLIT:
		ok = p.parseNames(&cmd, 1, 2)
	case TOKEN_NEXT_WINDOW, TOKEN_PREV_WINDOW, TOKEN_UNSPLIT,
		TOKEN_NEXT_DESKTOP, TOKEN_PREV_DESKTOP, TOKEN_ADD_DESKTOP, TOKEN_REMOVE_DESKTOP:
		ok = true
	case TOKEN_FLOAT:
		ok = p.parseFloat(&cmd)
	case TOKEN_OPACITY, TOKEN_MOVE_TO_DESKTOP:
		cmd.Args = []string{p.optionalName()}
		ok = p.parseNumbers(&cmd, 1)
	case TOKEN_MOVE, TOKEN_RESIZE, TOKEN_DRAG:
		cmd.Args = []string{p.optionalName()}
		ok = p.parseNumbers(&cmd, 2)
	case TOKEN_VIEWPORT:
		ok = p.parseNumbers(&cmd, 2)
	case TOKEN_SWITCH_DESKTOP:
		ok = p.parseNumbers(&cmd, 1)
	case TOKEN_SLEEP:
		ok = p.parseSleep(&cmd)
	case TOKEN_EXPECT:
		ok = p.parseExpect(&cmd)
	}
	if !ok {
		return cmd, false
	}

	if p.curTok.Type != TOKEN_NEWLINE && p.curTok.Type != TOKEN_EOF {
		p.addError(fmt.Sprintf("%s: unexpected argument %q", cmd.Type, p.curTok.Literal))
		return cmd, false
	}

	cmd.Raw = cmd.String()
	return cmd, true
}

// parseDelay handles the optional @<duration> modifier
func (p *Parser) parseDelay(cmd *Command) bool {
	if p.curTok.Type != TOKEN_AT {
		return true
	}
	p.nextToken()
	if p.curTok.Type != TOKEN_DURATION {
		p.addError("expected duration after @")
		return false
	}
	d, err := ParseDuration(p.curTok.Literal)
	if err != nil {
		p.addError(fmt.Sprintf("invalid duration: %s", p.curTok.Literal))
		return false
	}
	cmd.Delay = d
	p.nextToken()
	return true
}

// parseOpenApp parses OpenApp <appId> ["title"] [As <name>]
func (p *Parser) parseOpenApp(cmd *Command) bool {
	if !p.curTok.Type.IsName() {
		p.addError(fmt.Sprintf("OpenApp expects an app id, got %v", p.curTok.Type))
		return false
	}
	appID := p.curTok.Literal
	p.nextToken()

	title := ""
	if p.curTok.Type == TOKEN_STRING {
		title = p.curTok.Literal
		p.nextToken()
	}

	name := ""
	if p.curTok.Type == TOKEN_AS {
		p.nextToken()
		if !p.curTok.Type.IsName() {
			p.addError("As expects a window name")
			return false
		}
		name = p.curTok.Literal
		p.nextToken()
	}

	cmd.Args = []string{appID, title, name}
	return true
}

// parseFloat parses Float [name] [true|false]
func (p *Parser) parseFloat(cmd *Command) bool {
	name := p.optionalName()
	value := "true"
	switch p.curTok.Type {
	case TOKEN_TRUE, TOKEN_FALSE:
		value = p.curTok.Literal
		p.nextToken()
	}
	cmd.Args = []string{name, value}
	return true
}

// parseSleep parses Sleep <duration>
func (p *Parser) parseSleep(cmd *Command) bool {
	if p.curTok.Type != TOKEN_DURATION {
		p.addError(fmt.Sprintf("Sleep expects a duration, got %v", p.curTok.Type))
		return false
	}
	d, err := ParseDuration(p.curTok.Literal)
	if err != nil {
		p.addError(fmt.Sprintf("invalid duration: %s", p.curTok.Literal))
		return false
	}
	cmd.Delay = d
	cmd.Args = []string{p.curTok.Literal}
	p.nextToken()
	return true
}

// parseExpect parses Expect <property> <values...>
func (p *Parser) parseExpect(cmd *Command) bool {
	if p.curTok.Type != TOKEN_IDENTIFIER {
		p.addError(fmt.Sprintf("Expect expects a property, got %v", p.curTok.Type))
		return false
	}
	property := p.curTok.Literal
	arity, known := ExpectArity[property]
	if !known {
		p.addError(fmt.Sprintf("unknown Expect property %q", property))
		return false
	}
	p.nextToken()

	cmd.Args = []string{property}
	for range arity {
		switch p.curTok.Type {
		case TOKEN_IDENTIFIER, TOKEN_STRING, TOKEN_NUMBER, TOKEN_TRUE, TOKEN_FALSE:
			cmd.Args = append(cmd.Args, p.curTok.Literal)
			p.nextToken()
		default:
			p.addError(fmt.Sprintf("Expect %s takes %d value(s)", property, arity))
			return false
		}
	}
	return true
}

// parseNames parses between min and max window names
func (p *Parser) parseNames(cmd *Command, minNames, maxNames int) bool {
	for len(cmd.Args) < maxNames && p.curTok.Type.IsName() {
		cmd.Args = append(cmd.Args, p.curTok.Literal)
		p.nextToken()
	}
	if len(cmd.Args) < minNames {
		p.addError(fmt.Sprintf("%s expects a window name", cmd.Type))
		return false
	}
	return true
}

// parseNumbers appends n numeric arguments
func (p *Parser) parseNumbers(cmd *Command, n int) bool {
	for range n {
		if p.curTok.Type != TOKEN_NUMBER {
			p.addError(fmt.Sprintf("%s expects %d number(s), got %v", cmd.Type, n, p.curTok.Type))
			return false
		}
		cmd.Args = append(cmd.Args, p.curTok.Literal)
		p.nextToken()
	}
	return true
}

// optionalName consumes a window name if present
func (p *Parser) optionalName() string {
	if !p.curTok.Type.IsName() {
		return ""
	}
	name := p.curTok.Literal
	p.nextToken()
	return name
}

// skipToNextLine skips tokens until the next newline
func (p *Parser) skipToNextLine() {
	for p.curTok.Type != TOKEN_NEWLINE && p.curTok.Type != TOKEN_EOF {
		p.nextToken()
	}
}

// addError adds an error to the parser's error list
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, fmt.Sprintf("line %d: %s", p.curTok.Line, msg))
}

// Errors returns the list of parser errors
func (p *Parser) Errors() []string {
	return p.errors
}

// ParseFile parses a tape file from a string
func ParseFile(content string) ([]Command, []string) {
	l := New(content)
	p := NewParser(l)
	commands := p.Parse()
	return commands, p.Errors()
}

// ValidateScript checks if a tape script is valid (parses without errors)
func ValidateScript(content string) (bool, []string) {
	commands, errors := ParseFile(content)
	if len(errors) > 0 {
		return false, errors
	}
	if len(commands) == 0 {
		return false, []string{"no commands found in script"}
	}
	return true, nil
}

// usesWindowArg reports whether Args[0] names a window that may be omitted.
func usesWindowArg(ct CommandType) bool {
	return slices.Contains([]CommandType{
		CommandType_CloseWindow, CommandType_Minimize, CommandType_Maximize, CommandType_Pin,
		CommandType_Float, CommandType_Opacity, CommandType_Move, CommandType_Resize,
		CommandType_Drag, CommandType_MoveToDesktop,
	}, ct)
}
