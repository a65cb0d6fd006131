package tape

// TokenType represents the type of a token in a .tape file
type TokenType string

const (
	// Special tokens
	TOKEN_EOF     TokenType = "EOF"
	TOKEN_ILLEGAL TokenType = "ILLEGAL"
	TOKEN_NEWLINE TokenType = "NEWLINE"

	// Literals
	TOKEN_STRING     TokenType = "STRING"
	TOKEN_NUMBER     TokenType = "NUMBER"
	TOKEN_DURATION   TokenType = "DURATION"
	TOKEN_IDENTIFIER TokenType = "IDENTIFIER"

	// Symbols
	TOKEN_AT TokenType = "AT"

	// Commands - Lifecycle
	TOKEN_OPEN_APP     TokenType = "OpenApp"
	TOKEN_CLOSE_WINDOW TokenType = "CloseWindow"
	TOKEN_MINIMIZE     TokenType = "Minimize"
	TOKEN_MAXIMIZE     TokenType = "Maximize"
	TOKEN_PIN          TokenType = "Pin"
	TOKEN_FLOAT        TokenType = "Float"
	TOKEN_OPACITY      TokenType = "Opacity"

	// Commands - Focus
	TOKEN_FOCUS       TokenType = "Focus"
	TOKEN_NEXT_WINDOW TokenType = "NextWindow"
	TOKEN_PREV_WINDOW TokenType = "PrevWindow"

	// Commands - Geometry
	TOKEN_MOVE     TokenType = "Move"
	TOKEN_RESIZE   TokenType = "Resize"
	TOKEN_DRAG     TokenType = "Drag"
	TOKEN_VIEWPORT TokenType = "Viewport"

	// Commands - Split screen
	TOKEN_SPLIT   TokenType = "Split"
	TOKEN_UNSPLIT TokenType = "Unsplit"

	// Commands - Desktops
	TOKEN_SWITCH_DESKTOP  TokenType = "SwitchDesktop"
	TOKEN_NEXT_DESKTOP    TokenType = "NextDesktop"
	TOKEN_PREV_DESKTOP    TokenType = "PrevDesktop"
	TOKEN_ADD_DESKTOP     TokenType = "AddDesktop"
	TOKEN_REMOVE_DESKTOP  TokenType = "RemoveDesktop"
	TOKEN_MOVE_TO_DESKTOP TokenType = "MoveToDesktop"

	// Commands - Synchronization
	TOKEN_SLEEP  TokenType = "Sleep"
	TOKEN_EXPECT TokenType = "Expect"

	// Keywords
	TOKEN_AS    TokenType = "As"
	TOKEN_TRUE  TokenType = "true"
	TOKEN_FALSE TokenType = "false"
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// IsCommand returns true if the token type is a command
func (tt TokenType) IsCommand() bool {
	switch tt {
	case TOKEN_OPEN_APP, TOKEN_CLOSE_WINDOW, TOKEN_MINIMIZE, TOKEN_MAXIMIZE,
		TOKEN_PIN, TOKEN_FLOAT, TOKEN_OPACITY,
		TOKEN_FOCUS, TOKEN_NEXT_WINDOW, TOKEN_PREV_WINDOW,
		TOKEN_MOVE, TOKEN_RESIZE, TOKEN_DRAG, TOKEN_VIEWPORT,
		TOKEN_SPLIT, TOKEN_UNSPLIT,
		TOKEN_SWITCH_DESKTOP, TOKEN_NEXT_DESKTOP, TOKEN_PREV_DESKTOP,
		TOKEN_ADD_DESKTOP, TOKEN_REMOVE_DESKTOP, TOKEN_MOVE_TO_DESKTOP,
		TOKEN_SLEEP, TOKEN_EXPECT:
		return true
	}
	return false
}

// IsName returns true if the token can name a window or app
func (tt TokenType) IsName() bool {
	return tt == TOKEN_IDENTIFIER || tt == TOKEN_STRING
}

// KeywordTokenMap maps string keywords to token types
var KeywordTokenMap = map[string]TokenType{
	// Lifecycle
	"OpenApp":     TOKEN_OPEN_APP,
	"CloseWindow": TOKEN_CLOSE_WINDOW,
	"Minimize":    TOKEN_MINIMIZE,
	"Maximize":    TOKEN_MAXIMIZE,
	"Pin":         TOKEN_PIN,
	"Float":       TOKEN_FLOAT,
	"Opacity":     TOKEN_OPACITY,

	// Focus
	"Focus":      TOKEN_FOCUS,
	"NextWindow": TOKEN_NEXT_WINDOW,
	"PrevWindow": TOKEN_PREV_WINDOW,

	// Geometry
	"Move":     TOKEN_MOVE,
	"Resize":   TOKEN_RESIZE,
	"Drag":     TOKEN_DRAG,
	"Viewport": TOKEN_VIEWPORT,

	// Split screen
	"Split":   TOKEN_SPLIT,
	"Unsplit": TOKEN_UNSPLIT,

	// Desktops
	"SwitchDesktop": TOKEN_SWITCH_DESKTOP,
	"NextDesktop":   TOKEN_NEXT_DESKTOP,
	"PrevDesktop":   TOKEN_PREV_DESKTOP,
	"AddDesktop":    TOKEN_ADD_DESKTOP,
	"RemoveDesktop": TOKEN_REMOVE_DESKTOP,
	"MoveToDesktop": TOKEN_MOVE_TO_DESKTOP,

	// Synchronization
	"Sleep":  TOKEN_SLEEP,
	"Expect": TOKEN_EXPECT,

	// Keywords
	"As":    TOKEN_AS,
	"true":  TOKEN_TRUE,
	"false": TOKEN_FALSE,
}

// LookupKeyword returns the token type for a keyword, or TOKEN_IDENTIFIER if not a keyword
func LookupKeyword(ident string) TokenType {
	if tt, ok := KeywordTokenMap[ident]; ok {
		return tt
	}
	return TOKEN_IDENTIFIER
}
