package tape

import (
	"testing"
)

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "OpenApp with title and name",
			input:    `OpenApp chat "Chat" As c1`,
			expected: []TokenType{TOKEN_OPEN_APP, TOKEN_IDENTIFIER, TOKEN_STRING, TOKEN_AS, TOKEN_IDENTIFIER, TOKEN_EOF},
		},
		{
			name:     "Sleep command",
			input:    `Sleep 500ms`,
			expected: []TokenType{TOKEN_SLEEP, TOKEN_DURATION, TOKEN_EOF},
		},
		{
			name:     "Bare command",
			input:    `NextWindow`,
			expected: []TokenType{TOKEN_NEXT_WINDOW, TOKEN_EOF},
		},
		{
			name:     "Negative drag",
			input:    `Drag -20 5.5`,
			expected: []TokenType{TOKEN_DRAG, TOKEN_NUMBER, TOKEN_NUMBER, TOKEN_EOF},
		},
		{
			name:     "Float keyword",
			input:    `Float w1 false`,
			expected: []TokenType{TOKEN_FLOAT, TOKEN_IDENTIFIER, TOKEN_FALSE, TOKEN_EOF},
		},
		{
			name:     "Illegal character",
			input:    `Move $`,
			expected: []TokenType{TOKEN_MOVE, TOKEN_ILLEGAL, TOKEN_EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)

			if len(tokens) != len(tt.expected) {
				t.Fatalf("Expected %d tokens, got %d: %v", len(tt.expected), len(tokens), tokens)
			}

			for i, expectedType := range tt.expected {
				if tokens[i].Type != expectedType {
					t.Errorf("Token %d: expected %v, got %v", i, expectedType, tokens[i].Type)
				}
			}
		})
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedValue string
	}{
		{
			name:          "Double quoted string",
			input:         `OpenApp chat "hello world"`,
			expectedValue: "hello world",
		},
		{
			name:          "Single quoted string",
			input:         `OpenApp chat 'hello world'`,
			expectedValue: "hello world",
		},
		{
			name:          "Backtick string",
			input:         `OpenApp chat ` + "`hello world`",
			expectedValue: "hello world",
		},
		{
			name:          "Escaped quotes",
			input:         `OpenApp chat "hello \"world\""`,
			expectedValue: `hello "world"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)

			var stringToken Token
			for _, tok := range tokens {
				if tok.Type == TOKEN_STRING {
					stringToken = tok
					break
				}
			}

			if stringToken.Literal != tt.expectedValue {
				t.Errorf("Expected %q, got %q", tt.expectedValue, stringToken.Literal)
			}
		})
	}
}

func TestLexerDurations(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedValue string
	}{
		{"Milliseconds", `Sleep 500ms`, "500ms"},
		{"Seconds", `Sleep 2s`, "2s"},
		{"Decimal seconds", `Sleep 1.5s`, "1.5s"},
		{"Compound", `Sleep 1m2.5s`, "1m2.5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)

			var durationToken Token
			for _, tok := range tokens {
				if tok.Type == TOKEN_DURATION {
					durationToken = tok
					break
				}
			}

			if durationToken.Literal != tt.expectedValue {
				t.Errorf("Expected %q, got %q", tt.expectedValue, durationToken.Literal)
			}
		})
	}
}

func TestLexerComments(t *testing.T) {
	input := `# This is a comment
Minimize
# Another comment
Unsplit`

	tokens := Tokenize(input)

	var types []TokenType
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}

	expected := []TokenType{
		TOKEN_NEWLINE,
		TOKEN_MINIMIZE, TOKEN_NEWLINE,
		TOKEN_NEWLINE,
		TOKEN_UNSPLIT, TOKEN_EOF,
	}

	if len(types) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d: %v", len(expected), len(types), types)
	}

	for i, expectedType := range expected {
		if types[i] != expectedType {
			t.Errorf("Token %d: expected %v, got %v", i, expectedType, types[i])
		}
	}
}

func TestLexerIdentifiers(t *testing.T) {
	tokens := Tokenize(`Focus chat-1-1700000000000 my_win v1.2`)

	want := []string{"Focus", "chat-1-1700000000000", "my_win", "v1.2", ""}
	if len(tokens) != len(want) {
		t.Fatalf("Expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, lit := range want {
		if tokens[i].Literal != lit {
			t.Errorf("Token %d: expected %q, got %q", i, lit, tokens[i].Literal)
		}
	}
	for _, tok := range tokens[1:4] {
		if tok.Type != TOKEN_IDENTIFIER {
			t.Errorf("%q: expected IDENTIFIER, got %v", tok.Literal, tok.Type)
		}
	}
}

func TestLexerLineNumbers(t *testing.T) {
	input := `Minimize a
Minimize b

Minimize c`

	tokens := Tokenize(input)

	var commands []Token
	for _, tok := range tokens {
		if tok.Type == TOKEN_MINIMIZE {
			commands = append(commands, tok)
		}
	}

	expectedLines := []int{1, 2, 4}

	if len(commands) != len(expectedLines) {
		t.Fatalf("Expected %d Minimize tokens, got %d", len(expectedLines), len(commands))
	}

	for i, expectedLine := range expectedLines {
		if commands[i].Line != expectedLine {
			t.Errorf("Token %d: expected line %d, got %d", i, expectedLine, commands[i].Line)
		}
		if commands[i].Column != 1 {
			t.Errorf("Token %d: expected column 1, got %d", i, commands[i].Column)
		}
	}
}

func TestLexerAtModifier(t *testing.T) {
	input := `Maximize@100ms
Sleep@2s 500ms`

	tokens := Tokenize(input)

	atCount := 0
	for _, tok := range tokens {
		if tok.Type == TOKEN_AT {
			atCount++
		}
	}

	if atCount != 2 {
		t.Errorf("Expected 2 @ tokens, got %d", atCount)
	}
}

func TestKeywordTokenMap(t *testing.T) {
	tests := []struct {
		name     string
		keyword  string
		expected TokenType
	}{
		{"OpenApp", "OpenApp", TOKEN_OPEN_APP},
		{"Sleep", "Sleep", TOKEN_SLEEP},
		{"MoveToDesktop", "MoveToDesktop", TOKEN_MOVE_TO_DESKTOP},
		{"As", "As", TOKEN_AS},
		{"Case sensitive", "openapp", TOKEN_IDENTIFIER},
		{"Unknown", "UnknownKeyword", TOKEN_IDENTIFIER},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenType := LookupKeyword(tt.keyword)
			if tokenType != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tokenType)
			}
		})
	}
}

func TestTokenTypeHelpers(t *testing.T) {
	t.Run("IsCommand", func(t *testing.T) {
		if !TOKEN_SPLIT.IsCommand() {
			t.Error("TOKEN_SPLIT should be a command")
		}
		if TOKEN_STRING.IsCommand() {
			t.Error("TOKEN_STRING should not be a command")
		}
		if TOKEN_AS.IsCommand() {
			t.Error("TOKEN_AS should not be a command")
		}
	})

	t.Run("IsName", func(t *testing.T) {
		if !TOKEN_IDENTIFIER.IsName() || !TOKEN_STRING.IsName() {
			t.Error("identifiers and strings should name windows")
		}
		if TOKEN_NUMBER.IsName() {
			t.Error("TOKEN_NUMBER should not name a window")
		}
	})

	t.Run("CommandTypes match tokens", func(t *testing.T) {
		for word, tt := range KeywordTokenMap {
			if tt.IsCommand() != CommandType(word).IsCommand() {
				t.Errorf("%s: token and command disagree", word)
			}
		}
	})
}
