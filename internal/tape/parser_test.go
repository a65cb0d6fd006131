package tape

import (
	"slices"
	"strings"
	"testing"
	"time"
)

func TestParseCommands(t *testing.T) {
	tests := []struct {
		name  string
		input string
		typ   CommandType
		args  []string
		delay time.Duration
	}{
		{"OpenApp bare", `OpenApp chat`, CommandType_OpenApp, []string{"chat", "", ""}, 0},
		{"OpenApp titled", `OpenApp chat "Team Chat" As c1`, CommandType_OpenApp, []string{"chat", "Team Chat", "c1"}, 0},
		{"OpenApp quoted id", `OpenApp "my app"`, CommandType_OpenApp, []string{"my app", "", ""}, 0},
		{"Close focused", `CloseWindow`, CommandType_CloseWindow, []string{""}, 0},
		{"Close named", `CloseWindow c1`, CommandType_CloseWindow, []string{"c1"}, 0},
		{"Focus", `Focus c1`, CommandType_Focus, []string{"c1"}, 0},
		{"Float default", `Float c1`, CommandType_Float, []string{"c1", "true"}, 0},
		{"Float off focused", `Float false`, CommandType_Float, []string{"", "false"}, 0},
		{"Opacity", `Opacity c1 40`, CommandType_Opacity, []string{"c1", "40"}, 0},
		{"Move", `Move c1 10 -20`, CommandType_Move, []string{"c1", "10", "-20"}, 0},
		{"Drag focused", `Drag 5.5 0`, CommandType_Drag, []string{"", "5.5", "0"}, 0},
		{"Viewport", `Viewport 1024 768`, CommandType_Viewport, []string{"1024", "768"}, 0},
		{"Split pair", `Split a b`, CommandType_Split, []string{"a", "b"}, 0},
		{"Split single", `Split a`, CommandType_Split, []string{"a"}, 0},
		{"SwitchDesktop", `SwitchDesktop 2`, CommandType_SwitchDesktop, []string{"2"}, 0},
		{"MoveToDesktop", `MoveToDesktop c1 3`, CommandType_MoveToDesktop, []string{"c1", "3"}, 0},
		{"Delay", `Maximize@250ms c1`, CommandType_Maximize, []string{"c1"}, 250 * time.Millisecond},
		{"Sleep", `Sleep 1s`, CommandType_Sleep, []string{"1s"}, time.Second},
		{"Expect unary", `Expect focused none`, CommandType_Expect, []string{"focused", "none"}, 0},
		{"Expect binary", `Expect state c1 minimized`, CommandType_Expect, []string{"state", "c1", "minimized"}, 0},
		{"Expect bool", `Expect pinned c1 true`, CommandType_Expect, []string{"pinned", "c1", "true"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commands, errs := ParseFile(tt.input)
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if len(commands) != 1 {
				t.Fatalf("Expected 1 command, got %d", len(commands))
			}
			cmd := commands[0]
			if cmd.Type != tt.typ {
				t.Errorf("Expected type %s, got %s", tt.typ, cmd.Type)
			}
			if !slices.Equal(cmd.Args, tt.args) {
				t.Errorf("Expected args %q, got %q", tt.args, cmd.Args)
			}
			if cmd.Delay != tt.delay {
				t.Errorf("Expected delay %v, got %v", tt.delay, cmd.Delay)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"Missing app id", `OpenApp`, "OpenApp expects an app id"},
		{"As without name", `OpenApp chat As`, "As expects a window name"},
		{"Focus without name", `Focus`, "Focus expects a window name"},
		{"Move missing number", `Move c1 10`, "Move expects 2 number(s)"},
		{"Sleep without duration", `Sleep 5`, "Sleep expects a duration"},
		{"Bad delay", `Minimize@fast`, "expected duration after @"},
		{"Unknown property", `Expect colour c1 red`, "unknown Expect property"},
		{"Short Expect", `Expect mode c1`, "Expect mode takes 2 value(s)"},
		{"Trailing argument", `Unsplit now`, "unexpected argument"},
		{"Not a command", `hello`, "unexpected token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := ParseFile(tt.input)
			if len(errs) == 0 {
				t.Fatal("Expected a parse error")
			}
			if !strings.Contains(errs[0], tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, errs[0])
			}
			if !strings.HasPrefix(errs[0], "line 1:") {
				t.Errorf("Expected line prefix, got %q", errs[0])
			}
		})
	}
}

func TestParseRecoversAfterError(t *testing.T) {
	input := `OpenApp chat As c1
Move c1 oops 3
Maximize c1
`
	commands, errs := ParseFile(input)

	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %v", errs)
	}
	if !strings.HasPrefix(errs[0], "line 2:") {
		t.Errorf("Expected error on line 2, got %q", errs[0])
	}
	if len(commands) != 2 {
		t.Fatalf("Expected 2 commands, got %d", len(commands))
	}
	if commands[1].Type != CommandType_Maximize || commands[1].Line != 3 {
		t.Errorf("Expected Maximize on line 3, got %s on line %d", commands[1].Type, commands[1].Line)
	}
}

func TestCommandStringRoundTrip(t *testing.T) {
	inputs := []string{
		`OpenApp chat "Team Chat" As c1`,
		`OpenApp "my app"`,
		`OpenApp chat As c1`,
		`Maximize@250ms c1`,
		`Drag -20 0`,
		`Split a b`,
		`Float c1 false`,
		`Expect focused none`,
		`Sleep 1.5s`,
		`Focus "Float"`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			commands, errs := ParseFile(input)
			if len(errs) > 0 || len(commands) != 1 {
				t.Fatalf("parse %q: %v", input, errs)
			}
			if got := commands[0].String(); got != input {
				t.Errorf("Expected %q, got %q", input, got)
			}
			if commands[0].Raw != input {
				t.Errorf("Raw: expected %q, got %q", input, commands[0].Raw)
			}
		})
	}
}

func TestValidateScript(t *testing.T) {
	if ok, errs := ValidateScript("OpenApp chat\nMinimize\n"); !ok {
		t.Errorf("Expected valid script, got %v", errs)
	}
	if ok, _ := ValidateScript("# only a comment\n"); ok {
		t.Error("Expected empty script to be invalid")
	}
	if ok, errs := ValidateScript("Move 1\n"); ok || len(errs) == 0 {
		t.Error("Expected invalid script")
	}
}

func TestCommandNumericArgs(t *testing.T) {
	cmd := Command{Type: CommandType_Move, Args: []string{"w", "12.5", "x"}, Line: 7}

	if v, err := cmd.Float(1); err != nil || v != 12.5 {
		t.Errorf("Float(1) = %v, %v", v, err)
	}
	if _, err := cmd.Float(2); err == nil || !strings.Contains(err.Error(), "line 7") {
		t.Errorf("Float(2) error = %v", err)
	}
	if _, err := cmd.Int(1); err == nil {
		t.Error("Int(1) should reject a fraction")
	}
	if cmd.Arg(9) != "" {
		t.Error("Arg out of range should be empty")
	}
}
