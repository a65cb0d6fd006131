package config

import (
	"fmt"
	"slices"
	"strings"
)

// ActionDescriptions maps every bindable action to its help text.
var ActionDescriptions = map[string]string{
	// Window management
	"launch_app":      "Launch next app from catalog",
	"close_window":    "Close window",
	"next_window":     "Next window",
	"prev_window":     "Previous window",
	"minimize_window": "Minimize window",
	"maximize_window": "Maximize window",
	"pin_window":      "Pin window to all desktops",
	"toggle_floating": "Toggle floating",
	"opacity_up":      "Increase opacity",
	"opacity_down":    "Decrease opacity",

	// Desktops
	"next_desktop":   "Next desktop",
	"prev_desktop":   "Previous desktop",
	"add_desktop":    "Add desktop",
	"remove_desktop": "Remove current desktop",

	// Layout
	"split_screen":  "Split focused window with previous",
	"unsplit":       "Clear split screen",
	"move_left":     "Move window left",
	"move_right":    "Move window right",
	"move_up":       "Move window up",
	"move_down":     "Move window down",
	"grow_window":   "Grow window",
	"shrink_window": "Shrink window",

	// System
	"toggle_help": "Toggle help",
	"pause":       "Pause playback",
	"step":        "Step one command",
	"quit":        "Quit",
}

func init() {
	for i := 1; i <= 9; i++ {
		ActionDescriptions[fmt.Sprintf("switch_desktop_%d", i)] = fmt.Sprintf("Switch to desktop %d", i)
		ActionDescriptions[fmt.Sprintf("move_to_desktop_%d", i)] = fmt.Sprintf("Move window to desktop %d", i)
	}
}

// DesktopActions returns the numbered switch and move actions in display
// order.
func DesktopActions() []string {
	actions := make([]string, 0, 18)
	for i := 1; i <= 9; i++ {
		actions = append(actions, fmt.Sprintf("switch_desktop_%d", i))
	}
	for i := 1; i <= 9; i++ {
		actions = append(actions, fmt.Sprintf("move_to_desktop_%d", i))
	}
	return actions
}

func defaultKeybindings() KeybindingsConfig {
	desktops := map[string][]string{
		"next_desktop":   {"]"},
		"prev_desktop":   {"["},
		"add_desktop":    {"+"},
		"remove_desktop": {"-"},
	}
	for i := 1; i <= 9; i++ {
		desktops[fmt.Sprintf("switch_desktop_%d", i)] = []string{fmt.Sprintf("alt+%d", i)}
		desktops[fmt.Sprintf("move_to_desktop_%d", i)] = []string{fmt.Sprintf("alt+shift+%d", i)}
	}

	return KeybindingsConfig{
		WindowManagement: map[string][]string{
			"launch_app":      {"n"},
			"close_window":    {"x"},
			"next_window":     {"tab"},
			"prev_window":     {"shift+tab"},
			"minimize_window": {"m"},
			"maximize_window": {"f"},
			"pin_window":      {"P"},
			"toggle_floating": {"F"},
			"opacity_up":      {"."},
			"opacity_down":    {","},
		},
		Desktops: desktops,
		Layout: map[string][]string{
			"split_screen":  {"s"},
			"unsplit":       {"u"},
			"move_left":     {"h", "left"},
			"move_right":    {"l", "right"},
			"move_up":       {"k", "up"},
			"move_down":     {"j", "down"},
			"grow_window":   {">"},
			"shrink_window": {"<"},
		},
		System: map[string][]string{
			"toggle_help": {"?"},
			"pause":       {"space"},
			"step":        {"enter"},
			"quit":        {"q", "ctrl+c"},
		},
	}
}

// KeybindRegistry resolves keys to actions and actions to keys.
type KeybindRegistry struct {
	actionKeys map[string][]string
	keyAction  map[string]string
	normalizer *KeyNormalizer
}

// NewKeybindRegistry builds a registry from the config's keybindings.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	r := &KeybindRegistry{
		actionKeys: make(map[string][]string),
		keyAction:  make(map[string]string),
		normalizer: NewKeyNormalizer(),
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	for _, section := range []map[string][]string{
		cfg.Keybindings.WindowManagement,
		cfg.Keybindings.Desktops,
		cfg.Keybindings.Layout,
		cfg.Keybindings.System,
	} {
		for action, keys := range section {
			r.actionKeys[action] = keys
			for _, key := range keys {
				for _, variant := range r.normalizer.NormalizeKey(key) {
					r.keyAction[variant] = action
				}
			}
		}
	}
	return r
}

// GetKeys returns the keys bound to an action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return slices.Clone(r.actionKeys[action])
}

// GetKeysForDisplay returns the keys bound to an action joined for help text.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.actionKeys[action]
	display := make([]string, 0, len(keys))
	for _, k := range keys {
		display = append(display, formatKeyForDisplay(k))
	}
	return strings.Join(display, ", ")
}

// GetAction returns the action bound to key, or "" when unbound.
func (r *KeybindRegistry) GetAction(key string) string {
	if action, ok := r.keyAction[key]; ok {
		return action
	}
	for _, variant := range r.normalizer.NormalizeKey(key) {
		if action, ok := r.keyAction[variant]; ok {
			return action
		}
	}
	return ""
}

// Actions returns every bound action, sorted.
func (r *KeybindRegistry) Actions() []string {
	actions := make([]string, 0, len(r.actionKeys))
	for a := range r.actionKeys {
		actions = append(actions, a)
	}
	slices.Sort(actions)
	return actions
}

func formatKeyForDisplay(key string) string {
	parts := strings.Split(key, "+")
	for i, p := range parts {
		switch strings.ToLower(p) {
		case "ctrl", "alt", "shift":
			parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
		case "tab", "enter", "space", "esc":
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "+")
}

// KeyNormalizer canonicalizes key strings so that "Ctrl+A" and "ctrl+a"
// resolve to the same binding.
type KeyNormalizer struct {
	aliases map[string]string
}

// NewKeyNormalizer creates a normalizer with the standard aliases.
func NewKeyNormalizer() *KeyNormalizer {
	return &KeyNormalizer{
		aliases: map[string]string{
			"return":   "enter",
			"escape":   "esc",
			"del":      "delete",
			"spacebar": "space",
			"pgup":     "pageup",
			"pgdown":   "pagedown",
		},
	}
}

var validKeyNames = map[string]bool{
	"enter": true, "esc": true, "tab": true, "space": true, "backspace": true,
	"delete": true, "up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pageup": true, "pagedown": true,
	"return": true, "escape": true,
}

// NormalizeKey returns the key in canonical form followed by any alias
// spelling. Modifiers are lower-cased; a bare single character keeps its case
// so "P" and "p" stay distinct.
func (n *KeyNormalizer) NormalizeKey(key string) []string {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}

	if len([]rune(key)) == 1 {
		return []string{key}
	}

	parts := strings.Split(key, "+")
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	canonical := strings.Join(parts, "+")

	out := []string{canonical}
	last := parts[len(parts)-1]
	if alias, ok := n.aliases[last]; ok {
		parts[len(parts)-1] = alias
		out = append(out, strings.Join(parts, "+"))
	}
	return out
}

// ValidateKey reports whether key is a usable binding.
func (n *KeyNormalizer) ValidateKey(key string) (bool, string) {
	keys := n.NormalizeKey(key)
	if len(keys) == 0 {
		return false, "key is empty"
	}

	if len([]rune(keys[0])) == 1 {
		return true, ""
	}

	parts := strings.Split(keys[0], "+")
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "ctrl", "alt", "shift", "super":
		default:
			return false, fmt.Sprintf("unknown modifier %q", mod)
		}
	}

	last := parts[len(parts)-1]
	if len([]rune(last)) == 1 || validKeyNames[last] || n.aliases[last] != "" {
		return true, ""
	}
	return false, fmt.Sprintf("unknown key %q", last)
}
