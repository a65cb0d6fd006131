package config

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Actions  []string
	Bindings []Keybinding
}

// HelpSections lists the actions shown in help output, grouped by section.
func HelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "Window Management",
			Actions: []string{
				"launch_app", "close_window", "next_window", "prev_window",
				"minimize_window", "maximize_window", "pin_window",
				"toggle_floating", "opacity_up", "opacity_down",
			},
		},
		{
			Title:   "Desktops",
			Actions: append([]string{"next_desktop", "prev_desktop", "add_desktop", "remove_desktop"}, DesktopActions()...),
		},
		{
			Title: "Layout",
			Actions: []string{
				"split_screen", "unsplit",
				"move_left", "move_right", "move_up", "move_down",
				"grow_window", "shrink_window",
			},
		},
		{
			Title:   "System",
			Actions: []string{"toggle_help", "pause", "step", "quit"},
		},
	}
}

// GetKeybindings returns all keybinding sections for the help menu.
// If registry is nil, the default bindings are used.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultConfig())
	}

	var sections []KeybindingSection
	for _, section := range HelpSections() {
		for _, action := range section.Actions {
			addBinding(&section, registry, action, ActionDescriptions[action])
		}
		if len(section.Bindings) > 0 {
			sections = append(sections, section)
		}
	}
	return sections
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys == "" {
		return
	}
	if description == "" {
		description = action
	}
	section.Bindings = append(section.Bindings, Keybinding{
		Key:         keys,
		Description: description,
	})
}
