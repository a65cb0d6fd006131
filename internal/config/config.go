// Package config loads the nyxos user configuration: desktop defaults, window
// appearance, the browser host, keybindings and the catalog of launchable
// applications.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/Gaurav-Gosain/nyxos/internal/desktop"
)

// AppName is used for the config directory and file header.
const AppName = "nyxos"

// UserConfig is the on-disk configuration.
type UserConfig struct {
	Desktop     DesktopConfig     `toml:"desktop"`
	Appearance  AppearanceConfig  `toml:"appearance"`
	Server      ServerConfig      `toml:"server"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
	Apps        []AppConfig       `toml:"apps"`
}

// DesktopConfig seeds every new desktop state.
type DesktopConfig struct {
	Desktops       int     `toml:"desktops"`
	ViewportWidth  float64 `toml:"viewport_width"`
	ViewportHeight float64 `toml:"viewport_height"`
	MaxRecentApps  int     `toml:"max_recent_apps"`
}

// AppearanceConfig controls window chrome.
type AppearanceConfig struct {
	Theme          string  `toml:"theme"`
	DefaultOpacity float64 `toml:"default_opacity"`
}

// ServerConfig configures the browser host.
type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           string   `toml:"port"`
	ReadOnly       bool     `toml:"read_only"`
	MaxConnections int      `toml:"max_connections"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// KeybindingsConfig maps actions to keys, grouped the way the help screen
// shows them.
type KeybindingsConfig struct {
	WindowManagement map[string][]string `toml:"window_management"`
	Desktops         map[string][]string `toml:"desktops"`
	Layout           map[string][]string `toml:"layout"`
	System           map[string][]string `toml:"system"`
}

// AppConfig is one launchable application in the catalog.
type AppConfig struct {
	ID        string  `toml:"id" json:"id"`
	Name      string  `toml:"name" json:"name"`
	Component string  `toml:"component" json:"component"`
	Icon      string  `toml:"icon,omitempty" json:"icon,omitempty"`
	Width     float64 `toml:"width,omitempty" json:"width,omitempty"`
	Height    float64 `toml:"height,omitempty" json:"height,omitempty"`
	Mode      string  `toml:"mode,omitempty" json:"mode,omitempty"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Desktop: DesktopConfig{
			Desktops:       4,
			ViewportWidth:  1280,
			ViewportHeight: 800,
			MaxRecentApps:  10,
		},
		Appearance: AppearanceConfig{
			Theme:          "dracula",
			DefaultOpacity: 1.0,
		},
		Server: ServerConfig{
			Host:           "localhost",
			Port:           "7681",
			MaxConnections: 0,
		},
		Keybindings: defaultKeybindings(),
		Apps:        DefaultApps(),
	}
}

// DefaultApps is the stock application catalog.
func DefaultApps() []AppConfig {
	return []AppConfig{
		{ID: "terminal", Name: "Terminal", Component: "Terminal", Icon: "terminal", Width: 640, Height: 400},
		{ID: "files", Name: "Files", Component: "FileManager", Icon: "folder", Width: 720, Height: 480},
		{ID: "browser", Name: "Browser", Component: "Browser", Icon: "globe", Width: 960, Height: 640},
		{ID: "chat", Name: "Chat", Component: "ChatApp", Icon: "message", Width: 420, Height: 560},
		{ID: "editor", Name: "Text Editor", Component: "TextEditor", Icon: "file-text", Width: 720, Height: 520},
		{ID: "monitor", Name: "System Monitor", Component: "SystemMonitor", Icon: "activity", Width: 520, Height: 360},
		{ID: "settings", Name: "Settings", Component: "Settings", Icon: "settings", Width: 560, Height: 440},
		{ID: "music", Name: "Music", Component: "MusicPlayer", Icon: "music", Width: 360, Height: 200, Mode: "pip"},
	}
}

// FindApp looks up an app in the catalog by id.
func (c *UserConfig) FindApp(id string) (AppConfig, bool) {
	for _, app := range c.Apps {
		if app.ID == id {
			return app, true
		}
	}
	return AppConfig{}, false
}

// GetConfigPath returns $XDG_CONFIG_HOME/nyxos/config.toml, creating the
// directory if needed.
func GetConfigPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join(AppName, "config.toml"))
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

// LoadUserConfig reads the config file, writing the defaults first if it does
// not exist yet.
func LoadUserConfig() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. A missing file is created with the
// defaults. Missing fields are filled in from DefaultConfig.
func LoadFile(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := WriteFile(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes TOML config data and fills in defaults.
func Parse(data []byte) (*UserConfig, error) {
	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.fillDefaults(DefaultConfig())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteFile writes cfg to path with a commented header.
func WriteFile(path string, cfg *UserConfig) error {
	data, err := Marshal(cfg, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Marshal renders cfg as TOML with the standard header.
func Marshal(cfg *UserConfig, path string) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("# nyxos configuration file\n")
	sb.WriteString("# Keybindings map an action to one or more keys.\n")
	sb.WriteString("# Apps listed under [[apps]] appear in the launcher.\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + path + "\n\n")

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	sb.Write(data)
	return []byte(sb.String()), nil
}

func (c *UserConfig) fillDefaults(def *UserConfig) {
	if c.Desktop.Desktops <= 0 {
		c.Desktop.Desktops = def.Desktop.Desktops
	}
	if !desktop.PositiveFinite(c.Desktop.ViewportWidth) {
		c.Desktop.ViewportWidth = def.Desktop.ViewportWidth
	}
	if !desktop.PositiveFinite(c.Desktop.ViewportHeight) {
		c.Desktop.ViewportHeight = def.Desktop.ViewportHeight
	}
	if c.Desktop.MaxRecentApps <= 0 {
		c.Desktop.MaxRecentApps = def.Desktop.MaxRecentApps
	}
	if c.Appearance.Theme == "" {
		c.Appearance.Theme = def.Appearance.Theme
	}
	if c.Appearance.DefaultOpacity == 0 {
		c.Appearance.DefaultOpacity = def.Appearance.DefaultOpacity
	}
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
	if len(c.Apps) == 0 {
		c.Apps = def.Apps
	}

	fill := func(dst *map[string][]string, src map[string][]string) {
		if *dst == nil {
			*dst = make(map[string][]string, len(src))
		}
		for action, keys := range src {
			if _, ok := (*dst)[action]; !ok {
				(*dst)[action] = keys
			}
		}
	}
	fill(&c.Keybindings.WindowManagement, def.Keybindings.WindowManagement)
	fill(&c.Keybindings.Desktops, def.Keybindings.Desktops)
	fill(&c.Keybindings.Layout, def.Keybindings.Layout)
	fill(&c.Keybindings.System, def.Keybindings.System)
}

// Validate checks values that cannot be repaired by defaulting.
func (c *UserConfig) Validate() error {
	if c.Appearance.DefaultOpacity < 0.1 || c.Appearance.DefaultOpacity > 1 {
		return fmt.Errorf("appearance.default_opacity must be within [0.1, 1], got %v", c.Appearance.DefaultOpacity)
	}
	if c.Server.MaxConnections < 0 {
		return fmt.Errorf("server.max_connections must not be negative")
	}
	seen := make(map[string]bool, len(c.Apps))
	for i, app := range c.Apps {
		if app.ID == "" {
			return fmt.Errorf("apps[%d]: id is required", i)
		}
		if seen[app.ID] {
			return fmt.Errorf("apps[%d]: duplicate id %q", i, app.ID)
		}
		if app.Width < 0 || app.Height < 0 || math.IsNaN(app.Width) || math.IsNaN(app.Height) ||
			math.IsInf(app.Width, 0) || math.IsInf(app.Height, 0) {
			return fmt.Errorf("apps[%d]: invalid size %vx%v", i, app.Width, app.Height)
		}
		if _, ok := desktop.ParseMode(app.Mode); !ok {
			return fmt.Errorf("apps[%d]: unknown mode %q", i, app.Mode)
		}
		seen[app.ID] = true
	}
	return nil
}
