// Package main implements nyxos, a simulated desktop environment served to
// the browser. The window manager core runs server side; the browser and the
// terminal monitor are views over it.
package main

import (
	"context"
	"fmt"
	"os"

	"charm.land/log/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/nyxos/internal/desktop"
	"github.com/Gaurav-Gosain/nyxos/internal/tape"
	"github.com/Gaurav-Gosain/nyxos/internal/web"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode  bool
	configFile string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "nyxos",
})

func main() {
	var serve serveOptions

	rootCmd := &cobra.Command{
		Use:   "nyxos",
		Short: "Simulated desktop environment in the browser",
		Long: `nyxos - a desktop environment in the browser

Runs the nyxos window manager and serves it to the browser. Every browser
connection gets its own desktop with windows, focus and stacking, split
screen and virtual desktops. Desktop sessions can be scripted with .tape
files, checked headlessly and replayed in the terminal.`,
		Example: `  # Serve the desktop on http://localhost:7681
  nyxos

  # Serve on all interfaces, read-only
  nyxos serve --host 0.0.0.0 --read-only

  # Check a script headlessly
  nyxos run demo.tape

  # Replay a script in the terminal
  nyxos play demo.tape

  # List keybindings
  nyxos keybinds list`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debugMode {
				setLogLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, serve)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/nyxos/config.toml)")
	serve.bind(rootCmd)

	rootCmd.AddCommand(
		newServeCmd(),
		newRunCmd(),
		newValidateCmd(),
		newPlayCmd(),
		newRecordCmd(),
		newAppsCmd(),
		newKeybindsCmd(),
		newConfigCmd(),
		newSysinfoCmd(),
	)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

func setLogLevel(level log.Level) {
	logger.SetLevel(level)
	desktop.SetLogLevel(level)
	tape.SetLogLevel(level)
	web.SetLogLevel(level)
}
