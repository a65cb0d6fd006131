package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/log/v2"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/nyxos/internal/config"
	"github.com/Gaurav-Gosain/nyxos/internal/desktop"
	"github.com/Gaurav-Gosain/nyxos/internal/monitor"
	"github.com/Gaurav-Gosain/nyxos/internal/tape"
	"github.com/Gaurav-Gosain/nyxos/internal/theme"
)

// readScript loads and parses a .tape file.
func readScript(path string) ([]tape.Command, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tape file: %w", err)
	}
	commands, errs := tape.ParseFile(string(content))
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		return nil, fmt.Errorf("%s: %d parse error(s)", filepath.Base(path), len(errs))
	}
	return commands, nil
}

func newRunCmd() *cobra.Command {
	var (
		verbose   bool
		realtime  bool
		stateFile string
	)

	cmd := &cobra.Command{
		Use:   "run <file.tape>",
		Short: "Run a tape script headlessly",
		Long: `Run a tape script against a fresh desktop without rendering

Delays are skipped unless --realtime is given. The command fails when a
script line is invalid or an Expect does not hold; commands the desktop
refuses (such as removing the last desktop) are counted, not fatal.`,
		Example: `  nyxos run demo.tape
  nyxos run demo.tape --verbose --state final.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			commands, err := readScript(args[0])
			if err != nil {
				return err
			}

			path, err := configPath()
			if err != nil {
				return err
			}
			userConfig := loadConfig(path)

			desk := desktop.New(userConfig.DesktopOptions(nil))
			runner := tape.NewRunner(desk, userConfig.WindowSpec)
			runner.SetVerbose(verbose)
			runner.SetSkipDelays(!realtime)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			stats, runErr := runner.Run(ctx, commands)
			if verbose {
				_ = runner.WriteOutput(os.Stdout)
			}

			if stateFile != "" {
				if err := writeSnapshot(stateFile, desk.Snapshot()); err != nil {
					return err
				}
			}

			printRunSummary(args[0], stats)
			return runErr
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every command as it runs")
	cmd.Flags().BoolVar(&realtime, "realtime", false, "Honour Sleep and @ delays")
	cmd.Flags().StringVar(&stateFile, "state", "", "Write the final desktop snapshot as JSON to this file")
	return cmd
}

func printRunSummary(name string, stats tape.ExecutionStats) {
	ok := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	bad := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	status := ok.Render("PASS")
	if !stats.Success {
		status = bad.Render("FAIL")
	}
	fmt.Printf("%s %s\n", status, name)
	fmt.Println(dim.Render(fmt.Sprintf("  %d/%d commands, %d expectation(s), %d rejected, %v",
		stats.ExecutedCount, stats.TotalCommands, stats.Expectations, stats.Rejected,
		stats.ExecutedTime.Round(time.Microsecond))))
	if stats.ErrorMessage != "" {
		fmt.Println(bad.Render("  " + stats.ErrorMessage))
	}
}

func writeSnapshot(path string, snap desktop.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.tape>...",
		Short: "Check tape scripts for syntax errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				content, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read tape file: %w", err)
				}
				valid, errs := tape.ValidateScript(string(content))
				if valid {
					fmt.Printf("%s: ok\n", path)
					continue
				}
				failed++
				fmt.Printf("%s:\n", path)
				for _, e := range errs {
					fmt.Printf("  %s\n", e)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d script(s) invalid", failed, len(args))
			}
			return nil
		},
	}
}

func newPlayCmd() *cobra.Command {
	var (
		interval time.Duration
		paused   bool
		cpu      bool
		exit     bool
	)

	cmd := &cobra.Command{
		Use:   "play <file.tape>",
		Short: "Replay a tape script in the terminal",
		Long: `Replay a tape script in a terminal monitor

The monitor draws a minimap of the current desktop and a table of its
windows. Playback can be paused and stepped; keybindings keep working
while the script runs.`,
		Example: `  nyxos play demo.tape
  nyxos play demo.tape --paused
  nyxos play demo.tape --interval 250ms --exit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			commands, err := readScript(args[0])
			if err != nil {
				return err
			}

			userConfig, err := monitorConfig()
			if err != nil {
				return err
			}

			m := monitor.New(monitor.Options{
				Config:       userConfig,
				Script:       commands,
				Interval:     interval,
				Paused:       paused,
				SampleCPU:    cpu,
				QuitWhenDone: exit,
			})
			if err := runMonitor(cmd.Context(), m); err != nil {
				return err
			}
			return m.Err()
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 500*time.Millisecond, "Pause between commands without an explicit delay")
	cmd.Flags().BoolVar(&paused, "paused", false, "Start paused")
	cmd.Flags().BoolVar(&cpu, "cpu", false, "Show a live CPU graph")
	cmd.Flags().BoolVar(&exit, "exit", false, "Exit when the script finishes")
	return cmd
}

func newRecordCmd() *cobra.Command {
	var cpu bool

	cmd := &cobra.Command{
		Use:   "record <out.tape>",
		Short: "Record an interactive session as a tape script",
		Long: `Open an interactive terminal desktop and record every change

Drive the desktop with the keybindings; the session is written as a
replayable .tape script when you quit.`,
		Example: `  nyxos record session.tape
  nyxos run session.tape`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfig, err := monitorConfig()
			if err != nil {
				return err
			}

			m := monitor.New(monitor.Options{Config: userConfig, SampleCPU: cpu})
			recorder := tape.NewRecorder(m.Desktop())
			m.Desktop().Subscribe(recorder)
			recorder.Start()

			runErr := runMonitor(cmd.Context(), m)
			recorder.Stop()

			header := fmt.Sprintf("Recorded with %s %s", config.AppName, version)
			if err := recorder.WriteToFile(args[0], header); err != nil {
				return fmt.Errorf("failed to write tape: %w", err)
			}
			stats := recorder.GetStats()
			fmt.Printf("Recorded %d command(s) in %v to %s\n",
				stats.CommandCount, stats.Duration.Round(time.Second), args[0])
			return runErr
		},
	}

	cmd.Flags().BoolVar(&cpu, "cpu", false, "Show a live CPU graph")
	return cmd
}

// monitorConfig loads the config and theme for a terminal monitor.
func monitorConfig() (*config.UserConfig, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	userConfig := loadConfig(path)
	if err := theme.Initialize(userConfig.Appearance.Theme); err != nil {
		logger.Warn("theme unavailable", "theme", userConfig.Appearance.Theme, "err", err)
	}
	return userConfig, nil
}

// runMonitor runs m full screen. Logging is quieted while the terminal is
// owned by the program unless --debug is set.
func runMonitor(ctx context.Context, m *monitor.Model) error {
	if !debugMode {
		setLogLevel(log.FatalLevel)
		defer setLogLevel(log.InfoLevel)
	}

	p := tea.NewProgram(m)
	stop := context.AfterFunc(ctx, p.Quit)
	defer stop()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
