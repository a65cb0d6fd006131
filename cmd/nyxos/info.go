package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Gaurav-Gosain/nyxos/internal/config"
	"github.com/Gaurav-Gosain/nyxos/internal/sysinfo"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	sectionStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

func newTable(headers ...string) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle)
	if len(headers) > 0 {
		t = t.Headers(headers...)
	}
	return t
}

// renderTable renders t, shrinking it to the terminal width when it would
// overflow.
func renderTable(t *table.Table) string {
	out := t.Render()
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || lipgloss.Width(out) <= width {
		return out
	}
	return t.Width(width).Render()
}

func newAppsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "Show the application catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the applications that can be launched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			rows := appRows(loadConfig(path))
			t := newTable("ID", "NAME", "COMPONENT", "SIZE", "MODE").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					switch {
					case row == table.HeaderRow:
						return tableHeaderStyle
					case col == 0:
						return tableCellStyle.Foreground(lipgloss.Color("3")).Bold(true)
					case col >= 3:
						return tableCellStyle.Foreground(lipgloss.Color("8"))
					}
					return tableCellStyle
				})

			fmt.Println(renderTable(t))
			fmt.Printf("\n%d app(s)\n", len(rows))
			return nil
		},
	})
	return cmd
}

// appRows lists the catalog as the window each app opens with.
func appRows(userConfig *config.UserConfig) [][]string {
	rows := make([][]string, 0, len(userConfig.Apps))
	for _, app := range userConfig.Apps {
		spec := userConfig.WindowSpec(app.ID)
		rows = append(rows, []string{
			app.ID,
			app.Name,
			spec.ComponentName(),
			fmt.Sprintf("%.0fx%.0f", spec.Size.Width, spec.Size.Height),
			string(spec.Mode),
		})
	}
	return rows
}

func newKeybindsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keybinds",
		Short: "Show keybindings",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all configured keybindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			printKeybindingsTable(config.NewKeybindRegistry(loadConfig(path)))
			return nil
		},
	})
	return cmd
}

// printKeybindingsTable prints one table per help section.
func printKeybindingsTable(registry *config.KeybindRegistry) {
	fmt.Println()
	fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("nyxos Keybindings"))
	fmt.Println()

	for _, section := range config.GetKeybindings(registry) {
		rows := make([][]string, 0, len(section.Bindings))
		for _, b := range section.Bindings {
			rows = append(rows, []string{b.Key, b.Description})
		}

		t := newTable("Keys", "Action").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return tableHeaderStyle
				}
				return tableCellStyle
			})

		fmt.Println(sectionStyle.Render(section.Title))
		fmt.Println(renderTable(t))
		fmt.Println()
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := configPath()
				if err != nil {
					return err
				}
				fmt.Println(path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "edit",
			Short: "Open the configuration file in $EDITOR",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return editConfigFile()
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset the configuration file to the defaults",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return resetConfigToDefaults()
			},
		},
	)
	return cmd
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", path)
		if err := config.WriteFile(path, config.DefaultConfig()); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Please set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	if _, err := config.LoadFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return nil
}

// resetConfigToDefaults overwrites the config file after confirmation.
func resetConfigToDefaults() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", path)
		fmt.Printf("Are you sure you want to reset to defaults? (yes/no): ")

		var response string
		_, _ = fmt.Scanln(&response)
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "yes" && response != "y" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := config.WriteFile(path, config.DefaultConfig()); err != nil {
		return err
	}

	fmt.Printf("Configuration reset to defaults\n")
	fmt.Printf("  Location: %s\n", path)
	fmt.Println("\nYou can customize it with: nyxos config edit")
	return nil
}

func newSysinfoCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sysinfo",
		Short: "Show the host details served to the system monitor app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			info, err := sysinfo.Info(ctx)
			if err != nil {
				logger.Warn("partial system info", "err", err)
			}
			perf, err := sysinfo.Performance(ctx)
			if err != nil {
				logger.Warn("partial performance info", "err", err)
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					System      sysinfo.SystemInfo      `json:"system"`
					Performance sysinfo.PerformanceInfo `json:"performance"`
				}{info, perf})
			}

			rows := [][]string{
				{"Platform", strings.TrimSpace(info.Platform + " " + info.PlatformVersion)},
				{"Arch", info.Arch},
				{"CPUs", fmt.Sprintf("%d", info.CPUCount)},
				{"Hostname", info.Hostname},
				{"Uptime", (time.Duration(info.Uptime) * time.Second).String()},
				{"CPU", fmt.Sprintf("%.1f%%", perf.CPUUsage)},
				{"Memory", fmt.Sprintf("%.1f%% (%s / %s)", perf.MemoryUsage, formatBytes(perf.MemoryUsed), formatBytes(perf.MemoryTotal))},
			}
			t := newTable().
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if col == 0 {
						return tableCellStyle.Bold(true).Foreground(lipgloss.Color("12"))
					}
					return tableCellStyle
				})
			fmt.Println(renderTable(t))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
