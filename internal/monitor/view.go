package monitor

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/Gaurav-Gosain/nyxos/internal/config"
	"github.com/Gaurav-Gosain/nyxos/internal/desktop"
	"github.com/Gaurav-Gosain/nyxos/internal/theme"
)

// View renders the monitor.
func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}

// Render returns the monitor frame as a string.
func (m *Model) Render() string {
	snap := m.desk.Snapshot()

	sections := []string{
		m.renderHeader(snap),
		m.renderMinimap(snap),
	}
	if m.showHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, m.renderWindows(snap))
	}
	sections = append(sections, m.renderStatus())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader(snap desktop.Snapshot) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.TaskbarHighlight()).Render("nyxos")

	tabs := make([]string, snap.DesktopCount)
	for i := range tabs {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(theme.TaskbarDimmed())
		if i == snap.CurrentDesktop {
			style = style.Bold(true).Foreground(theme.TaskbarHighlight())
		}
		tabs[i] = style.Render(fmt.Sprintf("%d", i+1))
	}

	recent := ""
	if len(snap.RecentApps) > 0 {
		recent = lipgloss.NewStyle().Foreground(theme.TaskbarDimmed()).
			Render("recent: " + strings.Join(snap.RecentApps, ", "))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		title, "  ",
		lipgloss.JoinHorizontal(lipgloss.Center, tabs...), "  ",
		recent,
	)
}

func (m *Model) renderMinimap(snap desktop.Snapshot) string {
	cols := max(m.width-2, 20)
	rows := max((m.height-12)/2, 4)

	border := theme.BorderUnfocused()
	if !snap.Split.Empty() {
		border = theme.BorderSplit()
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Foreground(theme.DesktopFg()).
		Render(strings.Join(Minimap(snap, cols, rows), "\n"))
}

func (m *Model) renderWindows(snap desktop.Snapshot) string {
	if len(snap.Windows) == 0 {
		return lipgloss.NewStyle().Foreground(theme.HelpGray()).Italic(true).
			Render("No windows on this desktop")
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader()).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	// Topmost first.
	rows := make([][]string, 0, len(snap.Windows))
	focusedRow := -1
	for i := len(snap.Windows) - 1; i >= 0; i-- {
		w := snap.Windows[i]
		if w.Focused {
			focusedRow = len(rows)
		}
		rows = append(rows, []string{
			w.Title,
			w.ID,
			string(w.Mode),
			flags(w),
			fmt.Sprintf("%.0f,%.0f %.0fx%.0f", w.Frame.X, w.Frame.Y, w.Frame.Width, w.Frame.Height),
			fmt.Sprintf("%.0f%%", w.Opacity*100),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
		Headers("Title", "ID", "Mode", "Flags", "Frame", "Opacity").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == focusedRow && col == 0:
				return theme.TitleStyle(true).Padding(0, 1)
			case col == 0:
				return theme.TitleStyle(false).Padding(0, 1)
			}
			return cellStyle
		})
	return t.Render()
}

func flags(w desktop.WindowSnapshot) string {
	var f []string
	if w.IsMaximized {
		f = append(f, "max")
	}
	if w.IsPinned {
		f = append(f, "pin")
	}
	if w.IsFloating {
		f = append(f, "float")
	}
	if w.SplitPartner != "" {
		f = append(f, "split")
	}
	if len(f) == 0 {
		return "-"
	}
	return strings.Join(f, " ")
}

func (m *Model) renderHelp() string {
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.HelpKeyBadge())
	descStyle := lipgloss.NewStyle().Foreground(theme.HelpGray())

	var sb strings.Builder
	for _, section := range config.GetKeybindings(m.keys) {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render(section.Title))
		sb.WriteString("\n")
		for _, b := range section.Bindings {
			fmt.Fprintf(&sb, "  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-16s", b.Key)), descStyle.Render(b.Description))
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.HelpBorder()).
		Padding(0, 1).
		Render(strings.TrimRight(sb.String(), "\n"))
}

func (m *Model) renderStatus() string {
	var parts []string

	if m.player != nil {
		st := m.player.Status()
		color := theme.StatusPlaying()
		switch st.State {
		case "paused":
			color = theme.StatusPaused()
		case "failed":
			color = theme.StatusFailed()
		}
		parts = append(parts,
			lipgloss.NewStyle().Bold(true).Foreground(color).Render(st.State),
			fmt.Sprintf("%d/%d", st.Index, st.Total),
		)
		if rejected := m.runner.Stats().Rejected; rejected > 0 {
			parts = append(parts, fmt.Sprintf("rejected %d", rejected))
		}
	}

	if m.lastCmd != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.TaskbarDimmed()).Render(m.lastCmd))
	}
	if m.lastErr != nil {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.StatusFailed()).Render(m.lastErr.Error()))
	}
	if m.sampleCPU {
		parts = append(parts, m.cpu.Graph())
	}

	help := lipgloss.NewStyle().Foreground(theme.HelpGray()).
		Render(m.keys.GetKeysForDisplay("toggle_help") + " help")
	parts = append(parts, help)

	return strings.Join(parts, "  ")
}
