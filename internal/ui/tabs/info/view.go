package info

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/truckdash/internal/ui/styles"
	"github.com/j-veylop/truckdash/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.renderDatasetCard(),
		m.renderConfigCard(),
		m.renderAboutCard(),
	)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Dataset, configuration and version")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 80)
}

func (m *Model) renderDatasetCard() string {
	rows := []string{styles.CardTitleStyle.Render("Dataset"), ""}

	ds := m.state.Dataset()
	if ds == nil {
		rows = append(rows, styles.HelpStyle.Render("No dataset loaded"))
	} else {
		res := m.state.Result()
		sheet := ds.Layout.Sheet
		if sheet == "" {
			sheet = "-"
		}
		rows = append(rows,
			renderRow("Source", ds.Source),
			renderRow("Format", ds.Layout.Format.String()),
			renderRow("Sheet", sheet),
			renderRow("Columns", strings.Join(ds.Layout.Headers, ", ")),
			renderRow("Trips", fmt.Sprintf("%d loaded, %d shown", ds.Len(), len(res.Rows))),
			renderRow("Filter", res.Selection.String()),
			renderRow("Snapshot", ds.ID),
			renderRow("Loaded", fmt.Sprintf("%s (%s)", ds.LoadedAt.Format(time.DateTime), humanize.Time(ds.LoadedAt))),
			renderRow("Live Reload", m.liveReload()),
		)
	}

	last := m.state.LastExport()
	if last == "" {
		last = "none"
	}
	rows = append(rows, renderRow("Last Export", last))

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) liveReload() string {
	if m.watcher != nil && m.watcher.Watching() {
		return styles.SuccessTextStyle.Render("watching for changes")
	}
	return "off (press r to reload)"
}

func (m *Model) renderConfigCard() string {
	rows := []string{styles.CardTitleStyle.Render("Configuration"), ""}

	if m.config != nil {
		rows = append(rows,
			renderRow("Data File", m.config.DataFile),
			renderRow("Export Dir", m.config.ExportDir),
			renderRow("Export Format", m.config.ExportFormat),
			renderRow("Watch", strconv.FormatBool(m.config.Watch)),
			renderRow("Reload Debounce", m.config.ReloadDebounce.String()),
			renderRow("Notifications", strconv.FormatBool(m.config.Notify)),
			renderRow("Log Level", m.config.LogLevel),
			renderRow("Log File", m.config.LogFile),
		)
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderAboutCard() string {
	rows := []string{
		styles.CardTitleStyle.Render("About truckdash"),
		"",
		renderRow("Version", version.GetVersion()),
		renderRow("Build Date", version.GetDate()),
		renderRow("Git Commit", version.GetCommit()),
		renderRow("Go Version", runtime.Version()),
		renderRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderRow renders a label/value pair.
func renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}
