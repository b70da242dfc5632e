// Package styles holds the lipgloss palette and styles shared by every tab.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Palette, as 256-color codes.
var (
	Primary   = lipgloss.Color("214") // amber
	Secondary = lipgloss.Color("33")
	Subtle    = lipgloss.Color("240")

	Success = lipgloss.Color("42")
	Error   = lipgloss.Color("196")
	Warning = lipgloss.Color("220")
	Info    = lipgloss.Color("39")

	BgDark   = lipgloss.Color("235")
	BgAccent = lipgloss.Color("236")

	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")
)

// Chart categories cycle through these. The lipgloss and asciigraph lists are parallel.
var (
	seriesColors      = []lipgloss.Color{"21", "214", "28", "196", "90", "226", "51", "201"}
	seriesGraphColors = []asciigraph.AnsiColor{
		asciigraph.Blue, asciigraph.Orange, asciigraph.Green, asciigraph.Red,
		asciigraph.Purple, asciigraph.Yellow, asciigraph.Cyan, asciigraph.Magenta,
	}
)

// SeriesColor returns the lipgloss color for the i-th chart category.
func SeriesColor(i int) lipgloss.Color {
	return seriesColors[i%len(seriesColors)]
}

// SeriesGraphColor returns the asciigraph color matching SeriesColor(i).
func SeriesGraphColor(i int) asciigraph.AnsiColor {
	return seriesGraphColors[i%len(seriesGraphColors)]
}

func fg(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func rounded(border lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border)
}

// Page layout and headings.
var (
	DocStyle      = lipgloss.NewStyle().Margin(1, 2).Padding(0, 1)
	TitleStyle    = fg(Primary).Bold(true).MarginBottom(1)
	SubTitleStyle = fg(Secondary).Bold(true)

	CardStyle      = rounded(Subtle).Padding(1, 2).MarginBottom(1)
	CardTitleStyle = fg(Primary).Bold(true).MarginBottom(1)
)

// Application chrome: tab bar, toasts and the help overlay.
var (
	TabBarStyle = lipgloss.NewStyle().Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(Subtle)
	ActiveTabStyle   = fg(Primary).Bold(true).Padding(0, 2)
	InactiveTabStyle = fg(TextMuted).Padding(0, 2)

	ToastStyle = rounded(Primary).Padding(0, 1)

	HelpStyle      = fg(TextMuted)
	HelpKeyStyle   = fg(Primary).Bold(true)
	HelpDescStyle  = fg(TextSecondary)
	HelpPanelStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(Primary).
			Padding(1, 3).Background(BgDark)
)

// Dashboard KPI cards.
var (
	KPICardStyle  = rounded(Subtle).Padding(0, 1).MarginRight(1)
	KPILabelStyle = fg(TextSecondary)
	KPIValueStyle = fg(TextPrimary).Bold(true)
	KPIUnitStyle  = fg(TextMuted)
)

// Filter lists.
var (
	FocusedStyle       = fg(Primary).Bold(true)
	FocusedBorderStyle = rounded(Primary).Padding(0, 1)
	BlurredBorderStyle = rounded(Subtle).Padding(0, 1)

	CheckedStyle          = fg(Success).Bold(true)
	UncheckedStyle        = fg(TextSecondary)
	ListItemStyle         = lipgloss.NewStyle().PaddingLeft(2)
	SelectedListItemStyle = fg(Primary).Bold(true).PaddingLeft(1).SetString("> ")
)

// Trips table. Padding matches the cell padding of bubbles/table.
var (
	TableHeaderStyle = fg(Primary).Bold(true).Padding(0, 1).
				BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(Subtle)
	TableSelectedStyle = fg(TextPrimary).Background(BgAccent).Bold(true)
)

// Status text.
var (
	ErrorTextStyle   = fg(Error)
	SuccessTextStyle = fg(Success)
	WarningTextStyle = fg(Warning)
	InfoTextStyle    = fg(Info)
)

var (
	efficiencyGood = fg(Success)
	efficiencyFair = fg(Warning)
	efficiencyPoor = fg(Error)
	efficiencyNone = fg(TextMuted)
)

// GetEfficiencyStyle grades a km/l figure against an average: at or above is good,
// within 15% below is fair, anything lower is poor. Zero on either side is muted.
func GetEfficiencyStyle(kmPerLiter, average float64) lipgloss.Style {
	switch {
	case kmPerLiter == 0 || average == 0:
		return efficiencyNone
	case kmPerLiter >= average:
		return efficiencyGood
	case kmPerLiter >= average*0.85:
		return efficiencyFair
	default:
		return efficiencyPoor
	}
}

// CenterBoth centers content within a width by height box.
func CenterBoth(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
