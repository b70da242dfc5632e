package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/truckdash/internal/ui/styles"
)

const (
	filterSummaryWidth = 40
	toastTop           = 2
	toastRightMargin   = 2
)

func (m *Model) View() string {
	if m.width == 0 {
		return m.spinner.View()
	}

	view := m.renderTabBar() + "\n"
	if tab := m.active(); tab != nil {
		view += tab.View()
	}

	if m.showHelp {
		panel := m.renderHelp()
		view = place(view, panel, (m.width-lipgloss.Width(panel))/2, (m.height-lipgloss.Height(panel))/2)
	}
	if stack := m.renderToasts(); stack != "" {
		view = place(view, stack, m.width-lipgloss.Width(stack)-toastRightMargin, toastTop)
	}
	return view
}

func (m *Model) renderTabBar() string {
	items := make([]string, 0, len(m.tabs)+1)
	for i := range m.tabs {
		id := TabID(i)
		if id == m.activeTab {
			items = append(items, styles.ActiveTabStyle.Render(fmt.Sprintf("[%d] %s", i+1, id)))
		} else {
			items = append(items, styles.InactiveTabStyle.Render(fmt.Sprintf(" %d  %s", i+1, id)))
		}
	}
	if sel := m.state.Selection(); !sel.IsEmpty() {
		items = append(items, styles.HelpStyle.Render("  filter: "+ansi.Truncate(sel.String(), filterSummaryWidth, "…")))
	}
	return styles.TabBarStyle.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, items...))
}

// renderHelp lists the global bindings followed by those of the active tab.
func (m *Model) renderHelp() string {
	sections := []string{
		styles.TitleStyle.Render("Keyboard Shortcuts"),
		styles.SubTitleStyle.Render("Global"),
		m.help.View(m.keys),
	}
	if tab := m.active(); tab != nil {
		sections = append(sections, "", styles.SubTitleStyle.Render(m.activeTab.String()), m.help.View(tab))
	}
	sections = append(sections, "", styles.HelpStyle.Render("? or esc to close"))

	return styles.HelpPanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

var toastMarks = map[Level]struct {
	glyph string
	style lipgloss.Style
}{
	LevelInfo:    {"i", styles.InfoTextStyle},
	LevelSuccess: {"✓", styles.SuccessTextStyle},
	LevelWarning: {"!", styles.WarningTextStyle},
	LevelError:   {"✗", styles.ErrorTextStyle},
}

// renderToasts stacks the busy indicator above the message toasts, right-aligned.
func (m *Model) renderToasts() string {
	var boxes []string

	if label := m.state.BusyLabel(); label != "" {
		sp := m.spinner
		sp.Label = label
		boxes = append(boxes, styles.ToastStyle.Render(sp.View()))
	}
	for _, t := range m.state.Toasts() {
		mark := toastMarks[t.Level]
		boxes = append(boxes, styles.ToastStyle.
			BorderForeground(mark.style.GetForeground()).
			Render(mark.style.Render(mark.glyph+" "+t.Text)))
	}

	if len(boxes) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Right, boxes...)
}

// place draws overlay on top of base with its top-left corner at column x, row y.
// Cells of base outside the overlay are kept; base grows if the overlay reaches below it.
func place(base, overlay string, x, y int) string {
	x, y = max(x, 0), max(y, 0)
	width := lipgloss.Width(overlay)
	lines := strings.Split(base, "\n")

	for i, row := range strings.Split(overlay, "\n") {
		for y+i >= len(lines) {
			lines = append(lines, "")
		}
		line := lines[y+i]

		left := ansi.Truncate(line, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		lines[y+i] = left + row + ansi.TruncateLeft(line, x+width, "")
	}
	return strings.Join(lines, "\n")
}
