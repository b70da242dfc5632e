package filters

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/truckdash/internal/models"
	"github.com/j-veylop/truckdash/internal/ui/styles"
)

const fieldColumnWidth = 24

// View renders the filters tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return styles.DocStyle.Render(styles.HelpStyle.Render("Waiting for data..."))
	}

	res := m.state.Result()
	header := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Filters"),
		styles.HelpStyle.Render(fmt.Sprintf("%d of %d trips match · %s",
			len(res.Rows), m.state.Dataset().Len(), m.selection.String())),
	)

	// Header is three lines tall, each box adds two border lines.
	listHeight := max(m.height-8, 3)
	valueWidth := max(m.width-fieldColumnWidth-12, 20)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.BlurredBorderStyle.Width(fieldColumnWidth).Render(m.renderFields()),
		" ",
		styles.FocusedBorderStyle.Width(valueWidth).Render(m.renderValues(listHeight, valueWidth-2)),
	)

	return styles.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

func (m *Model) renderFields() string {
	lines := make([]string, 0, len(models.FilterableFields))
	for i, f := range models.FilterableFields {
		label := f.String()
		if n := len(m.selection.Values(f)); n > 0 {
			label += fmt.Sprintf(" (%d)", n)
		}
		if i == m.field {
			lines = append(lines, styles.SelectedListItemStyle.Render(label))
		} else {
			lines = append(lines, styles.ListItemStyle.Render(label))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderValues(height, width int) string {
	field := m.currentField()
	values := m.values(field)

	title := styles.CardTitleStyle.Render(field.String())
	if len(values) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render("No values in this dataset"))
	}

	// The title takes two lines.
	visible := max(height-2, 1)
	cursor := m.cursors[field]
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := min(start+visible, len(values))

	lines := []string{title}
	for i := start; i < end; i++ {
		lines = append(lines, m.renderValue(field, values[i], i == cursor, width))
	}
	if end < len(values) || start > 0 {
		lines = append(lines, styles.HelpStyle.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(values))))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderValue(field models.Field, value string, focused bool, width int) string {
	box := styles.UncheckedStyle.Render("[ ]")
	if m.selection.Has(field, value) {
		box = styles.CheckedStyle.Render("[x]")
	}

	label := ansi.Truncate(value, max(width-16, 8), "…")
	if m.isStale(field, value) {
		label += styles.WarningTextStyle.Render(" (not in data)")
	}

	pointer := "  "
	if focused {
		pointer = styles.FocusedStyle.Render("> ")
		label = styles.FocusedStyle.Render(label)
	}
	return pointer + box + " " + label
}
