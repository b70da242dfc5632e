package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/truckdash/internal/ui/styles"
)

// Spinner is a dot spinner followed by an optional muted label.
type Spinner struct {
	spinner.Model
	Label string
}

func NewSpinner(label string) Spinner {
	m := spinner.New(spinner.WithSpinner(spinner.Dot))
	m.Style = m.Style.Foreground(styles.Primary)
	return Spinner{Model: m, Label: label}
}

func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

func (s Spinner) View() string {
	if s.Label == "" {
		return s.Model.View()
	}
	return s.Model.View() + " " + styles.HelpDescStyle.Render(s.Label)
}

// RenderSpinnerCentered centers the spinner and its label in a width by height box.
func RenderSpinnerCentered(s Spinner, width, height int) string {
	return styles.CenterBoth(s.View(), width, height)
}
