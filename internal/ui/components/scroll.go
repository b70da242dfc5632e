package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ScrollKeys are the bindings shared by tabs that show a single scrolling viewport.
type ScrollKeys struct {
	Down   key.Binding
	Up     key.Binding
	Top    key.Binding
	Bottom key.Binding
}

func NewScrollKeys() ScrollKeys {
	return ScrollKeys{
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "scroll down")),
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "scroll up")),
		Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	}
}

// Scroll applies a key to vp. Keys other than top and bottom use the viewport's own bindings.
func (k ScrollKeys) Scroll(vp *viewport.Model, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, k.Top):
		vp.GotoTop()
	case key.Matches(msg, k.Bottom):
		vp.GotoBottom()
	default:
		var cmd tea.Cmd
		*vp, cmd = vp.Update(msg)
		return cmd
	}
	return nil
}

func (k ScrollKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Top, k.Bottom}
}

func (k ScrollKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Down, k.Up}, {k.Top, k.Bottom}}
}
