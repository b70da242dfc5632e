package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the keys handled before the active tab sees them.
type KeyMap struct {
	Tabs    [len(tabTitles)]key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Reload  key.Binding
	Export  key.Binding
	Help    key.Binding
	Close   key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the global bindings.
func DefaultKeyMap() KeyMap {
	var km KeyMap
	for i, title := range tabTitles {
		n := string(rune('1' + i))
		km.Tabs[i] = key.NewBinding(key.WithKeys(n), key.WithHelp(n, strings.ToLower(title)))
	}
	km.NextTab = key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab/→", "next tab"))
	km.PrevTab = key.NewBinding(key.WithKeys("shift+tab", "h", "left"), key.WithHelp("shift+tab/←", "prev tab"))
	km.Reload = key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "reload file"))
	km.Export = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export filtered"))
	km.Help = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help"))
	km.Close = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close help"))
	km.Quit = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
	return km
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Export, k.Reload, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		append(k.Tabs[:len(k.Tabs):len(k.Tabs)], k.NextTab, k.PrevTab),
		{k.Export, k.Reload, k.Help, k.Quit},
	}
}
