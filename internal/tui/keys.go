package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search  key.Binding
	Submit  key.Binding
	Refresh key.Binding
	Blur    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "go")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Blur:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// help lists the bindings active in the current mode.
func (k keyMap) help(searching bool) []key.Binding {
	if searching {
		return []key.Binding{k.Submit, k.Blur}
	}
	return []key.Binding{k.Search, k.Refresh, k.Quit}
}
