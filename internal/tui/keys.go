package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Submit     key.Binding
	ExportJSON key.Binding
	ExportTXT  key.Binding
	Picker     key.Binding
	NextFocus  key.Binding
	PrevFocus  key.Binding
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Search     key.Binding
	Leave      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Submit:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "generate")),
		ExportJSON: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "export json")),
		ExportTXT:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "export txt")),
		Picker:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "pick csv")),
		NextFocus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		PrevFocus:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle json")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Leave:      key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", "cards")),
	}
}

// helpFor lists the bindings shown in the footer for a focus zone.
func (k keyMap) helpFor(f focusZone) []key.Binding {
	common := []key.Binding{k.ExportJSON, k.ExportTXT, k.NextFocus, k.Quit}
	switch f {
	case focusFile:
		enter := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "generate"))
		return append([]key.Binding{enter, k.Picker}, common...)
	case focusSearch:
		return append([]key.Binding{k.Leave}, common...)
	default:
		return append([]key.Binding{k.Up, k.Down, k.Toggle, k.Search}, common...)
	}
}
