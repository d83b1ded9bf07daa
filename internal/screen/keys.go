package screen

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle   key.Binding
	EditSize key.Binding
	Refetch  key.Binding
	Stats    key.Binding
	Quit     key.Binding
}

func newKeyMap(f Features) keyMap {
	k := keyMap{
		Toggle:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "select")),
		EditSize: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "size")),
		Refetch:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refetch")),
		Stats:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stats")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	k.Toggle.SetEnabled(f.Selection)
	k.EditSize.SetEnabled(f.SizeInput)
	k.Stats.SetEnabled(f.History)
	return k
}

func (k keyMap) extra() []key.Binding {
	return []key.Binding{k.Toggle, k.EditSize, k.Refetch, k.Stats}
}
