package form

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Prev   key.Binding
	Next   key.Binding
	Select key.Binding
	Clear  key.Binding
	Submit key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Prev:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "previous")),
		Next:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "choose")),
		Clear:  key.NewBinding(key.WithKeys("x", "backspace"), key.WithHelp("x", "clear")),
		Submit: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "submit")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Select, k.Submit, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Prev, k.Next},
		{k.Select, k.Clear, k.Submit, k.Quit},
	}
}
