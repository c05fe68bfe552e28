package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit    key.Binding
	Cancel    key.Binding
	Focus     key.Binding
	Toggle    key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Up        key.Binding
	Down      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add/save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard edit")),
		Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "input/list")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Up:        key.NewBinding(key.WithKeys("up")),
		Down:      key.NewBinding(key.WithKeys("down")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Edit, k.Delete, k.Focus}
}
