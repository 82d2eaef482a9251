package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextView  key.Binding
	QuickAdd  key.Binding
	NewTask   key.Binding
	Edit      key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	Timer     key.Binding
	TaskTimer key.Binding
	Voice     key.Binding
	Settings  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		NextView:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		QuickAdd:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "quick add")),
		NewTask:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Toggle:    key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x/space", "done/reopen")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Timer:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "focus timer")),
		TaskTimer: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "focus on task")),
		Voice:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "voice")),
		Settings:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.QuickAdd, k.Toggle, k.Timer, k.NextView, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.Help, k.Quit},
		{k.QuickAdd, k.NewTask, k.Edit, k.Toggle, k.Delete},
		{k.Timer, k.TaskTimer, k.Voice, k.Settings},
	}
}
