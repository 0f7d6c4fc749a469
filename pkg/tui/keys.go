package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Play      key.Binding
	Faster    key.Binding
	Slower    key.Binding
	NextTrack key.Binding
	PrevTrack key.Binding

	FreqUp   key.Binding
	FreqDown key.Binding
	LeadUp   key.Binding
	LeadDown key.Binding

	ExcludeCurrent key.Binding
	Expand         key.Binding
	Up             key.Binding
	Down           key.Binding
	ToggleItem     key.Binding
	DeleteItem     key.Binding
	AddItem        key.Binding
	Rename         key.Binding

	NewTrack    key.Binding
	RemoveTrack key.Binding
	Enable      key.Binding

	Help key.Binding
	Quit key.Binding
}

func binding(help string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help))
}

func defaultKeys() keyMap {
	return keyMap{
		Play:      binding("start/stop", " "),
		Faster:    binding("bpm up", "+", "="),
		Slower:    binding("bpm down", "-", "_"),
		NextTrack: binding("next track", "tab"),
		PrevTrack: binding("prev track", "shift+tab"),

		FreqUp:   binding("frequency up", "]"),
		FreqDown: binding("frequency down", "["),
		LeadUp:   binding("lead time up", "}"),
		LeadDown: binding("lead time down", "{"),

		ExcludeCurrent: binding("exclude current", "x"),
		Expand:         binding("show items", "enter"),
		Up:             binding("item up", "up", "k"),
		Down:           binding("item down", "down", "j"),
		ToggleItem:     binding("toggle exclusion", "e"),
		DeleteItem:     binding("delete item", "d"),
		AddItem:        binding("add item", "a"),
		Rename:         binding("rename track", "r"),

		NewTrack:    binding("new track", "n"),
		RemoveTrack: binding("remove track", "X"),
		Enable:      binding("enable/disable", "t"),

		Help: binding("help", "?"),
		Quit: binding("quit", "q", "ctrl+c"),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Faster, k.Slower, k.NextTrack, k.ExcludeCurrent, k.Expand, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Faster, k.Slower, k.NextTrack, k.PrevTrack},
		{k.FreqUp, k.FreqDown, k.LeadUp, k.LeadDown, k.Enable},
		{k.ExcludeCurrent, k.Expand, k.Up, k.Down, k.ToggleItem, k.DeleteItem, k.AddItem},
		{k.Rename, k.NewTrack, k.RemoveTrack, k.Help, k.Quit},
	}
}
