package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit        key.Binding
	Focus       key.Binding
	FilterRepo  key.Binding
	FilterTool  key.Binding
	FilterSev   key.Binding
	ClearFilter key.Binding
	PrevPage    key.Binding
	NextPage    key.Binding
	Open        key.Binding
	Copy        key.Binding
	GlobalScope key.Binding
	Delete      key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch panel"),
	),
	FilterRepo: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "filter repo"),
	),
	FilterTool: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "filter tool"),
	),
	FilterSev: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "filter severity"),
	),
	ClearFilter: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("left", "["),
		key.WithHelp("←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("right", "]"),
		key.WithHelp("→", "next page"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy patch"),
	),
	GlobalScope: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "global scope"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete project"),
	),
}
