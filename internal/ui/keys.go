package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Key Map ---

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	NextTab key.Binding
	PrevTab key.Binding
	Tabs    [4]key.Binding

	Toggle key.Binding
	Apply  key.Binding
	Export key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding

	Confirm key.Binding
	Deny    key.Binding
	Back    key.Binding
	Submit  key.Binding
}

func newKeyMap(vim bool) keyMap {
	up, down, left, right := []string{"up"}, []string{"down"}, []string{"left"}, []string{"right"}
	nav := "↑/↓/←/→"
	if vim {
		up = append(up, "k")
		down = append(down, "j")
		left = append(left, "h")
		right = append(right, "l")
		nav = "hjkl/arrows"
	}
	return keyMap{
		Up:       key.NewBinding(key.WithKeys(up...), key.WithHelp(nav, "Move")),
		Down:     key.NewBinding(key.WithKeys(down...)),
		Left:     key.NewBinding(key.WithKeys(left...)),
		Right:    key.NewBinding(key.WithKeys(right...)),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup/pgdn", "Page")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g/G", "First/Last")),
		End:      key.NewBinding(key.WithKeys("end", "G")),

		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab/1-4", "Category")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab")),
		Tabs: [4]key.Binding{
			key.NewBinding(key.WithKeys("1")),
			key.NewBinding(key.WithKeys("2")),
			key.NewBinding(key.WithKeys("3")),
			key.NewBinding(key.WithKeys("4")),
		},

		Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "Toggle")),
		Apply:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "Apply")),
		Export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "Export")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Reload")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "Quit")),

		Confirm: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "Confirm")),
		Deny:    key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "Cancel")),
		Back:    key.NewBinding(key.WithKeys("esc", "ctrl+["), key.WithHelp("esc", "Back")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Save")),
	}
}

// ShortHelp lists the bindings shown in the status bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Toggle, k.NextTab, k.Apply, k.Export, k.Help, k.Quit}
}

// FullHelp groups every grid binding into navigation, editing and app columns.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.PageUp, k.Home, k.NextTab},
		{k.Toggle, k.Apply, k.Export},
		{k.Reload, k.Help, k.Quit},
	}
}

func isBack(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEsc || msg.String() == "ctrl+["
}
