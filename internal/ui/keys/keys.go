package keys

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/tgienger/tdl/internal/config"
)

// KeyMap holds every binding the todo list responds to
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Back       key.Binding
	Submit     key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Copy       key.Binding
	FocusInput key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
}

// DefaultKeyMap returns the built-in bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Tab:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
		ShiftTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "switch focus")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave input")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("↵", "add/update")),
		Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		FocusInput: key.NewBinding(key.WithKeys("i", "a"), key.WithHelp("i", "type")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Confirm:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		Cancel:     key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
	}
}

// FromConfig returns the default bindings with the configured overrides applied
func FromConfig(cfg config.KeyConfig) KeyMap {
	k := DefaultKeyMap()
	override(&k.Submit, cfg.Submit)
	override(&k.Edit, cfg.Edit)
	override(&k.Delete, cfg.Delete)
	override(&k.Copy, cfg.Copy)
	override(&k.FocusInput, cfg.FocusInput)
	override(&k.Help, cfg.Help)
	override(&k.Quit, cfg.Quit)
	return k
}

// override replaces the keys of b with a comma separated list, keeping its
// help description. The first key becomes the help label.
func override(b *key.Binding, value string) {
	keys := ParseKeys(value)
	if len(keys) == 0 {
		return
	}
	desc := b.Help().Desc
	b.SetKeys(keys...)
	b.SetHelp(keys[0], desc)
}

// ParseKeys splits a comma separated binding list, dropping blanks.
// "space" is accepted as an alias for " ".
func ParseKeys(value string) []string {
	var keys []string
	for _, part := range strings.Split(value, ",") {
		k := strings.TrimSpace(part)
		switch {
		case k == "":
			continue
		case strings.EqualFold(k, "space"):
			keys = append(keys, " ")
		case len([]rune(k)) > 1:
			keys = append(keys, strings.ToLower(k))
		default:
			keys = append(keys, k)
		}
	}
	return keys
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Edit, k.Delete, k.Tab, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Back, k.Tab, k.FocusInput},
		{k.Up, k.Down, k.Edit, k.Delete, k.Copy},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
