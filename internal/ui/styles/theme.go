package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	// Base colors
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary lipgloss.Color // "Add" action
	Accent  lipgloss.Color

	// Semantic colors
	Warning lipgloss.Color // "Update" action
	Error   lipgloss.Color // delete action
	Success lipgloss.Color

	// UI element colors
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
}

// TokyoNight is the default color theme
var TokyoNight = Theme{
	Name: "Tokyo Night",

	Background:    lipgloss.Color("#1a1b26"),
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Primary: lipgloss.Color("#7aa2f7"),
	Accent:  lipgloss.Color("#7dcfff"),

	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),
	Success: lipgloss.Color("#9ece6a"),

	Border:      lipgloss.Color("#3b4261"),
	BorderFocus: lipgloss.Color("#7aa2f7"),
	Selection:   lipgloss.Color("#33467c"),
}

// Slate mirrors the indigo/amber palette of the web todo widget
var Slate = Theme{
	Name: "Slate",

	Background:    lipgloss.Color("#1e1f25"),
	Foreground:    lipgloss.Color("#e5e7eb"),
	ForegroundDim: lipgloss.Color("#9ca3af"),

	Primary: lipgloss.Color("#6366f1"),
	Accent:  lipgloss.Color("#a5b4fc"),

	Warning: lipgloss.Color("#f59e0b"),
	Error:   lipgloss.Color("#ef4444"),
	Success: lipgloss.Color("#22c55e"),

	Border:      lipgloss.Color("#3c3f4b"),
	BorderFocus: lipgloss.Color("#6366f1"),
	Selection:   lipgloss.Color("#353741"),
}

// Current holds the active theme
var Current = TokyoNight

// Use switches the active theme by config name. Unknown names keep the current one.
func Use(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tokyo-night":
		Current = TokyoNight
	case "slate":
		Current = Slate
	}
}

// MaxWidth is the maximum content width for the app (classic terminal width)
var MaxWidth = 80

// ContentWidth returns the actual content width to use (min of terminal width and MaxWidth)
func ContentWidth(terminalWidth int) int {
	if MaxWidth > 0 && terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView wraps content and centers it horizontally if terminal is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= ContentWidth(terminalWidth) {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	// Task rows
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	EditMarker   lipgloss.Style
	ActionEdit   lipgloss.Style
	ActionDelete lipgloss.Style

	// Input row
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	ButtonAdd    lipgloss.Style
	ButtonUpdate lipgloss.Style

	// Dialogs
	Popup         lipgloss.Style
	Button        lipgloss.Style
	ButtonPrimary lipgloss.Style
	Danger        lipgloss.Style

	// Help text
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	StatusBar   lipgloss.Style
	StatusError lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 1).
			Bold(true),

		EditMarker: lipgloss.NewStyle().
			Foreground(t.Warning).
			Bold(true),

		ActionEdit: lipgloss.NewStyle().
			Foreground(t.Accent),

		ActionDelete: lipgloss.NewStyle().
			Foreground(t.Error),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		ButtonAdd: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 2).
			Bold(true),

		ButtonUpdate: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Warning).
			Padding(0, 2).
			Bold(true),

		Popup: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		ButtonPrimary: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 2).
			Bold(true),

		Danger: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		StatusBar: lipgloss.NewStyle().
			Foreground(t.Success).
			Padding(0, 1),

		StatusError: lipgloss.NewStyle().
			Foreground(t.Error).
			Padding(0, 1),
	}
}
