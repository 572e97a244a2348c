package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/tgienger/tdl/internal/config"
	"github.com/tgienger/tdl/internal/ui/keys"
	"github.com/tgienger/tdl/internal/ui/styles"
	"github.com/tgienger/tdl/internal/ui/views"
)

type App struct {
	todoList *views.TodoListView
	logger   *log.Logger
	width    int
	height   int
}

// Creates a new application
func NewApp(cfg config.Config, logger *log.Logger) *App {
	styles.Use(cfg.UI.Theme)
	styles.MaxWidth = cfg.UI.MaxWidth

	return &App{
		todoList: views.NewTodoListView(cfg.UI, keys.FromConfig(cfg.Keys), logger),
		logger:   logger,
	}
}

func (a *App) Init() tea.Cmd {
	a.logger.Info("todo list mounted", "theme", styles.Current.Name)
	return a.todoList.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = msg.Width
		a.height = msg.Height
		a.logger.Debug("window resized", "width", msg.Width, "height", msg.Height)
	}

	_, cmd := a.todoList.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	return a.todoList.View()
}
