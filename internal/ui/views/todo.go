package views

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
	"github.com/tgienger/tdl/internal/config"
	"github.com/tgienger/tdl/internal/models"
	"github.com/tgienger/tdl/internal/todo"
	"github.com/tgienger/tdl/internal/ui/keys"
	"github.com/tgienger/tdl/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// FocusArea represents which part of the UI has focus
type FocusArea int

const (
	FocusInput FocusArea = iota
	FocusList
)

type taskItem struct {
	task    models.Task
	editing bool
}

func (i taskItem) Title() string       { return i.task.Title }
func (i taskItem) Description() string { return "" }
func (i taskItem) FilterValue() string { return i.task.Title }

type taskDelegate struct {
	styles *styles.Styles
	keys   *keys.KeyMap
	width  int
}

func (d taskDelegate) Height() int                               { return 1 }
func (d taskDelegate) Spacing() int                              { return 1 }
func (d taskDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	t, ok := item.(taskItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	marker := "  "
	if t.editing {
		marker = d.styles.EditMarker.Render("✎ ")
	}
	actions := d.styles.ActionEdit.Render("["+d.keys.Edit.Help().Key+"] Edit") + " " +
		d.styles.ActionDelete.Render("["+d.keys.Delete.Help().Key+"] Delete")

	titleWidth := max(width-lipgloss.Width(actions)-lipgloss.Width(marker)-3, 5)
	title := runewidth.FillRight(runewidth.Truncate(t.task.Title, titleWidth, "…"), titleWidth)

	rowStyle := d.styles.ListItem
	if selected {
		rowStyle = d.styles.ListSelected
	}
	fmt.Fprint(w, rowStyle.Width(width).Render(marker+title+" "+actions))
}

type clipboardResultMsg struct {
	text string
	err  error
}

// TodoListView renders a todo list and turns key presses into controller actions
type TodoListView struct {
	todo     *todo.Controller
	list     list.Model
	delegate *taskDelegate
	input    textinput.Model
	help     help.Model
	styles   *styles.Styles
	keys     keys.KeyMap
	logger   *log.Logger

	width  int
	height int
	focus  FocusArea

	// Delete confirmation (ui.confirm_delete)
	confirmDelete    bool
	confirmingDelete bool
	deleteTarget     int
	deleteTargetName string

	// Help popup
	showHelpPopup bool

	status      string
	statusError bool

	writeClipboard func(string) error
}

// NewTodoListView creates an empty todo list with the input focused
func NewTodoListView(cfg config.UIConfig, km keys.KeyMap, logger *log.Logger) *TodoListView {
	s := styles.NewStyles()

	input := textinput.New()
	input.Placeholder = cfg.Placeholder
	input.CharLimit = cfg.CharLimit
	input.Prompt = ""
	input.Focus()

	v := &TodoListView{
		todo:           todo.New(),
		input:          input,
		styles:         s,
		keys:           km,
		logger:         logger,
		focus:          FocusInput,
		confirmDelete:  cfg.ConfirmDelete,
		writeClipboard: clipboard.WriteAll,
	}

	v.delegate = &taskDelegate{styles: s, keys: &v.keys, width: styles.MaxWidth}

	l := list.New([]list.Item{}, v.delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	v.list = l

	h := help.New()
	h.Styles.ShortKey = s.HelpKey
	h.Styles.ShortDesc = s.HelpDesc
	h.Styles.FullKey = s.HelpKey
	h.Styles.FullDesc = s.HelpDesc
	v.help = h

	return v
}

// Init initializes the view
func (v *TodoListView) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (v *TodoListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.input.Width = clamp(contentWidth-20, 10, 60)
		v.help.Width = contentWidth - 4
		v.list.SetSize(contentWidth-4, max(msg.Height-12, 2))
		return v, nil

	case clipboardResultMsg:
		if msg.err != nil {
			v.logger.Warn("clipboard write failed", "err", msg.err)
			v.status = "Copy failed: " + msg.err.Error()
			v.statusError = true
			return v, nil
		}
		v.logger.Debug("task copied", "len", len(msg.text))
		v.status = "Copied to clipboard"
		v.statusError = false
		return v, nil

	case tea.KeyMsg:
		if key.Matches(msg, v.keys.ForceQuit) {
			return v, tea.Quit
		}

		// Help popup: any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.focus == FocusInput {
			return v.updateInput(msg)
		}
		return v.updateList(msg)
	}

	return v, nil
}

func (v *TodoListView) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Submit):
		v.submit()
		return v, nil

	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Tab), key.Matches(msg, v.keys.ShiftTab):
		v.setFocus(FocusList)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() != v.todo.Input() {
		v.todo.SetInput(v.input.Value())
	}
	return v, cmd
}

func (v *TodoListView) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	hasTasks := v.todo.Len() > 0

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil

	case key.Matches(msg, v.keys.Tab), key.Matches(msg, v.keys.ShiftTab), key.Matches(msg, v.keys.FocusInput):
		v.setFocus(FocusInput)
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Up):
		v.list.CursorUp()
		return v, nil

	case key.Matches(msg, v.keys.Down):
		v.list.CursorDown()
		return v, nil

	case key.Matches(msg, v.keys.Edit):
		if hasTasks {
			v.edit(v.list.Index())
			return v, textinput.Blink
		}

	case key.Matches(msg, v.keys.Delete):
		if !hasTasks {
			return v, nil
		}
		idx := v.list.Index()
		if v.confirmDelete {
			v.confirmingDelete = true
			v.deleteTarget = idx
			v.deleteTargetName = v.todo.Tasks()[idx]
			return v, nil
		}
		v.delete(idx)

	case key.Matches(msg, v.keys.Copy):
		if hasTasks {
			return v, v.copyTask(v.todo.Tasks()[v.list.Index()])
		}
	}

	return v, nil
}

func (v *TodoListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Confirm):
		v.confirmingDelete = false
		if v.deleteTarget < v.todo.Len() {
			v.delete(v.deleteTarget)
		}
		return v, nil
	case key.Matches(msg, v.keys.Cancel):
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TodoListView) submit() {
	editIdx, editing := v.todo.EditTarget()

	switch v.todo.Submit() {
	case todo.Ignored:
		v.logger.Debug("blank submit ignored", "editing", editing)
		return
	case todo.Updated:
		v.logger.Info("task updated", "index", editIdx)
		v.refreshList()
		v.list.Select(editIdx)
	case todo.Added:
		v.logger.Info("task added", "index", v.todo.Len()-1)
		v.refreshList()
		v.list.Select(v.todo.Len() - 1)
	}
	v.syncInput()
}

func (v *TodoListView) edit(index int) {
	v.todo.RequestEdit(index)
	v.logger.Info("task edit requested", "index", index)
	v.syncInput()
	v.refreshList()
	v.setFocus(FocusInput)
}

func (v *TodoListView) delete(index int) {
	v.todo.RequestDelete(index)
	editIdx, editing := v.todo.EditTarget()
	v.logger.Info("task deleted", "index", index, "editing", editing, "edit_index", editIdx)
	v.refreshList()
	if v.todo.Len() == 0 {
		v.setFocus(FocusInput)
		return
	}
	v.list.Select(min(index, v.todo.Len()-1))
}

func (v *TodoListView) copyTask(text string) tea.Cmd {
	write := v.writeClipboard
	return func() tea.Msg {
		return clipboardResultMsg{text: text, err: write(text)}
	}
}

// syncInput copies the controller's input buffer into the text field
func (v *TodoListView) syncInput() {
	v.input.SetValue(v.todo.Input())
	v.input.CursorEnd()
}

func (v *TodoListView) refreshList() {
	editIdx, editing := v.todo.EditTarget()
	tasks := v.todo.Items()
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = taskItem{task: t, editing: editing && i == editIdx}
	}
	v.list.SetItems(items)
	if v.list.Index() >= len(items) {
		v.list.Select(max(0, len(items)-1))
	}
}

func (v *TodoListView) setFocus(f FocusArea) {
	v.focus = f
	if f == FocusInput {
		v.input.Focus()
		return
	}
	v.input.Blur()
}

// View renders the view
func (v *TodoListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	s := v.styles
	sections := []string{
		s.Title.Render("Todo List"),
		"",
		v.renderInputRow(),
		"",
		v.renderTaskList(),
	}
	if v.status != "" {
		statusStyle := s.StatusBar
		if v.statusError {
			statusStyle = s.StatusError
		}
		sections = append(sections, statusStyle.Render(v.status))
	}
	sections = append(sections, v.renderHelp())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return styles.CenterView(lipgloss.NewStyle().Padding(1, 2).Render(content), v.width, v.height)
}

func (v *TodoListView) renderInputRow() string {
	s := v.styles

	inputStyle := s.Input
	if v.focus == FocusInput {
		inputStyle = s.InputFocused
	}

	button := s.ButtonAdd.Render(" Add ")
	if v.todo.Editing() {
		button = s.ButtonUpdate.Render(" Update ")
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		inputStyle.Width(v.input.Width+3).Render(v.input.View()),
		"  ",
		button,
	)
}

func (v *TodoListView) renderTaskList() string {
	if v.todo.Len() == 0 {
		return v.styles.TitleMuted.Render("No tasks yet. Stay focused.")
	}
	return v.list.View()
}

func (v *TodoListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return v.styles.Help.Render(v.help.ShortHelpView(v.keys.ShortHelp()))
}

func (v *TodoListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Keyboard Shortcuts"),
		"",
		v.help.FullHelpView(v.keys.FullHelp()),
		"",
		s.TitleMuted.Render("Press any key to close"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TodoListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	name := runewidth.Truncate(v.deleteTargetName, clamp(contentWidth-10, 10, 60), "…")
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Danger.Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q", name)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
