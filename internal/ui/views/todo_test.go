package views

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/tdl/internal/config"
	"github.com/tgienger/tdl/internal/logging"
	"github.com/tgienger/tdl/internal/ui/keys"
)

func newTestView(t *testing.T, mutate func(*config.UIConfig)) *TodoListView {
	t.Helper()
	cfg := config.Default().UI
	if mutate != nil {
		mutate(&cfg)
	}
	v := NewTodoListView(cfg, keys.DefaultKeyMap(), logging.Discard())
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return v
}

func press(v *TodoListView, msgs ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = v.Update(msg)
	}
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
	esc      = tea.KeyMsg{Type: tea.KeyEsc}
	tab      = tea.KeyMsg{Type: tea.KeyTab}
	up       = tea.KeyMsg{Type: tea.KeyUp}
	down     = tea.KeyMsg{Type: tea.KeyDown}
	ctrlC    = tea.KeyMsg{Type: tea.KeyCtrlC}
	keyEdit  = runes("e")
	keyDel   = runes("d")
	keyCopy  = runes("y")
	keyQuit  = runes("q")
	keyHelp  = runes("?")
	keyInput = runes("i")
)

func addTasks(t *testing.T, v *TodoListView, titles ...string) {
	t.Helper()
	require.Equal(t, FocusInput, v.focus)
	for _, title := range titles {
		press(v, runes(title), enter)
	}
	require.Equal(t, titles, v.todo.Tasks()[len(v.todo.Tasks())-len(titles):])
}

func TestNewViewStartsEmptyWithInputFocused(t *testing.T) {
	v := newTestView(t, nil)

	assert.Equal(t, FocusInput, v.focus)
	assert.True(t, v.input.Focused())
	assert.Zero(t, v.todo.Len())

	out := v.View()
	assert.Contains(t, out, "Todo List")
	assert.Contains(t, out, "No tasks yet")
	assert.Contains(t, out, "Add")
}

func TestTypingUpdatesInputBuffer(t *testing.T) {
	v := newTestView(t, nil)
	press(v, runes("buy milk"))

	assert.Equal(t, "buy milk", v.todo.Input())
	assert.Zero(t, v.todo.Len())
}

func TestEnterAppendsTask(t *testing.T) {
	v := newTestView(t, nil)
	press(v, runes("buy milk"), enter)

	assert.Equal(t, []string{"buy milk"}, v.todo.Tasks())
	assert.Empty(t, v.todo.Input())
	assert.Empty(t, v.input.Value())
	assert.Equal(t, 0, v.list.Index())
	assert.Contains(t, v.View(), "buy milk")
	assert.NotContains(t, v.View(), "No tasks yet")
}

func TestBlankEnterIsIgnored(t *testing.T) {
	v := newTestView(t, nil)
	press(v, runes("   "), enter)

	assert.Zero(t, v.todo.Len())
	assert.Equal(t, "   ", v.input.Value())
}

func TestQWhileTypingIsText(t *testing.T) {
	v := newTestView(t, nil)
	press(v, keyQuit)

	assert.Equal(t, "q", v.todo.Input())
	assert.Equal(t, FocusInput, v.focus)
}

func TestQuitFromList(t *testing.T) {
	v := newTestView(t, nil)
	press(v, tab)

	cmd := press(v, keyQuit)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestCtrlCQuitsFromInput(t *testing.T) {
	v := newTestView(t, nil)

	cmd := press(v, ctrlC)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFocusSwitching(t *testing.T) {
	v := newTestView(t, nil)

	press(v, tab)
	assert.Equal(t, FocusList, v.focus)
	assert.False(t, v.input.Focused())

	press(v, keyInput)
	assert.Equal(t, FocusInput, v.focus)

	press(v, esc)
	assert.Equal(t, FocusList, v.focus)
}

func TestEditAndUpdate(t *testing.T) {
	v := newTestView(t, nil)
	addTasks(t, v, "a", "b", "c")

	press(v, tab, up) // select "b"
	require.Equal(t, 1, v.list.Index())

	press(v, keyEdit)
	assert.Equal(t, FocusInput, v.focus)
	assert.Equal(t, "b", v.input.Value())
	idx, ok := v.todo.EditTarget()
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Contains(t, v.View(), "Update")

	// replace the text: clear with backspace, then type
	press(v, tea.KeyMsg{Type: tea.KeyBackspace}, runes("B"), enter)

	assert.Equal(t, []string{"a", "B", "c"}, v.todo.Tasks())
	assert.False(t, v.todo.Editing())
	assert.Empty(t, v.input.Value())
	assert.NotContains(t, v.View(), "Update")
}

func TestEditThenEnterUnchangedKeepsTask(t *testing.T) {
	v := newTestView(t, nil)
	addTasks(t, v, "a", "b")

	press(v, tab, enter) // enter on the list edits the selection
	require.True(t, v.todo.Editing())
	press(v, enter)

	assert.Equal(t, []string{"a", "b"}, v.todo.Tasks())
}

func TestDeleteSelected(t *testing.T) {
	v := newTestView(t, nil)
	addTasks(t, v, "a", "b", "c")

	press(v, tab, up, up) // select "a"
	press(v, keyDel)

	assert.Equal(t, []string{"b", "c"}, v.todo.Tasks())
	assert.Equal(t, 0, v.list.Index())
	assert.Equal(t, FocusList, v.focus)
}

func TestDeleteEarlierTaskWhileEditing(t *testing.T) {
	v := newTestView(t, nil)
	addTasks(t, v, "a", "b", "c")

	press(v, tab, keyEdit) // editing "c"
	press(v, esc, up, up, keyDel)

	assert.Equal(t, []string{"b", "c"}, v.todo.Tasks())
	idx, ok := v.todo.EditTarget()
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "c", v.input.Value())
}

func TestDeleteEditedTaskReturnsToAdd(t *testing.T) {
	v := newTestView(t, nil)
	addTasks(t, v, "a", "b")

	press(v, tab, up, keyEdit) // editing "a"
	press(v, esc, keyDel)

	assert.Equal(t, []string{"b"}, v.todo.Tasks())
	assert.False(t, v.todo.Editing())
	assert.Contains(t, v.View(), "Add")
}

func TestDeleteLastTaskFocusesInput(t *testing.T) {
	v := newTestView(t, nil)
	addTasks(t, v, "only")

	press(v, tab, keyDel)

	assert.Zero(t, v.todo.Len())
	assert.Equal(t, FocusInput, v.focus)
}

func TestListActionsOnEmptyListAreNoops(t *testing.T) {
	v := newTestView(t, nil)
	press(v, tab)

	assert.NotPanics(t, func() { press(v, keyEdit, keyDel, keyCopy, up, down) })
	assert.Zero(t, v.todo.Len())
}

func TestConfirmDelete(t *testing.T) {
	v := newTestView(t, func(c *config.UIConfig) { c.ConfirmDelete = true })
	addTasks(t, v, "a", "b")

	press(v, tab, keyDel)
	require.True(t, v.confirmingDelete)
	assert.Contains(t, v.View(), "Delete Task?")
	assert.Equal(t, []string{"a", "b"}, v.todo.Tasks())

	press(v, runes("n"))
	assert.False(t, v.confirmingDelete)
	assert.Equal(t, []string{"a", "b"}, v.todo.Tasks())

	press(v, keyDel, runes("y"))
	assert.False(t, v.confirmingDelete)
	assert.Equal(t, []string{"a"}, v.todo.Tasks())
}

func TestCopySelectedTask(t *testing.T) {
	v := newTestView(t, nil)
	var copied string
	v.writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	addTasks(t, v, "a", "b")

	cmd := press(v, tab, keyCopy)
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Equal(t, "b", copied)
	assert.Contains(t, v.View(), "Copied to clipboard")
}

func TestCopyFailureShowsStatus(t *testing.T) {
	v := newTestView(t, nil)
	v.writeClipboard = func(string) error { return errors.New("no clipboard") }
	addTasks(t, v, "a")

	cmd := press(v, tab, keyCopy)
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.True(t, v.statusError)
	assert.Contains(t, v.View(), "no clipboard")
}

func TestHelpPopup(t *testing.T) {
	v := newTestView(t, nil)
	press(v, tab, keyHelp)

	require.True(t, v.showHelpPopup)
	assert.Contains(t, v.View(), "Keyboard Shortcuts")

	press(v, runes("x"))
	assert.False(t, v.showHelpPopup)
}

func TestEditMarkerRendered(t *testing.T) {
	v := newTestView(t, nil)
	addTasks(t, v, "a", "b")

	assert.NotContains(t, v.View(), "✎")
	press(v, tab, keyEdit)
	assert.Equal(t, 1, strings.Count(v.View(), "✎"))
}

func TestLongTaskIsTruncated(t *testing.T) {
	v := newTestView(t, nil)
	long := strings.Repeat("x", 150)
	addTasks(t, v, long)

	assert.Contains(t, v.View(), "…")
	assert.Equal(t, long, v.todo.Tasks()[0])
}
