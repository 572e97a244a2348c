// Package todo holds the state of a single todo list: the tasks, the text
// staged for submission, and which task (if any) is being edited.
package todo

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tgienger/tdl/internal/models"
)

// Outcome describes what a call to Submit did
type Outcome int

const (
	Ignored Outcome = iota // blank input, nothing changed
	Added
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Updated:
		return "updated"
	default:
		return "ignored"
	}
}

// Controller owns the task list, the input buffer and the edit target.
// It is not safe for concurrent use.
type Controller struct {
	tasks  []models.Task
	input  string
	editID string // "" when not editing
	newID  func() string
}

// New creates an empty controller
func New() *Controller {
	return &Controller{newID: uuid.NewString}
}

// Submit appends the input as a new task, or replaces the task being edited.
// Input that is blank after trimming is ignored and left in place.
func (c *Controller) Submit() Outcome {
	if strings.TrimSpace(c.input) == "" {
		return Ignored
	}

	outcome := Added
	if i := c.indexOf(c.editID); i >= 0 {
		c.tasks[i].Title = c.input
		outcome = Updated
	} else {
		c.tasks = append(c.tasks, models.Task{ID: c.newID(), Title: c.input})
	}

	c.editID = ""
	c.input = ""
	return outcome
}

// RequestEdit stages the task at index for editing. It panics if index is
// not a position currently in the list.
func (c *Controller) RequestEdit(index int) {
	c.mustIndex("edit", index)
	c.input = c.tasks[index].Title
	c.editID = c.tasks[index].ID
}

// RequestDelete removes the task at index. It panics if index is not a
// position currently in the list.
func (c *Controller) RequestDelete(index int) {
	c.mustIndex("delete", index)
	if c.tasks[index].ID == c.editID {
		c.editID = ""
	}
	c.tasks = append(c.tasks[:index], c.tasks[index+1:]...)
}

// SetInput replaces the input buffer. Validation happens on Submit.
func (c *Controller) SetInput(text string) {
	c.input = text
}

// Input returns the input buffer
func (c *Controller) Input() string {
	return c.input
}

// EditTarget returns the current position of the task being edited
func (c *Controller) EditTarget() (int, bool) {
	i := c.indexOf(c.editID)
	return i, i >= 0
}

// Editing reports whether a task is being edited
func (c *Controller) Editing() bool {
	_, ok := c.EditTarget()
	return ok
}

// Len returns the number of tasks
func (c *Controller) Len() int {
	return len(c.tasks)
}

// Tasks returns a copy of the task texts in display order
func (c *Controller) Tasks() []string {
	titles := make([]string, len(c.tasks))
	for i, t := range c.tasks {
		titles[i] = t.Title
	}
	return titles
}

// Items returns a copy of the tasks in display order
func (c *Controller) Items() []models.Task {
	items := make([]models.Task, len(c.tasks))
	copy(items, c.tasks)
	return items
}

func (c *Controller) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) mustIndex(op string, index int) {
	if index < 0 || index >= len(c.tasks) {
		panic(fmt.Sprintf("todo: %s index %d out of range [0,%d)", op, index, len(c.tasks)))
	}
}
