package models

// Task represents a single todo item
type Task struct {
	ID    string // stable for the lifetime of the task
	Title string
}
