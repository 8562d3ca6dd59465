package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/quadrant/core/internal/client/matrix"
	"github.com/quadrant/core/internal/domain/entities"
)

var priorityColors = map[entities.Priority]*color.Color{
	entities.PriorityHigh:   color.New(color.FgRed),
	entities.PriorityMedium: color.New(color.FgYellow),
	entities.PriorityLow:    color.New(color.FgGreen),
}

func renderList(w io.Writer, todos []entities.Todo) {
	if len(todos) == 0 {
		fmt.Fprintln(w, "No todos.")
		return
	}

	for _, todo := range todos {
		renderTodo(w, todo)
	}
}

func renderMatrix(w io.Writer, todos []entities.Todo) {
	m := matrix.Categorize(todos)

	renderQuadrant(w, "Urgent & Important", "Do first", m.UrgentImportant)
	renderQuadrant(w, "Important, Not Urgent", "Schedule", m.ImportantNotUrgent)
	renderQuadrant(w, "Urgent, Not Important", "Delegate", m.UrgentNotImportant)
	renderQuadrant(w, "Neither", "Done or drop", m.Neither)
}

func renderQuadrant(w io.Writer, title, hint string, todos []entities.Todo) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "%s", title)
	fmt.Fprintf(w, " - %s\n", hint)

	if len(todos) == 0 {
		fmt.Fprintln(w, "  (empty)")
		fmt.Fprintln(w)
		return
	}

	for _, todo := range todos {
		fmt.Fprint(w, "  ")
		renderTodo(w, todo)
	}
	fmt.Fprintln(w)
}

func renderTodo(w io.Writer, todo entities.Todo) {
	check := "[ ]"
	if todo.Completed {
		check = "[x]"
	}

	c, ok := priorityColors[todo.Priority]
	if !ok {
		c = color.New(color.Reset)
	}

	fmt.Fprintf(w, "%s %s %s  due %s  (%s)\n",
		check,
		c.Sprintf("%-6s", todo.Priority),
		todo.Title,
		todo.DueDate.Format("2006-01-02"),
		todo.ID,
	)
}
