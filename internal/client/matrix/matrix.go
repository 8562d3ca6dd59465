// Package matrix derives the four-quadrant Eisenhower grouping from a
// todo collection. The partition is recomputed on every call and never
// stored; the input is not mutated.
package matrix

import "github.com/quadrant/core/internal/domain/entities"

// Matrix holds the four disjoint, exhaustive quadrants.
type Matrix struct {
	// UrgentImportant holds every high-priority todo. Completion does
	// not override high priority: a completed high-priority todo stays
	// here, not in Neither. That precedence is intentional and pinned
	// by tests; changing it is a product decision.
	UrgentImportant []entities.Todo

	// ImportantNotUrgent holds incomplete medium-priority todos.
	ImportantNotUrgent []entities.Todo

	// UrgentNotImportant holds incomplete low-priority todos.
	UrgentNotImportant []entities.Todo

	// Neither holds completed medium- and low-priority todos.
	Neither []entities.Todo
}

// Categorize partitions todos into the four quadrants. Every todo lands
// in exactly one group: the predicates, evaluated in order on priority
// then completion, leave no overlap and no gap.
func Categorize(todos []entities.Todo) Matrix {
	var m Matrix

	for _, todo := range todos {
		switch {
		case todo.Priority == entities.PriorityHigh:
			m.UrgentImportant = append(m.UrgentImportant, todo)
		case todo.Priority == entities.PriorityMedium && !todo.Completed:
			m.ImportantNotUrgent = append(m.ImportantNotUrgent, todo)
		case todo.Priority == entities.PriorityLow && !todo.Completed:
			m.UrgentNotImportant = append(m.UrgentNotImportant, todo)
		default:
			m.Neither = append(m.Neither, todo)
		}
	}

	return m
}
