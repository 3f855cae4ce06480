package store

import (
	"context"
	"sort"

	"github.com/classtrack/classtrack-back/internal/models"
)

// ToDoList is the derived task view: assignments flagged addedToToDo,
// high priority first, then due date ascending, original collection
// order as the tie-break.
func (s *Store) ToDoList(ctx context.Context, email string) ([]models.Assignment, error) {
	all, err := s.Assignments(ctx, email)
	if err != nil {
		return nil, err
	}
	return ProjectToDo(all), nil
}

// ProjectToDo filters and orders a snapshot without touching the store.
func ProjectToDo(assignments []models.Assignment) []models.Assignment {
	tasks := make([]models.Assignment, 0)
	for _, a := range assignments {
		if a.AddedToToDo {
			tasks = append(tasks, a)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		pi, pj := todoRank(tasks[i].ToDoPriority), todoRank(tasks[j].ToDoPriority)
		if pi != pj {
			return pi < pj
		}
		return tasks[i].DueDate < tasks[j].DueDate
	})
	return tasks
}

func todoRank(p models.ToDoPriority) int {
	switch p {
	case models.ToDoHigh:
		return 0
	case models.ToDoLow:
		return 1
	}
	return 2
}

// ToDoCounts reports completed-vs-total for the to-do view header.
func ToDoCounts(tasks []models.Assignment) (completed, total int) {
	for _, t := range tasks {
		if t.ToDoCompleted {
			completed++
		}
	}
	return completed, len(tasks)
}
