package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/classtrack/classtrack-back/internal/models"
)

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MasterlistCSV renders the full assignment table. The Priority column
// carries the to-do priority, matching the masterlist view.
func MasterlistCSV(assignments []models.Assignment) ([]byte, error) {
	rows := [][]string{{
		"To-Do", "Status", "Due Date", "Due Time", "Class", "Type",
		"Assignment", "Priority", "Notes", "Completed",
	}}
	for _, a := range assignments {
		rows = append(rows, []string{
			yesNo(a.AddedToToDo),
			string(a.Status),
			a.DueDate,
			a.DueTime,
			a.ClassName,
			string(a.Type),
			a.Title,
			string(a.ToDoPriority),
			a.Notes,
			yesNo(a.Completed),
		})
	}
	return writeCSV(rows)
}

// ToDoCSV renders the to-do projection. Tasks should already be the
// filtered, ordered to-do list.
func ToDoCSV(tasks []models.Assignment) ([]byte, error) {
	rows := [][]string{{"Completed", "Priority", "Date", "Class", "Task", "Notes"}}
	for _, t := range tasks {
		rows = append(rows, []string{
			yesNo(t.ToDoCompleted),
			string(t.ToDoPriority),
			t.DueDate,
			t.ClassName,
			t.Title,
			t.Notes,
		})
	}
	return writeCSV(rows)
}

// ClassesCSV renders the per-class completion summary.
func ClassesCSV(summaries []ClassSummary) ([]byte, error) {
	rows := [][]string{{
		"Course Code", "Course Title", "Professor", "Schedule",
		"Total Assignments", "Completed", "Percent Complete",
	}}
	for _, s := range summaries {
		rows = append(rows, []string{
			s.CourseCode,
			s.CourseTitle,
			s.Instructor,
			s.Schedule,
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Completed),
			s.Percent,
		})
	}
	return writeCSV(rows)
}
