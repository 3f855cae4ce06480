// Package export builds the read-only tabular projections of the
// assignment and class collections: CSV, XLSX workbooks and the
// clipboard text, plus re-import of the masterlist workbook. Nothing in
// here mutates source data.
package export

import (
	"fmt"

	"github.com/classtrack/classtrack-back/internal/models"
)

// ClassSummary is one row of the classes-summary export.
type ClassSummary struct {
	CourseCode  string `json:"courseCode"`
	CourseTitle string `json:"courseTitle"`
	Instructor  string `json:"instructor"`
	Schedule    string `json:"schedule"`
	Total       int    `json:"total"`
	Completed   int    `json:"completed"`
	Percent     string `json:"percent"`
	Color       string `json:"-"`
}

// SummarizeClasses aggregates per-class completion. Assignments join on
// class id. A class with no assignments reads exactly "0%", never NaN.
func SummarizeClasses(classes []models.Class, assignments []models.Assignment) []ClassSummary {
	summaries := make([]ClassSummary, 0, len(classes))
	for _, c := range classes {
		total, completed := 0, 0
		for _, a := range assignments {
			if a.ClassID != c.ID {
				continue
			}
			total++
			if a.Status.Done() {
				completed++
			}
		}
		percent := "0%"
		if total > 0 {
			percent = fmt.Sprintf("%.1f%%", float64(completed)/float64(total)*100)
		}
		summaries = append(summaries, ClassSummary{
			CourseCode:  c.CourseCode,
			CourseTitle: c.CourseTitle,
			Instructor:  c.Instructor,
			Schedule:    c.Schedule,
			Total:       total,
			Completed:   completed,
			Percent:     percent,
			Color:       c.Color,
		})
	}
	return summaries
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
