package export

import (
	"strings"

	"github.com/classtrack/classtrack-back/internal/models"
)

// ClipboardText renders one tab-separated line per assignment, ready to
// paste into a spreadsheet.
func ClipboardText(assignments []models.Assignment) string {
	lines := make([]string, 0, len(assignments))
	for _, a := range assignments {
		lines = append(lines, strings.Join([]string{
			a.ClassName,
			string(a.Type),
			a.Title,
			a.DueDate,
			string(a.Status),
		}, "\t"))
	}
	return strings.Join(lines, "\n")
}
