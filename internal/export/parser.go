package export

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/classtrack/classtrack-back/internal/derive"
	"github.com/classtrack/classtrack-back/internal/models"
)

// ParseMasterlist reads a workbook in the masterlist export layout back
// into assignments. Rows without a title are skipped, as are rows whose
// due date does not parse. The computed DAYS UNTIL DUE column is
// ignored; it is derived, not stored.
func ParseMasterlist(r io.Reader) ([]models.Assignment, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}

	// Header labels → column index, so column order and extra columns
	// don't matter.
	colIdx := make(map[string]int)
	for i, label := range rows[0] {
		colIdx[strings.ToUpper(strings.TrimSpace(label))] = i
	}
	if _, ok := colIdx["ASSIGNMENT"]; !ok {
		return nil, fmt.Errorf("sheet %s has no ASSIGNMENT column", sheet)
	}

	cell := func(row []string, label string) string {
		i, ok := colIdx[label]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var assignments []models.Assignment
	for _, row := range rows[1:] {
		title := cell(row, "ASSIGNMENT")
		if title == "" {
			continue
		}
		dueDate := cell(row, "DUE DATE")
		if _, err := derive.ParseDueDate(dueDate); err != nil {
			log.Printf("⚠️ Skipping %q: bad due date %q", title, dueDate)
			continue
		}

		status := models.Status(cell(row, "STATUS"))
		if !status.Valid() {
			status = models.StatusUnset
		}
		typ := models.AssignmentType(cell(row, "TYPE"))
		if !typ.Valid() {
			typ = models.TypeOther
		}
		todoPriority := models.ToDoPriority(cell(row, "PRIORITY"))
		if !todoPriority.Valid() {
			todoPriority = ""
		}

		assignments = append(assignments, models.Assignment{
			Title:        title,
			ClassName:    cell(row, "CLASS"),
			Type:         typ,
			DueDate:      dueDate,
			DueTime:      cell(row, "DUE TIME"),
			Status:       status,
			Notes:        cell(row, "NOTES"),
			Completed:    cell(row, "COMPLETED") == "Yes",
			AddedToToDo:  cell(row, "TO-DO") == "Yes",
			ToDoPriority: todoPriority,
		})
	}

	log.Printf("✅ Parsed %d assignments from sheet %s\n", len(assignments), sheet)
	return assignments, nil
}
