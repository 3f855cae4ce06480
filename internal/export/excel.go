package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/classtrack/classtrack-back/internal/derive"
	"github.com/classtrack/classtrack-back/internal/models"
)

// Band and accent colors shared by the three workbooks.
const (
	colorWhite     = "FFFFFF"
	colorGrey      = "D1D5DB"
	colorLightRed  = "FEE2E2"
	colorDarkRed   = "FECACA"
	colorYellow    = "FEF3C7"
	colorOrange    = "FED7AA"
	colorGreen     = "BBF7D0"
	colorHeaderBG  = "4B5563"
	colorBorder    = "E5E7EB"
	colorRedText   = "DC2626"
	colorAmberText = "F59E0B"
	colorGreenText = "16A34A"
)

// styler caches cell styles; excelize style slots are per-file and
// creating one per cell would bloat the workbook.
type styler struct {
	f     *excelize.File
	cache map[string]int
}

func newStyler(f *excelize.File) *styler {
	return &styler{f: f, cache: make(map[string]int)}
}

func (s *styler) cell(fill, fontColor string, bold bool) int {
	key := fill + "|" + fontColor + "|" + fmt.Sprint(bold)
	if id, ok := s.cache[key]; ok {
		return id
	}
	style := &excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
		Border: []excelize.Border{
			{Type: "top", Color: colorBorder, Style: 1},
			{Type: "left", Color: colorBorder, Style: 1},
			{Type: "bottom", Color: colorBorder, Style: 1},
			{Type: "right", Color: colorBorder, Style: 1},
		},
		Alignment: &excelize.Alignment{Vertical: "center"},
	}
	if bold || fontColor != "" {
		style.Font = &excelize.Font{Bold: bold}
		if fontColor != "" {
			style.Font.Color = fontColor
		}
	}
	id, err := s.f.NewStyle(style)
	if err != nil {
		return 0
	}
	s.cache[key] = id
	return id
}

func (s *styler) header() int {
	if id, ok := s.cache["header"]; ok {
		return id
	}
	id, err := s.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: colorWhite},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorHeaderBG}},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
	})
	if err != nil {
		return 0
	}
	s.cache["header"] = id
	return id
}

func freezeHeader(f *excelize.File, sheet string) {
	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func setHeaderRow(f *excelize.File, st *styler, sheet string, labels []string, widths []float64) {
	cells := make([]interface{}, len(labels))
	for i, l := range labels {
		cells[i] = l
	}
	f.SetSheetRow(sheet, "A1", &cells)
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}
	last, _ := excelize.ColumnNumberToName(len(labels))
	f.SetCellStyle(sheet, "A1", last+"1", st.header())
	f.SetRowHeight(sheet, 1, 25)
}

func statusFill(status models.Status) string {
	switch status {
	case models.StatusNotStarted:
		return colorLightRed
	case models.StatusInProgress:
		return colorOrange
	case models.StatusSubmitted:
		return colorGrey
	case models.StatusCompleted:
		return colorGreen
	case models.StatusOverdue:
		return colorDarkRed
	}
	return colorWhite
}

// MasterlistWorkbook builds the full assignment sheet with the
// days-until-due column computed at export time relative to `now`.
func MasterlistWorkbook(assignments []models.Assignment, now time.Time) *excelize.File {
	f := excelize.NewFile()
	sheet := "Assignments"
	f.SetSheetName("Sheet1", sheet)
	st := newStyler(f)

	setHeaderRow(f, st, sheet,
		[]string{"TO-DO", "STATUS", "DUE DATE", "DUE TIME", "CLASS", "TYPE", "ASSIGNMENT", "DAYS UNTIL DUE", "PRIORITY", "NOTES", "COMPLETED"},
		[]float64{10, 15, 12, 10, 20, 12, 35, 15, 12, 30, 12})

	for i, a := range assignments {
		row := i + 2
		daysUntil := derive.DaysUntilDueAt(a.DueDate, now)

		f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &[]interface{}{
			yesNo(a.AddedToToDo),
			string(a.Status),
			a.DueDate,
			a.DueTime,
			a.ClassName,
			string(a.Type),
			a.Title,
			daysUntil,
			string(a.ToDoPriority),
			a.Notes,
			yesNo(a.Completed),
		})

		band := colorWhite
		switch derive.UrgencyLevel(daysUntil, a.Status) {
		case derive.UrgencyOverdue:
			band = colorLightRed
		case derive.UrgencySoon:
			band = colorYellow
		}
		if a.Status.Done() {
			band = colorGrey
		}

		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("K%d", row), st.cell(band, "", false))
		f.SetCellStyle(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), st.cell(statusFill(a.Status), "", true))
		f.SetCellStyle(sheet, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), st.cell(band, "", true))
		if daysUntil < 0 {
			f.SetCellStyle(sheet, fmt.Sprintf("H%d", row), fmt.Sprintf("H%d", row), st.cell(band, colorRedText, true))
		} else if daysUntil <= 2 {
			f.SetCellStyle(sheet, fmt.Sprintf("H%d", row), fmt.Sprintf("H%d", row), st.cell(band, colorAmberText, true))
		}
		f.SetRowHeight(sheet, row, 20)
	}

	freezeHeader(f, sheet)
	return f
}

// ToDoWorkbook builds the to-do sheet from the already-projected task
// list.
func ToDoWorkbook(tasks []models.Assignment) *excelize.File {
	f := excelize.NewFile()
	sheet := "To-Do List"
	f.SetSheetName("Sheet1", sheet)
	st := newStyler(f)

	setHeaderRow(f, st, sheet,
		[]string{"COMPLETED", "PRIORITY", "DATE", "CLASS", "TASK", "NOTES"},
		[]float64{12, 12, 12, 20, 35, 30})

	for i, t := range tasks {
		row := i + 2
		f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &[]interface{}{
			yesNo(t.ToDoCompleted),
			string(t.ToDoPriority),
			t.DueDate,
			t.ClassName,
			t.Title,
			t.Notes,
		})

		band := colorWhite
		switch {
		case t.ToDoCompleted:
			band = colorGrey
		case t.ToDoPriority == models.ToDoHigh:
			band = colorLightRed
		case t.ToDoPriority == models.ToDoLow:
			band = colorGreen
		}

		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), st.cell(band, "", false))
		priorityFill := colorWhite
		if t.ToDoPriority == models.ToDoHigh {
			priorityFill = colorLightRed
		} else if t.ToDoPriority == models.ToDoLow {
			priorityFill = colorGreen
		}
		f.SetCellStyle(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), st.cell(priorityFill, "", true))
		f.SetCellStyle(sheet, fmt.Sprintf("D%d", row), fmt.Sprintf("D%d", row), st.cell(band, "", true))
		f.SetRowHeight(sheet, row, 20)
	}

	freezeHeader(f, sheet)
	return f
}

// ClassesWorkbook builds the per-class summary sheet, banded by
// completion percentage.
func ClassesWorkbook(summaries []ClassSummary) *excelize.File {
	f := excelize.NewFile()
	sheet := "Classes"
	f.SetSheetName("Sheet1", sheet)
	st := newStyler(f)

	setHeaderRow(f, st, sheet,
		[]string{"COURSE CODE", "COURSE TITLE", "PROFESSOR", "SCHEDULE", "TOTAL ASSIGNMENTS", "COMPLETED", "PERCENT COMPLETE"},
		[]float64{15, 30, 20, 20, 18, 15, 18})

	for i, s := range summaries {
		row := i + 2
		f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &[]interface{}{
			s.CourseCode,
			s.CourseTitle,
			s.Instructor,
			s.Schedule,
			s.Total,
			s.Completed,
			s.Percent,
		})

		percent := 0.0
		if s.Total > 0 {
			percent = float64(s.Completed) / float64(s.Total) * 100
		}
		band := colorWhite
		switch {
		case percent == 100:
			band = colorGreen
		case percent >= 75:
			band = colorYellow
		case percent >= 50:
			band = colorOrange
		case percent > 0:
			band = colorLightRed
		}

		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), st.cell(band, "", false))
		if hex, ok := hexColor(s.Color); ok {
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), st.cell(hex, colorWhite, true))
		}
		percentFont := ""
		if percent == 100 {
			percentFont = colorGreenText
		} else if percent < 50 {
			percentFont = colorRedText
		}
		f.SetCellStyle(sheet, fmt.Sprintf("G%d", row), fmt.Sprintf("G%d", row), st.cell(band, percentFont, true))
		f.SetRowHeight(sheet, row, 20)
	}

	freezeHeader(f, sheet)
	return f
}

// hexColor accepts "#RRGGBB" class colors; named pastel tokens have no
// spreadsheet equivalent and are skipped.
func hexColor(color string) (string, bool) {
	if len(color) == 7 && strings.HasPrefix(color, "#") {
		return color[1:], true
	}
	return "", false
}
