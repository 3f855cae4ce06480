package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/classtrack/classtrack-back/internal/export"
	"github.com/classtrack/classtrack-back/internal/store"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func sendCSV(c *gin.Context, name string, data []byte) {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func sendWorkbook(c *gin.Context, name string, f *excelize.File) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Println("❌ Failed to build workbook:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
		return
	}
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxMIME, buf.Bytes())
}

// ExportMasterlistCSV godoc
// @Summary      Download the masterlist as CSV
// @Tags         export
// @Produce      text/csv
// @Success      200 {string} string "csv"
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/export/masterlist.csv [get]
func ExportMasterlistCSV(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		assignments, err := s.Assignments(c.Request.Context(), email)
		if err != nil {
			abortWith(c, err)
			return
		}
		data, err := export.MasterlistCSV(assignments)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build CSV"})
			return
		}
		sendCSV(c, "assignments", data)
	}
}

// ExportToDoCSV godoc
// @Summary      Download the to-do list as CSV
// @Tags         export
// @Produce      text/csv
// @Success      200 {string} string "csv"
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/export/todo.csv [get]
func ExportToDoCSV(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		tasks, err := s.ToDoList(c.Request.Context(), email)
		if err != nil {
			abortWith(c, err)
			return
		}
		data, err := export.ToDoCSV(tasks)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build CSV"})
			return
		}
		sendCSV(c, "todo-list", data)
	}
}

// ExportClassesCSV godoc
// @Summary      Download the classes summary as CSV
// @Tags         export
// @Produce      text/csv
// @Success      200 {string} string "csv"
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/export/classes.csv [get]
func ExportClassesCSV(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		classes, err := s.Classes(c.Request.Context(), email)
		if err != nil {
			abortWith(c, err)
			return
		}
		assignments, err := s.Assignments(c.Request.Context(), email)
		if err != nil {
			abortWith(c, err)
			return
		}
		data, err := export.ClassesCSV(export.SummarizeClasses(classes, assignments))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build CSV"})
			return
		}
		sendCSV(c, "classes-summary", data)
	}
}

// ExportMasterlistXLSX godoc
// @Summary      Download the masterlist workbook
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {string} string "xlsx"
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/export/masterlist.xlsx [get]
func ExportMasterlistXLSX(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		assignments, err := s.Assignments(c.Request.Context(), email)
		if err != nil {
			abortWith(c, err)
			return
		}
		sendWorkbook(c, "assignments", export.MasterlistWorkbook(assignments, time.Now()))
	}
}

// ExportToDoXLSX godoc
// @Summary      Download the to-do workbook
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {string} string "xlsx"
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/export/todo.xlsx [get]
func ExportToDoXLSX(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		tasks, err := s.ToDoList(c.Request.Context(), email)
		if err != nil {
			abortWith(c, err)
			return
		}
		sendWorkbook(c, "todo-list", export.ToDoWorkbook(tasks))
	}
}

// ExportClassesXLSX godoc
// @Summary      Download the classes summary workbook
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {string} string "xlsx"
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/export/classes.xlsx [get]
func ExportClassesXLSX(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		classes, err := s.Classes(c.Request.Context(), email)
		if err != nil {
			abortWith(c, err)
			return
		}
		assignments, err := s.Assignments(c.Request.Context(), email)
		if err != nil {
			abortWith(c, err)
			return
		}
		sendWorkbook(c, "classes-summary", export.ClassesWorkbook(export.SummarizeClasses(classes, assignments)))
	}
}

// ExportClipboard godoc
// @Summary      Tab-separated masterlist text for clipboard copy
// @Tags         export
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/export/clipboard [get]
func ExportClipboard(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		assignments, err := s.Assignments(c.Request.Context(), email)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"text": export.ClipboardText(assignments)})
	}
}

// ImportMasterlist godoc
// @Summary      Import assignments from a masterlist workbook
// @Description  Accepts an .xlsx in the masterlist export layout; rows without a title are skipped
// @Tags         export
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Workbook"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/import/masterlist [post]
func ImportMasterlist(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable file"})
			return
		}
		defer file.Close()

		assignments, err := export.ParseMasterlist(file)
		if err != nil {
			log.Println("❌ Failed to parse workbook:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse workbook"})
			return
		}

		added := 0
		for _, a := range assignments {
			if _, err := s.AddAssignment(c.Request.Context(), email, a); err != nil {
				abortWith(c, err)
				return
			}
			added++
		}
		c.JSON(http.StatusOK, gin.H{"message": "Assignments imported", "count": added})
	}
}
