package api

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/classtrack/classtrack-back/internal/derive"
	"github.com/classtrack/classtrack-back/internal/models"
	"github.com/classtrack/classtrack-back/internal/store"
)

// errStatus maps store errors onto HTTP status codes.
func errStatus(err error) int {
	var ve *store.ValidationError
	var nfe *store.NotFoundError
	var pe *store.PersistenceError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &nfe):
		return http.StatusNotFound
	case errors.As(err, &pe):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func abortWith(c *gin.Context, err error) {
	c.JSON(errStatus(err), gin.H{"error": err.Error()})
}

// AssignmentView is an assignment plus its derived, never-persisted
// read-side fields.
type AssignmentView struct {
	models.Assignment
	DaysUntilDue int            `json:"daysUntilDue"`
	DayOfWeek    string         `json:"dayOfWeek"`
	DisplayDate  string         `json:"displayDate"`
	Urgency      derive.Urgency `json:"urgency"`
}

func toView(a models.Assignment, now time.Time) AssignmentView {
	days := derive.DaysUntilDueAt(a.DueDate, now)
	return AssignmentView{
		Assignment:   a,
		DaysUntilDue: days,
		DayOfWeek:    derive.DayOfWeek(a.DueDate),
		DisplayDate:  derive.FormatDisplayDate(a.DueDate),
		Urgency:      derive.UrgencyLevel(days, a.Status),
	}
}

func toViews(assignments []models.Assignment, now time.Time) []AssignmentView {
	views := make([]AssignmentView, 0, len(assignments))
	for _, a := range assignments {
		views = append(views, toView(a, now))
	}
	return views
}

// ListAssignments godoc
// @Summary      List assignments
// @Description  Returns the masterlist with derived day counts and urgency
// @Tags         assignments
// @Produce      json
// @Success      200 {array}  AssignmentView
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/assignments [get]
func ListAssignments(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		assignments, err := s.Assignments(c.Request.Context(), email)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusOK, toViews(assignments, time.Now()))
	}
}

// CreateAssignment godoc
// @Summary      Add an assignment
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        body  body  models.Assignment  true  "Assignment (id ignored)"
// @Success      201 {object} models.Assignment
// @Failure      400 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/assignments [post]
func CreateAssignment(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		var a models.Assignment
		if err := c.ShouldBindJSON(&a); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		created, err := s.AddAssignment(c.Request.Context(), email, a)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateAssignment godoc
// @Summary      Update assignment fields
// @Description  Merges the provided subset of fields into the assignment
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Assignment ID"
// @Param        body  body  store.AssignmentUpdate  true  "Fields to merge"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/assignments/{id} [patch]
func UpdateAssignment(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		var upd store.AssignmentUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := s.UpdateAssignment(c.Request.Context(), email, c.Param("id"), upd); err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(200, gin.H{"message": "Assignment updated"})
	}
}

// DeleteAssignment godoc
// @Summary      Delete an assignment
// @Description  Deleting an unknown id is a 404, not a silent no-op
// @Tags         assignments
// @Produce      json
// @Param        id  path  string  true  "Assignment ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/assignments/{id} [delete]
func DeleteAssignment(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		if err := s.DeleteAssignment(c.Request.Context(), email, c.Param("id")); err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(200, gin.H{"message": "Assignment deleted"})
	}
}

// SetStatusRequest is the request body for setting a status.
type SetStatusRequest struct {
	Status models.Status `json:"status"`
}

// SetStatus godoc
// @Summary      Set assignment status
// @Description  Sets status and syncs the completed flag (Completed/Submitted mean done)
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "Assignment ID"
// @Param        body  body  SetStatusRequest  true  "New status"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/assignments/{id}/status [patch]
func SetStatus(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		var req SetStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := s.SetStatus(c.Request.Context(), email, c.Param("id"), req.Status); err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(200, gin.H{"message": "Status updated"})
	}
}

// ToggleComplete godoc
// @Summary      Toggle the simple done flag
// @Description  Flipping to done forces status Completed; flipping back forces Not Started
// @Tags         assignments
// @Produce      json
// @Param        id  path  string  true  "Assignment ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/assignments/{id}/toggle-complete [post]
func ToggleComplete(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		if err := s.ToggleComplete(c.Request.Context(), email, c.Param("id")); err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(200, gin.H{"message": "Toggled"})
	}
}

// ToggleToDo godoc
// @Summary      Toggle to-do membership
// @Description  Removing an assignment from the to-do list clears its task-completion state
// @Tags         todo
// @Produce      json
// @Param        id  path  string  true  "Assignment ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/assignments/{id}/todo [post]
func ToggleToDo(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		if err := s.ToggleToDoMembership(c.Request.Context(), email, c.Param("id")); err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(200, gin.H{"message": "To-do membership toggled"})
	}
}

// ToggleToDoCompletion godoc
// @Summary      Toggle task completion within the to-do list
// @Tags         todo
// @Produce      json
// @Param        id  path  string  true  "Assignment ID"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/assignments/{id}/todo/complete [post]
func ToggleToDoCompletion(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		if err := s.ToggleToDoCompletion(c.Request.Context(), email, c.Param("id")); err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(200, gin.H{"message": "Task completion toggled"})
	}
}

// SetToDoPriorityRequest is the request body for to-do priority.
type SetToDoPriorityRequest struct {
	Priority models.ToDoPriority `json:"priority"`
}

// SetToDoPriority godoc
// @Summary      Set to-do priority (High or Low)
// @Tags         todo
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Assignment ID"
// @Param        body  body  SetToDoPriorityRequest  true  "Priority"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/assignments/{id}/todo/priority [patch]
func SetToDoPriority(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		var req SetToDoPriorityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := s.SetToDoPriority(c.Request.Context(), email, c.Param("id"), req.Priority); err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(200, gin.H{"message": "Priority updated"})
	}
}

// ToDoResponse is the to-do view: ordered tasks plus the header counts.
type ToDoResponse struct {
	Tasks     []AssignmentView `json:"tasks"`
	Completed int              `json:"completed"`
	Total     int              `json:"total"`
}

// GetToDoList godoc
// @Summary      Get the to-do list
// @Description  High priority first, then due date ascending
// @Tags         todo
// @Produce      json
// @Success      200 {object} ToDoResponse
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/todo [get]
func GetToDoList(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		tasks, err := s.ToDoList(c.Request.Context(), email)
		if err != nil {
			abortWith(c, err)
			return
		}
		completed, total := store.ToDoCounts(tasks)
		c.JSON(http.StatusOK, ToDoResponse{
			Tasks:     toViews(tasks, time.Now()),
			Completed: completed,
			Total:     total,
		})
	}
}

// GetStats godoc
// @Summary      Assignment counts by status
// @Tags         assignments
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/stats [get]
func GetStats(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		assignments, err := s.Assignments(c.Request.Context(), email)
		if err != nil {
			abortWith(c, err)
			return
		}
		byStatus := make(map[models.Status]int)
		completed := 0
		for _, a := range assignments {
			byStatus[a.Status.Effective()]++
			if a.Status.Done() {
				completed++
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"total":     len(assignments),
			"completed": completed,
			"byStatus":  byStatus,
		})
	}
}

// GetCalendar godoc
// @Summary      Assignments grouped by due date
// @Description  Optionally filtered to one month (YYYY-MM)
// @Tags         assignments
// @Produce      json
// @Param        month  query  string  false  "Month filter, YYYY-MM"
// @Success      200 {object} map[string][]AssignmentView
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/calendar [get]
func GetCalendar(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		month := c.Query("month")

		assignments, err := s.Assignments(c.Request.Context(), email)
		if err != nil {
			abortWith(c, err)
			return
		}

		now := time.Now()
		grouped := make(map[string][]AssignmentView)
		for _, a := range assignments {
			if month != "" && (len(a.DueDate) < 7 || a.DueDate[:7] != month) {
				continue
			}
			grouped[a.DueDate] = append(grouped[a.DueDate], toView(a, now))
		}

		// Sort each day's assignments by class then title
		for day := range grouped {
			sort.Slice(grouped[day], func(i, j int) bool {
				if grouped[day][i].ClassName != grouped[day][j].ClassName {
					return grouped[day][i].ClassName < grouped[day][j].ClassName
				}
				return grouped[day][i].Title < grouped[day][j].Title
			})
		}

		c.JSON(http.StatusOK, grouped)
	}
}

// Reload godoc
// @Summary      Reload collections from the database
// @Description  Drops the in-memory collections and re-reads them; used after a persistence failure or an external change notification
// @Tags         assignments
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/reload [post]
func Reload(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		if err := s.Reload(c.Request.Context(), email); err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(200, gin.H{"message": "Reloaded"})
	}
}
