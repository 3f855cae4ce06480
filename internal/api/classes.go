package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classtrack/classtrack-back/internal/derive"
	"github.com/classtrack/classtrack-back/internal/models"
	"github.com/classtrack/classtrack-back/internal/store"
)

// ClassView is a class plus the text color to render on its color chip.
type ClassView struct {
	models.Class
	ContrastColor string `json:"contrastColor"`
}

// ListClasses godoc
// @Summary      List classes
// @Tags         classes
// @Produce      json
// @Success      200 {array}  ClassView
// @Failure      502 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/classes [get]
func ListClasses(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		classes, err := s.Classes(c.Request.Context(), email)
		if err != nil {
			abortWith(c, err)
			return
		}
		views := make([]ClassView, 0, len(classes))
		for _, cl := range classes {
			views = append(views, ClassView{Class: cl, ContrastColor: derive.ContrastColor(cl.Color)})
		}
		c.JSON(http.StatusOK, views)
	}
}

// CreateClass godoc
// @Summary      Add a class
// @Tags         classes
// @Accept       json
// @Produce      json
// @Param        body  body  models.Class  true  "Class (id ignored)"
// @Success      201 {object} models.Class
// @Failure      400 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/classes [post]
func CreateClass(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		var cl models.Class
		if err := c.ShouldBindJSON(&cl); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		created, err := s.AddClass(c.Request.Context(), email, cl)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateClass godoc
// @Summary      Update class fields
// @Tags         classes
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "Class ID"
// @Param        body  body  store.ClassUpdate true  "Fields to merge"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/classes/{id} [patch]
func UpdateClass(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		var upd store.ClassUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := s.UpdateClass(c.Request.Context(), email, c.Param("id"), upd); err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(200, gin.H{"message": "Class updated"})
	}
}

// DeleteClass godoc
// @Summary      Delete a class
// @Description  Assignments of the class are orphaned, not deleted; the response reports how many
// @Tags         classes
// @Produce      json
// @Param        id  path  string  true  "Class ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/classes/{id} [delete]
func DeleteClass(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		orphans, err := s.DeleteClass(c.Request.Context(), email, c.Param("id"))
		if err != nil {
			abortWith(c, err)
			return
		}
		c.JSON(200, gin.H{"message": "Class deleted", "orphaned_assignments": orphans})
	}
}
