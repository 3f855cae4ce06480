package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classtrack/classtrack-back/internal/models"
	"github.com/classtrack/classtrack-back/internal/syllabus"
)

// ParseSyllabus godoc
// @Summary      Extract assignments from syllabus text
// @Description  Sends the text to the AI gateway and returns candidate assignments for review. An empty list means nothing was found.
// @Tags         syllabus
// @Accept       json
// @Produce      json
// @Param        body  body  syllabus.Request  true  "Syllabus text and course info"
// @Success      200 {object} map[string][]models.ExtractedAssignment
// @Failure      400 {object} map[string]string
// @Failure      402 {object} map[string]string
// @Failure      429 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Security     BearerAuth
// @Router       /api/syllabus/parse [post]
func ParseSyllabus(client *syllabus.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req syllabus.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		extracted, err := client.Extract(c.Request.Context(), req)
		if err != nil {
			log.Println("❌ Syllabus extraction failed:", err)
			var ee *syllabus.ExtractionError
			status := errStatus(err)
			if errors.As(err, &ee) {
				switch ee.Kind {
				case syllabus.ErrRateLimited:
					status = http.StatusTooManyRequests
				case syllabus.ErrNoCredits:
					status = http.StatusPaymentRequired
				}
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		// Rows without a title never make it into the review table.
		included := make([]models.ExtractedAssignment, 0, len(extracted))
		for _, a := range extracted {
			if a.Title != "" {
				included = append(included, a)
			}
		}
		c.JSON(http.StatusOK, gin.H{"assignments": included})
	}
}
