package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/classtrack/classtrack-back/internal/syllabus"
)

func parseRouter(client *syllabus.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/syllabus/parse", ParseSyllabus(client))
	return r
}

func TestParseSyllabus_BlankTextIsBadRequest(t *testing.T) {
	// Gateway address that would fail if dialed; blank text must be
	// rejected before any call goes out.
	client := syllabus.NewClient("http://127.0.0.1:1", "test-key")
	r := parseRouter(client)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/syllabus/parse",
		strings.NewReader(`{"syllabusText":"   ","courseCode":"CSE 109"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400: %s", w.Code, w.Body.String())
	}
}

func TestParseSyllabus_GatewayFailureIsServerError(t *testing.T) {
	client := syllabus.NewClient("http://127.0.0.1:1", "test-key")
	r := parseRouter(client)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/syllabus/parse",
		strings.NewReader(`{"syllabusText":"HW 1 due 2025-11-15","courseCode":"CSE 109"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status %d, want 500: %s", w.Code, w.Body.String())
	}
}
