package api

import (
	"github.com/gin-gonic/gin"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"

	_ "github.com/classtrack/classtrack-back/docs"
	"github.com/classtrack/classtrack-back/internal/auth"
	"github.com/classtrack/classtrack-back/internal/config"
	"github.com/classtrack/classtrack-back/internal/db"
	"github.com/classtrack/classtrack-back/internal/store"
	"github.com/classtrack/classtrack-back/internal/syllabus"
)

// @title           ClassTrack API
// @version         1.0
// @description     Student coursework tracker: assignments, classes, to-do list, exports.
// @host            localhost:8000
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func SetupRouter(cfg *config.Config, s *store.Store) *gin.Engine {
	auth.InitGoogle(cfg)
	ai := syllabus.NewClient(cfg.AIGatewayURL, cfg.AIApiKey)

	r := gin.Default()

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		dbPingError := db.PingDB()
		if dbPingError != nil {
			c.JSON(500, gin.H{"status": "db_ping_error"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Google login
	r.GET("/auth/google/login", auth.GoogleLoginHandler())
	r.GET("/auth/google/callback", auth.GoogleCallbackHandler(cfg))
	r.POST("/auth/refresh", auth.RefreshHandler(cfg))

	// Protected
	apiGroup := r.Group("/api")
	apiGroup.Use(auth.AuthMiddleware(cfg))
	{
		apiGroup.GET("/assignments", ListAssignments(s))
		apiGroup.POST("/assignments", CreateAssignment(s))
		apiGroup.PATCH("/assignments/:id", UpdateAssignment(s))
		apiGroup.DELETE("/assignments/:id", DeleteAssignment(s))
		apiGroup.PATCH("/assignments/:id/status", SetStatus(s))
		apiGroup.POST("/assignments/:id/toggle-complete", ToggleComplete(s))
		apiGroup.POST("/assignments/:id/todo", ToggleToDo(s))
		apiGroup.POST("/assignments/:id/todo/complete", ToggleToDoCompletion(s))
		apiGroup.PATCH("/assignments/:id/todo/priority", SetToDoPriority(s))

		apiGroup.GET("/todo", GetToDoList(s))
		apiGroup.GET("/stats", GetStats(s))
		apiGroup.GET("/calendar", GetCalendar(s))
		apiGroup.POST("/reload", Reload(s))

		apiGroup.GET("/classes", ListClasses(s))
		apiGroup.POST("/classes", CreateClass(s))
		apiGroup.PATCH("/classes/:id", UpdateClass(s))
		apiGroup.DELETE("/classes/:id", DeleteClass(s))

		apiGroup.GET("/export/masterlist.csv", ExportMasterlistCSV(s))
		apiGroup.GET("/export/todo.csv", ExportToDoCSV(s))
		apiGroup.GET("/export/classes.csv", ExportClassesCSV(s))
		apiGroup.GET("/export/masterlist.xlsx", ExportMasterlistXLSX(s))
		apiGroup.GET("/export/todo.xlsx", ExportToDoXLSX(s))
		apiGroup.GET("/export/classes.xlsx", ExportClassesXLSX(s))
		apiGroup.GET("/export/clipboard", ExportClipboard(s))
		apiGroup.POST("/import/masterlist", ImportMasterlist(s))

		apiGroup.POST("/syllabus/parse", ParseSyllabus(ai))
	}

	return r
}
