package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusworks/studenttrack/internal/app/controllers"
	"github.com/campusworks/studenttrack/internal/middleware"
	"github.com/campusworks/studenttrack/internal/pkg/auth"
)

const welcomePage = `<!DOCTYPE html>
<html>
<head><title>Student Management API</title></head>
<body>
<h1>Student Management API</h1>
<p>The service is running. See <a href="/health">/health</a> for status.</p>
</body>
</html>`

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	documentController *controllers.DocumentController,
	jwtService *auth.JWTService,
) {
	// --- Public routes ---
	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(welcomePage))
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().UTC()})
	})

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := router.Group("")
	authenticated.Use(middleware.AuthMiddleware(jwtService))

	students := authenticated.Group("/students")
	{
		students.POST("", studentController.CreateStudent)
		students.GET("", studentController.ListStudents)
		students.GET("/search", studentController.SearchStudents)
		students.GET("/:id", studentController.GetStudent)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)

		students.POST("/:id/upload", documentController.UploadDocuments)
		students.GET("/:id/documents/:docId/download", documentController.DownloadDocument)
		students.DELETE("/:id/documents/:docId", documentController.DeleteDocument)
	}
}
