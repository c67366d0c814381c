package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekinoz/classtrack/internal/app/controllers"
	"github.com/ekinoz/classtrack/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	lectureController *controllers.LectureController,
	scheduleController *controllers.ScheduleController,
	attendanceController *controllers.AttendanceController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)
			courses.POST("", courseController.CreateCourse)
			courses.DELETE("/:id", courseController.DeleteCourse)
		}

		lectures := authenticated.Group("/lectures")
		{
			lectures.GET("", lectureController.ListLectures)
			lectures.POST("/:id/attendance", attendanceController.ToggleAttendance)
		}

		authenticated.POST("/schedule/import", scheduleController.ImportSchedule)

		attendances := authenticated.Group("/attendances")
		{
			attendances.GET("", attendanceController.ListAttendances)
			attendances.POST("", attendanceController.CreateAttendance)
			attendances.PATCH("/:id", attendanceController.UpdateAttendance)
			attendances.POST("/:id/summarize", attendanceController.Summarize)
		}

		authenticated.GET("/dashboard", dashboardController.Dashboard)
	}
}
