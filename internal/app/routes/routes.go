package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/eventsphere/internal/app/controllers"
	appGraphQL "github.com/yigit/eventsphere/internal/app/graphql"
	"github.com/yigit/eventsphere/internal/app/models/dto"
	"github.com/yigit/eventsphere/internal/middleware"
)

// Controllers groups the HTTP handlers mounted by SetupRouter
type Controllers struct {
	Auth       *controllers.AuthController
	User       *controllers.UserController
	Event      *controllers.EventController
	Attendance *controllers.AttendanceController
	School     *controllers.SchoolController
	GraphQL    *appGraphQL.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", ctrl.Auth.Login)
		auth.GET("/profile", authMiddleware.JWTAuth(), ctrl.Auth.Profile)
	}

	// --- Users ---
	users := v1.Group("/users")
	{
		users.POST("", ctrl.User.Register)
		users.GET("/:userId/events", ctrl.Event.ListEventsByOrganizer)
	}

	// --- Events ---
	events := v1.Group("/events")
	{
		events.GET("", ctrl.Event.ListEvents)
		events.GET("/:id", ctrl.Event.GetEvent)
		events.GET("/:id/attendees", ctrl.Attendance.ListEventAttendees)

		eventsProtected := events.Group("")
		eventsProtected.Use(authMiddleware.JWTAuth())
		{
			eventsProtected.POST("", ctrl.Event.CreateEvent)
			eventsProtected.PATCH("/:id", ctrl.Event.UpdateEvent)
			eventsProtected.DELETE("/:id", ctrl.Event.DeleteEvent)
		}
	}

	// --- Current user's attendance ---
	me := v1.Group("/me")
	me.Use(authMiddleware.JWTAuth())
	{
		me.GET("/events-attendance", ctrl.Attendance.ListMyAttendedEvents)
		me.GET("/events-attendance/:eventId", ctrl.Attendance.GetMyAttendance)
		me.PUT("/events-attendance/:eventId", ctrl.Attendance.PutMyAttendance)
	}

	// --- School relations ---
	school := v1.Group("/school")
	school.Use(authMiddleware.JWTAuth())
	{
		school.POST("/subjects/:id/teachers", ctrl.School.AssignTeachers)
		school.DELETE("/subjects/:id/teachers", ctrl.School.RemoveTeachers)
	}

	// GraphQL resolvers decide per field whether a user is required
	v1.POST("/graphql", authMiddleware.OptionalJWTAuth(), ctrl.GraphQL.Serve)

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})
}
