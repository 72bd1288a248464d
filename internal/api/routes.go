package api

import (
	"net/http"
	"time"

	"fitiva/workout-app/internal/domain"
	"fitiva/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes wires all HTTP routes. Paths carry trailing slashes; gin's
// default trailing-slash redirect accepts both forms.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	tokenTTL time.Duration,
	authService service.AuthService,
	profileService service.ProfileService,
	programService service.ProgramService,
	recommendationService service.RecommendationService,
	scheduleService service.ScheduleService,
	sessionService service.SessionService,
	templateService service.TemplateService,
) {
	authHandler := NewAuthHandler(authService, tokenTTL)
	profileHandler := NewProfileHandler(profileService)
	programHandler := NewProgramHandler(programService)
	recommendationHandler := NewRecommendationHandler(recommendationService)
	scheduleHandler := NewScheduleHandler(scheduleService)
	sessionHandler := NewSessionHandler(sessionService)
	templateHandler := NewTemplateHandler(templateService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.Use(MetricsMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup/", authHandler.Signup)
			authGroup.POST("/login/", authHandler.Login)
			authGroup.POST("/logout/", authMiddleware, authHandler.Logout)
			authGroup.GET("/me/", authMiddleware, authHandler.Me)
		}
	}

	protected := api.Group("")
	protected.Use(authMiddleware)
	{
		profileGroup := protected.Group("/profile")
		{
			profileGroup.POST("/create/", profileHandler.CreateProfile)
			profileGroup.GET("/me/", profileHandler.GetMyProfile)
			profileGroup.PUT("/me/", profileHandler.UpdateMyProfile)
		}

		protected.PUT("/trainer/profile/", RoleMiddleware(domain.RoleTrainer), profileHandler.UpdateTrainerProfile)

		usersGroup := protected.Group("/users")
		{
			usersGroup.GET("/:id/profile/", profileHandler.GetUserProfile)
			usersGroup.GET("/:id/programs/", programHandler.GetUserPrograms)
		}

		programGroup := protected.Group("/programs")
		{
			programGroup.POST("/", RoleMiddleware(domain.RoleTrainer), programHandler.CreateProgram)
			programGroup.GET("/", programHandler.ListPrograms)
			programGroup.GET("/:id/", programHandler.GetProgram)
			programGroup.DELETE("/:id/", RoleMiddleware(domain.RoleTrainer), programHandler.DeleteProgram)
		}

		protected.GET("/recommendations/", recommendationHandler.Recommend)

		scheduleGroup := protected.Group("/schedule")
		{
			scheduleGroup.POST("/generate/", scheduleHandler.Generate)
			scheduleGroup.GET("/active/", scheduleHandler.Active)
			scheduleGroup.GET("/workout/:date/", scheduleHandler.WorkoutForDate)
			scheduleGroup.DELETE("/remove-program/:program_id/", scheduleHandler.RemoveProgram)
			scheduleGroup.DELETE("/deactivate/", scheduleHandler.Deactivate)
		}

		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.POST("/start/:date/", sessionHandler.StartSession)
			sessionGroup.POST("/complete/:date/", sessionHandler.CompleteSession)
			sessionGroup.POST("/:id/feedback/", sessionHandler.SubmitFeedback)
		}

		templateGroup := protected.Group("/templates")
		{
			templateGroup.GET("/", templateHandler.ListTemplates)
			templateGroup.POST("/", RoleMiddleware(domain.RoleTrainer), templateHandler.CreateTemplate)
			templateGroup.GET("/:id/", templateHandler.GetTemplate)
			templateGroup.POST("/:id/media-upload-url/", RoleMiddleware(domain.RoleTrainer), templateHandler.RequestMediaUpload)
		}
	}
}
