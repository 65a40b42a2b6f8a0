package app

import (
	"quiz_platform_backend/docs"
	"quiz_platform_backend/internal/config"
	"quiz_platform_backend/internal/middleware"
	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Health)
	router.GET("/api/health", c.health.Health)

	router.POST("/api/users/register", c.auth.Register)
	router.POST("/api/users/login", c.auth.Login)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		// Profile
		authGroup.GET("/users/me", c.user.Me)
		authGroup.POST("/users/me/avatar", c.user.UploadAvatar)
		authGroup.GET("/users/:id", c.user.GetUser)
		authGroup.PUT("/users/:id", c.user.UpdateUser)

		// Quiz reads are shared; the controller shapes the view per role.
		authGroup.GET("/quizzes", c.quiz.ListQuizzes)
		authGroup.GET("/quizzes/published", c.quiz.ListPublished)
		authGroup.GET("/quizzes/:id", c.quiz.GetQuiz)

		instructor := authGroup.Group("/")
		instructor.Use(middleware.RoleMiddleware(model.Instructor))
		{
			instructor.GET("/users", c.user.ListUsers)
			instructor.DELETE("/users/:id", c.user.DeleteUser)

			instructor.POST("/quizzes", c.quiz.CreateQuiz)
			instructor.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
			instructor.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
			instructor.POST("/quizzes/:id/questions", c.quiz.AddQuestion)
			instructor.POST("/quizzes/:id/publish", c.quiz.PublishQuiz)

			instructor.GET("/quizzes/:id/attempts", c.analytics.GetAttempts)
			instructor.GET("/quizzes/:id/analytics", c.analytics.GetAnalytics)
			instructor.GET("/quizzes/:id/report", c.analytics.GetReport)
		}

		student := authGroup.Group("/")
		student.Use(middleware.RoleMiddleware(model.Student))
		{
			student.POST("/quizzes/:id/start", c.submission.StartSubmission)
			student.POST("/quizzes/:id/submit", c.submission.SubmitAnswers)
			student.GET("/quizzes/:id/submission", c.submission.GetMySubmission)
		}

		// Visible to both roles; ownership is checked in the service.
		authGroup.GET("/submissions/:id", c.submission.GetSubmission)
	}
}
