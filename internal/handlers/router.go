package handlers

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/project-task-api/internal/dto"
	apierrors "github.com/yukikurage/project-task-api/internal/errors"
	"github.com/yukikurage/project-task-api/internal/middleware"
	"github.com/yukikurage/project-task-api/internal/services"
	"gorm.io/gorm"
)

// Services bundles the domain services exposed over HTTP
type Services struct {
	Projects *services.ProjectService
	Tasks    *services.TaskService
	Comments *services.CommentService
	Reports  *services.ReportService
}

// RouterConfig holds the HTTP-level settings of the router
type RouterConfig struct {
	// AllowedOrigins lists CORS origins; empty or "*" allows any origin
	AllowedOrigins []string
}

// NewRouter wires middleware, handlers and routes
func NewRouter(db *gorm.DB, svc Services, log *logrus.Logger, cfg RouterConfig) (*gin.Engine, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			return nil, fmt.Errorf("failed to register validators: %w", err)
		}
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
			apierrors.RespondWithServiceError(c, log, fmt.Errorf("panic: %v", recovered))
		}),
		cors.New(corsConfig(cfg.AllowedOrigins)),
	)

	r.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "Route not found")
	})

	healthHandler := NewHealthHandler(db)
	projectHandler := NewProjectHandler(svc.Projects, log)
	taskHandler := NewTaskHandler(svc.Tasks, log)
	commentHandler := NewCommentHandler(svc.Comments, log)
	reportHandler := NewReportHandler(svc.Reports, log)

	// Health check endpoint
	r.GET("/health", healthHandler.Health)

	// API routes
	api := r.Group("/api")
	{
		projects := api.Group("/projects")
		{
			projects.GET("/user/:userId", projectHandler.GetUserProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.POST("", projectHandler.CreateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("/project/:projectId", taskHandler.GetProjectTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.GET("/:id/history", taskHandler.GetTaskHistory)
		}

		comments := api.Group("/comments")
		{
			comments.POST("", commentHandler.AddComment)
			comments.GET("/task/:taskId", commentHandler.GetTaskComments)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/performance", reportHandler.GetPerformanceReport)
		}
	}

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	return cfg
}
