package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/taskboard/internal/constants"
	"github.com/yukikurage/taskboard/internal/middleware"
	"github.com/yukikurage/taskboard/internal/repository"
	"github.com/yukikurage/taskboard/internal/services"
	"gorm.io/gorm"
)

// NewRouter wires the reference tracker API on top of db
func NewRouter(db *gorm.DB, log logrus.FieldLogger) *gin.Engine {
	taskRepo := repository.NewTaskRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	userRepo := repository.NewUserRepository(db)

	taskHandler := NewTaskHandler(services.NewTaskService(taskRepo, boardRepo, userRepo))
	boardHandler := NewBoardHandler(services.NewBoardService(boardRepo, taskRepo, userRepo))

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Tracker API is running",
		})
	})

	requireTask := middleware.RequireID("id", constants.ContextKeyTaskID, "Invalid task ID")
	requireBoard := middleware.RequireID("boardId", constants.ContextKeyBoardID, "Invalid board ID")

	api := r.Group("/api/v1")
	{
		boards := api.Group("/boards")
		{
			boards.GET("", boardHandler.ListBoards)
			boards.GET("/:boardId", requireBoard, boardHandler.GetBoardTasks)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("/create", taskHandler.CreateTask)
			tasks.GET("/:id", requireTask, taskHandler.GetTask)
			tasks.PUT("/update/:id", requireTask, taskHandler.UpdateTask)
			tasks.PUT("/updateStatus/:id", requireTask, taskHandler.UpdateTaskStatus)
		}

		api.GET("/users", boardHandler.ListUsers)
	}

	return r
}
