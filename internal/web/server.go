// Package web serves the board UI: board and issue pages, drag-and-drop
// moves and the task modal, all backed by the tracker API.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/taskboard/internal/constants"
	"github.com/yukikurage/taskboard/internal/dto"
	"github.com/yukikurage/taskboard/internal/middleware"
	"github.com/yukikurage/taskboard/internal/models"
)

// API is the tracker client the UI talks to
type API interface {
	ListBoards(ctx context.Context) ([]dto.BoardDTO, error)
	ListBoardTasks(ctx context.Context, boardID uint64) ([]dto.TaskDTO, error)
	ListTasks(ctx context.Context) ([]dto.TaskDTO, error)
	GetTask(ctx context.Context, id uint64) (dto.TaskDetailsDTO, error)
	CreateTask(ctx context.Context, fields dto.TaskFieldsDTO) (uint64, error)
	UpdateTask(ctx context.Context, id uint64, fields dto.TaskFieldsDTO) (string, error)
	UpdateTaskStatus(ctx context.Context, id uint64, status models.TaskStatus) (string, error)
	ListUsers(ctx context.Context) ([]dto.AssigneeDTO, error)
}

// BoardCache serves the board list and forgets it when boards change
type BoardCache interface {
	ListBoards(ctx context.Context) ([]dto.BoardDTO, error)
	Evict(ctx context.Context)
}

// Options configures a Server
type Options struct {
	API    API
	Boards BoardCache
	Store  sessions.Store
	Log    logrus.FieldLogger

	// Workspace limits; zero values use the session max age and
	// constants.MaxWorkspaces
	IdleTimeout   time.Duration
	MaxWorkspaces int
}

// Server is the web UI
type Server struct {
	api        API
	boards     BoardCache
	store      sessions.Store
	workspaces *Registry
	log        logrus.FieldLogger
}

// New creates a Server. Boards defaults to the uncached API.
func New(opts Options) *Server {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.Boards == nil {
		opts.Boards = uncached{opts.API}
	}
	return &Server{
		api:        opts.API,
		boards:     opts.Boards,
		store:      opts.Store,
		workspaces: NewRegistry(opts.API, opts.Boards, opts.Log, registryOptions(opts)...),
		log:        opts.Log,
	}
}

func registryOptions(opts Options) []RegistryOption {
	var out []RegistryOption
	if opts.IdleTimeout > 0 {
		out = append(out, WithIdleTimeout(opts.IdleTimeout))
	}
	if opts.MaxWorkspaces > 0 {
		out = append(out, WithMaxWorkspaces(opts.MaxWorkspaces))
	}
	return out
}

// Workspaces exposes the session registry
func (s *Server) Workspaces() *Registry {
	return s.workspaces
}

// Router builds the gin engine for the UI
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(s.log))
	r.SetHTMLTemplate(mustTemplates())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Taskboard UI is running",
		})
	})

	ui := r.Group("/")
	ui.Use(sessions.Sessions(constants.SessionName, s.store), middleware.RequireWorkspace())
	{
		ui.GET("", func(c *gin.Context) { c.Redirect(http.StatusFound, "/boards") })

		requireBoard := middleware.RequireID("id", constants.ContextKeyBoardID, "invalid board id")
		boards := ui.Group("/boards")
		{
			boards.GET("", s.listBoards)
			boards.GET("/:id", requireBoard, s.showBoard)
			boards.POST("/:id/move", requireBoard, s.moveTask)
			boards.POST("/:id/refresh", requireBoard, s.refreshBoard)
		}

		ui.GET("/issues", s.listIssues)
		ui.GET("/tasks/:id", s.showTask)

		modal := ui.Group("/modal")
		{
			modal.GET("", s.modalState)
			modal.PUT("", s.modalUpdate)
			modal.POST("/open", s.modalOpen)
			modal.POST("/submit", s.modalSubmit)
			modal.POST("/close", s.modalClose)
		}
	}

	return r
}

// workspace returns the session's workspace. RequireWorkspace guarantees the id.
func (s *Server) workspace(c *gin.Context) *Workspace {
	id, _ := middleware.GetWorkspaceID(c)
	return s.workspaces.Get(id)
}

type uncached struct {
	API
}

func (uncached) Evict(context.Context) {}
