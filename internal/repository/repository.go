package repository

import (
	"github.com/yukikurage/taskboard/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter with board and assignee preloaded
	List(filter TaskFilter) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// UpdateStatus changes only the status column of a task
	UpdateStatus(id uint64, status models.TaskStatus) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	BoardID *uint64
	Status  *models.TaskStatus
}

// BoardWithCount is a board and the number of live tasks on it
type BoardWithCount struct {
	Board     models.Board
	TaskCount int64
}

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	// Create creates a new board
	Create(board *models.Board) error

	// FindByID finds a board by ID
	FindByID(id uint64) (*models.Board, error)

	// ListWithCounts lists all boards with their task counts
	ListWithCounts() ([]BoardWithCount, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// List lists all users
	List() ([]models.User, error)
}
