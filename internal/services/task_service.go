package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/taskboard/internal/models"
	"github.com/yukikurage/taskboard/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrBoardNotFound   = errors.New("board not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo  repository.TaskRepository
	boardRepo repository.BoardRepository
	userRepo  repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, boardRepo repository.BoardRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		boardRepo: boardRepo,
		userRepo:  userRepo,
	}
}

// TaskInput represents the editable fields of a task
type TaskInput struct {
	Title       string
	Description string
	AssigneeID  uint64
	BoardID     uint64
	Priority    models.TaskPriority
	Status      models.TaskStatus
}

// ListTasks returns every task, optionally restricted to one board
func (s *TaskService) ListTasks(boardID *uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{BoardID: boardID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task with its board and assignee
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Board", "Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask validates the input and stores a new task
func (s *TaskService) CreateTask(input TaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	if input.Status == "" {
		input.Status = models.TaskStatusBacklog
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if err := validateEnums(input.Status, input.Priority); err != nil {
		return nil, err
	}

	if err := s.ensureBoard(input.BoardID); err != nil {
		return nil, err
	}
	if err := s.ensureUser(input.AssigneeID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		BoardID:     input.BoardID,
		AssigneeID:  input.AssigneeID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask replaces the editable fields of an existing task. Empty
// status, priority, board or assignee keep their current values.
func (s *TaskService) UpdateTask(taskID uint64, input TaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Status == "" {
		input.Status = task.Status
	}
	if input.Priority == "" {
		input.Priority = task.Priority
	}
	if err := validateEnums(input.Status, input.Priority); err != nil {
		return nil, err
	}

	if input.BoardID != 0 && input.BoardID != task.BoardID {
		if err := s.ensureBoard(input.BoardID); err != nil {
			return nil, err
		}
		task.BoardID = input.BoardID
	}
	if input.AssigneeID != 0 && input.AssigneeID != task.AssigneeID {
		if err := s.ensureUser(input.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = input.AssigneeID
	}

	task.Title = input.Title
	task.Description = input.Description
	task.Status = input.Status
	task.Priority = input.Priority

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// UpdateStatus moves a task to another status column
func (s *TaskService) UpdateStatus(taskID uint64, status models.TaskStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	if err := s.taskRepo.UpdateStatus(taskID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to update status: %w", err)
	}

	return nil
}

func validateEnums(status models.TaskStatus, priority models.TaskPriority) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if !priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// ensureBoard verifies that a board exists
func (s *TaskService) ensureBoard(boardID uint64) error {
	if boardID == 0 {
		return ErrBoardNotFound
	}
	if _, err := s.boardRepo.FindByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("failed to find board: %w", err)
	}
	return nil
}

// ensureUser verifies that a user exists
func (s *TaskService) ensureUser(userID uint64) error {
	if userID == 0 {
		return ErrUserNotFound
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	return nil
}
