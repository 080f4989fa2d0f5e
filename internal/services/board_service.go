package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/taskboard/internal/models"
	"github.com/yukikurage/taskboard/internal/repository"
	"gorm.io/gorm"
)

// BoardService handles board and user lookups
type BoardService struct {
	boardRepo repository.BoardRepository
	taskRepo  repository.TaskRepository
	userRepo  repository.UserRepository
}

// NewBoardService creates a new BoardService
func NewBoardService(boardRepo repository.BoardRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository) *BoardService {
	return &BoardService{
		boardRepo: boardRepo,
		taskRepo:  taskRepo,
		userRepo:  userRepo,
	}
}

// ListBoards returns every board with its task count
func (s *BoardService) ListBoards() ([]repository.BoardWithCount, error) {
	boards, err := s.boardRepo.ListWithCounts()
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// BoardTasks returns the tasks of one board in id order
func (s *BoardService) BoardTasks(boardID uint64) ([]models.Task, error) {
	if _, err := s.boardRepo.FindByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	tasks, err := s.taskRepo.List(repository.TaskFilter{BoardID: &boardID})
	if err != nil {
		return nil, fmt.Errorf("failed to list board tasks: %w", err)
	}
	return tasks, nil
}

// ListUsers returns every user that can be assigned a task
func (s *BoardService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
