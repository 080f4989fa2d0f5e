package dto

import (
	"github.com/yukikurage/taskboard/internal/models"
)

// BoardDTO represents a board in API responses
type BoardDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TaskCount   int64  `json:"taskCount"`
}

// ToBoardDTO converts a Board model and its task count to BoardDTO
func ToBoardDTO(board models.Board, taskCount int64) BoardDTO {
	return BoardDTO{
		ID:          board.ID,
		Name:        board.Name,
		Description: board.Description,
		TaskCount:   taskCount,
	}
}

// ToAssigneeDTOs converts a slice of users
func ToAssigneeDTOs(users []models.User) []AssigneeDTO {
	items := make([]AssigneeDTO, len(users))
	for i, user := range users {
		items[i] = ToAssigneeDTO(user)
	}
	return items
}
