package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard/internal/constants"
	"github.com/yukikurage/taskboard/internal/dto"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
	"github.com/yukikurage/taskboard/internal/middleware"
	"github.com/yukikurage/taskboard/internal/services"
)

type BoardHandler struct {
	service *services.BoardService
}

func NewBoardHandler(service *services.BoardService) *BoardHandler {
	return &BoardHandler{service: service}
}

// ListBoards returns every board with its task count
func (h *BoardHandler) ListBoards(c *gin.Context) {
	boards, err := h.service.ListBoards()
	if err != nil {
		c.Error(err)
		apierrors.InternalError(c, "Failed to fetch boards")
		return
	}

	items := make([]dto.BoardDTO, len(boards))
	for i, b := range boards {
		items[i] = dto.ToBoardDTO(b.Board, b.TaskCount)
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// GetBoardTasks returns the tasks of one board
func (h *BoardHandler) GetBoardTasks(c *gin.Context) {
	boardID, _ := middleware.GetID(c, constants.ContextKeyBoardID)

	tasks, err := h.service.BoardTasks(boardID)
	if err != nil {
		if errors.Is(err, services.ErrBoardNotFound) {
			apierrors.NotFound(c, "Board not found")
			return
		}
		c.Error(err)
		apierrors.InternalError(c, "Failed to fetch board tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToTaskDTOs(tasks)})
}

// ListUsers returns every user that can be assigned a task
func (h *BoardHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers()
	if err != nil {
		c.Error(err)
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToAssigneeDTOs(users)})
}
