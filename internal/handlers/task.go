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

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{
		service: service,
	}
}

// ListTasks returns every task with its board name and assignee
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.service.ListTasks(nil)
	if err != nil {
		c.Error(err)
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToTaskDTOs(tasks)})
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, _ := middleware.GetID(c, constants.ContextKeyTaskID)

	task, err := h.service.GetTask(taskID)
	if err != nil {
		h.respond(c, err, "Failed to fetch task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToTaskDetailsDTO(*task)})
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.TaskFieldsDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.service.CreateTask(toInput(req))
	if err != nil {
		h.respond(c, err, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": dto.CreatedDTO{ID: task.ID}})
}

// UpdateTask replaces the editable fields of a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, _ := middleware.GetID(c, constants.ContextKeyTaskID)

	var req dto.TaskFieldsDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := h.service.UpdateTask(taskID, toInput(req)); err != nil {
		h.respond(c, err, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully"})
}

// UpdateTaskStatus moves a task to another status column
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	taskID, _ := middleware.GetID(c, constants.ContextKeyTaskID)

	var req dto.StatusUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.UpdateStatus(taskID, req.Status); err != nil {
		h.respond(c, err, "Failed to update status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}

// respond maps service errors onto the {code, message} error body
func (h *TaskHandler) respond(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequest(c, err.Error())
	default:
		c.Error(err)
		apierrors.InternalError(c, fallback)
	}
}

func toInput(req dto.TaskFieldsDTO) services.TaskInput {
	return services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		BoardID:     req.BoardID,
		Priority:    req.Priority,
		Status:      req.Status,
	}
}
