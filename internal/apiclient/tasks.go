package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yukikurage/taskboard/internal/dto"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
	"github.com/yukikurage/taskboard/internal/models"
)

// ListTasks fetches every task. Unlike ListBoardTasks, failures propagate.
func (c *Client) ListTasks(ctx context.Context) ([]dto.TaskDTO, error) {
	resp, err := c.do(ctx, http.MethodGet, "/tasks", nil)
	if err != nil {
		return nil, apierrors.ServerError("failed to load tasks", err)
	}
	if !resp.ok() {
		e := apierrors.ServerError("failed to load tasks", nil)
		e.Status = resp.status
		return nil, e
	}

	tasks, err := decodeList[dto.TaskDTO](resp.body, listEnvelope)
	if err != nil {
		return nil, err
	}
	normalize(tasks)
	return tasks, nil
}

// GetTask fetches one task. 400 and 404 map to InvalidInput and NotFound.
func (c *Client) GetTask(ctx context.Context, id uint64) (dto.TaskDetailsDTO, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil)
	if err != nil {
		return dto.TaskDetailsDTO{}, apierrors.ServerError("server error", err)
	}
	if !resp.ok() {
		return dto.TaskDetailsDTO{}, apierrors.FromStatus(resp.status,
			"invalid task id",
			"task not found",
			"server error")
	}

	return decodeObject[dto.TaskDetailsDTO](resp.body, detailEnvelope)
}

// CreateTask creates a task and returns its server-assigned id. Required
// fields must be validated by the caller.
func (c *Client) CreateTask(ctx context.Context, fields dto.TaskFieldsDTO) (uint64, error) {
	resp, err := c.do(ctx, http.MethodPost, "/tasks/create", fields)
	if err != nil {
		return 0, apierrors.ServerError("server error while creating task", err)
	}
	if !resp.ok() {
		return 0, apierrors.FromStatus(resp.status,
			"invalid data for task creation",
			"board or user not found",
			"server error while creating task")
	}

	created, err := decodeObject[dto.CreatedDTO](resp.body, []string{"data"})
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

// UpdateTask replaces the editable fields of a task
func (c *Client) UpdateTask(ctx context.Context, id uint64, fields dto.TaskFieldsDTO) (string, error) {
	resp, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/update/%d", id), fields)
	if err != nil {
		return "", apierrors.ServerError("server error while updating task", err)
	}
	if !resp.ok() {
		return "", apierrors.FromStatus(resp.status,
			"invalid data for task update",
			"task not found",
			"server error while updating task")
	}
	return confirmation(resp.body), nil
}

// UpdateTaskStatus changes only the status of a task
func (c *Client) UpdateTaskStatus(ctx context.Context, id uint64, status models.TaskStatus) (string, error) {
	if !status.Valid() {
		return "", apierrors.InvalidInput(fmt.Sprintf("invalid status %q", status))
	}

	resp, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/updateStatus/%d", id), dto.StatusUpdateDTO{Status: status})
	if err != nil {
		return "", apierrors.ServerError("server error while updating status", err)
	}
	if !resp.ok() {
		return "", apierrors.FromStatus(resp.status,
			"invalid data",
			"task not found",
			"server error while updating status")
	}
	return confirmation(resp.body), nil
}
