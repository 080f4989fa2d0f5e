package dto

import (
	"github.com/yukikurage/taskboard/internal/models"
)

// AssigneeDTO is the embedded user snapshot carried by a task
type AssigneeDTO struct {
	ID        uint64 `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
}

// TaskDTO is the canonical task record exchanged with the tracker API
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	BoardID     uint64              `json:"boardId"`
	BoardName   string              `json:"boardName,omitempty"`
	AssigneeID  uint64              `json:"assigneeId"`
	Assignee    AssigneeDTO         `json:"assignee"`
}

// TaskDetailsDTO is the single-task view returned by GET /tasks/{id}
type TaskDetailsDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	BoardID     uint64              `json:"boardId,omitempty"`
	BoardName   string              `json:"boardName"`
	Assignee    AssigneeDTO         `json:"assignee"`
}

// TaskFieldsDTO is the body of create and update requests
type TaskFieldsDTO struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	AssigneeID  uint64              `json:"assigneeId"`
	BoardID     uint64              `json:"boardId"`
	Priority    models.TaskPriority `json:"priority,omitempty"`
	Status      models.TaskStatus   `json:"status,omitempty"`
}

// StatusUpdateDTO is the body of PUT /tasks/updateStatus/{id}
type StatusUpdateDTO struct {
	Status models.TaskStatus `json:"status"`
}

// CreatedDTO carries the server-assigned id of a created task
type CreatedDTO struct {
	ID uint64 `json:"id"`
}

// Normalize fills AssigneeID from the embedded assignee when the server omitted it.
func (t *TaskDTO) Normalize() {
	if t.AssigneeID == 0 {
		t.AssigneeID = t.Assignee.ID
	}
}

// AsTask returns the list-shaped record of a task detail view
func (d TaskDetailsDTO) AsTask() TaskDTO {
	return TaskDTO{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		Priority:    d.Priority,
		BoardID:     d.BoardID,
		BoardName:   d.BoardName,
		AssigneeID:  d.Assignee.ID,
		Assignee:    d.Assignee,
	}
}

// FieldsOf returns the editable fields of a task
func FieldsOf(t TaskDTO) TaskFieldsDTO {
	return TaskFieldsDTO{
		Title:       t.Title,
		Description: t.Description,
		AssigneeID:  t.AssigneeID,
		BoardID:     t.BoardID,
		Priority:    t.Priority,
		Status:      t.Status,
	}
}

// Conversion functions

// ToAssigneeDTO converts a User model to AssigneeDTO
func ToAssigneeDTO(user models.User) AssigneeDTO {
	return AssigneeDTO{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		BoardID:     task.BoardID,
		AssigneeID:  task.AssigneeID,
	}

	// Include board name if preloaded
	if task.Board.ID != 0 {
		dto.BoardName = task.Board.Name
	}

	// Include assignee if preloaded
	if task.Assignee.ID != 0 {
		dto.Assignee = ToAssigneeDTO(task.Assignee)
	}

	return dto
}

// ToTaskDetailsDTO converts a Task model to TaskDetailsDTO
func ToTaskDetailsDTO(task models.Task) TaskDetailsDTO {
	t := ToTaskDTO(task)
	return TaskDetailsDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		BoardID:     t.BoardID,
		BoardName:   t.BoardName,
		Assignee:    t.Assignee,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
