package board

import (
	"strings"

	"github.com/yukikurage/taskboard/internal/dto"
	"github.com/yukikurage/taskboard/internal/models"
)

// Filter selects tasks on the issues list. Zero-valued fields match anything.
type Filter struct {
	Status     models.TaskStatus
	BoardID    uint64
	AssigneeID uint64
	// Query matches the title or the assignee's name, case-insensitively
	Query string
}

// Match reports whether task passes every set field
func (f Filter) Match(task dto.TaskDTO) bool {
	if f.Status != "" && task.Status != f.Status {
		return false
	}
	if f.BoardID != 0 && task.BoardID != f.BoardID {
		return false
	}
	if f.AssigneeID != 0 && task.AssigneeID != f.AssigneeID {
		return false
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(task.Title), query) ||
		strings.Contains(strings.ToLower(task.Assignee.FullName), query)
}

// Apply returns the tasks that match, in input order
func (f Filter) Apply(tasks []dto.TaskDTO) []dto.TaskDTO {
	out := make([]dto.TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		if f.Match(task) {
			out = append(out, task)
		}
	}
	return out
}
