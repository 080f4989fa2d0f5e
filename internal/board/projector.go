// Package board derives the column and list views of a task collection.
package board

import (
	"github.com/yukikurage/taskboard/internal/dto"
	"github.com/yukikurage/taskboard/internal/models"
)

// Columns maps every status to its tasks in display order
type Columns map[models.TaskStatus][]dto.TaskDTO

// Project partitions tasks by status, keeping their relative order. Every
// status in models.Statuses has an entry, possibly empty. Tasks with an
// unknown status are left out.
func Project(tasks []dto.TaskDTO) Columns {
	cols := make(Columns, len(models.Statuses))
	for _, status := range models.Statuses {
		cols[status] = []dto.TaskDTO{}
	}

	for _, task := range tasks {
		if column, ok := cols[task.Status]; ok {
			cols[task.Status] = append(column, task)
		}
	}
	return cols
}

// Index returns the status and column-relative position of a task
func (c Columns) Index(taskID uint64) (models.TaskStatus, int, bool) {
	for _, status := range models.Statuses {
		for i, task := range c[status] {
			if task.ID == taskID {
				return status, i, true
			}
		}
	}
	return "", 0, false
}

// Len returns the number of tasks across all columns
func (c Columns) Len() int {
	n := 0
	for _, column := range c {
		n += len(column)
	}
	return n
}
