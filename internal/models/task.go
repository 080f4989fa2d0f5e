package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "Backlog"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusDone       TaskStatus = "Done"
)

// Statuses lists every task status in board column order.
var Statuses = []TaskStatus{TaskStatusBacklog, TaskStatusInProgress, TaskStatusDone}

// Valid reports whether s is one of the enumerated statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusBacklog, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// Valid reports whether p is one of the enumerated priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      TaskStatus     `gorm:"type:varchar(20);not null;default:'Backlog';index" json:"status"`
	Priority    TaskPriority   `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	BoardID     uint64         `gorm:"not null;index" json:"board_id"`
	AssigneeID  uint64         `gorm:"not null;index" json:"assignee_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Board    Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	Assignee User  `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}
