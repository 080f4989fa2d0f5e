package database

import (
	"fmt"

	"github.com/yukikurage/taskboard/internal/models"
	"gorm.io/gorm"
)

// Seed fills an empty database with a few boards, users and tasks. It does
// nothing when any board already exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Board{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count boards: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		users := []models.User{
			{FullName: "Ada Lovelace", Email: "ada@example.com", AvatarURL: "https://avatars.example.com/ada.png"},
			{FullName: "Grace Hopper", Email: "grace@example.com", AvatarURL: "https://avatars.example.com/grace.png"},
			{FullName: "Alan Turing", Email: "alan@example.com", AvatarURL: "https://avatars.example.com/alan.png"},
		}
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}

		boards := []models.Board{
			{Name: "Redesign", Description: "Marketing site redesign"},
			{Name: "Platform", Description: "Backend platform work"},
		}
		if err := tx.Create(&boards).Error; err != nil {
			return fmt.Errorf("failed to seed boards: %w", err)
		}

		tasks := []models.Task{
			{Title: "Draft wireframes", Status: models.TaskStatusDone, Priority: models.TaskPriorityMedium, BoardID: boards[0].ID, AssigneeID: users[0].ID},
			{Title: "Pick colour palette", Status: models.TaskStatusInProgress, Priority: models.TaskPriorityLow, BoardID: boards[0].ID, AssigneeID: users[1].ID},
			{Title: "Build landing page", Status: models.TaskStatusBacklog, Priority: models.TaskPriorityHigh, BoardID: boards[0].ID, AssigneeID: users[0].ID},
			{Title: "Upgrade database", Status: models.TaskStatusBacklog, Priority: models.TaskPriorityHigh, BoardID: boards[1].ID, AssigneeID: users[2].ID},
			{Title: "Add request tracing", Status: models.TaskStatusInProgress, Priority: models.TaskPriorityMedium, BoardID: boards[1].ID, AssigneeID: users[1].ID},
		}
		if err := tx.Create(&tasks).Error; err != nil {
			return fmt.Errorf("failed to seed tasks: %w", err)
		}
		return nil
	})
}
