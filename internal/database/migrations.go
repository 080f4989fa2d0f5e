package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/taskboard/internal/models"
	"gorm.io/gorm"
)

// EnsureIndexes adds the composite indexes board views filter on
func EnsureIndexes(db *gorm.DB, log logrus.FieldLogger) error {
	indexes := []struct {
		name    string
		columns string
	}{
		{"idx_tasks_board_status", "board_id, status"},
		{"idx_tasks_assignee_status", "assignee_id, status"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(&models.Task{}, idx.name) {
			log.WithField("index", idx.name).Debug("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON tasks (%s)", idx.name, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.WithField("index", idx.name).Info("Created index")
	}

	return nil
}
