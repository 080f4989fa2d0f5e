package repository

import (
	"github.com/yukikurage/taskboard/internal/models"
	"gorm.io/gorm"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// Create creates a new board
func (r *GormBoardRepository) Create(board *models.Board) error {
	return r.db.Create(board).Error
}

// FindByID finds a board by ID
func (r *GormBoardRepository) FindByID(id uint64) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// ListWithCounts lists all boards with their task counts
func (r *GormBoardRepository) ListWithCounts() ([]BoardWithCount, error) {
	var boards []models.Board
	if err := r.db.Order("id ASC").Find(&boards).Error; err != nil {
		return nil, err
	}

	type countRow struct {
		BoardID uint64
		Count   int64
	}
	var rows []countRow
	if err := r.db.Model(&models.Task{}).
		Select("board_id, COUNT(*) AS count").
		Group("board_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		counts[row.BoardID] = row.Count
	}

	out := make([]BoardWithCount, len(boards))
	for i, board := range boards {
		out[i] = BoardWithCount{Board: board, TaskCount: counts[board.ID]}
	}
	return out, nil
}
