package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/taskboard/internal/dto"
)

// ListBoards fetches all boards. Boards are secondary data: an unrecognized
// envelope, a failed request or an error status all yield an empty list.
func (c *Client) ListBoards(ctx context.Context) ([]dto.BoardDTO, error) {
	resp, err := c.do(ctx, http.MethodGet, "/boards", nil)
	if err != nil {
		c.log.WithError(err).Warn("failed to load boards")
		return []dto.BoardDTO{}, nil
	}
	if !resp.ok() {
		c.log.WithField("status", resp.status).Warn("failed to load boards")
		return []dto.BoardDTO{}, nil
	}

	boards, err := decodeList[dto.BoardDTO](resp.body, boardEnvelope)
	if err != nil {
		c.log.WithError(err).Warn("unrecognized boards payload")
		return []dto.BoardDTO{}, nil
	}
	return boards, nil
}

// ListBoardTasks fetches the tasks of one board. A payload that is not a list
// is an error; a failed request is logged and yields no tasks.
func (c *Client) ListBoardTasks(ctx context.Context, boardID uint64) ([]dto.TaskDTO, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/boards/%d", boardID), nil)
	if err != nil {
		c.log.WithError(err).WithField("board_id", boardID).Error("failed to load board tasks")
		return []dto.TaskDTO{}, nil
	}
	if !resp.ok() {
		c.log.WithFields(logrus.Fields{
			"board_id": boardID,
			"status":   resp.status,
		}).Error("failed to load board tasks")
		return []dto.TaskDTO{}, nil
	}

	tasks, err := decodeList[dto.TaskDTO](resp.body, taskEnvelope)
	if err != nil {
		return nil, fmt.Errorf("board %d tasks: %w", boardID, err)
	}
	normalize(tasks)
	return tasks, nil
}

func normalize(tasks []dto.TaskDTO) {
	for i := range tasks {
		tasks[i].Normalize()
	}
}
