package apiclient

import (
	"context"
	"net/http"

	"github.com/yukikurage/taskboard/internal/dto"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
)

// ListUsers fetches the users a task can be assigned to
func (c *Client) ListUsers(ctx context.Context) ([]dto.AssigneeDTO, error) {
	resp, err := c.do(ctx, http.MethodGet, "/users", nil)
	if err != nil {
		c.log.WithError(err).Error("failed to load users")
		return nil, apierrors.ServerError("failed to load users", err)
	}

	switch {
	case resp.ok():
	case resp.status == http.StatusNotFound:
		return nil, apierrors.NotFoundError("users not found")
	case resp.status >= http.StatusInternalServerError:
		e := apierrors.ServerError("internal server error", nil)
		e.Status = resp.status
		return nil, e
	default:
		e := apierrors.ServerError("failed to load users", nil)
		e.Status = resp.status
		return nil, e
	}

	return decodeList[dto.AssigneeDTO](resp.body, userEnvelope)
}
