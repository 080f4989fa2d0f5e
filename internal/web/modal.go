package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard/internal/dto"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
	"github.com/yukikurage/taskboard/internal/form"
)

type openRequest struct {
	Mode    form.Mode `json:"mode" binding:"required,oneof=create edit"`
	BoardID uint64    `json:"boardId"`
	TaskID  uint64    `json:"taskId"`
}

type modalResponse struct {
	Modal   form.Snapshot `json:"modal"`
	Options *form.Options `json:"options,omitempty"`
	ID      uint64        `json:"id,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// modalState returns the modal, with select options while it is open
func (s *Server) modalState(c *gin.Context) {
	ws := s.workspace(c)
	snap := ws.Form.Snapshot()
	resp := modalResponse{Modal: snap}

	if snap.State != form.StateClosed {
		opts, err := ws.Form.Options(c.Request.Context())
		if err != nil {
			s.log.WithError(err).Warn("failed to load modal options")
		} else {
			resp.Options = &opts
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) modalOpen(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ws := s.workspace(c)
	var err error
	switch req.Mode {
	case form.ModeCreate:
		err = ws.Form.OpenCreate(req.BoardID)
	case form.ModeEdit:
		if req.TaskID == 0 {
			apierrors.BadRequest(c, "taskId is required to edit")
			return
		}
		var task dto.TaskDetailsDTO
		task, err = s.api.GetTask(c.Request.Context(), req.TaskID)
		if err != nil {
			apierrors.Respond(c, err)
			return
		}
		err = ws.Form.OpenEdit(editable(task, req.BoardID), req.BoardID != 0)
	}
	if err != nil {
		s.formError(c, err)
		return
	}

	c.JSON(http.StatusOK, modalResponse{Modal: ws.Form.Snapshot()})
}

func (s *Server) modalUpdate(c *gin.Context) {
	var values form.Values
	if err := c.ShouldBindJSON(&values); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ws := s.workspace(c)
	if err := ws.Form.Update(values); err != nil {
		s.formError(c, err)
		return
	}
	c.JSON(http.StatusOK, modalResponse{Modal: ws.Form.Snapshot()})
}

func (s *Server) modalSubmit(c *gin.Context) {
	ws := s.workspace(c)
	id, err := ws.Form.Submit(c.Request.Context())
	if err != nil && id == 0 {
		s.formError(c, err)
		return
	}

	resp := modalResponse{Modal: ws.Form.Snapshot(), ID: id}
	if err != nil {
		// Saved, but the affected collection could not be refetched.
		s.log.WithError(err).WithField("task", id).Warn("refresh after save failed")
		resp.Error = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) modalClose(c *gin.Context) {
	ws := s.workspace(c)
	if err := ws.Form.Close(); err != nil {
		s.formError(c, err)
		return
	}
	c.JSON(http.StatusOK, modalResponse{Modal: ws.Form.Snapshot()})
}

// formError maps state errors to 409 and everything else to 422 with the
// message the modal shows
func (s *Server) formError(c *gin.Context, err error) {
	if errors.Is(err, form.ErrSubmitting) || errors.Is(err, form.ErrNotOpen) {
		apierrors.Conflict(c, err.Error())
		return
	}
	apierrors.UnprocessableEntity(c, err.Error())
}

// editable turns the task detail view into the record the modal edits.
// fallbackBoard covers servers that omit the board id from the detail view.
func editable(details dto.TaskDetailsDTO, fallbackBoard uint64) dto.TaskDTO {
	task := details.AsTask()
	if task.BoardID == 0 {
		task.BoardID = fallbackBoard
	}
	return task
}
