package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard/internal/board"
	"github.com/yukikurage/taskboard/internal/dto"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
	"github.com/yukikurage/taskboard/internal/models"
)

// issueQuery is the filter form of the issues page
type issueQuery struct {
	Status   string `form:"status"`
	Board    uint64 `form:"board"`
	Assignee uint64 `form:"assignee"`
	Q        string `form:"q"`
}

func (q issueQuery) filter() board.Filter {
	return board.Filter{
		Status:     models.TaskStatus(q.Status),
		BoardID:    q.Board,
		AssigneeID: q.Assignee,
		Query:      q.Q,
	}
}

func (s *Server) listIssues(c *gin.Context) {
	var query issueQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s.errorPage(c, apierrors.InvalidInput("invalid filter"))
		return
	}
	if query.Status != "" && !models.TaskStatus(query.Status).Valid() {
		s.errorPage(c, apierrors.InvalidInput("invalid status filter"))
		return
	}

	ctx := c.Request.Context()
	tasks, err := s.api.ListTasks(ctx)
	if err != nil {
		s.errorPage(c, err)
		return
	}

	// The filter selects are secondary data and degrade to empty lists.
	boards, _ := s.boards.ListBoards(ctx)
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		s.log.WithError(err).Warn("failed to load users for issue filters")
		users = []dto.AssigneeDTO{}
	}

	c.HTML(http.StatusOK, "issues", gin.H{
		"Title":    "Issues",
		"Tasks":    query.filter().Apply(tasks),
		"Total":    len(tasks),
		"Query":    query,
		"Statuses": models.Statuses,
		"Boards":   boards,
		"Users":    users,
		"Alerts":   s.workspace(c).DrainAlerts(),
	})
}

func (s *Server) showTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		s.errorPage(c, apierrors.InvalidInput("invalid task id"))
		return
	}

	task, err := s.api.GetTask(c.Request.Context(), id)
	if err != nil {
		s.errorPage(c, err)
		return
	}

	c.HTML(http.StatusOK, "task", gin.H{
		"Title":  task.Title,
		"Task":   task,
		"Alerts": s.workspace(c).DrainAlerts(),
	})
}

// errorPage renders err with the status its kind maps to
func (s *Server) errorPage(c *gin.Context, err error) {
	status := apierrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).WithField("path", c.Request.URL.Path).Error("page failed")
	}

	c.HTML(status, "error", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": err.Error(),
	})
}
