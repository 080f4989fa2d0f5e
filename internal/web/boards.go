package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard/internal/board"
	"github.com/yukikurage/taskboard/internal/constants"
	"github.com/yukikurage/taskboard/internal/dto"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
	"github.com/yukikurage/taskboard/internal/middleware"
	"github.com/yukikurage/taskboard/internal/models"
	"github.com/yukikurage/taskboard/internal/reconciler"
)

// boardView is the JSON shape of a board's columns
type boardView struct {
	BoardID uint64        `json:"boardId"`
	Columns board.Columns `json:"columns"`
	Alerts  []string      `json:"alerts"`
}

type moveResponse struct {
	Outcome reconciler.Outcome `json:"outcome"`
	Columns board.Columns      `json:"columns"`
	Alerts  []string           `json:"alerts"`
	Error   string             `json:"error,omitempty"`
}

func (s *Server) listBoards(c *gin.Context) {
	boards, err := s.boards.ListBoards(c.Request.Context())
	if err != nil {
		s.errorPage(c, err)
		return
	}

	c.HTML(http.StatusOK, "boards", gin.H{
		"Title":  "Boards",
		"Boards": boards,
		"Alerts": s.workspace(c).DrainAlerts(),
	})
}

// showBoard refetches the board on every visit, like mounting the page
func (s *Server) showBoard(c *gin.Context) {
	boardID, _ := middleware.GetID(c, constants.ContextKeyBoardID)
	ws := s.workspace(c)
	rec := ws.Board(boardID)

	if err := rec.Load(c.Request.Context()); err != nil {
		s.log.WithError(err).WithField("board", boardID).Error("failed to load board")
		if c.Query("format") == "json" {
			apierrors.Respond(c, err)
			return
		}
		s.errorPage(c, err)
		return
	}

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, boardView{
			BoardID: boardID,
			Columns: rec.Columns(),
			Alerts:  ws.DrainAlerts(),
		})
		return
	}

	c.HTML(http.StatusOK, "board", gin.H{
		"Title":    s.boardName(c, boardID),
		"BoardID":  boardID,
		"Statuses": models.Statuses,
		"Columns":  rec.Columns(),
		"Alerts":   ws.DrainAlerts(),
	})
}

func (s *Server) moveTask(c *gin.Context) {
	boardID, _ := middleware.GetID(c, constants.ContextKeyBoardID)

	var req reconciler.Move
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if !req.From.Status.Valid() || !req.To.Status.Valid() {
		apierrors.BadRequest(c, "Invalid status")
		return
	}

	ws := s.workspace(c)
	rec := ws.Board(boardID)
	outcome, err := rec.Move(c.Request.Context(), req)

	resp := moveResponse{
		Outcome: outcome,
		Columns: rec.Columns(),
		Alerts:  ws.DrainAlerts(),
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) refreshBoard(c *gin.Context) {
	boardID, _ := middleware.GetID(c, constants.ContextKeyBoardID)
	ws := s.workspace(c)
	rec := ws.Board(boardID)

	if err := rec.Load(c.Request.Context()); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, boardView{
		BoardID: boardID,
		Columns: rec.Columns(),
		Alerts:  ws.DrainAlerts(),
	})
}

// boardName looks the board up in the cached list. The list fails soft, so
// an unknown board just gets a generic title.
func (s *Server) boardName(c *gin.Context, boardID uint64) string {
	boards, err := s.boards.ListBoards(c.Request.Context())
	if err == nil {
		if b, ok := findBoard(boards, boardID); ok {
			return b.Name
		}
	}
	return fmt.Sprintf("Board #%d", boardID)
}

func findBoard(boards []dto.BoardDTO, id uint64) (dto.BoardDTO, bool) {
	for _, b := range boards {
		if b.ID == id {
			return b, true
		}
	}
	return dto.BoardDTO{}, false
}
