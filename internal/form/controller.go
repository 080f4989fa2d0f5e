// Package form implements the create/edit task modal as an explicit state
// machine: Closed -> Open(Create|Edit) -> Submitting -> Closed.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/yukikurage/taskboard/internal/dto"
	"github.com/yukikurage/taskboard/internal/models"
)

type State string

const (
	StateClosed     State = "closed"
	StateOpen       State = "open"
	StateSubmitting State = "submitting"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

var (
	ErrNotOpen     = errors.New("form is not open")
	ErrSubmitting  = errors.New("form is being submitted")
	ErrTitleEmpty  = errors.New("task title must not be empty")
	ErrNoAssignee  = errors.New("select an assignee")
	ErrNoBoard     = errors.New("select a board")
	ErrInvalidEnum = errors.New("invalid priority or status")
	ErrBoardless   = errors.New("task has no board to edit on")
)

// Backend is what the controller submits to and loads options from
type Backend interface {
	CreateTask(ctx context.Context, fields dto.TaskFieldsDTO) (uint64, error)
	UpdateTask(ctx context.Context, id uint64, fields dto.TaskFieldsDTO) (string, error)
	ListUsers(ctx context.Context) ([]dto.AssigneeDTO, error)
	ListBoards(ctx context.Context) ([]dto.BoardDTO, error)
}

// Saved is called after a successful submit with the saved task's id and
// board, so the caller can refetch the affected collection.
type Saved func(ctx context.Context, taskID, boardID uint64) error

// Values is the editable draft
type Values struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	AssigneeID  uint64              `json:"assigneeId"`
	BoardID     uint64              `json:"boardId"`
	Priority    models.TaskPriority `json:"priority"`
	Status      models.TaskStatus   `json:"status"`
}

// Snapshot is a read-only view of the controller
type Snapshot struct {
	State        State  `json:"state"`
	Mode         Mode   `json:"mode,omitempty"`
	TaskID       uint64 `json:"taskId,omitempty"`
	BoardContext bool   `json:"boardContext"`
	Values       Values `json:"values"`
	Error        string `json:"error,omitempty"`
}

// Options are the choices offered by the modal's selects
type Options struct {
	Assignees []dto.AssigneeDTO `json:"assignees"`
	Boards    []dto.BoardDTO    `json:"boards"`
}

// Controller owns the modal state
type Controller struct {
	backend Backend
	onSaved Saved

	mu            sync.Mutex
	state         State
	mode          Mode
	taskID        uint64
	boardContext  bool
	originalBoard uint64
	values        Values
	err           string
}

// NewController creates a closed controller
func NewController(backend Backend, onSaved Saved) *Controller {
	return &Controller{
		backend: backend,
		onSaved: onSaved,
		state:   StateClosed,
	}
}

func defaultValues() Values {
	return Values{
		Priority: models.TaskPriorityMedium,
		Status:   models.TaskStatusBacklog,
	}
}

// OpenCreate opens an empty form. A non-zero boardID opens it in board
// context with that board preselected.
func (c *Controller) OpenCreate(boardID uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSubmitting {
		return ErrSubmitting
	}
	c.state = StateOpen
	c.mode = ModeCreate
	c.taskID = 0
	c.boardContext = boardID != 0
	c.originalBoard = 0
	c.values = defaultValues()
	c.values.BoardID = boardID
	c.err = ""
	return nil
}

// OpenEdit opens the form pre-filled from task. The task's board is kept on
// submit whatever the draft says, so a task without a board is refused and
// the form is left as it was.
func (c *Controller) OpenEdit(task dto.TaskDTO, boardContext bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSubmitting {
		return ErrSubmitting
	}
	if task.BoardID == 0 {
		return ErrBoardless
	}
	task.Normalize()

	values := Values{
		Title:       task.Title,
		Description: task.Description,
		AssigneeID:  task.AssigneeID,
		BoardID:     task.BoardID,
		Priority:    task.Priority,
		Status:      task.Status,
	}
	if values.Priority == "" {
		values.Priority = models.TaskPriorityMedium
	}
	if values.Status == "" {
		values.Status = models.TaskStatusBacklog
	}

	c.state = StateOpen
	c.mode = ModeEdit
	c.taskID = task.ID
	c.boardContext = boardContext
	c.originalBoard = task.BoardID
	c.values = values
	c.err = ""
	return nil
}

// Update replaces the draft
func (c *Controller) Update(values Values) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateOpen:
	case StateSubmitting:
		return ErrSubmitting
	default:
		return ErrNotOpen
	}
	c.values = values
	return nil
}

// Close discards the draft. It is refused while a submit is in flight.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSubmitting {
		return ErrSubmitting
	}
	c.reset()
	return nil
}

func (c *Controller) reset() {
	c.state = StateClosed
	c.mode = ""
	c.taskID = 0
	c.boardContext = false
	c.originalBoard = 0
	c.values = Values{}
	c.err = ""
}

// Snapshot returns the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		State:        c.state,
		Mode:         c.mode,
		TaskID:       c.taskID,
		BoardContext: c.boardContext,
		Values:       c.values,
		Error:        c.err,
	}
}

// Submit validates the draft and sends it. On failure the form stays open
// with the error recorded; on success it closes and the saved hook runs.
func (c *Controller) Submit(ctx context.Context) (uint64, error) {
	c.mu.Lock()
	switch c.state {
	case StateOpen:
	case StateSubmitting:
		c.mu.Unlock()
		return 0, ErrSubmitting
	default:
		c.mu.Unlock()
		return 0, ErrNotOpen
	}

	fields, err := c.fieldsLocked()
	if err != nil {
		c.err = err.Error()
		c.mu.Unlock()
		return 0, err
	}

	mode, taskID := c.mode, c.taskID
	c.state = StateSubmitting
	c.err = ""
	c.mu.Unlock()

	id, err := c.send(ctx, mode, taskID, fields)

	c.mu.Lock()
	if err != nil {
		c.state = StateOpen
		c.err = err.Error()
		c.mu.Unlock()
		return 0, err
	}
	c.reset()
	c.mu.Unlock()

	if c.onSaved != nil {
		if err := c.onSaved(ctx, id, fields.BoardID); err != nil {
			return id, fmt.Errorf("task saved but refresh failed: %w", err)
		}
	}
	return id, nil
}

func (c *Controller) send(ctx context.Context, mode Mode, taskID uint64, fields dto.TaskFieldsDTO) (uint64, error) {
	if mode == ModeEdit {
		if _, err := c.backend.UpdateTask(ctx, taskID, fields); err != nil {
			return 0, err
		}
		return taskID, nil
	}
	return c.backend.CreateTask(ctx, fields)
}

func (c *Controller) fieldsLocked() (dto.TaskFieldsDTO, error) {
	v := c.values
	if strings.TrimSpace(v.Title) == "" {
		return dto.TaskFieldsDTO{}, ErrTitleEmpty
	}
	if v.AssigneeID == 0 {
		return dto.TaskFieldsDTO{}, ErrNoAssignee
	}

	boardID := v.BoardID
	if c.mode == ModeEdit {
		boardID = c.originalBoard
	}
	if boardID == 0 {
		return dto.TaskFieldsDTO{}, ErrNoBoard
	}

	if v.Priority == "" {
		v.Priority = models.TaskPriorityMedium
	}
	if v.Status == "" {
		v.Status = models.TaskStatusBacklog
	}
	if !v.Priority.Valid() || !v.Status.Valid() {
		return dto.TaskFieldsDTO{}, ErrInvalidEnum
	}

	return dto.TaskFieldsDTO{
		Title:       v.Title,
		Description: v.Description,
		AssigneeID:  v.AssigneeID,
		BoardID:     boardID,
		Priority:    v.Priority,
		Status:      v.Status,
	}, nil
}

// Options loads the assignee list, and the board list unless the form is
// in board context.
func (c *Controller) Options(ctx context.Context) (Options, error) {
	c.mu.Lock()
	boardContext := c.boardContext
	c.mu.Unlock()

	opts := Options{Assignees: []dto.AssigneeDTO{}, Boards: []dto.BoardDTO{}}

	users, err := c.backend.ListUsers(ctx)
	if err != nil {
		return opts, err
	}
	opts.Assignees = users

	if !boardContext {
		boards, err := c.backend.ListBoards(ctx)
		if err != nil {
			return opts, err
		}
		opts.Boards = boards
	}
	return opts, nil
}
