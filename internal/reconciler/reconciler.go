// Package reconciler keeps a board's local task list consistent with the
// server across drag-and-drop moves.
//
// A move to another column is sent to the server first. Local state changes
// only after the update succeeds; when it fails the user is notified and the
// board is refetched, replacing local state wholesale.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/taskboard/internal/board"
	"github.com/yukikurage/taskboard/internal/dto"
	"github.com/yukikurage/taskboard/internal/models"
)

// Remote is the part of the repository client the reconciler needs
type Remote interface {
	ListBoardTasks(ctx context.Context, boardID uint64) ([]dto.TaskDTO, error)
	UpdateTaskStatus(ctx context.Context, id uint64, status models.TaskStatus) (string, error)
}

// Notifier delivers a blocking, alert-style message to the user
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Position is a column and a column-relative index
type Position struct {
	Status models.TaskStatus `json:"status"`
	Index  int               `json:"index"`
}

// Move describes a drag-and-drop gesture
type Move struct {
	TaskID uint64   `json:"taskId"`
	From   Position `json:"from"`
	To     Position `json:"to"`
}

// Outcome reports what Move did
type Outcome string

const (
	OutcomeNoop        Outcome = "noop"
	OutcomeUnknownTask Outcome = "unknown_task"
	OutcomeReordered   Outcome = "reordered"
	OutcomeCommitted   Outcome = "committed"
	OutcomeRolledBack  Outcome = "rolled_back"
)

// Reconciler owns the local task list of one board
type Reconciler struct {
	boardID uint64
	remote  Remote
	notify  Notifier
	log     logrus.FieldLogger

	// mu guards tasks. It is never held across a remote call.
	mu    sync.Mutex
	tasks []dto.TaskDTO
}

// New creates a Reconciler for boardID with an empty task list
func New(boardID uint64, remote Remote, notify Notifier, log logrus.FieldLogger) *Reconciler {
	if notify == nil {
		notify = NotifierFunc(func(string) {})
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Reconciler{
		boardID: boardID,
		remote:  remote,
		notify:  notify,
		log:     log.WithField("board_id", boardID),
		tasks:   []dto.TaskDTO{},
	}
}

// BoardID returns the board this reconciler tracks
func (r *Reconciler) BoardID() uint64 {
	return r.boardID
}

// Load fetches the board's tasks and replaces local state with them
func (r *Reconciler) Load(ctx context.Context) error {
	tasks, err := r.remote.ListBoardTasks(ctx, r.boardID)
	if err != nil {
		return fmt.Errorf("failed to load board %d: %w", r.boardID, err)
	}

	r.mu.Lock()
	r.tasks = append([]dto.TaskDTO(nil), tasks...)
	r.mu.Unlock()
	return nil
}

// Tasks returns a copy of the local task list
func (r *Reconciler) Tasks() []dto.TaskDTO {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]dto.TaskDTO{}, r.tasks...)
}

// Columns projects the local task list into status columns
func (r *Reconciler) Columns() board.Columns {
	return board.Project(r.Tasks())
}

// Move applies a drag-and-drop gesture. The task's current position comes
// from local state; m.From only short-circuits a drop onto the drag origin.
// Same-column moves stay local and are not persisted. On a failed status
// update the returned error is the remote one, and local state equals
// whatever the refetch returned.
func (r *Reconciler) Move(ctx context.Context, m Move) (Outcome, error) {
	if m.From.Status == m.To.Status && m.From.Index == m.To.Index {
		return OutcomeNoop, nil
	}
	if outcome, done := r.moveLocally(m); done {
		return outcome, nil
	}

	if _, err := r.remote.UpdateTaskStatus(ctx, m.TaskID, m.To.Status); err != nil {
		return OutcomeRolledBack, r.rollback(ctx, m, err)
	}

	// The task may have vanished in a refetch while the update was in flight.
	if !r.apply(m) {
		return OutcomeUnknownTask, nil
	}
	return OutcomeCommitted, nil
}

func (r *Reconciler) rollback(ctx context.Context, m Move, cause error) error {
	r.log.WithError(cause).WithFields(logrus.Fields{
		"task_id": m.TaskID,
		"status":  m.To.Status,
	}).Warn("status update failed, reloading board")

	r.notify.Notify("status update failed: " + cause.Error())

	if err := r.Load(ctx); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

// moveLocally settles the moves that need no remote call: unknown tasks, drops
// onto the task's current position and same-column reorders. The task's
// position comes from local state, not from m.From. It reports false when the
// move changes the task's status.
func (r *Reconciler) moveLocally(m Move) (Outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	from, ok := positionOf(r.tasks, m.TaskID)
	if !ok {
		r.log.WithField("task_id", m.TaskID).Debug("move for unknown task ignored")
		return OutcomeUnknownTask, true
	}
	if from != m.From {
		r.log.WithFields(logrus.Fields{
			"task_id": m.TaskID,
			"claimed": m.From,
			"actual":  from,
		}).Debug("move origin differs from local state")
	}
	if from.Status != m.To.Status {
		return "", false
	}

	if from.Index == clampIndex(m.To.Index, columnLen(r.tasks, from.Status)-1) {
		return OutcomeNoop, true
	}
	r.tasks, _ = Reinsert(r.tasks, m.TaskID, m.To)
	return OutcomeReordered, true
}

// positionOf finds the task's column and column-relative index
func positionOf(tasks []dto.TaskDTO, taskID uint64) (Position, bool) {
	at := indexOf(tasks, taskID)
	if at < 0 {
		return Position{}, false
	}
	status := tasks[at].Status
	idx := 0
	for _, task := range tasks[:at] {
		if task.Status == status {
			idx++
		}
	}
	return Position{Status: status, Index: idx}, true
}

func columnLen(tasks []dto.TaskDTO, status models.TaskStatus) int {
	n := 0
	for _, task := range tasks {
		if task.Status == status {
			n++
		}
	}
	return n
}

// apply moves the task into the target column under the lock. It reports
// false when the task is not in the local list.
func (r *Reconciler) apply(m Move) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, ok := Reinsert(r.tasks, m.TaskID, m.To)
	if !ok {
		return false
	}
	r.tasks = next
	return true
}

// Reinsert removes the task from tasks, sets its status to to.Status and
// inserts it at to.Index among the tasks already in that column. The result is
// every other task in order followed by the target column. An index past the
// end of the column appends. tasks is not modified.
func Reinsert(tasks []dto.TaskDTO, taskID uint64, to Position) ([]dto.TaskDTO, bool) {
	at := indexOf(tasks, taskID)
	if at < 0 {
		return tasks, false
	}

	moved := tasks[at]
	moved.Status = to.Status

	others := make([]dto.TaskDTO, 0, len(tasks))
	target := make([]dto.TaskDTO, 0, len(tasks))
	for i, task := range tasks {
		switch {
		case i == at:
		case task.Status == to.Status:
			target = append(target, task)
		default:
			others = append(others, task)
		}
	}

	idx := clampIndex(to.Index, len(target))
	target = append(target[:idx], append([]dto.TaskDTO{moved}, target[idx:]...)...)

	return append(others, target...), true
}

func clampIndex(idx, max int) int {
	if idx > max {
		idx = max
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

func indexOf(tasks []dto.TaskDTO, taskID uint64) int {
	for i, task := range tasks {
		if task.ID == taskID {
			return i
		}
	}
	return -1
}
