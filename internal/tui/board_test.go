package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskboard/internal/dto"
	"github.com/yukikurage/taskboard/internal/models"
	"github.com/yukikurage/taskboard/internal/reconciler"
)

// fakeRemote serves a fixed board and can fail status updates
type fakeRemote struct {
	tasks     []dto.TaskDTO
	updateErr error
	updates   int
}

func (f *fakeRemote) ListBoardTasks(context.Context, uint64) ([]dto.TaskDTO, error) {
	return append([]dto.TaskDTO(nil), f.tasks...), nil
}

func (f *fakeRemote) UpdateTaskStatus(_ context.Context, id uint64, status models.TaskStatus) (string, error) {
	f.updates++
	if f.updateErr != nil {
		return "", f.updateErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Status = status
		}
	}
	return "ok", nil
}

func newModel(t *testing.T, remote *fakeRemote) BoardModel {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	alerts := &Alerts{}
	rec := reconciler.New(1, remote, alerts, log)
	m := NewBoardModel(context.Background(), "Core", rec, alerts)
	return run(t, m, m.Init())
}

// run executes cmd synchronously and feeds its message back to the model
func run(t *testing.T, m BoardModel, cmd tea.Cmd) BoardModel {
	t.Helper()
	if cmd == nil {
		return m
	}
	model, _ := m.Update(cmd())
	return model.(BoardModel)
}

func key(t *testing.T, m BoardModel, keys ...string) (BoardModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var model tea.Model
		model, cmd = m.Update(msg)
		m = model.(BoardModel)
	}
	return m, cmd
}

func sampleRemote() *fakeRemote {
	return &fakeRemote{tasks: []dto.TaskDTO{
		{ID: 1, Title: "Alpha", Status: models.TaskStatusBacklog, Priority: models.TaskPriorityHigh},
		{ID: 2, Title: "Beta", Status: models.TaskStatusBacklog},
		{ID: 3, Title: "Gamma", Status: models.TaskStatusDone},
	}}
}

func TestBoardModel_LoadsOnInit(t *testing.T) {
	m := newModel(t, sampleRemote())

	assert.False(t, m.busy)
	assert.Len(t, m.cols[models.TaskStatusBacklog], 2)
	view := m.View()
	assert.Contains(t, view, "Alpha")
	assert.Contains(t, view, "Done (1)")
}

func TestBoardModel_MoveAcrossColumns(t *testing.T) {
	remote := sampleRemote()
	m := newModel(t, remote)

	// Pick up Beta, carry it two columns right to the top of Done, drop.
	m, _ = key(t, m, "j", " ", "l", "l", "k")
	require.NotNil(t, m.grabbed)
	assert.Contains(t, m.View(), "drop here")

	m, cmd := key(t, m, " ")
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	m = run(t, m, cmd)

	assert.Equal(t, string(reconciler.OutcomeCommitted), m.status)
	assert.Equal(t, []uint64{2, 3}, taskIDs(m.cols[models.TaskStatusDone]))
	assert.Equal(t, 1, remote.updates)
}

func TestBoardModel_FailedMoveShowsAlert(t *testing.T) {
	remote := sampleRemote()
	remote.updateErr = errors.New("server error while updating status")
	m := newModel(t, remote)

	m, _ = key(t, m, " ", "l")
	m, cmd := key(t, m, "enter")
	m = run(t, m, cmd)

	assert.True(t, strings.HasPrefix(m.status, string(reconciler.OutcomeRolledBack)))
	assert.Equal(t, []string{"status update failed: server error while updating status"}, m.shown)
	assert.Contains(t, m.View(), "! status update failed")
	assert.Equal(t, []uint64{1, 2}, taskIDs(m.cols[models.TaskStatusBacklog]))
}

func TestBoardModel_CancelAndBounds(t *testing.T) {
	m := newModel(t, sampleRemote())

	m, _ = key(t, m, "h", "k", "j", "j", "j")
	assert.Equal(t, 0, m.cur.column)
	assert.Equal(t, 1, m.cur.row)

	m, _ = key(t, m, " ", "j", "j")
	assert.Equal(t, 2, m.cur.row, "drop slot may sit past the last card")
	m, _ = key(t, m, "esc")
	assert.Nil(t, m.grabbed)
	assert.Equal(t, 1, m.cur.row)

	// Nothing to pick up in the empty column.
	m, _ = key(t, m, "l", " ")
	assert.Nil(t, m.grabbed)
}

func TestBoardModel_Quit(t *testing.T) {
	m := newModel(t, sampleRemote())
	_, cmd := key(t, m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRenderColumns(t *testing.T) {
	out := RenderColumns(map[models.TaskStatus][]dto.TaskDTO{
		models.TaskStatusBacklog:    {{ID: 7, Title: "Seven", Assignee: dto.AssigneeDTO{FullName: "Ada"}}},
		models.TaskStatusInProgress: {},
		models.TaskStatusDone:       {},
	})
	assert.Contains(t, out, "#7 Seven")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "In progress (0)")
	assert.Contains(t, out, "no tasks")
}

func taskIDs(tasks []dto.TaskDTO) []uint64 {
	out := []uint64{}
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}
