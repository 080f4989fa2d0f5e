// Package tui is a terminal rendition of a board: move cards between columns
// with the keyboard, backed by the same reconciler the web UI uses.
package tui

import (
	"context"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yukikurage/taskboard/internal/board"
	"github.com/yukikurage/taskboard/internal/models"
	"github.com/yukikurage/taskboard/internal/reconciler"
)

// Alerts collects reconciler notifications until the model shows them
type Alerts struct {
	mu       sync.Mutex
	messages []string
}

// Notify implements reconciler.Notifier
func (a *Alerts) Notify(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, message)
}

func (a *Alerts) drain() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := a.messages
	a.messages = nil
	return out
}

type loadedMsg struct{ err error }

type movedMsg struct {
	outcome reconciler.Outcome
	err     error
}

// grab is a card picked up for a move
type grab struct {
	taskID uint64
	from   reconciler.Position
}

// BoardModel is the bubbletea model of one board
type BoardModel struct {
	ctx    context.Context
	title  string
	rec    *reconciler.Reconciler
	alerts *Alerts

	cols    board.Columns
	cur     cursor
	grabbed *grab
	busy    bool
	status  string
	shown   []string
}

// NewBoardModel creates a model over rec. alerts must be the Notifier rec
// was created with.
func NewBoardModel(ctx context.Context, title string, rec *reconciler.Reconciler, alerts *Alerts) BoardModel {
	return BoardModel{
		ctx:    ctx,
		title:  title,
		rec:    rec,
		alerts: alerts,
		cols:   rec.Columns(),
		busy:   true,
		status: "loading…",
	}
}

func (m BoardModel) Init() tea.Cmd {
	return m.load()
}

func (m BoardModel) load() tea.Cmd {
	rec, ctx := m.rec, m.ctx
	return func() tea.Msg {
		return loadedMsg{err: rec.Load(ctx)}
	}
}

func (m BoardModel) move(mv reconciler.Move) tea.Cmd {
	rec, ctx := m.rec, m.ctx
	return func() tea.Msg {
		outcome, err := rec.Move(ctx, mv)
		return movedMsg{outcome: outcome, err: err}
	}
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.busy = false
		m.cols = m.rec.Columns()
		m.clamp()
		if msg.err != nil {
			m.status = "load failed: " + msg.err.Error()
		} else {
			m.status = ""
		}
		return m, nil

	case movedMsg:
		m.busy = false
		m.cols = m.rec.Columns()
		m.shown = m.alerts.drain()
		m.status = string(msg.outcome)
		if msg.err != nil {
			m.status += ": " + msg.err.Error()
		}
		m.clamp()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m BoardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		if m.cur.column > 0 {
			m.cur.column--
		}
		m.clamp()

	case "right", "l":
		if m.cur.column < len(models.Statuses)-1 {
			m.cur.column++
		}
		m.clamp()

	case "up", "k":
		if m.cur.row > 0 {
			m.cur.row--
		}

	case "down", "j":
		m.cur.row++
		m.clamp()

	case " ", "enter":
		if m.grabbed == nil {
			task, ok := m.selected()
			if !ok {
				return m, nil
			}
			m.grabbed = &grab{taskID: task, from: m.position()}
			m.cur.drop = true
			m.shown = nil
			m.status = "moving… (space to drop, esc to cancel)"
			return m, nil
		}
		mv := reconciler.Move{TaskID: m.grabbed.taskID, From: m.grabbed.from, To: m.position()}
		m.grabbed = nil
		m.cur.drop = false
		m.busy = true
		m.status = "saving…"
		return m, m.move(mv)

	case "esc":
		m.grabbed = nil
		m.cur.drop = false
		m.status = ""
		m.clamp()

	case "r":
		m.busy = true
		m.status = "refreshing…"
		return m, m.load()
	}

	return m, nil
}

func (m BoardModel) currentStatus() models.TaskStatus {
	return models.Statuses[m.cur.column]
}

func (m BoardModel) position() reconciler.Position {
	return reconciler.Position{Status: m.currentStatus(), Index: m.cur.row}
}

func (m BoardModel) selected() (uint64, bool) {
	column := m.cols[m.currentStatus()]
	if m.cur.row < 0 || m.cur.row >= len(column) {
		return 0, false
	}
	return column[m.cur.row].ID, true
}

// clamp keeps the cursor on a card, or on a drop slot while moving. A drop
// slot may sit one past the last card.
func (m *BoardModel) clamp() {
	limit := len(m.cols[m.currentStatus()]) - 1
	if m.cur.drop {
		limit++
	}
	if m.cur.row > limit {
		m.cur.row = limit
	}
	if m.cur.row < 0 {
		m.cur.row = 0
	}
}

func (m BoardModel) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(m.title))
	s.WriteString("\n\n")
	s.WriteString(renderColumns(m.cols, m.cur))
	s.WriteString("\n")

	for _, alert := range m.shown {
		s.WriteString(alertStyle.Render("! " + alert))
		s.WriteString("\n")
	}
	if m.status != "" {
		s.WriteString(m.status)
		s.WriteString("\n")
	}
	s.WriteString(helpStyle.Render("\n(h/l columns, j/k cards, space to pick up and drop, r refresh, q quit)\n"))
	return s.String()
}

// Run starts the interactive board
func Run(ctx context.Context, title string, rec *reconciler.Reconciler, alerts *Alerts) error {
	p := tea.NewProgram(NewBoardModel(ctx, title, rec, alerts), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
