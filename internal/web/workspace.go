package web

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/taskboard/internal/constants"
	"github.com/yukikurage/taskboard/internal/dto"
	"github.com/yukikurage/taskboard/internal/form"
	"github.com/yukikurage/taskboard/internal/reconciler"
)

// Workspace is the per-session UI state: one reconciler per visited board,
// the task modal, and alerts waiting to be shown
type Workspace struct {
	ID   string
	Form *form.Controller

	api API
	log logrus.FieldLogger

	mu     sync.Mutex
	boards map[uint64]*reconciler.Reconciler
	alerts []string
}

func newWorkspace(id string, api API, boards BoardCache, log logrus.FieldLogger) *Workspace {
	ws := &Workspace{
		ID:     id,
		api:    api,
		log:    log.WithField("workspace", id),
		boards: make(map[uint64]*reconciler.Reconciler),
	}
	ws.Form = form.NewController(formBackend{API: api, boards: boards}, func(ctx context.Context, taskID, boardID uint64) error {
		boards.Evict(ctx)
		rec, ok := ws.loaded(boardID)
		if !ok {
			return nil
		}
		return rec.Load(ctx)
	})
	return ws
}

// Notify queues an alert for the next response
func (ws *Workspace) Notify(message string) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.alerts = append(ws.alerts, message)
}

// DrainAlerts returns and clears the queued alerts
func (ws *Workspace) DrainAlerts() []string {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	alerts := ws.alerts
	ws.alerts = nil
	if alerts == nil {
		return []string{}
	}
	return alerts
}

// Board returns the reconciler for boardID, creating it on first use.
// A new reconciler has no tasks until it is loaded.
func (ws *Workspace) Board(boardID uint64) *reconciler.Reconciler {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	rec, ok := ws.boards[boardID]
	if !ok {
		rec = reconciler.New(boardID, ws.api, ws, ws.log)
		ws.boards[boardID] = rec
	}
	return rec
}

func (ws *Workspace) loaded(boardID uint64) (*reconciler.Reconciler, bool) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	rec, ok := ws.boards[boardID]
	return rec, ok
}

const sweepsPerIdle = 10

// Registry holds the workspaces of live sessions. A workspace idle for longer
// than the idle timeout is dropped, and when the registry is full the least
// recently used one makes room. A dropped session starts over with an empty
// workspace on its next request.
type Registry struct {
	mu         sync.Mutex
	workspaces map[string]*entry
	create     func(id string) *Workspace

	idle      time.Duration
	max       int
	now       func() time.Time
	lastSweep time.Time
}

type entry struct {
	ws       *Workspace
	lastSeen time.Time
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithIdleTimeout sets how long an unused workspace is kept. Zero keeps them
// until the registry is full.
func WithIdleTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) { r.idle = d }
}

// WithMaxWorkspaces bounds the number of workspaces held at once
func WithMaxWorkspaces(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.max = n
		}
	}
}

func withClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

// NewRegistry creates an empty registry whose workspaces talk to api
func NewRegistry(api API, boards BoardCache, log logrus.FieldLogger, opts ...RegistryOption) *Registry {
	r := &Registry{
		workspaces: make(map[string]*entry),
		create: func(id string) *Workspace {
			return newWorkspace(id, api, boards, log)
		},
		idle: constants.SessionMaxAgeDays * 24 * time.Hour,
		max:  constants.MaxWorkspaces,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the workspace for id, creating it if needed
func (r *Registry) Get(id string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)

	e, ok := r.workspaces[id]
	if !ok {
		if len(r.workspaces) >= r.max {
			r.evictOldestLocked()
		}
		e = &entry{ws: r.create(id)}
		r.workspaces[id] = e
	}
	e.lastSeen = now
	return e.ws
}

// sweepLocked drops idle workspaces, at most once per sweep interval
func (r *Registry) sweepLocked(now time.Time) {
	if r.idle <= 0 || now.Sub(r.lastSweep) < r.idle/sweepsPerIdle {
		return
	}
	r.lastSweep = now
	for id, e := range r.workspaces {
		if now.Sub(e.lastSeen) > r.idle {
			delete(r.workspaces, id)
		}
	}
}

func (r *Registry) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range r.workspaces {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	delete(r.workspaces, oldestID)
}

// Len returns the number of live workspaces
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

// formBackend routes the modal's board list through the cache
type formBackend struct {
	API
	boards BoardCache
}

func (b formBackend) ListBoards(ctx context.Context) ([]dto.BoardDTO, error) {
	return b.boards.ListBoards(ctx)
}
