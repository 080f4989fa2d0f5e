package constants

// Session
const (
	SessionName       = "taskboard_session"
	SessionMaxAgeDays = 7
	MaxWorkspaces     = 10000
)

// Context and session keys
const (
	ContextKeyWorkspaceID = "workspace_id"
	ContextKeyTaskID      = "task_id"
	ContextKeyBoardID     = "board_id"
	ContextKeyRequestID   = "request_id"
)

// HeaderRequestID is echoed back on every response of the web UI
const HeaderRequestID = "X-Request-ID"
