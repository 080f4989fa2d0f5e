package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/taskboard/internal/constants"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
)

// RequireWorkspace makes sure the session carries a workspace id, minting one
// on the first request of a browser session
func RequireWorkspace() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id, _ := session.Get(constants.ContextKeyWorkspaceID).(string)

		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			session.Set(constants.ContextKeyWorkspaceID, id)
			if err := session.Save(); err != nil {
				apierrors.InternalError(c, "failed to save session")
				c.Abort()
				return
			}
		}

		c.Set(constants.ContextKeyWorkspaceID, id)
		c.Next()
	}
}

// GetWorkspaceID retrieves the current workspace id from context
func GetWorkspaceID(c *gin.Context) (string, bool) {
	id, exists := c.Get(constants.ContextKeyWorkspaceID)
	if !exists {
		return "", false
	}
	s, ok := id.(string)
	return s, ok && s != ""
}
