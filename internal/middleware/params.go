package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
)

// RequireID parses the named path parameter as a positive integer id and
// stores it in the context under key
func RequireID(param, key, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, message)
			c.Abort()
			return
		}

		c.Set(key, id)
		c.Next()
	}
}

// GetID retrieves an id stored by RequireID
func GetID(c *gin.Context, key string) (uint64, bool) {
	id, exists := c.Get(key)
	if !exists {
		return 0, false
	}
	v, ok := id.(uint64)
	return v, ok
}
