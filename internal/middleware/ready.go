package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReadinessChecker reports whether the persistence backend is reachable.
type ReadinessChecker interface {
	Ready() bool
}

// DBReady rejects requests with 503 while the persistence backend is not
// connected, so clients can tell "retry shortly" apart from "request is
// wrong". The check reads a cached flag and never dials the database.
func DBReady(checker ReadinessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !checker.Ready() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"message": "database not connected yet, please retry in a moment",
			})
			return
		}
		c.Next()
	}
}
