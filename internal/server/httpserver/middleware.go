package httpserver

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/geotracker/internal/common"
	"github.com/dmitrijs2005/geotracker/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-ID"

	ctxRequestID = "request_id"
	ctxUser      = "user"
)

// requestID tags every request with an id, reusing the caller's when given.
func (s *HTTPServer) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func (s *HTTPServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"request_id", c.GetString(ctxRequestID),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// requireSession resolves the session cookie to a user or answers 401.
func (s *HTTPServer) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(common.SessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": MsgNotAuthenticated})
			return
		}

		user, err := s.users.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !isUnauthorized(err) {
				s.logger.Error(c.Request.Context(), "session lookup failed",
					"request_id", c.GetString(ctxRequestID), "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": MsgInternal})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": MsgNotAuthenticated})
			return
		}

		c.Set(ctxUser, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}
