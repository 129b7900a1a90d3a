package httpserver

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/geotracker/internal/common"
	"github.com/dmitrijs2005/geotracker/internal/server/services"
	"github.com/gin-gonic/gin"
)

// Response messages.
const (
	MsgSignedUp         = "User registered successfully"
	MsgLoggedIn         = "Login successful"
	MsgInvalidLogin     = "Invalid email or password"
	MsgUserExists       = "User already exists"
	MsgNotAuthenticated = "Not authenticated"
	MsgInvalidBody      = "Invalid request body"
	MsgInternal         = "Internal server error"
)

func (s *HTTPServer) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": MsgInvalidBody})
		return
	}

	sess, err := s.users.Signup(c.Request.Context(), services.SignupInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"message": MsgUserExists})
			return
		}
		s.writeError(c, err)
		return
	}

	s.setSessionCookie(c, sess.Token)
	s.logger.Info(c.Request.Context(), "Registered", "user_id", sess.User.ID)
	c.JSON(http.StatusCreated, gin.H{"message": MsgSignedUp, "user": toUserDTO(sess.User)})
}

func (s *HTTPServer) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": MsgInvalidBody})
		return
	}

	sess, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if isUnauthorized(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": MsgInvalidLogin})
			return
		}
		s.writeError(c, err)
		return
	}

	s.setSessionCookie(c, sess.Token)
	s.logger.Info(c.Request.Context(), "Logged in", "user_id", sess.User.ID)
	c.JSON(http.StatusOK, gin.H{"message": MsgLoggedIn, "user": toUserDTO(sess.User)})
}

// Logout always succeeds: the cookie is expired whether or not it was valid.
func (s *HTTPServer) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookieName, "", -1, "/", "", s.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{})
}

func (s *HTTPServer) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": toUserDTO(currentUser(c))})
}

func (s *HTTPServer) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookieName, token, int(s.users.SessionValidity().Seconds()), "/", "", s.cookieSecure, true)
}

// writeError answers validation failures with 400 and their message, and
// everything else with a logged 500.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"message": ve.Message})
		return
	}
	s.logger.Error(c.Request.Context(), "request failed",
		"request_id", c.GetString(ctxRequestID), "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": MsgInternal})
}

func isUnauthorized(err error) bool {
	return errors.Is(err, common.ErrUnauthorized)
}
