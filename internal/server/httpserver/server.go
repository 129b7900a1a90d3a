// Package httpserver exposes the backend's JSON API over gin: cookie
// sessions under /auth and per-user lookup history under /history.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/geotracker/internal/logging"
	"github.com/dmitrijs2005/geotracker/internal/server/models"
	"github.com/dmitrijs2005/geotracker/internal/server/services"
	"github.com/gin-gonic/gin"
)

// shutdownTimeout bounds the graceful stop after ctx is cancelled.
const shutdownTimeout = 5 * time.Second

// UserService is the account surface the handlers need.
type UserService interface {
	Signup(ctx context.Context, in services.SignupInput) (*services.Session, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	SessionValidity() time.Duration
}

// HistoryService is the history surface the handlers need.
type HistoryService interface {
	List(ctx context.Context, userID int64) ([]*models.HistoryEntry, error)
	Create(ctx context.Context, userID int64, entry *models.HistoryEntry) (*models.HistoryEntry, error)
	DeleteMany(ctx context.Context, userID int64, ids []int64) (int64, error)
}

type HTTPServer struct {
	address      string
	users        UserService
	history      HistoryService
	logger       logging.Logger
	cookieSecure bool
	router       *gin.Engine
}

func NewHTTPServer(address string, l logging.Logger, us UserService, hs HistoryService, cookieSecure bool) *HTTPServer {
	s := &HTTPServer{
		address:      address,
		users:        us,
		history:      hs,
		logger:       l.With("module", "http_server"),
		cookieSecure: cookieSecure,
	}
	s.router = s.routes()
	return s
}

// Handler returns the configured router.
func (s *HTTPServer) Handler() http.Handler { return s.router }

func (s *HTTPServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/auth")
	authGroup.POST("/signup", s.Signup)
	authGroup.POST("/login", s.Login)
	authGroup.POST("/logout", s.Logout)
	authGroup.GET("/me", s.requireSession(), s.Me)

	historyGroup := r.Group("/history", s.requireSession())
	historyGroup.GET("", s.ListHistory)
	historyGroup.POST("", s.CreateHistory)
	historyGroup.POST("/bulk-delete", s.DeleteHistory)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
