// Package httpapi serves StreakService as a JSON HTTP API for browsers,
// using the same implementation the gRPC server registers.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/api"
	"github.com/dmitrijs2005/streakkeeper/internal/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Authenticator resolves a bearer token to a user id.
type Authenticator interface {
	Authenticate(accessToken string) (string, error)
}

type Server struct {
	address     string
	svc         api.StreakServiceServer
	auth        Authenticator
	logger      logging.Logger
	corsOrigins []string
}

func NewServer(address string, l logging.Logger, svc api.StreakServiceServer, a Authenticator, corsOrigins []string) *Server {
	return &Server{
		address:     address,
		svc:         svc,
		auth:        a,
		logger:      l.With("module", "http_server"),
		corsOrigins: corsOrigins,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), cors.New(s.corsConfig()))

	r.GET("/healthz", s.healthz)

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
		authGroup.POST("/refresh", s.refresh)
	}

	r.GET("/api/leaderboard", s.getLeaderboard)

	habits := r.Group("/api/habits")
	habits.Use(s.bearerAuth())
	{
		habits.GET("", s.listHabits)
		habits.POST("", s.createHabit)
		habits.PATCH("/:id", s.renameHabit)
		habits.DELETE("/:id", s.deleteHabit)
		habits.POST("/:id/check-in", s.checkIn)
	}

	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range s.corsOrigins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = s.corsOrigins
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	}
	return cfg
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve handles requests on lis until ctx is done, then drains in-flight
// requests for up to five seconds. It returns once draining is over.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping HTTP server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error(ctx, "HTTP shutdown", "error", err)
			}
		case <-stopped:
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	err := srv.Serve(lis)
	close(stopped)
	<-drained

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			s.logger.Warn(c.Request.Context(), "request failed", args...)
			return
		}
		s.logger.Debug(c.Request.Context(), "request", args...)
	}
}
