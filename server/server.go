// Package server exposes the ER notation renderer over HTTP.
//
//	POST /v1/render/:format   body: ER notation, response: diagram source
//	POST /v1/model            body: ER notation, response: parsed model as JSON
//	GET  /v1/formats          supported output formats
//	GET  /healthz
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tliron/commonlog"

	"github.com/lucasefe/erd/parser"
)

func log() commonlog.Logger {
	return commonlog.GetLogger("erd.server")
}

// Server is the HTTP render service.
type Server struct {
	engine         *gin.Engine
	allowedOrigins []string
	errorPolicy    parser.ErrorPolicy
	maxBodyBytes   int64
}

// Option configures a Server.
type Option func(*Server)

// WithAllowedOrigins restricts CORS to the given origins. By default every
// origin is allowed.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// WithErrorPolicy sets how many syntax errors a failed request reports.
// Defaults to parser.AllErrors.
func WithErrorPolicy(policy parser.ErrorPolicy) Option {
	return func(s *Server) {
		s.errorPolicy = policy
	}
}

// WithMaxBodyBytes limits the request body size. Defaults to 1 MiB.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// New builds a Server with its routes registered.
func New(opts ...Option) *Server {
	s := &Server{
		errorPolicy:  parser.AllErrors,
		maxBodyBytes: 1 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), requestLogger(), cors.New(s.corsConfig()))
	s.registerRoutes()
	return s
}

func (s *Server) corsConfig() cors.Config {
	config := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(s.allowedOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = s.allowedOrigins
	}
	return config
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.health)

	v1 := s.engine.Group("/v1")
	{
		v1.GET("/formats", s.formats)
		v1.POST("/render/:format", s.render)
		v1.POST("/model", s.model)
	}
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log().Noticef("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log().Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log().Infof("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
