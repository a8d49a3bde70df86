package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/talentsearch/config"
	"github.com/ncobase/talentsearch/logging/logger"
)

// Server is the HTTP server.
type Server struct {
	cfg    *config.Server
	engine *gin.Engine
	logger *logger.Logger
}

// New builds the gin engine for h.
func New(cfg *config.Server, h *Handler, l *logger.Logger) *Server {
	if l == nil {
		l = logger.StdLogger()
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), Trace(), Logger(l))
	engine.HandleMethodNotAllowed = true
	h.RegisterRoutes(engine)

	return &Server{cfg: cfg, engine: engine, logger: l}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done, then shuts down within the configured
// timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof(ctx, "listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(context.Background(), "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
