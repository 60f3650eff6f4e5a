package mirror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"TraceBoard/internal/character"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Server exposes the hub and the character catalogue over HTTP.
type Server struct {
	hub      *Hub
	provider *character.Provider
	port     int
	upgrader websocket.Upgrader
	router   *gin.Engine
}

func NewServer(hub *Hub, provider *character.Provider, port int) *Server {
	s := &Server{
		hub:      hub,
		provider: provider,
		port:     port,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.initializeGin()
	return s
}

func (s *Server) initializeGin() {
	gin.SetMode(gin.ReleaseMode)
	s.router = gin.New()
	s.router.Use(gin.Recovery())

	s.router.GET("/healthz", s.handleHealth)
	s.router.GET(wsPath, s.handleWebSocket)

	api := s.router.Group("/api")
	api.GET("/sources", s.handleSources)
	api.GET("/characters", s.handleCharacters)
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "viewers": s.hub.Count()})
}

func (s *Server) handleSources(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"active":  s.provider.Active(),
		"sources": s.provider.ListSources(),
	})
}

func (s *Server) handleCharacters(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"source":     s.provider.Active(),
		"characters": s.provider.All(),
	})
}

func (s *Server) handleWebSocket(ctx *gin.Context) {
	ws, err := s.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.Warnf("Websocket upgrade failed: %v", err)
		return
	}
	s.hub.Serve(ws)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Mirror server listening on port %d", s.port)
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

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("mirror shutdown: %w", err)
	}
	return nil
}
