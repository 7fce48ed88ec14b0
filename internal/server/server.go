// Package server exposes the engine, clipboard, history and inboxes over a
// local HTTP API.
package server

import (
	"context"
	"errors"
	"ferry/internal/clipboard"
	"ferry/internal/logger"
	"ferry/internal/relocate"
	"ferry/internal/repository"
	"ferry/internal/watcher"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	echo      *echo.Echo
	engine    *relocate.Engine
	board     *clipboard.Board
	inboxes   *watcher.Manager
	histRepo  *repository.HistoryRepository
	port      int
	startedAt time.Time
	stopCh    chan struct{}
}

func NewServer(engine *relocate.Engine, board *clipboard.Board, inboxes *watcher.Manager, port int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:      e,
		engine:    engine,
		board:     board,
		inboxes:   inboxes,
		histRepo:  repository.NewHistoryRepository(),
		port:      port,
		startedAt: time.Now(),
		stopCh:    make(chan struct{}, 1),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	// For the entire daemon
	s.echo.GET("/status", s.handleStatus)
	s.echo.POST("/stop", s.handleStop)

	// Relocation
	s.echo.POST("/merge", s.handleMerge)
	s.echo.POST("/clone", s.handleClone)
	s.echo.POST("/move", s.handleMove)
	s.echo.POST("/delete", s.handleDelete)

	// Clipboard
	g := s.echo.Group("/clipboard")
	g.GET("", s.handleListMarks)
	g.POST("", s.handleMark)
	g.DELETE("", s.handleUnmark)
	g.POST("/paste", s.handlePaste)

	// Inboxes
	i := s.echo.Group("/inboxes")
	i.GET("", s.handleListInboxes)
	i.POST("", s.handleAddInbox)
	i.DELETE("/:id", s.handleRemoveInbox)

	// History
	s.echo.GET("/history", s.handleHistory)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() {
	go func() {
		addr := "127.0.0.1:" + strconv.Itoa(s.port)
		logger.Log.Info("daemon server started",
			zap.String("addr", addr))

		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("daemon server error", zap.Error(err))
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	s.inboxes.StopAll()
	return s.echo.Shutdown(ctx)
}

func (s *Server) StopCh() <-chan struct{} {
	return s.stopCh
}

func (s *Server) handleStatus(c echo.Context) error {
	stats, err := s.histRepo.GetStats()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"started_at": s.startedAt,
		"force":      s.engine.ForceDefault(),
		"inboxes":    s.inboxes.Snapshots(),
		"history":    stats,
	})
}

func (s *Server) handleStop(c echo.Context) error {
	select {
	case s.stopCh <- struct{}{}:
	default:
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "stopping"})
}

func (s *Server) handleHistory(c echo.Context) error {
	n := 20
	if nStr := c.QueryParam("n"); nStr != "" {
		if parsed, err := strconv.Atoi(nStr); err == nil && parsed > 0 {
			n = parsed
		}
	}

	var (
		histories any
		err       error
	)
	if c.QueryParam("failed") == "true" {
		histories, err = s.histRepo.GetFailed()
	} else {
		histories, err = s.histRepo.GetRecent(n)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, histories)
}
