// Package server отдает историю прогонов по HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"uiAutomation/internal/config"
	"uiAutomation/internal/database"
	"uiAutomation/internal/logger"
)

// RunStore - чтение истории прогонов.
type RunStore interface {
	ListRuns(ctx context.Context, status string, limit, offset int) ([]database.ScenarioRun, error)
	GetRun(ctx context.Context, runID string) (*database.ScenarioRun, error)
	FlakyScenarios(ctx context.Context, window int) ([]database.FlakyScenario, error)
}

type Server struct {
	cfg  *config.Cfg
	log  *logger.Zap
	repo RunStore
}

func New(cfg *config.Cfg, log *logger.Zap, repo RunStore) *Server {
	return &Server{
		cfg:  cfg,
		log:  log,
		repo: repo,
	}
}

// Handler собирает маршруты.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Next()
		s.log.Debug("HTTP",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
		)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Список прогонов: ?status=failed&limit=50&offset=0
	r.GET("/api/runs", func(c *gin.Context) {
		limit, err1 := queryInt(c, "limit", 50)
		offset, err2 := queryInt(c, "offset", 0)
		if err := errors.Join(err1, err2); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		runs, err := s.repo.ListRuns(c.Request.Context(), c.Query("status"), limit, offset)
		if err != nil {
			s.log.Error("db list runs", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		c.JSON(http.StatusOK, runs)
	})

	r.GET("/api/runs/:id", func(c *gin.Context) {
		run, err := s.repo.GetRun(c.Request.Context(), c.Param("id"))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if err != nil {
			s.log.Error("db get run", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		c.JSON(http.StatusOK, run)
	})

	r.GET("/api/flaky", func(c *gin.Context) {
		window, err := queryInt(c, "window", 100)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		flaky, err := s.repo.FlakyScenarios(c.Request.Context(), window)
		if err != nil {
			s.log.Error("db flaky", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		c.JSON(http.StatusOK, flaky)
	})

	return r
}

// Run слушает до отмены ctx, затем дает запросам 5 секунд на завершение.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(s.cfg.App.Host, s.cfg.App.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Сервер запущен", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("Сервер остановлен")
	return nil
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New(key + ": ожидалось неотрицательное число")
	}
	return n, nil
}
