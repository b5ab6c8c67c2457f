package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"lettergen/database"
	"lettergen/internal/config"
	"lettergen/letters"
	"lettergen/server/middleware"
)

// Server HTTP-сервер генератора претензионных писем.
type Server struct {
	cfg        *config.Config
	db         *database.LettersDB
	logger     *slog.Logger
	engine     *gin.Engine
	httpServer *http.Server
	aggregator *letters.Aggregator

	// now подменяется в тестах, чтобы расчет просрочки был воспроизводим
	now func() time.Time
}

// NewServer создает сервер и регистрирует маршруты.
func NewServer(cfg *config.Config, db *database.LettersDB, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	s := &Server{
		cfg:        cfg,
		db:         db,
		logger:     logger,
		engine:     engine,
		aggregator: letters.NewAggregator(logger),
		now:        time.Now,
	}

	engine.Use(gin.Recovery())
	engine.Use(middleware.GinRequestIDMiddleware())
	engine.Use(middleware.GinCORSMiddleware())
	engine.Use(middleware.GinGzipMiddleware())
	engine.Use(middleware.GinLoggerMiddleware(logger))

	engine.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	s.registerRoutes()

	s.httpServer = &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api/letters")

	// Загрузка и обработка файлов ограничены по частоте
	limited := api.Group("")
	limited.Use(middleware.GinRateLimitMiddleware(s.cfg.RateLimitPerSec, s.cfg.RateLimitBurst))
	limited.POST("/upload", s.HandleUpload)
	limited.POST("/process", s.HandleProcess)

	api.GET("/status", s.HandleStatus)
	api.GET("/history", s.HandleHistory)
	api.GET("/download/:filename", s.HandleDownload)
	api.GET("/download_all", s.HandleDownloadAll)

	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Engine возвращает gin-движок (для httptest в тестах).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start запускает HTTP-сервер и блокируется до его остановки.
func (s *Server) Start() error {
	if err := os.MkdirAll(s.cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("failed to create uploads directory: %w", err)
	}
	if err := os.MkdirAll(s.cfg.GeneratedDir, 0755); err != nil {
		return fmt.Errorf("failed to create generated directory: %w", err)
	}

	s.logger.Info("Server starting", "port", s.cfg.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown останавливает сервер, дожидаясь активных запросов.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
