package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "notesum/docs"
	"notesum/internal/ai"
	"notesum/internal/config"
	"notesum/internal/handler"
	"notesum/internal/server/middleware"
	"notesum/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Server HTTP 服务器
type Server struct {
	cfg          *config.Config
	engine       *gin.Engine
	summarizer   ai.Summarizer
	summarizeSvc *service.SummarizeService
}

// New 创建服务器实例，按配置选择摘要后端
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	summarizer, err := ai.NewSummarizer(&cfg.Summarizer)
	if err != nil {
		return nil, fmt.Errorf("failed to create summarizer: %w", err)
	}
	return NewWithSummarizer(ctx, cfg, summarizer), nil
}

// NewWithSummarizer 使用指定后端创建服务器实例
func NewWithSummarizer(ctx context.Context, cfg *config.Config, summarizer ai.Summarizer) *Server {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	// 后端初始化失败不阻止启动，/ready 返回 503
	if err := summarizer.Start(ctx); err != nil {
		log.Warn().Err(err).Str("backend", summarizer.Name()).Msg("failed to start summarizer, continuing without it")
	} else {
		log.Info().Str("backend", summarizer.Name()).Msg("summarizer started")
	}

	srv := &Server{
		cfg:          cfg,
		engine:       gin.New(),
		summarizer:   summarizer,
		summarizeSvc: service.NewSummarizeService(summarizer, cfg.Summarizer.Bounds),
	}

	srv.setupRoutes()

	return srv
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	// 健康检查
	healthHandler := handler.NewHealthHandler(s.summarizeSvc)
	s.engine.GET("/", healthHandler.Root)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 摘要接口
	summarizeHandler := handler.NewSummarizeHandler(s.summarizeSvc)
	s.engine.POST("/summarize", summarizeHandler.Summarize)
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		if cerr := s.summarizer.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("failed to close summarizer")
		}
		return err
	case err := <-errCh:
		_ = s.summarizer.Close()
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
