// Package app 提供应用程序的初始化、路由装配与生命周期管理.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yeisme/csvvault/pkg/api"
	"github.com/yeisme/csvvault/pkg/configs"
	"github.com/yeisme/csvvault/pkg/internal/jobs"
	"github.com/yeisme/csvvault/pkg/internal/service"
	"github.com/yeisme/csvvault/pkg/internal/storage"
	"github.com/yeisme/csvvault/pkg/log"
	"github.com/yeisme/csvvault/pkg/metrics"
	"github.com/yeisme/csvvault/pkg/middleware"
	"github.com/yeisme/csvvault/pkg/queue"
	"github.com/yeisme/csvvault/pkg/scheduler"
	"github.com/yeisme/csvvault/pkg/tracing"
)

// App 持有 HTTP 引擎、存储资源、调度器与事件订阅.
type App struct {
	Engine    *gin.Engine
	config    *configs.AppConfig
	manager   *storage.Manager
	files     *service.FileService
	scheduler *scheduler.Scheduler
	logger    zerolog.Logger
}

// New 初始化追踪、监控与存储，并装配路由、定时任务与事件处理器.
func New(ctx context.Context, cfg *configs.AppConfig) (*App, error) {
	l := log.Logger()

	gin.DefaultWriter = log.NewGinWriter(l, zerolog.DebugLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	if err := tracing.InitTracer(ctx, cfg.Tracing); err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	if err := metrics.InitMetrics(cfg.Metrics); err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	manager, err := storage.Init(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	files := service.NewFileServiceFromManager(manager, cfg)

	sched, err := scheduler.NewScheduler(l.With().Str("component", "scheduler").Logger())
	if err != nil {
		_ = manager.Close()
		return nil, err
	}

	if err := jobs.RegisterCronJobs(ctx, sched, files, cfg.Upload); err != nil {
		_ = manager.Close()
		return nil, fmt.Errorf("register jobs: %w", err)
	}

	a := &App{
		Engine:    NewEngine(ctx, cfg, manager, files),
		config:    cfg,
		manager:   manager,
		files:     files,
		scheduler: sched,
		logger:    *l,
	}

	a.registerEventHandlers()

	return a, nil
}

// NewEngine 构建 gin 引擎：中间件、文件接口、健康检查、metrics 与 swagger.
func NewEngine(ctx context.Context, cfg *configs.AppConfig, manager *storage.Manager, files *service.FileService) *gin.Engine {
	engine := gin.New()

	engine.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.TracingMiddleware(),
		middleware.GinLoggerMiddleware(cfg.Metrics.Path),
		middleware.CORSMiddleware(),
		middleware.GzipMiddleware(cfg.Metrics.Path, "/debug/pprof"),
		middleware.RateLimitMiddleware(ctx, cfg.RateLimit),
		middleware.CircuitBreakerMiddleware(cfg.CircuitBreaker),
		middleware.StorageMiddleware(manager),
	)

	if cfg.Metrics.Enabled {
		engine.Use(middleware.PrometheusMiddleware())
	}

	api.RegisterGroup(engine, cfg, files)
	metrics.RegisterRoutes(cfg.Metrics, engine)

	return engine
}

// registerEventHandlers 按配置订阅事件：缓存失效、日志记录与 S3 归档.
func (a *App) registerEventHandlers() {
	mq := a.manager.MQ
	if mq == nil {
		return
	}

	if a.manager.KV != nil {
		evict := a.files.EvictOnDelete(a.logger.With().Str("component", "cache").Logger())
		mq.AddHandler("evict."+queue.TopicFileDeleted, queue.TopicFileDeleted, evict)
	}

	if a.config.Events.LogEvents {
		sink := service.EventLogger(a.logger.With().Str("component", "events").Logger())
		for _, topic := range queue.Topics() {
			mq.AddHandler("log."+topic, topic, sink)
		}
	}

	if a.manager.S3 != nil {
		archiver := service.NewArchiver(
			a.manager.S3,
			a.config.Archive.Prefix,
			mq.Publisher(),
			a.config.Events.Producer,
			a.logger.With().Str("component", "archiver").Logger(),
		)
		mq.AddHandler("archive."+queue.TopicFileIngested, queue.TopicFileIngested, archiver.Handle)
	}
}

// Files 返回文件服务.
func (a *App) Files() *service.FileService {
	return a.files
}

// Run 启动 HTTP 服务、定时任务与事件路由，ctx 结束后优雅退出并释放资源.
func (a *App) Run(ctx context.Context) error {
	return a.serve(ctx, a.config.Server.Addr())
}

func (a *App) serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Engine,
		ReadHeaderTimeout: a.config.Server.GetTimeoutDuration(),
		ReadTimeout:       a.config.Server.GetTimeoutDuration(),
		WriteTimeout:      a.config.Server.GetTimeoutDuration(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info().Str("addr", addr).Str("version", configs.AppVersion).Msg("HTTP server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.config.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		a.logger.Info().Msg("shutting down HTTP server")

		return srv.Shutdown(shutdownCtx)
	})

	a.scheduler.Start()

	for _, info := range a.scheduler.GetJobInfos() {
		a.logger.Info().Str("job", info.Name).Time("next_run", info.NextRun).Msg("job scheduled")
	}

	g.Go(func() error {
		<-gctx.Done()
		return a.scheduler.Shutdown()
	})

	if mq := a.manager.MQ; mq != nil && mq.HasHandlers() {
		g.Go(func() error { return mq.Run(gctx) })
	}

	err := g.Wait()

	return errors.Join(err, a.Close())
}

// Close 关闭追踪导出器与存储资源.
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(a.config.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	return errors.Join(tracing.ShutdownTracer(ctx), a.manager.Close())
}
