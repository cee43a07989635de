package main

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "os/signal"
    "syscall"
    "time"

    "github.com/getsentry/sentry-go"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/cram-school-study/pybo/config"
    "github.com/cram-school-study/pybo/internal/api/handler"
    "github.com/cram-school-study/pybo/internal/api/router"
    "github.com/cram-school-study/pybo/internal/repository"
    "github.com/cram-school-study/pybo/internal/service"
    "github.com/cram-school-study/pybo/pkg/database"
    "github.com/cram-school-study/pybo/pkg/logger"
    "github.com/cram-school-study/pybo/pkg/tracing"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func main() {
    cfg := must(config.Load())
    _ = logger.Init(cfg.Log.Level)
    defer logger.Sync()

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    if cfg.Sentry.DSN != "" {
        if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
            logger.Warn("sentry init failed", zap.Error(err))
        }
        defer sentry.Flush(2 * time.Second)
    }

    if cfg.Trace.Enabled {
        shutdown := must(tracing.Init(ctx, "pybo", cfg.Trace.Endpoint))
        defer func() { _ = shutdown(context.Background()) }()
    }

    db := must(database.InitDB(cfg))
    rdb := redis.NewClient(&redis.Options{
        Addr:     cfg.Redis.Addr,
        Password: cfg.Redis.Password,
        DB:       cfg.Redis.DB,
    })
    defer rdb.Close()

    userRepo := repository.NewUserRepository(db)
    questionRepo := repository.NewQuestionRepository(db)

    questionSvc := service.NewQuestionService(questionRepo)
    authSvc := service.NewAuthService(userRepo, rdb, cfg.JWT.Secret,
        time.Duration(cfg.JWT.ExpireHours)*time.Hour)

    h := handler.New(questionSvc, authSvc)
    engine := router.New(h, authSvc, cfg)

    srv := &http.Server{
        Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
        Handler: engine,
    }

    go func() {
        logger.Info("server starting", zap.Int("port", cfg.Server.Port))
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            logger.Error("server stopped", zap.Error(err))
        }
    }()

    <-ctx.Done()
    logger.Info("shutting down")
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := srv.Shutdown(shutdownCtx); err != nil {
        logger.Error("graceful shutdown failed", zap.Error(err))
    }
}
