package router

import (
    "strings"
    "sync"

    sentrygin "github.com/getsentry/sentry-go/gin"
    "github.com/gin-contrib/gzip"
    "github.com/gin-gonic/gin"
    "github.com/gin-gonic/gin/binding"
    "github.com/go-playground/validator/v10"
    "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

    "github.com/cram-school-study/pybo/config"
    "github.com/cram-school-study/pybo/internal/api/handler"
    "github.com/cram-school-study/pybo/internal/api/middleware"
    "github.com/cram-school-study/pybo/internal/service"
)

var validationOnce sync.Once

// registerValidations 给 gin 的 binding 引擎补充 notblank 规则
// （subject/content 纯空白视为非法）。
func registerValidations() {
    validationOnce.Do(func() {
        if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
            _ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
                return strings.TrimSpace(fl.Field().String()) != ""
            })
        }
    })
}

// New 组装 HTTP 路由
func New(h *handler.Handler, authSvc service.AuthService, cfg *config.Config) *gin.Engine {
    gin.SetMode(cfg.Server.Mode)
    registerValidations()

    r := gin.New()
    r.Use(gin.Recovery())
    if cfg.Sentry.DSN != "" {
        r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
    }
    if cfg.Trace.Enabled {
        r.Use(otelgin.Middleware("pybo"))
    }
    r.Use(gzip.Gzip(gzip.DefaultCompression))
    r.Use(middleware.RateLimit(50, 100))

    api := r.Group("/api/v1")

    auth := api.Group("/auth")
    {
        auth.POST("/register", h.Register)
        auth.POST("/login", h.Login)
        auth.POST("/logout", middleware.Auth(authSvc), h.Logout)
    }

    questions := api.Group("/questions")
    {
        questions.GET("", h.ListQuestions)
        questions.GET("/:id", h.GetQuestion)

        gated := questions.Group("", middleware.Auth(authSvc))
        {
            gated.POST("", h.CreateQuestion)
            gated.GET("/:id/edit", h.EditQuestion)
            gated.PUT("/:id", h.ModifyQuestion)
            gated.DELETE("/:id", h.DeleteQuestion)
        }
    }

    return r
}
