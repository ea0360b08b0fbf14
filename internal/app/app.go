package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newsdesk/core/internal/config"
	"github.com/newsdesk/core/internal/database"
	"github.com/newsdesk/core/internal/middleware"
	"github.com/newsdesk/core/internal/modules/content/post"
	"github.com/newsdesk/core/internal/modules/processing/summarizer"
	"github.com/newsdesk/core/internal/modules/workflow/notify"
	pkgredis "github.com/newsdesk/core/internal/pkg/redis"
	"github.com/newsdesk/core/internal/pkg/telegram"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	rc     *pkgredis.Client
	logger *zap.Logger
	sched  *cron.Cron

	tg         *telegram.Client
	summarizer *summarizer.Service
	notifier   *notify.Service
	postSvc    *post.Service
}

// New initializes the application: database → redis → outbound clients
// → routes → cron.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))
	router.Use(middleware.RateLimit(rc.Raw()))

	tg := telegram.New(telegram.Config{
		BotToken:      cfg.Telegram.BotToken,
		ChatID:        cfg.Telegram.ChatID,
		AuthorTopicID: cfg.Telegram.AuthorTopicID,
		EditorTopicID: cfg.Telegram.EditorTopicID,
	}, logger)

	app := &App{
		cfg:        cfg,
		router:     router,
		db:         db,
		rc:         rc,
		logger:     logger,
		tg:         tg,
		summarizer: summarizer.New(cfg.Summarizer, logger),
		notifier:   notify.NewService(tg, cfg.AdminURL),
	}
	app.registerRoutes()

	app.sched = cron.New()
	app.registerCronJobs()
	app.sched.Start()

	return app, nil
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		c.AllowOrigins = cfg.AllowedOrigins
	} else {
		c.AllowOriginFunc = func(string) bool { return true }
	}
	return c
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background workers.
func (a *App) Shutdown() {
	if a.sched != nil {
		a.sched.Stop()
	}
}
