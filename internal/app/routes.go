package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk/core/internal/modules/author"
	"github.com/newsdesk/core/internal/modules/content/category"
	"github.com/newsdesk/core/internal/modules/content/interaction"
	"github.com/newsdesk/core/internal/modules/content/post"
	"github.com/newsdesk/core/internal/modules/content/tag"
	"github.com/newsdesk/core/internal/modules/processing/summarizer"
	"github.com/newsdesk/core/internal/modules/site/about"
	"github.com/newsdesk/core/internal/modules/site/achievement"
	"github.com/newsdesk/core/internal/modules/site/pagecontent"
	"github.com/newsdesk/core/internal/modules/site/publication"
	"github.com/newsdesk/core/internal/modules/site/setting"
	"github.com/newsdesk/core/internal/modules/stats"
	"github.com/newsdesk/core/internal/modules/workflow/notification"
	"github.com/newsdesk/core/internal/modules/workflow/notify"
	"github.com/newsdesk/core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	a.router.NoRoute(response.NotFoundRoute)
	a.router.NoMethod(response.MethodNotAllowed)

	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := a.router.Group("/api")

	a.postSvc = post.NewService(a.db, a.summarizer, a.notifier, a.rc,
		a.cfg.Workflow.SupersedePendingEnabled(), a.logger)
	post.NewHandler(a.postSvc).RegisterRoutes(api)
	summarizer.NewHandler(a.summarizer).RegisterRoutes(api)
	interaction.NewHandler(interaction.NewService(a.db)).RegisterRoutes(api)

	notification.NewHandler(notification.NewService(a.db, a.notifier, a.logger)).RegisterRoutes(api)
	notify.NewHandler(a.tg).RegisterRoutes(api)

	category.NewHandler(category.NewService(a.db)).RegisterRoutes(api)
	tag.NewHandler(tag.NewService(a.db)).RegisterRoutes(api)

	pagecontent.NewHandler(pagecontent.NewService(a.db)).RegisterRoutes(api)
	setting.NewHandler(setting.NewService(a.db)).RegisterRoutes(api)
	about.NewHandler(about.NewService(a.db)).RegisterRoutes(api)
	publication.NewHandler(publication.NewService(a.db)).RegisterRoutes(api)
	achievement.NewHandler(achievement.NewService(a.db)).RegisterRoutes(api)

	author.NewHandler(author.NewService(a.db)).RegisterRoutes(api)
	stats.NewHandler(stats.NewService(a.db)).RegisterRoutes(api)
}
