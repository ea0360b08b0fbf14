package notification

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk/core/internal/pkg/pagination"
	"github.com/newsdesk/core/internal/pkg/response"
)

var listSortColumns = []string{"created_at", "updated_at", "priority", "status", "category"}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/notifications")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/stats", h.stats)
	g.PUT("/:id/status", h.decide)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContextDefault(c, 20)
	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sort := pagination.SortFromContext(c, listSortColumns, "created_at")

	items, pag, err := h.svc.List(q, lq, sort)
	if err != nil {
		response.InternalError(c, "error fetching notifications", err)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateNotificationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	n, err := h.svc.Create(&dto)
	if err != nil {
		response.InternalError(c, "error creating notification", err)
		return
	}
	response.Created(c, n)
}

func (h *Handler) decide(c *gin.Context) {
	var dto DecideDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	n, err := h.svc.Decide(c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, ErrAlreadyDecided) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, "error updating notification", err)
		return
	}
	if n == nil {
		response.NotFound(c, "notification not found")
		return
	}
	response.OK(c, n)
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, "error deleting notification", err)
		return
	}
	if !deleted {
		response.NotFound(c, "notification not found")
		return
	}
	response.OKMsg(c, "notification deleted successfully")
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.svc.Stats()
	if err != nil {
		response.InternalError(c, "error fetching notification statistics", err)
		return
	}
	response.OK(c, stats)
}
