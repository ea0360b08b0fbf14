package post

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk/core/internal/pkg/pagination"
	"github.com/newsdesk/core/internal/pkg/response"
)

var listSortColumns = []string{"published_at", "created_at", "updated_at", "views", "title"}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/posts")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/popular", h.popular)
	g.GET("/recent", h.recent)
	g.GET("/trending", h.trending)
	g.GET("/id/:id", h.getByID)
	g.GET("/:slug", h.getBySlug)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "title and content are required")
		return
	}
	p, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, ErrNoAuthor) || errors.Is(err, ErrInvalidStatus) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "error creating post", err)
		return
	}
	response.Created(c, p)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sort := pagination.SortFromContext(c, listSortColumns, "published_at")

	posts, pag, err := h.svc.List(q, lq, sort)
	if err != nil {
		response.InternalError(c, "error fetching posts", err)
		return
	}
	response.Paged(c, posts, pag)
}

func (h *Handler) getByID(c *gin.Context) {
	p, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, "error fetching post", err)
		return
	}
	if p == nil {
		response.NotFound(c, "post not found")
		return
	}
	response.OK(c, p)
}

func (h *Handler) getBySlug(c *gin.Context) {
	p, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, "error fetching post", err)
		return
	}
	if p == nil {
		response.NotFound(c, "post not found")
		return
	}
	response.OK(c, p)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "error updating post", err)
		return
	}
	if p == nil {
		response.NotFound(c, "post not found")
		return
	}
	response.OK(c, p)
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, "error deleting post", err)
		return
	}
	if !deleted {
		response.NotFound(c, "post not found")
		return
	}
	response.OKMsg(c, "post deleted successfully")
}

func (h *Handler) popular(c *gin.Context) {
	posts, err := h.svc.Popular(limitParam(c, 5))
	if err != nil {
		response.InternalError(c, "error fetching popular posts", err)
		return
	}
	response.OK(c, posts)
}

func (h *Handler) recent(c *gin.Context) {
	posts, err := h.svc.Recent(limitParam(c, 5))
	if err != nil {
		response.InternalError(c, "error fetching recent posts", err)
		return
	}
	response.OK(c, posts)
}

func (h *Handler) trending(c *gin.Context) {
	hours, _ := strconv.Atoi(c.DefaultQuery("hours", "24"))
	posts, err := h.svc.Trending(c.Request.Context(), limitParam(c, 5), hours)
	if err != nil {
		response.InternalError(c, "error fetching trending posts", err)
		return
	}
	response.OK(c, posts)
}

func limitParam(c *gin.Context, def int) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(def)))
	if err != nil || limit < 1 {
		return def
	}
	if limit > pagination.MaxLimit {
		return pagination.MaxLimit
	}
	return limit
}
