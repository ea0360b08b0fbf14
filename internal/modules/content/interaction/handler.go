package interaction

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts the interaction endpoints. The GET routes share
// the /posts/:slug subtree with the post handler, so the path parameter
// keeps that name even though it carries a post id here.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/posts/:id/like", h.toggleLike)
	rg.GET("/posts/:slug/likes", h.likes)
	rg.POST("/posts/:id/comments", h.createComment)
	rg.GET("/posts/:slug/comments", h.commentsByPost)
	rg.GET("/comments", h.listAll)
}

func (h *Handler) toggleLike(c *gin.Context) {
	var dto LikeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "user identifier is required")
		return
	}
	state, err := h.svc.ToggleLike(c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, "error toggling like", err)
		return
	}
	response.OK(c, state)
}

func (h *Handler) likes(c *gin.Context) {
	state, err := h.svc.Likes(c.Param("slug"), c.Query("user_identifier"))
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, "error fetching likes", err)
		return
	}
	response.OK(c, state)
}

func (h *Handler) createComment(c *gin.Context) {
	var dto CreateCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "author name, email, and content are required")
		return
	}
	comment, err := h.svc.CreateComment(c.Param("id"), &dto, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, ErrPostNotFound) || errors.Is(err, ErrParentNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, "error creating comment", err)
		return
	}
	response.Created(c, comment)
}

func (h *Handler) commentsByPost(c *gin.Context) {
	var q CommentListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	page, err := h.svc.CommentsByPost(c.Param("slug"), q)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, "error fetching comments", err)
		return
	}
	response.OK(c, page)
}

func (h *Handler) listAll(c *gin.Context) {
	var q CommentListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	page, err := h.svc.ListAll(q)
	if err != nil {
		response.InternalError(c, "error fetching comments", err)
		return
	}
	response.OK(c, page)
}
