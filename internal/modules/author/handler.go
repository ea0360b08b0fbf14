package author

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk/core/internal/pkg/pagination"
	"github.com/newsdesk/core/internal/pkg/response"
)

type CreateUserDTO struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email"    binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Role        string `json:"role" binding:"omitempty,oneof=administrator editor author contributor subscriber user"`
	URL         string `json:"url"`
}

type UpdateUserDTO struct {
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	DisplayName *string `json:"display_name"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Role        *string `json:"role" binding:"omitempty,oneof=administrator editor author contributor subscriber user"`
	URL         *string `json:"url"`
}

type ListQuery struct {
	Role   string `form:"role"`
	Search string `form:"search"`
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/users")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.getByID)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)

	rg.GET("/authors/:username", h.profile)
}

func (h *Handler) list(c *gin.Context) {
	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	users, err := h.svc.List(lq)
	if err != nil {
		response.InternalError(c, "error fetching users", err)
		return
	}
	response.OK(c, users)
}

func (h *Handler) getByID(c *gin.Context) {
	u, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, "error fetching user", err)
		return
	}
	if u == nil {
		response.NotFound(c, "user not found")
		return
	}
	response.OK(c, u)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "username, email, and password are required")
		return
	}
	u, err := h.svc.Create(&dto)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) || errors.Is(err, ErrUsernameTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, "error creating user", err)
		return
	}
	response.Created(c, u)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, "error updating user", err)
		return
	}
	if u == nil {
		response.NotFound(c, "user not found")
		return
	}
	response.OK(c, u)
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, "error deleting user", err)
		return
	}
	if !deleted {
		response.NotFound(c, "user not found")
		return
	}
	response.OKMsg(c, "user deleted successfully")
}

func (h *Handler) profile(c *gin.Context) {
	q := pagination.FromContext(c)
	profile, pag, err := h.svc.Profile(c.Param("username"), q)
	if err != nil {
		response.InternalError(c, "error fetching author posts", err)
		return
	}
	if profile == nil {
		response.NotFound(c, "author not found")
		return
	}
	response.Paged(c, profile, pag)
}
