package summarizer

import (
	"github.com/gin-gonic/gin"
	"github.com/newsdesk/core/internal/pkg/response"
)

type summarizeDTO struct {
	Content string `json:"content" binding:"required"`
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/posts/summarize", h.summarize)
}

func (h *Handler) summarize(c *gin.Context) {
	var dto summarizeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "content is required")
		return
	}
	summary, err := h.svc.Generate(c.Request.Context(), dto.Content)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, gin.H{"summary": summary})
}
