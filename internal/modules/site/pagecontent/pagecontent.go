package pagecontent

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk/core/internal/models"
	"github.com/newsdesk/core/internal/pkg/response"
	"gorm.io/gorm"
)

// UpsertPageContentDTO creates or replaces the content document of a
// static page.
type UpsertPageContentDTO struct {
	PageKey string                 `json:"page_key" binding:"required"`
	Title   string                 `json:"title"    binding:"required"`
	Content map[string]interface{} `json:"content"  binding:"required"`
	Status  string                 `json:"status"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List() ([]models.PageContentModel, error) {
	var pages []models.PageContentModel
	return pages, s.db.Order("updated_at DESC").Find(&pages).Error
}

func (s *Service) GetByKey(key string) (*models.PageContentModel, error) {
	var page models.PageContentModel
	if err := s.db.Where("page_key = ?", key).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

// Upsert writes a page document, keyed by page_key. Returns whether a
// new row was created.
func (s *Service) Upsert(dto *UpsertPageContentDTO) (*models.PageContentModel, bool, error) {
	status := models.PostStatusPublish
	if dto.Status != "" {
		status = models.PostStatus(dto.Status)
	}

	existing, err := s.GetByKey(dto.PageKey)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		page := models.PageContentModel{
			PageKey: dto.PageKey,
			Title:   dto.Title,
			Content: dto.Content,
			Status:  status,
		}
		return &page, true, s.db.Create(&page).Error
	}

	err = s.db.Model(existing).Updates(map[string]interface{}{
		"title":   dto.Title,
		"content": dto.Content,
		"status":  status,
	}).Error
	return existing, false, err
}

func (s *Service) DeleteByKey(key string) (bool, error) {
	res := s.db.Where("page_key = ?", key).Delete(&models.PageContentModel{})
	return res.RowsAffected > 0, res.Error
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/page-contents")
	g.GET("", h.list)
	g.GET("/:key", h.getByKey)
	g.POST("", h.upsert)
	g.DELETE("/:key", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	pages, err := h.svc.List()
	if err != nil {
		response.InternalError(c, "error fetching page contents", err)
		return
	}
	response.OK(c, pages)
}

func (h *Handler) getByKey(c *gin.Context) {
	page, err := h.svc.GetByKey(c.Param("key"))
	if err != nil {
		response.InternalError(c, "error fetching page content", err)
		return
	}
	if page == nil {
		response.NotFound(c, "page content not found")
		return
	}
	response.OK(c, page)
}

func (h *Handler) upsert(c *gin.Context) {
	var dto UpsertPageContentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "page_key, title, and content are required")
		return
	}
	page, created, err := h.svc.Upsert(&dto)
	if err != nil {
		response.InternalError(c, "error saving page content", err)
		return
	}
	if created {
		response.Created(c, page)
		return
	}
	response.OK(c, page)
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.DeleteByKey(c.Param("key"))
	if err != nil {
		response.InternalError(c, "error deleting page content", err)
		return
	}
	if !deleted {
		response.NotFound(c, "page content not found")
		return
	}
	response.OKMsg(c, "page content deleted")
}
