package about

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk/core/internal/models"
	"github.com/newsdesk/core/internal/pkg/response"
	"gorm.io/gorm"
)

// UpsertSectionDTO creates or replaces one about-page section.
type UpsertSectionDTO struct {
	SectionKey  string                 `json:"section_key" binding:"required"`
	Title       string                 `json:"title"`
	Content     string                 `json:"content"`
	ImageURL    string                 `json:"image_url"`
	OrderNumber int                    `json:"order_number"`
	Metadata    map[string]interface{} `json:"metadata"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List() ([]models.AboutSectionModel, error) {
	var sections []models.AboutSectionModel
	err := s.db.Order("order_number ASC, created_at ASC").Find(&sections).Error
	return sections, err
}

func (s *Service) GetByKey(key string) (*models.AboutSectionModel, error) {
	var sec models.AboutSectionModel
	if err := s.db.Where("section_key = ?", key).First(&sec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sec, nil
}

func (s *Service) Upsert(dto *UpsertSectionDTO) (*models.AboutSectionModel, bool, error) {
	existing, err := s.GetByKey(dto.SectionKey)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		sec := models.AboutSectionModel{
			SectionKey:  dto.SectionKey,
			Title:       dto.Title,
			Content:     dto.Content,
			ImageURL:    dto.ImageURL,
			OrderNumber: dto.OrderNumber,
			Metadata:    dto.Metadata,
		}
		return &sec, true, s.db.Create(&sec).Error
	}

	err = s.db.Model(existing).Updates(map[string]interface{}{
		"title":        dto.Title,
		"content":      dto.Content,
		"image_url":    dto.ImageURL,
		"order_number": dto.OrderNumber,
		"metadata":     dto.Metadata,
	}).Error
	return existing, false, err
}

func (s *Service) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.AboutSectionModel{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/about")
	g.GET("", h.list)
	g.GET("/:key", h.getByKey)
	g.POST("", h.upsert)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	sections, err := h.svc.List()
	if err != nil {
		response.InternalError(c, "error fetching about sections", err)
		return
	}
	response.OK(c, sections)
}

func (h *Handler) getByKey(c *gin.Context) {
	sec, err := h.svc.GetByKey(c.Param("key"))
	if err != nil {
		response.InternalError(c, "error fetching about section", err)
		return
	}
	if sec == nil {
		response.NotFound(c, "about section not found")
		return
	}
	response.OK(c, sec)
}

func (h *Handler) upsert(c *gin.Context) {
	var dto UpsertSectionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "section_key is required")
		return
	}
	sec, created, err := h.svc.Upsert(&dto)
	if err != nil {
		response.InternalError(c, "error saving about section", err)
		return
	}
	if created {
		response.Created(c, sec)
		return
	}
	response.OK(c, sec)
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, "error deleting about section", err)
		return
	}
	if !deleted {
		response.NotFound(c, "about section not found")
		return
	}
	response.OKMsg(c, "about section deleted")
}
