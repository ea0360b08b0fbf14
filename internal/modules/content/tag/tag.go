package tag

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk/core/internal/models"
	"github.com/newsdesk/core/internal/pkg/response"
	"gorm.io/gorm"
)

// ErrSlugTaken is returned when a tag slug collides.
var ErrSlugTaken = errors.New("tag slug already exists")

type CreateTagDTO struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
}

type UpdateTagDTO struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List() ([]models.TagModel, error) {
	var tags []models.TagModel
	return tags, s.db.Order("name ASC").Find(&tags).Error
}

func (s *Service) GetByID(id string) (*models.TagModel, error) {
	var t models.TagModel
	if err := s.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (s *Service) GetBySlug(slug string) (*models.TagModel, error) {
	var t models.TagModel
	if err := s.db.Where("slug = ?", slug).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (s *Service) Create(dto *CreateTagDTO) (*models.TagModel, error) {
	var count int64
	if err := s.db.Model(&models.TagModel{}).
		Where("slug = ?", dto.Slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}
	t := models.TagModel{Name: dto.Name, Slug: dto.Slug, Description: dto.Description}
	return &t, s.db.Create(&t).Error
}

func (s *Service) Update(id string, dto *UpdateTagDTO) (*models.TagModel, error) {
	t, err := s.GetByID(id)
	if err != nil || t == nil {
		return t, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Slug != nil && *dto.Slug != t.Slug {
		var count int64
		if err := s.db.Model(&models.TagModel{}).
			Where("slug = ? AND id <> ?", *dto.Slug, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugTaken
		}
		updates["slug"] = *dto.Slug
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if len(updates) > 0 {
		if err := s.db.Model(t).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (s *Service) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.TagModel{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/tags")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:slug", h.getBySlug)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	tags, err := h.svc.List()
	if err != nil {
		response.InternalError(c, "error fetching tags", err)
		return
	}
	response.OK(c, tags)
}

func (h *Handler) getBySlug(c *gin.Context) {
	t, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, "error fetching tag", err)
		return
	}
	if t == nil {
		response.NotFound(c, "tag not found")
		return
	}
	response.OK(c, t)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateTagDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "name and slug are required")
		return
	}
	t, err := h.svc.Create(&dto)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, "error creating tag", err)
		return
	}
	response.Created(c, t)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateTagDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	t, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, "error updating tag", err)
		return
	}
	if t == nil {
		response.NotFound(c, "tag not found")
		return
	}
	response.OK(c, t)
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, "error deleting tag", err)
		return
	}
	if !deleted {
		response.NotFound(c, "tag not found")
		return
	}
	response.OKMsg(c, "tag deleted successfully")
}
