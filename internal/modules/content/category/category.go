package category

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk/core/internal/models"
	"github.com/newsdesk/core/internal/pkg/pagination"
	"github.com/newsdesk/core/internal/pkg/response"
	"gorm.io/gorm"
)

// ErrSlugTaken is returned when a category slug collides.
var ErrSlugTaken = errors.New("category slug already exists")

type CreateCategoryDTO struct {
	Name            string  `json:"name" binding:"required"`
	Slug            string  `json:"slug" binding:"required"`
	Description     string  `json:"description"`
	ParentID        *string `json:"parent_id"`
	DisplayOrder    *int    `json:"display_order"`
	MetaTitle       string  `json:"meta_title"`
	MetaDescription string  `json:"meta_description"`
}

type UpdateCategoryDTO struct {
	Name            *string `json:"name"`
	Slug            *string `json:"slug"`
	Description     *string `json:"description"`
	ParentID        *string `json:"parent_id"`
	DisplayOrder    *int    `json:"display_order"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
}

// CategoryPosts pairs a category with a page of its published posts.
type CategoryPosts struct {
	Category models.CategoryModel `json:"category"`
	Posts    []models.PostModel   `json:"posts"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List() ([]models.CategoryModel, error) {
	var cats []models.CategoryModel
	err := s.db.
		Preload("Parent").
		Preload("Children").
		Order("name ASC").
		Find(&cats).Error
	return cats, err
}

func (s *Service) GetBySlug(slug string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	err := s.db.Preload("Parent").Preload("Children").
		Where("slug = ?", slug).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (s *Service) GetByID(id string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (s *Service) Create(dto *CreateCategoryDTO) (*models.CategoryModel, error) {
	var count int64
	if err := s.db.Model(&models.CategoryModel{}).
		Where("slug = ?", dto.Slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}

	cat := models.CategoryModel{
		Name:            dto.Name,
		Slug:            dto.Slug,
		Description:     dto.Description,
		ParentID:        dto.ParentID,
		MetaTitle:       dto.MetaTitle,
		MetaDescription: dto.MetaDescription,
	}
	if dto.DisplayOrder != nil {
		cat.DisplayOrder = *dto.DisplayOrder
	}
	return &cat, s.db.Create(&cat).Error
}

func (s *Service) Update(id string, dto *UpdateCategoryDTO) (*models.CategoryModel, error) {
	cat, err := s.GetByID(id)
	if err != nil || cat == nil {
		return cat, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Slug != nil && *dto.Slug != cat.Slug {
		var count int64
		if err := s.db.Model(&models.CategoryModel{}).
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
	if dto.ParentID != nil {
		updates["parent_id"] = *dto.ParentID
	}
	if dto.DisplayOrder != nil {
		updates["display_order"] = *dto.DisplayOrder
	}
	if dto.MetaTitle != nil {
		updates["meta_title"] = *dto.MetaTitle
	}
	if dto.MetaDescription != nil {
		updates["meta_description"] = *dto.MetaDescription
	}
	if len(updates) > 0 {
		if err := s.db.Model(cat).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return cat, nil
}

func (s *Service) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.CategoryModel{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// PostsBySlug lists the published posts filed under a category.
func (s *Service) PostsBySlug(slug string, q pagination.Query) (*CategoryPosts, response.Pagination, error) {
	cat, err := s.GetBySlug(slug)
	if err != nil || cat == nil {
		return nil, response.Pagination{}, err
	}

	tx := s.db.Model(&models.PostModel{}).
		Preload("Author").
		Preload("Categories").
		Where("posts.status = ?", models.PostStatusPublish).
		Where(`EXISTS (
			SELECT 1 FROM post_categories pc
			WHERE pc.post_model_id = posts.id AND pc.category_model_id = ?)`, cat.ID).
		Order("posts.published_at DESC")

	var posts []models.PostModel
	pag, err := pagination.Paginate(tx, q, &posts)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return &CategoryPosts{Category: *cat, Posts: posts}, pag, nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/categories")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:slug", h.getBySlug)
	g.GET("/:slug/posts", h.postsBySlug)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	cats, err := h.svc.List()
	if err != nil {
		response.InternalError(c, "error fetching categories", err)
		return
	}
	response.OK(c, cats)
}

func (h *Handler) getBySlug(c *gin.Context) {
	cat, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, "error fetching category", err)
		return
	}
	if cat == nil {
		response.NotFound(c, "category not found")
		return
	}
	response.OK(c, cat)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "name and slug are required")
		return
	}
	cat, err := h.svc.Create(&dto)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, "error creating category", err)
		return
	}
	response.Created(c, cat)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cat, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, "error updating category", err)
		return
	}
	if cat == nil {
		response.NotFound(c, "category not found")
		return
	}
	response.OK(c, cat)
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, "error deleting category", err)
		return
	}
	if !deleted {
		response.NotFound(c, "category not found")
		return
	}
	response.OKMsg(c, "category deleted successfully")
}

func (h *Handler) postsBySlug(c *gin.Context) {
	q := pagination.FromContext(c)
	data, pag, err := h.svc.PostsBySlug(c.Param("slug"), q)
	if err != nil {
		response.InternalError(c, "error fetching posts by category", err)
		return
	}
	if data == nil {
		response.NotFound(c, "category not found")
		return
	}
	response.Paged(c, data, pag)
}
