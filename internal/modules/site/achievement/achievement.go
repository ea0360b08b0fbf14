package achievement

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk/core/internal/models"
	"github.com/newsdesk/core/internal/pkg/response"
	"gorm.io/gorm"
)

type CreateAchievementDTO struct {
	Title string `json:"title" binding:"required"`
	Name  string `json:"name"  binding:"required"`
	Year  int    `json:"years" binding:"required"`
}

type UpdateAchievementDTO struct {
	Title *string `json:"title"`
	Name  *string `json:"name"`
	Year  *int    `json:"years"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List() ([]models.AchievementModel, error) {
	var items []models.AchievementModel
	err := s.db.Order("years DESC, created_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) GetByID(id string) (*models.AchievementModel, error) {
	var a models.AchievementModel
	if err := s.db.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (s *Service) Create(dto *CreateAchievementDTO) (*models.AchievementModel, error) {
	a := models.AchievementModel{Title: dto.Title, Name: dto.Name, Year: dto.Year}
	return &a, s.db.Create(&a).Error
}

func (s *Service) Update(id string, dto *UpdateAchievementDTO) (*models.AchievementModel, error) {
	a, err := s.GetByID(id)
	if err != nil || a == nil {
		return a, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Year != nil {
		updates["years"] = *dto.Year
	}
	if len(updates) > 0 {
		if err := s.db.Model(a).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (s *Service) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.AchievementModel{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/achievements")
	g.GET("", h.list)
	g.GET("/:id", h.getByID)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List()
	if err != nil {
		response.InternalError(c, "error fetching achievements", err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) getByID(c *gin.Context) {
	a, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, "error fetching achievement", err)
		return
	}
	if a == nil {
		response.NotFound(c, "achievement not found")
		return
	}
	response.OK(c, a)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateAchievementDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "title, name, and years are required")
		return
	}
	a, err := h.svc.Create(&dto)
	if err != nil {
		response.InternalError(c, "error creating achievement", err)
		return
	}
	response.Created(c, a)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateAchievementDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	a, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, "error updating achievement", err)
		return
	}
	if a == nil {
		response.NotFound(c, "achievement not found")
		return
	}
	response.OK(c, a)
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, "error deleting achievement", err)
		return
	}
	if !deleted {
		response.NotFound(c, "achievement not found")
		return
	}
	response.OKMsg(c, "achievement deleted successfully")
}
