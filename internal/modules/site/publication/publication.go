package publication

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk/core/internal/models"
	"github.com/newsdesk/core/internal/pkg/response"
	"gorm.io/gorm"
)

type CreatePublicationDTO struct {
	Title   string `json:"title"   binding:"required"`
	Authors string `json:"authors" binding:"required"`
	Year    int    `json:"year"    binding:"required"`
	Journal string `json:"journal"`
	Link    string `json:"link"`
}

type UpdatePublicationDTO struct {
	Title   *string `json:"title"`
	Authors *string `json:"authors"`
	Year    *int    `json:"year"`
	Journal *string `json:"journal"`
	Link    *string `json:"link"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List() ([]models.PublicationModel, error) {
	var pubs []models.PublicationModel
	err := s.db.Order("year DESC, created_at DESC").Find(&pubs).Error
	return pubs, err
}

func (s *Service) GetByID(id string) (*models.PublicationModel, error) {
	var pub models.PublicationModel
	if err := s.db.First(&pub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pub, nil
}

func (s *Service) Create(dto *CreatePublicationDTO) (*models.PublicationModel, error) {
	pub := models.PublicationModel{
		Title:   dto.Title,
		Authors: dto.Authors,
		Year:    dto.Year,
		Journal: dto.Journal,
		Link:    dto.Link,
	}
	return &pub, s.db.Create(&pub).Error
}

func (s *Service) Update(id string, dto *UpdatePublicationDTO) (*models.PublicationModel, error) {
	pub, err := s.GetByID(id)
	if err != nil || pub == nil {
		return pub, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Authors != nil {
		updates["authors"] = *dto.Authors
	}
	if dto.Year != nil {
		updates["year"] = *dto.Year
	}
	if dto.Journal != nil {
		updates["journal"] = *dto.Journal
	}
	if dto.Link != nil {
		updates["link"] = *dto.Link
	}
	if len(updates) > 0 {
		if err := s.db.Model(pub).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return pub, nil
}

func (s *Service) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.PublicationModel{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/publications")
	g.GET("", h.list)
	g.GET("/:id", h.getByID)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	pubs, err := h.svc.List()
	if err != nil {
		response.InternalError(c, "error fetching publications", err)
		return
	}
	response.OK(c, pubs)
}

func (h *Handler) getByID(c *gin.Context) {
	pub, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, "error fetching publication", err)
		return
	}
	if pub == nil {
		response.NotFound(c, "publication not found")
		return
	}
	response.OK(c, pub)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreatePublicationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "title, authors, and year are required")
		return
	}
	pub, err := h.svc.Create(&dto)
	if err != nil {
		response.InternalError(c, "error creating publication", err)
		return
	}
	response.Created(c, pub)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdatePublicationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	pub, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, "error updating publication", err)
		return
	}
	if pub == nil {
		response.NotFound(c, "publication not found")
		return
	}
	response.OK(c, pub)
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		response.InternalError(c, "error deleting publication", err)
		return
	}
	if !deleted {
		response.NotFound(c, "publication not found")
		return
	}
	response.OKMsg(c, "publication deleted successfully")
}
