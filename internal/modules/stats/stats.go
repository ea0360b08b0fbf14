package stats

import (
	"github.com/gin-gonic/gin"
	"github.com/newsdesk/core/internal/models"
	"github.com/newsdesk/core/internal/pkg/response"
	"gorm.io/gorm"
)

// CategoryEngagement aggregates reader activity per category. A post
// filed under several categories counts toward each of them.
type CategoryEngagement struct {
	Category string `json:"category"`
	Views    int64  `json:"views"`
	Likes    int64  `json:"likes"`
	Comments int64  `json:"comments"`
}

// CategorySlice is one slice of the article distribution chart.
type CategorySlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// CategoryEngagementStats sums views, likes and approved comments of
// published posts per category, most viewed first.
func (s *Service) CategoryEngagementStats() ([]CategoryEngagement, error) {
	var rows []CategoryEngagement
	err := s.db.Raw(`
		SELECT categories.name AS category,
			SUM(posts.views) AS views,
			SUM((SELECT COUNT(*) FROM post_likes
				WHERE post_likes.post_id = posts.id AND post_likes.deleted_at IS NULL)) AS likes,
			SUM((SELECT COUNT(*) FROM comments
				WHERE comments.post_id = posts.id AND comments.status = 'approved'
				AND comments.deleted_at IS NULL)) AS comments
		FROM categories
		JOIN post_categories pc ON pc.category_model_id = categories.id
		JOIN posts ON posts.id = pc.post_model_id
		WHERE posts.status = ? AND posts.deleted_at IS NULL AND categories.deleted_at IS NULL
		GROUP BY categories.id, categories.name
		ORDER BY views DESC`, models.PostStatusPublish).Scan(&rows).Error
	if rows == nil {
		rows = []CategoryEngagement{}
	}
	return rows, err
}

// CategoryDistribution counts articles per category, skipping empty
// categories.
func (s *Service) CategoryDistribution() ([]CategorySlice, error) {
	var rows []CategorySlice
	err := s.db.Raw(`
		SELECT categories.name AS name, COUNT(pc.post_model_id) AS value
		FROM categories
		JOIN post_categories pc ON pc.category_model_id = categories.id
		JOIN posts ON posts.id = pc.post_model_id AND posts.deleted_at IS NULL
		WHERE categories.deleted_at IS NULL
		GROUP BY categories.id, categories.name
		HAVING COUNT(pc.post_model_id) > 0
		ORDER BY value DESC`).Scan(&rows).Error
	if rows == nil {
		rows = []CategorySlice{}
	}
	return rows, err
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/stats")
	g.GET("/category-engagement", h.categoryEngagement)
	g.GET("/category-distribution", h.categoryDistribution)
}

func (h *Handler) categoryEngagement(c *gin.Context) {
	data, err := h.svc.CategoryEngagementStats()
	if err != nil {
		response.InternalError(c, "error fetching category engagement", err)
		return
	}
	response.OK(c, data)
}

func (h *Handler) categoryDistribution(c *gin.Context) {
	data, err := h.svc.CategoryDistribution()
	if err != nil {
		response.InternalError(c, "error fetching category distribution", err)
		return
	}
	response.OK(c, data)
}
