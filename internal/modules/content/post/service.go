package post

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/newsdesk/core/internal/models"
	"github.com/newsdesk/core/internal/modules/processing/summarizer"
	"github.com/newsdesk/core/internal/modules/workflow/notify"
	"github.com/newsdesk/core/internal/pkg/pagination"
	"github.com/newsdesk/core/internal/pkg/redis"
	"github.com/newsdesk/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoAuthor is returned when no author can be resolved for a new post.
var ErrNoAuthor = errors.New("no valid author found, please provide author_id")

var validStatuses = map[models.PostStatus]struct{}{
	models.PostStatusDraft:    {},
	models.PostStatusPending:  {},
	models.PostStatusPublish:  {},
	models.PostStatusArchived: {},
	models.PostStatusTrash:    {},
}

// ErrInvalidStatus is returned for an unknown post status value.
var ErrInvalidStatus = errors.New("invalid post status")

// Service handles post business logic: persistence, slug derivation,
// summary generation and the editorial notification side effects.
type Service struct {
	db         *gorm.DB
	summarizer *summarizer.Service
	notifier   *notify.Service
	cache      *redis.Client
	supersede  bool
	logger     *zap.Logger
}

func NewService(db *gorm.DB, sum *summarizer.Service, notifier *notify.Service, cache *redis.Client, supersedePending bool, logger *zap.Logger) *Service {
	return &Service{
		db:         db,
		summarizer: sum,
		notifier:   notifier,
		cache:      cache,
		supersede:  supersedePending,
		logger:     logger,
	}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a title and collapses every non-alphanumeric run
// into a single dash.
func Slugify(title string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// uniqueSlug appends -2, -3, ... until the slug is free. The suffix
// sequence is deterministic so retried requests converge.
func (s *Service) uniqueSlug(base string) (string, error) {
	slug := base
	for i := 2; ; i++ {
		var count int64
		if err := s.db.Model(&models.PostModel{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// resolveAuthor picks the author for a new post: explicit author_id if it
// matches a user, otherwise any administrator.
func (s *Service) resolveAuthor(authorID string) (*models.UserModel, error) {
	if authorID != "" {
		var u models.UserModel
		err := s.db.First(&u, "id = ?", authorID).Error
		if err == nil {
			return &u, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	var admin models.UserModel
	err := s.db.First(&admin, "role = ?", models.RoleAdministrator).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoAuthor
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Create inserts a new post, derives a unique slug, generates the AI
// summary (fallback: excerpt), files a pending review notification and
// pings the author channel. Only the store write is load-bearing; both
// side channels are best-effort.
func (s *Service) Create(ctx context.Context, dto *CreatePostDTO) (*models.PostModel, error) {
	status := models.PostStatusDraft
	if dto.Status != "" {
		status = models.PostStatus(dto.Status)
		if _, ok := validStatuses[status]; !ok {
			return nil, ErrInvalidStatus
		}
	}

	author, err := s.resolveAuthor(dto.AuthorID)
	if err != nil {
		return nil, err
	}

	base := dto.Slug
	if base == "" {
		base = Slugify(dto.Title)
	}
	slug, err := s.uniqueSlug(base)
	if err != nil {
		return nil, err
	}

	summary, err := s.summarizer.Generate(ctx, dto.Content)
	if err != nil || summary == "" {
		summary = dto.Excerpt
	}

	post := models.PostModel{
		Title:         dto.Title,
		Slug:          slug,
		Content:       dto.Content,
		Excerpt:       dto.Excerpt,
		Summary:       summary,
		FeaturedImage: dto.FeaturedImage,
		Status:        status,
		AuthorID:      author.ID,
	}
	if status == models.PostStatusPublish {
		now := time.Now()
		post.PublishedAt = &now
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}

	if err := s.replaceTaxonomy(&post, dto.CategoryIDs, dto.TagIDs); err != nil {
		return nil, err
	}

	description := summary
	if description == "" {
		description = "New article added: " + post.Title
	}
	s.fileNotification(&post, author.Username, models.ActionAdd, description)

	if s.notifier != nil {
		s.notifier.PostSubmitted(post.Title, author.Username)
	}

	return s.GetByID(post.ID)
}

// Update patches a post by ID and files an edit notification. Setting
// status to publish stamps published_at once; later transitions never
// clear it.
func (s *Service) Update(id string, dto *UpdatePostDTO) (*models.PostModel, error) {
	post, err := s.GetByID(id)
	if err != nil || post == nil {
		return post, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.Slug != nil && *dto.Slug != post.Slug {
		slug, err := s.uniqueSlug(*dto.Slug)
		if err != nil {
			return nil, err
		}
		updates["slug"] = slug
	}
	if dto.Excerpt != nil {
		updates["excerpt"] = *dto.Excerpt
	}
	if dto.FeaturedImage != nil {
		updates["featured_image"] = *dto.FeaturedImage
	}
	if dto.Status != nil {
		status := models.PostStatus(*dto.Status)
		if _, ok := validStatuses[status]; !ok {
			return nil, ErrInvalidStatus
		}
		updates["status"] = status
		if status == models.PostStatusPublish && post.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
	}
	if len(updates) > 0 {
		if err := s.db.Model(post).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := s.replaceTaxonomy(post, dto.CategoryIDs, dto.TagIDs); err != nil {
		return nil, err
	}

	title := post.Title
	if dto.Title != nil {
		title = *dto.Title
	}
	authorName := "Unknown User"
	if post.Author != nil {
		authorName = post.Author.Username
	}
	s.fileNotification(post, authorName, models.ActionEdit, "Article updated: "+title)

	return s.GetByID(id)
}

// replaceTaxonomy swaps the category and tag associations. A nil slice
// means "leave unchanged"; an empty slice clears.
func (s *Service) replaceTaxonomy(post *models.PostModel, categoryIDs, tagIDs []string) error {
	if categoryIDs != nil {
		var cats []models.CategoryModel
		if len(categoryIDs) > 0 {
			if err := s.db.Find(&cats, "id IN ?", categoryIDs).Error; err != nil {
				return err
			}
		}
		if err := s.db.Model(post).Association("Categories").Replace(cats); err != nil {
			return err
		}
	}
	if tagIDs != nil {
		var tags []models.TagModel
		if len(tagIDs) > 0 {
			if err := s.db.Find(&tags, "id IN ?", tagIDs).Error; err != nil {
				return err
			}
		}
		if err := s.db.Model(post).Association("Tags").Replace(tags); err != nil {
			return err
		}
	}
	return nil
}

// fileNotification records a pending review item for the post. With
// supersession on, an outstanding pending item for the same post is
// reused so the review queue holds at most one entry per post.
func (s *Service) fileNotification(post *models.PostModel, userName string, action models.NotificationAction, description string) {
	if s.supersede {
		res := s.db.Model(&models.NotificationModel{}).
			Where("post_id = ? AND status = ?", post.ID, models.NotificationPending).
			Updates(map[string]interface{}{
				"user_name":   userName,
				"action":      action,
				"target":      post.Title,
				"description": description,
			})
		if res.Error == nil && res.RowsAffected > 0 {
			return
		}
		if res.Error != nil && s.logger != nil {
			s.logger.Warn("pending notification supersede failed", zap.Error(res.Error))
		}
	}

	n := models.NotificationModel{
		UserName:    userName,
		Action:      action,
		Target:      post.Title,
		Status:      models.NotificationPending,
		Description: description,
		Priority:    models.PriorityMedium,
		Category:    models.CategoryNews,
		PostID:      &post.ID,
	}
	if err := s.db.Create(&n).Error; err != nil && s.logger != nil {
		s.logger.Warn("failed to file review notification",
			zap.String("post_id", post.ID), zap.Error(err))
	}
}

// List returns a paginated, filtered list of posts.
func (s *Service) List(q pagination.Query, lq ListQuery, sort pagination.Sort) ([]models.PostModel, response.Pagination, error) {
	tx := s.db.Model(&models.PostModel{}).
		Preload("Author").
		Preload("Categories").
		Preload("Tags").
		Order("posts." + sort.Clause())

	if lq.Status != "" {
		tx = tx.Where("posts.status = ?", lq.Status)
	}
	if lq.Search != "" {
		like := "%" + lq.Search + "%"
		tx = tx.Where("posts.title LIKE ? OR posts.content LIKE ?", like, like)
	}
	if lq.Category != "" {
		tx = tx.Where(`EXISTS (
			SELECT 1 FROM post_categories pc
			JOIN categories ON categories.id = pc.category_model_id
			WHERE pc.post_model_id = posts.id AND categories.slug = ?)`, lq.Category)
	}
	if lq.Tag != "" {
		tx = tx.Where(`EXISTS (
			SELECT 1 FROM post_tags pt
			JOIN tags ON tags.id = pt.tag_model_id
			WHERE pt.post_model_id = posts.id AND tags.slug = ?)`, lq.Tag)
	}

	var posts []models.PostModel
	pag, err := pagination.Paginate(tx, q, &posts)
	return posts, pag, err
}

// GetByID fetches a single post with its associations.
func (s *Service) GetByID(id string) (*models.PostModel, error) {
	var post models.PostModel
	err := s.db.Preload("Author").Preload("Editor").
		Preload("Categories").Preload("Tags").
		First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetBySlug fetches a published post by slug and increments its view
// counter. Drafts and pending posts are invisible on this route.
func (s *Service) GetBySlug(slug string) (*models.PostModel, error) {
	var post models.PostModel
	err := s.db.Preload("Author").Preload("Editor").
		Preload("Categories").Preload("Tags").
		Where("slug = ? AND status = ?", slug, models.PostStatusPublish).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := s.db.Model(&models.PostModel{}).Where("id = ?", post.ID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil && s.logger != nil {
		s.logger.Warn("view increment failed", zap.String("post_id", post.ID), zap.Error(err))
	}
	post.Views++
	return &post, nil
}

// Delete soft-deletes a post by ID.
func (s *Service) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.PostModel{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// Popular returns the most viewed published posts.
func (s *Service) Popular(limit int) ([]models.PostModel, error) {
	var posts []models.PostModel
	err := s.db.Preload("Author").Preload("Categories").
		Where("status = ?", models.PostStatusPublish).
		Order("views DESC").Limit(limit).
		Find(&posts).Error
	return posts, err
}

// Recent returns the latest published posts.
func (s *Service) Recent(limit int) ([]models.PostModel, error) {
	var posts []models.PostModel
	err := s.db.Preload("Author").Preload("Categories").
		Where("status = ?", models.PostStatusPublish).
		Order("published_at DESC").Limit(limit).
		Find(&posts).Error
	return posts, err
}

// PurgeTrashed hard-deletes posts that have sat in trash longer than the
// retention window. Run from the housekeeping cron.
func (s *Service) PurgeTrashed(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res := s.db.Unscoped().
		Where("status = ? AND updated_at < ?", models.PostStatusTrash, cutoff).
		Delete(&models.PostModel{})
	return res.RowsAffected, res.Error
}
