package interaction

import (
	"errors"

	"github.com/newsdesk/core/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrPostNotFound is returned when the target post does not exist.
	ErrPostNotFound = errors.New("post not found")
	// ErrParentNotFound is returned for a reply to a missing comment.
	ErrParentNotFound = errors.New("parent comment not found")
)

// CommentPage is the dashboard-facing comment listing shape.
type CommentPage struct {
	Comments []models.CommentModel `json:"comments"`
	Total    int64                 `json:"total"`
	Limit    int                   `json:"limit"`
	Offset   int                   `json:"offset"`
}

// Service handles reader interactions: likes and comments.
type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) postExists(postID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.PostModel{}).Where("id = ?", postID).Count(&count).Error
	return count > 0, err
}

// ToggleLike flips the like state for one (post, visitor) pair. Two
// toggles in a row restore the original state; the composite unique
// index keeps racing likes from double-counting.
func (s *Service) ToggleLike(postID string, dto *LikeDTO) (*LikeState, error) {
	exists, err := s.postExists(postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	var existing models.PostLikeModel
	err = s.db.Where("post_id = ? AND user_identifier = ?", postID, dto.UserIdentifier).
		First(&existing).Error
	switch {
	case err == nil:
		if err := s.db.Unscoped().Delete(&existing).Error; err != nil {
			return nil, err
		}
		count, err := s.likeCount(postID)
		if err != nil {
			return nil, err
		}
		return &LikeState{Liked: false, LikeCount: count}, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		like := models.PostLikeModel{
			PostID:         postID,
			UserIdentifier: dto.UserIdentifier,
			UserID:         dto.UserID,
		}
		if err := s.db.Create(&like).Error; err != nil {
			return nil, err
		}
		count, err := s.likeCount(postID)
		if err != nil {
			return nil, err
		}
		return &LikeState{Liked: true, LikeCount: count}, nil

	default:
		return nil, err
	}
}

// Likes reports the like count and, when an identifier is given, whether
// that visitor has liked the post.
func (s *Service) Likes(postID, userIdentifier string) (*LikeState, error) {
	exists, err := s.postExists(postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	count, err := s.likeCount(postID)
	if err != nil {
		return nil, err
	}
	state := &LikeState{LikeCount: count}
	if userIdentifier != "" {
		var n int64
		if err := s.db.Model(&models.PostLikeModel{}).
			Where("post_id = ? AND user_identifier = ?", postID, userIdentifier).
			Count(&n).Error; err != nil {
			return nil, err
		}
		state.Liked = n > 0
	}
	return state, nil
}

func (s *Service) likeCount(postID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.PostLikeModel{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// CreateComment adds a comment (or a reply) to a post. Comments are
// auto-approved; moderation happens after the fact via the dashboard.
func (s *Service) CreateComment(postID string, dto *CreateCommentDTO, ip, agent string) (*models.CommentModel, error) {
	exists, err := s.postExists(postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	if dto.ParentID != nil {
		var count int64
		if err := s.db.Model(&models.CommentModel{}).
			Where("id = ?", *dto.ParentID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrParentNotFound
		}
	}

	comment := models.CommentModel{
		PostID:      postID,
		ParentID:    dto.ParentID,
		AuthorName:  dto.AuthorName,
		AuthorEmail: dto.AuthorEmail,
		AuthorURL:   dto.AuthorURL,
		AuthorIP:    ip,
		AuthorAgent: agent,
		Content:     dto.Content,
		Status:      models.CommentApproved,
		UserID:      dto.UserID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// CommentsByPost returns the top-level comments of a post with their
// approved replies threaded in, newest thread first.
func (s *Service) CommentsByPost(postID string, q CommentListQuery) (*CommentPage, error) {
	exists, err := s.postExists(postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	status := q.Status
	if status == "" {
		status = string(models.CommentApproved)
	}
	limit, offset := normalizeWindow(q.Limit, q.Offset)

	tx := s.db.Model(&models.CommentModel{}).
		Where("post_id = ? AND status = ? AND parent_id IS NULL", postID, status)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var comments []models.CommentModel
	err = tx.
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.CommentApproved).Order("created_at ASC")
		}).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return &CommentPage{Comments: comments, Total: total, Limit: limit, Offset: offset}, nil
}

// ListAll is the moderation dashboard view: top-level comments across
// all posts, with the total counting replies as well.
func (s *Service) ListAll(q CommentListQuery) (*CommentPage, error) {
	status := q.Status
	if status == "" {
		status = string(models.CommentApproved)
	}
	limit, offset := normalizeWindow(q.Limit, q.Offset)

	var total int64
	if err := s.db.Model(&models.CommentModel{}).
		Where("status = ?", status).Count(&total).Error; err != nil {
		return nil, err
	}

	var comments []models.CommentModel
	err := s.db.
		Preload("Post").
		Preload("User").
		Where("status = ? AND parent_id IS NULL", status).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return &CommentPage{Comments: comments, Total: total, Limit: limit, Offset: offset}, nil
}

func normalizeWindow(limit, offset int) (int, int) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
