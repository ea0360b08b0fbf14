package notification

import (
	"errors"
	"time"

	"github.com/newsdesk/core/internal/models"
	"github.com/newsdesk/core/internal/modules/workflow/notify"
	"github.com/newsdesk/core/internal/pkg/pagination"
	"github.com/newsdesk/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrAlreadyDecided is returned when a decision races against (or
// repeats) another decision on the same review item.
var ErrAlreadyDecided = errors.New("notification has already been decided")

const defaultRejectionReason = "Rejected by editor"

// Service owns the editorial review queue: pending work items and the
// approve/reject transitions that move posts through the workflow.
type Service struct {
	db       *gorm.DB
	notifier *notify.Service
	logger   *zap.Logger
}

func NewService(db *gorm.DB, notifier *notify.Service, logger *zap.Logger) *Service {
	return &Service{db: db, notifier: notifier, logger: logger}
}

// List returns the filtered, paginated review queue.
func (s *Service) List(q pagination.Query, lq ListQuery, sort pagination.Sort) ([]models.NotificationModel, response.Pagination, error) {
	tx := s.db.Model(&models.NotificationModel{}).
		Preload("Post").
		Order(sort.Clause())

	if lq.Status != "" {
		tx = tx.Where("status = ?", lq.Status)
	}
	if lq.Category != "" {
		tx = tx.Where("category = ?", lq.Category)
	}
	if lq.Search != "" {
		like := "%" + lq.Search + "%"
		tx = tx.Where("user_name LIKE ? OR target LIKE ? OR description LIKE ?", like, like, like)
	}

	var items []models.NotificationModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(id string) (*models.NotificationModel, error) {
	var n models.NotificationModel
	if err := s.db.Preload("Post").First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

// Create files a review item directly. Items always start pending.
func (s *Service) Create(dto *CreateNotificationDTO) (*models.NotificationModel, error) {
	n := models.NotificationModel{
		UserName:    dto.UserName,
		Action:      models.NotificationAction(dto.Action),
		Target:      dto.Target,
		Status:      models.NotificationPending,
		Description: dto.Description,
		Priority:    dto.priority(),
		Category:    dto.category(),
		PostID:      dto.PostID,
	}
	if err := s.db.Create(&n).Error; err != nil {
		return nil, err
	}
	return s.GetByID(n.ID)
}

// Decide applies an editor's approve/reject decision. The status flip is
// guarded by a compare-and-set on the pending state, so exactly one of
// two racing decisions wins; the loser sees ErrAlreadyDecided.
func (s *Service) Decide(id string, dto *DecideDTO) (*models.NotificationModel, error) {
	n, err := s.GetByID(id)
	if err != nil || n == nil {
		return n, err
	}

	newStatus := models.NotificationStatus(dto.Status)
	res := s.db.Model(&models.NotificationModel{}).
		Where("id = ? AND status = ?", id, models.NotificationPending).
		Update("status", newStatus)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyDecided
	}

	editor := dto.Editor
	if editor == "" {
		editor = "Editor"
	}

	if n.PostID != nil {
		s.applyToPost(n, newStatus, dto, editor)
	}

	return s.GetByID(id)
}

// applyToPost carries the decision over to the underlying post. A post
// that disappeared since filing is logged and skipped; the decision on
// the review item itself stands.
func (s *Service) applyToPost(n *models.NotificationModel, status models.NotificationStatus, dto *DecideDTO, editor string) {
	var post models.PostModel
	if err := s.db.Preload("Author").First(&post, "id = ?", *n.PostID).Error; err != nil {
		if s.logger != nil {
			s.logger.Warn("decided notification references missing post",
				zap.String("notification_id", n.ID),
				zap.String("post_id", *n.PostID),
				zap.Error(err))
		}
		return
	}

	authorName := ""
	if post.Author != nil {
		authorName = post.Author.Username
	}

	switch status {
	case models.NotificationApproved:
		postStatus := models.PostStatusPublish
		if dto.PostStatus != "" {
			postStatus = models.PostStatus(dto.PostStatus)
		}
		updates := map[string]interface{}{
			"status":           postStatus,
			"rejection_reason": nil,
		}
		// published_at is stamped once, on the first transition into
		// publish, and survives later rejections or archiving.
		if postStatus == models.PostStatusPublish && post.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
		if err := s.db.Model(&post).Updates(updates).Error; err != nil {
			if s.logger != nil {
				s.logger.Error("failed to apply approval to post",
					zap.String("post_id", post.ID), zap.Error(err))
			}
			return
		}
		if s.notifier != nil {
			s.notifier.PostApproved(post.Title, authorName, editor, post.ID)
		}

	case models.NotificationRejected:
		reason := dto.RejectionReason
		if reason == "" {
			reason = defaultRejectionReason
		}
		updates := map[string]interface{}{
			"status":           models.PostStatusDraft,
			"rejection_reason": reason,
		}
		if err := s.db.Model(&post).Updates(updates).Error; err != nil {
			if s.logger != nil {
				s.logger.Error("failed to apply rejection to post",
					zap.String("post_id", post.ID), zap.Error(err))
			}
			return
		}
		if s.notifier != nil {
			s.notifier.PostRejected(post.Title, authorName, editor)
		}
	}
}

// Delete removes a review item.
func (s *Service) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.NotificationModel{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// Stats counts the queue by decision state for the dashboard.
func (s *Service) Stats() (*Stats, error) {
	var out Stats
	counts := []struct {
		dest  *int64
		where []interface{}
	}{
		{&out.Total, nil},
		{&out.Pending, []interface{}{"status = ?", models.NotificationPending}},
		{&out.Approved, []interface{}{"status = ?", models.NotificationApproved}},
		{&out.Rejected, []interface{}{"status = ?", models.NotificationRejected}},
		{&out.HighPriority, []interface{}{"priority = ?", models.PriorityHigh}},
	}
	for _, c := range counts {
		tx := s.db.Model(&models.NotificationModel{})
		if c.where != nil {
			tx = tx.Where(c.where[0], c.where[1:]...)
		}
		if err := tx.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return &out, nil
}
