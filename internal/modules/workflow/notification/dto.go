package notification

import "github.com/newsdesk/core/internal/models"

// CreateNotificationDTO files a review item by hand (dashboard use).
type CreateNotificationDTO struct {
	UserName    string  `json:"user_name" binding:"required"`
	Action      string  `json:"action"    binding:"required,oneof=add edit delete"`
	Target      string  `json:"target"    binding:"required"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"  binding:"omitempty,oneof=low medium high"`
	Category    string  `json:"category"  binding:"omitempty,oneof=news publication profile system achievement"`
	PostID      *string `json:"post_id"`
}

// DecideDTO carries an editor's decision on a pending review item.
// PostStatus only applies to approvals; RejectionReason to rejections.
type DecideDTO struct {
	Status          string `json:"status" binding:"required,oneof=approved rejected"`
	PostStatus      string `json:"post_status"      binding:"omitempty,oneof=publish archived draft"`
	RejectionReason string `json:"rejection_reason"`
	Editor          string `json:"editor"`
}

// ListQuery holds the optional filters for the review queue.
type ListQuery struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	Search   string `form:"search"`
}

// Stats summarizes the review queue for the dashboard header.
type Stats struct {
	Total        int64 `json:"total"`
	Pending      int64 `json:"pending"`
	Approved     int64 `json:"approved"`
	Rejected     int64 `json:"rejected"`
	HighPriority int64 `json:"highPriority"`
}

func (d *CreateNotificationDTO) priority() models.NotificationPriority {
	if d.Priority == "" {
		return models.PriorityMedium
	}
	return models.NotificationPriority(d.Priority)
}

func (d *CreateNotificationDTO) category() models.NotificationCategory {
	if d.Category == "" {
		return models.CategoryNews
	}
	return models.NotificationCategory(d.Category)
}
