package models

// NotificationAction identifies what the acting user did to the target.
type NotificationAction string

const (
	ActionAdd    NotificationAction = "add"
	ActionEdit   NotificationAction = "edit"
	ActionDelete NotificationAction = "delete"
)

// NotificationStatus is the editorial decision state of a work item.
type NotificationStatus string

const (
	NotificationPending  NotificationStatus = "pending"
	NotificationApproved NotificationStatus = "approved"
	NotificationRejected NotificationStatus = "rejected"
)

// NotificationPriority orders the editorial review queue.
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

// NotificationCategory groups work items by the kind of content they touch.
type NotificationCategory string

const (
	CategoryNews        NotificationCategory = "news"
	CategoryPublication NotificationCategory = "publication"
	CategoryProfile     NotificationCategory = "profile"
	CategorySystem      NotificationCategory = "system"
	CategoryAchievement NotificationCategory = "achievement"
)

// NotificationModel is an editorial work item: the audit record of one
// pending or decided action on a piece of content. UserName is a snapshot
// of the acting user's name at the time of the action, not a live reference.
type NotificationModel struct {
	Base
	UserName    string               `json:"user_name"   gorm:"type:varchar(255);not null"`
	Action      NotificationAction   `json:"action"      gorm:"type:varchar(8);default:add;not null"`
	Target      string               `json:"target"      gorm:"type:varchar(255);not null"`
	Status      NotificationStatus   `json:"status"      gorm:"type:varchar(16);default:pending;not null;index"`
	Description string               `json:"description" gorm:"type:text"`
	Priority    NotificationPriority `json:"priority"    gorm:"type:varchar(8);default:medium;not null"`
	Category    NotificationCategory `json:"category"    gorm:"type:varchar(16);default:news;not null;index"`

	PostID *string    `json:"post_id" gorm:"type:char(36);index"`
	Post   *PostModel `json:"post,omitempty" gorm:"foreignKey:PostID"`
}

func (NotificationModel) TableName() string { return "notifications" }
