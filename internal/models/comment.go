package models

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentApproved CommentStatus = "approved"
	CommentPending  CommentStatus = "pending"
	CommentSpam     CommentStatus = "spam"
	CommentTrash    CommentStatus = "trash"
)

// CommentModel is reader feedback on a post, threaded one level deep
// through ParentID.
type CommentModel struct {
	Base
	PostID      string        `json:"post_id"      gorm:"type:char(36);not null;index"`
	ParentID    *string       `json:"parent_id"    gorm:"type:char(36);index"`
	AuthorName  string        `json:"author_name"  gorm:"type:varchar(255);not null"`
	AuthorEmail string        `json:"author_email" gorm:"type:varchar(100);not null;index"`
	AuthorURL   string        `json:"author_url"   gorm:"type:varchar(200)"`
	AuthorIP    string        `json:"author_ip"    gorm:"type:varchar(100)"`
	AuthorAgent string        `json:"author_agent" gorm:"type:varchar(255)"`
	Content     string        `json:"content"      gorm:"type:text;not null"`
	Status      CommentStatus `json:"status"       gorm:"type:varchar(16);default:pending;index"`
	UserID      *string       `json:"user_id"      gorm:"type:char(36)"`

	Post    *PostModel     `json:"post,omitempty"    gorm:"foreignKey:PostID"`
	User    *UserModel     `json:"user,omitempty"    gorm:"foreignKey:UserID"`
	Replies []CommentModel `json:"replies,omitempty" gorm:"foreignKey:ParentID"`
}

func (CommentModel) TableName() string { return "comments" }
