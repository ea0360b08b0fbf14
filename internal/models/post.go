package models

import "time"

// PostStatus is the lifecycle state of a post.
type PostStatus string

const (
	PostStatusDraft    PostStatus = "draft"
	PostStatusPending  PostStatus = "pending"
	PostStatusPublish  PostStatus = "publish"
	PostStatusArchived PostStatus = "archived"
	PostStatusTrash    PostStatus = "trash"
)

// CommentSetting controls whether a post accepts new comments.
type CommentSetting string

const (
	CommentsOpen   CommentSetting = "open"
	CommentsClosed CommentSetting = "closed"
)

// PostModel is a news article.
type PostModel struct {
	Base
	Title           string         `json:"title"            gorm:"type:varchar(500);not null"`
	Slug            string         `json:"slug"             gorm:"type:varchar(500);uniqueIndex;not null"`
	Content         string         `json:"content"          gorm:"type:longtext"`
	Excerpt         string         `json:"excerpt"          gorm:"type:text"`
	Summary         string         `json:"summary"          gorm:"type:text"`
	FeaturedImage   string         `json:"featured_image"   gorm:"type:varchar(500)"`
	Status          PostStatus     `json:"status"           gorm:"type:varchar(16);default:draft;index"`
	PublishedAt     *time.Time     `json:"published_at"     gorm:"index"`
	RejectionReason *string        `json:"rejection_reason" gorm:"type:text"`
	Views           int            `json:"views"            gorm:"default:0"`
	IsFeatured      bool           `json:"is_featured"      gorm:"default:false"`
	CommentStatus   CommentSetting `json:"comment_status"   gorm:"type:varchar(8);default:open"`
	MetaTitle       string         `json:"meta_title"       gorm:"type:varchar(255)"`
	MetaDescription string         `json:"meta_description" gorm:"type:text"`

	AuthorID string     `json:"author_id" gorm:"type:char(36);not null;index"`
	Author   *UserModel `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	EditorID *string    `json:"editor_id" gorm:"type:char(36);index"`
	Editor   *UserModel `json:"editor,omitempty" gorm:"foreignKey:EditorID"`

	Categories []CategoryModel `json:"categories,omitempty" gorm:"many2many:post_categories"`
	Tags       []TagModel      `json:"tags,omitempty"       gorm:"many2many:post_tags"`

	Comments      []CommentModel      `json:"comments,omitempty"      gorm:"foreignKey:PostID"`
	Likes         []PostLikeModel     `json:"likes,omitempty"         gorm:"foreignKey:PostID"`
	Notifications []NotificationModel `json:"notifications,omitempty" gorm:"foreignKey:PostID"`
}

func (PostModel) TableName() string { return "posts" }

// PostLikeModel records one like per (post, identifier) pair.
// The identifier is an opaque client token (usually an IP) or a user id,
// so the same visitor cannot double-count a post.
type PostLikeModel struct {
	Base
	PostID         string  `json:"post_id"         gorm:"type:char(36);not null;uniqueIndex:uniq_post_like,priority:1"`
	UserIdentifier string  `json:"user_identifier" gorm:"type:varchar(255);not null;uniqueIndex:uniq_post_like,priority:2"`
	UserID         *string `json:"user_id"         gorm:"type:char(36);index"`

	Post *PostModel `json:"post,omitempty" gorm:"foreignKey:PostID"`
}

func (PostLikeModel) TableName() string { return "post_likes" }
