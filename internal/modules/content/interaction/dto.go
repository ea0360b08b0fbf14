package interaction

// LikeDTO identifies the visitor toggling a like. The identifier is an
// opaque client token; user_id additionally links a logged-in account.
type LikeDTO struct {
	UserIdentifier string  `json:"user_identifier" binding:"required"`
	UserID         *string `json:"user_id"`
}

// LikeState is the post-toggle (or current) like status for a visitor.
type LikeState struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

// CreateCommentDTO is the request body for commenting on a post.
type CreateCommentDTO struct {
	AuthorName  string  `json:"author_name"  binding:"required"`
	AuthorEmail string  `json:"author_email" binding:"required,email"`
	AuthorURL   string  `json:"author_url"`
	Content     string  `json:"content"      binding:"required"`
	ParentID    *string `json:"parent_id"`
	UserID      *string `json:"user_id"`
}

// CommentListQuery filters comment listings.
type CommentListQuery struct {
	Status string `form:"status"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}
