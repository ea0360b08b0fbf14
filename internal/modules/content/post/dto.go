package post

// CreatePostDTO is the request body for creating a post.
type CreatePostDTO struct {
	Title         string   `json:"title"   binding:"required"`
	Content       string   `json:"content" binding:"required"`
	Slug          string   `json:"slug"`
	Excerpt       string   `json:"excerpt"`
	FeaturedImage string   `json:"featured_image"`
	Status        string   `json:"status"`
	AuthorID      string   `json:"author_id"`
	CategoryIDs   []string `json:"category_ids"`
	TagIDs        []string `json:"tag_ids"`
}

// UpdatePostDTO is the request body for updating a post (all fields optional).
type UpdatePostDTO struct {
	Title         *string  `json:"title"`
	Content       *string  `json:"content"`
	Slug          *string  `json:"slug"`
	Excerpt       *string  `json:"excerpt"`
	FeaturedImage *string  `json:"featured_image"`
	Status        *string  `json:"status"`
	CategoryIDs   []string `json:"category_ids"`
	TagIDs        []string `json:"tag_ids"`
}

// ListQuery holds the optional filters for listing posts.
type ListQuery struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	Tag      string `form:"tag"`
	Search   string `form:"search"`
}
