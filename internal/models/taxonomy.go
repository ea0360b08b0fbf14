package models

// CategoryModel is a taxonomy term with an optional one-level parent.
type CategoryModel struct {
	Base
	Name            string  `json:"name"             gorm:"type:varchar(200);not null"`
	Slug            string  `json:"slug"             gorm:"type:varchar(200);uniqueIndex;not null"`
	Description     string  `json:"description"      gorm:"type:text"`
	ParentID        *string `json:"parent_id"        gorm:"type:char(36);index"`
	DisplayOrder    int     `json:"display_order"    gorm:"default:0"`
	MetaTitle       string  `json:"meta_title"       gorm:"type:varchar(255)"`
	MetaDescription string  `json:"meta_description" gorm:"type:text"`

	Parent   *CategoryModel  `json:"parent,omitempty"   gorm:"foreignKey:ParentID"`
	Children []CategoryModel `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	Posts    []PostModel     `json:"posts,omitempty"    gorm:"many2many:post_categories"`
}

func (CategoryModel) TableName() string { return "categories" }

// TagModel is a flat taxonomy term.
type TagModel struct {
	Base
	Name        string `json:"name"        gorm:"type:varchar(200);not null"`
	Slug        string `json:"slug"        gorm:"type:varchar(200);uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`

	Posts []PostModel `json:"posts,omitempty" gorm:"many2many:post_tags"`
}

func (TagModel) TableName() string { return "tags" }
