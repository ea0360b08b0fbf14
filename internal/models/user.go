package models

import "time"

// UserRole follows the WordPress role set the content was migrated from.
type UserRole string

const (
	RoleAdministrator UserRole = "administrator"
	RoleEditor        UserRole = "editor"
	RoleAuthor        UserRole = "author"
	RoleContributor   UserRole = "contributor"
	RoleSubscriber    UserRole = "subscriber"
	RoleUser          UserRole = "user"
)

// UserModel is an account used for authorship attribution.
type UserModel struct {
	Base
	Username     string     `json:"username"     gorm:"type:varchar(60);uniqueIndex;not null"`
	Email        string     `json:"email"        gorm:"type:varchar(100);uniqueIndex;not null"`
	Password     string     `json:"-"            gorm:"type:varchar(255);not null"`
	DisplayName  string     `json:"display_name" gorm:"type:varchar(250)"`
	FirstName    string     `json:"first_name"   gorm:"type:varchar(100)"`
	LastName     string     `json:"last_name"    gorm:"type:varchar(100)"`
	Role         UserRole   `json:"role"         gorm:"type:varchar(16);default:user"`
	URL          string     `json:"url"          gorm:"type:varchar(100)"`
	RegisteredAt *time.Time `json:"registered_at"`

	Posts []PostModel `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
}

func (UserModel) TableName() string { return "users" }
