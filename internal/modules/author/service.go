package author

import (
	"errors"

	"github.com/newsdesk/core/internal/models"
	"github.com/newsdesk/core/internal/pkg/pagination"
	"github.com/newsdesk/core/internal/pkg/response"
	"gorm.io/gorm"
)

// ErrEmailTaken is returned when a new account reuses an email.
var ErrEmailTaken = errors.New("email already registered")

// ErrUsernameTaken is returned when a new account reuses a username.
var ErrUsernameTaken = errors.New("username already taken")

// AuthorProfile pairs an account with a page of its published posts.
type AuthorProfile struct {
	Author models.UserModel   `json:"author"`
	Posts  []models.PostModel `json:"posts"`
}

// Service manages accounts and the public author profile view.
// Passwords are stored opaque; hashing and credential checks live in
// the upstream auth service, not here.
type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List(lq ListQuery) ([]models.UserModel, error) {
	tx := s.db.Model(&models.UserModel{}).Order("created_at DESC")
	if lq.Role != "" {
		tx = tx.Where("role = ?", lq.Role)
	}
	if lq.Search != "" {
		like := "%" + lq.Search + "%"
		tx = tx.Where("username LIKE ? OR email LIKE ? OR display_name LIKE ?", like, like, like)
	}
	var users []models.UserModel
	return users, tx.Find(&users).Error
}

func (s *Service) GetByID(id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *Service) Create(dto *CreateUserDTO) (*models.UserModel, error) {
	var count int64
	if err := s.db.Model(&models.UserModel{}).
		Where("email = ?", dto.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}
	if err := s.db.Model(&models.UserModel{}).
		Where("username = ?", dto.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	role := models.RoleUser
	if dto.Role != "" {
		role = models.UserRole(dto.Role)
	}
	u := models.UserModel{
		Username:    dto.Username,
		Email:       dto.Email,
		Password:    dto.Password,
		DisplayName: dto.DisplayName,
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		Role:        role,
		URL:         dto.URL,
	}
	return &u, s.db.Create(&u).Error
}

func (s *Service) Update(id string, dto *UpdateUserDTO) (*models.UserModel, error) {
	u, err := s.GetByID(id)
	if err != nil || u == nil {
		return u, err
	}

	updates := map[string]interface{}{}
	if dto.Email != nil {
		updates["email"] = *dto.Email
	}
	if dto.DisplayName != nil {
		updates["display_name"] = *dto.DisplayName
	}
	if dto.FirstName != nil {
		updates["first_name"] = *dto.FirstName
	}
	if dto.LastName != nil {
		updates["last_name"] = *dto.LastName
	}
	if dto.Role != nil {
		updates["role"] = *dto.Role
	}
	if dto.URL != nil {
		updates["url"] = *dto.URL
	}
	if dto.Password != nil && *dto.Password != "" {
		updates["password"] = *dto.Password
	}
	if len(updates) > 0 {
		if err := s.db.Model(u).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return u, nil
}

func (s *Service) Delete(id string) (bool, error) {
	res := s.db.Delete(&models.UserModel{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// Profile resolves an author by username (or id fallback) and returns
// their published posts, newest first.
func (s *Service) Profile(username string, q pagination.Query) (*AuthorProfile, response.Pagination, error) {
	var user models.UserModel
	err := s.db.Where("username = ? OR id = ?", username, username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.Pagination{}, nil
		}
		return nil, response.Pagination{}, err
	}

	tx := s.db.Model(&models.PostModel{}).
		Preload("Author").
		Preload("Categories").
		Where("author_id = ? AND status = ?", user.ID, models.PostStatusPublish).
		Order("published_at DESC")

	var posts []models.PostModel
	pag, err := pagination.Paginate(tx, q, &posts)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return &AuthorProfile{Author: user, Posts: posts}, pag, nil
}
