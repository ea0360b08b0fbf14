package setting

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk/core/internal/models"
	"github.com/newsdesk/core/internal/pkg/response"
	"gorm.io/gorm"
)

// defaultSettings seeds an empty installation; values stay blank until
// the site owner fills them in.
var defaultSettings = []models.SettingModel{
	{Key: "site_name", Group: "general", Label: "Site Name", Type: models.SettingText},
	{Key: "tagline", Group: "general", Label: "Tagline", Type: models.SettingText},
	{Key: "description", Group: "general", Label: "Site Description", Type: models.SettingTextarea},

	{Key: "email", Group: "contact", Label: "Email", Type: models.SettingEmail},
	{Key: "phone", Group: "contact", Label: "Phone", Type: models.SettingText},
	{Key: "address", Group: "contact", Label: "Address", Type: models.SettingTextarea},

	{Key: "facebook", Group: "social", Label: "Facebook", Type: models.SettingURL},
	{Key: "instagram", Group: "social", Label: "Instagram", Type: models.SettingURL},
	{Key: "youtube", Group: "social", Label: "YouTube", Type: models.SettingURL},
	{Key: "twitter", Group: "social", Label: "Twitter / X", Type: models.SettingURL},
}

// UpdateSettingDTO patches one setting. Everything besides the value is
// optional metadata.
type UpdateSettingDTO struct {
	Value string `json:"value"`
	Group string `json:"group"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// BulkUpdateDTO carries a batch of setting writes.
type BulkUpdateDTO struct {
	Settings []BulkEntry `json:"settings" binding:"required"`
}

type BulkEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Group string `json:"group"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// SaveAllDTO is the settings form shape: one flat object of well-known
// fields. Absent fields are left untouched.
type SaveAllDTO struct {
	SiteName    *string `json:"siteName"`
	Tagline     *string `json:"tagline"`
	Description *string `json:"description"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Facebook    *string `json:"facebook"`
	Instagram   *string `json:"instagram"`
	YouTube     *string `json:"youtube"`
	Twitter     *string `json:"twitter"`
}

// GroupedSettings is the public read shape: group → key → value.
type GroupedSettings struct {
	Data map[string]map[string]string `json:"data"`
	Raw  []models.SettingModel        `json:"raw"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) all() ([]models.SettingModel, error) {
	var settings []models.SettingModel
	err := s.db.Order("`group` ASC, created_at ASC").Find(&settings).Error
	return settings, err
}

// List returns every setting grouped for the frontend, seeding the
// defaults on first touch of an empty installation.
func (s *Service) List() (*GroupedSettings, error) {
	settings, err := s.all()
	if err != nil {
		return nil, err
	}
	if len(settings) == 0 {
		seed := make([]models.SettingModel, len(defaultSettings))
		copy(seed, defaultSettings)
		if err := s.db.Create(&seed).Error; err != nil {
			return nil, err
		}
		if settings, err = s.all(); err != nil {
			return nil, err
		}
	}

	grouped := map[string]map[string]string{}
	for _, st := range settings {
		if grouped[st.Group] == nil {
			grouped[st.Group] = map[string]string{}
		}
		grouped[st.Group][st.Key] = st.Value
	}
	return &GroupedSettings{Data: grouped, Raw: settings}, nil
}

func (s *Service) GetByKey(key string) (*models.SettingModel, error) {
	var st models.SettingModel
	if err := s.db.Where("`key` = ?", key).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

// ByGroup returns one group's settings as a flat key → value map.
func (s *Service) ByGroup(group string) (*GroupedSettings, error) {
	var settings []models.SettingModel
	err := s.db.Where("`group` = ?", group).Order("created_at ASC").Find(&settings).Error
	if err != nil {
		return nil, err
	}
	flat := map[string]string{}
	for _, st := range settings {
		flat[st.Key] = st.Value
	}
	return &GroupedSettings{Data: map[string]map[string]string{group: flat}, Raw: settings}, nil
}

// Upsert writes one setting, creating it when missing. Metadata fields
// only overwrite when non-empty.
func (s *Service) Upsert(key string, dto *UpdateSettingDTO) (*models.SettingModel, bool, error) {
	existing, err := s.GetByKey(key)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		st := models.SettingModel{
			Key:   key,
			Value: dto.Value,
			Group: orDefault(dto.Group, "general"),
			Label: dto.Label,
			Type:  models.SettingType(orDefault(dto.Type, string(models.SettingText))),
		}
		return &st, true, s.db.Create(&st).Error
	}

	updates := map[string]interface{}{"value": dto.Value}
	if dto.Group != "" {
		updates["group"] = dto.Group
	}
	if dto.Label != "" {
		updates["label"] = dto.Label
	}
	if dto.Type != "" {
		updates["type"] = dto.Type
	}
	err = s.db.Model(existing).Updates(updates).Error
	return existing, false, err
}

// BulkUpdate upserts a batch; entries without a key are skipped.
func (s *Service) BulkUpdate(dto *BulkUpdateDTO) ([]models.SettingModel, error) {
	out := make([]models.SettingModel, 0, len(dto.Settings))
	for _, entry := range dto.Settings {
		if entry.Key == "" {
			continue
		}
		st, _, err := s.Upsert(entry.Key, &UpdateSettingDTO{
			Value: entry.Value,
			Group: entry.Group,
			Label: entry.Label,
			Type:  entry.Type,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, *st)
	}
	return out, nil
}

// SaveAll maps the settings form onto the well-known keys.
func (s *Service) SaveAll(dto *SaveAllDTO) ([]models.SettingModel, error) {
	form := []struct {
		key   string
		value *string
		group string
		label string
		typ   models.SettingType
	}{
		{"site_name", dto.SiteName, "general", "Site Name", models.SettingText},
		{"tagline", dto.Tagline, "general", "Tagline", models.SettingText},
		{"description", dto.Description, "general", "Site Description", models.SettingTextarea},
		{"email", dto.Email, "contact", "Email", models.SettingEmail},
		{"phone", dto.Phone, "contact", "Phone", models.SettingText},
		{"address", dto.Address, "contact", "Address", models.SettingTextarea},
		{"facebook", dto.Facebook, "social", "Facebook", models.SettingURL},
		{"instagram", dto.Instagram, "social", "Instagram", models.SettingURL},
		{"youtube", dto.YouTube, "social", "YouTube", models.SettingURL},
		{"twitter", dto.Twitter, "social", "Twitter / X", models.SettingURL},
	}
	for _, f := range form {
		if f.value == nil {
			continue
		}
		_, _, err := s.Upsert(f.key, &UpdateSettingDTO{
			Value: *f.value,
			Group: f.group,
			Label: f.label,
			Type:  string(f.typ),
		})
		if err != nil {
			return nil, err
		}
	}
	return s.all()
}

// Initialize seeds the defaults when the table is empty.
func (s *Service) Initialize() (int, bool, error) {
	var count int64
	if err := s.db.Model(&models.SettingModel{}).Count(&count).Error; err != nil {
		return 0, false, err
	}
	if count > 0 {
		return int(count), false, nil
	}
	seed := make([]models.SettingModel, len(defaultSettings))
	copy(seed, defaultSettings)
	if err := s.db.Create(&seed).Error; err != nil {
		return 0, false, err
	}
	return len(seed), true, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/settings")
	g.GET("", h.list)
	g.POST("/initialize", h.initialize)
	g.POST("/save", h.saveAll)
	g.PUT("/bulk", h.bulkUpdate)
	g.GET("/group/:group", h.byGroup)
	g.GET("/:key", h.getByKey)
	g.PUT("/:key", h.update)
}

func (h *Handler) list(c *gin.Context) {
	grouped, err := h.svc.List()
	if err != nil {
		response.InternalError(c, "error fetching settings", err)
		return
	}
	response.OK(c, grouped)
}

func (h *Handler) getByKey(c *gin.Context) {
	st, err := h.svc.GetByKey(c.Param("key"))
	if err != nil {
		response.InternalError(c, "error fetching setting", err)
		return
	}
	if st == nil {
		response.NotFound(c, "setting not found")
		return
	}
	response.OK(c, st)
}

func (h *Handler) byGroup(c *gin.Context) {
	grouped, err := h.svc.ByGroup(c.Param("group"))
	if err != nil {
		response.InternalError(c, "error fetching settings", err)
		return
	}
	response.OK(c, grouped)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateSettingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	st, created, err := h.svc.Upsert(c.Param("key"), &dto)
	if err != nil {
		response.InternalError(c, "error saving setting", err)
		return
	}
	if created {
		response.Created(c, st)
		return
	}
	response.OK(c, st)
}

func (h *Handler) bulkUpdate(c *gin.Context) {
	var dto BulkUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "settings array is required")
		return
	}
	settings, err := h.svc.BulkUpdate(&dto)
	if err != nil {
		response.InternalError(c, "error updating settings", err)
		return
	}
	response.OK(c, settings)
}

func (h *Handler) saveAll(c *gin.Context) {
	var dto SaveAllDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	settings, err := h.svc.SaveAll(&dto)
	if err != nil {
		response.InternalError(c, "error saving settings", err)
		return
	}
	response.OK(c, settings)
}

func (h *Handler) initialize(c *gin.Context) {
	count, seeded, err := h.svc.Initialize()
	if err != nil {
		response.InternalError(c, "error initializing settings", err)
		return
	}
	if !seeded {
		response.OKMsg(c, fmt.Sprintf("settings already initialized (%d)", count))
		return
	}
	response.OKMsg(c, fmt.Sprintf("settings initialized with %d defaults", count))
}
