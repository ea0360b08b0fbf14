package models

// PageContentModel stores a structured content document for a static page,
// addressed by a stable key.
type PageContentModel struct {
	Base
	PageKey string                 `json:"page_key" gorm:"type:varchar(100);uniqueIndex;not null"`
	Title   string                 `json:"title"    gorm:"type:varchar(255);not null"`
	Content map[string]interface{} `json:"content"  gorm:"type:longtext;serializer:json"`
	Status  PostStatus             `json:"status"   gorm:"type:varchar(16);default:publish"`
}

func (PageContentModel) TableName() string { return "page_contents" }

// SettingType is the input widget hint for a site setting.
type SettingType string

const (
	SettingText     SettingType = "text"
	SettingTextarea SettingType = "textarea"
	SettingEmail    SettingType = "email"
	SettingURL      SettingType = "url"
	SettingImage    SettingType = "image"
)

// SettingModel is one key-value site setting.
type SettingModel struct {
	Base
	Key   string      `json:"key"   gorm:"type:varchar(100);uniqueIndex;not null"`
	Value string      `json:"value" gorm:"type:text"`
	Group string      `json:"group" gorm:"type:varchar(50);default:general;not null"`
	Label string      `json:"label" gorm:"type:varchar(255)"`
	Type  SettingType `json:"type"  gorm:"type:varchar(16);default:text"`
}

func (SettingModel) TableName() string { return "settings" }

// PublicationModel is an academic publication listed on the site.
type PublicationModel struct {
	Base
	Title   string `json:"title"   gorm:"type:varchar(255);not null"`
	Authors string `json:"authors" gorm:"type:varchar(255);not null"`
	Year    int    `json:"year"    gorm:"not null"`
	Journal string `json:"journal" gorm:"type:varchar(255)"`
	Link    string `json:"link"    gorm:"type:varchar(255)"`
}

func (PublicationModel) TableName() string { return "publications" }

// AchievementModel records a student achievement.
type AchievementModel struct {
	Base
	Title string `json:"title" gorm:"type:varchar(255);not null"`
	Name  string `json:"name"  gorm:"type:varchar(255);not null"`
	Year  int    `json:"year"  gorm:"column:years;not null"`
}

func (AchievementModel) TableName() string { return "achievements" }

// AboutSectionModel is one section of the about page, addressed by key.
type AboutSectionModel struct {
	Base
	SectionKey  string                 `json:"section_key"  gorm:"type:varchar(50);uniqueIndex;not null"`
	Title       string                 `json:"title"        gorm:"type:varchar(255)"`
	Content     string                 `json:"content"      gorm:"type:longtext"`
	ImageURL    string                 `json:"image_url"    gorm:"type:text"`
	OrderNumber int                    `json:"order_number" gorm:"default:0"`
	Metadata    map[string]interface{} `json:"metadata"     gorm:"type:longtext;serializer:json"`
}

func (AboutSectionModel) TableName() string { return "about_sections" }
