package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort        = 3200
	defaultEnv         = "development"
	defaultDBHost      = "127.0.0.1"
	defaultDBPort      = 3306
	defaultDBUser      = "root"
	defaultDBName      = "newsdesk"
	defaultDBCharset   = "utf8mb4"
	defaultRedisURL    = "redis://localhost:6379/0"
	defaultSummaryBase = "https://api.groq.com/openai/v1"
	defaultSummaryMdl  = "llama-3.1-8b-instant"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	AdminURL       string         `yaml:"admin_url"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	Database       DatabaseConfig `yaml:"database"`
	RedisURL       string         `yaml:"redis_url"`
	Telegram       TelegramConfig `yaml:"telegram"`
	Summarizer     SummaryConfig  `yaml:"summarizer"`
	Workflow       WorkflowConfig `yaml:"workflow"`
}

// DatabaseConfig describes the MySQL connection. DSN wins when set.
type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
}

// TelegramConfig holds the bot credential and the per-channel thread ids
// inside the shared editorial group.
type TelegramConfig struct {
	BotToken      string `yaml:"bot_token"`
	ChatID        string `yaml:"chat_id"`
	AuthorTopicID int    `yaml:"author_topic_id"`
	EditorTopicID int    `yaml:"editor_topic_id"`
}

// SummaryConfig selects the OpenAI-compatible summarization endpoint.
// An empty APIKey disables the remote call; the extractive fallback is
// used instead.
type SummaryConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// WorkflowConfig tunes the editorial workflow engine.
type WorkflowConfig struct {
	// SupersedePending keeps at most one pending review item per post:
	// a new add/edit reuses the outstanding pending notification instead
	// of filing a duplicate. Off restores at-least-once filing.
	SupersedePending *bool `yaml:"supersede_pending"`
}

// SupersedePendingEnabled defaults to true when unset.
func (w WorkflowConfig) SupersedePendingEnabled() bool {
	return w.SupersedePending == nil || *w.SupersedePending
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// DSN renders the MySQL connection string.
func (c *AppConfig) DSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Database.User, c.Database.Password,
		c.Database.Host, c.Database.Port,
		c.Database.Name, c.Database.Charset,
	)
}

// Load reads and validates the YAML config file. A missing file yields
// the development defaults.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{
		Port:     defaultPort,
		Env:      defaultEnv,
		RedisURL: defaultRedisURL,
		Database: DatabaseConfig{
			Host:    defaultDBHost,
			Port:    defaultDBPort,
			User:    defaultDBUser,
			Name:    defaultDBName,
			Charset: defaultDBCharset,
		},
		Summarizer: SummaryConfig{
			BaseURL: defaultSummaryBase,
			Model:   defaultSummaryMdl,
		},
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.Database.Charset == "" {
		cfg.Database.Charset = defaultDBCharset
	}
	if cfg.Summarizer.BaseURL == "" {
		cfg.Summarizer.BaseURL = defaultSummaryBase
	}
	if cfg.Summarizer.Model == "" {
		cfg.Summarizer.Model = defaultSummaryMdl
	}
	return cfg, nil
}
