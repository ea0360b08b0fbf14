package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Topic selects which sub-thread of the editorial chat group a message
// goes to.
type Topic string

const (
	// TopicAuthor is the author-facing thread (submission announcements).
	TopicAuthor Topic = "author"
	// TopicEditor is the editor-facing thread (review decisions).
	TopicEditor Topic = "editor"
)

// ErrNotConfigured is returned before any network attempt when the bot
// credential or a destination id is missing.
var ErrNotConfigured = errors.New("telegram: bot token, chat id or topic id not configured")

const defaultAPIBase = "https://api.telegram.org"

// Config holds the bot credential and destination identifiers. One chat
// group carries both threads; each topic maps to a message_thread_id.
type Config struct {
	BotToken      string
	ChatID        string
	AuthorTopicID int
	EditorTopicID int
	APIBase       string // overridable for tests
}

// Client relays plain-text messages to the editorial chat group.
// Construct once at startup and inject; delivery failures are the
// caller's to log, never to propagate.
type Client struct {
	cfg    Config
	http   *resty.Client
	logger *zap.Logger
}

// New builds a Telegram client. The configuration is captured at
// construction; a client with incomplete configuration is still usable
// and fails fast with ErrNotConfigured on Send.
func New(cfg Config, logger *zap.Logger) *Client {
	base := cfg.APIBase
	if base == "" {
		base = defaultAPIBase
	}
	httpClient := resty.New().
		SetBaseURL(base).
		SetTimeout(5 * time.Second)
	return &Client{cfg: cfg, http: httpClient, logger: logger}
}

// Configured reports whether Send can be attempted for the given topic.
func (c *Client) Configured(topic Topic) bool {
	return c.cfg.BotToken != "" && c.cfg.ChatID != "" && c.topicID(topic) != 0
}

type sendMessageRequest struct {
	ChatID          string `json:"chat_id"`
	MessageThreadID int    `json:"message_thread_id"`
	Text            string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send delivers a plain-text message to the given topic's thread.
// No parse_mode is set, so the text needs no markup escaping.
func (c *Client) Send(ctx context.Context, topic Topic, text string) error {
	if !c.Configured(topic) {
		return ErrNotConfigured
	}

	var ack sendMessageResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(sendMessageRequest{
			ChatID:          c.cfg.ChatID,
			MessageThreadID: c.topicID(topic),
			Text:            strings.TrimSpace(text),
		}).
		SetResult(&ack).
		SetError(&ack).
		Post(fmt.Sprintf("/bot%s/sendMessage", c.cfg.BotToken))
	if err != nil {
		return fmt.Errorf("telegram: send: %w", err)
	}
	if resp.IsError() || !ack.OK {
		desc := ack.Description
		if desc == "" {
			desc = resp.Status()
		}
		return fmt.Errorf("telegram: api error: %s", desc)
	}
	return nil
}

// Notify is the fire-and-forget form of Send: it runs in the caller's
// goroutine but swallows the error after logging it, so workflow
// transitions never observe delivery failures.
func (c *Client) Notify(topic Topic, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Send(ctx, topic, text); err != nil {
		if c.logger != nil {
			c.logger.Warn("telegram delivery failed",
				zap.String("topic", string(topic)),
				zap.Error(err),
			)
		}
	}
}

func (c *Client) topicID(topic Topic) int {
	if topic == TopicAuthor {
		return c.cfg.AuthorTopicID
	}
	return c.cfg.EditorTopicID
}
