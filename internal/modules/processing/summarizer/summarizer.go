package summarizer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/newsdesk/core/internal/config"
	openai "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	"go.uber.org/zap"
)

const (
	remoteTimeout    = 10 * time.Second
	summaryMaxTokens = 300
)

var errEmptyContent = errors.New("content is required")

const summaryPrompt = `You are an assistant that summarizes news articles.

Task: condense the following article into 2-4 dense, informative sentences.

Rules:
- Capture the main points: who, what, when, where, why
- Use clear, formal language
- Do not add information absent from the article
- Do not prefix the output with "Summary:" or any label

Article:
`

// Service generates article summaries through an OpenAI-compatible
// chat-completions endpoint, falling back to a deterministic extractive
// summary when the remote call is unavailable or fails.
//
// The client is constructed once at startup and injected; there is no
// lazy module-level singleton.
type Service struct {
	client  openai.Client
	model   string
	enabled bool
	logger  *zap.Logger
}

// New builds the summarizer. An empty API key disables the remote call
// entirely; Generate then always uses the extractive fallback.
func New(cfg config.SummaryConfig, logger *zap.Logger) *Service {
	s := &Service{model: cfg.Model, logger: logger}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return s
	}
	s.enabled = true
	s.client = openai.NewClient(
		openaioption.WithAPIKey(cfg.APIKey),
		openaioption.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")),
		openaioption.WithMaxRetries(0),
	)
	return s
}

// Generate returns a summary for the article content. The remote call is
// time-bounded; any failure degrades to the extractive fallback so post
// creation is never blocked on the summarizer.
func (s *Service) Generate(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", errEmptyContent
	}

	if s.enabled {
		summary, err := s.generateRemote(ctx, content)
		if err == nil && summary != "" {
			return summary, nil
		}
		if err != nil && s.logger != nil {
			s.logger.Warn("remote summarization failed, using fallback", zap.Error(err))
		}
	}

	return Extract(content), nil
}

func (s *Service) generateRemote(ctx context.Context, content string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(summaryPrompt + content),
		},
		MaxTokens:   openai.Int(summaryMaxTokens),
		Temperature: openai.Float(0.3),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("summarizer: empty completion")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
