package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk/core/internal/pkg/response"
	"github.com/newsdesk/core/internal/pkg/telegram"
)

const timeLayout = "Monday, 02 Jan 2006 15:04"

// Service formats editorial events into Telegram messages and relays
// them to the right chat topic. Delivery is always fire-and-forget from
// the workflow's point of view; the telegram client logs failures.
type Service struct {
	tg       *telegram.Client
	adminURL string
	now      func() time.Time
}

func NewService(tg *telegram.Client, adminURL string) *Service {
	return &Service{tg: tg, adminURL: strings.TrimRight(adminURL, "/"), now: time.Now}
}

// PostSubmitted announces a new submission on the author topic.
func (s *Service) PostSubmitted(title, author string) {
	if author == "" {
		author = "Unknown"
	}
	text := fmt.Sprintf(
		"📝 New Article Submitted\n\n📰 Title: %s\n✍️ Author: %s\n⏰ Time: %s\n\nStatus: awaiting editor review",
		title, author, s.now().Format(timeLayout),
	)
	go s.tg.Notify(telegram.TopicAuthor, text)
}

// PostApproved announces an approval on the editor topic, linking back
// to the admin dashboard entry for the post.
func (s *Service) PostApproved(title, author, editor, postID string) {
	if author == "" {
		author = "Unknown"
	}
	text := fmt.Sprintf(
		"✅ Article Approved & Published\n\nTitle: %s\nAuthor: %s\nEditor: %s\nTime: %s\n\n🔗 Link:\n%s/admin/news/%s",
		title, author, editor, s.now().Format(timeLayout), s.adminURL, postID,
	)
	go s.tg.Notify(telegram.TopicEditor, text)
}

// PostRejected announces a rejection on the editor topic.
func (s *Service) PostRejected(title, author, editor string) {
	if author == "" {
		author = "Unknown"
	}
	text := fmt.Sprintf(
		"❌ Article Rejected\n\nTitle: %s\nAuthor: %s\nEditor: %s\nTime: %s\n\nStatus: rejected by editor",
		title, author, editor, s.now().Format(timeLayout),
	)
	go s.tg.Notify(telegram.TopicEditor, text)
}

type submitRelayDTO struct {
	Title  string `json:"title"  binding:"required"`
	Author string `json:"author" binding:"required"`
}

type editorRelayDTO struct {
	Title  string `json:"title"  binding:"required"`
	Editor string `json:"editor" binding:"required"`
	Link   string `json:"link"   binding:"required"`
	Author string `json:"author"`
	Action string `json:"action"`
}

// Handler exposes the manual relay endpoint used by the admin dashboard
// to push ad-hoc workflow messages. Unlike the service methods above it
// delivers synchronously so the caller learns about delivery failures.
type Handler struct {
	tg  *telegram.Client
	now func() time.Time
}

func NewHandler(tg *telegram.Client) *Handler {
	return &Handler{tg: tg, now: time.Now}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/notify/telegram/:type", h.relay)
}

func (h *Handler) relay(c *gin.Context) {
	switch c.Param("type") {
	case "submit":
		h.relaySubmit(c)
	case "editor":
		h.relayEditor(c)
	default:
		response.BadRequest(c, "unknown notification type")
	}
}

func (h *Handler) relaySubmit(c *gin.Context) {
	var dto submitRelayDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "title and author are required")
		return
	}
	text := fmt.Sprintf(
		"📝 New Content Submitted\n\n📰 Title: %s\n✍️ Author: %s\n⏰ Time: %s\n\nStatus: awaiting editor review",
		dto.Title, dto.Author, h.now().Format(timeLayout),
	)
	if err := h.tg.Send(c.Request.Context(), telegram.TopicAuthor, text); err != nil {
		response.InternalError(c, "failed to send telegram notification", err)
		return
	}
	response.OKMsg(c, "telegram notification sent")
}

func (h *Handler) relayEditor(c *gin.Context) {
	var dto editorRelayDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "title, editor and link are required")
		return
	}
	action := dto.Action
	if action == "" {
		action = "Reviewed"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🛠️ Content %s\n\n📰 Title: %s\n", action, dto.Title)
	if dto.Author != "" {
		fmt.Fprintf(&b, "✍️ Author: %s\n", dto.Author)
	}
	fmt.Fprintf(&b, "👤 Editor: %s\n⏰ Time: %s\n\n🔗 Link:\n%s",
		dto.Editor, h.now().Format(timeLayout), dto.Link)
	if err := h.tg.Send(c.Request.Context(), telegram.TopicEditor, b.String()); err != nil {
		response.InternalError(c, "failed to send telegram notification", err)
		return
	}
	response.OKMsg(c, "telegram notification sent")
}
