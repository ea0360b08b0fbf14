package interaction

import (
	"fmt"
	"testing"
	"time"

	"github.com/newsdesk/core/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupInteractionTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:interaction-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	err = gdb.AutoMigrate(
		&models.UserModel{}, &models.PostModel{},
		&models.PostLikeModel{}, &models.CommentModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func seedPost(t *testing.T, gdb *gorm.DB) *models.PostModel {
	t.Helper()
	author := models.UserModel{Username: "writer", Email: "writer@example.com", Password: "x"}
	if err := gdb.Create(&author).Error; err != nil {
		t.Fatalf("failed to seed author: %v", err)
	}
	post := models.PostModel{
		Title: "Liked Article", Slug: "liked-article",
		Status: models.PostStatusPublish, AuthorID: author.ID,
	}
	if err := gdb.Create(&post).Error; err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return &post
}

func TestToggleLikeRoundTrip(t *testing.T) {
	gdb, cleanup := setupInteractionTestDB(t)
	defer cleanup()

	post := seedPost(t, gdb)
	svc := NewService(gdb)

	state, err := svc.ToggleLike(post.ID, &LikeDTO{UserIdentifier: "10.0.0.1"})
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !state.Liked || state.LikeCount != 1 {
		t.Fatalf("expected liked=true count=1, got %+v", state)
	}

	state, err = svc.ToggleLike(post.ID, &LikeDTO{UserIdentifier: "10.0.0.1"})
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if state.Liked || state.LikeCount != 0 {
		t.Fatalf("expected liked=false count=0 after untoggle, got %+v", state)
	}
}

func TestToggleLikeCountsDistinctVisitors(t *testing.T) {
	gdb, cleanup := setupInteractionTestDB(t)
	defer cleanup()

	post := seedPost(t, gdb)
	svc := NewService(gdb)

	for _, who := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		if _, err := svc.ToggleLike(post.ID, &LikeDTO{UserIdentifier: who}); err != nil {
			t.Fatalf("toggle %s: %v", who, err)
		}
	}

	state, err := svc.Likes(post.ID, "10.0.0.2")
	if err != nil {
		t.Fatalf("likes: %v", err)
	}
	if state.LikeCount != 3 || !state.Liked {
		t.Fatalf("expected count=3 liked=true for known visitor, got %+v", state)
	}

	state, err = svc.Likes(post.ID, "10.0.0.9")
	if err != nil {
		t.Fatalf("likes for stranger: %v", err)
	}
	if state.Liked {
		t.Fatal("expected liked=false for unknown visitor")
	}
}

func TestToggleLikeUnknownPost(t *testing.T) {
	gdb, cleanup := setupInteractionTestDB(t)
	defer cleanup()

	svc := NewService(gdb)
	if _, err := svc.ToggleLike("missing", &LikeDTO{UserIdentifier: "10.0.0.1"}); err != ErrPostNotFound {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestCreateCommentValidatesParent(t *testing.T) {
	gdb, cleanup := setupInteractionTestDB(t)
	defer cleanup()

	post := seedPost(t, gdb)
	svc := NewService(gdb)

	ghost := "00000000-0000-0000-0000-000000000000"
	_, err := svc.CreateComment(post.ID, &CreateCommentDTO{
		AuthorName: "Reader", AuthorEmail: "r@example.com",
		Content: "Reply to nothing", ParentID: &ghost,
	}, "10.0.0.1", "test-agent")
	if err != ErrParentNotFound {
		t.Fatalf("expected ErrParentNotFound, got %v", err)
	}
}

func TestCommentsByPostThreadsApprovedReplies(t *testing.T) {
	gdb, cleanup := setupInteractionTestDB(t)
	defer cleanup()

	post := seedPost(t, gdb)
	svc := NewService(gdb)

	top, err := svc.CreateComment(post.ID, &CreateCommentDTO{
		AuthorName: "Reader", AuthorEmail: "r@example.com", Content: "First!",
	}, "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if _, err := svc.CreateComment(post.ID, &CreateCommentDTO{
		AuthorName: "Other", AuthorEmail: "o@example.com",
		Content: "Agreed", ParentID: &top.ID,
	}, "10.0.0.2", "test-agent"); err != nil {
		t.Fatalf("create reply: %v", err)
	}

	// a spam reply must not surface in the thread
	spam := models.CommentModel{
		PostID: post.ID, ParentID: &top.ID, AuthorName: "Bot",
		AuthorEmail: "bot@example.com", Content: "Buy now",
		Status: models.CommentSpam,
	}
	if err := gdb.Create(&spam).Error; err != nil {
		t.Fatalf("seed spam: %v", err)
	}

	page, err := svc.CommentsByPost(post.ID, CommentListQuery{})
	if err != nil {
		t.Fatalf("comments by post: %v", err)
	}
	if page.Total != 1 || len(page.Comments) != 1 {
		t.Fatalf("expected one top-level thread, got total=%d len=%d", page.Total, len(page.Comments))
	}
	if len(page.Comments[0].Replies) != 1 || page.Comments[0].Replies[0].Content != "Agreed" {
		t.Fatalf("expected one approved reply, got %+v", page.Comments[0].Replies)
	}
}

func TestListAllCountsRepliesInTotal(t *testing.T) {
	gdb, cleanup := setupInteractionTestDB(t)
	defer cleanup()

	post := seedPost(t, gdb)
	svc := NewService(gdb)

	top, err := svc.CreateComment(post.ID, &CreateCommentDTO{
		AuthorName: "Reader", AuthorEmail: "r@example.com", Content: "Thread",
	}, "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if _, err := svc.CreateComment(post.ID, &CreateCommentDTO{
		AuthorName: "Other", AuthorEmail: "o@example.com",
		Content: "Reply", ParentID: &top.ID,
	}, "10.0.0.2", "test-agent"); err != nil {
		t.Fatalf("create reply: %v", err)
	}

	page, err := svc.ListAll(CommentListQuery{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected the moderation total to include replies, got %d", page.Total)
	}
	if len(page.Comments) != 1 {
		t.Fatalf("expected only top-level comments in the listing, got %d", len(page.Comments))
	}
}
