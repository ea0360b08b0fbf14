package post

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/newsdesk/core/internal/config"
	"github.com/newsdesk/core/internal/models"
	"github.com/newsdesk/core/internal/modules/processing/summarizer"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPostTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:post-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	err = gdb.AutoMigrate(
		&models.UserModel{}, &models.CategoryModel{}, &models.TagModel{},
		&models.PostModel{}, &models.PostLikeModel{}, &models.CommentModel{},
		&models.NotificationModel{},
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

func newTestService(gdb *gorm.DB, supersede bool) *Service {
	sum := summarizer.New(config.SummaryConfig{}, zap.NewNop())
	return NewService(gdb, sum, nil, nil, supersede, zap.NewNop())
}

func seedAdmin(t *testing.T, gdb *gorm.DB) *models.UserModel {
	t.Helper()
	admin := models.UserModel{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "secret",
		Role:     models.RoleAdministrator,
	}
	if err := gdb.Create(&admin).Error; err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	return &admin
}

func TestCreateWithoutAnyUserFails(t *testing.T) {
	gdb, cleanup := setupPostTestDB(t)
	defer cleanup()

	svc := newTestService(gdb, true)
	_, err := svc.Create(context.Background(), &CreatePostDTO{Title: "Orphan", Content: "Body."})
	if err != ErrNoAuthor {
		t.Fatalf("expected ErrNoAuthor, got %v", err)
	}
}

func TestCreateFallsBackToAdministrator(t *testing.T) {
	gdb, cleanup := setupPostTestDB(t)
	defer cleanup()

	admin := seedAdmin(t, gdb)
	svc := newTestService(gdb, true)

	post, err := svc.Create(context.Background(), &CreatePostDTO{
		Title:    "Campus Opens New Lab",
		Content:  "The new laboratory opened today. Students can register immediately.",
		AuthorID: "does-not-exist",
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.AuthorID != admin.ID {
		t.Fatalf("expected author %s, got %s", admin.ID, post.AuthorID)
	}
	if post.Summary == "" {
		t.Fatal("expected an extractive summary to be generated")
	}
}

func TestCreateDerivesUniqueSlugs(t *testing.T) {
	gdb, cleanup := setupPostTestDB(t)
	defer cleanup()

	seedAdmin(t, gdb)
	svc := newTestService(gdb, true)

	want := []string{"annual-report", "annual-report-2", "annual-report-3"}
	for _, expected := range want {
		post, err := svc.Create(context.Background(), &CreatePostDTO{
			Title:   "Annual Report!",
			Content: "Numbers inside.",
		})
		if err != nil {
			t.Fatalf("create post: %v", err)
		}
		if post.Slug != expected {
			t.Fatalf("expected slug %q, got %q", expected, post.Slug)
		}
	}
}

func TestCreatePublishStampsPublishedAt(t *testing.T) {
	gdb, cleanup := setupPostTestDB(t)
	defer cleanup()

	seedAdmin(t, gdb)
	svc := newTestService(gdb, true)

	post, err := svc.Create(context.Background(), &CreatePostDTO{
		Title: "Live Now", Content: "Breaking.", Status: "publish",
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.PublishedAt == nil {
		t.Fatal("expected published_at to be set on publish")
	}

	draft, err := svc.Create(context.Background(), &CreatePostDTO{
		Title: "Still Cooking", Content: "Soon.",
	})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	if draft.PublishedAt != nil {
		t.Fatal("expected draft to have no published_at")
	}
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	gdb, cleanup := setupPostTestDB(t)
	defer cleanup()

	seedAdmin(t, gdb)
	svc := newTestService(gdb, true)

	if _, err := svc.Create(context.Background(), &CreatePostDTO{
		Title: "Bad", Content: "Body.", Status: "live",
	}); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateStampsPublishedAtOnce(t *testing.T) {
	gdb, cleanup := setupPostTestDB(t)
	defer cleanup()

	seedAdmin(t, gdb)
	svc := newTestService(gdb, true)

	post, err := svc.Create(context.Background(), &CreatePostDTO{Title: "Draft First", Content: "Body."})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	publish := "publish"
	post, err = svc.Update(post.ID, &UpdatePostDTO{Status: &publish})
	if err != nil {
		t.Fatalf("publish post: %v", err)
	}
	if post.PublishedAt == nil {
		t.Fatal("expected published_at after first publish")
	}
	first := *post.PublishedAt

	draft := "draft"
	if _, err := svc.Update(post.ID, &UpdatePostDTO{Status: &draft}); err != nil {
		t.Fatalf("unpublish post: %v", err)
	}
	post, err = svc.Update(post.ID, &UpdatePostDTO{Status: &publish})
	if err != nil {
		t.Fatalf("republish post: %v", err)
	}
	if post.PublishedAt == nil || !post.PublishedAt.Equal(first) {
		t.Fatalf("expected published_at to stay %v, got %v", first, post.PublishedAt)
	}
}

func TestUpdateReplacesAndClearsTaxonomy(t *testing.T) {
	gdb, cleanup := setupPostTestDB(t)
	defer cleanup()

	seedAdmin(t, gdb)
	cat := models.CategoryModel{Name: "Research", Slug: "research"}
	if err := gdb.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	svc := newTestService(gdb, true)

	post, err := svc.Create(context.Background(), &CreatePostDTO{
		Title: "Tagged", Content: "Body.", CategoryIDs: []string{cat.ID},
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if len(post.Categories) != 1 || post.Categories[0].Slug != "research" {
		t.Fatalf("expected one category 'research', got %+v", post.Categories)
	}

	// nil slice leaves the association untouched
	post, err = svc.Update(post.ID, &UpdatePostDTO{})
	if err != nil {
		t.Fatalf("noop update: %v", err)
	}
	if len(post.Categories) != 1 {
		t.Fatalf("expected categories untouched, got %d", len(post.Categories))
	}

	// empty slice clears
	post, err = svc.Update(post.ID, &UpdatePostDTO{CategoryIDs: []string{}})
	if err != nil {
		t.Fatalf("clearing update: %v", err)
	}
	if len(post.Categories) != 0 {
		t.Fatalf("expected categories cleared, got %d", len(post.Categories))
	}
}

func TestSupersedeKeepsOnePendingReviewItem(t *testing.T) {
	gdb, cleanup := setupPostTestDB(t)
	defer cleanup()

	seedAdmin(t, gdb)
	svc := newTestService(gdb, true)

	post, err := svc.Create(context.Background(), &CreatePostDTO{Title: "Reviewed", Content: "Body."})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	newTitle := "Reviewed Again"
	if _, err := svc.Update(post.ID, &UpdatePostDTO{Title: &newTitle}); err != nil {
		t.Fatalf("update post: %v", err)
	}

	var count int64
	if err := gdb.Model(&models.NotificationModel{}).
		Where("post_id = ? AND status = ?", post.ID, models.NotificationPending).
		Count(&count).Error; err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 pending review item, got %d", count)
	}

	var item models.NotificationModel
	if err := gdb.First(&item, "post_id = ?", post.ID).Error; err != nil {
		t.Fatalf("load review item: %v", err)
	}
	if item.Action != models.ActionEdit || item.Target != "Reviewed Again" {
		t.Fatalf("expected superseded item to carry the edit, got %s/%s", item.Action, item.Target)
	}
}

func TestSupersedeOffFilesEveryChange(t *testing.T) {
	gdb, cleanup := setupPostTestDB(t)
	defer cleanup()

	seedAdmin(t, gdb)
	svc := newTestService(gdb, false)

	post, err := svc.Create(context.Background(), &CreatePostDTO{Title: "Noisy", Content: "Body."})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	newTitle := "Noisy v2"
	if _, err := svc.Update(post.ID, &UpdatePostDTO{Title: &newTitle}); err != nil {
		t.Fatalf("update post: %v", err)
	}

	var count int64
	if err := gdb.Model(&models.NotificationModel{}).
		Where("post_id = ?", post.ID).Count(&count).Error; err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 review items with supersession off, got %d", count)
	}
}

func TestGetBySlugPublishedOnlyAndCountsViews(t *testing.T) {
	gdb, cleanup := setupPostTestDB(t)
	defer cleanup()

	seedAdmin(t, gdb)
	svc := newTestService(gdb, true)

	published, err := svc.Create(context.Background(), &CreatePostDTO{
		Title: "Visible", Content: "Body.", Status: "publish",
	})
	if err != nil {
		t.Fatalf("create published: %v", err)
	}
	if _, err := svc.Create(context.Background(), &CreatePostDTO{
		Title: "Hidden", Content: "Body.",
	}); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	got, err := svc.GetBySlug(published.Slug)
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if got == nil || got.Views != 1 {
		t.Fatalf("expected views=1 on first read, got %+v", got)
	}
	got, err = svc.GetBySlug(published.Slug)
	if err != nil {
		t.Fatalf("get by slug again: %v", err)
	}
	if got.Views != 2 {
		t.Fatalf("expected views=2 on second read, got %d", got.Views)
	}

	hidden, err := svc.GetBySlug("hidden")
	if err != nil {
		t.Fatalf("get draft by slug: %v", err)
	}
	if hidden != nil {
		t.Fatal("expected draft to be invisible by slug")
	}
}

func TestTrendingRanksByEngagement(t *testing.T) {
	gdb, cleanup := setupPostTestDB(t)
	defer cleanup()

	admin := seedAdmin(t, gdb)
	svc := newTestService(gdb, true)
	now := time.Now()

	mkPost := func(slug string, views int) *models.PostModel {
		p := models.PostModel{
			Title: slug, Slug: slug, Status: models.PostStatusPublish,
			Views: views, AuthorID: admin.ID, PublishedAt: &now,
		}
		if err := gdb.Create(&p).Error; err != nil {
			t.Fatalf("seed post %s: %v", slug, err)
		}
		return &p
	}

	engaged := mkPost("engaged", 1) // 1 + 5 + 10 = 16
	viral := mkPost("viral", 20)    // 20
	quiet := mkPost("quiet", 5)     // 5

	if err := gdb.Create(&models.PostLikeModel{PostID: engaged.ID, UserIdentifier: "1.2.3.4"}).Error; err != nil {
		t.Fatalf("seed like: %v", err)
	}
	if err := gdb.Create(&models.CommentModel{
		PostID: engaged.ID, AuthorName: "Reader", AuthorEmail: "r@example.com",
		Content: "Great read", Status: models.CommentApproved,
	}).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	got, err := svc.Trending(context.Background(), 3, 24)
	if err != nil {
		t.Fatalf("trending: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 trending posts, got %d", len(got))
	}
	order := []string{got[0].Slug, got[1].Slug, got[2].Slug}
	if order[0] != viral.Slug || order[1] != engaged.Slug || order[2] != quiet.Slug {
		t.Fatalf("unexpected trending order: %v", order)
	}
	if got[1].EngagementScore != 16 || got[1].LikesCount != 1 || got[1].CommentsCount != 1 {
		t.Fatalf("unexpected engagement breakdown: %+v", got[1])
	}
}

func TestTrendingFallsBackToAllTime(t *testing.T) {
	gdb, cleanup := setupPostTestDB(t)
	defer cleanup()

	admin := seedAdmin(t, gdb)
	svc := newTestService(gdb, true)

	old := time.Now().Add(-72 * time.Hour)
	p := models.PostModel{
		Title: "Evergreen", Slug: "evergreen", Status: models.PostStatusPublish,
		Views: 100, AuthorID: admin.ID, PublishedAt: &old,
	}
	if err := gdb.Create(&p).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}

	got, err := svc.Trending(context.Background(), 5, 24)
	if err != nil {
		t.Fatalf("trending: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "evergreen" {
		t.Fatalf("expected all-time fallback to surface the old post, got %+v", got)
	}
}

func TestPurgeTrashedRemovesOnlyOldTrash(t *testing.T) {
	gdb, cleanup := setupPostTestDB(t)
	defer cleanup()

	admin := seedAdmin(t, gdb)
	svc := newTestService(gdb, true)

	oldTrash := models.PostModel{Title: "Old", Slug: "old", Status: models.PostStatusTrash, AuthorID: admin.ID}
	freshTrash := models.PostModel{Title: "Fresh", Slug: "fresh", Status: models.PostStatusTrash, AuthorID: admin.ID}
	keeper := models.PostModel{Title: "Keep", Slug: "keep", Status: models.PostStatusPublish, AuthorID: admin.ID}
	for _, p := range []*models.PostModel{&oldTrash, &freshTrash, &keeper} {
		if err := gdb.Create(p).Error; err != nil {
			t.Fatalf("seed post: %v", err)
		}
	}
	backdated := time.Now().Add(-31 * 24 * time.Hour)
	if err := gdb.Model(&oldTrash).UpdateColumn("updated_at", backdated).Error; err != nil {
		t.Fatalf("backdate trash: %v", err)
	}

	n, err := svc.PurgeTrashed(30 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 purged post, got %d", n)
	}

	var remaining int64
	if err := gdb.Model(&models.PostModel{}).Unscoped().Count(&remaining).Error; err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if remaining != 2 {
		t.Fatalf("expected 2 surviving posts, got %d", remaining)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":          "hello-world",
		"  Multiple   Spaces  ":  "multiple-spaces",
		"Already-Slugged":        "already-slugged",
		"100% Official (Update)": "100-official-update",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
