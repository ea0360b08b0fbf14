package notification

import (
	"fmt"
	"testing"
	"time"

	"github.com/newsdesk/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupNotificationTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:notification-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	err = gdb.AutoMigrate(&models.UserModel{}, &models.PostModel{}, &models.NotificationModel{})
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

func seedPendingItem(t *testing.T, gdb *gorm.DB, post *models.PostModel) *models.NotificationModel {
	t.Helper()
	n := models.NotificationModel{
		UserName: "writer",
		Action:   models.ActionAdd,
		Target:   "Some Article",
		Status:   models.NotificationPending,
		Priority: models.PriorityMedium,
		Category: models.CategoryNews,
	}
	if post != nil {
		n.PostID = &post.ID
		n.Target = post.Title
	}
	if err := gdb.Create(&n).Error; err != nil {
		t.Fatalf("failed to seed notification: %v", err)
	}
	return &n
}

func seedPendingPost(t *testing.T, gdb *gorm.DB) *models.PostModel {
	t.Helper()
	author := models.UserModel{Username: "writer", Email: "writer@example.com", Password: "x"}
	if err := gdb.Create(&author).Error; err != nil {
		t.Fatalf("failed to seed author: %v", err)
	}
	post := models.PostModel{
		Title: "Some Article", Slug: "some-article",
		Status: models.PostStatusPending, AuthorID: author.ID,
	}
	if err := gdb.Create(&post).Error; err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return &post
}

func TestDecideApprovePublishesPost(t *testing.T) {
	gdb, cleanup := setupNotificationTestDB(t)
	defer cleanup()

	post := seedPendingPost(t, gdb)
	item := seedPendingItem(t, gdb, post)
	svc := NewService(gdb, nil, zap.NewNop())

	decided, err := svc.Decide(item.ID, &DecideDTO{Status: "approved", Editor: "chief"})
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != models.NotificationApproved {
		t.Fatalf("expected approved item, got %s", decided.Status)
	}

	var got models.PostModel
	if err := gdb.First(&got, "id = ?", post.ID).Error; err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if got.Status != models.PostStatusPublish {
		t.Fatalf("expected published post, got %s", got.Status)
	}
	if got.PublishedAt == nil {
		t.Fatal("expected published_at to be stamped")
	}
	if got.RejectionReason != nil {
		t.Fatalf("expected rejection reason cleared, got %v", *got.RejectionReason)
	}
}

func TestDecideApproveHonorsRequestedPostStatus(t *testing.T) {
	gdb, cleanup := setupNotificationTestDB(t)
	defer cleanup()

	post := seedPendingPost(t, gdb)
	item := seedPendingItem(t, gdb, post)
	svc := NewService(gdb, nil, zap.NewNop())

	if _, err := svc.Decide(item.ID, &DecideDTO{Status: "approved", PostStatus: "archived"}); err != nil {
		t.Fatalf("decide: %v", err)
	}

	var got models.PostModel
	if err := gdb.First(&got, "id = ?", post.ID).Error; err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if got.Status != models.PostStatusArchived {
		t.Fatalf("expected archived post, got %s", got.Status)
	}
	if got.PublishedAt != nil {
		t.Fatal("expected no published_at for an archived approval")
	}
}

func TestDecideApproveKeepsOriginalPublishTimestamp(t *testing.T) {
	gdb, cleanup := setupNotificationTestDB(t)
	defer cleanup()

	post := seedPendingPost(t, gdb)
	first := time.Now().Add(-48 * time.Hour).Truncate(time.Second)
	if err := gdb.Model(post).UpdateColumn("published_at", first).Error; err != nil {
		t.Fatalf("stamp post: %v", err)
	}
	item := seedPendingItem(t, gdb, post)
	svc := NewService(gdb, nil, zap.NewNop())

	if _, err := svc.Decide(item.ID, &DecideDTO{Status: "approved"}); err != nil {
		t.Fatalf("decide: %v", err)
	}

	var got models.PostModel
	if err := gdb.First(&got, "id = ?", post.ID).Error; err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if got.PublishedAt == nil || !got.PublishedAt.Equal(first) {
		t.Fatalf("expected published_at %v to survive re-approval, got %v", first, got.PublishedAt)
	}
}

func TestDecideRejectReturnsPostToDraft(t *testing.T) {
	gdb, cleanup := setupNotificationTestDB(t)
	defer cleanup()

	post := seedPendingPost(t, gdb)
	item := seedPendingItem(t, gdb, post)
	svc := NewService(gdb, nil, zap.NewNop())

	decided, err := svc.Decide(item.ID, &DecideDTO{Status: "rejected"})
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != models.NotificationRejected {
		t.Fatalf("expected rejected item, got %s", decided.Status)
	}

	var got models.PostModel
	if err := gdb.First(&got, "id = ?", post.ID).Error; err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if got.Status != models.PostStatusDraft {
		t.Fatalf("expected draft post, got %s", got.Status)
	}
	if got.RejectionReason == nil || *got.RejectionReason != defaultRejectionReason {
		t.Fatalf("expected default rejection reason, got %v", got.RejectionReason)
	}
}

func TestDecideIsTerminal(t *testing.T) {
	gdb, cleanup := setupNotificationTestDB(t)
	defer cleanup()

	item := seedPendingItem(t, gdb, nil)
	svc := NewService(gdb, nil, zap.NewNop())

	if _, err := svc.Decide(item.ID, &DecideDTO{Status: "approved"}); err != nil {
		t.Fatalf("first decision: %v", err)
	}
	if _, err := svc.Decide(item.ID, &DecideDTO{Status: "rejected"}); err != ErrAlreadyDecided {
		t.Fatalf("expected ErrAlreadyDecided on second decision, got %v", err)
	}

	var got models.NotificationModel
	if err := gdb.First(&got, "id = ?", item.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if got.Status != models.NotificationApproved {
		t.Fatalf("expected first decision to stand, got %s", got.Status)
	}
}

func TestDecideSurvivesMissingPost(t *testing.T) {
	gdb, cleanup := setupNotificationTestDB(t)
	defer cleanup()

	ghost := "00000000-0000-0000-0000-000000000000"
	n := models.NotificationModel{
		UserName: "writer", Action: models.ActionAdd, Target: "Ghost",
		Status: models.NotificationPending, Priority: models.PriorityMedium,
		Category: models.CategoryNews, PostID: &ghost,
	}
	if err := gdb.Create(&n).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	svc := NewService(gdb, nil, zap.NewNop())

	decided, err := svc.Decide(n.ID, &DecideDTO{Status: "approved"})
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != models.NotificationApproved {
		t.Fatalf("expected the decision to stand despite the missing post, got %s", decided.Status)
	}
}

func TestStatsCountsQueue(t *testing.T) {
	gdb, cleanup := setupNotificationTestDB(t)
	defer cleanup()

	seed := []models.NotificationModel{
		{UserName: "a", Action: models.ActionAdd, Target: "1", Status: models.NotificationPending, Priority: models.PriorityHigh, Category: models.CategoryNews},
		{UserName: "b", Action: models.ActionAdd, Target: "2", Status: models.NotificationPending, Priority: models.PriorityMedium, Category: models.CategoryNews},
		{UserName: "c", Action: models.ActionEdit, Target: "3", Status: models.NotificationApproved, Priority: models.PriorityLow, Category: models.CategoryProfile},
		{UserName: "d", Action: models.ActionDelete, Target: "4", Status: models.NotificationRejected, Priority: models.PriorityHigh, Category: models.CategorySystem},
	}
	if err := gdb.Create(&seed).Error; err != nil {
		t.Fatalf("seed items: %v", err)
	}

	svc := NewService(gdb, nil, zap.NewNop())
	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 4 || stats.Pending != 2 || stats.Approved != 1 || stats.Rejected != 1 || stats.HighPriority != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
