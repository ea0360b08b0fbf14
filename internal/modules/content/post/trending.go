package post

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/newsdesk/core/internal/models"
	"go.uber.org/zap"
)

const (
	trendingCacheTTL     = 60 * time.Second
	trendingDefaultHours = 24
)

// TrendingPost is a published post annotated with its engagement score.
type TrendingPost struct {
	models.PostModel
	EngagementScore int64 `json:"engagement_score"`
	LikesCount      int64 `json:"likes_count"`
	CommentsCount   int64 `json:"comments_count"`
}

// engagementScoreSQL weighs raw views lowest and approved comments
// highest: a comment takes far more reader intent than a page load.
// Correlated subqueries keep it portable across MySQL and sqlite.
const engagementScoreSQL = `views * 1
	+ (SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id AND post_likes.deleted_at IS NULL) * 5
	+ (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.status = 'approved' AND comments.deleted_at IS NULL) * 10`

type trendingRow struct {
	ID              string
	EngagementScore int64
	LikesCount      int64
	CommentsCount   int64
}

// Trending ranks published posts by engagement within a trailing window.
// When the window holds fewer posts than requested it falls back to
// all-time ranking, so the endpoint never starves on a slow news day.
// Results are cached in Redis for a minute.
func (s *Service) Trending(ctx context.Context, limit, hours int) ([]TrendingPost, error) {
	if hours <= 0 {
		hours = trendingDefaultHours
	}

	cacheKey := fmt.Sprintf("newsdesk:posts:trending:%d:%d", limit, hours)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil && raw != "" {
			var cached []TrendingPost
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	threshold := time.Now().Add(-time.Duration(hours) * time.Hour)
	rows, err := s.trendingRows(limit, &threshold)
	if err != nil {
		return nil, err
	}
	if len(rows) < limit {
		rows, err = s.trendingRows(limit, nil)
		if err != nil {
			return nil, err
		}
	}

	out, err := s.hydrateTrending(rows)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, trendingCacheTTL); err != nil && s.logger != nil {
				s.logger.Warn("trending cache write failed", zap.Error(err))
			}
		}
	}
	return out, nil
}

func (s *Service) trendingRows(limit int, publishedSince *time.Time) ([]trendingRow, error) {
	tx := s.db.Table("posts").
		Select(`posts.id,
			`+engagementScoreSQL+` AS engagement_score,
			(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id AND post_likes.deleted_at IS NULL) AS likes_count,
			(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.status = 'approved' AND comments.deleted_at IS NULL) AS comments_count`).
		Where("posts.status = ? AND posts.deleted_at IS NULL", models.PostStatusPublish)
	if publishedSince != nil {
		tx = tx.Where("posts.published_at >= ?", *publishedSince)
	}

	var rows []trendingRow
	err := tx.Order("engagement_score DESC").Limit(limit).Scan(&rows).Error
	return rows, err
}

// hydrateTrending loads the full post rows for the ranked ids, keeping
// the score order.
func (s *Service) hydrateTrending(rows []trendingRow) ([]TrendingPost, error) {
	out := make([]TrendingPost, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	var posts []models.PostModel
	if err := s.db.Preload("Author").Preload("Categories").
		Find(&posts, "id IN ?", ids).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]models.PostModel, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}

	for _, r := range rows {
		p, ok := byID[r.ID]
		if !ok {
			continue
		}
		out = append(out, TrendingPost{
			PostModel:       p,
			EngagementScore: r.EngagementScore,
			LikesCount:      r.LikesCount,
			CommentsCount:   r.CommentsCount,
		})
	}
	return out, nil
}
