package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"Snapora/internal/model"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	SortNewest     = "newest"
	SortOldest     = "oldest"
	SortMostViewed = "most_viewed"
	SortMostLikes  = "most_likes"
)

// 列表查询时顺带算出的计数，只有 is_like = TRUE 的行才算点赞
const (
	likeCountExpr    = "(SELECT COUNT(*) FROM likes WHERE likes.video_id = videos.id AND likes.is_like = TRUE)"
	viewCountExpr    = "(SELECT COUNT(*) FROM views WHERE views.video_id = videos.id)"
	commentCountExpr = "(SELECT COUNT(*) FROM comments WHERE comments.video_id = videos.id)"
)

// SearchQuery 搜索条件，Keyword 为空时返回全部公开视频
type SearchQuery struct {
	Keyword string
	Sort    string
	Offset  int
	Limit   int
}

type VideoRepository interface {
	// 连同 Tags 关联一起写入
	Create(ctx context.Context, video *model.Video) error
	FindByID(ctx context.Context, videoID string) (*model.Video, error)
	// 只更新可编辑的列，作者永远不会被改
	Update(ctx context.Context, video *model.Video) error
	ReplaceTags(ctx context.Context, video *model.Video, tags []model.Tag) error
	// 删除视频以及它的点赞、评论、观看记录和标签关联，需要在事务里调用
	DeleteWithRelations(ctx context.Context, videoID string) error

	ListPublic(ctx context.Context, offset, limit int) ([]model.Video, int64, error)
	ListPublicByAuthor(ctx context.Context, authorID uint64, offset, limit int) ([]model.Video, int64, error)
	ListPublicByTag(ctx context.Context, tagID uint64, offset, limit int) ([]model.Video, int64, error)
	// 与给定标签有交集的公开视频，按时间倒序
	FindPublicByTags(ctx context.Context, tagIDs []uint64, excludeID string, limit int) ([]model.Video, error)
	FindPublicByAuthor(ctx context.Context, authorID uint64, excludeIDs []string, limit int) ([]model.Video, error)
	Search(ctx context.Context, q SearchQuery) ([]model.Video, int64, error)

	GetVideoCache(ctx context.Context, videoID string) (*model.Video, error)
	SetVideoCache(ctx context.Context, video *model.Video) error
	DeleteVideoCache(ctx context.Context, videoID string) error

	WithTx(tx *gorm.DB) VideoRepository
}

type videoRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewVideoRepository(db *gorm.DB, rdb *redis.Client) VideoRepository {
	return &videoRepository{
		db:  db,
		rdb: rdb,
	}
}

// WithTx 事务里的副本仍然带着rdb，缓存操作不参与事务
func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	return &videoRepository{
		db:  tx,
		rdb: r.rdb,
	}
}

func (r *videoRepository) Create(ctx context.Context, video *model.Video) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(video).Error, "创建视频失败")
}

func (r *videoRepository) FindByID(ctx context.Context, videoID string) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).Preload("Author").Preload("Tags").First(&video, "id = ?", videoID).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) Update(ctx context.Context, video *model.Video) error {
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("id = ?", video.ID).
		Select("title", "description", "visibility", "video_key", "thumbnail_key").
		Updates(map[string]any{
			"title":         video.Title,
			"description":   video.Description,
			"visibility":    video.Visibility,
			"video_key":     video.VideoKey,
			"thumbnail_key": video.ThumbnailKey,
		}).Error
	return errors.Wrapf(err, "更新视频 %s 失败", video.ID)
}

func (r *videoRepository) ReplaceTags(ctx context.Context, video *model.Video, tags []model.Tag) error {
	assoc := r.db.WithContext(ctx).Model(video).Association("Tags")
	var err error
	if len(tags) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(tags)
	}
	if err != nil {
		return errors.Wrapf(err, "更新视频 %s 的标签失败", video.ID)
	}
	video.Tags = tags
	return nil
}

func (r *videoRepository) DeleteWithRelations(ctx context.Context, videoID string) error {
	db := r.db.WithContext(ctx)
	steps := []struct {
		what string
		sql  string
	}{
		{"点赞", "DELETE FROM likes WHERE video_id = ?"},
		{"观看记录", "DELETE FROM views WHERE video_id = ?"},
		// 先删二级评论再删一级评论
		{"回复", "DELETE FROM comments WHERE video_id = ? AND parent_id IS NOT NULL"},
		{"评论", "DELETE FROM comments WHERE video_id = ?"},
		{"标签关联", "DELETE FROM video_tags WHERE video_id = ?"},
	}
	for _, s := range steps {
		if err := db.Exec(s.sql, videoID).Error; err != nil {
			return errors.Wrapf(err, "删除视频 %s 的%s失败", videoID, s.what)
		}
	}
	res := db.Where("id = ?", videoID).Delete(&model.Video{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "删除视频 %s 失败", videoID)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// withCounts 列表查询统一带上点赞数、播放数和评论数
func withCounts(db *gorm.DB) *gorm.DB {
	return db.Select("videos.*, " +
		likeCountExpr + " AS like_count, " +
		viewCountExpr + " AS view_count, " +
		commentCountExpr + " AS comment_count")
}

func publicOnly(db *gorm.DB) *gorm.DB {
	return db.Where("videos.visibility = ?", model.VisibilityPublic)
}

// list 先count再分页查，base 必须是 Session 过的，才能安全地复用
func (r *videoRepository) list(base *gorm.DB, order []string, offset, limit int) ([]model.Video, int64, error) {
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "统计视频数失败")
	}
	videos := make([]model.Video, 0, limit)
	if total == 0 {
		return videos, 0, nil
	}
	q := base.Scopes(withCounts).Preload("Author").Preload("Tags")
	for _, o := range order {
		q = q.Order(o)
	}
	if err := q.Offset(offset).Limit(limit).Find(&videos).Error; err != nil {
		return nil, 0, errors.Wrap(err, "查询视频列表失败")
	}
	return videos, total, nil
}

var newestFirst = []string{"videos.created_at DESC", "videos.id ASC"}

func (r *videoRepository) ListPublic(ctx context.Context, offset, limit int) ([]model.Video, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Video{}).Scopes(publicOnly).Session(&gorm.Session{})
	return r.list(base, newestFirst, offset, limit)
}

func (r *videoRepository) ListPublicByAuthor(ctx context.Context, authorID uint64, offset, limit int) ([]model.Video, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Video{}).Scopes(publicOnly).
		Where("videos.author_id = ?", authorID).
		Session(&gorm.Session{})
	return r.list(base, newestFirst, offset, limit)
}

func (r *videoRepository) ListPublicByTag(ctx context.Context, tagID uint64, offset, limit int) ([]model.Video, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Video{}).Scopes(publicOnly).
		Where("videos.id IN (SELECT video_tags.video_id FROM video_tags WHERE video_tags.tag_id = ?)", tagID).
		Session(&gorm.Session{})
	return r.list(base, newestFirst, offset, limit)
}

func (r *videoRepository) FindPublicByTags(ctx context.Context, tagIDs []uint64, excludeID string, limit int) ([]model.Video, error) {
	videos := make([]model.Video, 0, limit)
	if len(tagIDs) == 0 || limit <= 0 {
		return videos, nil
	}
	// IN 子查询天然去重，不需要 DISTINCT
	err := r.db.WithContext(ctx).Model(&model.Video{}).Scopes(publicOnly, withCounts).
		Where("videos.id <> ?", excludeID).
		Where("videos.id IN (SELECT video_tags.video_id FROM video_tags WHERE video_tags.tag_id IN ?)", tagIDs).
		Preload("Author").Preload("Tags").
		Order("videos.created_at DESC").Order("videos.id ASC").
		Limit(limit).
		Find(&videos).Error
	return videos, errors.Wrap(err, "按标签查询相关视频失败")
}

func (r *videoRepository) FindPublicByAuthor(ctx context.Context, authorID uint64, excludeIDs []string, limit int) ([]model.Video, error) {
	videos := make([]model.Video, 0, limit)
	if limit <= 0 {
		return videos, nil
	}
	q := r.db.WithContext(ctx).Model(&model.Video{}).Scopes(publicOnly, withCounts).
		Where("videos.author_id = ?", authorID)
	if len(excludeIDs) > 0 {
		q = q.Where("videos.id NOT IN ?", excludeIDs)
	}
	err := q.Preload("Author").Preload("Tags").
		Order("videos.created_at DESC").Order("videos.id ASC").
		Limit(limit).
		Find(&videos).Error
	return videos, errors.Wrap(err, "按作者查询相关视频失败")
}

// escapeLike 转义 LIKE 里的通配符，用户输入的 % 和 _ 按字面匹配
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// searchOrder 排序的最后一级都是 id，保证同分时结果稳定
func searchOrder(sort string) []string {
	switch sort {
	case SortOldest:
		return []string{"videos.created_at ASC", "videos.id ASC"}
	case SortMostViewed:
		return []string{"view_count DESC", "videos.created_at DESC", "videos.id ASC"}
	case SortMostLikes:
		return []string{"like_count DESC", "videos.created_at DESC", "videos.id ASC"}
	default:
		return newestFirst
	}
}

func (r *videoRepository) Search(ctx context.Context, q SearchQuery) ([]model.Video, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Video{}).Scopes(publicOnly)
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		pattern := "%" + escapeLike(strings.ToLower(kw)) + "%"
		base = base.Where(
			"(LOWER(videos.title) LIKE ? OR LOWER(videos.description) LIKE ?"+
				" OR videos.author_id IN (SELECT users.id FROM users WHERE LOWER(users.username) LIKE ?)"+
				" OR videos.id IN (SELECT video_tags.video_id FROM video_tags JOIN tags ON tags.id = video_tags.tag_id WHERE LOWER(tags.name) LIKE ?))",
			pattern, pattern, pattern, pattern)
	}
	return r.list(base.Session(&gorm.Session{}), searchOrder(q.Sort), q.Offset, q.Limit)
}

// 返回存储单个视频信息的字符串Key
func (r *videoRepository) keyVideoInfo(videoID string) string {
	return fmt.Sprintf("video:info:%s", videoID)
}

// GetVideoCache 缓存不存在时返回 (nil, nil)
func (r *videoRepository) GetVideoCache(ctx context.Context, videoID string) (*model.Video, error) {
	videoJSON, err := r.rdb.Get(ctx, r.keyVideoInfo(videoID)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	var video model.Video
	if err := json.Unmarshal([]byte(videoJSON), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) SetVideoCache(ctx context.Context, video *model.Video) error {
	videoJSON, err := json.Marshal(video)
	if err != nil {
		return err
	}
	// 过期时间加上随机性防止缓存雪崩
	expiration := time.Minute*5 + time.Duration(rand.Intn(60))*time.Second
	return r.rdb.Set(ctx, r.keyVideoInfo(video.ID), videoJSON, expiration).Err()
}

func (r *videoRepository) DeleteVideoCache(ctx context.Context, videoID string) error {
	return r.rdb.Del(ctx, r.keyVideoInfo(videoID)).Err()
}
