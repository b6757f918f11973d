package repository

import (
	"context"

	"Snapora/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ViewRepository interface {
	// Create 无条件新增一条观看记录，匿名观看走这里
	Create(ctx context.Context, view *model.View) error
	// GetOrCreate 登录用户每个视频只记一次，返回是否新建
	GetOrCreate(ctx context.Context, userID uint64, videoID string) (bool, error)
	CountByVideo(ctx context.Context, videoID string) (int64, error)
}

type viewRepository struct {
	db *gorm.DB
}

func NewViewRepository(db *gorm.DB) ViewRepository {
	return &viewRepository{db: db}
}

func (r *viewRepository) Create(ctx context.Context, view *model.View) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(view).Error, "记录观看失败")
}

func (r *viewRepository) GetOrCreate(ctx context.Context, userID uint64, videoID string) (bool, error) {
	db := r.db.WithContext(ctx)
	var count int64
	if err := db.Model(&model.View{}).Where("user_id = ? AND video_id = ?", userID, videoID).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "查询观看记录失败")
	}
	if count > 0 {
		return false, nil
	}
	err := db.Create(&model.View{UserID: &userID, VideoID: videoID}).Error
	if IsDuplicateKey(err) {
		// 并发请求已经写入
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "记录观看失败")
	}
	return true, nil
}

func (r *viewRepository) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.View{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, errors.Wrap(err, "统计播放数失败")
}
