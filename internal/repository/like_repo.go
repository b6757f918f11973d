package repository

import (
	"context"

	"Snapora/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository interface {
	// FindForUpdate 加行锁读取，只能在事务里用；没有记录时返回 gorm.ErrRecordNotFound
	FindForUpdate(ctx context.Context, userID uint64, videoID string) (*model.Like, error)
	FindByUserAndVideo(ctx context.Context, userID uint64, videoID string) (*model.Like, error)
	Create(ctx context.Context, like *model.Like) error
	SetIsLike(ctx context.Context, likeID uint64, isLike bool) error
	Delete(ctx context.Context, likeID uint64) error
	// CountLikes 只统计 is_like = TRUE 的行
	CountLikes(ctx context.Context, videoID string) (int64, error)
	WithTx(tx *gorm.DB) LikeRepository
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) WithTx(tx *gorm.DB) LikeRepository {
	return &likeRepository{db: tx}
}

func (r *likeRepository) FindForUpdate(ctx context.Context, userID uint64, videoID string) (*model.Like, error) {
	var like model.Like
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) FindByUserAndVideo(ctx context.Context, userID uint64, videoID string) (*model.Like, error) {
	var like model.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// Create 唯一索引冲突原样返回，调用方用 IsDuplicateKey 判断
func (r *likeRepository) Create(ctx context.Context, like *model.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) SetIsLike(ctx context.Context, likeID uint64, isLike bool) error {
	// Update 单列写入，false 也会落库
	err := r.db.WithContext(ctx).Model(&model.Like{}).Where("id = ?", likeID).Update("is_like", isLike).Error
	return errors.Wrapf(err, "更新点赞 %d 失败", likeID)
}

func (r *likeRepository) Delete(ctx context.Context, likeID uint64) error {
	err := r.db.WithContext(ctx).Where("id = ?", likeID).Delete(&model.Like{}).Error
	return errors.Wrapf(err, "删除点赞 %d 失败", likeID)
}

func (r *likeRepository) CountLikes(ctx context.Context, videoID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("video_id = ? AND is_like = ?", videoID, true).
		Count(&count).Error
	return count, errors.Wrap(err, "统计点赞数失败")
}
