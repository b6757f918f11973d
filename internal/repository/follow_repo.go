package repository

import (
	"context"

	"Snapora/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository 关注关系，followerID 关注 userID
type FollowRepository interface {
	// 重复关注不报错
	Create(ctx context.Context, userID, followerID uint64) error
	Delete(ctx context.Context, userID, followerID uint64) error
	IsFollower(ctx context.Context, userID, followerID uint64) (bool, error)
	CountFollowers(ctx context.Context, userID uint64) (int64, error)
	CountFollowing(ctx context.Context, followerID uint64) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, userID, followerID uint64) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "follower_id"}},
		DoNothing: true,
	}).Create(&model.Follow{UserID: userID, FollowerID: followerID}).Error
	return errors.Wrap(err, "创建关注关系失败")
}

func (r *followRepository) Delete(ctx context.Context, userID, followerID uint64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND follower_id = ?", userID, followerID).
		Delete(&model.Follow{}).Error
	return errors.Wrap(err, "删除关注关系失败")
}

func (r *followRepository) IsFollower(ctx context.Context, userID, followerID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("user_id = ? AND follower_id = ?", userID, followerID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "查询关注关系失败")
	}
	return count > 0, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).Where("user_id = ?", userID).Count(&count).Error
	return count, errors.Wrap(err, "统计粉丝数失败")
}

func (r *followRepository) CountFollowing(ctx context.Context, followerID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).Where("follower_id = ?", followerID).Count(&count).Error
	return count, errors.Wrap(err, "统计关注数失败")
}
