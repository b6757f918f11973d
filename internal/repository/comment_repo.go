package repository

import (
	"context"

	"Snapora/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	// 把 User 一起查出来
	FindByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	// ListTopLevel 一级评论，新的在前，每条带上回复数
	ListTopLevel(ctx context.Context, videoID string, offset, limit int) ([]model.Comment, int64, error)
	// ListReplies 回复按时间正序
	ListReplies(ctx context.Context, parentID uint64) ([]model.Comment, error)
	// DeleteWithReplies 删掉评论和它的所有回复，返回删除的条数
	DeleteWithReplies(ctx context.Context, commentID uint64) (int64, error)
	CountByVideo(ctx context.Context, videoID string) (int64, error)
	WithTx(tx *gorm.DB) CommentRepository
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{db: tx}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(comment).Error, "创建评论失败")
}

func (r *commentRepository) FindByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, commentID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListTopLevel(ctx context.Context, videoID string, offset, limit int) ([]model.Comment, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("comments.video_id = ? AND comments.parent_id IS NULL", videoID).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "统计评论数失败")
	}
	comments := make([]model.Comment, 0, limit)
	if total == 0 {
		return comments, 0, nil
	}
	err := base.
		Select("comments.*, (SELECT COUNT(*) FROM comments AS r WHERE r.parent_id = comments.id) AS reply_count").
		Preload("User").
		Order("comments.created_at DESC").Order("comments.id DESC").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "查询评论失败")
	}
	return comments, total, nil
}

func (r *commentRepository) ListReplies(ctx context.Context, parentID uint64) ([]model.Comment, error) {
	var replies []model.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("parent_id = ?", parentID).
		Order("created_at ASC").Order("id ASC").
		Find(&replies).Error
	return replies, errors.Wrapf(err, "查询评论 %d 的回复失败", parentID)
}

func (r *commentRepository) DeleteWithReplies(ctx context.Context, commentID uint64) (int64, error) {
	db := r.db.WithContext(ctx)
	replies := db.Where("parent_id = ?", commentID).Delete(&model.Comment{})
	if replies.Error != nil {
		return 0, errors.Wrapf(replies.Error, "删除评论 %d 的回复失败", commentID)
	}
	res := db.Where("id = ?", commentID).Delete(&model.Comment{})
	if res.Error != nil {
		return 0, errors.Wrapf(res.Error, "删除评论 %d 失败", commentID)
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return replies.RowsAffected + res.RowsAffected, nil
}

func (r *commentRepository) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, errors.Wrap(err, "统计评论数失败")
}
