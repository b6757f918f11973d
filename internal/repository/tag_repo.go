package repository

import (
	"context"

	"Snapora/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type TagRepository interface {
	// GetOrCreateByNames 按名字取标签，不存在就创建，返回顺序与 names 一致
	GetOrCreateByNames(ctx context.Context, names []string) ([]model.Tag, error)
	FindBySlug(ctx context.Context, slug string) (*model.Tag, error)
	WithTx(tx *gorm.DB) TagRepository
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) WithTx(tx *gorm.DB) TagRepository {
	return &tagRepository{db: tx}
}

func (r *tagRepository) GetOrCreateByNames(ctx context.Context, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	db := r.db.WithContext(ctx)
	for _, name := range names {
		var tag model.Tag
		err := db.Where("name = ?", name).First(&tag).Error
		if err == nil {
			tags = append(tags, tag)
			continue
		}
		if !IsNotFound(err) {
			return nil, errors.Wrapf(err, "查询标签 %s 失败", name)
		}

		tag = model.Tag{Name: name}
		tag.EnsureSlug()
		err = db.Create(&tag).Error
		if IsDuplicateKey(err) {
			// 不同的名字可能算出同一个slug，比如 "Sci Fi" 和 "sci-fi"，给后来者加个后缀
			tag = model.Tag{Name: name, Slug: tag.Slug + "-" + uuid.NewString()[:8]}
			err = db.Create(&tag).Error
		}
		if err != nil {
			return nil, errors.Wrapf(err, "创建标签 %s 失败", name)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (r *tagRepository) FindBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}
