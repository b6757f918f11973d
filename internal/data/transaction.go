package data

import (
	"context"

	"Snapora/internal/repository"

	"gorm.io/gorm"
)

// UnitOfWork 把一组数据库操作包在同一个事务里
type UnitOfWork interface {
	// Execute fn 返回错误时整个事务回滚
	Execute(ctx context.Context, fn func(repos *TransactionalRepositories) error) error
}

// TransactionalRepositories 持有绑定到同一个事务上的 Repository
type TransactionalRepositories struct {
	VideoRepo   repository.VideoRepository
	TagRepo     repository.TagRepository
	LikeRepo    repository.LikeRepository
	CommentRepo repository.CommentRepository
	UserRepo    repository.UserRepository
}

type gormUnitOfWork struct {
	db          *gorm.DB
	videoRepo   repository.VideoRepository
	tagRepo     repository.TagRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

// NewUnitOfWork 接收的是非事务的 repositories，每次 Execute 再派生出事务副本
func NewUnitOfWork(
	db *gorm.DB,
	videoRepo repository.VideoRepository,
	tagRepo repository.TagRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
) UnitOfWork {
	return &gormUnitOfWork{
		db:          db,
		videoRepo:   videoRepo,
		tagRepo:     tagRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

func (u *gormUnitOfWork) Execute(ctx context.Context, fn func(repos *TransactionalRepositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 一次性的、绑定了这个事务的 Repo 副本
		return fn(&TransactionalRepositories{
			VideoRepo:   u.videoRepo.WithTx(tx),
			TagRepo:     u.tagRepo.WithTx(tx),
			LikeRepo:    u.likeRepo.WithTx(tx),
			CommentRepo: u.commentRepo.WithTx(tx),
			UserRepo:    u.userRepo.WithTx(tx),
		})
	})
}
