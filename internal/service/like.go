package service

import (
	"context"

	"Snapora/internal/data"
	"Snapora/internal/errs"
	"Snapora/internal/model"
	"Snapora/internal/repository"
	"Snapora/pkg/logger"

	"github.com/pkg/errors"
)

const (
	ActionLiked   = "liked"
	ActionUnliked = "unliked"

	LikeStateNone     = "none"
	LikeStateLiked    = "liked"
	LikeStateDisliked = "disliked"
)

// errLikeRace 两个请求同时从"没有记录"开始点赞，后插入的那个撞上唯一索引或被 InnoDB 判为死锁
var errLikeRace = errors.New("concurrent first like")

type LikeResult struct {
	Action    string `json:"action"`
	LikeCount int64  `json:"like_count"`
}

//go:generate mockgen -source=./like.go -package=svcmocks -destination=./mocks/like.mock.go
type LikeService interface {
	// ToggleLike 没有记录->点赞，已点赞->删除记录，已点踩->改为点赞
	ToggleLike(ctx context.Context, userID uint64, videoID string) (*LikeResult, error)
	// LikeState 匿名用户永远是 none
	LikeState(ctx context.Context, userID uint64, videoID string) (string, error)
	CountLikes(ctx context.Context, videoID string) (int64, error)
}

type likeService struct {
	videoRepo repository.VideoRepository
	likeRepo  repository.LikeRepository
	access    AccessService
	uow       data.UnitOfWork
}

func NewLikeService(videoRepo repository.VideoRepository, likeRepo repository.LikeRepository, access AccessService, uow data.UnitOfWork) LikeService {
	return &likeService{
		videoRepo: videoRepo,
		likeRepo:  likeRepo,
		access:    access,
		uow:       uow,
	}
}

// toggle 状态机，在事务里对 (user, video) 这一行加锁后再判断
func toggle(ctx context.Context, likes repository.LikeRepository, userID uint64, videoID string) (string, error) {
	like, err := likes.FindForUpdate(ctx, userID, videoID)
	if err != nil {
		if !repository.IsNotFound(err) {
			return "", err
		}
		err = likes.Create(ctx, &model.Like{UserID: userID, VideoID: videoID, IsLike: true})
		// REPEATABLE READ 下两边的 FOR UPDATE 都只拿到间隙锁，插入时通常是 1213 而不是 1062
		if repository.IsDuplicateKey(err) || repository.IsDeadlock(err) {
			return "", errLikeRace
		}
		if err != nil {
			return "", err
		}
		return ActionLiked, nil
	}
	if like.IsLike {
		if err := likes.Delete(ctx, like.ID); err != nil {
			return "", err
		}
		return ActionUnliked, nil
	}
	if err := likes.SetIsLike(ctx, like.ID, true); err != nil {
		return "", err
	}
	return ActionLiked, nil
}

func (s *likeService) ToggleLike(ctx context.Context, userID uint64, videoID string) (*LikeResult, error) {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errs.NotFound("视频不存在")
		}
		return nil, errs.Internal(err)
	}
	if !s.access.CanView(ctx, userID, video) {
		return nil, errs.Forbidden("无权操作该视频")
	}

	var action string
	err = s.uow.Execute(ctx, func(repos *data.TransactionalRepositories) error {
		var txErr error
		action, txErr = toggle(ctx, repos.LikeRepo, userID, videoID)
		return txErr
	})
	if errors.Is(err, errLikeRace) {
		// 另一个请求已经点上了，结果同样是"已点赞"
		logger.Log.WithField("user_id", userID).WithField("video_id", videoID).Info("并发首次点赞冲突，按已点赞处理")
		action, err = ActionLiked, nil
	}
	if err != nil {
		return nil, errs.Internal(err)
	}
	likeToggles.WithLabelValues(action).Inc()

	count, err := s.likeRepo.CountLikes(ctx, videoID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return &LikeResult{Action: action, LikeCount: count}, nil
}

func (s *likeService) LikeState(ctx context.Context, userID uint64, videoID string) (string, error) {
	if userID == Anonymous {
		return LikeStateNone, nil
	}
	like, err := s.likeRepo.FindByUserAndVideo(ctx, userID, videoID)
	if err != nil {
		if repository.IsNotFound(err) {
			return LikeStateNone, nil
		}
		return "", errs.Internal(err)
	}
	if like.IsLike {
		return LikeStateLiked, nil
	}
	return LikeStateDisliked, nil
}

func (s *likeService) CountLikes(ctx context.Context, videoID string) (int64, error) {
	count, err := s.likeRepo.CountLikes(ctx, videoID)
	if err != nil {
		return 0, errs.Internal(err)
	}
	return count, nil
}
