package service

import (
	"context"

	"Snapora/internal/errs"
	"Snapora/internal/model"
	"Snapora/internal/repository"
	"Snapora/pkg/logger"
)

// Anonymous 未登录访客的 viewerID，自增主键从1开始，0不会和真实用户冲突
const Anonymous uint64 = 0

// Decision 访问判定的结果，除了 Allowed 以外都是拒绝，区分开是为了给出不同的提示
type Decision int

const (
	Allowed Decision = iota
	DeniedPrivate
	DeniedLoginRequired
	DeniedFollowersOnly
	DeniedUnknown
)

// decideAccess 纯函数，不做任何IO；isFollower 只有在需要时才会被调用
// isFollower 出错时按"不是粉丝"处理
func decideAccess(visibility string, ownerID, viewerID uint64, isFollower func() (bool, error)) Decision {
	switch visibility {
	case model.VisibilityPublic:
		return Allowed
	case model.VisibilityPrivate:
		if viewerID != Anonymous && viewerID == ownerID {
			return Allowed
		}
		return DeniedPrivate
	case model.VisibilityFollowers:
		if viewerID == Anonymous {
			return DeniedLoginRequired
		}
		if viewerID == ownerID {
			return Allowed
		}
		ok, err := isFollower()
		if err != nil || !ok {
			return DeniedFollowersOnly
		}
		return Allowed
	default:
		return DeniedUnknown
	}
}

type AccessService interface {
	// CanView 永远不返回错误，查询失败视为拒绝
	CanView(ctx context.Context, viewerID uint64, video *model.Video) bool
	// Check 拒绝时返回带提示文案的错误
	Check(ctx context.Context, viewerID uint64, video *model.Video) error
}

type accessService struct {
	followRepo repository.FollowRepository
}

func NewAccessService(followRepo repository.FollowRepository) AccessService {
	return &accessService{followRepo: followRepo}
}

func (s *accessService) decide(ctx context.Context, viewerID uint64, video *model.Video) Decision {
	return decideAccess(video.Visibility, video.AuthorID, viewerID, func() (bool, error) {
		ok, err := s.followRepo.IsFollower(ctx, video.AuthorID, viewerID)
		if err != nil {
			logger.Log.WithError(err).
				WithField("video_id", video.ID).
				WithField("viewer_id", viewerID).
				Warn("查询关注关系失败，按无权限处理")
		}
		return ok, err
	})
}

func (s *accessService) CanView(ctx context.Context, viewerID uint64, video *model.Video) bool {
	return s.decide(ctx, viewerID, video) == Allowed
}

func (s *accessService) Check(ctx context.Context, viewerID uint64, video *model.Video) error {
	switch s.decide(ctx, viewerID, video) {
	case Allowed:
		return nil
	case DeniedLoginRequired:
		return errs.Unauthorized("请登录后观看该视频")
	case DeniedFollowersOnly:
		return errs.Forbidden("该视频仅对作者的粉丝可见")
	case DeniedPrivate:
		return errs.Forbidden("该视频是私密视频")
	default:
		return errs.Forbidden("无权观看该视频")
	}
}
