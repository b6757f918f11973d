package service

import (
	"context"

	"Snapora/internal/model"
	"Snapora/pkg/logger"
)

type WatchResult struct {
	Video     *model.Video
	Comments  *CommentPage
	LikeState string
	LikeCount int64
	ViewCount int64
	Related   []model.Video
}

// WatchService 播放页需要的所有数据，先过访问控制，再记录观看
//
//go:generate mockgen -source=./watch.go -package=svcmocks -destination=./mocks/watch.mock.go
type WatchService interface {
	Watch(ctx context.Context, viewerID uint64, videoID string, sess ViewSession) (*WatchResult, ViewSession, error)
	// RecordView 单独记录一次观看，返回最新播放数
	RecordView(ctx context.Context, viewerID uint64, videoID string, sess ViewSession) (int64, ViewSession, error)
	Related(ctx context.Context, viewerID uint64, videoID string, limit int) ([]model.Video, error)
}

type watchService struct {
	videos   VideoService
	access   AccessService
	views    ViewService
	comments CommentService
	likes    LikeService
	related  RelatedService
}

func NewWatchService(videos VideoService, access AccessService, views ViewService, comments CommentService, likes LikeService, related RelatedService) WatchService {
	return &watchService{
		videos:   videos,
		access:   access,
		views:    views,
		comments: comments,
		likes:    likes,
		related:  related,
	}
}

func (s *watchService) viewable(ctx context.Context, viewerID uint64, videoID string) (*model.Video, error) {
	video, err := s.videos.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(ctx, viewerID, video); err != nil {
		return nil, err
	}
	return video, nil
}

// 播放：1、访问控制 2、记录观看 3、一级评论 4、点赞状态和计数 5、相关推荐(失败不影响播放)
func (s *watchService) Watch(ctx context.Context, viewerID uint64, videoID string, sess ViewSession) (*WatchResult, ViewSession, error) {
	video, err := s.viewable(ctx, viewerID, videoID)
	if err != nil {
		return nil, sess, err
	}
	logCtx := logger.Log.WithField("video_id", videoID).WithField("viewer_id", viewerID)

	if next, err := s.views.RecordView(ctx, viewerID, video, sess); err != nil {
		logCtx.WithError(err).Warn("记录观看失败")
	} else {
		sess = next
	}

	result := &WatchResult{Video: video}
	if result.Comments, err = s.comments.TopLevelForVideo(ctx, video.ID, 1, DefaultCommentPageSize); err != nil {
		return nil, sess, err
	}
	if result.LikeState, err = s.likes.LikeState(ctx, viewerID, video.ID); err != nil {
		return nil, sess, err
	}
	if result.LikeCount, err = s.likes.CountLikes(ctx, video.ID); err != nil {
		return nil, sess, err
	}
	if result.ViewCount, err = s.views.CountViews(ctx, video.ID); err != nil {
		return nil, sess, err
	}
	result.Related = s.related.RelatedVideos(ctx, video, DefaultRelatedLimit)
	return result, sess, nil
}

func (s *watchService) RecordView(ctx context.Context, viewerID uint64, videoID string, sess ViewSession) (int64, ViewSession, error) {
	video, err := s.viewable(ctx, viewerID, videoID)
	if err != nil {
		return 0, sess, err
	}
	if sess, err = s.views.RecordView(ctx, viewerID, video, sess); err != nil {
		return 0, sess, err
	}
	count, err := s.views.CountViews(ctx, video.ID)
	return count, sess, err
}

func (s *watchService) Related(ctx context.Context, viewerID uint64, videoID string, limit int) ([]model.Video, error) {
	video, err := s.viewable(ctx, viewerID, videoID)
	if err != nil {
		return nil, err
	}
	return s.related.RelatedVideos(ctx, video, limit), nil
}
