package service

import (
	"context"

	"Snapora/internal/errs"
	"Snapora/internal/model"
	"Snapora/internal/repository"
	"Snapora/pkg/logger"
)

// ViewSession 匿名访客在当前会话里看过的视频
type ViewSession struct {
	ID     string
	viewed map[string]struct{}
	// 本次请求新加入的，保存时只写这些
	added []string
}

func NewViewSession(id string, viewed []string) ViewSession {
	sess := ViewSession{ID: id, viewed: make(map[string]struct{}, len(viewed))}
	for _, v := range viewed {
		sess.viewed[v] = struct{}{}
	}
	return sess
}

func (s ViewSession) Has(videoID string) bool {
	_, ok := s.viewed[videoID]
	return ok
}

// with 返回加入 videoID 后的新会话，不修改原值
func (s ViewSession) with(videoID string) ViewSession {
	next := ViewSession{
		ID:     s.ID,
		viewed: make(map[string]struct{}, len(s.viewed)+1),
		added:  append(append([]string(nil), s.added...), videoID),
	}
	for v := range s.viewed {
		next.viewed[v] = struct{}{}
	}
	next.viewed[videoID] = struct{}{}
	return next
}

func (s ViewSession) Added() []string {
	return s.added
}

//go:generate mockgen -source=./view.go -package=svcmocks -destination=./mocks/view.mock.go
type ViewService interface {
	// RecordView 登录用户每个视频只记一次；匿名用户在同一个会话里每个视频只记一次
	// 调用方负责事先判断可见性
	RecordView(ctx context.Context, viewerID uint64, video *model.Video, sess ViewSession) (ViewSession, error)
	CountViews(ctx context.Context, videoID string) (int64, error)
	// LoadSession Redis 出错时返回空会话
	LoadSession(ctx context.Context, sessionID string) ViewSession
	// SaveSession 出错只记日志
	SaveSession(ctx context.Context, sess ViewSession)
}

type viewService struct {
	viewRepo repository.ViewRepository
	sessions repository.ViewSessionStore
}

func NewViewService(viewRepo repository.ViewRepository, sessions repository.ViewSessionStore) ViewService {
	return &viewService{viewRepo: viewRepo, sessions: sessions}
}

func (s *viewService) RecordView(ctx context.Context, viewerID uint64, video *model.Video, sess ViewSession) (ViewSession, error) {
	if viewerID != Anonymous {
		created, err := s.viewRepo.GetOrCreate(ctx, viewerID, video.ID)
		if err != nil {
			return sess, errs.Internal(err)
		}
		if created {
			viewsRecorded.WithLabelValues("user").Inc()
		}
		return sess, nil
	}

	if sess.Has(video.ID) {
		return sess, nil
	}
	if err := s.viewRepo.Create(ctx, &model.View{VideoID: video.ID}); err != nil {
		return sess, errs.Internal(err)
	}
	viewsRecorded.WithLabelValues("anonymous").Inc()
	return sess.with(video.ID), nil
}

func (s *viewService) CountViews(ctx context.Context, videoID string) (int64, error) {
	count, err := s.viewRepo.CountByVideo(ctx, videoID)
	if err != nil {
		return 0, errs.Internal(err)
	}
	return count, nil
}

func (s *viewService) LoadSession(ctx context.Context, sessionID string) ViewSession {
	if sessionID == "" {
		return NewViewSession("", nil)
	}
	viewed, err := s.sessions.Viewed(ctx, sessionID)
	if err != nil {
		logger.Log.WithError(err).WithField("session_id", sessionID).Warn("读取会话失败，按空会话处理")
		return NewViewSession(sessionID, nil)
	}
	return NewViewSession(sessionID, viewed)
}

func (s *viewService) SaveSession(ctx context.Context, sess ViewSession) {
	if sess.ID == "" || len(sess.added) == 0 {
		return
	}
	if err := s.sessions.Save(ctx, sess.ID, sess.added); err != nil {
		logger.Log.WithError(err).WithField("session_id", sess.ID).Warn("保存会话失败")
	}
}
