package service

import (
	"context"
	"strings"

	"Snapora/internal/data"
	"Snapora/internal/errs"
	"Snapora/internal/model"
	"Snapora/internal/repository"
)

const DefaultCommentPageSize = 10

type CommentPage struct {
	Comments []model.Comment
	Total    int64
	Page     int
	PageSize int
}

//go:generate mockgen -source=./comment.go -package=svcmocks -destination=./mocks/comment.mock.go
type CommentService interface {
	// AddComment parentID 为 nil 时是一级评论，回复只能挂在一级评论下
	AddComment(ctx context.Context, userID uint64, videoID, text string, parentID *uint64) (*model.Comment, error)
	// DeleteComment 只有评论作者能删，回复一起删掉
	DeleteComment(ctx context.Context, userID, commentID uint64) error
	ListComments(ctx context.Context, viewerID uint64, videoID string, page, pageSize int) (*CommentPage, error)
	ListReplies(ctx context.Context, viewerID, commentID uint64) ([]model.Comment, error)
	// TopLevelForVideo 不做权限判断，调用方已经判断过
	TopLevelForVideo(ctx context.Context, videoID string, page, pageSize int) (*CommentPage, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	access      AccessService
	uow         data.UnitOfWork
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository, access AccessService, uow data.UnitOfWork) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		access:      access,
		uow:         uow,
	}
}

func (s *commentService) viewableVideo(ctx context.Context, viewerID uint64, videoID string) (*model.Video, error) {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errs.NotFound("视频不存在")
		}
		return nil, errs.Internal(err)
	}
	if !s.access.CanView(ctx, viewerID, video) {
		return nil, errs.Forbidden("无权访问该视频")
	}
	return video, nil
}

func (s *commentService) findComment(ctx context.Context, commentID uint64) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errs.NotFound("评论不存在")
		}
		return nil, errs.Internal(err)
	}
	return comment, nil
}

// 创建评论：1、视频可见才能评论 2、回复的父评论必须是同一视频下的一级评论 3、创建后带着User查出来返回
func (s *commentService) AddComment(ctx context.Context, userID uint64, videoID, text string, parentID *uint64) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errs.Validation("评论内容不能为空")
	}
	if _, err := s.viewableVideo(ctx, userID, videoID); err != nil {
		return nil, err
	}
	if parentID != nil {
		parent, err := s.findComment(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.VideoID != videoID {
			return nil, errs.Validation("回复的评论不属于该视频")
		}
		if parent.IsReply() {
			return nil, errs.Validation("不能对二级评论进行回复")
		}
	}

	comment := &model.Comment{
		VideoID:  videoID,
		UserID:   userID,
		Text:     text,
		ParentID: parentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, errs.Internal(err)
	}
	created, err := s.commentRepo.FindByID(ctx, comment.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return created, nil
}

func (s *commentService) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.findComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return errs.Forbidden("只能删除自己的评论")
	}
	err = s.uow.Execute(ctx, func(repos *data.TransactionalRepositories) error {
		_, err := repos.CommentRepo.DeleteWithReplies(ctx, commentID)
		return err
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return errs.NotFound("评论不存在")
		}
		return errs.Internal(err)
	}
	return nil
}

func normalizePageSize(size int) int {
	if size <= 0 || size > 50 {
		return DefaultCommentPageSize
	}
	return size
}

func (s *commentService) ListComments(ctx context.Context, viewerID uint64, videoID string, page, pageSize int) (*CommentPage, error) {
	if _, err := s.viewableVideo(ctx, viewerID, videoID); err != nil {
		return nil, err
	}
	return s.TopLevelForVideo(ctx, videoID, page, pageSize)
}

func (s *commentService) TopLevelForVideo(ctx context.Context, videoID string, page, pageSize int) (*CommentPage, error) {
	page = normalizePage(page)
	pageSize = normalizePageSize(pageSize)
	comments, total, err := s.commentRepo.ListTopLevel(ctx, videoID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return &CommentPage{Comments: comments, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *commentService) ListReplies(ctx context.Context, viewerID, commentID uint64) ([]model.Comment, error) {
	parent, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.viewableVideo(ctx, viewerID, parent.VideoID); err != nil {
		return nil, err
	}
	replies, err := s.commentRepo.ListReplies(ctx, commentID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return replies, nil
}
