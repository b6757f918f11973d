package service

import (
	"context"
	"fmt"
	"time"

	"Snapora/internal/data"
	"Snapora/internal/errs"
	"Snapora/internal/model"
	"Snapora/internal/repository"
	"Snapora/internal/storage"
	"Snapora/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const FeedPageSize = 10

// MaxPage 页码上限，(page-1)*pageSize 不会溢出成负数偏移
const MaxPage = 10000

// 提交后隔一段时间再删一次缓存，清掉并发读在提交前查库、提交后回填的旧值
const cacheDoubleDeleteDelay = time.Second

type UploadInput struct {
	AuthorID    uint64
	Title       string
	Description string
	Visibility  string
	// 逗号分隔
	Tags      string
	File      *FileInput
	Thumbnail *FileInput
}

// EditInput 表单是整体提交的，Tags 为空表示清空标签；File/Thumbnail 为 nil 表示不替换
type EditInput struct {
	UserID      uint64
	VideoID     string
	Title       string
	Description string
	Visibility  string
	Tags        string
	File        *FileInput
	Thumbnail   *FileInput
}

type VideoPage struct {
	Videos   []model.Video
	Total    int64
	Page     int
	PageSize int
}

func (p *VideoPage) HasNext() bool {
	return int64(p.Page*p.PageSize) < p.Total
}

//go:generate mockgen -source=./video.go -package=svcmocks -destination=./mocks/video.mock.go
type VideoService interface {
	Upload(ctx context.Context, in UploadInput) (*model.Video, error)
	Edit(ctx context.Context, in EditInput) (*model.Video, error)
	Delete(ctx context.Context, userID uint64, videoID string) error
	// GetVideoByID 先查缓存，不存在时返回 NotFound
	GetVideoByID(ctx context.Context, videoID string) (*model.Video, error)
	Feed(ctx context.Context, page int) (*VideoPage, error)
	ListByTag(ctx context.Context, slug string, page int) (*model.Tag, *VideoPage, error)
}

type videoService struct {
	sf singleflight.Group

	videoRepo     repository.VideoRepository
	tagRepo       repository.TagRepository
	uow           data.UnitOfWork
	blobs         storage.BlobStore
	cleaner       BlobCleaner
	maxVideoBytes int64
	cacheDelay    time.Duration
}

func NewVideoService(
	videoRepo repository.VideoRepository,
	tagRepo repository.TagRepository,
	uow data.UnitOfWork,
	blobs storage.BlobStore,
	cleaner BlobCleaner,
	maxVideoBytes int64,
) VideoService {
	if maxVideoBytes <= 0 {
		maxVideoBytes = DefaultMaxVideoBytes
	}
	return &videoService{
		videoRepo:     videoRepo,
		tagRepo:       tagRepo,
		uow:           uow,
		blobs:         blobs,
		cleaner:       cleaner,
		maxVideoBytes: maxVideoBytes,
		cacheDelay:    cacheDoubleDeleteDelay,
	}
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	if page > MaxPage {
		return MaxPage
	}
	return page
}

// putBlob 上传失败统一包装成 Storage 错误
func (s *videoService) putBlob(ctx context.Context, prefix string, f *FileInput) (string, error) {
	key := storage.NewKey(prefix, f.Name)
	if err := s.blobs.Put(ctx, key, f.Reader, f.Size, f.ContentType); err != nil {
		return "", errs.Storage(err)
	}
	return key, nil
}

// rollbackBlobs 数据库写入失败后的补偿删除，删不掉再交给队列
func (s *videoService) rollbackBlobs(ctx context.Context, keys ...string) {
	var left []string
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.blobs.Delete(ctx, key); err != nil {
			logger.Log.WithError(err).WithField("key", key).Warn("补偿删除媒体文件失败")
			left = append(left, key)
		}
	}
	if len(left) > 0 {
		s.cleaner.Schedule(ctx, ReasonUploadRollback, left...)
	}
}

// 上传：1、校验参数 2、先写对象存储 3、事务里创建视频和标签 4、事务失败则删掉刚上传的文件
func (s *videoService) Upload(ctx context.Context, in UploadInput) (*model.Video, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	visibility, err := normalizeVisibility(in.Visibility)
	if err != nil {
		return nil, err
	}
	if err := validateVideoFile(in.File, s.maxVideoBytes); err != nil {
		return nil, err
	}
	if err := validateImageFile(in.Thumbnail); err != nil {
		return nil, err
	}

	videoKey, err := s.putBlob(ctx, storage.PrefixVideo, in.File)
	if err != nil {
		return nil, err
	}
	var thumbKey string
	if in.Thumbnail != nil {
		if thumbKey, err = s.putBlob(ctx, storage.PrefixThumbnail, in.Thumbnail); err != nil {
			s.rollbackBlobs(ctx, videoKey)
			return nil, err
		}
	}

	video := &model.Video{
		ID:           uuid.NewString(),
		AuthorID:     in.AuthorID,
		Title:        title,
		Description:  in.Description,
		Visibility:   visibility,
		VideoKey:     videoKey,
		ThumbnailKey: thumbKey,
	}
	err = s.uow.Execute(ctx, func(repos *data.TransactionalRepositories) error {
		tags, err := repos.TagRepo.GetOrCreateByNames(ctx, model.ParseTagNames(in.Tags))
		if err != nil {
			return err
		}
		video.Tags = tags
		return repos.VideoRepo.Create(ctx, video)
	})
	if err != nil {
		s.rollbackBlobs(ctx, videoKey, thumbKey)
		return nil, errs.Internal(err)
	}
	return video, nil
}

// findOwned 不是作者时也返回 NotFound，不暴露视频是否存在
func (s *videoService) findOwned(ctx context.Context, userID uint64, videoID string) (*model.Video, error) {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errs.NotFound("视频不存在")
		}
		return nil, errs.Internal(err)
	}
	if video.AuthorID != userID {
		return nil, errs.NotFound("视频不存在")
	}
	return video, nil
}

// 编辑：新文件先上传，提交成功后再删旧文件，作者永远不变
func (s *videoService) Edit(ctx context.Context, in EditInput) (*model.Video, error) {
	video, err := s.findOwned(ctx, in.UserID, in.VideoID)
	if err != nil {
		return nil, err
	}
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	visibility, err := normalizeVisibility(in.Visibility)
	if err != nil {
		return nil, err
	}
	if in.File != nil {
		if err := validateVideoFile(in.File, s.maxVideoBytes); err != nil {
			return nil, err
		}
	}
	if err := validateImageFile(in.Thumbnail); err != nil {
		return nil, err
	}

	var newVideoKey, newThumbKey string
	if in.File != nil {
		if newVideoKey, err = s.putBlob(ctx, storage.PrefixVideo, in.File); err != nil {
			return nil, err
		}
	}
	if in.Thumbnail != nil {
		if newThumbKey, err = s.putBlob(ctx, storage.PrefixThumbnail, in.Thumbnail); err != nil {
			s.rollbackBlobs(ctx, newVideoKey)
			return nil, err
		}
	}

	var replaced []string
	updated := *video
	updated.Title = title
	updated.Description = in.Description
	updated.Visibility = visibility
	if newVideoKey != "" {
		replaced = append(replaced, video.VideoKey)
		updated.VideoKey = newVideoKey
	}
	if newThumbKey != "" {
		replaced = append(replaced, video.ThumbnailKey)
		updated.ThumbnailKey = newThumbKey
	}

	s.deleteCache(ctx, video.ID)
	err = s.uow.Execute(ctx, func(repos *data.TransactionalRepositories) error {
		if err := repos.VideoRepo.Update(ctx, &updated); err != nil {
			return err
		}
		tags, err := repos.TagRepo.GetOrCreateByNames(ctx, model.ParseTagNames(in.Tags))
		if err != nil {
			return err
		}
		return repos.VideoRepo.ReplaceTags(ctx, &updated, tags)
	})
	if err != nil {
		s.rollbackBlobs(ctx, newVideoKey, newThumbKey)
		return nil, errs.Internal(err)
	}

	s.invalidateCache(ctx, video.ID)
	s.cleaner.Schedule(ctx, ReasonFileReplaced, replaced...)
	return &updated, nil
}

// 删除：一个事务删掉视频和所有关联数据，文件交给清理队列
func (s *videoService) Delete(ctx context.Context, userID uint64, videoID string) error {
	video, err := s.findOwned(ctx, userID, videoID)
	if err != nil {
		return err
	}
	s.deleteCache(ctx, video.ID)
	err = s.uow.Execute(ctx, func(repos *data.TransactionalRepositories) error {
		return repos.VideoRepo.DeleteWithRelations(ctx, video.ID)
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return errs.NotFound("视频不存在")
		}
		return errs.Internal(err)
	}

	s.invalidateCache(ctx, video.ID)
	s.cleaner.Schedule(ctx, ReasonVideoDeleted, video.VideoKey, video.ThumbnailKey)
	return nil
}

func (s *videoService) deleteCache(ctx context.Context, videoID string) {
	if err := s.videoRepo.DeleteVideoCache(ctx, videoID); err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("删除视频缓存失败")
	}
}

// invalidateCache 事务提交后调用：立即删一次，延迟再删一次
func (s *videoService) invalidateCache(ctx context.Context, videoID string) {
	s.sf.Forget(videoCacheFlightKey(videoID))
	s.deleteCache(ctx, videoID)
	time.AfterFunc(s.cacheDelay, func() {
		delCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		s.deleteCache(delCtx, videoID)
	})
}

func videoCacheFlightKey(videoID string) string {
	return fmt.Sprintf("get_video_%s", videoID)
}

// 根据videoID查找视频：1、查找Redis缓存 2、未命中通过SingleFlight合并并发的数据库查询
func (s *videoService) GetVideoByID(ctx context.Context, videoID string) (*model.Video, error) {
	video, err := s.videoRepo.GetVideoCache(ctx, videoID)
	if err == nil && video != nil {
		return video, nil
	}
	if err != nil {
		// Redis 出错不影响主流程，直接查库
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("读取视频缓存失败")
	}

	result, err, _ := s.sf.Do(videoCacheFlightKey(videoID), func() (interface{}, error) {
		dbVideo, dbErr := s.videoRepo.FindByID(ctx, videoID)
		if dbErr != nil {
			return nil, dbErr
		}
		if cacheErr := s.videoRepo.SetVideoCache(ctx, dbVideo); cacheErr != nil {
			logger.Log.WithError(cacheErr).WithField("video_id", videoID).Warn("写入视频缓存失败")
		}
		return dbVideo, nil
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errs.NotFound("视频不存在")
		}
		return nil, errs.Internal(err)
	}
	return result.(*model.Video), nil
}

// Feed 首页，公开视频按时间倒序
func (s *videoService) Feed(ctx context.Context, page int) (*VideoPage, error) {
	page = normalizePage(page)
	videos, total, err := s.videoRepo.ListPublic(ctx, (page-1)*FeedPageSize, FeedPageSize)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return &VideoPage{Videos: videos, Total: total, Page: page, PageSize: FeedPageSize}, nil
}

func (s *videoService) ListByTag(ctx context.Context, slug string, page int) (*model.Tag, *VideoPage, error) {
	tag, err := s.tagRepo.FindBySlug(ctx, slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil, errs.NotFound("标签不存在")
		}
		return nil, nil, errs.Internal(err)
	}
	page = normalizePage(page)
	videos, total, err := s.videoRepo.ListPublicByTag(ctx, tag.ID, (page-1)*FeedPageSize, FeedPageSize)
	if err != nil {
		return nil, nil, errs.Internal(err)
	}
	return tag, &VideoPage{Videos: videos, Total: total, Page: page, PageSize: FeedPageSize}, nil
}
