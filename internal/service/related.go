package service

import (
	"context"
	"sort"

	"Snapora/internal/model"
	"Snapora/internal/repository"
	"Snapora/pkg/logger"
)

const DefaultRelatedLimit = 6

type RelatedService interface {
	// RelatedVideos 尽力而为，查询出错时返回已经拿到的部分，不返回错误
	RelatedVideos(ctx context.Context, video *model.Video, limit int) []model.Video
}

type relatedService struct {
	videoRepo repository.VideoRepository
}

func NewRelatedService(videoRepo repository.VideoRepository) RelatedService {
	return &relatedService{videoRepo: videoRepo}
}

// 先取标签有交集的公开视频，不够再用同作者的公开视频补齐
func (s *relatedService) RelatedVideos(ctx context.Context, video *model.Video, limit int) []model.Video {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	logCtx := logger.Log.WithField("video_id", video.ID)

	byTags, err := s.videoRepo.FindPublicByTags(ctx, video.TagIDs(), video.ID, limit)
	if err != nil {
		logCtx.WithError(err).Warn("按标签查询相关视频失败")
		byTags = nil
	}
	if len(byTags) >= limit {
		return mergeRelated(byTags, nil, limit)
	}

	exclude := make([]string, 0, len(byTags)+1)
	exclude = append(exclude, video.ID)
	for _, v := range byTags {
		exclude = append(exclude, v.ID)
	}
	byOwner, err := s.videoRepo.FindPublicByAuthor(ctx, video.AuthorID, exclude, limit-len(byTags))
	if err != nil {
		logCtx.WithError(err).Warn("按作者查询相关视频失败")
		byOwner = nil
	}
	return mergeRelated(byTags, byOwner, limit)
}

// mergeRelated 去重后按时间倒序，同一时间按ID排，最多 limit 个
func mergeRelated(byTags, byOwner []model.Video, limit int) []model.Video {
	seen := make(map[string]struct{}, len(byTags)+len(byOwner))
	out := make([]model.Video, 0, len(byTags)+len(byOwner))
	for _, group := range [][]model.Video{byTags, byOwner} {
		for _, v := range group {
			if _, ok := seen[v.ID]; ok {
				continue
			}
			seen[v.ID] = struct{}{}
			out = append(out, v)
		}
	}
	// 标签命中的先入选，截断在排序之前
	if len(out) > limit {
		out = out[:limit]
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
