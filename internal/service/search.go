package service

import (
	"context"
	"strings"

	"Snapora/internal/errs"
	"Snapora/internal/repository"
)

const SearchPageSize = 12

//go:generate mockgen -source=./search.go -package=svcmocks -destination=./mocks/search.mock.go
type SearchService interface {
	// Search 空关键字返回全部公开视频，sort 为空时按最新排序
	Search(ctx context.Context, query, sort string, page int) (*VideoPage, error)
}

type searchService struct {
	videoRepo repository.VideoRepository
}

func NewSearchService(videoRepo repository.VideoRepository) SearchService {
	return &searchService{videoRepo: videoRepo}
}

func IsValidSort(sort string) bool {
	switch sort {
	case repository.SortNewest, repository.SortOldest, repository.SortMostViewed, repository.SortMostLikes:
		return true
	}
	return false
}

func (s *searchService) Search(ctx context.Context, query, sort string, page int) (*VideoPage, error) {
	if sort == "" {
		sort = repository.SortNewest
	}
	if !IsValidSort(sort) {
		return nil, errs.Validation("无效的排序方式")
	}
	page = normalizePage(page)
	videos, total, err := s.videoRepo.Search(ctx, repository.SearchQuery{
		Keyword: strings.TrimSpace(query),
		Sort:    sort,
		Offset:  (page - 1) * SearchPageSize,
		Limit:   SearchPageSize,
	})
	if err != nil {
		return nil, errs.Internal(err)
	}
	return &VideoPage{Videos: videos, Total: total, Page: page, PageSize: SearchPageSize}, nil
}
