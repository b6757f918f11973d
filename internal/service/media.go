package service

import (
	"context"

	"Snapora/internal/storage"
	"Snapora/pkg/logger"
)

// MediaService 把存储 key 换成带有效期的下载地址
//
//go:generate mockgen -source=./media.go -package=svcmocks -destination=./mocks/media.mock.go
type MediaService interface {
	// SignedURL 签名失败时返回空串，页面上显示占位图即可
	SignedURL(ctx context.Context, key string) string
}

type mediaService struct {
	blobs storage.BlobStore
}

func NewMediaService(blobs storage.BlobStore) MediaService {
	return &mediaService{blobs: blobs}
}

func (s *mediaService) SignedURL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	u, err := s.blobs.PresignedURL(ctx, key)
	if err != nil {
		logger.Log.WithError(err).WithField("key", key).Warn("生成下载地址失败")
		return ""
	}
	return u
}
