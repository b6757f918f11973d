package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

const (
	PrefixVideo      = "videos"
	PrefixThumbnail  = "thumbnails"
	PrefixProfilePic = "profile_pics"
)

// BlobStore 媒体文件存储，对上层只暴露 key
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Delete 对象本来就不存在也算成功
	Delete(ctx context.Context, key string) error
	// PresignedURL 带有效期的下载地址
	PresignedURL(ctx context.Context, key string) (string, error)
}

type minioStore struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

func NewMinioStore(client *minio.Client, bucket string, expiry time.Duration) BlobStore {
	return &minioStore{
		client: client,
		bucket: bucket,
		expiry: expiry,
	}
}

func (s *minioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	return errors.Wrapf(err, "上传对象 %s 失败", key)
}

func (s *minioStore) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err == nil || IsNotExist(err) {
		return nil
	}
	return errors.Wrapf(err, "删除对象 %s 失败", key)
}

func (s *minioStore) PresignedURL(ctx context.Context, key string) (string, error) {
	reqParams := make(url.Values)
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.expiry, reqParams)
	if err != nil {
		return "", errors.Wrapf(err, "生成 %s 的下载地址失败", key)
	}
	return u.String(), nil
}

// IsNotExist 对象不存在
func IsNotExist(err error) bool {
	return minio.ToErrorResponse(errors.Cause(err)).Code == "NoSuchKey"
}

// NewKey 生成 <prefix>/<uuid><ext>，扩展名统一小写
func NewKey(prefix, filename string) string {
	return fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
}
