package oss

import (
	"context"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

// Options MinIO 连接参数
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

var (
	mu     sync.Mutex
	client *minio.Client
)

// Client 返回进程内唯一的 MinIO 客户端，第一次调用时才真正创建，并确保 bucket 存在
// 拿到的句柄通过构造函数注入给需要的组件，业务代码不直接读这里的全局变量
func Client(ctx context.Context, opts Options) (*minio.Client, error) {
	mu.Lock()
	defer mu.Unlock()
	if client != nil {
		return client, nil
	}

	c, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "创建MinIO客户端失败")
	}

	exists, err := c.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, errors.Wrapf(err, "检查bucket %s 失败", opts.Bucket)
	}
	if !exists {
		if err := c.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{Region: "us-east-1"}); err != nil {
			return nil, errors.Wrapf(err, "创建bucket %s 失败", opts.Bucket)
		}
	}

	client = c
	return client, nil
}

// Close 释放单例，之后再调用 Client 会重新创建
// minio 客户端本身没有需要关闭的连接，这里只负责把句柄置空
func Close() {
	mu.Lock()
	defer mu.Unlock()
	client = nil
}
