package service

import (
	"context"
	"encoding/json"

	"Snapora/internal/storage"
	"Snapora/pkg/logger"

	"github.com/pkg/errors"
	"github.com/streadway/amqp"
)

const (
	// 遵循：项目名.业务领域.实体/功能
	QueueBlobCleanup = "snapora.blob_cleanup.queue"

	ReasonVideoDeleted   = "video_deleted"
	ReasonFileReplaced   = "file_replaced"
	ReasonAvatarReplaced = "avatar_replaced"
	ReasonUploadRollback = "upload_rollback"
)

// BlobCleanupMessage 队列里的消息，consumer 逐个删除 Keys
type BlobCleanupMessage struct {
	Keys   []string `json:"keys"`
	Reason string   `json:"reason"`
}

// BlobCleaner 数据库提交之后再删对象存储里的文件
type BlobCleaner interface {
	// Schedule 尽力而为，不返回错误，失败只记日志
	Schedule(ctx context.Context, reason string, keys ...string)
}

type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type blobCleaner struct {
	// 返回一个新的channel，测试里可以替换
	openChannel func() (publisher, error)
	blobs       storage.BlobStore
}

// NewBlobCleaner conn 为 nil 时直接同步删除
func NewBlobCleaner(conn *amqp.Connection, blobs storage.BlobStore) BlobCleaner {
	c := &blobCleaner{blobs: blobs}
	if conn != nil {
		c.openChannel = func() (publisher, error) {
			return conn.Channel()
		}
	}
	return c
}

func (c *blobCleaner) Schedule(ctx context.Context, reason string, keys ...string) {
	keys = compactKeys(keys)
	if len(keys) == 0 {
		return
	}
	logCtx := logger.Log.WithField("reason", reason).WithField("keys", keys)

	err := c.publish(BlobCleanupMessage{Keys: keys, Reason: reason})
	if err == nil {
		blobCleanups.WithLabelValues(reason, "queued").Add(float64(len(keys)))
		logCtx.Info("媒体文件清理任务已入队")
		return
	}
	logCtx.WithError(err).Warn("清理消息发布失败，改为同步删除")

	for _, key := range keys {
		if err := c.blobs.Delete(ctx, key); err != nil {
			logCtx.WithError(err).WithField("key", key).Error("同步删除媒体文件失败")
			continue
		}
		blobCleanups.WithLabelValues(reason, "sync").Inc()
	}
}

// 为每一个消息建立一个单独的channel，用完就关
func (c *blobCleaner) publish(msg BlobCleanupMessage) error {
	if c.openChannel == nil {
		return errors.New("未配置消息队列")
	}
	ch, err := c.openChannel()
	if err != nil {
		return errors.Wrap(err, "打开channel失败")
	}
	defer ch.Close()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return ch.Publish(
		"",               // 默认交换机
		QueueBlobCleanup, // routing key 就是队列名
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
}

// 去掉空key和默认头像这种不能删的共享文件
func compactKeys(keys []string) []string {
	out := keys[:0:0]
	for _, k := range keys {
		if k == "" || isSharedKey(k) {
			continue
		}
		out = append(out, k)
	}
	return out
}

// CleanupOutcome consumer 根据它决定 Ack 还是 Nack
type CleanupOutcome int

const (
	CleanupDone CleanupOutcome = iota
	// CleanupDrop 坏消息，Nack 且不重新入队
	CleanupDrop
	// CleanupRetry 存储暂时不可用，重新入队
	CleanupRetry
)

// ProcessBlobCleanup 处理一条清理消息，文件已经不存在也算成功
func ProcessBlobCleanup(ctx context.Context, blobs storage.BlobStore, body []byte) CleanupOutcome {
	var msg BlobCleanupMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		logger.Log.WithError(err).WithField("body", string(body)).Error("清理消息JSON解析失败")
		return CleanupDrop
	}
	logCtx := logger.Log.WithField("reason", msg.Reason)

	outcome := CleanupDone
	for _, key := range compactKeys(msg.Keys) {
		err := blobs.Delete(ctx, key)
		if err != nil && !storage.IsNotExist(err) {
			logCtx.WithError(err).WithField("key", key).Error("删除媒体文件失败，稍后重试")
			outcome = CleanupRetry
			continue
		}
		blobCleanups.WithLabelValues(msg.Reason, "consumed").Inc()
	}
	if outcome == CleanupDone {
		logCtx.WithField("keys", msg.Keys).Info("媒体文件清理完成")
	}
	return outcome
}
