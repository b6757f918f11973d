package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Snapora/internal/model"
)

type fakePublisher struct {
	published []amqp.Publishing
	keys      []string
	err       error
	closed    bool
}

func (p *fakePublisher) Publish(_, key string, _, _ bool, msg amqp.Publishing) error {
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	p.published = append(p.published, msg)
	return nil
}

func (p *fakePublisher) Close() error {
	p.closed = true
	return nil
}

func TestBlobCleaner_Publishes(t *testing.T) {
	pub := &fakePublisher{}
	blobs := newFakeBlobStore()
	c := &blobCleaner{openChannel: func() (publisher, error) { return pub, nil }, blobs: blobs}

	c.Schedule(context.Background(), ReasonVideoDeleted, "videos/a.mp4", "", model.DefaultProfilePicKey, "thumbnails/a.png")

	require.Len(t, pub.published, 1)
	assert.Equal(t, QueueBlobCleanup, pub.keys[0])
	assert.Equal(t, amqp.Persistent, pub.published[0].DeliveryMode)
	var msg BlobCleanupMessage
	require.NoError(t, json.Unmarshal(pub.published[0].Body, &msg))
	assert.Equal(t, BlobCleanupMessage{Keys: []string{"videos/a.mp4", "thumbnails/a.png"}, Reason: ReasonVideoDeleted}, msg)
	assert.True(t, pub.closed)
	assert.Empty(t, blobs.deleted)
}

func TestBlobCleaner_FallsBackToSyncDelete(t *testing.T) {
	testCases := []struct {
		name    string
		cleaner func(blobs *fakeBlobStore) *blobCleaner
	}{
		{
			name: "发布失败",
			cleaner: func(blobs *fakeBlobStore) *blobCleaner {
				pub := &fakePublisher{err: errors.New("channel closed")}
				return &blobCleaner{openChannel: func() (publisher, error) { return pub, nil }, blobs: blobs}
			},
		},
		{
			name: "打不开channel",
			cleaner: func(blobs *fakeBlobStore) *blobCleaner {
				return &blobCleaner{openChannel: func() (publisher, error) { return nil, errors.New("conn closed") }, blobs: blobs}
			},
		},
		{
			name: "没有配置队列",
			cleaner: func(blobs *fakeBlobStore) *blobCleaner {
				return NewBlobCleaner(nil, blobs).(*blobCleaner)
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			blobs := newFakeBlobStore()
			tc.cleaner(blobs).Schedule(context.Background(), ReasonFileReplaced, "videos/old.mp4")
			assert.Equal(t, []string{"videos/old.mp4"}, blobs.deleted)
		})
	}
}

func TestBlobCleaner_NothingToDo(t *testing.T) {
	pub := &fakePublisher{}
	c := &blobCleaner{openChannel: func() (publisher, error) { return pub, nil }, blobs: newFakeBlobStore()}
	c.Schedule(context.Background(), ReasonAvatarReplaced, model.DefaultProfilePicKey, "")
	assert.Empty(t, pub.published)
}

func TestProcessBlobCleanup(t *testing.T) {
	testCases := []struct {
		name        string
		body        string
		deleteErr   map[string]error
		wantOutcome CleanupOutcome
		wantDeleted []string
	}{
		{
			name:        "坏消息直接丢弃",
			body:        `{"keys": [`,
			wantOutcome: CleanupDrop,
		},
		{
			name:        "全部删除成功",
			body:        `{"keys": ["videos/a.mp4", "thumbnails/a.png"], "reason": "video_deleted"}`,
			wantOutcome: CleanupDone,
			wantDeleted: []string{"videos/a.mp4", "thumbnails/a.png"},
		},
		{
			name: "文件已经不存在也算成功",
			body: `{"keys": ["videos/a.mp4"], "reason": "file_replaced"}`,
			deleteErr: map[string]error{
				"videos/a.mp4": minio.ErrorResponse{Code: "NoSuchKey"},
			},
			wantOutcome: CleanupDone,
		},
		{
			name: "存储不可用需要重试",
			body: `{"keys": ["videos/a.mp4", "thumbnails/a.png"], "reason": "video_deleted"}`,
			deleteErr: map[string]error{
				"videos/a.mp4": errors.New("connection refused"),
			},
			wantOutcome: CleanupRetry,
			wantDeleted: []string{"thumbnails/a.png"},
		},
		{
			name:        "默认头像不会被删",
			body:        `{"keys": ["` + model.DefaultProfilePicKey + `"], "reason": "avatar_replaced"}`,
			wantOutcome: CleanupDone,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			blobs := newFakeBlobStore()
			for k, err := range tc.deleteErr {
				blobs.deleteErr[k] = err
			}
			outcome := ProcessBlobCleanup(context.Background(), blobs, []byte(tc.body))
			assert.Equal(t, tc.wantOutcome, outcome)
			assert.Equal(t, tc.wantDeleted, blobs.deleted)
		})
	}
}
