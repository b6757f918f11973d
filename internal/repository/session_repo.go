package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// ViewSessionStore 匿名访客在一个会话里看过哪些视频
type ViewSessionStore interface {
	Viewed(ctx context.Context, sessionID string) ([]string, error)
	// Save 把视频加入会话集合，并顺延会话的过期时间
	Save(ctx context.Context, sessionID string, videoIDs []string) error
}

type viewSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewViewSessionStore(rdb *redis.Client, ttl time.Duration) ViewSessionStore {
	return &viewSessionStore{rdb: rdb, ttl: ttl}
}

func (s *viewSessionStore) key(sessionID string) string {
	return fmt.Sprintf("session:%s:viewed", sessionID)
}

func (s *viewSessionStore) Viewed(ctx context.Context, sessionID string) ([]string, error) {
	ids, err := s.rdb.SMembers(ctx, s.key(sessionID)).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrap(err, "读取会话观看记录失败")
	}
	return ids, nil
}

func (s *viewSessionStore) Save(ctx context.Context, sessionID string, videoIDs []string) error {
	if len(videoIDs) == 0 {
		return nil
	}
	members := make([]interface{}, 0, len(videoIDs))
	for _, id := range videoIDs {
		members = append(members, id)
	}
	key := s.key(sessionID)
	pipe := s.rdb.TxPipeline()
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	return errors.Wrap(err, "写入会话观看记录失败")
}
