package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter 每个 key 一个令牌桶，长时间没访问的桶会被回收
type KeyedRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

func NewKeyedRateLimiter(rps float64, burst int) *KeyedRateLimiter {
	krl := newKeyedRateLimiter(rps, burst, 10*time.Minute, time.Now)
	go krl.cleanupLoop(time.Minute)
	return krl
}

func newKeyedRateLimiter(rps float64, burst int, idle time.Duration, now func() time.Time) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(rps),
		burst:    burst,
		idle:     idle,
		now:      now,
		done:     make(chan struct{}),
	}
}

func (krl *KeyedRateLimiter) Allow(key string) bool {
	krl.mu.Lock()
	entry, ok := krl.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(krl.limit, krl.burst)}
		krl.limiters[key] = entry
	}
	entry.lastSeen = krl.now()
	krl.mu.Unlock()
	return entry.limiter.AllowN(entry.lastSeen, 1)
}

func (krl *KeyedRateLimiter) evictIdle() {
	cutoff := krl.now().Add(-krl.idle)
	krl.mu.Lock()
	defer krl.mu.Unlock()
	for key, entry := range krl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(krl.limiters, key)
		}
	}
}

func (krl *KeyedRateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			krl.evictIdle()
		case <-krl.done:
			return
		}
	}
}

func (krl *KeyedRateLimiter) Stop() {
	krl.stopOnce.Do(func() {
		close(krl.done)
	})
}

// RateLimitMiddleware 按 IP + 路由限流
func RateLimitMiddleware(krl *KeyedRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !krl.Allow(c.ClientIP() + "|" + c.FullPath()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "请求过于频繁，请稍后再试"})
			return
		}
		c.Next()
	}
}
