package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TipsRateLimiter limita cuántas veces por ventana un mismo cliente puede pedir
// consejos al LLM. La clave es el email o teléfono del perfil.
type TipsRateLimiter interface {
	Allow(key string) bool
}

const redisTipsAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisTipsRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

func NewRedisTipsRateLimiter(client *redis.Client, window time.Duration, max int) TipsRateLimiter {
	if client == nil {
		return nil
	}
	window, max = normalizeLimits(window, max)
	return &redisTipsRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "tips:rl:",
	}
}

func (l *redisTipsRateLimiter) Allow(key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	normalizedKey := normalizeLimiterKey(key)
	if normalizedKey == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	redisKey := l.prefix + normalizedKey
	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	count, err := l.client.Eval(ctx, redisTipsAllowScript, []string{redisKey}, seconds).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}

type memoryTipsRateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	now     func() time.Time
	windows map[string]limiterWindow
}

type limiterWindow struct {
	start time.Time
	count int
}

// NewMemoryTipsRateLimiter cuenta por ventana fija en memoria del proceso.
func NewMemoryTipsRateLimiter(window time.Duration, max int) TipsRateLimiter {
	window, max = normalizeLimits(window, max)
	return &memoryTipsRateLimiter{
		window:  window,
		max:     max,
		now:     time.Now,
		windows: make(map[string]limiterWindow),
	}
}

func (l *memoryTipsRateLimiter) Allow(key string) bool {
	normalizedKey := normalizeLimiterKey(key)
	if normalizedKey == "" {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[normalizedKey]
	if !ok || now.Sub(w.start) >= l.window {
		w = limiterWindow{start: now}
	}
	w.count++
	l.windows[normalizedKey] = w

	if len(l.windows) > 10000 {
		l.evictExpired(now)
	}
	return w.count <= l.max
}

func (l *memoryTipsRateLimiter) evictExpired(now time.Time) {
	for k, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, k)
		}
	}
}

func normalizeLimits(window time.Duration, max int) (time.Duration, int) {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return window, max
}

func normalizeLimiterKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
