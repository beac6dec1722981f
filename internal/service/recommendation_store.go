package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"wellness-planner/internal/domain"
)

var ErrRecommendationNotFound = errors.New("recommendation not found")

const defaultSessionTTL = 2 * time.Hour

// RecommendationStore guarda la recomendación de la sesión actual del asistente.
// No es persistencia de largo plazo: cada entrada vence con el TTL.
type RecommendationStore interface {
	Save(ctx context.Context, rec domain.Recommendation, ttl time.Duration) error
	Get(ctx context.Context, id string) (domain.Recommendation, error)
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	rec     domain.Recommendation
	expires time.Time
}

type memoryRecommendationStore struct {
	mu    sync.Mutex
	items map[string]memoryEntry
	now   func() time.Time
}

func NewMemoryRecommendationStore() RecommendationStore {
	return &memoryRecommendationStore{
		items: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

func (s *memoryRecommendationStore) Save(_ context.Context, rec domain.Recommendation, ttl time.Duration) error {
	if strings.TrimSpace(rec.ID) == "" {
		return fmt.Errorf("save recommendation: empty id")
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, e := range s.items {
		if now.After(e.expires) {
			delete(s.items, id)
		}
	}
	s.items[rec.ID] = memoryEntry{rec: rec, expires: now.Add(ttl)}
	return nil
}

func (s *memoryRecommendationStore) Get(_ context.Context, id string) (domain.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok {
		return domain.Recommendation{}, ErrRecommendationNotFound
	}
	if s.now().After(e.expires) {
		delete(s.items, id)
		return domain.Recommendation{}, ErrRecommendationNotFound
	}
	return e.rec, nil
}

func (s *memoryRecommendationStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

type redisKV interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisRecommendationStore struct {
	client  redisKV
	prefix  string
	timeout time.Duration
}

func NewRedisRecommendationStore(client *redis.Client) RecommendationStore {
	if client == nil {
		return nil
	}
	return &redisRecommendationStore{
		client:  client,
		prefix:  "plan:session:",
		timeout: 500 * time.Millisecond,
	}
}

func (s *redisRecommendationStore) Save(ctx context.Context, rec domain.Recommendation, ttl time.Duration) error {
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		return fmt.Errorf("save recommendation: empty id")
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal recommendation: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.client.Set(ctx, s.prefix+id, b, ttl).Err(); err != nil {
		return fmt.Errorf("redis set recommendation: %w", err)
	}
	return nil
}

func (s *redisRecommendationStore) Get(ctx context.Context, id string) (domain.Recommendation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Recommendation{}, ErrRecommendationNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	b, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Recommendation{}, ErrRecommendationNotFound
	}
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("redis get recommendation: %w", err)
	}
	var rec domain.Recommendation
	if err := json.Unmarshal(b, &rec); err != nil {
		return domain.Recommendation{}, fmt.Errorf("unmarshal recommendation: %w", err)
	}
	return rec, nil
}

func (s *redisRecommendationStore) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.client.Del(ctx, s.prefix+id).Err(); err != nil {
		return fmt.Errorf("redis del recommendation: %w", err)
	}
	return nil
}
