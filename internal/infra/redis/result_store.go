package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LKAC-Leander/boardReview/internal/domain"
)

// ResultStore keeps score results in Redis under result:{id} with a
// TTL standing in for the browsing session's lifetime. Reads are
// non-destructive; expiry is the only cleanup.
type ResultStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResultStore(client *redis.Client, ttl time.Duration) *ResultStore {
	return &ResultStore{client: client, ttl: ttl}
}

func (s *ResultStore) Put(ctx context.Context, id string, result domain.ScoreResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(id), raw, s.ttl).Err()
}

func (s *ResultStore) Get(ctx context.Context, id string) (domain.ScoreResult, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ScoreResult{}, domain.ErrNoResult
	}
	if err != nil {
		return domain.ScoreResult{}, err
	}
	var result domain.ScoreResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return domain.ScoreResult{}, err
	}
	return result, nil
}

func (s *ResultStore) key(id string) string {
	return "result:" + id
}

// PreferenceStore keeps the theme preference in Redis without a TTL,
// mirroring a durable local-storage slot.
type PreferenceStore struct {
	client *redis.Client
}

func NewPreferenceStore(client *redis.Client) *PreferenceStore {
	return &PreferenceStore{client: client}
}

func (s *PreferenceStore) Theme(ctx context.Context) (string, error) {
	theme, err := s.client.Get(ctx, "pref:theme").Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return theme, err
}

func (s *PreferenceStore) SetTheme(ctx context.Context, theme string) error {
	return s.client.Set(ctx, "pref:theme", theme, 0).Err()
}
