package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/LKAC-Leander/boardReview/internal/app"
	"github.com/LKAC-Leander/boardReview/internal/domain"
)

// QuizCache is a write-through read cache over another app.QuizStore.
// Quiz documents are cached as JSON under quiz:{id}:doc; reads on the
// take path hit Redis first and fall back to the backing store on a
// miss. Writes and deletes delegate to the backing store and then
// invalidate the cached document.
type QuizCache struct {
	client *redis.Client
	store  app.QuizStore
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuizCache(client *redis.Client, store app.QuizStore, ttl time.Duration) *QuizCache {
	return &QuizCache{
		client: client,
		store:  store,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuizCache) Get(ctx context.Context, id string) (domain.Quiz, error) {
	key := c.docKey(id)

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var quiz domain.Quiz
		if err := json.Unmarshal(raw, &quiz); err == nil {
			return quiz, nil
		}
		// Unreadable cache entry: drop it and reload.
		_ = c.client.Del(ctx, key).Err()
	}

	result, err, _ := c.sf.Do(id, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			var quiz domain.Quiz
			if err := json.Unmarshal(raw, &quiz); err == nil {
				return quiz, nil
			}
		}

		quiz, err := c.store.Get(ctx, id)
		if err != nil {
			return domain.Quiz{}, err
		}

		if raw, err := json.Marshal(quiz); err == nil {
			_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
		}
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

// ListAll always goes to the backing store; the listing order depends
// on timestamps the cache has no authority over.
func (c *QuizCache) ListAll(ctx context.Context) ([]domain.Quiz, error) {
	return c.store.ListAll(ctx)
}

func (c *QuizCache) Save(ctx context.Context, quiz *domain.Quiz) error {
	if err := c.store.Save(ctx, quiz); err != nil {
		return err
	}
	return c.client.Del(ctx, c.docKey(quiz.ID)).Err()
}

func (c *QuizCache) Delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, id); err != nil {
		return err
	}
	return c.client.Del(ctx, c.docKey(id)).Err()
}

func (c *QuizCache) docKey(id string) string {
	return "quiz:" + id + ":doc"
}

func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
