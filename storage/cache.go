package storage

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"lifeboard-api/domain"
)

const (
	boardCacheKey    = "cache:board-tasks"
	contactsCacheKey = "cache:contact-overviews"
)

// Cache wraps a Storage with redis-backed caching for the two aggregate
// reads: the board task set and the contact overviews. Writes pass through
// and evict. Redis failures fall back to the base storage without failing
// the request.
type Cache struct {
	*Storage
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a caching wrapper using the provided redis client and TTL.
func NewCache(base *Storage, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("storage.NewCache: base storage is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{Storage: base, redis: client, ttl: ttl}
}

func (c *Cache) BoardTasks(ctx context.Context) ([]domain.Task, error) {
	if tasks, ok := loadCached[[]domain.Task](ctx, c, boardCacheKey); ok {
		return tasks, nil
	}
	tasks, err := c.Storage.BoardTasks(ctx)
	if err != nil {
		return nil, err
	}
	c.storeCached(ctx, boardCacheKey, tasks)
	return tasks, nil
}

// contactOverviewSnapshot pins the cached overviews to the day they were
// computed for: the recent-touchpoint window moves with the calendar, so a
// snapshot from yesterday is a miss today.
type contactOverviewSnapshot struct {
	Today     string                   `json:"today"`
	Overviews []domain.ContactOverview `json:"overviews"`
}

func (c *Cache) ContactOverviews(ctx context.Context, today domain.Date) ([]domain.ContactOverview, error) {
	if snap, ok := loadCached[contactOverviewSnapshot](ctx, c, contactsCacheKey); ok && snap.Today == today.String() {
		return snap.Overviews, nil
	}
	overviews, err := c.Storage.ContactOverviews(ctx, today)
	if err != nil {
		return nil, err
	}
	c.storeCached(ctx, contactsCacheKey, contactOverviewSnapshot{Today: today.String(), Overviews: overviews})
	return overviews, nil
}

func (c *Cache) CreateTask(ctx context.Context, t domain.Task) (domain.Task, error) {
	created, err := c.Storage.CreateTask(ctx, t)
	if err != nil {
		return domain.Task{}, err
	}
	c.evict(ctx, boardCacheKey)
	return created, nil
}

func (c *Cache) UpdateTask(ctx context.Context, id string, u domain.TaskUpdate, now time.Time) (domain.Task, error) {
	updated, err := c.Storage.UpdateTask(ctx, id, u, now)
	if err != nil {
		return domain.Task{}, err
	}
	c.evict(ctx, boardCacheKey)
	return updated, nil
}

func (c *Cache) MoveTask(ctx context.Context, id, newStatus string, now time.Time) (domain.Task, error) {
	moved, err := c.Storage.MoveTask(ctx, id, newStatus, now)
	if err != nil {
		return domain.Task{}, err
	}
	c.evict(ctx, boardCacheKey)
	return moved, nil
}

func (c *Cache) CreateContact(ctx context.Context, contact domain.Contact) (domain.Contact, error) {
	created, err := c.Storage.CreateContact(ctx, contact)
	if err != nil {
		return domain.Contact{}, err
	}
	c.evict(ctx, contactsCacheKey)
	return created, nil
}

func (c *Cache) CreateTouchpoint(ctx context.Context, tp domain.Touchpoint) (domain.Touchpoint, error) {
	created, err := c.Storage.CreateTouchpoint(ctx, tp)
	if err != nil {
		return domain.Touchpoint{}, err
	}
	c.evict(ctx, contactsCacheKey)
	return created, nil
}

func loadCached[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var zero T
	if c.redis == nil {
		return zero, false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors fall back to the backing storage without failing.
			_ = c.redis.Del(ctx, key).Err()
		}
		return zero, false
	}
	var value T
	if err := sonic.Unmarshal(data, &value); err != nil {
		_ = c.redis.Del(ctx, key).Err()
		return zero, false
	}
	return value, true
}

func (c *Cache) storeCached(ctx context.Context, key string, value any) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := sonic.Marshal(value)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.ttl).Err()
}

func (c *Cache) evict(ctx context.Context, key string) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Del(ctx, key).Err()
}
