package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jobward/jobward/internal/repository"
)

var _ repository.LockStore = (*redisLockStore)(nil)

// releaseScript deletes the key only while it still belongs to the caller,
// so an instance whose lock expired mid-run can never delete a successor's lock.
var releaseScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type redisLockStore struct {
	client *goredis.Client
}

// NewRedisLockStore creates a Redis-backed lock store using SET NX with expiry.
func NewRedisLockStore(client *goredis.Client) repository.LockStore {
	return &redisLockStore{client: client}
}

func (r *redisLockStore) Acquire(ctx context.Context, key, holder string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, holder, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis: acquire lock: %w", err)
	}
	return ok, nil
}

func (r *redisLockStore) Release(ctx context.Context, key, holder string) error {
	if err := releaseScript.Run(ctx, r.client, []string{key}, holder).Err(); err != nil {
		return fmt.Errorf("redis: release lock: %w", err)
	}
	return nil
}
