// Package redislock implements the lease lock on a single Redis instance.
// A lease is a key holding a random token with a PX expiry: SET NX acquires,
// a compare-and-delete script releases, and the expiry guarantees the key
// frees itself if the holder crashes.
package redislock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/skyfare/flight-booking/internal/core/domain"
	"github.com/skyfare/flight-booking/internal/core/ports"
)

const acquirePollInterval = 50 * time.Millisecond

// releaseScript deletes the key only while it still holds our token, so an
// expired lease that another caller re-acquired is never deleted from under
// them. Release after expiry is therefore a no-op.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`

type Locker struct {
	client   *redis.Client
	logger   *logrus.Logger
	newToken func() string
}

func NewLocker(client *redis.Client, logger *logrus.Logger) *Locker {
	return &Locker{
		client:   client,
		logger:   logger,
		newToken: uuid.NewString,
	}
}

func (l *Locker) Acquire(ctx context.Context, key string, waitTimeout, leaseTTL time.Duration) (ports.Lease, error) {
	token := l.newToken()
	deadline := time.Now().Add(waitTimeout)

	for {
		ok, err := l.client.SetNX(ctx, key, token, leaseTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("lock acquire on %s: %w", key, err)
		}
		if ok {
			return &lease{client: l.client, logger: l.logger, key: key, token: token}, nil
		}

		if time.Now().Add(acquirePollInterval).After(deadline) {
			return nil, fmt.Errorf("%w: key %s after %s", domain.ErrLockUnavailable, key, waitTimeout)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(acquirePollInterval):
		}
	}
}

type lease struct {
	client *redis.Client
	logger *logrus.Logger
	key    string
	token  string
}

func (l *lease) Key() string { return l.key }

func (l *lease) Release(ctx context.Context) error {
	deleted, err := l.client.Eval(ctx, releaseScript, []string{l.key}, l.token).Result()
	if err != nil {
		return fmt.Errorf("lock release on %s: %w", l.key, err)
	}
	if n, ok := deleted.(int64); ok && n == 0 {
		// Lease already expired or released; nothing held anymore.
		l.logger.WithField("key", l.key).Debug("Release on expired lease")
	}
	return nil
}
