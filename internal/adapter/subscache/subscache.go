package subscache

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/niksmo/swimstore/internal/core/domain"
	"github.com/niksmo/swimstore/internal/core/port"
	"github.com/redis/go-redis/v9"
)

var _ port.SubscriptionChecker = (*Checker)(nil)

const keyPrefix = "sub:"

// A Checker fronts a subscription lookup with a redis TTL cache.
// Cache failures fall through to the wrapped checker.
type Checker struct {
	next port.SubscriptionChecker
	rdb  *redis.Client
	ttl  time.Duration
}

func New(
	ctx context.Context,
	addr string,
	ttl time.Duration,
	next port.SubscriptionChecker,
) (Checker, error) {
	const op = "subscache.New"

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return Checker{}, fmt.Errorf(
			"%s: redis is unavailable: %w", op, err,
		)
	}

	return Checker{next: next, rdb: rdb, ttl: ttl}, nil
}

func (c Checker) Active(
	ctx context.Context, username string,
) (bool, error) {
	const op = "Checker.Active"

	key := keyPrefix + username

	cached, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		if active, parseErr := strconv.ParseBool(cached); parseErr == nil {
			return active, nil
		}
	}

	active, err := c.next.Active(ctx, username)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	c.store(ctx, key, active)
	return active, nil
}

func (c Checker) store(ctx context.Context, key string, active bool) {
	const op = "Checker.store"

	err := c.rdb.Set(ctx, key, strconv.FormatBool(active), c.ttl).Err()
	if err != nil {
		slog.Warn("failed to cache subscription state",
			"op", op, "key", key, "err", err,
		)
	}
}

type keyDeleter interface {
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var _ port.SubscriptionProducer = (*Producer)(nil)

// A Producer drops the cached state once the event is produced, so the
// next lookup falls through to the view. The view itself still lags
// until the processor folds the event.
type Producer struct {
	next port.SubscriptionProducer
	rdb  keyDeleter
}

func (c Checker) Producer(next port.SubscriptionProducer) Producer {
	return Producer{next: next, rdb: c.rdb}
}

func (p Producer) ProduceSubscription(
	ctx context.Context, sub domain.Subscription,
) error {
	const op = "Producer.ProduceSubscription"

	if err := p.next.ProduceSubscription(ctx, sub); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.invalidate(ctx, sub.Username)
	return nil
}

func (p Producer) invalidate(ctx context.Context, username string) {
	const op = "Producer.invalidate"

	key := keyPrefix + username
	if err := p.rdb.Del(ctx, key).Err(); err != nil {
		slog.Warn("failed to drop cached subscription state",
			"op", op, "key", key, "err", err,
		)
	}
}

func (c Checker) Close() {
	const op = "Checker.Close"
	log := slog.With("op", op)

	log.Info("closing subscription cache...")
	if err := c.rdb.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("subscription cache is closed")
}
