package economy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const balanceKeyPrefix = "balance:"

// RedisLedger stores one float balance per player under "balance:<name>".
type RedisLedger struct {
	Formatter

	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisLedger implements Ledger interface
var _ Ledger = (*RedisLedger)(nil)

// NewRedisLedger creates a ledger for a redis:// URL.
func NewRedisLedger(redisURL string, f Formatter, logger *slog.Logger) (*RedisLedger, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RedisLedger{
		Formatter: f,
		client:    redis.NewClient(opt),
		logger:    logger,
	}, nil
}

func (r *RedisLedger) Enabled() bool { return true }

func (r *RedisLedger) Balance(ctx context.Context, player string) (float64, error) {
	val, err := r.client.Get(ctx, balanceKeyPrefix+player).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		r.logger.Error("Redis GET balance failed", "player", player, "error", err)
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}

	balance, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt balance for %s: %w", player, err)
	}
	return balance, nil
}

func (r *RedisLedger) Modify(ctx context.Context, player string, delta float64) error {
	cmd := r.client.IncrByFloat(ctx, balanceKeyPrefix+player, delta)
	if err := cmd.Err(); err != nil {
		r.logger.Error("Redis INCRBYFLOAT failed", "player", player, "delta", delta, "error", err)
		return fmt.Errorf("failed to modify balance: %w", err)
	}

	r.logger.Debug("Balance modified", "player", player, "delta", delta, "balance", cmd.Val())
	return nil
}

func (r *RedisLedger) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisLedger) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}

	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisLedger) WaitForConnection(ctx context.Context, maxRetries int, retryDelay time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}
