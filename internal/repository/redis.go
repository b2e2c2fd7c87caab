package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"courierdesk/internal/config"
	"courierdesk/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	snapshotKey   = "schedule:snapshot"
	generationKey = "schedule:generation"
)

// RedisSnapshotRepository persists the schedule snapshot in Redis so restarts
// and multiple instances see the same view.
type RedisSnapshotRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient builds a Redis client from configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisSnapshotRepository(client *redis.Client, ttl time.Duration) *RedisSnapshotRepository {
	return &RedisSnapshotRepository{client: client, ttl: ttl}
}

func (r *RedisSnapshotRepository) Replace(ctx context.Context, bookings []models.Booking) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	data, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := r.client.Set(ctx, snapshotKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot in redis: %w", err)
	}

	if err := r.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("failed to bump snapshot generation: %w", err)
	}

	return nil
}

func (r *RedisSnapshotRepository) Bookings(ctx context.Context) ([]models.Booking, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}

	val, err := r.client.Get(ctx, snapshotKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot from redis: %w", err)
	}

	var bookings []models.Booking
	if err := json.Unmarshal([]byte(val), &bookings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return bookings, nil
}

func (r *RedisSnapshotRepository) Get(ctx context.Context, id int64) (*models.Booking, error) {
	bookings, err := r.Bookings(ctx)
	if err != nil {
		return nil, err
	}

	for i := range bookings {
		if bookings[i].ID == id {
			return &bookings[i], nil
		}
	}

	return nil, ErrBookingNotFound
}

func (r *RedisSnapshotRepository) Generation(ctx context.Context) (int64, error) {
	if r.client == nil {
		return 0, fmt.Errorf("redis client is nil")
	}

	val, err := r.client.Get(ctx, generationKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get snapshot generation: %w", err)
	}

	return val, nil
}

// Ping verifies the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
