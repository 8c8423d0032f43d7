package cache

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"aquapark/internal/models"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr         string
	Password     string
	StaffHashKey string
}

// RedisClient caches staff Basic-Auth lookups and availability responses so
// the hot gate/storefront paths avoid a database round trip.
type RedisClient struct {
	client       *redis.Client
	staffHashKey string
}

func NewRedisClient(cfg Config) (*RedisClient, error) {
	if cfg.StaffHashKey == "" {
		cfg.StaffHashKey = "staff:auth"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{
		client:       rdb,
		staffHashKey: cfg.StaffHashKey,
	}, nil
}

func staffAuthKey(staffHashKey, email, passwordHash string) string {
	authString := fmt.Sprintf("%s:%s", email, passwordHash)
	return staffHashKey + ":" + base64.StdEncoding.EncodeToString([]byte(authString))
}

// GetStaffByAuth looks up a cached staff record for email+passwordHash so a
// cache hit skips both the password check and the database trip.
func (r *RedisClient) GetStaffByAuth(ctx context.Context, email, passwordHash string) (*models.StaffUser, error) {
	data, err := r.client.Get(ctx, staffAuthKey(r.staffHashKey, email, passwordHash)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("staff not found in cache")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}

	staff := &models.StaffUser{}
	if err := json.Unmarshal(data, staff); err != nil {
		return nil, fmt.Errorf("invalid staff record in cache: %w", err)
	}

	return staff, nil
}

// SetStaffAuth stores a verified email+passwordHash -> staff record mapping.
// Short TTL so deactivations take effect quickly.
func (r *RedisClient) SetStaffAuth(ctx context.Context, email, passwordHash string, staff *models.StaffUser) error {
	data, err := json.Marshal(staff)
	if err != nil {
		return fmt.Errorf("failed to marshal staff record: %w", err)
	}
	return r.client.Set(ctx, staffAuthKey(r.staffHashKey, email, passwordHash), data, 5*time.Minute).Err()
}

func availabilityKey(date string) string {
	return fmt.Sprintf("availability:%s", date)
}

// GetAvailabilityRaw returns a cached availability response as raw JSON so
// the handler can write it without re-marshaling.
func (r *RedisClient) GetAvailabilityRaw(ctx context.Context, date string) ([]byte, error) {
	data, err := r.client.Get(ctx, availabilityKey(date)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("availability not cached")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return data, nil
}

// SetAvailability caches an availability response briefly. Short TTL keeps
// sold counts close to the truth without hammering the inventory table.
func (r *RedisClient) SetAvailability(ctx context.Context, date string, response interface{}, ttl time.Duration) error {
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal availability: %w", err)
	}
	return r.client.Set(ctx, availabilityKey(date), data, ttl).Err()
}

// InvalidateAvailability drops the cached entry after an admin mutation or a
// successful reservation.
func (r *RedisClient) InvalidateAvailability(ctx context.Context, date string) error {
	return r.client.Del(ctx, availabilityKey(date)).Err()
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
