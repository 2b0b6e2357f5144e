package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"tours-api/internal/domain/entities"
)

// RedisService caches user profiles with a TTL. When the server starts
// without a reachable Redis the client stays nil and every call degrades to
// a cache miss, so the API keeps working against the database alone.
type RedisService struct {
	client *redis.Client
}

func NewRedisService(addr, password string, db int, logger *slog.Logger) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, profile cache disabled", "addr", addr, "error", err)
		return &RedisService{client: nil}
	}

	logger.Info("connected to redis", "addr", addr)
	return &RedisService{client: client}
}

// NewDisabledRedisService returns a cache where every call is a miss. Used
// when no Redis address is configured.
func NewDisabledRedisService() *RedisService {
	return &RedisService{client: nil}
}

func profileKey(userID string) string {
	return "profile:" + userID
}

// GetProfile returns the cached profile or nil on a miss.
func (r *RedisService) GetProfile(ctx context.Context, userID string) (*entities.User, error) {
	if r.client == nil {
		return nil, nil
	}
	payload, err := r.client.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var user entities.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *RedisService) SetProfile(ctx context.Context, user *entities.User, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	// Never cache credential material.
	snapshot := *user
	snapshot.Password = ""
	snapshot.PasswordResetToken = ""
	snapshot.PasswordResetExpires = nil

	payload, err := json.Marshal(&snapshot)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, profileKey(user.ID.String()), payload, ttl).Err()
}

// DeleteProfile drops the cached profile after a mutation.
func (r *RedisService) DeleteProfile(ctx context.Context, userID string) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, profileKey(userID)).Err()
}
