package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/themis-api/internal/domain"
)

const refreshKeyPrefix = "token:refresh:"

// TokenStore хранит выданные refresh-токены по jti; токен действителен, пока запись жива
type TokenStore interface {
	Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error
	Lookup(ctx context.Context, jti string) (int64, error)
	Revoke(ctx context.Context, jti string) error
}

// RedisTokenStore - реестр refresh-токенов в Redis
type RedisTokenStore struct {
	rdb redis.Cmdable
}

func NewRedisTokenStore(rdb redis.Cmdable) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb}
}

func (s *RedisTokenStore) Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, refreshKeyPrefix+jti, userID, ttl).Err(); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// Lookup возвращает id сотрудника или ErrInvalidToken, если токен отозван или истёк
func (s *RedisTokenStore) Lookup(ctx context.Context, jti string) (int64, error) {
	val, err := s.rdb.Get(ctx, refreshKeyPrefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrInvalidToken
	}
	if err != nil {
		return 0, fmt.Errorf("lookup refresh token: %w", err)
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidToken
	}
	return id, nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, jti string) error {
	return s.rdb.Del(ctx, refreshKeyPrefix+jti).Err()
}
