package redissvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMissing is returned by Get when the key does not exist.
var ErrMissing = errors.New("key not found")

type RedisService struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisService(rdb *redis.Client, ctx context.Context) *RedisService {
	return &RedisService{
		rdb: rdb,
		ctx: ctx,
	}
}

// Connect opens a client and checks the server answers within five seconds.
func Connect(ctx context.Context, addr, password string, db int) (*RedisService, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return NewRedisService(rdb, ctx), nil
}

func (a *RedisService) Close() error {
	return a.rdb.Close()
}

// PushJSON appends v, encoded as JSON, to the list at key.
func (a *RedisService) PushJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return a.rdb.RPush(a.ctx, key, data).Err()
}

// DrainList returns every element of the list at key and deletes it in one transaction.
func (a *RedisService) DrainList(key string) ([]string, error) {
	var entries *redis.StringSliceCmd
	_, err := a.rdb.TxPipelined(a.ctx, func(pipe redis.Pipeliner) error {
		entries = pipe.LRange(a.ctx, key, 0, -1)
		pipe.Del(a.ctx, key)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries.Val(), nil
}

func (a *RedisService) SetWithTTL(key, value string, ttl time.Duration) error {
	return a.rdb.Set(a.ctx, key, value, ttl).Err()
}

func (a *RedisService) Get(key string) (string, error) {
	v, err := a.rdb.Get(a.ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMissing
	}
	return v, err
}

func (a *RedisService) Del(key string) error {
	return a.rdb.Del(a.ctx, key).Err()
}
