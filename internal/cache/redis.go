package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dbkarmindj67/TicketsandGear/internal/model"
)

const detailKeyPrefix = "tag:detail:"

// RedisStore keeps enriched details in Redis so several API instances share
// one session cache.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("redis connect: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID, eventID string) (*model.EnrichedEvent, bool, error) {
	data, err := s.client.Get(ctx, detailKey(sessionID, eventID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var detail model.EnrichedEvent
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, false, err
	}
	return &detail, true, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID, eventID string, detail *model.EnrichedEvent) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, detailKey(sessionID, eventID), data, 0).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func detailKey(sessionID, eventID string) string {
	return detailKeyPrefix + sessionID + ":" + eventID
}
