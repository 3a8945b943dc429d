// Package cache - in-process кеш ответов на bigcache.
// Значения хранятся сериализованными в JSON.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/allegro/bigcache/v3"
)

type Cache struct {
	big *bigcache.BigCache
}

// New создает кеш с общим TTL для всех записей
func New(ctx context.Context, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	cfg := bigcache.DefaultConfig(ttl)
	cfg.Shards = 16
	cfg.CleanWindow = ttl
	cfg.Verbose = false

	big, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Cache{big: big}, nil
}

// GetJSON читает значение в out. false - записи нет (или она истекла).
func (c *Cache) GetJSON(key string, out interface{}) (bool, error) {
	raw, err := c.big.Get(key)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) SetJSON(key string, val interface{}) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return c.big.Set(key, raw)
}

func (c *Cache) Delete(key string) error {
	err := c.big.Delete(key)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil
	}
	return err
}

func (c *Cache) Close() error {
	return c.big.Close()
}
