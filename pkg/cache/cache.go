// Package cache 提供基于键值存储的泛型缓存，用 sonic 编解码值.
//
// 所有键都带统一前缀，GetOrSet 通过 singleflight 合并同一键的并发回源.
//
//	c := cache.New(kvStore, "csvvault:", 10*time.Minute)
//	detail, err := cache.GetOrSet(ctx, c, "file:1", func() (FileDetail, error) {
//	    return loadFromDB(1)
//	})
//
// 缓存未命中不视为错误，读写缓存失败时回退到 getter.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/singleflight"

	"github.com/yeisme/csvvault/pkg/internal/storage/kv"
)

// Cache 基于 KV 存储的缓存实现.
type Cache struct {
	kvStore kv.KVStore
	prefix  string
	ttl     time.Duration
	group   singleflight.Group
}

// New 创建缓存实例，ttl 为 Set/GetOrSet 的默认过期时间.
func New(kvStore kv.KVStore, prefix string, ttl time.Duration) *Cache {
	return &Cache{
		kvStore: kvStore,
		prefix:  prefix,
		ttl:     ttl,
	}
}

// Key 返回带前缀的完整键.
func (c *Cache) Key(key string) string {
	return c.prefix + key
}

// Get 泛型获取缓存值.
func Get[T any](ctx context.Context, c *Cache, key string) (T, error) {
	var zero T

	data, err := c.kvStore.Get(ctx, c.Key(key))
	if err != nil {
		return zero, err
	}

	var value T
	if err := sonic.Unmarshal(data, &value); err != nil {
		return zero, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return value, nil
}

// Set 泛型设置缓存值，使用默认 TTL.
func Set[T any](ctx context.Context, c *Cache, key string, value T) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	return c.kvStore.Set(ctx, c.Key(key), data, c.ttl)
}

// Delete 删除缓存键.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.kvStore.Delete(ctx, c.Key(key))
}

// Exists 检查缓存键是否存在.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	return c.kvStore.Exists(ctx, c.Key(key))
}

// GetOrSet 获取缓存值，未命中时调用 getter 并回填.
func GetOrSet[T any](ctx context.Context, c *Cache, key string, getter func() (T, error)) (T, error) {
	if value, err := Get[T](ctx, c, key); err == nil {
		return value, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		value, err := getter()
		if err != nil {
			return nil, err
		}

		// 回填失败不影响返回值
		_ = Set(ctx, c, key, value)

		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}

// Clear 删除当前前缀下的所有键.
func (c *Cache) Clear(ctx context.Context) error {
	keys, err := c.kvStore.Keys(ctx, c.prefix+"*")
	if err != nil {
		return err
	}

	for _, key := range keys {
		if delErr := c.kvStore.Delete(ctx, key); delErr != nil {
			return delErr
		}
	}

	return nil
}
