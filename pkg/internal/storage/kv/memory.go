package kv

import (
	"context"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/yeisme/csvvault/pkg/configs"
)

// MemoryKV 基于 sync.Map 的进程内 KV 实现，TTL 在读取时惰性检查.
type MemoryKV struct {
	data sync.Map
}

// NewMemoryKV 创建内存 KV 实例.
func NewMemoryKV(_ context.Context, _ *configs.CacheConfig) (KVStore, error) {
	return &MemoryKV{}, nil
}

// Get 获取键的值.
func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	value, exists := m.data.Load(key)
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	e, ok := value.(entry)
	if !ok {
		return nil, fmt.Errorf("invalid value type for key: %s", key)
	}

	if e.expired(time.Now()) {
		m.data.Delete(key)

		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	return append([]byte(nil), e.value...), nil
}

// Set 设置键的值.
func (m *MemoryKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.data.Store(key, newEntry(value, ttl))

	return nil
}

// Delete 删除键.
func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.data.Delete(key)

	return nil
}

// Exists 检查键是否存在且未过期.
func (m *MemoryKV) Exists(ctx context.Context, key string) (bool, error) {
	if _, err := m.Get(ctx, key); err != nil {
		return false, nil
	}

	return true, nil
}

// Keys 获取匹配 glob 模式的键，空模式返回全部.
func (m *MemoryKV) Keys(_ context.Context, pattern string) ([]string, error) {
	keys := make([]string, 0)

	var matchErr error

	now := time.Now()

	m.data.Range(func(key, value any) bool {
		k, ok := key.(string)
		if !ok {
			return true
		}

		if e, ok := value.(entry); ok && e.expired(now) {
			return true
		}

		if pattern == "" {
			keys = append(keys, k)

			return true
		}

		matched, err := path.Match(pattern, k)
		if err != nil {
			matchErr = err

			return false
		}

		if matched {
			keys = append(keys, k)
		}

		return true
	})

	if matchErr != nil {
		return nil, fmt.Errorf("invalid key pattern %q: %w", pattern, matchErr)
	}

	return keys, nil
}

// Close 关闭存储（内存实现无需操作）.
func (m *MemoryKV) Close() error {
	return nil
}

func init() {
	RegisterKVFactory(configs.KVTypeMemory, NewMemoryKV)
}
