package kv_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/csvvault/pkg/configs"
	"github.com/yeisme/csvvault/pkg/internal/storage/kv"
)

func newMemory(t testing.TB) kv.KVStore {
	t.Helper()

	store, err := kv.NewKVStore(context.Background(), configs.KVTypeMemory, nil)
	require.NoError(t, err)

	return store
}

func TestRegisteredTypes(t *testing.T) {
	assert.Contains(t, kv.GetRegisteredKVTypes(), configs.KVTypeMemory)

	_, err := kv.NewKVStore(context.Background(), "etcd", nil)
	require.Error(t, err)
}

func TestMemoryKV_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := newMemory(t)

	value := []byte(`{"id":1}`)
	require.NoError(t, store.Set(ctx, "csvvault:file:1", value, 0))

	// 调用方修改原切片不影响已存值
	value[0] = 'x'

	got, err := store.Get(ctx, "csvvault:file:1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, string(got))

	ok, err := store.Exists(ctx, "csvvault:file:1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, "csvvault:file:1"))

	_, err = store.Get(ctx, "csvvault:file:1")
	require.ErrorIs(t, err, kv.ErrNotFound)
}

func TestMemoryKV_TTL(t *testing.T) {
	ctx := context.Background()
	store := newMemory(t)

	require.NoError(t, store.Set(ctx, "short", []byte("v"), time.Second))
	require.NoError(t, store.Set(ctx, "forever", []byte("v"), 0))

	got, err := store.Get(ctx, "short")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))

	assert.Eventually(t, func() bool {
		_, err := store.Get(ctx, "short")
		return err != nil
	}, 3*time.Second, 100*time.Millisecond)

	ok, err := store.Exists(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Get(ctx, "forever")
	require.NoError(t, err)
}

func TestMemoryKV_Keys(t *testing.T) {
	ctx := context.Background()
	store := newMemory(t)

	for _, k := range []string{"csvvault:file:1", "csvvault:file:2", "other:1"} {
		require.NoError(t, store.Set(ctx, k, []byte("v"), 0))
	}

	keys, err := store.Keys(ctx, "csvvault:file:*")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"csvvault:file:1", "csvvault:file:2"}, keys)

	all, err := store.Keys(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = store.Keys(ctx, "[")
	require.Error(t, err)
}

// 设置 ENABLE_REDIS_TEST=1 启用，REDIS_ADDR 默认 127.0.0.1:6379.
func TestRedisKV(t *testing.T) {
	if os.Getenv("ENABLE_REDIS_TEST") == "" {
		t.Skip("set ENABLE_REDIS_TEST=1 to enable")
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "127.0.0.1:6379"
	}

	ctx := context.Background()
	cfg := &configs.CacheConfig{Type: configs.KVTypeRedis, Redis: configs.RedisConfig{Addr: addr}}

	client, err := kv.New(ctx, cfg)
	require.NoError(t, err)

	defer client.Close()

	key := fmt.Sprintf("csvvault:test:%d", time.Now().UnixNano())
	require.NoError(t, client.Set(ctx, key, []byte("v"), time.Minute))

	got, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))

	require.NoError(t, client.Delete(ctx, key))

	_, err = client.Get(ctx, key)
	require.ErrorIs(t, err, kv.ErrNotFound)
}

func BenchmarkMemoryKV(b *testing.B) {
	ctx := context.Background()
	store := newMemory(b)
	val := make([]byte, 512)

	b.Run("Set", func(b *testing.B) {
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			_ = store.Set(ctx, fmt.Sprintf("k:%d", i%1024), val, time.Minute)
		}
	})

	b.Run("GetParallel", func(b *testing.B) {
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			i := 0
			for pb.Next() {
				_, _ = store.Get(ctx, fmt.Sprintf("k:%d", i%1024))
				i++
			}
		})
	})
}
