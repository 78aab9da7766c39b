package configs

import (
	"time"

	"github.com/spf13/viper"
)

// KVType 键值存储类型.
type KVType string

const (
	KVTypeMemory KVType = "memory"
	KVTypeRedis  KVType = "redis"

	DefaultCacheTTL    = 10 * time.Minute
	DefaultCachePrefix = "csvvault:"
)

// CacheConfig 文件详情缓存配置. 文件元数据写入后不可变，缓存无需失效策略.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Type    KVType        `mapstructure:"type"    json:"type"    yaml:"type"    rule:"oneof=memory redis"`
	TTL     time.Duration `mapstructure:"ttl"     json:"ttl"     yaml:"ttl"`
	Prefix  string        `mapstructure:"prefix"  json:"prefix"  yaml:"prefix"`
	Redis   RedisConfig   `mapstructure:"redis"   json:"redis"   yaml:"redis"`
}

// RedisConfig Redis 连接配置.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"     json:"addr"     yaml:"addr"     rule:"omitempty,hostname_port"`
	Password string `mapstructure:"password" json:"-"        yaml:"-"`
	DB       int    `mapstructure:"db"       json:"db"       yaml:"db"       rule:"min=0,max=15"`
}

// setDefaults 设置缓存配置的默认值.
func (c *CacheConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.type", KVTypeMemory)
	v.SetDefault("cache.ttl", DefaultCacheTTL)
	v.SetDefault("cache.prefix", DefaultCachePrefix)

	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
}
