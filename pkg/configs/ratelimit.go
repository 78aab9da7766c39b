package configs

import "github.com/spf13/viper"

const (
	// 默认速率限制配置.
	DefaultRateLimitEnabled = false
	DefaultRateLimitRPS     = 50.0
	DefaultRateLimitBurst   = 100
	DefaultRateLimitKey     = "ip"
)

// RateLimitConfig 速率限制配置.
// Key 选择限流维度：global（全局）、ip（按客户端IP）、header:Header-Name（按请求头）.
type RateLimitConfig struct {
	Enabled   bool     `mapstructure:"enabled"    json:"enabled"    yaml:"enabled"`
	RPS       float64  `mapstructure:"rps"        json:"rps"        yaml:"rps"        rule:"min=0"`
	Burst     int      `mapstructure:"burst"      json:"burst"      yaml:"burst"      rule:"min=0"`
	Key       string   `mapstructure:"key"        json:"key"        yaml:"key"`
	SkipPaths []string `mapstructure:"skip_paths" json:"skip_paths" yaml:"skip_paths"`
}

func (c *RateLimitConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("rate_limit.enabled", DefaultRateLimitEnabled)
	v.SetDefault("rate_limit.rps", DefaultRateLimitRPS)
	v.SetDefault("rate_limit.burst", DefaultRateLimitBurst)
	v.SetDefault("rate_limit.key", DefaultRateLimitKey)
	v.SetDefault("rate_limit.skip_paths", []string{"/health", "/metrics"})
}
