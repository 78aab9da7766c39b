package configs

import (
	"github.com/spf13/viper"
)

// MetricsConfig Metrics相关配置.
type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"         json:"enabled"         yaml:"enabled"`         // 是否启用Metrics
	Path           string `mapstructure:"path"            json:"path"            yaml:"path"`            // 暴露路径
	Namespace      string `mapstructure:"namespace"       json:"namespace"       yaml:"namespace"`       // 指标前缀
	RuntimeMetrics bool   `mapstructure:"runtime_metrics" json:"runtime_metrics" yaml:"runtime_metrics"` // 是否收集运行时指标
	DBMetrics      bool   `mapstructure:"db_metrics"      json:"db_metrics"      yaml:"db_metrics"`      // gorm 连接池指标
	Pprof          bool   `mapstructure:"pprof"           json:"pprof"           yaml:"pprof"`           // 是否挂载 pprof
}

// setDefaults 设置Metrics配置的默认值.
func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.namespace", AppName)
	v.SetDefault("metrics.runtime_metrics", true)
	v.SetDefault("metrics.db_metrics", true)
	v.SetDefault("metrics.pprof", false)
}
