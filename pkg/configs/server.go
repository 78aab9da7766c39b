package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development" // 开发环境，自动开启 debug
	EnvProduction  = "production"  // 生产环境

	DefaultEnv             = EnvProduction
	DefaultPort            = 8080      // 监听端口
	DefaultHost            = "0.0.0.0" // 监听地址
	DefaultReloadConfig    = false     // 是否启用配置热重载
	DefaultDebug           = false     // 是否启用调试模式
	DefaultTimeout         = 30        // 读写超时，单位秒
	DefaultShutdownTimeout = 10        // 优雅退出超时，单位秒
)

type (
	// ServerConfig 服务器配置.
	ServerConfig struct {
		Env             string `mapstructure:"env"              json:"env"              yaml:"env"              rule:"omitempty,oneof=development production testing"`
		Port            int    `mapstructure:"port"             json:"port"             yaml:"port"             rule:"min=1,max=65535"`
		Host            string `mapstructure:"host"             json:"host"             yaml:"host"             rule:"omitempty,ip|hostname"`
		ReloadConfig    bool   `mapstructure:"reload_config"    json:"reload_config"    yaml:"reload_config"`
		Debug           bool   `mapstructure:"debug"            json:"debug"            yaml:"debug"`
		Timeout         int    `mapstructure:"timeout"          json:"timeout"          yaml:"timeout"          rule:"min=1,max=300"`
		ShutdownTimeout int    `mapstructure:"shutdown_timeout" json:"shutdown_timeout" yaml:"shutdown_timeout" rule:"min=1,max=300"`
	}
)

// IsDevelopment 是否为开发环境.
func (s *ServerConfig) IsDevelopment() bool {
	return strings.EqualFold(s.Env, EnvDevelopment)
}

// Addr 返回监听地址.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// GetTimeoutDuration 返回超时时间作为time.Duration.
func (s *ServerConfig) GetTimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// GetShutdownTimeout 返回优雅退出超时.
func (s *ServerConfig) GetShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// setDefaults 设置服务器配置的默认值.
func (s *ServerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("server.env", DefaultEnv)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.reload_config", DefaultReloadConfig)
	v.SetDefault("server.debug", DefaultDebug)
	v.SetDefault("server.timeout", DefaultTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
}
