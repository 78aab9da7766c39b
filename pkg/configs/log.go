package configs

import (
	"github.com/spf13/viper"
)

const (
	DefaultLogToStdout   = false               // 默认写入轮转文件
	DefaultLogFilePath   = "logs/csvvault.log" // 日志文件路径
	DefaultLogMaxSize    = 10                  // 日志文件最大尺寸（MB）
	DefaultLogMaxBackups = 10                  // 日志文件最大备份数量
	DefaultLogMaxAge     = 28                  // 日志文件最大保存天数
	DefaultLogCompress   = true                // 是否启用日志文件压缩
	DefaultLogLevel      = "info"              // 日志级别
)

type (
	// LogConfig 日志相关配置. ToStdout 为 true 时只输出到控制台，否则写入 lumberjack 轮转文件.
	LogConfig struct {
		ToStdout   bool   `mapstructure:"to_stdout"    json:"to_stdout"    yaml:"to_stdout"`
		FilePath   string `mapstructure:"file_path"    json:"file_path"    yaml:"file_path"`
		MaxSize    int    `mapstructure:"max_size_mb"  json:"max_size_mb"  yaml:"max_size_mb"  rule:"min=0"`
		MaxBackups int    `mapstructure:"max_backups"  json:"max_backups"  yaml:"max_backups"  rule:"min=0"`
		MaxAge     int    `mapstructure:"max_age_days" json:"max_age_days" yaml:"max_age_days" rule:"min=0"`
		Compress   bool   `mapstructure:"compress"     json:"compress"     yaml:"compress"`
		Level      string `mapstructure:"level"        json:"level"        yaml:"level"`
	}
)

func (l *LogConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("log.to_stdout", DefaultLogToStdout)
	v.SetDefault("log.file_path", DefaultLogFilePath)
	v.SetDefault("log.max_size_mb", DefaultLogMaxSize)
	v.SetDefault("log.max_backups", DefaultLogMaxBackups)
	v.SetDefault("log.max_age_days", DefaultLogMaxAge)
	v.SetDefault("log.compress", DefaultLogCompress)
	v.SetDefault("log.level", DefaultLogLevel)
}
