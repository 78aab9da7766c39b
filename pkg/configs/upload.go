package configs

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultUploadDir       = "uploads"
	DefaultUploadMaxSize   = 16000000        // 请求体上限（字节）
	DefaultUploadTempTTL   = time.Hour       // 临时文件保留时间
	DefaultUploadSweepCron = "*/15 * * * *" // 临时文件清理周期
)

// DefaultAllowedExtensions 默认允许的扩展名.
var DefaultAllowedExtensions = []string{"csv"}

// UploadConfig 上传目录与限制.
type UploadConfig struct {
	Dir               string        `mapstructure:"dir"                json:"dir"                yaml:"dir"                rule:"required"`
	AllowedExtensions []string      `mapstructure:"allowed_extensions" json:"allowed_extensions" yaml:"allowed_extensions" rule:"min=1,dive,required"`
	MaxSize           int64         `mapstructure:"max_size"           json:"max_size"           yaml:"max_size"           rule:"min=1"`
	TempTTL           time.Duration `mapstructure:"temp_ttl"           json:"temp_ttl"           yaml:"temp_ttl"`
	SweepCron         string        `mapstructure:"sweep_cron"         json:"sweep_cron"         yaml:"sweep_cron"`
}

// IsAllowed 判断扩展名（不含点，大小写不敏感）是否在白名单中.
func (c *UploadConfig) IsAllowed(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range c.AllowedExtensions {
		if e == ext {
			return true
		}
	}

	return false
}

// normalize 统一扩展名格式：小写、去掉前导点.
func (c *UploadConfig) normalize() {
	exts := make([]string, 0, len(c.AllowedExtensions))
	for _, e := range c.AllowedExtensions {
		e = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(e)), ".")
		if e != "" {
			exts = append(exts, e)
		}
	}

	c.AllowedExtensions = exts
}

func (c *UploadConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("upload.dir", DefaultUploadDir)
	v.SetDefault("upload.allowed_extensions", DefaultAllowedExtensions)
	v.SetDefault("upload.max_size", DefaultUploadMaxSize)
	v.SetDefault("upload.temp_ttl", DefaultUploadTempTTL)
	v.SetDefault("upload.sweep_cron", DefaultUploadSweepCron)
}
