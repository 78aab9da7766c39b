package configs

import (
	"fmt"

	"github.com/spf13/viper"
)

// S3Config MinIO S3存储配置.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"          json:"endpoint"    yaml:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"     json:"-"           yaml:"-"`
	SecretAccessKey string `mapstructure:"secret_access_key" json:"-"           yaml:"-"`
	UseSSL          bool   `mapstructure:"use_ssl"           json:"use_ssl"     yaml:"use_ssl"`
	Bucket          string `mapstructure:"bucket"            json:"bucket"      yaml:"bucket"`
	Region          string `mapstructure:"region"            json:"region"      yaml:"region"`
}

// ArchiveConfig 把入库后的 CSV 原文件归档到对象存储.
type ArchiveConfig struct {
	Enabled bool     `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Prefix  string   `mapstructure:"prefix"  json:"prefix"  yaml:"prefix"`
	S3      S3Config `mapstructure:"s3"      json:"s3"      yaml:"s3"`
}

const (
	DefaultS3Endpoint        = "localhost:9000" // 默认S3端点
	DefaultS3AccessKeyID     = "minioadmin"     // 默认访问密钥ID
	DefaultS3SecretAccessKey = "minioadmin"     // 默认秘密访问密钥
	DefaultS3UseSSL          = false            // 默认是否使用SSL
	DefaultS3Bucket          = "csvvault"       // 默认存储桶名称
	DefaultS3Region          = "us-east-1"      // 默认区域
	DefaultArchivePrefix     = "csv/"           // 对象键前缀
)

// GetEndpointURL 获取完整的端点URL.
func (c *S3Config) GetEndpointURL() string {
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s", scheme, c.Endpoint)
}

// setDefaults 设置归档配置的默认值.
func (c *ArchiveConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.prefix", DefaultArchivePrefix)
	v.SetDefault("archive.s3.endpoint", DefaultS3Endpoint)
	v.SetDefault("archive.s3.access_key_id", DefaultS3AccessKeyID)
	v.SetDefault("archive.s3.secret_access_key", DefaultS3SecretAccessKey)
	v.SetDefault("archive.s3.use_ssl", DefaultS3UseSSL)
	v.SetDefault("archive.s3.bucket", DefaultS3Bucket)
	v.SetDefault("archive.s3.region", DefaultS3Region)
}
