// Package configs 管理应用程序配置，包括服务器、上传目录、数据库、日志、缓存、事件与归档的配置信息.
// configs 包支持多种配置格式（YAML、JSON、TOML、dotenv）以及 CSVVAULT_ 前缀的环境变量，并可启用热重载.
//
// Example:
//
//	err := configs.InitConfig("./")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	config := configs.GetConfig()
//	fmt.Println(config.Server.Port, config.Upload.Dir)
//
// Example accessing DB config:
//
//	dbConfig := configs.GetConfig().DB
//	fmt.Println("DSN:", dbConfig.GetDSN())
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/yeisme/csvvault/pkg/rule"
)

const (
	// AppName 应用名称，同时作为环境变量前缀（大写）.
	AppName = "csvvault"
	// AppVersion 应用版本.
	AppVersion = "1.0.0"
	// EnvPrefix 环境变量前缀.
	EnvPrefix = "CSVVAULT"
)

type (
	// AppConfig 全局应用程序配置.
	AppConfig struct {
		Server         ServerConfig         `mapstructure:"server"          json:"server"          yaml:"server"`
		Upload         UploadConfig         `mapstructure:"upload"          json:"upload"          yaml:"upload"`
		DB             DBConfig             `mapstructure:"db"              json:"db"              yaml:"db"`
		Log            LogConfig            `mapstructure:"log"             json:"log"             yaml:"log"`
		Metrics        MetricsConfig        `mapstructure:"metrics"         json:"metrics"         yaml:"metrics"`
		Tracing        TracingConfig        `mapstructure:"tracing"         json:"tracing"         yaml:"tracing"`
		RateLimit      RateLimitConfig      `mapstructure:"rate_limit"      json:"rate_limit"      yaml:"rate_limit"`
		CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker" json:"circuit_breaker" yaml:"circuit_breaker"`
		Cache          CacheConfig          `mapstructure:"cache"           json:"cache"           yaml:"cache"`
		Events         EventsConfig         `mapstructure:"events"          json:"events"          yaml:"events"`
		Archive        ArchiveConfig        `mapstructure:"archive"         json:"archive"         yaml:"archive"`
	}
)

var (
	// globalConfig 全局配置实例.
	globalConfig AppConfig
	// appViper 全局 Viper 实例.
	appViper *viper.Viper
	// mu 保护热重载时的并发读写.
	mu sync.RWMutex
)

// InitConfig 加载应用程序配置. path 可以是配置文件，也可以是包含 config.* 的目录.
// 找不到配置文件时使用默认值与环境变量.
func InitConfig(path string) error {
	// .env 只用于本地开发，不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setAllDefaults(v)

	if path == "" {
		path = "."
	}

	// 检查path是否是文件
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(path)
		v.AddConfigPath(filepath.Join(path, "configs"))

		for _, ext := range []string{"yaml", "yml", "json", "toml", "env"} {
			cfg := filepath.Join(path, "config."+ext)
			if _, err := os.Stat(cfg); err == nil {
				v.SetConfigFile(cfg)

				break
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := load(v)
	if err != nil {
		return err
	}

	mu.Lock()
	appViper = v
	globalConfig = *cfg
	mu.Unlock()

	reloadConfigs(v, cfg.Server.ReloadConfig)

	return nil
}

// load 解析并校验配置.
func load(v *viper.Viper) (*AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.normalize()

	if err := rule.ValidateStruct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// normalize 处理派生字段.
func (c *AppConfig) normalize() {
	if c.Server.IsDevelopment() {
		c.Server.Debug = true
	}

	c.Upload.normalize()
}

// setAllDefaults 设置所有配置的默认值.
func setAllDefaults(v *viper.Viper) {
	var (
		serverConfig   ServerConfig
		uploadConfig   UploadConfig
		dbConfig       DBConfig
		logConfig      LogConfig
		metricsConfig  MetricsConfig
		tracingConfig  TracingConfig
		rateLimit      RateLimitConfig
		circuitBreaker CircuitBreakerConfig
		cacheConfig    CacheConfig
		eventsConfig   EventsConfig
		archiveConfig  ArchiveConfig
	)

	serverConfig.setDefaults(v)
	uploadConfig.setDefaults(v)
	dbConfig.setDefaults(v)
	logConfig.setDefaults(v)
	metricsConfig.setDefaults(v)
	tracingConfig.setDefaults(v)
	rateLimit.setDefaults(v)
	circuitBreaker.setDefaults(v)
	cacheConfig.setDefaults(v)
	eventsConfig.setDefaults(v)
	archiveConfig.setDefaults(v)
}

func reloadConfigs(v *viper.Viper, isHotReload bool) {
	if !isHotReload {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("Config file changed:", e.Name)

		cfg, err := load(v)
		if err != nil {
			fmt.Printf("Error reloading config: %v\n", err)

			return
		}

		mu.Lock()
		globalConfig = *cfg
		mu.Unlock()
	})
	v.WatchConfig()
}

// GetConfig 返回全局配置实例.
func GetConfig() *AppConfig {
	mu.RLock()
	defer mu.RUnlock()

	return &globalConfig
}

// GetViper 返回全局 Viper 实例，未初始化时为 nil.
func GetViper() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()

	return appViper
}

// Default 返回只包含默认值的配置，主要用于测试与命令行工具.
func Default() *AppConfig {
	v := viper.New()
	setAllDefaults(v)

	var cfg AppConfig
	_ = v.Unmarshal(&cfg)
	cfg.normalize()

	return &cfg
}
