// Package storage 聚合数据库、缓存、消息队列与对象存储客户端.
//
//	mgr, err := storage.Init(ctx, cfg, &logger)
//	if err != nil {
//	    // 处理错误
//	}
//	defer mgr.Close()
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/yeisme/csvvault/pkg/configs"
	dbc "github.com/yeisme/csvvault/pkg/internal/storage/db"
	kvc "github.com/yeisme/csvvault/pkg/internal/storage/kv"
	mqc "github.com/yeisme/csvvault/pkg/internal/storage/mq"
	s3c "github.com/yeisme/csvvault/pkg/internal/storage/s3"
)

// Manager 聚合所有存储资源. KV、MQ、S3 按配置可为 nil.
type Manager struct {
	DB *dbc.Client
	KV *kvc.Client
	MQ *mqc.Client
	S3 *s3c.Client
}

// Init 按配置初始化存储资源，任一必需组件失败时关闭已打开的资源.
func Init(ctx context.Context, cfg *configs.AppConfig, logger *zerolog.Logger) (*Manager, error) {
	m := &Manager{}

	dbi, err := dbc.New(ctx, &cfg.DB)
	if err != nil {
		return nil, err
	}

	m.DB = dbi

	if cfg.Metrics.Enabled && cfg.Metrics.DBMetrics {
		if err := dbi.RegisterGORMMetrics(cfg.DB.Database); err != nil {
			logger.Warn().Err(err).Msg("register gorm metrics failed")
		}
	}

	if err := dbi.Migrate(ctx); err != nil {
		_ = m.Close()
		return nil, err
	}

	if cfg.Cache.Enabled {
		kvi, err := kvc.New(ctx, &cfg.Cache)
		if err != nil {
			_ = m.Close()
			return nil, fmt.Errorf("init cache (%s): %w", cfg.Cache.Type, err)
		}

		m.KV = kvi
	}

	if cfg.Events.Enabled {
		opts := mqc.Options{Logger: logger}
		if cfg.Metrics.Enabled {
			opts.Registry = prometheus.DefaultRegisterer
			opts.Metrics = cfg.Metrics.Namespace
		}

		mqi, err := mqc.New(ctx, cfg.Events, opts)
		if err != nil {
			_ = m.Close()
			return nil, err
		}

		m.MQ = mqi
	}

	if cfg.Archive.Enabled {
		s3i, err := s3c.New(ctx, cfg.Archive.S3)
		if err != nil {
			_ = m.Close()
			return nil, err
		}

		m.S3 = s3i
	}

	logger.Info().
		Str("db", string(cfg.DB.Type)).
		Bool("cache", m.KV != nil).
		Bool("events", m.MQ != nil).
		Bool("archive", m.S3 != nil).
		Msg("storage manager initialized")

	return m, nil
}

// Close 关闭所有已打开的资源.
func (m *Manager) Close() error {
	var errs []error

	if m.MQ != nil {
		errs = append(errs, m.MQ.Close())
	}

	if m.KV != nil {
		errs = append(errs, m.KV.Close())
	}

	if m.S3 != nil {
		errs = append(errs, m.S3.Close())
	}

	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}

	return errors.Join(errs...)
}
