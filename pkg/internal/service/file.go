// Package service 实现 CSV 入库与查询业务逻辑，不处理 HTTP 细节.
package service

import (
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/yeisme/csvvault/pkg/cache"
	"github.com/yeisme/csvvault/pkg/configs"
	"github.com/yeisme/csvvault/pkg/internal/repository"
	"github.com/yeisme/csvvault/pkg/internal/storage"
)

// FileService 负责文件入库与查询.
type FileService struct {
	repo      repository.FileRepository
	upload    configs.UploadConfig
	cache     *cache.Cache
	publisher message.Publisher
	producer  string
}

// Option FileService 可选项.
type Option func(*FileService)

// WithCache 为 GetDetail 启用读穿缓存.
func WithCache(c *cache.Cache) Option {
	return func(fs *FileService) { fs.cache = c }
}

// WithPublisher 入库成功后发布事件.
func WithPublisher(p message.Publisher, producer string) Option {
	return func(fs *FileService) {
		fs.publisher = p
		fs.producer = producer
	}
}

// NewFileService 创建文件服务.
func NewFileService(repo repository.FileRepository, upload configs.UploadConfig, opts ...Option) *FileService {
	fs := &FileService{repo: repo, upload: upload}
	for _, opt := range opts {
		opt(fs)
	}

	return fs
}

// NewFileServiceFromManager 按配置组装仓储、缓存与事件发布.
func NewFileServiceFromManager(mgr *storage.Manager, cfg *configs.AppConfig) *FileService {
	opts := []Option{}

	if mgr.KV != nil {
		opts = append(opts, WithCache(cache.New(mgr.KV, cfg.Cache.Prefix, cfg.Cache.TTL)))
	}

	if mgr.MQ != nil {
		opts = append(opts, WithPublisher(mgr.MQ.Publisher(), cfg.Events.Producer))
	}

	return NewFileService(repository.NewFileRepository(mgr.DB.DB), cfg.Upload, opts...)
}

// Repository 返回底层仓储.
func (fs *FileService) Repository() repository.FileRepository {
	return fs.repo
}
