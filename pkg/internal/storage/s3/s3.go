// Package s3 封装 MinIO 客户端，用于把入库的 CSV 原文件归档到对象存储.
package s3

import (
	"context"
	"fmt"
	"net/url"
	"path"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"github.com/yeisme/csvvault/pkg/configs"
)

// ContentTypeCSV 归档对象的 Content-Type.
const ContentTypeCSV = "text/csv"

// Client 包装 MinIO 客户端.
type Client struct {
	*minio.Client
	bucket string
	region string
}

// New 初始化 MinIO 客户端，若 bucket 不存在则创建.
func New(ctx context.Context, cfg configs.S3Config) (*Client, error) {
	endpoint := cfg.Endpoint
	// 允许传入带 scheme 的 endpoint
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			cfg.UseSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo(configs.AppName, configs.AppVersion)

	c := &Client{Client: cli, bucket: cfg.Bucket, region: cfg.Region}
	if err := c.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	log.Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.Bucket).Msg("s3 connected")

	return c, nil
}

// EnsureBucket 检查并创建归档 bucket.
func (c *Client) EnsureBucket(ctx context.Context) error {
	if c.bucket == "" {
		return fmt.Errorf("s3 bucket not configured")
	}

	exists, err := c.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", c.bucket, err)
	}

	if exists {
		return nil
	}

	if err := c.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{Region: c.region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", c.bucket, err)
	}

	log.Info().Str("bucket", c.bucket).Msg("bucket created")

	return nil
}

// Bucket 返回归档 bucket 名称.
func (c *Client) Bucket() string {
	return c.bucket
}

// ObjectKey 由前缀、文件 ID 和文件名拼出对象键.
func ObjectKey(prefix string, fileID uint, name string) string {
	return path.Join(prefix, fmt.Sprintf("%d", fileID), name)
}

// Archive 上传本地文件到归档 bucket.
func (c *Client) Archive(ctx context.Context, key, filePath string, meta map[string]string) (minio.UploadInfo, error) {
	info, err := c.FPutObject(ctx, c.bucket, key, filePath, minio.PutObjectOptions{
		ContentType:  ContentTypeCSV,
		UserMetadata: meta,
	})
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("archive %s: %w", key, err)
	}

	return info, nil
}

// Remove 删除归档对象.
func (c *Client) Remove(ctx context.Context, key string) error {
	return c.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
}

// HealthCheck 通过检查 bucket 验证连接.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.BucketExists(ctx, c.bucket)
	return err
}

// Close 接口兼容，MinIO 客户端无需关闭.
func (c *Client) Close() error {
	return nil
}
