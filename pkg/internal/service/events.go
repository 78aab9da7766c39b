package service

import (
	"context"
	"errors"
	"os"
	"strconv"

	"github.com/ThreeDotsLabs/watermill/message"
	minio "github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	ctxPkg "github.com/yeisme/csvvault/pkg/context"
	"github.com/yeisme/csvvault/pkg/internal/model"
	"github.com/yeisme/csvvault/pkg/internal/storage/s3"
	"github.com/yeisme/csvvault/pkg/queue"
)

// headerOpts 事件头可选项：生产者与追踪 ID.
func (fs *FileService) headerOpts(ctx context.Context) []func(*queue.EventHeader) {
	opts := []func(*queue.EventHeader){queue.WithProducer(fs.producer)}

	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		opts = append(opts, queue.WithTraceID(sc.TraceID().String()))
	} else if id := ctxPkg.RequestID(ctx); id != "" {
		opts = append(opts, queue.WithTraceID(id))
	}

	return opts
}

// publishIngested 尽力发布入库事件，失败只记录日志.
func (fs *FileService) publishIngested(ctx context.Context, file *model.File) {
	if fs.publisher == nil {
		return
	}

	payload := queue.FileIngestedPayload{
		FileID:   file.ID,
		Name:     file.Name,
		Path:     file.Path,
		Size:     file.Size,
		Checksum: file.Checksum,
		Columns:  toColumnRefs(file.Columns),
	}

	if err := queue.PublishFileIngested(fs.publisher, payload, fs.headerOpts(ctx)...); err != nil {
		l := ctxPkg.Logger(ctx)
		l.Error().Err(err).Uint("file_id", file.ID).Msg("publish file ingested event failed")
	}
}

// publishDeleted 尽力发布删除事件.
func (fs *FileService) publishDeleted(ctx context.Context, file *model.File) {
	if fs.publisher == nil {
		return
	}

	payload := queue.FileDeletedPayload{FileID: file.ID, Name: file.Name, Path: file.Path}
	if err := queue.PublishFileDeleted(fs.publisher, payload, fs.headerOpts(ctx)...); err != nil {
		l := ctxPkg.Logger(ctx)
		l.Error().Err(err).Uint("file_id", file.ID).Msg("publish file deleted event failed")
	}
}

// EventLogger 返回把事件写入日志的处理函数.
func EventLogger(l zerolog.Logger) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		l.Info().
			Str("event_id", msg.UUID).
			Str("topic", msg.Metadata.Get("topic")).
			Str("producer", msg.Metadata.Get("producer")).
			Str("trace_id", msg.Metadata.Get("trace_id")).
			RawJSON("envelope", msg.Payload).
			Msg("event received")

		return nil
	}
}

// ObjectArchiver 把本地文件上传到对象存储，*s3.Client 实现该接口.
type ObjectArchiver interface {
	Archive(ctx context.Context, key, filePath string, meta map[string]string) (minio.UploadInfo, error)
	Bucket() string
}

// Archiver 订阅入库事件，把原文件上传到对象存储.
// 归档是尽力而为：失败只记录日志并确认消息，不会重投.
type Archiver struct {
	client    ObjectArchiver
	prefix    string
	publisher message.Publisher
	producer  string
	logger    zerolog.Logger
}

// NewArchiver 创建归档处理器，publisher 可为 nil.
func NewArchiver(client ObjectArchiver, prefix string, publisher message.Publisher, producer string, l zerolog.Logger) *Archiver {
	return &Archiver{client: client, prefix: prefix, publisher: publisher, producer: producer, logger: l}
}

// Handle 处理 csv.file.ingested 事件，总是确认消息.
func (a *Archiver) Handle(msg *message.Message) error {
	env, err := queue.ParseFileIngested(msg)
	if err != nil {
		// 无法解析的消息重投也无意义
		a.logger.Error().Err(err).Str("event_id", msg.UUID).Msg("drop malformed ingested event")

		return nil
	}

	p := env.Payload
	key := s3.ObjectKey(a.prefix, p.FileID, p.Name)

	info, err := a.client.Archive(msg.Context(), key, p.Path, map[string]string{
		"file-id":  strconv.FormatUint(uint64(p.FileID), 10),
		"checksum": p.Checksum,
	})
	switch {
	case errors.Is(err, os.ErrNotExist):
		a.logger.Warn().Err(err).Uint("file_id", p.FileID).Str("path", p.Path).Msg("source file gone, skip archive")

		return nil
	case err != nil:
		a.logger.Error().Err(err).Uint("file_id", p.FileID).Str("key", key).Msg("archive failed, event dropped")

		return nil
	}

	a.logger.Info().Uint("file_id", p.FileID).Str("key", key).Int64("size", info.Size).Msg("file archived")

	if a.publisher == nil {
		return nil
	}

	err = queue.PublishFileArchived(a.publisher, queue.FileArchivedPayload{
		FileID:    p.FileID,
		Bucket:    a.client.Bucket(),
		ObjectKey: key,
		ETag:      info.ETag,
		Size:      info.Size,
	}, queue.WithProducer(a.producer), queue.WithTraceID(env.Header.TraceID))
	if err != nil {
		a.logger.Error().Err(err).Uint("file_id", p.FileID).Msg("publish file archived event failed")
	}

	return nil
}
