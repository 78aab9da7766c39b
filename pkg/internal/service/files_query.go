package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/yeisme/csvvault/pkg/cache"
	ctxPkg "github.com/yeisme/csvvault/pkg/context"
	"github.com/yeisme/csvvault/pkg/internal/repository"
	"github.com/yeisme/csvvault/pkg/internal/types"
	"github.com/yeisme/csvvault/pkg/queue"
	"github.com/yeisme/csvvault/pkg/tracing"
)

// ListSummaries 返回文件列表（不含列），默认按 id 升序. 空库返回空切片.
func (fs *FileService) ListSummaries(ctx context.Context, q types.ListFilesQuery) ([]types.FileSummary, error) {
	ctx, span := tracing.StartSpan(ctx, "FileService.ListSummaries")
	defer span.End()

	limit, offset := q.Limit()

	files, err := fs.repo.FindAll(ctx, repository.FindOptions{
		Offset: offset,
		Limit:  limit,
		SortBy: q.SortBy,
		Desc:   q.SortOrder == "desc",
	})
	if err != nil {
		tracing.RecordError(span, err)

		return nil, newError(ErrDatabaseOperation, "Error occurred while retrieving file list!", nil, err)
	}

	out := make([]types.FileSummary, 0, len(files))
	for i := range files {
		out = append(out, toSummary(&files[i]))
	}

	return out, nil
}

// GetDetail 返回文件详情，启用缓存时先读缓存.
// 文件元数据不可变，但可能被其它进程删除，所以命中缓存后仍按主键确认记录存在.
func (fs *FileService) GetDetail(ctx context.Context, id uint) (*types.FileDetail, error) {
	ctx, span := tracing.StartSpan(ctx, "FileService.GetDetail")
	defer span.End()

	if fs.cache == nil {
		detail, err := fs.loadDetail(ctx, id)
		tracing.RecordError(span, err)

		return detail, err
	}

	key := detailCacheKey(id)

	if detail, err := cache.Get[*types.FileDetail](ctx, fs.cache, key); err == nil && detail != nil {
		exists, err := fs.repo.Exists(ctx, id)
		if err != nil {
			tracing.RecordError(span, err)

			return nil, newError(ErrDatabaseOperation, fmt.Sprintf("Error occurred while retrieving file with ID %d!", id), nil, err)
		}

		if exists {
			return detail, nil
		}

		fs.evict(ctx, id)

		return nil, notFound(id)
	}

	detail, err := fs.loadDetail(ctx, id)
	if err != nil {
		tracing.RecordError(span, err)

		return nil, err
	}

	if err := cache.Set(ctx, fs.cache, key, detail); err != nil {
		l := ctxPkg.Logger(ctx)
		l.Warn().Err(err).Uint("file_id", id).Msg("cache file detail failed")
	}

	return detail, nil
}

func (fs *FileService) loadDetail(ctx context.Context, id uint) (*types.FileDetail, error) {
	file, err := fs.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound(id)
	}

	if err != nil {
		return nil, newError(ErrDatabaseOperation, fmt.Sprintf("Error occurred while retrieving file with ID %d!", id), nil, err)
	}

	return toDetail(file), nil
}

func detailCacheKey(id uint) string {
	return "file:" + strconv.FormatUint(uint64(id), 10)
}

func notFound(id uint) error {
	return newError(ErrFileNotFound, fmt.Sprintf("File with ID %d could not be found!", id), nil, nil)
}

// evict 删除缓存的详情，失败只记录日志.
func (fs *FileService) evict(ctx context.Context, id uint) {
	if fs.cache == nil {
		return
	}

	if err := fs.cache.Delete(ctx, detailCacheKey(id)); err != nil {
		l := ctxPkg.Logger(ctx)
		l.Warn().Err(err).Uint("file_id", id).Msg("evict cached detail failed")
	}
}

// EvictOnDelete 返回订阅 csv.file.deleted 的处理函数，收到事件后删除本进程缓存的详情.
func (fs *FileService) EvictOnDelete(l zerolog.Logger) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		env, err := queue.ParseFileDeleted(msg)
		if err != nil {
			l.Error().Err(err).Str("event_id", msg.UUID).Msg("drop malformed deleted event")

			return nil
		}

		fs.evict(msg.Context(), env.Payload.FileID)
		l.Debug().Uint("file_id", env.Payload.FileID).Msg("cached detail evicted")

		return nil
	}
}
