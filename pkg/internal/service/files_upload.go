package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/attribute"

	ctxPkg "github.com/yeisme/csvvault/pkg/context"
	"github.com/yeisme/csvvault/pkg/internal/columns"
	"github.com/yeisme/csvvault/pkg/internal/model"
	"github.com/yeisme/csvvault/pkg/internal/repository"
	"github.com/yeisme/csvvault/pkg/internal/types"
	"github.com/yeisme/csvvault/pkg/metrics"
	"github.com/yeisme/csvvault/pkg/tracing"
)

// Ingest 保存上传的 CSV，在同一事务中写入文件记录与推断出的列，返回文件详情.
//
// 内容先写入上传目录下的临时文件，事务提交前才重命名为最终路径，
// 因此被拒绝的重复上传不会覆盖已有文件. 列解析失败不影响入库.
func (fs *FileService) Ingest(ctx context.Context, r io.Reader, originalFilename string) (detail *types.FileDetail, err error) {
	ctx, span := tracing.StartSpan(ctx, "FileService.Ingest")
	defer span.End()

	start := time.Now()
	l := ctxPkg.Logger(ctx).With().Str("filename", originalFilename).Logger()

	var (
		file model.File
		cols []model.Column
	)

	defer func() {
		tracing.RecordError(span, err)
		metrics.ObserveIngest(ingestResult(err), time.Since(start), file.Size, columnTypes(cols))
	}()

	ext := FileExtension(originalFilename)
	if !fs.upload.IsAllowed(ext) {
		l.Warn().Str("extension", ext).Msg("rejected upload with invalid extension")

		return nil, newError(ErrInvalidFileType, "Invalid file type", map[string]any{
			"filename":           originalFilename,
			"allowed_extensions": fs.upload.AllowedExtensions,
		}, nil)
	}

	name := SanitizeFilename(originalFilename)
	if name == "" || !fs.upload.IsAllowed(FileExtension(name)) {
		return nil, newError(ErrInvalidFileType, "Invalid file name", map[string]any{"filename": originalFilename}, nil)
	}

	span.SetAttributes(attribute.String("csv.name", name))

	dir, err := fs.uploadDir()
	if err != nil {
		return nil, newError(ErrFilesystem, "Could not resolve upload directory", nil, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, newError(ErrFilesystem, "Could not create upload directory", nil, err)
	}

	tmpPath, size, checksum, err := writeTemp(dir, r)
	if err != nil {
		return nil, newError(ErrFilesystem, "Could not save uploaded file", nil, err)
	}
	// 重命名成功后临时文件已不存在，Remove 返回的错误可忽略
	defer func() { _ = os.Remove(tmpPath) }()

	file = model.File{Name: name, Path: filepath.Join(dir, name), Size: size, Checksum: checksum}
	renamed := false

	txErr := fs.repo.Transaction(ctx, func(tx repository.FileRepository) error {
		if err := tx.Save(ctx, &file); err != nil {
			return err
		}

		cols = columns.Extract(tmpPath, file.ID)
		if err := tx.SaveColumns(ctx, cols); err != nil {
			return err
		}

		if err := os.Rename(tmpPath, file.Path); err != nil {
			return newError(ErrFilesystem, "Could not save uploaded file", nil, err)
		}

		renamed = true

		return nil
	})
	if txErr != nil {
		if renamed {
			_ = os.Remove(file.Path)
		}

		return nil, fs.ingestError(txErr, name)
	}

	file.Columns = cols

	l.Info().
		Uint("file_id", file.ID).
		Str("name", file.Name).
		Int64("size", file.Size).
		Int("columns", len(cols)).
		Msg("file ingested")

	fs.publishIngested(ctx, &file)

	return toDetail(&file), nil
}

// ingestError 把事务错误归类.
func (fs *FileService) ingestError(err error, name string) error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}

	if repository.IsUniqueViolation(err) {
		return newError(ErrDuplicateFile, "File already exists", map[string]any{"name": name}, err)
	}

	return newError(ErrDatabaseOperation, fmt.Sprintf("Error occurred while saving file %s!", name), nil, err)
}

func ingestResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, ErrInvalidFileType):
		return metrics.ResultInvalid
	case errors.Is(err, ErrDuplicateFile):
		return metrics.ResultDuplicate
	default:
		return metrics.ResultError
	}
}
