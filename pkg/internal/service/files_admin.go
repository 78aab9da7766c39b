package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ctxPkg "github.com/yeisme/csvvault/pkg/context"
	"github.com/yeisme/csvvault/pkg/internal/model"
	"github.com/yeisme/csvvault/pkg/internal/repository"
	"github.com/yeisme/csvvault/pkg/metrics"
)

// Delete 删除文件记录、列与磁盘文件. 仅由命令行调用.
func (fs *FileService) Delete(ctx context.Context, id uint) error {
	var file *model.File

	err := fs.repo.Transaction(ctx, func(tx repository.FileRepository) error {
		f, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}

		file = f

		return tx.Delete(ctx, id)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(id)
	}

	if err != nil {
		return newError(ErrDatabaseOperation, fmt.Sprintf("Error occurred while deleting file with ID %d!", id), nil, err)
	}

	l := ctxPkg.Logger(ctx)

	fs.evict(ctx, id)

	if err := os.Remove(file.Path); err != nil && !os.IsNotExist(err) {
		return newError(ErrFilesystem, "Could not remove file from disk", map[string]any{"path": file.Path}, err)
	}

	l.Info().Uint("file_id", id).Str("path", file.Path).Msg("file deleted")
	fs.publishDeleted(ctx, file)

	return nil
}

// SweepTemp 删除上传目录中早于 olderThan 的临时文件，返回删除数量.
func (fs *FileService) SweepTemp(ctx context.Context, olderThan time.Duration) (int, error) {
	dir, err := fs.uploadDir()
	if err != nil {
		return 0, newError(ErrFilesystem, "Could not resolve upload directory", nil, err)
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}

	if err != nil {
		return 0, newError(ErrFilesystem, "Could not read upload directory", nil, err)
	}

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	l := ctxPkg.Logger(ctx)

	for _, e := range entries {
		if ctx.Err() != nil {
			break
		}

		if e.IsDir() || !strings.HasPrefix(e.Name(), TempPrefix) {
			continue
		}

		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		if err := os.Remove(path); err != nil {
			l.Warn().Err(err).Str("path", path).Msg("remove stale temp file failed")
			continue
		}

		removed++
	}

	if removed > 0 {
		metrics.TempFilesSwept.Add(float64(removed))
		l.Info().Int("removed", removed).Str("dir", dir).Msg("stale upload temp files removed")
	}

	return removed, nil
}
