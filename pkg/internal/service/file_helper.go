package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/yeisme/csvvault/pkg/internal/model"
	"github.com/yeisme/csvvault/pkg/internal/types"
	"github.com/yeisme/csvvault/pkg/queue"
)

// TempPattern 上传临时文件名模式，清理任务按前缀匹配.
const (
	TempPrefix  = ".upload-"
	TempPattern = TempPrefix + "*"

	// StoredFileMode 入库文件的权限，CreateTemp 默认 0600.
	StoredFileMode os.FileMode = 0o644
)

// FileExtension 返回最后一个 "." 之后的小写扩展名，没有 "." 时返回空串.
func FileExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}

	return strings.ToLower(name[idx+1:])
}

// SanitizeFilename 转为文件系统安全的文件名：去掉目录部分，[A-Za-z0-9._-] 以外的字符替换为 "_"，
// 合并连续的 "_"，并去掉首尾的 "." 与 "_". 结果可能为空.
func SanitizeFilename(name string) string {
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}

	var b strings.Builder

	lastUnderscore := false

	for _, r := range name {
		ok := r == '.' || r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			r = '_'
		}

		if r == '_' {
			if lastUnderscore {
				continue
			}

			lastUnderscore = true
		} else {
			lastUnderscore = false
		}

		b.WriteRune(r)
	}

	return strings.Trim(b.String(), "._")
}

// writeTemp 把 r 写入 dir 下的临时文件，同时计算大小与 xxhash64.
func writeTemp(dir string, r io.Reader) (path string, size int64, checksum string, err error) {
	f, err := os.CreateTemp(dir, TempPattern)
	if err != nil {
		return "", 0, "", fmt.Errorf("create temp file: %w", err)
	}

	path = f.Name()

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close temp file: %w", cerr)
		}

		if err != nil {
			_ = os.Remove(path)
		}
	}()

	hasher := xxhash.New()

	size, err = io.Copy(f, io.TeeReader(r, hasher))
	if err != nil {
		return "", 0, "", fmt.Errorf("write temp file: %w", err)
	}

	if err = f.Sync(); err != nil {
		return "", 0, "", fmt.Errorf("sync temp file: %w", err)
	}

	if err = f.Chmod(StoredFileMode); err != nil {
		return "", 0, "", fmt.Errorf("chmod temp file: %w", err)
	}

	return path, size, fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// uploadDir 返回上传目录的绝对路径.
func (fs *FileService) uploadDir() (string, error) {
	return filepath.Abs(fs.upload.Dir)
}

// toSummary 列表项.
func toSummary(f *model.File) types.FileSummary {
	return types.FileSummary{ID: f.ID, Name: f.Name}
}

// toDetail 文件详情.
func toDetail(f *model.File) *types.FileDetail {
	columns := make([]types.ColumnInfo, 0, len(f.Columns))
	for _, c := range f.Columns {
		columns = append(columns, types.ColumnInfo{
			ID:    c.ID,
			Index: c.Index,
			Name:  c.Name,
			Type:  string(c.Type),
		})
	}

	return &types.FileDetail{
		ID:        f.ID,
		Name:      f.Name,
		Path:      f.Path,
		Size:      f.Size,
		Checksum:  f.Checksum,
		CreatedAt: f.CreatedAt,
		Columns:   columns,
	}
}

// toColumnRefs 事件中的列描述.
func toColumnRefs(columns []model.Column) []queue.ColumnRef {
	refs := make([]queue.ColumnRef, 0, len(columns))
	for _, c := range columns {
		refs = append(refs, queue.ColumnRef{Index: c.Index, Name: c.Name, Type: string(c.Type)})
	}

	return refs
}

func columnTypes(columns []model.Column) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		t := c.Type
		if t == "" {
			t = model.ColumnTypeText
		}

		out = append(out, string(t))
	}

	return out
}
