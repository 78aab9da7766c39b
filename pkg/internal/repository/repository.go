// Package repository 封装 files / columns 表的持久化操作.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeisme/csvvault/pkg/internal/model"
)

var (
	// ErrNotFound 记录不存在.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate 违反唯一约束.
	ErrDuplicate = errors.New("duplicate record")
)

// 允许排序的字段.
var sortColumns = map[string]string{
	"":     "id",
	"id":   "id",
	"name": "name",
}

// FindOptions 列表查询选项，Limit<=0 表示不分页.
type FindOptions struct {
	Offset int
	Limit  int
	SortBy string
	Desc   bool
}

// FileRepository 文件元数据仓储.
type FileRepository interface {
	// Save 插入文件，若 Columns 非空一并插入.
	Save(ctx context.Context, file *model.File) error
	// SaveColumns 批量插入列.
	SaveColumns(ctx context.Context, columns []model.Column) error
	// FindByID 按 ID 查询文件并按 col_index 预加载列.
	FindByID(ctx context.Context, id uint) (*model.File, error)
	// Exists 按 ID 判断文件是否存在，不加载列.
	Exists(ctx context.Context, id uint) (bool, error)
	// FindAll 查询文件列表，不加载列.
	FindAll(ctx context.Context, opts FindOptions) ([]model.File, error)
	// Delete 删除文件及其列.
	Delete(ctx context.Context, id uint) error
	// Transaction 在同一事务中执行 fn.
	Transaction(ctx context.Context, fn func(tx FileRepository) error) error
}

type fileRepository struct {
	db *gorm.DB
}

// NewFileRepository 基于 gorm 创建仓储.
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

// IsUniqueViolation 判断是否为唯一约束冲突. 驱动未翻译错误时按消息文本匹配.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrDuplicate) {
		return true
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

func (r *fileRepository) Save(ctx context.Context, file *model.File) error {
	if err := r.db.WithContext(ctx).Create(file).Error; err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %w", ErrDuplicate, err)
		}

		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

func (r *fileRepository) SaveColumns(ctx context.Context, columns []model.Column) error {
	if len(columns) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Create(&columns).Error; err != nil {
		return fmt.Errorf("create columns: %w", err)
	}

	return nil
}

func (r *fileRepository) FindByID(ctx context.Context, id uint) (*model.File, error) {
	var file model.File

	err := r.db.WithContext(ctx).
		Preload("Columns", func(db *gorm.DB) *gorm.DB { return db.Order("col_index ASC") }).
		First(&file, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("find file %d: %w", id, err)
	}

	return &file, nil
}

func (r *fileRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64

	if err := r.db.WithContext(ctx).Model(&model.File{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check file %d: %w", id, err)
	}

	return n > 0, nil
}

func (r *fileRepository) FindAll(ctx context.Context, opts FindOptions) ([]model.File, error) {
	column, ok := sortColumns[opts.SortBy]
	if !ok {
		return nil, fmt.Errorf("unsupported sort field: %s", opts.SortBy)
	}

	q := r.db.WithContext(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: opts.Desc})
	if opts.Limit > 0 {
		q = q.Offset(opts.Offset).Limit(opts.Limit)
	}

	files := make([]model.File, 0)
	if err := q.Find(&files).Error; err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	return files, nil
}

func (r *fileRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Select(clause.Associations).Delete(&model.File{ID: id})
	if res.Error != nil {
		return fmt.Errorf("delete file %d: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *fileRepository) Transaction(ctx context.Context, fn func(tx FileRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&fileRepository{db: tx})
	})
}
