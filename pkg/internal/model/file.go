// Package model 定义持久化到数据库的 gorm 模型.
package model

import (
	"time"
)

// ColumnType 列的推断类型.
type ColumnType string

const (
	ColumnTypeText     ColumnType = "text"
	ColumnTypeNumber   ColumnType = "number"
	ColumnTypeDatetime ColumnType = "datetime"
)

// Valid 是否为受支持的列类型.
func (t ColumnType) Valid() bool {
	switch t {
	case ColumnTypeText, ColumnTypeNumber, ColumnTypeDatetime:
		return true
	default:
		return false
	}
}

// File 上传的 CSV 文件. Name 与 Path 全局唯一，写入后不再修改.
type File struct {
	ID       uint   `gorm:"primaryKey"                               json:"id"`
	Name     string `gorm:"size:255;not null;uniqueIndex:idx_files_name" json:"name"`
	Path     string `gorm:"size:1024;not null;uniqueIndex:idx_files_path" json:"path"`
	Size     int64  `gorm:"not null;default:0"                       json:"size"`
	Checksum string `gorm:"size:16"                                  json:"checksum"`
	// 列按 col_index 排序，随文件一起删除
	Columns   []Column  `gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE" json:"columns"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 表名.
func (File) TableName() string { return "files" }

// Column 文件表头中的一列.
type Column struct {
	ID     uint       `gorm:"primaryKey"                                                         json:"id"`
	Index  int        `gorm:"column:col_index;not null"                                          json:"col_index"`
	Name   string     `gorm:"column:col_name;size:255;not null"                                  json:"col_name"`
	Type   ColumnType `gorm:"column:col_type;size:16;not null;default:'text';check:chk_columns_col_type,col_type IN ('text','number','datetime')" json:"col_type"`
	FileID uint       `gorm:"not null;index"                                                     json:"file_id"`
}

// TableName 表名.
func (Column) TableName() string { return "columns" }

// All 返回需要迁移的全部模型.
func All() []any {
	return []any{&File{}, &Column{}}
}
