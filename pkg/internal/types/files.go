// Package types 定义 HTTP 层的请求与响应结构.
package types

import "time"

// FileSummary 文件列表项.
type FileSummary struct {
	ID   uint   `json:"id"   example:"1"`
	Name string `json:"name" example:"people.csv"`
}

// ColumnInfo 文件中的一列.
type ColumnInfo struct {
	ID    uint   `json:"id"       example:"1"`
	Index int    `json:"col_index" example:"0"`
	Name  string `json:"col_name" example:"age"`
	Type  string `json:"col_type" example:"number" enums:"text,number,datetime"`
}

// FileDetail 文件详情，列按 col_index 排序.
type FileDetail struct {
	ID        uint         `json:"id"         example:"1"`
	Name      string       `json:"name"       example:"people.csv"`
	Path      string       `json:"path"       example:"/srv/csvvault/uploads/people.csv"`
	Size      int64        `json:"size"       example:"1024"`
	Checksum  string       `json:"checksum"   example:"9f86d081884c7d65"`
	CreatedAt time.Time    `json:"created_at"`
	Columns   []ColumnInfo `json:"columns"`
}

// ListFilesQuery 文件列表查询参数，全部为空时返回所有文件.
type ListFilesQuery struct {
	Page      int    `form:"page"       rule:"omitempty,min=1"`
	PerPage   int    `form:"per_page"   rule:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by"    rule:"omitempty,oneof=id name"`
	SortOrder string `form:"sort_order" rule:"omitempty,oneof=asc desc"`
}

// DefaultPerPage 指定 page 但未指定 per_page 时的每页数量.
const DefaultPerPage = 10

// Paged 是否请求了分页.
func (q ListFilesQuery) Paged() bool {
	return q.Page > 0 || q.PerPage > 0
}

// Limit 返回分页大小与偏移量.
func (q ListFilesQuery) Limit() (limit, offset int) {
	if !q.Paged() {
		return 0, 0
	}

	page, perPage := q.Page, q.PerPage
	if page <= 0 {
		page = 1
	}

	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	return perPage, (page - 1) * perPage
}

// ErrorResponse 统一错误响应.
type ErrorResponse struct {
	Message string `json:"message" example:"file already exists"`
	Data    any    `json:"data"`
}

// HealthResponse 组件健康状态.
type HealthResponse struct {
	Component string `json:"component"       example:"db"`
	Status    string `json:"status"          example:"ok"`
	Error     string `json:"error,omitempty"`
}

// HealthReport 汇总健康状态.
type HealthReport struct {
	Status     string           `json:"status" example:"ok"`
	Version    string           `json:"version" example:"1.0.0"`
	Components []HealthResponse `json:"components"`
}
