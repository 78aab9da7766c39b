package handle

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/csvvault/pkg/internal/service"
	"github.com/yeisme/csvvault/pkg/internal/types"
	"github.com/yeisme/csvvault/pkg/rule"
)

// FileField 上传表单中的文件字段名.
const FileField = "file"

// FileHandlers 文件接口处理器，持有文件服务.
type FileHandlers struct {
	svc   *service.FileService
	debug bool
}

// NewFileHandlers 创建文件处理器. debug 为 true 时错误响应附带底层原因.
func NewFileHandlers(svc *service.FileService, debug bool) *FileHandlers {
	return &FileHandlers{svc: svc, debug: debug}
}

// List 返回文件列表.
//
//	@Summary		文件列表
//	@Description	返回所有已上传文件的 id 与名称；指定 page 或 per_page 时分页
//	@Tags			文件
//	@Produce		json
//	@Param			page		query		int						false	"页码，从 1 开始"
//	@Param			per_page	query		int						false	"每页数量，默认 10，最大 100"
//	@Param			sort_by		query		string					false	"排序字段"	Enums(id, name)
//	@Param			sort_order	query		string					false	"排序方向"	Enums(asc, desc)
//	@Success		200			{array}		types.FileSummary		"文件列表"
//	@Failure		400			{object}	types.ErrorResponse		"查询参数错误"
//	@Failure		500			{object}	types.ErrorResponse		"数据库错误"
//	@Router			/files [get]
func (h *FileHandlers) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		var q types.ListFilesQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			writeBadRequest(c, "Invalid query parameters", err.Error())
			return
		}

		if err := rule.ValidateStruct(q); err != nil {
			writeBadRequest(c, "Invalid query parameters", rule.Errors(err))
			return
		}

		files, err := h.svc.ListSummaries(c.Request.Context(), q)
		if err != nil {
			writeError(c, err, h.debug)
			return
		}

		c.JSON(http.StatusOK, files)
	}
}

// Upload 上传 CSV 文件并推断列类型.
//
//	@Summary		上传 CSV
//	@Description	以 multipart/form-data 上传单个 CSV 文件，保存后返回文件详情与推断出的列
//	@Tags			文件
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file				true	"CSV 文件"
//	@Success		201		{object}	types.FileDetail	"文件详情"
//	@Failure		400		{object}	types.ErrorResponse	"缺少文件、扩展名不允许或文件已存在"
//	@Failure		413		{object}	types.ErrorResponse	"请求体过大"
//	@Failure		500		{object}	types.ErrorResponse	"服务器内部错误"
//	@Router			/files [post]
func (h *FileHandlers) Upload() gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile(FileField)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				writeError(c, &service.Error{
					Kind:    service.ErrFilesystem,
					Message: "File too large",
					Data:    map[string]any{"max_size": maxErr.Limit},
					Err:     err,
				}, h.debug)

				return
			}

			writeBadRequest(c, "No file part in the request", map[string]any{"field": FileField})

			return
		}

		if fh.Filename == "" {
			writeBadRequest(c, "No selected file", map[string]any{"field": FileField})
			return
		}

		f, err := fh.Open()
		if err != nil {
			writeError(c, &service.Error{Kind: service.ErrFilesystem, Message: "Could not read uploaded file", Err: err}, h.debug)
			return
		}
		defer f.Close()

		detail, err := h.svc.Ingest(c.Request.Context(), f, fh.Filename)
		if err != nil {
			writeError(c, err, h.debug)
			return
		}

		c.Header("Location", fmt.Sprintf("%s/%d", c.FullPath(), detail.ID))
		c.JSON(http.StatusCreated, detail)
	}
}

// Get 返回单个文件详情.
//
//	@Summary		文件详情
//	@Description	返回文件元数据与按 col_index 排序的列
//	@Tags			文件
//	@Produce		json
//	@Param			id	path		int					true	"文件 ID"
//	@Success		200	{object}	types.FileDetail	"文件详情"
//	@Failure		404	{object}	types.ErrorResponse	"文件不存在"
//	@Failure		500	{object}	types.ErrorResponse	"数据库错误"
//	@Router			/files/{id} [get]
func (h *FileHandlers) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param("id")

		// 非数字 ID 与不存在的 ID 一样返回 404
		id, err := strconv.ParseUint(raw, 10, 0)
		if err != nil || id == 0 {
			writeError(c, &service.Error{
				Kind:    service.ErrFileNotFound,
				Message: fmt.Sprintf("File with ID %s could not be found!", raw),
			}, h.debug)

			return
		}

		detail, err := h.svc.GetDetail(c.Request.Context(), uint(id))
		if err != nil {
			writeError(c, err, h.debug)
			return
		}

		c.JSON(http.StatusOK, detail)
	}
}
