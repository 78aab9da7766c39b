// Package handle 提供 HTTP 请求处理器的实现.
package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/csvvault/pkg/context"
	"github.com/yeisme/csvvault/pkg/internal/service"
	"github.com/yeisme/csvvault/pkg/internal/types"
)

// DefaultHandler 未注入处理器时的占位实现.
func DefaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, types.ErrorResponse{Message: "Not Implemented"})
}

// statusOf 服务错误类别到 HTTP 状态码的映射.
func statusOf(err error) int {
	var maxErr *http.MaxBytesError

	switch {
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrInvalidFileType), errors.Is(err, service.ErrDuplicateFile):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrFileNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError 记录日志并写出 {message, data}. 底层原因只在调试模式下返回给客户端.
func writeError(c *gin.Context, err error, debug bool) {
	svcErr := service.AsError(err)
	status := statusOf(err)

	data := svcErr.Data
	if data == nil && debug && svcErr.Err != nil {
		data = svcErr.Err.Error()
	}

	l := ctxPkg.Logger(c.Request.Context())

	ev := l.Warn()
	if status >= http.StatusInternalServerError {
		ev = l.Error()
	}

	ev.Err(err).Int("status", status).Str("path", c.FullPath()).Msg(svcErr.Message)

	c.AbortWithStatusJSON(status, types.ErrorResponse{Message: svcErr.Message, Data: data})
}

// writeBadRequest 请求参数错误.
func writeBadRequest(c *gin.Context, message string, data any) {
	l := ctxPkg.Logger(c.Request.Context())
	l.Warn().Interface("data", data).Str("path", c.FullPath()).Msg(message)

	c.AbortWithStatusJSON(http.StatusBadRequest, types.ErrorResponse{Message: message, Data: data})
}
