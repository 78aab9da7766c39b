// Package router 管理路由配置，把处理器绑定到 gin 引擎.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/csvvault/pkg/internal/handle"
)

// FileHandlers 定义由应用层注入的文件处理器. router 包只负责将路径和处理器绑定到 gin 引擎，
// 处理器的实现由 pkg/internal/handle 提供.
type FileHandlers interface {
	List() gin.HandlerFunc
	Upload() gin.HandlerFunc
	Get() gin.HandlerFunc
}

// placeholder 返回 501 的占位实现，便于服务在未注入处理器时也能启动.
type placeholder struct{}

func (placeholder) List() gin.HandlerFunc   { return handle.DefaultHandler }
func (placeholder) Upload() gin.HandlerFunc { return handle.DefaultHandler }
func (placeholder) Get() gin.HandlerFunc    { return handle.DefaultHandler }

// Route 一条已注册的路由.
type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Routes 返回引擎上注册的全部路由，按注册顺序.
func Routes(r *gin.Engine) []Route {
	infos := r.Routes()

	out := make([]Route, 0, len(infos))
	for _, info := range infos {
		out = append(out, Route{Method: info.Method, Path: info.Path})
	}

	return out
}
