package handle

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/csvvault/pkg/configs"
	ctxPkg "github.com/yeisme/csvvault/pkg/context"
	"github.com/yeisme/csvvault/pkg/internal/storage"
	"github.com/yeisme/csvvault/pkg/internal/types"
)

const timeout = 2 * time.Second

const (
	statusOK        = "ok"
	statusUnhealthy = "unhealthy"
	statusDisabled  = "disabled"
)

var errNotInitialized = errors.New("client not initialized")

// probe 检查单个组件. required 为 false 的组件未启用时状态为 disabled.
type probe struct {
	component string
	required  bool
	enabled   func(m *storage.Manager) bool
	check     func(ctx context.Context, m *storage.Manager) error
}

var probes = []probe{
	{
		component: "db",
		required:  true,
		enabled:   func(m *storage.Manager) bool { return m.DB != nil },
		check:     func(ctx context.Context, m *storage.Manager) error { return m.DB.Ping(ctx) },
	},
	{
		component: "kv",
		enabled:   func(m *storage.Manager) bool { return m.KV != nil },
		check: func(ctx context.Context, m *storage.Manager) error {
			_, err := m.KV.Exists(ctx, configs.AppName+":health")
			return err
		},
	},
	{
		component: "mq",
		enabled:   func(m *storage.Manager) bool { return m.MQ != nil },
		check:     func(ctx context.Context, m *storage.Manager) error { return m.MQ.HealthCheck(ctx) },
	},
	{
		component: "s3",
		enabled:   func(m *storage.Manager) bool { return m.S3 != nil },
		check:     func(ctx context.Context, m *storage.Manager) error { return m.S3.HealthCheck(ctx) },
	},
}

func runProbe(ctx context.Context, p probe) types.HealthResponse {
	resp := types.HealthResponse{Component: p.component, Status: statusOK}

	mgr := ctxPkg.GetManager(ctx)
	if mgr == nil || !p.enabled(mgr) {
		if p.required {
			resp.Status, resp.Error = statusUnhealthy, p.component+" "+errNotInitialized.Error()
		} else {
			resp.Status = statusDisabled
		}

		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := p.check(ctx, mgr); err != nil {
		resp.Status, resp.Error = statusUnhealthy, err.Error()
	}

	return resp
}

func writeHealth(c *gin.Context, resp types.HealthResponse) {
	if resp.Status == statusUnhealthy {
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func healthOf(component string) gin.HandlerFunc {
	for _, p := range probes {
		if p.component == component {
			return func(c *gin.Context) { writeHealth(c, runProbe(c.Request.Context(), p)) }
		}
	}

	return DefaultHandler
}

// HealthDB 数据库健康检查.
//
//	@Summary	数据库健康检查
//	@Tags		健康检查
//	@Produce	json
//	@Success	200	{object}	types.HealthResponse
//	@Failure	503	{object}	types.HealthResponse
//	@Router		/health/db [get]
func HealthDB(c *gin.Context) { healthOf("db")(c) }

// HealthKV 缓存健康检查.
func HealthKV(c *gin.Context) { healthOf("kv")(c) }

// HealthMQ 消息队列健康检查.
func HealthMQ(c *gin.Context) { healthOf("mq")(c) }

// HealthS3 S3/对象存储健康检查.
func HealthS3(c *gin.Context) { healthOf("s3")(c) }

// Health 汇总所有组件状态，任一已启用组件异常时返回 503.
//
//	@Summary	健康检查
//	@Tags		健康检查
//	@Produce	json
//	@Success	200	{object}	types.HealthReport
//	@Failure	503	{object}	types.HealthReport
//	@Router		/health [get]
func Health(c *gin.Context) {
	report := types.HealthReport{Status: statusOK, Version: configs.AppVersion}

	for _, p := range probes {
		resp := runProbe(c.Request.Context(), p)
		if resp.Status == statusUnhealthy {
			report.Status = statusUnhealthy
		}

		report.Components = append(report.Components, resp)
	}

	if report.Status == statusUnhealthy {
		c.JSON(http.StatusServiceUnavailable, report)
		return
	}

	c.JSON(http.StatusOK, report)
}
