// Package metrics 提供 Prometheus 指标，包括 HTTP 请求与 CSV 入库指标.
//
//	if err := metrics.InitMetrics(cfg.Metrics); err != nil {
//		log.Fatal(err)
//	}
//
//	metrics.ObserveIngest(metrics.ResultOK, time.Since(start), size, columns)
package metrics

import (
	"net/http"
	"net/http/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yeisme/csvvault/pkg/configs"
)

const namespace = configs.AppName

// 入库结果标签.
const (
	ResultOK        = "ok"
	ResultInvalid   = "invalid"
	ResultDuplicate = "duplicate"
	ResultError     = "error"
)

// 全局指标变量.
var (
	// RequestCounter HTTP请求计数器.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration HTTP请求持续时间.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// InFlightRequests 正在处理的请求数.
	InFlightRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests being served",
		},
	)

	// FilesIngested 按结果统计的入库次数.
	FilesIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_ingested_total",
			Help:      "CSV ingestions by result",
		},
		[]string{"result"},
	)

	// IngestDuration 入库耗时.
	IngestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_duration_seconds",
			Help:      "Time spent ingesting one CSV file",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// IngestedBytes 成功入库的字节数.
	IngestedBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingested_bytes_total",
			Help:      "Bytes of successfully ingested CSV files",
		},
	)

	// ColumnsInferred 按类型统计的推断列数.
	ColumnsInferred = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "columns_inferred_total",
			Help:      "Columns persisted by inferred type",
		},
		[]string{"type"},
	)

	// TempFilesSwept 清理的过期临时文件数.
	TempFilesSwept = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "temp_files_swept_total",
			Help:      "Stale upload temp files removed by the sweeper",
		},
	)

	registry = prometheus.NewRegistry()
	initOnce sync.Once
)

// InitMetrics 注册指标，重复调用只生效一次.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	var err error

	initOnce.Do(func() {
		cs := []prometheus.Collector{
			RequestCounter, RequestDuration, InFlightRequests,
			FilesIngested, IngestDuration, IngestedBytes, ColumnsInferred, TempFilesSwept,
		}

		if config.RuntimeMetrics {
			cs = append(cs,
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}

		for _, c := range cs {
			if err = registry.Register(c); err != nil {
				return
			}
		}
	})

	return err
}

// Handler 暴露本包注册表与默认注册表（gorm、watermill 插件注册在默认注册表）.
func Handler() http.Handler {
	return promhttp.HandlerFor(prometheus.Gatherers{registry, prometheus.DefaultGatherer}, promhttp.HandlerOpts{})
}

// RegisterRoutes 在 engine 上挂载 metrics 与可选的 pprof 端点.
func RegisterRoutes(config configs.MetricsConfig, engine *gin.Engine) {
	if !config.Enabled {
		return
	}

	engine.GET(config.Path, gin.WrapH(Handler()))

	if config.Pprof {
		pp := engine.Group("/debug/pprof")
		pp.GET("/", gin.WrapF(pprof.Index))
		pp.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pp.GET("/profile", gin.WrapF(pprof.Profile))
		pp.GET("/symbol", gin.WrapF(pprof.Symbol))
		pp.GET("/trace", gin.WrapF(pprof.Trace))
		pp.GET("/:name", func(c *gin.Context) { pprof.Handler(c.Param("name")).ServeHTTP(c.Writer, c.Request) })
	}
}

// GetRegistry 获取Prometheus注册表.
func GetRegistry() *prometheus.Registry {
	return registry
}

// ObserveRequest 记录一次 HTTP 请求.
func ObserveRequest(method, path string, status int, elapsed time.Duration) {
	RequestCounter.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveIngest 记录一次入库.
func ObserveIngest(result string, elapsed time.Duration, size int64, columnTypes []string) {
	FilesIngested.WithLabelValues(result).Inc()
	IngestDuration.Observe(elapsed.Seconds())

	if result != ResultOK {
		return
	}

	IngestedBytes.Add(float64(size))

	for _, t := range columnTypes {
		ColumnsInferred.WithLabelValues(t).Inc()
	}
}
