// Package log 提供基于 zerolog 的日志工具，支持控制台输出和文件输出（lumberjack 轮转）.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yeisme/csvvault/pkg/configs"
)

var (
	logger   zerolog.Logger
	initOnce sync.Once
)

// Init 初始化全局 logger.
func Init() {
	initOnce.Do(initLogger)
}

// initLogger 实际执行一次的初始化函数.
func initLogger() {
	cfg := configs.GetConfig()
	logger = New(cfg.Log, cfg.Server.Debug)

	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Logger = logger
}

// New 按配置构建 logger，所有事件带 app 字段.
func New(logCfg configs.LogConfig, debug bool) zerolog.Logger {
	lvl := parseLevel(logCfg.Level)
	zerolog.SetGlobalLevel(lvl)

	ctx := zerolog.New(newWriter(logCfg, debug)).With().Timestamp().Str("app", configs.AppName)
	if debug {
		ctx = ctx.Caller().Stack()
	}

	return ctx.Logger().Level(lvl)
}

func parseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = configs.DefaultLogLevel
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q, defaulting to info\n", level)

		return zerolog.InfoLevel
	}

	return lvl
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = out
		w.TimeFormat = time.Kitchen
	})
}

// newWriter 选择输出：to_stdout 或未配置文件路径时用控制台，否则 lumberjack 轮转文件；调试时文件与 stderr 双写.
func newWriter(logCfg configs.LogConfig, debug bool) io.Writer {
	if logCfg.ToStdout || logCfg.FilePath == "" {
		return consoleWriter(os.Stdout)
	}

	if err := os.MkdirAll(filepath.Dir(logCfg.FilePath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create log dir: %v, logging to stdout\n", err)

		return consoleWriter(os.Stdout)
	}

	rotating := &lumberjack.Logger{
		Filename:   logCfg.FilePath,
		MaxSize:    logCfg.MaxSize,
		MaxBackups: logCfg.MaxBackups,
		MaxAge:     logCfg.MaxAge,
		Compress:   logCfg.Compress,
	}

	if debug {
		return zerolog.MultiLevelWriter(consoleWriter(os.Stderr), rotating)
	}

	return rotating
}

// Logger 返回全局 logger.
func Logger() *zerolog.Logger {
	initOnce.Do(initLogger)

	return &logger
}

// GinWriter 把 gin 的调试与错误输出逐行转成 zerolog 事件.
type GinWriter struct {
	logger *zerolog.Logger
	level  zerolog.Level
}

// NewGinWriter 以固定级别转发.
func NewGinWriter(logger *zerolog.Logger, level zerolog.Level) *GinWriter {
	return &GinWriter{logger: logger, level: level}
}

func (w *GinWriter) Write(p []byte) (n int, err error) {
	if msg := strings.TrimSpace(string(p)); msg != "" {
		w.logger.WithLevel(w.level).Msg(msg)
	}

	return len(p), nil
}
