// Package log 提供事件总线统一日志接口
//
// 基于 Go 标准库 log/slog 封装，支持按组件配置日志级别：
//
//	# 所有组件 info，eventbus 组件 debug
//	EVENTBUS_LOG_LEVEL=eventbus=debug,info
//
//	# 使用 JSON 格式输出
//	EVENTBUS_LOG_FORMAT=json
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// 日志级别常量（从 slog 导出，方便使用）
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Format 日志输出格式
type Format int

const (
	// FormatText 文本格式（默认）
	FormatText Format = iota
	// FormatJSON JSON 格式
	FormatJSON
)

// ============================================================================
//                              级别配置
// ============================================================================

// Config 日志配置
type Config struct {
	// DefaultLevel 默认日志级别
	DefaultLevel slog.Level

	// ComponentLevels 各组件的日志级别
	ComponentLevels map[string]slog.Level

	// Format 输出格式
	Format Format
}

// LevelFor 获取指定组件的日志级别
func (c *Config) LevelFor(component string) slog.Level {
	if level, ok := c.ComponentLevels[component]; ok {
		return level
	}
	return c.DefaultLevel
}

// current 当前生效的配置
var current atomic.Pointer[Config]

func active() *Config {
	if cfg := current.Load(); cfg != nil {
		return cfg
	}
	return &Config{DefaultLevel: slog.LevelInfo}
}

// ParseConfig 解析级别和格式字符串
//
// level 格式: component=level,component=level,defaultLevel
// 无法识别的级别会被忽略。
func ParseConfig(level, format string) Config {
	cfg := Config{
		DefaultLevel:    slog.LevelInfo,
		ComponentLevels: make(map[string]slog.Level),
	}

	for _, part := range strings.Split(level, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if component, name, ok := strings.Cut(part, "="); ok {
			if lvl, ok := ParseLevel(strings.TrimSpace(name)); ok {
				cfg.ComponentLevels[strings.TrimSpace(component)] = lvl
			}
			continue
		}
		if lvl, ok := ParseLevel(part); ok {
			cfg.DefaultLevel = lvl
		}
	}

	if strings.EqualFold(format, "json") {
		cfg.Format = FormatJSON
	}
	return cfg
}

// ConfigFromEnv 从环境变量解析配置
//
// 环境变量:
//   - EVENTBUS_LOG_LEVEL: 日志级别配置
//   - EVENTBUS_LOG_FORMAT: text 或 json
func ConfigFromEnv() Config {
	return ParseConfig(os.Getenv("EVENTBUS_LOG_LEVEL"), os.Getenv("EVENTBUS_LOG_FORMAT"))
}

// ParseLevel 解析日志级别名称
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Setup 按配置设置默认 logger
//
// handler 本身放行所有级别，过滤由 LazyLogger 按组件完成。
func Setup(w io.Writer, cfg Config) {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	var h slog.Handler
	if cfg.Format == FormatJSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	if cfg.ComponentLevels == nil {
		cfg.ComponentLevels = make(map[string]slog.Level)
	}
	current.Store(&cfg)
	slog.SetDefault(slog.New(h))
}

// Discard 返回一个丢弃所有日志的 Logger
//
// 主要用于测试。
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// ============================================================================
//                              LazyLogger
// ============================================================================

// LazyLogger 懒加载 logger
//
// 每次日志调用时都从 slog.Default() 获取最新的 handler，
// 支持在运行时动态切换日志输出目标。
//
// 使用方式：
//
//	var logger = log.Logger("eventbus")
//	logger.Info("hello")
type LazyLogger struct {
	component string
}

// Logger 返回带组件名的 LazyLogger
func Logger(component string) *LazyLogger {
	return &LazyLogger{component: component}
}

// Component 返回组件名
func (l *LazyLogger) Component() string {
	return l.component
}

// Enabled 判断组件是否启用指定级别
func (l *LazyLogger) Enabled(level slog.Level) bool {
	return level >= active().LevelFor(l.component)
}

// Debug 输出 Debug 级别日志
func (l *LazyLogger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, msg, args)
}

// Info 输出 Info 级别日志
func (l *LazyLogger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, msg, args)
}

// Warn 输出 Warn 级别日志
func (l *LazyLogger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args)
}

// Error 输出 Error 级别日志
func (l *LazyLogger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args)
}

// With 添加额外的属性
//
// 返回的 Logger 绑定调用时的 slog.Default() handler，
// 仍按组件级别过滤。
func (l *LazyLogger) With(args ...any) *slog.Logger {
	h := componentHandler{inner: slog.Default().Handler(), component: l.component}
	return slog.New(h).With("component", l.component).With(args...)
}

// componentHandler 按组件级别过滤的 handler
type componentHandler struct {
	inner     slog.Handler
	component string
}

func (h componentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= active().LevelFor(h.component) && h.inner.Enabled(ctx, level)
}

func (h componentHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h componentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return componentHandler{inner: h.inner.WithAttrs(attrs), component: h.component}
}

func (h componentHandler) WithGroup(name string) slog.Handler {
	return componentHandler{inner: h.inner.WithGroup(name), component: h.component}
}

func (l *LazyLogger) log(level slog.Level, msg string, args []any) {
	if !l.Enabled(level) {
		return
	}
	slog.Default().With("component", l.component).Log(context.Background(), level, msg, args...)
}

func init() {
	cfg := ConfigFromEnv()
	current.Store(&cfg)
}
