// Package config 提供事件总线的统一配置
//
// 主 Config 结构体嵌入所有子配置，每个子配置带有默认值和 Validate 方法，
// 支持从 JSON 加载。
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Pool.Prewarm = 4
//	cfg.Metrics.Enabled = true
//
//	// 从 JSON 文件加载
//	cfg, err := config.LoadFile("eventbus.json")
package config

import (
	"errors"
	"fmt"
	"strings"
)

// 配置错误
var (
	// ErrInvalidLogLevel 无效的日志级别
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat 无效的日志格式
	ErrInvalidLogFormat = errors.New("invalid log format")
	// ErrInvalidPoolPrewarm 无效的游标预分配数量
	ErrInvalidPoolPrewarm = errors.New("invalid pool prewarm")
	// ErrInvalidNamespace 无效的指标命名空间
	ErrInvalidNamespace = errors.New("invalid metrics namespace")
)

// Config 事件总线的完整配置
type Config struct {
	// Log 日志配置
	Log LogConfig `json:"log"`

	// Pool 游标池配置
	Pool PoolConfig `json:"pool"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`

	// RecoverPanics 处理器 panic 时是否恢复并上报
	// 关闭后 panic 会从 Raise 传播出去
	RecoverPanics bool `json:"recover_panics"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Log:           DefaultLogConfig(),
		Pool:          DefaultPoolConfig(),
		Metrics:       DefaultMetricsConfig(),
		RecoverPanics: true,
	}
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Pool.Validate(); err != nil {
		return err
	}
	return c.Metrics.Validate()
}

// ============================================================================
//                              日志配置
// ============================================================================

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别配置，格式与 EVENTBUS_LOG_LEVEL 相同
	// 示例: "eventbus=debug,info"
	Level string `json:"level"`

	// Format 输出格式: text 或 json
	Format string `json:"format"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: "text",
	}
}

// Validate 验证日志配置
func (c LogConfig) Validate() error {
	for _, part := range strings.Split(c.Level, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, name, ok := strings.Cut(part, "="); ok {
			part = strings.TrimSpace(name)
		}
		if !isLevelName(part) {
			return fmt.Errorf("%w: %q", ErrInvalidLogLevel, part)
		}
	}
	switch strings.ToLower(c.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Format)
	}
	return nil
}

func isLevelName(name string) bool {
	switch strings.ToLower(name) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// ============================================================================
//                              游标池配置
// ============================================================================

// PoolConfig 游标池配置
type PoolConfig struct {
	// Prewarm 每个注册表创建时预分配的游标数量
	// 嵌套发布深度较大时调大此值，可以避免首次发布时的分配
	Prewarm int `json:"prewarm"`
}

// DefaultPoolConfig 返回默认游标池配置
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Prewarm: 1,
	}
}

// Validate 验证游标池配置
func (c PoolConfig) Validate() error {
	if c.Prewarm < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPoolPrewarm, c.Prewarm)
	}
	return nil
}

// ============================================================================
//                              指标配置
// ============================================================================

// MetricsConfig 指标配置
type MetricsConfig struct {
	// Enabled 是否启用 prometheus 指标
	Enabled bool `json:"enabled"`

	// Namespace prometheus 命名空间
	Namespace string `json:"namespace"`
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   false,
		Namespace: "eventbus",
	}
}

// Validate 验证指标配置
func (c MetricsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Namespace == "" || strings.ContainsAny(c.Namespace, " -.") {
		return fmt.Errorf("%w: %q", ErrInvalidNamespace, c.Namespace)
	}
	return nil
}
