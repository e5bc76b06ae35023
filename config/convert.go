package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保留默认值。
//
// 示例 JSON:
//
//	{
//	  "log": {"level": "eventbus=debug,info"},
//	  "pool": {"prewarm": 4},
//	  "metrics": {"enabled": true, "namespace": "game"}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFile 从 JSON 文件加载配置
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return FromJSON(data)
}

// ToJSON 将配置序列化为 JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// ApplyPreset 应用预设配置
//
// 支持的预设：
//   - "default": 默认配置
//   - "debug": debug 日志，关闭 panic 恢复以便直接看到堆栈
//   - "production": json 日志，启用指标，预分配更多游标
func ApplyPreset(cfg *Config, presetName string) error {
	switch presetName {
	case "default":
		*cfg = *NewConfig()
	case "debug":
		cfg.Log.Level = "debug"
		cfg.RecoverPanics = false
	case "production":
		cfg.Log.Level = "info"
		cfg.Log.Format = "json"
		cfg.Metrics.Enabled = true
		cfg.Pool.Prewarm = 4
	default:
		return fmt.Errorf("unknown preset: %s", presetName)
	}
	return nil
}
