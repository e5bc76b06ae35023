package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-eventbus/config"
)

// ConfigFromUnified 从统一配置创建指标配置
func ConfigFromUnified(cfg *config.Config) (Config, bool) {
	if cfg == nil {
		return DefaultConfig(), false
	}
	return Config{Namespace: cfg.Metrics.Namespace}, cfg.Metrics.Enabled
}

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config        `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// Module 是 metrics 的 Fx 模块
var Module = fx.Module("metrics",
	fx.Provide(NewRecorderFromParams),
)

// NewRecorderFromParams 从参数创建 Recorder
//
// 指标未启用时返回 nil Recorder。提供了 Registerer 时自动注册。
func NewRecorderFromParams(p Params) (*Recorder, error) {
	cfg, enabled := ConfigFromUnified(p.UnifiedCfg)
	if !enabled {
		return nil, nil
	}

	rec := NewRecorder(cfg)
	if p.Registerer != nil {
		if err := p.Registerer.Register(rec); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return rec, nil
}
