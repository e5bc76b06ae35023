package metrics

import (
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
)

// Reporter 总线指标上报接口
type Reporter interface {
	// LogRaised 记录一次事件发布
	LogRaised(eventType reflect.Type)

	// StartHandler 返回处理器开始执行的时间
	StartHandler() time.Time

	// LogHandled 记录一次处理器调用
	LogHandled(eventType reflect.Type, start time.Time, failed bool)
}

// 确保 Recorder 实现 Reporter 和 prometheus.Collector 接口
var (
	_ Reporter             = (*Recorder)(nil)
	_ prometheus.Collector = (*Recorder)(nil)
)

const (
	resultOK     = "ok"
	resultFailed = "failed"
)

// Config 指标配置
type Config struct {
	// Namespace prometheus 命名空间
	Namespace string

	// Clock 时钟，nil 时使用真实时钟
	Clock clock.Clock
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Namespace: "eventbus",
	}
}

// Totals 累计统计
type Totals struct {
	Raised  uint64
	Handled uint64
	Failed  uint64
}

// typeMetrics 单个事件类型的已解析指标
type typeMetrics struct {
	raised   prometheus.Counter
	ok       prometheus.Counter
	failed   prometheus.Counter
	duration prometheus.Observer
}

// Recorder prometheus 指标记录器
type Recorder struct {
	clock clock.Clock

	raised   *prometheus.CounterVec
	handled  *prometheus.CounterVec
	duration *prometheus.HistogramVec

	mu    sync.RWMutex
	types map[reflect.Type]*typeMetrics

	totalRaised  atomic.Uint64
	totalHandled atomic.Uint64
	totalFailed  atomic.Uint64
}

// NewRecorder 创建指标记录器
func NewRecorder(cfg Config) *Recorder {
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultConfig().Namespace
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	return &Recorder{
		clock: cfg.Clock,
		raised: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "events_raised_total",
			Help:      "Number of events raised, by event type.",
		}, []string{"event"}),
		handled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "handler_invocations_total",
			Help:      "Number of handler invocations, by event type and result.",
		}, []string{"event", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "handler_duration_seconds",
			Help:      "Handler execution time, by event type.",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10),
		}, []string{"event"}),
		types: make(map[reflect.Type]*typeMetrics),
	}
}

// LogRaised 记录一次事件发布
func (r *Recorder) LogRaised(eventType reflect.Type) {
	r.forType(eventType).raised.Inc()
	r.totalRaised.Add(1)
}

// StartHandler 返回当前时间
func (r *Recorder) StartHandler() time.Time {
	return r.clock.Now()
}

// LogHandled 记录一次处理器调用
func (r *Recorder) LogHandled(eventType reflect.Type, start time.Time, failed bool) {
	tm := r.forType(eventType)
	tm.duration.Observe(r.clock.Since(start).Seconds())
	r.totalHandled.Add(1)
	if failed {
		tm.failed.Inc()
		r.totalFailed.Add(1)
		return
	}
	tm.ok.Inc()
}

// Totals 返回累计统计
func (r *Recorder) Totals() Totals {
	return Totals{
		Raised:  r.totalRaised.Load(),
		Handled: r.totalHandled.Load(),
		Failed:  r.totalFailed.Load(),
	}
}

// Describe 实现 prometheus.Collector
func (r *Recorder) Describe(ch chan<- *prometheus.Desc) {
	r.raised.Describe(ch)
	r.handled.Describe(ch)
	r.duration.Describe(ch)
}

// Collect 实现 prometheus.Collector
func (r *Recorder) Collect(ch chan<- prometheus.Metric) {
	r.raised.Collect(ch)
	r.handled.Collect(ch)
	r.duration.Collect(ch)
}

// forType 返回事件类型的已解析指标，第一次出现时创建
func (r *Recorder) forType(eventType reflect.Type) *typeMetrics {
	r.mu.RLock()
	tm, ok := r.types[eventType]
	r.mu.RUnlock()
	if ok {
		return tm
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if tm, ok = r.types[eventType]; ok {
		return tm
	}
	name := eventType.String()
	tm = &typeMetrics{
		raised:   r.raised.WithLabelValues(name),
		ok:       r.handled.WithLabelValues(name, resultOK),
		failed:   r.handled.WithLabelValues(name, resultFailed),
		duration: r.duration.WithLabelValues(name),
	}
	r.types[eventType] = tm
	return tm
}
