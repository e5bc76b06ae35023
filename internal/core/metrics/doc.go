// Package metrics 提供事件总线的监控指标
//
// Recorder 基于 prometheus client_golang 实现，记录：
//   - 每种事件类型的发布次数
//   - 处理器调用次数（按成功/失败区分）
//   - 处理器耗时分布
//
// 耗时通过 benbjohnson/clock 计算，测试中可以替换为 clock.Mock。
//
// # 快速开始
//
//	rec := metrics.NewRecorder(metrics.Config{Namespace: "game"})
//	prometheus.MustRegister(rec)
//
//	bus, err := eventbus.New[GameEvent](eventbus.WithReporter(rec))
//
// # 热路径
//
// 每种事件类型的 counter 在第一次出现时解析并缓存，
// 之后的记录只做一次 map 查找和原子加。
package metrics
