// Package mocks 提供总线接口的 gomock 实现，仅用于测试
package mocks

//go:generate mockgen -destination=mock_sink.go -package=mocks github.com/dep2p/go-eventbus ErrorSink
//go:generate mockgen -destination=mock_reporter.go -package=mocks github.com/dep2p/go-eventbus/internal/core/metrics Reporter
