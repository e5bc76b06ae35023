// Package main 提供 eventbus 演示命令行入口
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-eventbus"
	"github.com/dep2p/go-eventbus/config"
	"github.com/dep2p/go-eventbus/pkg/lib/log"
)

var logger = log.Logger("eventbus/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
var (
	configFile = flag.String("config", "", "配置文件路径（JSON）")
	preset     = flag.String("preset", "", "预设配置 (default/debug/production)")
	logLevel   = flag.String("log-level", "", "日志级别，覆盖配置文件，如 eventbus=debug,info")
	scenario   = flag.String("scenario", "all", "演示场景 (priority/reentrant/failure/all)")
	showHelp   = flag.Bool("help", false, "显示帮助信息")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showHelp {
		printHelp()
		return nil
	}

	cfg, err := buildConfig()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}
	log.Setup(os.Stderr, log.ParseConfig(cfg.Log.Level, cfg.Log.Format))

	selected, err := selectScenarios(*scenario)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	var bus *eventbus.Bus[demoCategory]

	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		fx.Provide(func() prometheus.Registerer { return reg }),
		fx.Provide(func() eventbus.ErrorSink { return eventbus.ErrorSinkFunc(printFailure) }),
		eventbus.MetricsModule,
		eventbus.Module[demoCategory](),
		fx.Populate(&bus),
	)
	if err := app.Err(); err != nil {
		return fmt.Errorf("创建总线失败: %w", err)
	}

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	defer func() { _ = app.Stop(ctx) }()

	logger.Info("running scenarios", "scenarios", strings.Join(names(selected), ","))
	for _, s := range selected {
		fmt.Printf("\n== %s ==\n", s.name)
		if err := s.run(bus, cfg); err != nil {
			return fmt.Errorf("场景 %s 失败: %w", s.name, err)
		}
	}

	if cfg.Metrics.Enabled {
		return printMetrics(reg)
	}
	return nil
}

// buildConfig 构建配置
//
// 优先级（从高到低）：
//  1. 命令行参数
//  2. 预设
//  3. 配置文件
//  4. 默认值
func buildConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if *configFile != "" {
		loaded, err := config.LoadFile(*configFile)
		if err != nil {
			return nil, fmt.Errorf("加载配置文件失败: %w", err)
		}
		cfg = loaded
	}

	if *preset != "" {
		if err := config.ApplyPreset(cfg, *preset); err != nil {
			return nil, err
		}
	}

	if isFlagSet("log-level") {
		cfg.Log.Level = *logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// printMetrics 打印总线指标
func printMetrics(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("收集指标失败: %w", err)
	}

	fmt.Println("\n== metrics ==")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Printf("%s{%s} %v\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				fmt.Printf("%s{%s} count=%d\n", mf.GetName(), strings.Join(labels, ","), m.GetHistogram().GetSampleCount())
			}
		}
	}
	return nil
}

// printHelp 打印帮助信息
func printHelp() {
	fmt.Println("eventbus-demo - 同步优先级事件总线演示")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  eventbus-demo [选项]")
	fmt.Println()
	fmt.Println("选项:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("场景:")
	fmt.Println("  priority    A(10) B(5) C(10) 的投递顺序，以及取消订阅")
	fmt.Println("  reentrant   处理器内部再次发布同类型事件")
	fmt.Println("  failure     处理器返回错误和 panic，投递继续")
	fmt.Println()
	fmt.Println("环境变量:")
	fmt.Println("  EVENTBUS_LOG_LEVEL        日志级别配置")
	fmt.Println("  EVENTBUS_LOG_FORMAT       text 或 json")
	fmt.Println()
	fmt.Println("使用示例:")
	fmt.Println("  eventbus-demo -scenario reentrant -log-level eventbus=debug,info")
	fmt.Println("  eventbus-demo -preset production")
}
