// Package main 提供 lifecycled 命令行入口
//
// lifecycled 是 go-lifecycle 的演示与观测守护进程：
// 启动一个子系统，暴露统计与指标端点，可选地持续产生
// 资源流转负载以便观察清理行为。
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	lifecycle "github.com/dep2p/go-lifecycle"
	"github.com/dep2p/go-lifecycle/config"
	"github.com/dep2p/go-lifecycle/pkg/lib/log"
)

var logger = log.Logger("lifecycle/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
//
// 设计原则：
//
//	命令行参数：运行时覆盖 / 快速测试（「这次运行」想怎么跑）
//	JSON 配置文件：持久化配置 / 长期运行（「这个实例」的固定配置）
var (
	// ─────────────────────────────────────────────────────────────────────
	// 运行时参数（快速指定）
	// ─────────────────────────────────────────────────────────────────────
	configFile = flag.String("config", "", "配置文件路径")
	preset     = flag.String("preset", "", "预设配置 (server/test/minimal)")
	listenAddr = flag.String("listen", ":9090", "统计与指标端点监听地址")
	logLevel   = flag.String("log-level", "", "日志级别 (debug/info/warn/error)")

	// ─────────────────────────────────────────────────────────────────────
	// 演示负载
	// ─────────────────────────────────────────────────────────────────────
	churn         = flag.Bool("churn", false, "持续产生资源流转负载")
	churnInterval = flag.Duration("churn-interval", 100*time.Millisecond, "负载产生间隔")

	// ─────────────────────────────────────────────────────────────────────
	// 信息显示
	// ─────────────────────────────────────────────────────────────────────
	showVersion = flag.Bool("version", false, "显示版本信息")
	showHelp    = flag.Bool("help", false, "显示帮助信息")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		printVersion()
		return nil
	}
	if *showHelp {
		printHelp()
		return nil
	}

	// 构建选项
	opts, err := buildOptions()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	// 创建上下文
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fmt.Printf("📦 %s\n", lifecycle.VersionInfo())
	logger.Info("启动 lifecycled",
		"version", lifecycle.Version,
		"commit", lifecycle.GitCommit,
		"buildDate", lifecycle.BuildDate)

	// 启动子系统
	sys, err := lifecycle.Start(ctx, opts...)
	if err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	defer func() { _ = sys.Close() }()

	// 清理失败上报到日志
	cancelObs := sys.OnCleanupFailure(func(evt lifecycle.EvtCleanupRan) {
		logger.Warn("安全网清理失败",
			"id", evt.ID,
			"trigger", evt.Trigger,
			"error", evt.Err)
	})
	defer cancelObs()

	// 统计与指标端点
	srv := startHTTPServer(sys, *listenAddr)
	defer func() {
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer shutCancel()
		_ = srv.Shutdown(shutCtx)
	}()

	// 演示负载
	if *churn {
		go runChurn(ctx, sys, *churnInterval)
	}

	printStartupInfo(sys)

	// 等待退出信号
	fmt.Println("lifecycled 已启动，按 Ctrl+C 退出")
	waitForSignal()

	fmt.Println("\n正在关闭...")
	return nil
}

// buildOptions 构建选项
//
// 配置优先级（从高到低）：
//  1. 命令行参数（运行时覆盖）
//  2. 配置文件（持久化配置）
//  3. 预设默认值
func buildOptions() ([]lifecycle.Option, error) {
	var opts []lifecycle.Option

	// 加载配置文件（持久化配置）
	if *configFile != "" {
		data, err := os.ReadFile(*configFile)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		cfg, err := config.FromJSON(data)
		if err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
		opts = append(opts, lifecycle.WithConfig(cfg))
	}

	// 预设（命令行覆盖配置文件）
	if *preset != "" {
		opts = append(opts, lifecycle.WithPreset(*preset))
	}

	// 指标端点需要指标开启
	opts = append(opts, lifecycle.WithMetrics(true))

	// 日志级别（运行时覆盖）
	if *logLevel != "" {
		opts = append(opts, lifecycle.WithLogLevel(*logLevel))
	}

	return opts, nil
}

// startHTTPServer 启动统计与指标端点
//
// 端点：
//   - /metrics: Prometheus 指标
//   - /stats:   子系统统计 JSON 快照
//   - /healthz: 存活探针
func startHTTPServer(sys *lifecycle.Subsystem, addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		stats, err := sys.Stats()
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(stats)
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if sys.State() != lifecycle.StateRunning {
			http.Error(w, sys.State().String(), http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("端点服务异常退出", "error", err)
		}
	}()
	return srv
}

// runChurn 持续产生资源流转负载
//
// 每个周期：开一个作用域挂两个守卫后关闭，
// 再注册一个立即显式清理的对象，偶尔留下一个
// 交给安全网回收。
func runChurn(ctx context.Context, sys *lifecycle.Subsystem, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	round := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		round++
		_ = sys.Scoped("churn", func(sc *lifecycle.Scope) error {
			_, _ = sc.Defer("buf", func() error { return nil })
			_, _ = sc.Defer("conn", func() error { return nil })
			return nil
		})

		obj := new(int)
		reg, err := sys.Register(obj, func() error { return nil })
		if err != nil {
			continue
		}
		// 每第 10 个对象留给安全网，其余显式清理
		if round%10 != 0 {
			_ = reg.RunNow()
		}
	}
}

// printStartupInfo 显示启动信息
func printStartupInfo(sys *lifecycle.Subsystem) {
	fmt.Println("──────────────────────────────────────────────")
	fmt.Printf("  回收模式:   %s\n", sys.Notifier().Name())
	fmt.Printf("  统计端点:   http://%s/stats\n", *listenAddr)
	fmt.Printf("  指标端点:   http://%s/metrics\n", *listenAddr)
	if *churn {
		fmt.Printf("  演示负载:   每 %s 一轮\n", *churnInterval)
	}
	fmt.Println("──────────────────────────────────────────────")
}

// printVersion 显示版本信息
func printVersion() {
	fmt.Println(lifecycle.VersionInfo())
	if lifecycle.GoVersion != "" {
		fmt.Printf("go version: %s\n", lifecycle.GoVersion)
	}
}

// printHelp 显示帮助信息
func printHelp() {
	fmt.Println("lifecycled - go-lifecycle 演示与观测守护进程")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  lifecycled [选项]")
	fmt.Println()
	fmt.Println("选项:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("示例:")
	fmt.Println("  lifecycled -preset server -churn")
	fmt.Println("  lifecycled -config lifecycle.json -listen :8080")
}

// waitForSignal 等待退出信号
func waitForSignal() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
}
