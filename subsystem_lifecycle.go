package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dep2p/go-lifecycle/config"
	"github.com/dep2p/go-lifecycle/pkg/lib/log"
)

// ════════════════════════════════════════════════════════════════════════════
//                              生命周期常量
// ════════════════════════════════════════════════════════════════════════════

const (
	// initializeTimeout 初始化超时（Fx App Start）
	initializeTimeout = 15 * time.Second

	// shutdownTimeout 关闭超时（Fx App Stop）
	shutdownTimeout = 10 * time.Second
)

// ════════════════════════════════════════════════════════════════════════════
//                              生命周期管理
// ════════════════════════════════════════════════════════════════════════════

// Start 启动子系统
//
// 采用阶段化启动策略：
//  1. Initialize: 启动 Fx App，装配所有组件
//  2. Wire: 应用日志配置，订阅内部事件
//  3. Running: 进入运行状态，接受用户请求
//
// 子系统是一次性的：Stop/Close 之后不能再次 Start。
func (s *Subsystem) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSubsystemClosed
	}
	if s.started {
		return ErrAlreadyStarted
	}

	// ════════════════════════════════════════════════════════════════════════
	// Phase 1: Initialize - 启动 Fx App
	// ════════════════════════════════════════════════════════════════════════
	s.state = StateInitializing
	logger.Info("正在初始化子系统")

	// 使用超时上下文
	initCtx, initCancel := context.WithTimeout(ctx, initializeTimeout)
	defer initCancel()

	// 启动 Fx 应用（调用所有模块的 OnStart）
	if err := s.app.Start(initCtx); err != nil {
		s.state = StateIdle
		logger.Error("子系统初始化失败", "error", err)
		return fmt.Errorf("initialize failed: %w", err)
	}
	logger.Debug("Fx 应用启动成功")

	// 组件注入完整性检查
	if s.tracker == nil || s.registry == nil || s.notifier == nil {
		s.state = StateStopping
		stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stopCancel()
		_ = s.app.Stop(stopCtx)
		s.state = StateStopped
		s.closed = true
		return fmt.Errorf("component injection incomplete")
	}

	// ════════════════════════════════════════════════════════════════════════
	// Phase 2: Wire - 日志与事件订阅
	// ════════════════════════════════════════════════════════════════════════
	// 日志配置（仅在偏离默认值时覆盖进程默认 logger）
	if s.cfg.Log != config.DefaultLogConfig() {
		lvl := log.ParseLevel(s.cfg.Log.Level)
		if s.cfg.Log.Format == config.LogFormatJSON {
			log.SetDefault(log.NewJSON(os.Stderr, &slog.HandlerOptions{Level: lvl}))
		} else {
			log.SetLevel(lvl)
		}
	}

	// 守卫释放事件接入回调分发器
	s.trackerCancel = s.tracker.OnGuardReleased(s.observers.guardReleased)

	// ════════════════════════════════════════════════════════════════════════
	// Phase 3: Running - 进入运行状态
	// ════════════════════════════════════════════════════════════════════════
	s.state = StateRunning
	s.started = true
	logger.Info("子系统启动成功",
		"reclaim", s.notifier.Name(),
		"metrics", s.metrics != nil)

	return nil
}

// Stop 停止子系统
//
// 关闭注册表与后台执行器：
//   - 解除全部不可达监视（安全网失效）
//   - 排队中尚未执行的隐式清理被放弃
//   - 已创建的作用域不受影响，仍可显式 Close
//
// Stop 是终态操作，停止后不能重新启动。
func (s *Subsystem) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stopLocked(ctx)
}

// stopLocked 持锁停止
func (s *Subsystem) stopLocked(ctx context.Context) error {
	if s.closed {
		return nil // 幂等
	}
	if !s.started {
		// 从未启动，直接进入终态
		s.closed = true
		s.state = StateStopped
		return nil
	}

	s.state = StateStopping
	logger.Info("正在停止子系统")

	// 解除事件订阅
	if s.trackerCancel != nil {
		s.trackerCancel()
		s.trackerCancel = nil
	}

	// 停止 Fx 应用（OnStop 关闭注册表）
	stopCtx, stopCancel := context.WithTimeout(ctx, shutdownTimeout)
	defer stopCancel()
	err := s.app.Stop(stopCtx)

	s.started = false
	s.closed = true
	s.state = StateStopped

	if err != nil {
		logger.Error("子系统停止时出错", "error", err)
		return fmt.Errorf("stop failed: %w", err)
	}
	logger.Info("子系统已停止")
	return nil
}

// Close 关闭子系统
//
// 等价于带后台上下文的 Stop()。幂等。
func (s *Subsystem) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stopLocked(context.Background())
}
