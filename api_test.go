package lifecycle

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dep2p/go-lifecycle/config"
)

// waitFor 轮询等待条件成立
func waitFor(t *testing.T, d time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal(msg)
}

// startTestSubsystem 启动测试子系统
func startTestSubsystem(t *testing.T, opts ...Option) *Subsystem {
	t.Helper()
	sys, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := sys.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	t.Cleanup(func() { _ = sys.Close() })
	return sys
}

// TestNew_InvalidOption 测试无效选项被拒绝
func TestNew_InvalidOption(t *testing.T) {
	if _, err := New(WithConfig(nil)); err == nil {
		t.Error("New(WithConfig(nil)) expected error")
	}
	if _, err := New(WithNotifier(nil)); err == nil {
		t.Error("New(WithNotifier(nil)) expected error")
	}
	if _, err := New(WithReclaimInterval(-time.Second)); err == nil {
		t.Error("New(negative interval) expected error")
	}
}

// TestNew_InvalidConfig 测试配置验证失败
func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Reclaim.Mode = "eager"
	if _, err := New(WithConfig(cfg)); err == nil {
		t.Error("New() with unknown reclaim mode expected error")
	}

	// 巡检间隔与非运行时模式不兼容
	if _, err := New(
		WithReclaimMode(config.ReclaimModeDisabled),
		WithReclaimInterval(time.Minute),
	); err == nil {
		t.Error("New() with interval under disabled mode expected error")
	}
}

// TestSubsystem_Lifecycle 测试子系统生命周期状态机
func TestSubsystem_Lifecycle(t *testing.T) {
	sys, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if got := sys.State(); got != StateIdle {
		t.Errorf("State() = %v, want idle", got)
	}

	// 未启动时的访问
	if _, err := sys.NewScope("early"); !errors.Is(err, ErrNotStarted) {
		t.Errorf("NewScope() before start error = %v, want ErrNotStarted", err)
	}
	if _, err := sys.Stats(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Stats() before start error = %v, want ErrNotStarted", err)
	}

	ctx := context.Background()
	if err := sys.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if got := sys.State(); got != StateRunning {
		t.Errorf("State() = %v, want running", got)
	}

	// 重复启动
	if err := sys.Start(ctx); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start() error = %v, want ErrAlreadyStarted", err)
	}

	// 停止
	if err := sys.Stop(ctx); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
	if got := sys.State(); got != StateStopped {
		t.Errorf("State() = %v, want stopped", got)
	}

	// 停止后是终态
	if err := sys.Start(ctx); !errors.Is(err, ErrSubsystemClosed) {
		t.Errorf("Start() after stop error = %v, want ErrSubsystemClosed", err)
	}
	if _, err := sys.Register(new(int), func() error { return nil }); !errors.Is(err, ErrSubsystemClosed) {
		t.Errorf("Register() after stop error = %v, want ErrSubsystemClosed", err)
	}

	// Close 幂等
	if err := sys.Close(); err != nil {
		t.Errorf("Close() after stop error: %v", err)
	}
}

// TestSubsystem_NeverStartedClose 测试未启动即关闭
func TestSubsystem_NeverStartedClose(t *testing.T) {
	sys, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := sys.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if got := sys.State(); got != StateStopped {
		t.Errorf("State() = %v, want stopped", got)
	}
}

// TestScoped 测试临时作用域辅助函数
func TestScoped(t *testing.T) {
	sys := startTestSubsystem(t)

	t.Run("LIFO", func(t *testing.T) {
		var order []string
		err := sys.Scoped("lifo", func(sc *Scope) error {
			for _, name := range []string{"a", "b", "c"} {
				name := name
				if _, err := sc.Defer(name, func() error {
					order = append(order, name)
					return nil
				}); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Scoped() error: %v", err)
		}
		if len(order) != 3 || order[0] != "c" || order[1] != "b" || order[2] != "a" {
			t.Errorf("release order = %v, want [c b a]", order)
		}
	})

	t.Run("PrimaryPreserved", func(t *testing.T) {
		primary := errors.New("body failed")
		relErr := errors.New("release failed")
		err := sys.Scoped("merge", func(sc *Scope) error {
			_, _ = sc.Defer("r", func() error { return relErr })
			return primary
		})
		if !errors.Is(err, primary) {
			t.Errorf("Scoped() error = %v, want primary preserved", err)
		}
		if !errors.Is(err, relErr) {
			t.Errorf("Scoped() error = %v, want suppressed release error reachable", err)
		}
	})

	t.Run("Acquire", func(t *testing.T) {
		type res struct{ closed bool }
		r := &res{}
		err := sys.Scoped("acquire", func(sc *Scope) error {
			got, g, err := Acquire(sc, r, func(v *res) error {
				v.closed = true
				return nil
			})
			if err != nil {
				return err
			}
			if got != r || g == nil {
				t.Error("Acquire() did not return resource and guard")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Scoped() error: %v", err)
		}
		if !r.closed {
			t.Error("resource not released on scope exit")
		}
	})
}

// TestRegister_Facade 测试门面注册与显式触发
func TestRegister_Facade(t *testing.T) {
	sys := startTestSubsystem(t)

	var ran atomic.Int32
	obj := new(int)
	reg, err := sys.Register(obj, func() error {
		ran.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	// 重复注册被拒绝
	if _, err := sys.Register(obj, func() error { return nil }); !errors.Is(err, ErrDoubleRegistration) {
		t.Errorf("duplicate Register() error = %v, want ErrDoubleRegistration", err)
	}

	// 显式触发
	if err := reg.RunNow(); err != nil {
		t.Errorf("RunNow() error: %v", err)
	}
	if err := reg.RunNow(); err != nil {
		t.Errorf("second RunNow() error: %v", err)
	}
	if got := ran.Load(); got != 1 {
		t.Errorf("action ran %d times, want 1", got)
	}
	if got := reg.Trigger(); got != TriggerExplicit {
		t.Errorf("Trigger() = %v, want explicit", got)
	}

	stats, err := sys.Stats()
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if stats.Registry.RanExplicit != 1 {
		t.Errorf("RanExplicit = %d, want 1", stats.Registry.RanExplicit)
	}
}

// TestManualReclaim_Facade 测试手动通知器经门面触发安全网
func TestManualReclaim_Facade(t *testing.T) {
	manual := NewManualReclaim()
	sys := startTestSubsystem(t, WithNotifier(manual))

	var ran atomic.Int32
	obj := new(int)
	if _, err := sys.Register(obj, func() error {
		ran.Add(1)
		return nil
	}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	// ForceReclaim 在手动模式下触发全部待命监视
	if n := sys.ForceReclaim(); n != 1 {
		t.Errorf("ForceReclaim() = %d, want 1", n)
	}
	waitFor(t, time.Second, func() bool { return ran.Load() == 1 },
		"cleanup action not executed after manual trigger")

	waitFor(t, time.Second, func() bool {
		s, _ := sys.Stats()
		return s.Registry.RanUnreachable == 1
	}, "unreachable run not counted")
}

// TestOnCleanupFailure 测试清理失败回调
func TestOnCleanupFailure(t *testing.T) {
	manual := NewManualReclaim()
	sys := startTestSubsystem(t, WithNotifier(manual))

	var got atomic.Value
	cancel := sys.OnCleanupFailure(func(evt EvtCleanupRan) {
		got.Store(evt)
	})
	defer cancel()

	boom := errors.New("teardown failed")
	obj := new(int)
	if _, err := sys.Register(obj, func() error { return boom }); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	manual.TriggerAll()

	waitFor(t, time.Second, func() bool { return got.Load() != nil },
		"cleanup failure callback not invoked")
	evt := got.Load().(EvtCleanupRan)
	if !errors.Is(evt.Err, boom) {
		t.Errorf("evt.Err = %v, want teardown failure", evt.Err)
	}
	if evt.Trigger != TriggerUnreachable {
		t.Errorf("evt.Trigger = %v, want unreachable", evt.Trigger)
	}
}

// TestOnGuardReleased 测试守卫释放回调
func TestOnGuardReleased(t *testing.T) {
	sys := startTestSubsystem(t)

	var events atomic.Int32
	cancel := sys.OnGuardReleased(func(evt EvtGuardReleased) {
		events.Add(1)
	})
	defer cancel()

	err := sys.Scoped("observed", func(sc *Scope) error {
		_, _ = sc.Defer("one", func() error { return nil })
		_, _ = sc.Defer("two", func() error { return nil })
		return nil
	})
	if err != nil {
		t.Fatalf("Scoped() error: %v", err)
	}

	waitFor(t, time.Second, func() bool { return events.Load() == 2 },
		"guard release callbacks not invoked")
}

// TestNewCache_Facade 测试经门面创建弱引用容器
func TestNewCache_Facade(t *testing.T) {
	sys := startTestSubsystem(t, WithCachePolicy(config.CachePolicyLRU, 8))

	c, err := NewCache[string, int](sys)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}
	v := new(int)
	*v = 42
	if err := c.Put("answer", v); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if got, ok := c.Get("answer"); !ok || *got != 42 {
		t.Errorf("Get() = (%v, %v), want (42, true)", got, ok)
	}
	if c.StrongLen() != 1 {
		t.Errorf("StrongLen() = %d, want 1 (LRU policy from option)", c.StrongLen())
	}

	m, err := NewKeyMap[int, string](sys)
	if err != nil {
		t.Fatalf("NewKeyMap() error: %v", err)
	}
	key := new(int)
	if err := m.Put(key, "meta"); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if got, ok := m.Get(key); !ok || got != "meta" {
		t.Errorf("Get() = (%q, %v), want (meta, true)", got, ok)
	}
}

// TestPresets 测试预设配置映射
func TestPresets(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		want func(*config.Config) bool
	}{
		{
			name: "server",
			cfg:  GetServerConfig(),
			want: func(c *config.Config) bool {
				return c.Cleanup.MaxConcurrent == 16 && c.Metrics.Enabled
			},
		},
		{
			name: "test",
			cfg:  GetTestConfig(),
			want: func(c *config.Config) bool {
				return c.Reclaim.Mode == config.ReclaimModeManual
			},
		},
		{
			name: "minimal",
			cfg:  GetMinimalConfig(),
			want: func(c *config.Config) bool {
				return c.Cleanup.Shards == 4 && !c.Metrics.Enabled
			},
		},
		{
			name: "unknown falls back to default",
			cfg:  GetConfigByPreset("cloud"),
			want: func(c *config.Config) bool {
				return c.Cleanup.Shards == 16
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			if !tt.want(tt.cfg) {
				t.Errorf("preset %s config mismatch", tt.name)
			}
		})
	}

	if len(AvailablePresets()) != 3 {
		t.Errorf("AvailablePresets() len = %d, want 3", len(AvailablePresets()))
	}
}

// TestStartShortcut 测试快捷启动函数
func TestStartShortcut(t *testing.T) {
	sys, err := Start(context.Background(), WithReclaimMode(config.ReclaimModeManual))
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer func() { _ = sys.Close() }()

	if got := sys.State(); got != StateRunning {
		t.Errorf("State() = %v, want running", got)
	}
	if got := sys.Notifier().Name(); got != "manual" {
		t.Errorf("Notifier().Name() = %q, want manual", got)
	}
}

// TestVersionInfo 测试版本信息字符串
func TestVersionInfo(t *testing.T) {
	if VersionInfo() == "" {
		t.Error("VersionInfo() empty")
	}
}
