package cleaner

import (
	"context"
	"testing"

	"go.uber.org/fx"

	"github.com/dep2p/go-lifecycle/internal/core/reclaim"
	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

// TestModule_Load 测试 Fx 模块加载
func TestModule_Load(t *testing.T) {
	var loaded pkgif.CleanupRegistry

	app := fx.New(
		reclaim.Module(),
		Module(),
		fx.Invoke(func(r pkgif.CleanupRegistry) {
			loaded = r
		}),
		fx.NopLogger,
	)

	ctx := context.Background()

	// 启动应用
	if err := app.Start(ctx); err != nil {
		t.Fatalf("app.Start() failed: %v", err)
	}

	// 验证注册表注入成功并可用
	if loaded == nil {
		t.Fatal("CleanupRegistry not injected by Fx")
	}
	conn := newTestConn()
	reg, err := loaded.Register(conn, func() error { return nil })
	if err != nil {
		t.Errorf("Register() error = %v", err)
	}
	if err := reg.RunNow(); err != nil {
		t.Errorf("RunNow() error = %v", err)
	}

	// 停止应用(OnStop 关闭注册表)
	if err := app.Stop(ctx); err != nil {
		t.Errorf("app.Stop() failed: %v", err)
	}
	if _, err := loaded.Register(newTestConn(), func() error { return nil }); err == nil {
		t.Error("停止后注册表仍接受新注册")
	}
}

// TestModule_Provides 测试模块提供的类型
func TestModule_Provides(t *testing.T) {
	result := ProvideRegistry(Params{Notifier: reclaim.NewManual()})
	if result.Registry == nil {
		t.Fatal("ProvideRegistry() did not provide Registry")
	}
	if err := result.Registry.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
