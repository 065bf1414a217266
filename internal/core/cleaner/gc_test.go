package cleaner

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-lifecycle/internal/core/reclaim"
)

// TestGCTriggersCleanup 测试真实垃圾回收驱动的安全网
//
// 对象丢弃最后一个强引用后,反复触发 GC,
// 清理动作最终必须经不可达路径执行。
func TestGCTriggersCleanup(t *testing.T) {
	r := New(WithNotifier(reclaim.Runtime()))
	defer r.Close()

	var ran atomic.Bool
	register := func() {
		conn := newTestConn()
		if _, err := r.Register(conn, func() error {
			ran.Store(true)
			return nil
		}); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}
	register()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		runtime.GC()
		if ran.Load() {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if !ran.Load() {
		t.Fatal("对象回收后安全网未执行清理动作")
	}

	waitFor(t, 2*time.Second, func() bool {
		return r.Stats().RanUnreachable == 1
	}, "RanUnreachable 未计数")
}

// TestRegistryDoesNotRetainWatched 测试注册表不强持有被观察对象
//
// 注册本身不能阻止对象被回收:注册后不再引用对象,
// GC 必须仍然能够回收它并触发安全网。
func TestRegistryDoesNotRetainWatched(t *testing.T) {
	r := New(WithNotifier(reclaim.Runtime()))
	defer r.Close()

	const objects = 16
	var ran atomic.Int64
	for i := 0; i < objects; i++ {
		conn := newTestConn()
		if _, err := r.Register(conn, func() error {
			ran.Add(1)
			return nil
		}); err != nil {
			t.Fatalf("Register(%d) error = %v", i, err)
		}
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		runtime.GC()
		if ran.Load() == objects {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got := ran.Load(); got != objects {
		t.Fatalf("回收触发的清理数 = %d, want %d (注册表保留了强引用?)", got, objects)
	}
}

// TestReclaimNudge 测试垃圾回收助推
//
// 不手动触发 GC,只推进 mock 时钟:执行器按周期主动触发回收,
// 不可达对象的清理动作最终执行。
func TestReclaimNudge(t *testing.T) {
	mock := clock.NewMock()
	r := New(
		WithNotifier(reclaim.Runtime()),
		WithClock(mock),
		WithReclaimInterval(time.Minute),
	)
	defer r.Close()

	var ran atomic.Bool
	func() {
		conn := newTestConn()
		if _, err := r.Register(conn, func() error {
			ran.Store(true)
			return nil
		}); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}()

	// 给分发循环一点时间装好定时器,再按周期推进时钟
	time.Sleep(20 * time.Millisecond)
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		mock.Add(time.Minute)
		if ran.Load() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("时钟助推未带动安全网执行清理")
}
