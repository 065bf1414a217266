package weakcache

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/dep2p/go-lifecycle/internal/core/reclaim"
	"github.com/dep2p/go-lifecycle/pkg/types"
)

// TestValueCacheBasic 测试弱值缓存基本操作
func TestValueCacheBasic(t *testing.T) {
	c, err := NewValueCache[string, session](WithNotifier(reclaim.NewManual()))
	if err != nil {
		t.Fatalf("NewValueCache() error = %v", err)
	}

	v1 := newSession("v1")
	if err := c.Put("a", v1); err != nil {
		t.Fatalf("Put(a) error = %v", err)
	}
	if err := c.Put("bad", nil); !errors.Is(err, types.ErrNilValue) {
		t.Errorf("Put(nil) error = %v, want ErrNilValue", err)
	}

	if got, ok := c.Get("a"); !ok || got != v1 {
		t.Errorf("Get(a) = (%p, %v), want (%p, true)", got, ok, v1)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) 命中")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	if !c.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if c.Remove("a") {
		t.Error("重复 Remove(a) = true, want false")
	}

	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Errorf("Stats() = %+v, want Hits=1 Misses=1", st)
	}
	runtime.KeepAlive(v1)
}

// TestValueCacheEviction 测试值死亡后条目清除
func TestValueCacheEviction(t *testing.T) {
	manual := reclaim.NewManual()
	c, err := NewValueCache[string, session](WithNotifier(manual))
	if err != nil {
		t.Fatalf("NewValueCache() error = %v", err)
	}

	v := newSession("dying")
	if err := c.Put("k", v); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if got := manual.Trigger(v); got != 1 {
		t.Fatalf("Trigger() = %d, want 1", got)
	}
	if c.Len() != 0 {
		t.Errorf("清除后 Len() = %d, want 0", c.Len())
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
	runtime.KeepAlive(v)
}

// TestValueCacheRebindCancelsOldWatch 测试换绑解除旧监视
func TestValueCacheRebindCancelsOldWatch(t *testing.T) {
	manual := reclaim.NewManual()
	c, err := NewValueCache[string, session](WithNotifier(manual))
	if err != nil {
		t.Fatalf("NewValueCache() error = %v", err)
	}

	v1 := newSession("old")
	v2 := newSession("new")
	if err := c.Put("k", v1); err != nil {
		t.Fatalf("Put(v1) error = %v", err)
	}
	if err := c.Put("k", v2); err != nil {
		t.Fatalf("Put(v2) error = %v", err)
	}

	// 旧值监视已解除,触发不影响新绑定
	if got := manual.Trigger(v1); got != 0 {
		t.Errorf("换绑后 Trigger(v1) = %d, want 0", got)
	}
	if got, ok := c.Get("k"); !ok || got != v2 {
		t.Errorf("Get(k) = (%p, %v), want 新值 %p", got, ok, v2)
	}
	runtime.KeepAlive(v1)
	runtime.KeepAlive(v2)
}

// TestValueCacheStaleEvictIgnored 测试过期死亡回调的代数防护
func TestValueCacheStaleEvictIgnored(t *testing.T) {
	c, err := NewValueCache[string, session](WithNotifier(reclaim.NewManual()))
	if err != nil {
		t.Fatalf("NewValueCache() error = %v", err)
	}

	v1 := newSession("gen1")
	v2 := newSession("gen2")
	if err := c.Put("k", v1); err != nil {
		t.Fatalf("Put(v1) error = %v", err)
	}
	c.mu.RLock()
	oldGen := c.entries["k"].gen
	c.mu.RUnlock()

	if err := c.Put("k", v2); err != nil {
		t.Fatalf("Put(v2) error = %v", err)
	}

	// 携带旧代数的回调必须空操作
	c.evict("k", oldGen)
	if got, ok := c.Get("k"); !ok || got != v2 {
		t.Error("过期回调清除了新绑定")
	}
	if got := c.Stats().Evictions; got != 0 {
		t.Errorf("Evictions = %d, want 0", got)
	}

	// 当前代数的回调正常清除
	c.mu.RLock()
	curGen := c.entries["k"].gen
	c.mu.RUnlock()
	c.evict("k", curGen)
	if c.Len() != 0 {
		t.Errorf("清除后 Len() = %d, want 0", c.Len())
	}
	runtime.KeepAlive(v1)
	runtime.KeepAlive(v2)
}

// TestValueCacheLazyEvictOnGet 测试死值条目的顺手清除
//
// 通知器降级(永不回调)时,死亡对象的条目只能靠 Get 清除:
// 弱指针已失效,按未命中处理并计一次清除。
func TestValueCacheLazyEvictOnGet(t *testing.T) {
	c, err := NewValueCache[string, session](WithNotifier(reclaim.Disabled()))
	if err != nil {
		t.Fatalf("NewValueCache() error = %v", err)
	}

	if err := c.Put("k", newSession("ephemeral")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		runtime.GC()
		if _, ok := c.Get("k"); !ok {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if _, ok := c.Get("k"); ok {
		t.Fatal("值死亡后 Get 仍命中")
	}
	if c.Len() != 0 {
		t.Errorf("顺手清除后 Len() = %d, want 0", c.Len())
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

// TestValueCacheStrongTierKeepsHotValues 测试强引用层保护热点值
//
// 容量 2 的 LRU 层只保护最后放入的两个值:第一个值失去保护后
// 被回收清除,后两个值在不持外部引用的情况下仍然存活可取。
func TestValueCacheStrongTierKeepsHotValues(t *testing.T) {
	c, err := NewValueCache[string, session](
		WithPolicy(PolicyLRU),
		WithStrongCapacity(2),
	)
	if err != nil {
		t.Fatalf("NewValueCache() error = %v", err)
	}

	for _, key := range []string{"a", "b", "c"} {
		if err := c.Put(key, newSession(key)); err != nil {
			t.Fatalf("Put(%s) error = %v", key, err)
		}
	}
	if got := c.StrongLen(); got != 2 {
		t.Fatalf("StrongLen() = %d, want 2", got)
	}

	// a 已失去保护,等待回收清除
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		runtime.GC()
		if c.Len() == 2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got := c.Len(); got != 2 {
		t.Fatalf("失保值未被清除, Len() = %d, want 2", got)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("失保值 Get(a) 仍命中")
	}

	// b、c 受强引用层保护,反复 GC 后仍然存活
	if v, ok := c.Get("b"); !ok || v.id != "b" {
		t.Errorf("Get(b) = (%v, %v), want 命中", v, ok)
	}
	if v, ok := c.Get("c"); !ok || v.id != "c" {
		t.Errorf("Get(c) = (%v, %v), want 命中", v, ok)
	}
}

// TestValueCacheARCPolicy 测试 ARC 策略构造与基本操作
func TestValueCacheARCPolicy(t *testing.T) {
	c, err := NewValueCache[string, session](
		WithNotifier(reclaim.NewManual()),
		WithPolicy(PolicyARC),
		WithStrongCapacity(4),
	)
	if err != nil {
		t.Fatalf("NewValueCache(arc) error = %v", err)
	}

	v := newSession("arc")
	if err := c.Put("k", v); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if got, ok := c.Get("k"); !ok || got != v {
		t.Error("ARC 策略下 Get 未命中")
	}
	if c.StrongLen() != 1 {
		t.Errorf("StrongLen() = %d, want 1", c.StrongLen())
	}

	c.Purge()
	if c.Len() != 0 || c.StrongLen() != 0 {
		t.Errorf("Purge 后 Len=%d StrongLen=%d, want 0 0", c.Len(), c.StrongLen())
	}
	runtime.KeepAlive(v)
}

// TestValueCacheUnknownPolicy 测试未知策略被拒绝
func TestValueCacheUnknownPolicy(t *testing.T) {
	if _, err := NewValueCache[string, session](WithPolicy("bogus")); err == nil {
		t.Fatal("NewValueCache(bogus) error = nil, want 错误")
	}
}
