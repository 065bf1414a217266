package weakcache

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/dep2p/go-lifecycle/internal/core/reclaim"
	"github.com/dep2p/go-lifecycle/pkg/types"
)

// session 测试用键/值对象
type session struct {
	id  string
	buf []byte
}

// newSession 构造测试对象,强制堆分配
func newSession(id string) *session {
	return &session{id: id, buf: make([]byte, 64)}
}

// TestKeyMapBasic 测试弱键表基本操作
func TestKeyMapBasic(t *testing.T) {
	m := NewKeyMap[session, string](WithNotifier(reclaim.NewManual()))

	k1 := newSession("k1")
	k2 := newSession("k2")

	if err := m.Put(k1, "meta-1"); err != nil {
		t.Fatalf("Put(k1) error = %v", err)
	}
	if err := m.Put(k2, "meta-2"); err != nil {
		t.Fatalf("Put(k2) error = %v", err)
	}
	if err := m.Put(nil, "bad"); !errors.Is(err, types.ErrNilKey) {
		t.Errorf("Put(nil) error = %v, want ErrNilKey", err)
	}

	if v, ok := m.Get(k1); !ok || v != "meta-1" {
		t.Errorf("Get(k1) = (%q, %v), want (meta-1, true)", v, ok)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}

	// 同键重复 Put 只更新值
	if err := m.Put(k1, "meta-1b"); err != nil {
		t.Fatalf("重复 Put(k1) error = %v", err)
	}
	if v, _ := m.Get(k1); v != "meta-1b" {
		t.Errorf("更新后 Get(k1) = %q, want meta-1b", v)
	}
	if m.Len() != 2 {
		t.Errorf("更新后 Len() = %d, want 2", m.Len())
	}

	if v, ok := m.Remove(k1); !ok || v != "meta-1b" {
		t.Errorf("Remove(k1) = (%q, %v), want (meta-1b, true)", v, ok)
	}
	if _, ok := m.Get(k1); ok {
		t.Error("删除后 Get(k1) 仍命中")
	}
	if _, ok := m.Remove(k1); ok {
		t.Error("重复 Remove(k1) = true, want false")
	}
	runtime.KeepAlive(k1)
	runtime.KeepAlive(k2)
}

// TestKeyMapEviction 测试键死亡后条目清除
func TestKeyMapEviction(t *testing.T) {
	manual := reclaim.NewManual()
	m := NewKeyMap[session, int](WithNotifier(manual))

	k := newSession("dying")
	if err := m.Put(k, 7); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	// 模拟键不可达
	if got := manual.Trigger(k); got != 1 {
		t.Fatalf("Trigger() = %d, want 1", got)
	}
	if m.Len() != 0 {
		t.Errorf("清除后 Len() = %d, want 0", m.Len())
	}
	if got := m.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}

	// Remove 解除监视,触发不再清除
	k2 := newSession("removed")
	if err := m.Put(k2, 8); err != nil {
		t.Fatalf("Put(k2) error = %v", err)
	}
	m.Remove(k2)
	if got := manual.Trigger(k2); got != 0 {
		t.Errorf("Remove 后 Trigger() = %d, want 0", got)
	}
	runtime.KeepAlive(k)
	runtime.KeepAlive(k2)
}

// TestKeyMapDoesNotRetainKeys 测试弱键表不延长键的生命周期
func TestKeyMapDoesNotRetainKeys(t *testing.T) {
	m := NewKeyMap[session, int]()

	const keys = 8
	for i := 0; i < keys; i++ {
		if err := m.Put(newSession("ephemeral"), i); err != nil {
			t.Fatalf("Put(%d) error = %v", i, err)
		}
	}
	if m.Len() != keys {
		t.Fatalf("Len() = %d, want %d", m.Len(), keys)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		runtime.GC()
		if m.Len() == 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got := m.Len(); got != 0 {
		t.Fatalf("键全部死亡后 Len() = %d, want 0 (表保留了强引用?)", got)
	}
	if got := m.Stats().Evictions; got != keys {
		t.Errorf("Evictions = %d, want %d", got, keys)
	}
}

// TestKeyMapKeysSnapshot 测试存活键快照
func TestKeyMapKeysSnapshot(t *testing.T) {
	m := NewKeyMap[session, int](WithNotifier(reclaim.NewManual()))

	k1 := newSession("a")
	k2 := newSession("b")
	m.Put(k1, 1)
	m.Put(k2, 2)

	keys := m.Keys()
	if len(keys) != 2 {
		t.Fatalf("Keys() 数量 = %d, want 2", len(keys))
	}
	seen := map[*session]bool{}
	for _, k := range keys {
		seen[k] = true
	}
	if !seen[k1] || !seen[k2] {
		t.Error("Keys() 快照缺少存活键")
	}
	runtime.KeepAlive(k1)
	runtime.KeepAlive(k2)
}

// TestKeyMapPurge 测试整表清空
func TestKeyMapPurge(t *testing.T) {
	manual := reclaim.NewManual()
	m := NewKeyMap[session, int](WithNotifier(manual))

	k1 := newSession("a")
	k2 := newSession("b")
	m.Put(k1, 1)
	m.Put(k2, 2)

	m.Purge()
	if m.Len() != 0 {
		t.Errorf("Purge 后 Len() = %d, want 0", m.Len())
	}
	// 监视已全部解除
	if got := manual.Pending(); got != 0 {
		t.Errorf("Purge 后 Pending() = %d, want 0", got)
	}
	runtime.KeepAlive(k1)
	runtime.KeepAlive(k2)
}
