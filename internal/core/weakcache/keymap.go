package weakcache

import (
	"sync"
	"sync/atomic"
	"weak"

	"golang.org/x/exp/maps"

	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
	"github.com/dep2p/go-lifecycle/pkg/lib/log"
	"github.com/dep2p/go-lifecycle/pkg/types"
)

var logger = log.Logger("core/weakcache")

// ============================================================================
//                              KeyMap 弱键关联表
// ============================================================================

// KeyMap 键弱持有的关联表
//
// 以存活对象为键挂载附属数据,表本身不延长键的生命周期:
// 键不可达后条目最终被清除。死对象与新对象的弱指针永不相等,
// 地址复用不会造成串台。
type KeyMap[K any, V any] struct {
	mu      sync.RWMutex
	entries map[weak.Pointer[K]]V
	cancels map[weak.Pointer[K]]pkgif.CancelFunc

	notifier pkgif.ReclaimNotifier
	metrics  pkgif.MetricsReporter

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// NewKeyMap 创建弱键关联表
//
// 参数:
//   - opts: 容器选项(强引用层选项被忽略)
//
// 返回:
//   - *KeyMap[K, V]: 新关联表实例
func NewKeyMap[K any, V any](opts ...Option) *KeyMap[K, V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &KeyMap[K, V]{
		entries:  make(map[weak.Pointer[K]]V),
		cancels:  make(map[weak.Pointer[K]]pkgif.CancelFunc),
		notifier: o.notifier,
		metrics:  o.metrics,
	}
}

// Put 关联键与值
//
// 键已存在时只更新值,不可达监视保持不变。
//
// 参数:
//   - key: 键对象,必须是非 nil 指针
//   - value: 附属数据
//
// 返回:
//   - error: key 为 nil 时返回 types.ErrNilKey
func (m *KeyMap[K, V]) Put(key *K, value V) error {
	if key == nil {
		return types.ErrNilKey
	}
	wp := weak.Make(key)

	m.mu.Lock()
	if _, ok := m.entries[wp]; ok {
		m.entries[wp] = value
		m.mu.Unlock()
		return nil
	}
	m.entries[wp] = value
	m.mu.Unlock()

	// 键死亡后按弱指针清除条目,回调只捕获弱指针
	cancel, err := m.notifier.Watch(key, func() { m.evict(wp) })
	if err != nil {
		m.mu.Lock()
		delete(m.entries, wp)
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	if _, ok := m.entries[wp]; !ok {
		// 条目在装配监视期间已被移除
		m.mu.Unlock()
		cancel()
		return nil
	}
	m.cancels[wp] = cancel
	m.mu.Unlock()
	return nil
}

// Get 按键查询附属数据
//
// 参数:
//   - key: 键对象
//
// 返回:
//   - V: 附属数据
//   - bool: 命中时为 true
func (m *KeyMap[K, V]) Get(key *K) (V, bool) {
	var zero V
	if key == nil {
		return zero, false
	}
	wp := weak.Make(key)

	m.mu.RLock()
	value, ok := m.entries[wp]
	m.mu.RUnlock()

	if !ok {
		m.misses.Add(1)
		if m.metrics != nil {
			m.metrics.CacheMiss()
		}
		return zero, false
	}
	m.hits.Add(1)
	if m.metrics != nil {
		m.metrics.CacheHit()
	}
	return value, true
}

// Remove 删除键的关联
//
// 参数:
//   - key: 键对象
//
// 返回:
//   - V: 被删除的附属数据
//   - bool: 键存在时为 true
func (m *KeyMap[K, V]) Remove(key *K) (V, bool) {
	var zero V
	if key == nil {
		return zero, false
	}
	wp := weak.Make(key)

	m.mu.Lock()
	value, ok := m.entries[wp]
	if !ok {
		m.mu.Unlock()
		return zero, false
	}
	delete(m.entries, wp)
	cancel := m.cancels[wp]
	delete(m.cancels, wp)
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	return value, true
}

// Len 返回当前条目数
//
// 近似值:包含键已死亡但清除回调尚未执行的条目。
func (m *KeyMap[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Keys 返回当前存活键的快照
//
// 返回:
//   - []*K: 快照时刻仍然可达的键
func (m *KeyMap[K, V]) Keys() []*K {
	m.mu.RLock()
	wps := maps.Keys(m.entries)
	m.mu.RUnlock()

	keys := make([]*K, 0, len(wps))
	for _, wp := range wps {
		if k := wp.Value(); k != nil {
			keys = append(keys, k)
		}
	}
	return keys
}

// Purge 清空全部条目并解除监视
func (m *KeyMap[K, V]) Purge() {
	m.mu.Lock()
	cancels := maps.Values(m.cancels)
	m.entries = make(map[weak.Pointer[K]]V)
	m.cancels = make(map[weak.Pointer[K]]pkgif.CancelFunc)
	m.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Stats 返回统计快照
func (m *KeyMap[K, V]) Stats() types.CacheStats {
	return types.CacheStats{
		Len:       m.Len(),
		Hits:      m.hits.Load(),
		Misses:    m.misses.Load(),
		Evictions: m.evictions.Load(),
	}
}

// evict 键死亡回调
func (m *KeyMap[K, V]) evict(wp weak.Pointer[K]) {
	m.mu.Lock()
	if _, ok := m.entries[wp]; !ok {
		m.mu.Unlock()
		return
	}
	delete(m.entries, wp)
	delete(m.cancels, wp)
	m.mu.Unlock()

	m.evictions.Add(1)
	if m.metrics != nil {
		m.metrics.CacheEvicted()
	}
	logger.Debug("弱键条目已清除")
}
