package weakcache

import (
	"sync"
	"sync/atomic"
	"weak"

	"golang.org/x/exp/maps"

	pkgif "github.com/dep2p/go-lifecycle/pkg/interfaces"
	"github.com/dep2p/go-lifecycle/pkg/types"
)

// ============================================================================
//                              ValueCache 弱值缓存
// ============================================================================

// vcEntry 缓存条目
type vcEntry[V any] struct {
	wp weak.Pointer[V]

	// gen 换绑代数:同一个键重新 Put 后递增,
	// 过期的死亡回调凭代数匹配失败后空操作返回
	gen uint64

	cancel pkgif.CancelFunc
}

// ValueCache 值弱持有的缓存
//
// 键是普通值(如 ID),值为堆对象;缓存不延长值的生命周期,
// 对象不可达后条目最终被清除。可选强引用层保护热点值。
type ValueCache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]*vcEntry[V]
	genSeq  uint64

	strong strongTier[K, V]

	notifier pkgif.ReclaimNotifier
	metrics  pkgif.MetricsReporter

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// NewValueCache 创建弱值缓存
//
// 参数:
//   - opts: 容器选项
//
// 返回:
//   - *ValueCache[K, V]: 新缓存实例
//   - error: 强引用层构造失败时返回错误
func NewValueCache[K comparable, V any](opts ...Option) (*ValueCache[K, V], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	strong, err := newStrongTier[K, V](o.policy, o.strongCapacity)
	if err != nil {
		return nil, err
	}
	return &ValueCache[K, V]{
		entries:  make(map[K]*vcEntry[V]),
		strong:   strong,
		notifier: o.notifier,
		metrics:  o.metrics,
	}, nil
}

// Put 放入或换绑一个值
//
// 键已存在时旧绑定被替换:旧监视解除,旧值的存亡不再影响条目。
//
// 参数:
//   - key: 缓存键
//   - value: 值对象,必须是非 nil 指针
//
// 返回:
//   - error: value 为 nil 时返回 types.ErrNilValue
func (c *ValueCache[K, V]) Put(key K, value *V) error {
	if value == nil {
		return types.ErrNilValue
	}

	c.mu.Lock()
	c.genSeq++
	gen := c.genSeq
	var oldCancel pkgif.CancelFunc
	if old, ok := c.entries[key]; ok {
		oldCancel = old.cancel
	}
	entry := &vcEntry[V]{wp: weak.Make(value), gen: gen}
	c.entries[key] = entry
	c.mu.Unlock()

	if oldCancel != nil {
		oldCancel()
	}

	// 回调凭(键,代数)定位条目,不捕获值对象
	cancel, err := c.notifier.Watch(value, func() { c.evict(key, gen) })
	if err != nil {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && cur.gen == gen {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	if cur, ok := c.entries[key]; ok && cur.gen == gen {
		cur.cancel = cancel
		c.mu.Unlock()
		if c.strong != nil {
			c.strong.Add(key, value)
		}
	} else {
		// 条目在装配监视期间已被换绑或移除
		c.mu.Unlock()
		cancel()
	}
	return nil
}

// Get 按键查询值
//
// 值已死亡但清除回调尚未执行时按未命中处理,条目顺手清除。
// 命中会刷新强引用层的保护。
//
// 参数:
//   - key: 缓存键
//
// 返回:
//   - *V: 值对象
//   - bool: 命中时为 true
func (c *ValueCache[K, V]) Get(key K) (*V, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		c.miss()
		return nil, false
	}

	value := entry.wp.Value()
	if value == nil {
		// 死值条目,顺手清除
		c.evict(key, entry.gen)
		c.miss()
		return nil, false
	}

	c.hits.Add(1)
	if c.metrics != nil {
		c.metrics.CacheHit()
	}
	if c.strong != nil {
		c.strong.Add(key, value)
	}
	return value, true
}

// Remove 删除键的绑定
//
// 参数:
//   - key: 缓存键
//
// 返回:
//   - bool: 键存在时为 true
func (c *ValueCache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return false
	}
	delete(c.entries, key)
	c.mu.Unlock()

	if entry.cancel != nil {
		entry.cancel()
	}
	if c.strong != nil {
		c.strong.Remove(key)
	}
	return true
}

// Len 返回当前条目数
//
// 近似值:包含值已死亡但清除回调尚未执行的条目。
func (c *ValueCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys 返回当前存活值对应键的快照
func (c *ValueCache[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]K, 0, len(c.entries))
	for key, entry := range c.entries {
		if entry.wp.Value() != nil {
			keys = append(keys, key)
		}
	}
	return keys
}

// Purge 清空全部条目并解除监视
func (c *ValueCache[K, V]) Purge() {
	c.mu.Lock()
	entries := maps.Values(c.entries)
	c.entries = make(map[K]*vcEntry[V])
	c.mu.Unlock()

	for _, entry := range entries {
		if entry.cancel != nil {
			entry.cancel()
		}
	}
	if c.strong != nil {
		c.strong.Purge()
	}
}

// StrongLen 返回强引用层当前保护的值数量
func (c *ValueCache[K, V]) StrongLen() int {
	if c.strong == nil {
		return 0
	}
	return c.strong.Len()
}

// Stats 返回统计快照
func (c *ValueCache[K, V]) Stats() types.CacheStats {
	return types.CacheStats{
		Len:       c.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// miss 未命中计数
func (c *ValueCache[K, V]) miss() {
	c.misses.Add(1)
	if c.metrics != nil {
		c.metrics.CacheMiss()
	}
}

// evict 值死亡回调
//
// 只清除代数匹配的条目:键已换绑新值时过期回调空操作返回。
func (c *ValueCache[K, V]) evict(key K, gen uint64) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if !ok || entry.gen != gen {
		c.mu.Unlock()
		return
	}
	delete(c.entries, key)
	c.mu.Unlock()

	if entry.cancel != nil {
		entry.cancel()
	}
	if c.strong != nil {
		c.strong.Remove(key)
	}
	c.evictions.Add(1)
	if c.metrics != nil {
		c.metrics.CacheEvicted()
	}
	logger.Debug("弱值条目已清除")
}
