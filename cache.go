package lifecycle

import (
	"github.com/dep2p/go-lifecycle/internal/core/weakcache"
)

// ════════════════════════════════════════════════════════════════════════════
//                              弱引用容器构造
// ════════════════════════════════════════════════════════════════════════════

// NewKeyMap 创建键索引容器
//
// 容器弱引用键：条目不会阻止键对象被回收，键回收后条目
// 最终自动消失。用于给对象挂载元数据而不延长其生命周期。
//
// 容器使用子系统的不可达通知器与缓存配置。
//
// 示例：
//
//	m, err := lifecycle.NewKeyMap[session, sessionMeta](sys)
//	m.Put(sess, meta)
func NewKeyMap[K any, V any](s *Subsystem) (*KeyMap[K, V], error) {
	f, err := s.factory()
	if err != nil {
		return nil, err
	}
	return weakcache.FactoryKeyMap[K, V](f), nil
}

// NewCache 创建值缓存
//
// 缓存弱引用值：Get 在值存活时命中，值被回收后未命中。
// 配置了强引用层策略时，热点值受保护不被回收。
//
// 示例：
//
//	c, err := lifecycle.NewCache[string, queryResult](sys)
//	c.Put("key", result)
func NewCache[K comparable, V any](s *Subsystem) (*Cache[K, V], error) {
	f, err := s.factory()
	if err != nil {
		return nil, err
	}
	return weakcache.FactoryValueCache[K, V](f)
}

// factory 返回缓存工厂
func (s *Subsystem) factory() (*weakcache.Factory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrSubsystemClosed
	}
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.cacheFactory, nil
}
