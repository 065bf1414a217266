package weakcache

import (
	"fmt"

	arc "github.com/hashicorp/golang-lru/arc/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ============================================================================
//                              strongTier 强引用层
// ============================================================================

// strongTier 热点值保护层
//
// 持有最近使用值的强引用,防止热点对象在两次访问之间被回收。
// 从保护层淘汰不删除缓存条目,只是撤回保护;此后对象的存亡
// 重新完全交给调用方的引用与垃圾回收器。
type strongTier[K comparable, V any] interface {
	// Add 放入或刷新一个值的保护
	Add(key K, value *V)

	// Remove 撤回一个值的保护
	Remove(key K)

	// Purge 撤回全部保护
	Purge()

	// Len 返回受保护的值数量
	Len() int
}

// newStrongTier 按策略构造保护层
//
// 参数:
//   - policy: PolicyNone / PolicyLRU / PolicyARC
//   - capacity: 保护层容量
//
// 返回:
//   - strongTier[K, V]: PolicyNone 时为 nil
//   - error: 策略未知时返回错误
func newStrongTier[K comparable, V any](policy string, capacity int) (strongTier[K, V], error) {
	switch policy {
	case PolicyNone, "":
		return nil, nil
	case PolicyLRU:
		c, err := lru.New[K, *V](capacity)
		if err != nil {
			return nil, err
		}
		return lruTier[K, V]{c: c}, nil
	case PolicyARC:
		c, err := arc.NewARC[K, *V](capacity)
		if err != nil {
			return nil, err
		}
		return arcTier[K, V]{c: c}, nil
	default:
		return nil, fmt.Errorf("unknown strong tier policy: %q", policy)
	}
}

// lruTier LRU 策略保护层
type lruTier[K comparable, V any] struct {
	c *lru.Cache[K, *V]
}

func (t lruTier[K, V]) Add(key K, value *V) { t.c.Add(key, value) }
func (t lruTier[K, V]) Remove(key K)        { t.c.Remove(key) }
func (t lruTier[K, V]) Purge()              { t.c.Purge() }
func (t lruTier[K, V]) Len() int            { return t.c.Len() }

// arcTier ARC 策略保护层
type arcTier[K comparable, V any] struct {
	c *arc.ARCCache[K, *V]
}

func (t arcTier[K, V]) Add(key K, value *V) { t.c.Add(key, value) }
func (t arcTier[K, V]) Remove(key K)        { t.c.Remove(key) }
func (t arcTier[K, V]) Purge()              { t.c.Purge() }
func (t arcTier[K, V]) Len() int            { return t.c.Len() }
