// Package testutil 提供测试辅助工具
package testutil

import (
	"sync"
	"sync/atomic"
	"time"
)

// 测试数据固件
//
// 提供测试中常用的常量与构件，确保测试一致性。

const (
	// DefaultScopeName 默认测试作用域名称
	DefaultScopeName = "test-scope"

	// DefaultReclaimTimeout 等待不可达清理生效的默认超时
	DefaultReclaimTimeout = 5 * time.Second
)

// CountingAction 可计数的清理动作
//
// Fn 每执行一次计数加一，用于验证至多一次执行语义。
type CountingAction struct {
	runs atomic.Int64
	err  error
}

// NewCountingAction 创建计数动作
//
// 参数:
//   - err: 动作返回的错误（nil 表示成功）
func NewCountingAction(err error) *CountingAction {
	return &CountingAction{err: err}
}

// Fn 返回动作函数
func (a *CountingAction) Fn() func() error {
	return func() error {
		a.runs.Add(1)
		return a.err
	}
}

// Runs 返回累计执行次数
func (a *CountingAction) Runs() int64 {
	return a.runs.Load()
}

// ReleaseOrder 记录释放顺序的收集器
//
// 并发安全，用于验证 LIFO 释放顺序。
type ReleaseOrder struct {
	mu    sync.Mutex
	order []string
}

// NewReleaseOrder 创建释放顺序收集器
func NewReleaseOrder() *ReleaseOrder {
	return &ReleaseOrder{}
}

// Release 返回一个记录 name 的释放函数
func (r *ReleaseOrder) Release(name string) func() error {
	return func() error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.order = append(r.order, name)
		return nil
	}
}

// Order 返回已记录的释放顺序快照
func (r *ReleaseOrder) Order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
