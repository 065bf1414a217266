// Package types 定义 go-lifecycle 的基础类型
//
// 本文件定义释放失败的错误链类型。
package types

import (
	"fmt"
	"strings"
)

// ============================================================================
//                              ReleaseError - 释放错误链
// ============================================================================

// ReleaseError 携带被抑制次级错误的释放失败
//
// 多资源回卷中，第一个失败（最靠近原始错误的那一个）作为主错误
// 直接链入，其余失败按发生顺序记录为被抑制错误，绝不覆盖主错误。
// 作用域主体先行失败时，主体错误即主错误，所有释放失败都被抑制。
//
// 实现 Unwrap() []error：errors.Is / errors.As 会遍历主错误与全部
// 被抑制错误，主错误始终位于首位。
type ReleaseError struct {
	primary    error
	suppressed []error
}

// NewReleaseError 构造释放错误链
//
// 参数:
//   - primary: 主错误；为 nil 时提升第一个被抑制错误为主错误
//   - suppressed: 被抑制的次级错误（按发生顺序）
//
// 返回:
//   - *ReleaseError: 错误链；主错误与次级错误全为空时返回 nil
func NewReleaseError(primary error, suppressed ...error) *ReleaseError {
	errs := make([]error, 0, len(suppressed))
	for _, err := range suppressed {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if primary == nil {
		if len(errs) == 0 {
			return nil
		}
		primary = errs[0]
		errs = errs[1:]
	}
	return &ReleaseError{primary: primary, suppressed: errs}
}

// Error 返回错误描述
//
// 格式：主错误在前，被抑制错误以分号分隔列出。
func (e *ReleaseError) Error() string {
	if len(e.suppressed) == 0 {
		return e.primary.Error()
	}
	msgs := make([]string, len(e.suppressed))
	for i, err := range e.suppressed {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%s (suppressed: %s)", e.primary, strings.Join(msgs, "; "))
}

// Unwrap 返回完整错误列表（主错误在首位）
func (e *ReleaseError) Unwrap() []error {
	errs := make([]error, 0, 1+len(e.suppressed))
	errs = append(errs, e.primary)
	errs = append(errs, e.suppressed...)
	return errs
}

// Primary 返回主错误
func (e *ReleaseError) Primary() error {
	return e.primary
}

// Suppressed 返回被抑制的次级错误（按发生顺序）
func (e *ReleaseError) Suppressed() []error {
	out := make([]error, len(e.suppressed))
	copy(out, e.suppressed)
	return out
}
