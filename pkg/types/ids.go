// Package types 定义 go-lifecycle 的基础类型
//
// 本文件定义资源与清理注册的标识类型。
package types

import (
	"encoding/binary"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// ============================================================================
//                              ResourceID - 资源标识
// ============================================================================

// ResourceID 资源唯一标识符
//
// 不透明标识，由 UUID 派生。资源本身的语义（文件句柄、连接、
// 原生缓冲区）由调用方定义，子系统只负责释放时机。
//
// 用途：
//   - 日志中标识被管理的资源
//   - 诊断快照中关联 Guard 与资源
type ResourceID string

// NewResourceID 生成新的资源标识
func NewResourceID() ResourceID {
	return ResourceID(uuid.New().String())
}

// String 返回资源标识的字符串表示
func (id ResourceID) String() string {
	return string(id)
}

// ShortString 返回资源标识的简短表示
//
// 格式：前 8 个字符，用于日志中的简短标识。
func (id ResourceID) ShortString() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// IsEmpty 检查资源标识是否为空
func (id ResourceID) IsEmpty() bool {
	return id == ""
}

// Equal 比较两个资源标识是否相等
func (id ResourceID) Equal(other ResourceID) bool {
	return id == other
}

// ============================================================================
//                              RegistrationID - 注册标识
// ============================================================================

// RegistrationID 清理注册的唯一标识符
//
// 由注册表内部单调递增分配，进程内唯一。
// 字符串表示采用 Base58 编码（避免易混淆字符，便于日志检索）。
type RegistrationID uint64

// String 返回注册标识的 Base58 字符串表示
func (id RegistrationID) String() string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(id))
	return base58.Encode(buf[:])
}

// IsZero 检查注册标识是否为零值
//
// 零值表示"尚未分配"，注册表分配的标识从 1 开始。
func (id RegistrationID) IsZero() bool {
	return id == 0
}

// ParseRegistrationID 从 Base58 字符串解析注册标识
//
// 参数:
//   - s: Base58 编码的注册标识
//
// 返回:
//   - RegistrationID: 解析出的标识
//   - error: 字符串非法时返回 ErrInvalidRegistrationID
func ParseRegistrationID(s string) (RegistrationID, error) {
	if s == "" {
		return 0, ErrInvalidRegistrationID
	}
	b, err := base58.Decode(s)
	if err != nil || len(b) != 8 {
		return 0, ErrInvalidRegistrationID
	}
	return RegistrationID(binary.BigEndian.Uint64(b)), nil
}
