package rpc

import (
	"errors"
	"fmt"
)

// 预定义错误.
var (
	// ErrInvalidURL URL 无法解析.
	ErrInvalidURL = errors.New("rpc: URL 无效")

	// ErrWaitExpired 同步等待超出上限.
	ErrWaitExpired = errors.New("rpc: 等待调用结果超出同步等待上限")

	// ErrTimeout 传输层超时哨兵错误.
	//
	// 传输层在调用超时时用它包装失败原因（Fail 时 %w 包装），
	// 适配层据此把失败归类为 CodeTimeout.
	ErrTimeout = errors.New("rpc: 调用超时")

	// ErrNetwork 传输层网络故障哨兵错误.
	ErrNetwork = errors.New("rpc: 网络故障")
)

// ErrorCode 故障分类.
type ErrorCode int

// 故障分类常量.
const (
	// CodeGeneric 通用故障（等待被中断等）.
	CodeGeneric ErrorCode = iota
	// CodeTimeout 远程调用超时.
	CodeTimeout
	// CodeNetwork 网络/传输故障.
	CodeNetwork
	// CodeUnknown 未知故障.
	CodeUnknown
)

// String 返回分类名.
func (c ErrorCode) String() string {
	switch c {
	case CodeGeneric:
		return "GENERIC"
	case CodeTimeout:
		return "TIMEOUT"
	case CodeNetwork:
		return "NETWORK"
	case CodeUnknown:
		return "UNKNOWN"
	default:
		return "GENERIC"
	}
}

// Error 带分类的调用故障.
//
// 同步调用方最终收到的故障一定携带方法名与目标地址，便于定位.
type Error struct {
	Code    ErrorCode
	Method  string
	URL     string
	Message string
	Cause   error
}

// NewError 创建调用故障.
func NewError(code ErrorCode, method, url, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Method:  method,
		URL:     url,
		Message: message,
		Cause:   cause,
	}
}

// Error 实现 error 接口.
func (e *Error) Error() string {
	msg := fmt.Sprintf("rpc: [%s] %s, method: %s, provider: %s", e.Code, e.Message, e.Method, e.URL)
	if e.Cause != nil {
		msg += ", cause: " + e.Cause.Error()
	}
	return msg
}

// Unwrap 返回底层原因.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsTimeout 判断错误是否为超时故障.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeTimeout
}

// IsNetwork 判断错误是否为网络故障.
func IsNetwork(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeNetwork
}
