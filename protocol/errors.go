package protocol

import "errors"

// 预定义错误.
var (
	// ErrNilProtocol 被包装协议为空.
	ErrNilProtocol = errors.New("protocol: 协议不能为空")

	// ErrNilSelector 过滤器选择器为空.
	ErrNilSelector = errors.New("protocol: 过滤器选择器不能为空")

	// ErrNilBuilder 链构建器为空.
	ErrNilBuilder = errors.New("protocol: 链构建器不能为空")

	// ErrNilInvoker 被包装端点为空.
	ErrNilInvoker = errors.New("protocol: 端点不能为空")
)
