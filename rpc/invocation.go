package rpc

import "github.com/google/uuid"

// InvokeMode 调用模式.
type InvokeMode int

// 调用模式常量.
const (
	// InvokeSync 同步调用，调用方阻塞等待结果.
	InvokeSync InvokeMode = iota
	// InvokeAsync 异步调用，调用方不等待.
	InvokeAsync
	// InvokeFuture future 调用，调用方自行在结果上等待.
	InvokeFuture
)

// String 返回模式名.
func (m InvokeMode) String() string {
	switch m {
	case InvokeSync:
		return "sync"
	case InvokeAsync:
		return "async"
	case InvokeFuture:
		return "future"
	default:
		return "sync"
	}
}

// Invocation 一次在途调用的描述.
//
// 管道本身只读取调用模式，不修改 Invocation.
type Invocation interface {
	// ID 返回调用标识，用于日志与链路关联.
	ID() string
	// MethodName 返回目标方法名.
	MethodName() string
	// Arguments 返回调用参数.
	Arguments() []any
	// Attachment 返回附件值.
	Attachment(key string) (string, bool)
	// Attachments 返回全部附件.
	Attachments() map[string]string
	// Mode 返回调用模式.
	Mode() InvokeMode
}

// RPCInvocation Invocation 的标准实现.
type RPCInvocation struct {
	id          string
	method      string
	args        []any
	attachments map[string]string
	mode        InvokeMode
}

// NewInvocation 创建调用描述，默认同步模式.
func NewInvocation(method string, args ...any) *RPCInvocation {
	return &RPCInvocation{
		id:          uuid.NewString(),
		method:      method,
		args:        args,
		attachments: make(map[string]string),
		mode:        InvokeSync,
	}
}

// SetMode 设置调用模式.
func (i *RPCInvocation) SetMode(mode InvokeMode) *RPCInvocation {
	i.mode = mode
	return i
}

// SetAttachment 设置附件.
func (i *RPCInvocation) SetAttachment(key, value string) *RPCInvocation {
	i.attachments[key] = value
	return i
}

// ID 返回调用标识.
func (i *RPCInvocation) ID() string { return i.id }

// MethodName 返回目标方法名.
func (i *RPCInvocation) MethodName() string { return i.method }

// Arguments 返回调用参数.
func (i *RPCInvocation) Arguments() []any { return i.args }

// Attachment 返回附件值.
func (i *RPCInvocation) Attachment(key string) (string, bool) {
	v, ok := i.attachments[key]
	return v, ok
}

// Attachments 返回全部附件.
func (i *RPCInvocation) Attachments() map[string]string { return i.attachments }

// Mode 返回调用模式.
func (i *RPCInvocation) Mode() InvokeMode { return i.mode }
