package rpc

import "context"

// Invoker 可调用端点.
//
// 既可以是真实的业务/网络实现，也可以是包装它的装饰器
// （过滤器节点、同步适配器）。装饰器把身份、地址、存活与释放
// 全部委托给被包装的端点，自身不持有网络资源.
type Invoker interface {
	// Interface 返回服务接口名.
	Interface() string
	// URL 返回端点地址.
	URL() *URL
	// Invoke 执行一次调用，返回可能尚未完成的结果.
	Invoke(ctx context.Context, inv Invocation) (Result, error)
	// Available 报告端点是否可用.
	Available() bool
	// Release 释放端点资源，约定幂等，并沿包装链级联一次.
	Release()
}

// Exporter 一次服务导出的句柄.
type Exporter interface {
	// Invoker 返回被导出的端点.
	Invoker() Invoker
	// Unexport 撤销导出.
	Unexport()
}

// ProtocolServer 协议持有的服务器.
type ProtocolServer interface {
	// Address 返回监听地址.
	Address() string
}

// Protocol 协议契约.
//
// 装饰器（如过滤器链包装）必须原样保持该契约.
type Protocol interface {
	// DefaultPort 返回协议默认端口.
	DefaultPort() int
	// Export 导出服务端点.
	Export(invoker Invoker) (Exporter, error)
	// Refer 引用远程服务，返回可调用端点.
	Refer(iface string, url *URL) (Invoker, error)
	// Release 释放协议资源.
	Release()
	// Servers 返回协议持有的服务器列表.
	Servers() []ProtocolServer
}
