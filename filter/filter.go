// Package filter 提供过滤器契约与显式的过滤器注册表.
//
// 注册表取代运行时扩展发现：过滤器按名字显式注册，
// 选择与排序完全由 (URL, 选择键, 分组, 注册快照) 决定.
package filter

import (
	"context"

	"github.com/Tsukikage7/rpc-kit/rpc"
)

// 选择键常量，URL 参数中用它点名过滤器.
const (
	// ServiceFilterKey 服务端（导出）过滤器选择键.
	ServiceFilterKey = "service.filter"
	// ReferenceFilterKey 消费端（引用）过滤器选择键.
	ReferenceFilterKey = "reference.filter"
)

// 分组常量.
const (
	// GroupProvider 服务提供方.
	GroupProvider = "provider"
	// GroupConsumer 服务消费方.
	GroupConsumer = "consumer"
)

// Filter 横切过滤器.
//
// 过滤器可以零次或多次调用 next.Invoke（短路、透传），
// 也可以对返回的结果做后处理。同一个过滤器实例被导出/引用的
// 端点上的所有并发调用共享，实现必须并发安全.
type Filter interface {
	Invoke(ctx context.Context, next rpc.Invoker, inv rpc.Invocation) (rpc.Result, error)
}

// Func 函数式 Filter 适配器.
type Func func(ctx context.Context, next rpc.Invoker, inv rpc.Invocation) (rpc.Result, error)

// Invoke 实现 Filter 接口.
func (f Func) Invoke(ctx context.Context, next rpc.Invoker, inv rpc.Invocation) (rpc.Result, error) {
	return f(ctx, next, inv)
}
