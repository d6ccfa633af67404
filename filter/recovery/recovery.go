// Package recovery 提供 panic 恢复过滤器.
package recovery

import (
	"context"
	"fmt"
	"runtime"

	"github.com/Tsukikage7/rpc-kit/filter"
	"github.com/Tsukikage7/rpc-kit/logger"
	"github.com/Tsukikage7/rpc-kit/rpc"
)

// Name 注册名.
const Name = "recovery"

// DefaultStackSize 默认堆栈捕获大小.
const DefaultStackSize = 4 << 10

// PanicError 被捕获的 panic.
type PanicError struct {
	Value any
	Stack []byte
}

// Error 实现 error 接口.
func (e *PanicError) Error() string {
	return fmt.Sprintf("recovery: 调用发生 panic: %v", e.Value)
}

// options 过滤器配置.
type options struct {
	logger    logger.Logger
	stackSize int
}

// Option 过滤器选项.
type Option func(*options)

// WithLogger 设置日志记录器.
func WithLogger(log logger.Logger) Option {
	return func(o *options) { o.logger = log }
}

// WithStackSize 设置堆栈捕获大小.
func WithStackSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.stackSize = size
		}
	}
}

// New 创建 panic 恢复过滤器.
//
// 下游过滤器或端点发生 panic 时，捕获堆栈并记录日志，
// 把 panic 转成 *PanicError 返回，不让它沿调用方栈继续展开.
func New(opts ...Option) filter.Filter {
	o := &options{logger: logger.Nop(), stackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(o)
	}

	return filter.Func(func(ctx context.Context, next rpc.Invoker, inv rpc.Invocation) (result rpc.Result, err error) {
		defer func() {
			if p := recover(); p != nil {
				stack := captureStack(o.stackSize)

				o.logger.Error("调用 panic 已恢复",
					logger.String("interface", next.Interface()),
					logger.String("method", inv.MethodName()),
					logger.Any("panic", p),
					logger.String("stack", string(stack)),
				)

				result = nil
				err = &PanicError{Value: p, Stack: stack}
			}
		}()

		return next.Invoke(ctx, inv)
	})
}

// captureStack 捕获当前 goroutine 的堆栈.
func captureStack(size int) []byte {
	buf := make([]byte, size)
	n := runtime.Stack(buf, false)
	return buf[:n]
}
