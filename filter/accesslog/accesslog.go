// Package accesslog 提供访问日志过滤器.
package accesslog

import (
	"context"
	"time"

	"github.com/Tsukikage7/rpc-kit/filter"
	"github.com/Tsukikage7/rpc-kit/logger"
	"github.com/Tsukikage7/rpc-kit/rpc"
)

// Name 注册名.
const Name = "accesslog"

// options 过滤器配置.
type options struct {
	logger logger.Logger
}

// Option 过滤器选项.
type Option func(*options)

// WithLogger 设置日志记录器.
func WithLogger(log logger.Logger) Option {
	return func(o *options) { o.logger = log }
}

// New 创建访问日志过滤器.
//
// 记录每次通过管道的调用：接口、方法、调用模式、本帧耗时与错误.
// 耗时是同步帧的耗时，结果可能在帧返回后才完成.
func New(opts ...Option) filter.Filter {
	o := &options{logger: logger.Nop()}
	for _, opt := range opts {
		opt(o)
	}

	return filter.Func(func(ctx context.Context, next rpc.Invoker, inv rpc.Invocation) (rpc.Result, error) {
		start := time.Now()
		result, err := next.Invoke(ctx, inv)
		elapsed := time.Since(start)

		fields := []logger.Field{
			logger.String("id", inv.ID()),
			logger.String("interface", next.Interface()),
			logger.String("method", inv.MethodName()),
			logger.String("mode", inv.Mode().String()),
			logger.Any("elapsed", elapsed),
		}
		if err != nil {
			o.logger.Error("调用失败", append(fields, logger.Err(err))...)
			return nil, err
		}
		o.logger.Info("调用完成", fields...)
		return result, nil
	})
}
