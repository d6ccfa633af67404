// Package trace 提供 OpenTelemetry 链路追踪过滤器.
package trace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Tsukikage7/rpc-kit/filter"
	"github.com/Tsukikage7/rpc-kit/rpc"
)

// Name 注册名.
const Name = "trace"

// options 过滤器配置.
type options struct {
	tracerName string
	spanKind   trace.SpanKind
}

// Option 过滤器选项.
type Option func(*options)

// WithTracerName 设置 tracer 名.
func WithTracerName(name string) Option {
	return func(o *options) { o.tracerName = name }
}

// WithSpanKind 设置 span 类型，消费端通常为 client，服务端为 server.
func WithSpanKind(kind trace.SpanKind) Option {
	return func(o *options) { o.spanKind = kind }
}

// New 创建链路追踪过滤器.
//
// 每次调用创建一个 span，覆盖同步帧；异步完成的结果
// 不延长 span 的生命周期.
func New(opts ...Option) filter.Filter {
	o := &options{tracerName: "rpc-kit", spanKind: trace.SpanKindInternal}
	for _, opt := range opts {
		opt(o)
	}

	return filter.Func(func(ctx context.Context, next rpc.Invoker, inv rpc.Invocation) (rpc.Result, error) {
		tracer := otel.Tracer(o.tracerName)
		spanName := next.Interface() + "/" + inv.MethodName()

		ctx, span := tracer.Start(ctx, spanName,
			trace.WithSpanKind(o.spanKind),
			trace.WithAttributes(
				semconv.RPCService(next.Interface()),
				semconv.RPCMethod(inv.MethodName()),
				attribute.String("rpc.invocation_id", inv.ID()),
				attribute.String("rpc.mode", inv.Mode().String()),
			),
		)
		defer span.End()

		result, err := next.Invoke(ctx, inv)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return result, err
	})
}

// SpanFromContext 从 context 获取当前 span.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}
