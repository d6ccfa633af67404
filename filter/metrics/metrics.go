// Package metrics 提供 Prometheus 指标过滤器.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Tsukikage7/rpc-kit/rpc"
)

// Name 注册名.
const Name = "metrics"

// options 过滤器配置.
type options struct {
	namespace  string
	registerer prometheus.Registerer
}

// Option 过滤器选项.
type Option func(*options)

// WithNamespace 设置指标命名空间.
func WithNamespace(namespace string) Option {
	return func(o *options) { o.namespace = namespace }
}

// WithRegisterer 设置指标注册器.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// Filter 指标过滤器.
type Filter struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New 创建指标过滤器.
//
// 默认使用独立的注册表，避免与默认注册表冲突；
// 宿主可通过 WithRegisterer 接入自己的注册表.
func New(opts ...Option) (*Filter, error) {
	o := &options{namespace: "rpc"}
	for _, opt := range opts {
		opt(o)
	}

	f := &Filter{}
	if o.registerer == nil {
		f.registry = prometheus.NewRegistry()
		o.registerer = f.registry
	}

	f.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "requests_total",
			Help:      "Total number of RPC invocations",
		},
		[]string{"interface", "method", "status"},
	)
	f.duration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "request_duration_seconds",
			Help:      "RPC invocation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"interface", "method"},
	)

	if err := o.registerer.Register(f.requests); err != nil {
		return nil, err
	}
	if err := o.registerer.Register(f.duration); err != nil {
		return nil, err
	}
	return f, nil
}

// MustNew 创建指标过滤器，失败时 panic.
func MustNew(opts ...Option) *Filter {
	f, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Registry 返回自建的注册表，使用外部注册器时为 nil.
func (f *Filter) Registry() *prometheus.Registry { return f.registry }

// Invoke 记录调用次数与同步帧耗时.
func (f *Filter) Invoke(ctx context.Context, next rpc.Invoker, inv rpc.Invocation) (rpc.Result, error) {
	start := time.Now()
	result, err := next.Invoke(ctx, inv)

	status := "ok"
	if err != nil {
		status = "error"
	}
	f.requests.WithLabelValues(next.Interface(), inv.MethodName(), status).Inc()
	f.duration.WithLabelValues(next.Interface(), inv.MethodName()).Observe(time.Since(start).Seconds())

	return result, err
}
