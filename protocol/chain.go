// Package protocol 提供调用管道的组装层：过滤器链构建、
// 协议装饰与异步结果的同步适配.
package protocol

import (
	"context"

	"github.com/Tsukikage7/rpc-kit/filter"
	"github.com/Tsukikage7/rpc-kit/logger"
	"github.com/Tsukikage7/rpc-kit/rpc"
)

// Selector 过滤器发现协作方的查询契约.
//
// 返回的序列已按优先级升序排好：数值最小的最先执行（最外层）.
// *filter.Registry 是它的标准实现.
type Selector interface {
	Select(url *rpc.URL, key, group string) ([]filter.Filter, error)
}

// ChainBuilder 把选择出的过滤器序列折叠成调用链.
type ChainBuilder struct {
	selector Selector
	log      logger.Logger
}

// BuilderOption 链构建器选项.
type BuilderOption func(*ChainBuilder)

// WithBuilderLogger 设置日志记录器.
func WithBuilderLogger(log logger.Logger) BuilderOption {
	return func(b *ChainBuilder) { b.log = log }
}

// NewChainBuilder 创建链构建器.
func NewChainBuilder(selector Selector, opts ...BuilderOption) (*ChainBuilder, error) {
	if selector == nil {
		return nil, ErrNilSelector
	}
	b := &ChainBuilder{selector: selector, log: logger.Nop()}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Build 围绕端点构建过滤器链.
//
// 从序列末尾向头部折叠，最终优先级最小的过滤器在最外层.
// 序列为空时原样返回输入端点，不做任何包装.
// 选择器的失败原样向上传递.
func (b *ChainBuilder) Build(invoker rpc.Invoker, key, group string) (rpc.Invoker, error) {
	filters, err := b.selector.Select(invoker.URL(), key, group)
	if err != nil {
		return nil, err
	}
	if len(filters) == 0 {
		return invoker, nil
	}

	last := invoker
	for i := len(filters) - 1; i >= 0; i-- {
		last = &filterNode{filter: filters[i], next: last, original: invoker}
	}

	b.log.Debug("构建过滤器链",
		logger.String("interface", invoker.Interface()),
		logger.String("group", group),
		logger.Int("filters", len(filters)),
	)
	return last, nil
}

// filterNode 链上的一个环节：一个过滤器加它的下游.
type filterNode struct {
	filter   filter.Filter
	next     rpc.Invoker
	original rpc.Invoker
}

// Invoke 完全委托给过滤器，由过滤器决定是否以及何时调用下游.
func (n *filterNode) Invoke(ctx context.Context, inv rpc.Invocation) (rpc.Result, error) {
	return n.filter.Invoke(ctx, n.next, inv)
}

// 身份、地址、存活与释放委托给最内层的真实端点，
// 装饰链对检查端点的调用方透明。Release 只沿链落到真实端点一次，
// 中间节点不独立释放共享资源.

func (n *filterNode) Interface() string { return n.original.Interface() }
func (n *filterNode) URL() *rpc.URL     { return n.original.URL() }
func (n *filterNode) Available() bool   { return n.original.Available() }
func (n *filterNode) Release()          { n.original.Release() }
