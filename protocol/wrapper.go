package protocol

import (
	"github.com/Tsukikage7/rpc-kit/filter"
	"github.com/Tsukikage7/rpc-kit/logger"
	"github.com/Tsukikage7/rpc-kit/rpc"
)

// FilterProtocol 在导出/引用时插入过滤器链的协议装饰器.
//
// 注册中心端点不经过过滤器链，直接委托给被包装协议.
// 装饰不修改传入的协议与端点，只产生新的组合对象.
type FilterProtocol struct {
	next    rpc.Protocol
	builder *ChainBuilder
	log     logger.Logger
}

// ProtocolOption 协议装饰器选项.
type ProtocolOption func(*FilterProtocol)

// WithProtocolLogger 设置日志记录器.
func WithProtocolLogger(log logger.Logger) ProtocolOption {
	return func(p *FilterProtocol) { p.log = log }
}

// NewFilterProtocol 创建过滤器链协议装饰器.
//
// 被包装协议或链构建器为空属于配置错误，立即失败.
func NewFilterProtocol(next rpc.Protocol, builder *ChainBuilder, opts ...ProtocolOption) (*FilterProtocol, error) {
	if next == nil {
		return nil, ErrNilProtocol
	}
	if builder == nil {
		return nil, ErrNilBuilder
	}
	p := &FilterProtocol{next: next, builder: builder, log: logger.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// DefaultPort 委托给被包装协议.
func (p *FilterProtocol) DefaultPort() int {
	return p.next.DefaultPort()
}

// Export 导出服务端点，非注册中心端点先套上服务端过滤器链.
func (p *FilterProtocol) Export(invoker rpc.Invoker) (rpc.Exporter, error) {
	if invoker.URL().IsRegistry() {
		return p.next.Export(invoker)
	}
	chained, err := p.builder.Build(invoker, filter.ServiceFilterKey, filter.GroupProvider)
	if err != nil {
		return nil, err
	}
	p.log.Info("导出服务",
		logger.String("interface", invoker.Interface()),
		logger.String("url", invoker.URL().String()),
	)
	return p.next.Export(chained)
}

// Refer 引用远程服务，非注册中心端点套上消费端过滤器链.
func (p *FilterProtocol) Refer(iface string, url *rpc.URL) (rpc.Invoker, error) {
	if url.IsRegistry() {
		return p.next.Refer(iface, url)
	}
	invoker, err := p.next.Refer(iface, url)
	if err != nil {
		return nil, err
	}
	p.log.Info("引用服务",
		logger.String("interface", iface),
		logger.String("url", url.String()),
	)
	return p.builder.Build(invoker, filter.ReferenceFilterKey, filter.GroupConsumer)
}

// Release 委托给被包装协议.
func (p *FilterProtocol) Release() {
	p.next.Release()
}

// Servers 委托给被包装协议.
func (p *FilterProtocol) Servers() []rpc.ProtocolServer {
	return p.next.Servers()
}
