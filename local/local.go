// Package local 提供进程内协议实现.
//
// 导出的服务记在本地导出表里，引用方直接在进程内调用，
// 结果仍然异步完成，用于演练完整的调用管道.
package local

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Tsukikage7/rpc-kit/logger"
	"github.com/Tsukikage7/rpc-kit/protocol"
	"github.com/Tsukikage7/rpc-kit/rpc"
)

// Name 协议名.
const Name = "local"

// Option 协议选项.
type Option func(*Protocol)

// WithLogger 设置日志记录器.
func WithLogger(log logger.Logger) Option {
	return func(p *Protocol) { p.log = log }
}

// WithSyncWait 设置引用端点的同步等待上限.
func WithSyncWait(wait time.Duration) Option {
	return func(p *Protocol) {
		if wait > 0 {
			p.wait = wait
		}
	}
}

// Protocol 进程内协议.
type Protocol struct {
	mu        sync.RWMutex
	exporters map[string]rpc.Invoker
	wait      time.Duration
	log       logger.Logger
}

// NewProtocol 创建进程内协议.
func NewProtocol(opts ...Option) *Protocol {
	p := &Protocol{
		exporters: make(map[string]rpc.Invoker),
		wait:      protocol.DefaultSyncWait,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DefaultPort 进程内协议没有端口.
func (p *Protocol) DefaultPort() int { return 0 }

// Export 把端点记入本地导出表.
func (p *Protocol) Export(invoker rpc.Invoker) (rpc.Exporter, error) {
	key := invoker.URL().ServiceKey()

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.exporters[key]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateExport, key)
	}
	p.exporters[key] = invoker

	p.log.Info("本地导出服务", logger.String("service", key))
	return &exporter{protocol: p, key: key, invoker: invoker}, nil
}

// Refer 返回进程内端点，已套上同步适配器.
func (p *Protocol) Refer(iface string, url *rpc.URL) (rpc.Invoker, error) {
	inv := &localInvoker{protocol: p, iface: iface, url: url}
	return protocol.NewAsyncToSyncInvoker(inv, protocol.WithSyncWait(p.wait))
}

// Release 释放所有导出的端点并清空导出表.
func (p *Protocol) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, invoker := range p.exporters {
		invoker.Release()
		delete(p.exporters, key)
	}
}

// Servers 进程内协议不持有服务器.
func (p *Protocol) Servers() []rpc.ProtocolServer { return nil }

// lookup 查找已导出的端点.
func (p *Protocol) lookup(key string) (rpc.Invoker, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	invoker, ok := p.exporters[key]
	return invoker, ok
}

// exporter 一次本地导出的句柄.
type exporter struct {
	protocol *Protocol
	key      string
	invoker  rpc.Invoker
}

// Invoker 返回被导出的端点.
func (e *exporter) Invoker() rpc.Invoker { return e.invoker }

// Unexport 从导出表移除.
func (e *exporter) Unexport() {
	e.protocol.mu.Lock()
	defer e.protocol.mu.Unlock()
	delete(e.protocol.exporters, e.key)
}

// localInvoker 进程内调用端点.
//
// 调用在独立的 goroutine 中分发，结果异步完成，
// 调用方拿到的始终是可能未完成的结果.
type localInvoker struct {
	protocol *Protocol
	iface    string
	url      *rpc.URL
}

// Invoke 执行进程内调用.
func (i *localInvoker) Invoke(ctx context.Context, inv rpc.Invocation) (rpc.Result, error) {
	out := rpc.NewAsyncResult()

	target, ok := i.protocol.lookup(i.url.ServiceKey())
	if !ok {
		out.Fail(fmt.Errorf("%w: 服务未导出: %s", rpc.ErrNetwork, i.url.ServiceKey()))
		return out, nil
	}

	go func() {
		result, err := target.Invoke(ctx, inv)
		if err != nil {
			out.Fail(err)
			return
		}
		if err := result.Wait(ctx, i.protocol.wait); err != nil {
			out.Fail(err)
			return
		}
		for k, v := range result.Attachments() {
			out.SetAttachment(k, v)
		}
		out.Complete(result.Value(), result.Err())
	}()

	return out, nil
}

// Interface 返回服务接口名.
func (i *localInvoker) Interface() string { return i.iface }

// URL 返回端点地址.
func (i *localInvoker) URL() *rpc.URL { return i.url }

// Available 判断目标服务是否已导出.
func (i *localInvoker) Available() bool {
	_, ok := i.protocol.lookup(i.url.ServiceKey())
	return ok
}

// Release 进程内端点没有独立资源.
func (i *localInvoker) Release() {}
