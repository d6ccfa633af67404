package protocol

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/Tsukikage7/rpc-kit/rpc"
)

// DefaultSyncWait 同步等待的默认上限.
//
// 沿用一个很大但有限的时长，而不是无限等待；
// 上限是显式的策略值，可通过 WithSyncWait 调整.
const DefaultSyncWait = time.Duration(math.MaxInt32) * time.Millisecond

// AsyncToSyncInvoker 把可能未完成的结果适配成同步语义.
//
// 它是调用方线程在整个管道中唯一可能阻塞的位置，
// 且只在调用模式为同步时阻塞.
type AsyncToSyncInvoker struct {
	invoker rpc.Invoker
	wait    time.Duration
}

// AsyncOption 同步适配器选项.
type AsyncOption func(*AsyncToSyncInvoker)

// WithSyncWait 设置同步等待上限.
func WithSyncWait(wait time.Duration) AsyncOption {
	return func(a *AsyncToSyncInvoker) {
		if wait > 0 {
			a.wait = wait
		}
	}
}

// NewAsyncToSyncInvoker 创建同步适配器.
func NewAsyncToSyncInvoker(invoker rpc.Invoker, opts ...AsyncOption) (*AsyncToSyncInvoker, error) {
	if invoker == nil {
		return nil, ErrNilInvoker
	}
	a := &AsyncToSyncInvoker{invoker: invoker, wait: DefaultSyncWait}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Invoke 执行调用.
//
// 非同步模式下结果原样返回，未完成也不等待，由调用方自行同步.
// 同步模式下执行限时等待，等待失败时归类为带分类的调用故障：
// 超时原因归为 TIMEOUT，网络原因归为 NETWORK，其余原因归为 UNKNOWN，
// 等待被中断或超出等待上限归为 GENERIC。等待成功时返回同一个
// 结果对象，此时它保证已完成.
func (a *AsyncToSyncInvoker) Invoke(ctx context.Context, inv rpc.Invocation) (rpc.Result, error) {
	result, err := a.invoker.Invoke(ctx, inv)
	if err != nil {
		return nil, err
	}

	if inv.Mode() != rpc.InvokeSync {
		return result, nil
	}

	if err := result.Wait(ctx, a.wait); err != nil {
		return nil, a.classify(inv, err)
	}
	return result, nil
}

// classify 把等待失败归类为带分类的调用故障.
func (a *AsyncToSyncInvoker) classify(inv rpc.Invocation, err error) *rpc.Error {
	method := inv.MethodName()
	url := a.invoker.URL().String()

	switch {
	case errors.Is(err, rpc.ErrTimeout):
		return rpc.NewError(rpc.CodeTimeout, method, url, "调用远程方法超时", err)
	case errors.Is(err, rpc.ErrNetwork):
		return rpc.NewError(rpc.CodeNetwork, method, url, "调用远程方法失败", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return rpc.NewError(rpc.CodeGeneric, method, url, "等待远程结果时被中断", err)
	case errors.Is(err, rpc.ErrWaitExpired):
		return rpc.NewError(rpc.CodeGeneric, method, url, "等待远程结果超出同步等待上限", err)
	default:
		return rpc.NewError(rpc.CodeUnknown, method, url, "调用远程方法失败", err)
	}
}

// Interface 委托给被包装端点.
func (a *AsyncToSyncInvoker) Interface() string { return a.invoker.Interface() }

// URL 委托给被包装端点.
func (a *AsyncToSyncInvoker) URL() *rpc.URL { return a.invoker.URL() }

// Available 委托给被包装端点.
func (a *AsyncToSyncInvoker) Available() bool { return a.invoker.Available() }

// Release 委托给被包装端点.
func (a *AsyncToSyncInvoker) Release() { a.invoker.Release() }
