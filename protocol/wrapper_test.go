package protocol

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tsukikage7/rpc-kit/filter"
	"github.com/Tsukikage7/rpc-kit/rpc"
)

// fakeExporter 导出句柄桩.
type fakeExporter struct {
	invoker rpc.Invoker
}

func (e *fakeExporter) Invoker() rpc.Invoker { return e.invoker }
func (e *fakeExporter) Unexport()            {}

// fakeProtocol 协议桩，记录收到的调用.
type fakeProtocol struct {
	exported rpc.Invoker
	referred *fakeInvoker
	releases int
}

func (p *fakeProtocol) DefaultPort() int { return 20880 }

func (p *fakeProtocol) Export(invoker rpc.Invoker) (rpc.Exporter, error) {
	p.exported = invoker
	return &fakeExporter{invoker: invoker}, nil
}

func (p *fakeProtocol) Refer(iface string, url *rpc.URL) (rpc.Invoker, error) {
	p.referred = newFakeInvoker(url)
	return p.referred, nil
}

func (p *fakeProtocol) Release() { p.releases++ }

func (p *fakeProtocol) Servers() []rpc.ProtocolServer { return nil }

func registryURL() *rpc.URL {
	return rpc.NewURL("registry", "127.0.0.1", 8500, "RegistryService", nil)
}

func TestNewFilterProtocol_ConfigErrors(t *testing.T) {
	builder, err := NewChainBuilder(&fakeSelector{})
	require.NoError(t, err)

	t.Run("nil protocol", func(t *testing.T) {
		_, err := NewFilterProtocol(nil, builder)
		assert.ErrorIs(t, err, ErrNilProtocol)
	})

	t.Run("nil builder", func(t *testing.T) {
		_, err := NewFilterProtocol(&fakeProtocol{}, nil)
		assert.ErrorIs(t, err, ErrNilBuilder)
	})
}

func TestFilterProtocol_ExportWrapsChain(t *testing.T) {
	var log []string
	selector := &fakeSelector{filters: []filter.Filter{tracingFilter("f", &log)}}
	next := &fakeProtocol{}
	builder, err := NewChainBuilder(selector)
	require.NoError(t, err)
	p, err := NewFilterProtocol(next, builder)
	require.NoError(t, err)

	endpoint := newFakeInvoker(serviceURL(nil))
	exporter, err := p.Export(endpoint)
	require.NoError(t, err)

	assert.Equal(t, 1, selector.calls)
	// 被导出的是包装后的端点，不是原端点
	assert.NotNil(t, next.exported)
	if next.exported == rpc.Invoker(endpoint) {
		t.Error("expected wrapped invoker")
	}

	_, err = exporter.Invoker().Invoke(context.Background(), rpc.NewInvocation("Echo"))
	require.NoError(t, err)
	assert.Equal(t, []string{"f-pre", "f-post"}, log)
}

func TestFilterProtocol_ReferWrapsChain(t *testing.T) {
	var log []string
	selector := &fakeSelector{filters: []filter.Filter{tracingFilter("f", &log)}}
	next := &fakeProtocol{}
	builder, err := NewChainBuilder(selector)
	require.NoError(t, err)
	p, err := NewFilterProtocol(next, builder)
	require.NoError(t, err)

	invoker, err := p.Refer("EchoService", serviceURL(nil))
	require.NoError(t, err)
	assert.Equal(t, 1, selector.calls)

	_, err = invoker.Invoke(context.Background(), rpc.NewInvocation("Echo"))
	require.NoError(t, err)
	assert.Equal(t, []string{"f-pre", "f-post"}, log)
	assert.Equal(t, 1, next.referred.invokes)
}

func TestFilterProtocol_RegistryBypass(t *testing.T) {
	selector := &fakeSelector{}
	next := &fakeProtocol{}
	builder, err := NewChainBuilder(selector)
	require.NoError(t, err)
	p, err := NewFilterProtocol(next, builder)
	require.NoError(t, err)

	endpoint := newFakeInvoker(registryURL())
	_, err = p.Export(endpoint)
	require.NoError(t, err)
	// 注册中心端点直接委托，原样导出
	if next.exported != rpc.Invoker(endpoint) {
		t.Error("expected original invoker")
	}

	_, err = p.Refer("RegistryService", registryURL())
	require.NoError(t, err)

	// 注册中心端点从不触发过滤器发现
	assert.Zero(t, selector.calls)
}

func TestFilterProtocol_Delegation(t *testing.T) {
	next := &fakeProtocol{}
	builder, err := NewChainBuilder(&fakeSelector{})
	require.NoError(t, err)
	p, err := NewFilterProtocol(next, builder)
	require.NoError(t, err)

	assert.Equal(t, 20880, p.DefaultPort())
	assert.Nil(t, p.Servers())

	// 无论是否导出/引用过，Release 都恰好委托一次
	p.Release()
	assert.Equal(t, 1, next.releases)
}

func TestFilterProtocol_ReleaseAfterExport(t *testing.T) {
	next := &fakeProtocol{}
	builder, err := NewChainBuilder(&fakeSelector{})
	require.NoError(t, err)
	p, err := NewFilterProtocol(next, builder)
	require.NoError(t, err)

	_, err = p.Export(newFakeInvoker(serviceURL(nil)))
	require.NoError(t, err)
	_, err = p.Refer("EchoService", serviceURL(nil))
	require.NoError(t, err)

	p.Release()
	assert.Equal(t, 1, next.releases)
}
