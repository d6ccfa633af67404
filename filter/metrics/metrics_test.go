package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tsukikage7/rpc-kit/rpc"
)

// stubInvoker 端点桩.
type stubInvoker struct {
	result rpc.Result
	err    error
}

func (s *stubInvoker) Interface() string { return "EchoService" }
func (s *stubInvoker) URL() *rpc.URL     { return rpc.NewURL("local", "127.0.0.1", 0, "EchoService", nil) }
func (s *stubInvoker) Available() bool   { return true }
func (s *stubInvoker) Release()          {}
func (s *stubInvoker) Invoke(context.Context, rpc.Invocation) (rpc.Result, error) {
	return s.result, s.err
}

func TestFilter_CountsRequests(t *testing.T) {
	f := MustNew()
	require.NotNil(t, f.Registry())

	next := &stubInvoker{result: rpc.CompletedResult("pong", nil)}
	_, err := f.Invoke(context.Background(), next, rpc.NewInvocation("Echo"))
	require.NoError(t, err)
	_, err = f.Invoke(context.Background(), next, rpc.NewInvocation("Echo"))
	require.NoError(t, err)

	ok := f.requests.WithLabelValues("EchoService", "Echo", "ok")
	assert.Equal(t, float64(2), testutil.ToFloat64(ok))
}

func TestFilter_CountsErrors(t *testing.T) {
	f := MustNew()
	invokeErr := errors.New("端点失败")
	next := &stubInvoker{err: invokeErr}

	_, err := f.Invoke(context.Background(), next, rpc.NewInvocation("Echo"))
	assert.ErrorIs(t, err, invokeErr)

	failed := f.requests.WithLabelValues("EchoService", "Echo", "error")
	assert.Equal(t, float64(1), testutil.ToFloat64(failed))
}

func TestNew_DuplicateRegistration(t *testing.T) {
	f := MustNew()
	// 同一个注册表重复注册同名指标会失败
	_, err := New(WithRegisterer(f.Registry()))
	assert.Error(t, err)
}
