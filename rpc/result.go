package rpc

import (
	"context"
	"sync"
	"time"
)

// Result 一次调用的结果，可能尚未完成.
//
// 正常完成携带业务返回值或业务错误；异常完成（Fail）表示
// 调用本身失败，失败原因由 Wait 返回并交由上层归类.
type Result interface {
	// Value 返回业务返回值，未完成时为 nil.
	Value() any
	// Err 返回业务错误，未完成时为 nil.
	Err() error
	// Attachments 返回结果附件.
	Attachments() map[string]string
	// Done 返回完成信号.
	Done() <-chan struct{}
	// Completed 判断是否已完成.
	Completed() bool
	// Wait 阻塞等待完成.
	//
	// 返回 nil 表示正常完成；异常完成时返回 Fail 的错误；
	// ctx 取消返回 ctx.Err()；超出 timeout 返回 ErrWaitExpired.
	Wait(ctx context.Context, timeout time.Duration) error
}

// AsyncResult Result 的标准实现，完成是一次性的.
type AsyncResult struct {
	done chan struct{}
	once sync.Once

	mu          sync.RWMutex
	value       any
	err         error
	failure     error
	attachments map[string]string
}

// NewAsyncResult 创建未完成的结果.
func NewAsyncResult() *AsyncResult {
	return &AsyncResult{
		done:        make(chan struct{}),
		attachments: make(map[string]string),
	}
}

// CompletedResult 创建已正常完成的结果.
func CompletedResult(value any, err error) *AsyncResult {
	r := NewAsyncResult()
	r.Complete(value, err)
	return r
}

// FailedResult 创建已异常完成的结果.
func FailedResult(failure error) *AsyncResult {
	r := NewAsyncResult()
	r.Fail(failure)
	return r
}

// Complete 正常完成，err 为业务错误. 重复完成是空操作.
func (r *AsyncResult) Complete(value any, err error) {
	r.once.Do(func() {
		r.mu.Lock()
		r.value = value
		r.err = err
		r.mu.Unlock()
		close(r.done)
	})
}

// Fail 异常完成，failure 为调用失败原因. 重复完成是空操作.
func (r *AsyncResult) Fail(failure error) {
	r.once.Do(func() {
		r.mu.Lock()
		r.failure = failure
		r.mu.Unlock()
		close(r.done)
	})
}

// SetAttachment 设置结果附件，应在完成前由被调方调用.
func (r *AsyncResult) SetAttachment(key, value string) {
	r.mu.Lock()
	r.attachments[key] = value
	r.mu.Unlock()
}

// Value 返回业务返回值.
func (r *AsyncResult) Value() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Err 返回业务错误.
func (r *AsyncResult) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

// Attachments 返回结果附件.
func (r *AsyncResult) Attachments() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	copied := make(map[string]string, len(r.attachments))
	for k, v := range r.attachments {
		copied[k] = v
	}
	return copied
}

// Done 返回完成信号.
func (r *AsyncResult) Done() <-chan struct{} { return r.done }

// Completed 判断是否已完成.
func (r *AsyncResult) Completed() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Wait 阻塞等待完成.
//
// 已完成的结果走快路径，不创建定时器.
func (r *AsyncResult) Wait(ctx context.Context, timeout time.Duration) error {
	select {
	case <-r.done:
		return r.waitErr()
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-r.done:
		return r.waitErr()
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrWaitExpired
	}
}

// waitErr 返回异常完成的失败原因.
func (r *AsyncResult) waitErr() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.failure
}
