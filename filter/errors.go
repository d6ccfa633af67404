package filter

import "errors"

// 预定义错误.
var (
	// ErrNilFilter 过滤器为空.
	ErrNilFilter = errors.New("filter: 过滤器不能为空")

	// ErrDuplicateName 过滤器名字重复.
	ErrDuplicateName = errors.New("filter: 过滤器名字已注册")

	// ErrUnknownFilter URL 点名了未注册的过滤器.
	ErrUnknownFilter = errors.New("filter: 过滤器未注册")
)
