package local

import "errors"

// 预定义错误.
var (
	// ErrDuplicateExport 服务已被导出.
	ErrDuplicateExport = errors.New("local: 服务已导出")
)
