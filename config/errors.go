package config

import "errors"

// 预定义错误.
var (
	// ErrFileNotFound 配置文件不存在.
	ErrFileNotFound = errors.New("config: 配置文件不存在")

	// ErrInvalidSyncWait 同步等待上限无效.
	ErrInvalidSyncWait = errors.New("config: 同步等待上限不能为负数")
)
