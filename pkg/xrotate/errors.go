package xrotate

import "errors"

// 配置校验错误
var (
	// ErrEmptyFilename 文件名为空
	ErrEmptyFilename = errors.New("xrotate: filename is required")

	// ErrInvalidMaxSize MaxSize 值无效（必须在 1~10240 MB 范围内）
	ErrInvalidMaxSize = errors.New("xrotate: invalid MaxSize")

	// ErrInvalidMaxBackups MaxBackups 值无效（必须在 0~1024 范围内）
	ErrInvalidMaxBackups = errors.New("xrotate: invalid MaxBackups")

	// ErrInvalidInterval 周期轮转的间隔无效（必须为正，且不小于 1 秒）
	ErrInvalidInterval = errors.New("xrotate: invalid rotation interval")

	// ErrClosed 轮转器已关闭
	ErrClosed = errors.New("xrotate: rotator is closed")
)
