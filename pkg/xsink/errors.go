package xsink

import "errors"

var (
	// ErrSinkConstruction sink 构造失败（如目录不可创建、路径无效）。
	// 返回时此前按固定顺序已构造的 sink 保持可用（部分构造可见）。
	ErrSinkConstruction = errors.New("xsink: failed to construct sink")

	// ErrNilRotator 文件 sink 的轮转器为 nil
	ErrNilRotator = errors.New("xsink: rotator is nil")
)
