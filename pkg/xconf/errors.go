package xconf

import "errors"

// 配置校验错误（合并期同步返回）。
var (
	// ErrInvalidLevel 级别名称不是六个已知级别之一。
	ErrInvalidLevel = errors.New("xconf: invalid level")

	// ErrInvalidMaxFiles rotation.maxFiles 不是正整数。
	ErrInvalidMaxFiles = errors.New("xconf: maxFiles must be a positive integer")

	// ErrEmptyRedactPaths redaction.paths 存在但为空列表。
	ErrEmptyRedactPaths = errors.New("xconf: redaction paths must be non-empty")

	// ErrInvalidInterval rotation.interval 无法解析为时长。
	ErrInvalidInterval = errors.New("xconf: invalid rotation interval")

	// ErrInvalidSize rotation.size 无法解析为字节数。
	ErrInvalidSize = errors.New("xconf: invalid rotation size")

	// ErrInvalidDestination 目标路径格式无效。
	ErrInvalidDestination = errors.New("xconf: invalid destination path")
)

// 配置加载和解析相关错误。
var (
	// ErrEmptyPath 表示配置文件路径为空。
	ErrEmptyPath = errors.New("xconf: empty config path")

	// ErrUnsupportedFormat 表示不支持的配置格式。
	ErrUnsupportedFormat = errors.New("xconf: unsupported config format")

	// ErrLoadFailed 表示配置加载失败。
	ErrLoadFailed = errors.New("xconf: failed to load config")

	// ErrParseFailed 表示配置解析失败。
	ErrParseFailed = errors.New("xconf: failed to parse config")

	// ErrUnmarshalFailed 表示配置反序列化失败。
	ErrUnmarshalFailed = errors.New("xconf: failed to unmarshal config")
)
