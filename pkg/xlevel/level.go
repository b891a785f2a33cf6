package xlevel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLevel 未知的级别名称
var ErrUnknownLevel = errors.New("xlevel: unknown level")

// Level 日志严重级别
//
// 数值越大越严重。数值仅用于内部比较，不保证跨版本稳定，
// 持久化场景请使用字符串表示（String/MarshalText）。
type Level int8

// 级别常量，按严重程度从低到高取值
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// levels 按严重程度从高到低的固定顺序（fatal → trace）
var levels = [...]Level{
	LevelFatal,
	LevelError,
	LevelWarn,
	LevelInfo,
	LevelDebug,
	LevelTrace,
}

// Levels 返回全部级别，按严重程度从高到低排列（fatal → trace）。
//
// 返回的是副本，调用方可自由修改。
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels[:])
	return out
}

// AtLeast 报告 l 是否至少与 other 同样严重。
//
// 用于阈值过滤：事件级别 AtLeast 最低级别时才被接受。
func (l Level) AtLeast(other Level) bool {
	return l >= other
}

// String 返回级别的小写名称
func (l Level) String() string {
	switch l {
	case LevelFatal:
		return "fatal"
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return fmt.Sprintf("level(%d)", int8(l))
	}
}

// MarshalText 实现 encoding.TextMarshaler 接口
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler 接口
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel 解析字符串为日志级别
//
// 大小写不敏感，输入会自动 TrimSpace。
// 接受 fatal/error/warn/warning/info/debug/trace。
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fatal":
		return LevelFatal, nil
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}
