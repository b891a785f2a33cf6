package xsink

import (
	"time"

	"github.com/omeyang/logkit/pkg/xlevel"
)

// Fields 日志事件的上下文字段。
type Fields map[string]any

// Clone 返回浅拷贝。nil 接收者返回 nil。
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Record 一条结构化日志记录。
//
// Fields 在交给 sink 前已完成上下文合并、序列化变换和脱敏；
// sink 不得修改 Fields（多个 sink 共享同一底层 map）。
type Record struct {
	Time   time.Time
	Level  xlevel.Level
	Msg    string
	Fields Fields
}
