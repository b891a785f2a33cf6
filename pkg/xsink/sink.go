package xsink

import (
	"errors"

	"github.com/omeyang/logkit/pkg/xlevel"
)

// Sink 结构化日志记录的输出端。
//
// 实现约定：
//   - Write 必须是并发安全的，不得修改 rec.Fields
//   - Write 失败只返回错误，不重试、不 panic
//   - Close 释放持有的资源，重复调用的行为由实现定义
type Sink interface {
	// Write 接受一条记录并持久化或转发
	Write(rec Record) error

	// Close 关闭输出端，释放资源
	Close() error
}

// FilterKind 级别过滤器类型
type FilterKind uint8

const (
	// FilterThreshold 阈值过滤：接受至少与当前最低级别同样严重的事件
	FilterThreshold FilterKind = iota

	// FilterExact 精确过滤：只接受恰好等于固定级别的事件
	FilterExact
)

// String 返回过滤器类型的名称
func (k FilterKind) String() string {
	switch k {
	case FilterThreshold:
		return "threshold"
	case FilterExact:
		return "exact"
	default:
		return "unknown"
	}
}

// Descriptor 一个已解析的 sink 及其级别过滤器。
//
// Resolve 产出后不可变，由创建它的路由器独占持有；
// 派生路由器共享同一 Descriptor 序列（不复制）。
type Descriptor struct {
	// Kind 过滤器类型
	Kind FilterKind

	// Level 过滤级别：精确过滤的固定级别；
	// 阈值过滤时记录构造期的配置级别（实际匹配使用路由器的动态级别）
	Level xlevel.Level

	// Sink 输出端
	Sink Sink
}

// Matches 评估过滤器是否接受给定级别的事件。
//
// threshold 为路由器当前的动态最低级别：阈值过滤对照它，
// 精确过滤只对照自身的固定级别，不受动态级别影响。
func (d Descriptor) Matches(event, threshold xlevel.Level) bool {
	if d.Kind == FilterExact {
		return event == d.Level
	}
	return event.AtLeast(threshold)
}

// ClosePlan 关闭计划中的全部 sink，聚合所有关闭错误。
//
// 同一 Sink 在计划中出现多次时只关闭一次。
func ClosePlan(plan []Descriptor) error {
	seen := make(map[Sink]struct{}, len(plan))
	var errs []error
	for _, d := range plan {
		if d.Sink == nil {
			continue
		}
		if _, ok := seen[d.Sink]; ok {
			continue
		}
		seen[d.Sink] = struct{}{}
		if err := d.Sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
