package xsink

import (
	"fmt"
	"io"

	"github.com/omeyang/logkit/pkg/xconf"
	"github.com/omeyang/logkit/pkg/xrotate"
)

// ResolveOption sink 解析选项
type ResolveOption func(*resolveOptions)

type resolveOptions struct {
	consoleWriter io.Writer
	rotateOpts    []xrotate.Option
}

// WithConsoleWriter 设置 pretty 控制台 sink 的输出目标。
// 默认 os.Stderr；测试中注入 buffer 以断言渲染结果。
func WithConsoleWriter(w io.Writer) ResolveOption {
	return func(o *resolveOptions) {
		o.consoleWriter = w
	}
}

// WithRotateOptions 附加到每个文件 sink 的轮转器选项（如错误回调）。
func WithRotateOptions(opts ...xrotate.Option) ResolveOption {
	return func(o *resolveOptions) {
		o.rotateOpts = append(o.rotateOpts, opts...)
	}
}

// Resolve 把完全解析的配置翻译为固定顺序的 sink 计划。
//
// 构造顺序（同时是路由时的遍历顺序）：
//  1. prettyPrint 启用时，一个阈值过滤的控制台 sink
//  2. 主目标路径非空时，一个阈值过滤的轮转文件 sink
//  3. 每个启用的级别专属文件，按 fatal → trace 顺序各一个精确过滤 sink
//
// 三者都不满足时返回空计划——路由成为 no-op，这是合法配置而非错误。
//
// 某个 sink 构造失败时返回 [ErrSinkConstruction]，同时返回此前已成功
// 构造的计划前缀（部分构造可见）；调用方可用 [ClosePlan] 释放。
func Resolve(cfg xconf.ResolvedConfig, opts ...ResolveOption) ([]Descriptor, error) {
	var o resolveOptions
	for _, opt := range opts {
		opt(&o)
	}

	var plan []Descriptor

	if cfg.PrettyPrint {
		plan = append(plan, Descriptor{
			Kind:  FilterThreshold,
			Level: cfg.Level,
			Sink:  NewConsole(o.consoleWriter),
		})
	}

	if cfg.Destination != "" {
		sink, err := NewFile(cfg.Destination, cfg.Rotation, o.rotateOpts...)
		if err != nil {
			return plan, fmt.Errorf("%w: primary %q: %w", ErrSinkConstruction, cfg.Destination, err)
		}
		plan = append(plan, Descriptor{
			Kind:  FilterThreshold,
			Level: cfg.Level,
			Sink:  sink,
		})
	}

	// cfg.LevelFiles 由 xconf.Resolve 保证按 fatal → trace 排列
	for _, lf := range cfg.LevelFiles {
		if !lf.Enabled {
			continue
		}
		sink, err := NewFile(lf.Destination, lf.Rotation, o.rotateOpts...)
		if err != nil {
			return plan, fmt.Errorf("%w: level %s %q: %w", ErrSinkConstruction, lf.Level, lf.Destination, err)
		}
		plan = append(plan, Descriptor{
			Kind:  FilterExact,
			Level: lf.Level,
			Sink:  sink,
		})
	}

	return plan, nil
}
