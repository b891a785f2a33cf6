package xroute

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/omeyang/logkit/pkg/xconf"
	"github.com/omeyang/logkit/pkg/xlevel"
	"github.com/omeyang/logkit/pkg/xsink"
)

// Fields 日志事件的上下文字段，xsink.Fields 的别名。
type Fields = xsink.Fields

// levelVar 并发安全的动态级别，派生路由器间共享
type levelVar struct {
	v atomic.Int32
}

func newLevelVar(l xlevel.Level) *levelVar {
	lv := &levelVar{}
	lv.v.Store(int32(l))
	return lv
}

func (l *levelVar) Level() xlevel.Level {
	return xlevel.Level(l.v.Load())
}

func (l *levelVar) Set(x xlevel.Level) {
	l.v.Store(int32(x))
}

// Option 路由器构造选项
type Option func(*options)

type options struct {
	onError  func(error)
	sinkOpts []xsink.ResolveOption
}

// WithOnError 设置内部错误回调。
//
// sink 写入失败时调用。默认策略仍然是"不向外返回错误、不 panic"，
// 但允许业务把内部错误接到 metrics/告警系统。
//
// 注意事项：
//   - 回调在热路径同步执行，应保持轻量
//   - 内置递归保护：回调内部再触发日志错误不会导致无限递归
//   - 回调 panic 被捕获，不会扩散到业务调用链
func WithOnError(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

// WithConsoleWriter 设置 pretty 控制台输出目标（默认 os.Stderr）
func WithConsoleWriter(w io.Writer) Option {
	return func(o *options) {
		o.sinkOpts = append(o.sinkOpts, xsink.WithConsoleWriter(w))
	}
}

// WithSinkOptions 附加额外的 sink 解析选项
func WithSinkOptions(opts ...xsink.ResolveOption) Option {
	return func(o *options) {
		o.sinkOpts = append(o.sinkOpts, opts...)
	}
}

// Router 日志事件路由器。
//
// 持有不可变的 sink 计划和可变的当前最低级别。计划在构造期固定，
// SetLevel 只影响阈值 sink 的匹配，不重建计划。
// 派生路由器（Child）共享计划、级别与错误计数。
type Router struct {
	cfg  xconf.ResolvedConfig
	plan []xsink.Descriptor // 共享且不可变

	level *levelVar

	// bound 本路由器的绑定上下文，已按"子层优先"与祖先各层合并
	bound Fields

	onError        func(error)
	errorCount     *atomic.Uint64 // 派生路由器共享
	inErrorHandler *atomic.Bool   // 防止 onError 递归调用，派生路由器共享
}

// New 从部分配置构造路由器。
//
// 流程：合并默认值（xconf.Resolve）→ 解析 sink 计划（xsink.Resolve）→
// 构造路由器。返回的清理函数关闭计划持有的全部 sink，幂等。
//
// 错误语义：
//   - 配置错误：返回 (nil, nil, err)，不构造任何 sink
//   - sink 构造失败：按固定顺序已构造的 sink 不回滚，返回携带部分
//     计划的路由器、其清理函数和包装了 xsink.ErrSinkConstruction 的
//     错误，由调用方决定降级使用还是清理放弃
func New(cfg xconf.Config, opts ...Option) (*Router, func() error, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	resolved, err := xconf.Resolve(cfg)
	if err != nil {
		return nil, nil, err
	}

	plan, planErr := xsink.Resolve(resolved, o.sinkOpts...)

	r := &Router{
		cfg:            resolved,
		plan:           plan,
		level:          newLevelVar(resolved.Level),
		onError:        o.onError,
		errorCount:     new(atomic.Uint64),
		inErrorHandler: new(atomic.Bool),
	}

	cleanup := newCleanup(plan)
	return r, cleanup, planErr
}

// newCleanup 创建幂等的清理函数
func newCleanup(plan []xsink.Descriptor) func() error {
	var once sync.Once
	return func() error {
		var err error
		once.Do(func() {
			err = xsink.ClosePlan(plan)
		})
		return err
	}
}

// Route 把一条事件扇出给所有匹配的 sink。
//
// 依次完成：上下文合并（优先级见包文档）、序列化变换、脱敏、
// 按计划的固定顺序评估过滤器并写出。不阻塞等待 sink 内部的 I/O，
// 写入失败不向调用方传播（见 [WithOnError]）。
func (r *Router) Route(level xlevel.Level, msg Message, extra Fields) {
	current := r.level.Level()

	// 先确认有 sink 接受该事件，再做合并开销
	matched := false
	for _, d := range r.plan {
		if d.Matches(level, current) {
			matched = true
			break
		}
	}
	if !matched {
		return
	}

	rec := xsink.Record{
		Time:   time.Now(),
		Level:  level,
		Msg:    msg.text,
		Fields: r.mergeFields(msg.fields, extra),
	}

	for _, d := range r.plan {
		if !d.Matches(level, current) {
			continue
		}
		if err := d.Sink.Write(rec); err != nil {
			r.handleError(err)
		}
	}
}

// Log 通用日志方法
func (r *Router) Log(level xlevel.Level, msg Message, extra Fields) {
	r.Route(level, msg, extra)
}

// Fatal 记录 fatal 级别日志。只路由，不终止进程。
func (r *Router) Fatal(msg string, extra ...Fields) {
	r.Route(xlevel.LevelFatal, Text(msg), mergeExtras(extra))
}

// Error 记录 error 级别日志
func (r *Router) Error(msg string, extra ...Fields) {
	r.Route(xlevel.LevelError, Text(msg), mergeExtras(extra))
}

// Warn 记录 warn 级别日志
func (r *Router) Warn(msg string, extra ...Fields) {
	r.Route(xlevel.LevelWarn, Text(msg), mergeExtras(extra))
}

// Info 记录 info 级别日志
func (r *Router) Info(msg string, extra ...Fields) {
	r.Route(xlevel.LevelInfo, Text(msg), mergeExtras(extra))
}

// Debug 记录 debug 级别日志
func (r *Router) Debug(msg string, extra ...Fields) {
	r.Route(xlevel.LevelDebug, Text(msg), mergeExtras(extra))
}

// Trace 记录 trace 级别日志
func (r *Router) Trace(msg string, extra ...Fields) {
	r.Route(xlevel.LevelTrace, Text(msg), mergeExtras(extra))
}

// SetLevel 动态设置最低路由级别。
// 对后续事件的阈值 sink 立即生效；精确 sink 保持自身的固定级别。
// 不重新解析、不重建 sink。
func (r *Router) SetLevel(level xlevel.Level) {
	r.level.Set(level)
}

// GetLevel 获取当前最低路由级别
func (r *Router) GetLevel() xlevel.Level {
	return r.level.Level()
}

// Enabled 报告给定级别的事件是否会被至少一个 sink 接受。
// 用于在构造昂贵的日志参数前先行检查。
func (r *Router) Enabled(level xlevel.Level) bool {
	current := r.level.Level()
	for _, d := range r.plan {
		if d.Matches(level, current) {
			return true
		}
	}
	return false
}

// Child 返回携带额外绑定上下文的派生路由器。
//
// 派生路由器共享同一 sink 计划（不复制）和动态级别；链式派生时各层
// 绑定组合，子层的同名键优先于父层。不修改父路由器。
func (r *Router) Child(bound Fields) *Router {
	if len(bound) == 0 {
		return r
	}

	merged := r.bound.Clone()
	if merged == nil {
		merged = make(Fields, len(bound))
	}
	for k, v := range bound {
		merged[k] = v
	}

	return &Router{
		cfg:            r.cfg,
		plan:           r.plan,
		level:          r.level,
		bound:          merged,
		onError:        r.onError,
		errorCount:     r.errorCount,
		inErrorHandler: r.inErrorHandler,
	}
}

// Config 返回完全解析后的配置（不可变）
func (r *Router) Config() xconf.ResolvedConfig {
	return r.cfg
}

// Plan 返回 sink 计划的副本（Descriptor 为值类型，sink 本身共享）
func (r *Router) Plan() []xsink.Descriptor {
	out := make([]xsink.Descriptor, len(r.plan))
	copy(out, r.plan)
	return out
}

// ErrorCount 返回累计的内部错误数（sink 写入失败、回调 panic）
func (r *Router) ErrorCount() uint64 {
	return r.errorCount.Load()
}

// handleError 处理 sink 写入失败
//
// 内置递归保护：如果 onError 回调内部再触发日志错误，不会无限递归。
// 递归保护标记在派生路由器间共享，Child 创建的路由器同样受保护。
//
// 设计决策: CAS 保护导致并发期间部分错误跳过 onError 回调，这是有意为之。
// errorCount 仍计入所有错误（用于监控），onError 回调定位为 best-effort 通知。
func (r *Router) handleError(err error) {
	r.errorCount.Add(1)
	if r.onError == nil {
		return
	}
	if r.inErrorHandler.CompareAndSwap(false, true) {
		defer r.inErrorHandler.Store(false)
		r.safeOnError(err)
	}
}

// safeOnError 安全执行 onError 回调，隔离 panic 防止扩散到业务代码
func (r *Router) safeOnError(err error) {
	defer func() {
		if rec := recover(); rec != nil {
			// 回调 panic 计入错误计数，便于监控发现
			r.errorCount.Add(1)
		}
	}()
	r.onError(err)
}

// mergeExtras 合并可变参数形式的多个 Fields，后出现的同名键优先
func mergeExtras(extras []Fields) Fields {
	switch len(extras) {
	case 0:
		return nil
	case 1:
		return extras[0]
	}
	out := make(Fields)
	for _, f := range extras {
		for k, v := range f {
			out[k] = v
		}
	}
	return out
}
