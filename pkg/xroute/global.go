package xroute

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/omeyang/logkit/pkg/xconf"
	"github.com/omeyang/logkit/pkg/xlevel"
)

// =============================================================================
// 全局路由器
//
// 定位：脚手架/小工具等简单场景。
// 在服务端推荐依赖注入（显式持有 Router）。
// =============================================================================

// globalEntry 全局路由器及其清理函数
type globalEntry struct {
	router  *Router
	cleanup func() error
}

// globalRouter 全局路由器实例（并发安全）
var globalRouter atomic.Pointer[globalEntry]

// globalMu 保护 globalOnce 及其 Do 执行（也用于 ResetDefault）
var globalMu sync.Mutex

// globalOnce 确保默认路由器只初始化一次
var globalOnce sync.Once

// defaultRouter 创建默认路由器（惰性初始化）
//
// 设计决策: 在持锁状态下执行 once.Do，确保 ResetDefault（重置 globalOnce）
// 与 once.Do 之间不会发生并发竞争（覆盖 sync.Once 内部状态会导致 fatal）。
// 初始化后 Default() 走 atomic.Load 快速路径，不进入此函数。
func defaultRouter(cfg xconf.Config) *globalEntry {
	globalMu.Lock()
	defer globalMu.Unlock()

	globalOnce.Do(func() {
		r, cleanup, err := New(cfg)
		if err != nil && r == nil {
			// 设计决策: 配置错误时降级为全默认配置的路由器，
			// 避免库代码 panic 终止宿主进程（项目约定：构造不 panic）。
			fmt.Fprintf(os.Stderr, "xroute: failed to build default router: %v, using fallback\n", err)
			r, cleanup, _ = New(xconf.Config{})
		} else if err != nil {
			// 部分 sink 构造失败：保留已构造的部分，继续使用
			fmt.Fprintf(os.Stderr, "xroute: default router built with partial sinks: %v\n", err)
		}
		globalRouter.Store(&globalEntry{router: r, cleanup: cleanup})
	})
	return globalRouter.Load()
}

// Default 返回全局默认路由器
//
// 首次调用时用传入的配置（缺省为空配置，全走默认值）构造路由器并缓存；
// 后续调用原样返回缓存实例，忽略配置参数（先到先得）。
// 并发安全：使用 sync.Once 和 atomic.Pointer。
//
// 定位说明：
//   - 适用于脚手架、小工具等简单场景
//   - 服务端推荐依赖注入（显式持有 Router）
func Default(cfg ...xconf.Config) *Router {
	if e := globalRouter.Load(); e != nil {
		return e.router
	}
	var c xconf.Config
	if len(cfg) > 0 {
		c = cfg[0]
	}
	return defaultRouter(c).router
}

// SetDefault 替换全局默认路由器
//
// 用于测试或自定义配置场景。不关闭被替换的路由器，其清理责任仍在
// 原持有方。传入 nil 时操作被忽略；要重置请使用 ResetDefault()。
func SetDefault(r *Router) {
	if r == nil {
		// 拒绝 nil，避免后续全局函数 panic
		return
	}
	globalRouter.Store(&globalEntry{router: r, cleanup: func() error { return nil }})
}

// ResetDefault 重置全局路由器为未初始化状态（仅用于测试）
//
// 关闭当前全局路由器持有的 sink。调用后，下次 Default() 会重新初始化。
// 并发安全：使用 mutex 保护 sync.Once 的重置。
func ResetDefault() error {
	globalMu.Lock()
	defer globalMu.Unlock()

	var err error
	if e := globalRouter.Load(); e != nil && e.cleanup != nil {
		err = e.cleanup()
	}
	globalRouter.Store(nil)
	globalOnce = sync.Once{}
	return err
}

// =============================================================================
// 便利函数：委托给全局路由器
// =============================================================================

// Fatal 使用全局路由器记录 fatal 级别日志
func Fatal(msg string, extra ...Fields) {
	Default().Fatal(msg, extra...)
}

// Error 使用全局路由器记录 error 级别日志
func Error(msg string, extra ...Fields) {
	Default().Error(msg, extra...)
}

// Warn 使用全局路由器记录 warn 级别日志
func Warn(msg string, extra ...Fields) {
	Default().Warn(msg, extra...)
}

// Info 使用全局路由器记录 info 级别日志
func Info(msg string, extra ...Fields) {
	Default().Info(msg, extra...)
}

// Debug 使用全局路由器记录 debug 级别日志
func Debug(msg string, extra ...Fields) {
	Default().Debug(msg, extra...)
}

// Trace 使用全局路由器记录 trace 级别日志
func Trace(msg string, extra ...Fields) {
	Default().Trace(msg, extra...)
}

// Log 使用全局路由器记录指定级别日志
func Log(level xlevel.Level, msg Message, extra Fields) {
	Default().Log(level, msg, extra)
}

// SetLevel 动态设置全局路由器的最低级别
func SetLevel(level xlevel.Level) {
	Default().SetLevel(level)
}

// Child 从全局路由器派生携带绑定上下文的路由器
func Child(bound Fields) *Router {
	return Default().Child(bound)
}
