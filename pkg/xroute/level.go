package xroute

import "github.com/omeyang/logkit/pkg/xlevel"

// 级别常量别名，调用方不必额外导入 xlevel
const (
	LevelTrace = xlevel.LevelTrace
	LevelDebug = xlevel.LevelDebug
	LevelInfo  = xlevel.LevelInfo
	LevelWarn  = xlevel.LevelWarn
	LevelError = xlevel.LevelError
	LevelFatal = xlevel.LevelFatal
)
