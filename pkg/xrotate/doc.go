// Package xrotate 提供统一的日志轮转接口，基于 lumberjack 实现。
//
// # 核心功能
//
//   - 按文件大小自动轮转
//   - 按固定周期轮转（robfig/cron 驱动，如每 24 小时强制切割一次）
//   - 备份文件数量管理、可选 gzip 压缩
//   - 并发安全的写入
//
// # 使用示例
//
//	rotator, err := xrotate.NewLumberjack("/var/log/app/app.log",
//	    xrotate.WithMaxSizeBytes(50_000_000),
//	    xrotate.WithMaxBackups(5),
//	    xrotate.WithInterval(24*time.Hour),
//	)
//	if err != nil {
//	    return err
//	}
//	defer rotator.Close()
package xrotate
