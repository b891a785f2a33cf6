package xrotate

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/omeyang/logkit/pkg/util/xfile"
)

// Lumberjack 默认配置值
const (
	// DefaultMaxSizeMB 默认单个日志文件最大大小（MB）
	DefaultMaxSizeMB = 10

	// DefaultMaxBackups 默认保留的备份文件数量
	DefaultMaxBackups = 5

	// DefaultCompress 默认是否压缩备份
	DefaultCompress = false

	// maxSizeMB 单个日志文件大小上限（10 GB）
	maxSizeMB = 10240

	// maxBackups 备份文件数量上限
	maxBackups = 1024

	// minInterval 周期轮转的最小间隔，低于此值几乎必然是配置错误
	minInterval = time.Second
)

// lumberjackConfig lumberjack 轮转器配置
type lumberjackConfig struct {
	// MaxSizeMB 单个日志文件最大大小（MB），超过时触发轮转
	// 默认值 DefaultMaxSizeMB，必须 > 0
	MaxSizeMB int

	// MaxBackups 保留的备份文件数量，超过时删除最旧的备份
	// 默认值 DefaultMaxBackups，0 表示不限制
	MaxBackups int

	// Interval 周期轮转间隔，0 表示不按周期轮转
	// lumberjack 本身只按大小轮转，周期轮转由 cron 调度 Rotate 实现
	Interval time.Duration

	// Compress 是否对备份文件做 gzip 压缩
	Compress bool

	// OnError 可选的错误回调函数
	//
	// 周期轮转失败等内部错误通过此回调上报，默认为 nil（静默忽略）。
	//
	// 安全约束：回调函数不得向同一 Rotator 写入数据，否则会导致递归死锁。
	// 推荐输出到 os.Stderr 或独立的日志通道。
	OnError func(error)
}

// Option lumberjack 配置选项函数
type Option func(*lumberjackConfig)

// WithMaxSizeMB 设置单个日志文件最大大小（MB）
func WithMaxSizeMB(mb int) Option {
	return func(c *lumberjackConfig) {
		c.MaxSizeMB = mb
	}
}

// WithMaxSizeBytes 按字节数设置单个日志文件最大大小。
//
// lumberjack 以 MB 为粒度配置，这里向上取整到 MB，且不小于 1MB。
// 配置层以字节串（"10M"）描述大小，此选项避免调用方自行换算。
func WithMaxSizeBytes(n int64) Option {
	return func(c *lumberjackConfig) {
		const mb = 1024 * 1024
		c.MaxSizeMB = int((n + mb - 1) / mb)
		if n > 0 && c.MaxSizeMB < 1 {
			c.MaxSizeMB = 1
		}
	}
}

// WithMaxBackups 设置保留的备份文件数量
func WithMaxBackups(n int) Option {
	return func(c *lumberjackConfig) {
		c.MaxBackups = n
	}
}

// WithInterval 设置周期轮转间隔。
//
// 设置后，每隔 interval 触发一次 Rotate（即使文件未达到大小上限）。
// 0 表示不按周期轮转。
func WithInterval(interval time.Duration) Option {
	return func(c *lumberjackConfig) {
		c.Interval = interval
	}
}

// WithCompress 设置是否压缩备份文件
func WithCompress(compress bool) Option {
	return func(c *lumberjackConfig) {
		c.Compress = compress
	}
}

// WithOnError 设置错误回调函数
//
// 设计决策: 不使用日志库记录内部错误，避免 Rotator 作为日志输出目标时
// 产生递归写入（写失败 → 打日志 → 再写失败 → 栈溢出/死锁）。
// 回调函数不得向同一 Rotator 写入数据。
func WithOnError(fn func(error)) Option {
	return func(c *lumberjackConfig) {
		c.OnError = fn
	}
}

// lumberjackRotator 基于 lumberjack 的 Rotator 实现
//
// lumberjack 提供按大小轮转、备份管理、可选压缩和并发安全写入；
// 周期轮转由内置的 cron 调度器定时调用 Rotate 补齐。
type lumberjackRotator struct {
	logger  *lumberjack.Logger
	cron    *cron.Cron  // 周期轮转调度器，nil 表示未启用
	onError func(error) // 错误回调（nil 表示静默忽略）

	closed atomic.Bool // 标记是否已关闭
}

// NewLumberjack 创建基于 lumberjack 的日志轮转器
//
// 参数:
//   - filename: 日志文件路径（必需）
//   - opts: 可选配置项
//
// 安全说明:
//   - 会对文件路径进行规范化和格式检查
//   - 自动创建不存在的父目录（权限 0750）
func NewLumberjack(filename string, opts ...Option) (Rotator, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}

	cfg := lumberjackConfig{
		MaxSizeMB:  DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		Compress:   DefaultCompress,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validateLumberjackConfig(&cfg); err != nil {
		return nil, err
	}

	safePath, err := xfile.SanitizePath(filename)
	if err != nil {
		return nil, err
	}

	if err := xfile.EnsureDir(safePath); err != nil {
		return nil, err
	}

	r := &lumberjackRotator{
		logger: &lumberjack.Logger{
			Filename:   safePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			Compress:   cfg.Compress,
		},
		onError: cfg.OnError,
	}

	if cfg.Interval > 0 {
		if err := r.startSchedule(cfg.Interval); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// validateLumberjackConfig 验证 lumberjack 配置
func validateLumberjackConfig(cfg *lumberjackConfig) error {
	if cfg.MaxSizeMB <= 0 || cfg.MaxSizeMB > maxSizeMB {
		return fmt.Errorf("%w: got %d, want 1~%d", ErrInvalidMaxSize, cfg.MaxSizeMB, maxSizeMB)
	}

	if cfg.MaxBackups < 0 || cfg.MaxBackups > maxBackups {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxBackups, cfg.MaxBackups, maxBackups)
	}

	if cfg.Interval != 0 && cfg.Interval < minInterval {
		return fmt.Errorf("%w: got %s, want >= %s", ErrInvalidInterval, cfg.Interval, minInterval)
	}

	return nil
}

// startSchedule 启动周期轮转调度
//
// 使用 cron 的 @every 语法：调度精度为秒级，对日志轮转足够。
func (r *lumberjackRotator) startSchedule(interval time.Duration) error {
	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		if err := r.Rotate(); err != nil {
			// Close 与定时触发存在竞态，关闭后的触发不算错误
			if r.closed.Load() {
				return
			}
			r.reportError(err)
		}
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidInterval, interval, err)
	}
	c.Start()
	r.cron = c
	return nil
}

// Write 实现 io.Writer 接口
func (r *lumberjackRotator) Write(p []byte) (n int, err error) {
	if r.closed.Load() {
		return 0, ErrClosed
	}

	n, err = r.logger.Write(p)
	if err != nil {
		// 设计决策: Write 与 Close 存在 TOCTOU 窗口——Write 通过 closed 前置检查后，
		// Close 可能在 logger.Write 执行期间完成。此处后置检查确保调用者始终得到
		// ErrClosed（而非底层 I/O 错误），保持 ErrClosed 契约的可靠性。
		if r.closed.Load() {
			return n, ErrClosed
		}
		return n, err
	}

	return n, nil
}

// Rotate 手动触发轮转
func (r *lumberjackRotator) Rotate() error {
	if r.closed.Load() {
		return ErrClosed
	}

	if err := r.logger.Rotate(); err != nil {
		// 与 Write 相同的 TOCTOU 后置检查
		if r.closed.Load() {
			return ErrClosed
		}
		return err
	}
	return nil
}

// Close 实现 io.Closer 接口
//
// 关闭后调用 Write 或 Rotate 将返回 [ErrClosed]。
// 重复调用 Close 也返回 [ErrClosed]。
//
// 设计决策: Close 使用 CAS 原语标记关闭状态，首次 Close 失败后不重置标记。
// 这确保了关闭后不会有新的写入到达底层 logger。
func (r *lumberjackRotator) Close() error {
	if r.closed.Swap(true) {
		return ErrClosed
	}
	if r.cron != nil {
		// Stop 返回的 context 在运行中的任务结束后完成；
		// 轮转任务本身极快，这里不阻塞等待
		r.cron.Stop()
	}
	return r.logger.Close()
}

// reportError 通过回调上报内部错误
//
// 回调 panic 被 recover 隔离，防止日志错误通知反向中断业务主流程。
func (r *lumberjackRotator) reportError(err error) {
	if err != nil && r.onError != nil {
		defer func() { recover() }() //nolint:errcheck // recover 返回值无需检查
		r.onError(err)
	}
}
