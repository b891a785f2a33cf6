package xsink

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/omeyang/logkit/pkg/xconf"
	"github.com/omeyang/logkit/pkg/xrotate"
)

// 文件 sink 输出中的保留字段名。
// 上下文字段与保留名冲突时，保留名胜出（时间/级别/消息不可被伪造）。
const (
	fileKeyTime  = "time"
	fileKeyLevel = "level"
	fileKeyMsg   = "msg"
)

// FileSink 基于轮转写入器的 JSON Lines 文件输出端。
//
// 每条记录编码为单行 JSON 对象：time（RFC3339Nano）、level、msg
// 以及展平在顶层的上下文字段。
type FileSink struct {
	rotator xrotate.Rotator
	path    string
}

var _ Sink = (*FileSink)(nil)

// NewFile 创建文件 sink，按给定轮转策略打开目标路径。
//
// 策略换算：size → lumberjack 的 MaxSize（向上取整到 MB）、
// maxFiles → MaxBackups、interval → 周期轮转调度。
// 目录不可创建、路径无效等错误同步返回。
func NewFile(path string, policy xconf.RotationPolicy, opts ...xrotate.Option) (*FileSink, error) {
	rotateOpts := append([]xrotate.Option{
		xrotate.WithMaxSizeBytes(policy.SizeBytes),
		xrotate.WithMaxBackups(policy.MaxFiles),
		xrotate.WithInterval(policy.Interval),
	}, opts...)

	rotator, err := xrotate.NewLumberjack(path, rotateOpts...)
	if err != nil {
		return nil, err
	}

	return &FileSink{rotator: rotator, path: path}, nil
}

// NewFileWithRotator 用已有的轮转器创建文件 sink，主要用于测试注入。
func NewFileWithRotator(rotator xrotate.Rotator, path string) (*FileSink, error) {
	if rotator == nil {
		return nil, ErrNilRotator
	}
	return &FileSink{rotator: rotator, path: path}, nil
}

// Write 编码并写出一条记录
func (s *FileSink) Write(rec Record) error {
	line := make(map[string]any, len(rec.Fields)+3)
	for k, v := range rec.Fields {
		line[k] = v
	}
	line[fileKeyTime] = rec.Time.Format(time.RFC3339Nano)
	line[fileKeyLevel] = rec.Level.String()
	if rec.Msg != "" {
		line[fileKeyMsg] = rec.Msg
	}

	data, err := json.Marshal(line)
	if err != nil {
		// 不可序列化的字段值降级为占位符，日志管道不因单条记录中断
		return s.writeFallback(rec, err)
	}

	data = append(data, '\n')
	_, err = s.rotator.Write(data)
	return err
}

// writeFallback 序列化失败时写出仅含保留字段的降级记录
func (s *FileSink) writeFallback(rec Record, cause error) error {
	line := map[string]any{
		fileKeyTime:     rec.Time.Format(time.RFC3339Nano),
		fileKeyLevel:    rec.Level.String(),
		"marshal_error": cause.Error(),
	}
	if rec.Msg != "" {
		line[fileKeyMsg] = rec.Msg
	}
	data, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("xsink: encode fallback record: %w", err)
	}
	data = append(data, '\n')
	_, err = s.rotator.Write(data)
	return err
}

// Close 关闭底层轮转器
func (s *FileSink) Close() error {
	return s.rotator.Close()
}

// String 返回 sink 的描述，用于计划展示
func (s *FileSink) String() string {
	return "file:" + s.path
}
