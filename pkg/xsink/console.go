package xsink

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/omeyang/logkit/pkg/xlevel"
)

// 控制台渲染样式。级别徽标按严重程度着色，时间与字段键弱化显示。
var (
	consoleTimeStyle = lipgloss.NewStyle().Faint(true)
	consoleKeyStyle  = lipgloss.NewStyle().Faint(true)
	consoleMsgStyle  = lipgloss.NewStyle().Bold(true)

	consoleLevelStyles = map[xlevel.Level]lipgloss.Style{
		xlevel.LevelFatal: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201")),
		xlevel.LevelError: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		xlevel.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		xlevel.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		xlevel.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		xlevel.LevelTrace: lipgloss.NewStyle().Faint(true),
	}
)

// consoleTimeLayout 控制台时间格式，日志文件中保留完整时间戳，
// 控制台只显示到毫秒，便于人眼扫读
const consoleTimeLayout = "15:04:05.000"

// ConsoleSink 人类可读的控制台渲染器。
//
// 每条记录渲染为单行：时间、着色的级别徽标、消息、按键名排序的
// key=value 字段。并发写入由内部互斥锁串行化，保证行不交错。
type ConsoleSink struct {
	mu sync.Mutex
	w  io.Writer
}

var _ Sink = (*ConsoleSink)(nil)

// NewConsole 创建控制台渲染器。w 为 nil 时输出到 os.Stderr。
func NewConsole(w io.Writer) *ConsoleSink {
	if w == nil {
		w = os.Stderr
	}
	return &ConsoleSink{w: w}
}

// Write 渲染并写出一条记录
func (s *ConsoleSink) Write(rec Record) error {
	var b strings.Builder
	b.WriteString(consoleTimeStyle.Render(rec.Time.Format(consoleTimeLayout)))
	b.WriteByte(' ')

	style, ok := consoleLevelStyles[rec.Level]
	if !ok {
		style = lipgloss.NewStyle()
	}
	// 徽标固定 5 列宽，保证消息列对齐
	b.WriteString(style.Render(fmt.Sprintf("%-5s", strings.ToUpper(rec.Level.String()))))

	if rec.Msg != "" {
		b.WriteByte(' ')
		b.WriteString(consoleMsgStyle.Render(rec.Msg))
	}

	if len(rec.Fields) > 0 {
		keys := make([]string, 0, len(rec.Fields))
		for k := range rec.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteByte(' ')
			b.WriteString(consoleKeyStyle.Render(k + "="))
			b.WriteString(fmt.Sprintf("%v", rec.Fields[k]))
		}
	}
	b.WriteByte('\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.w, b.String())
	return err
}

// Close 实现 Sink 接口。控制台不持有资源，总是返回 nil。
func (s *ConsoleSink) Close() error {
	return nil
}

// String 返回 sink 的描述，用于计划展示
func (s *ConsoleSink) String() string {
	return "console"
}
