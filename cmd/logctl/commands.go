package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/omeyang/logkit/pkg/xconf"
	"github.com/omeyang/logkit/pkg/xlevel"
	"github.com/omeyang/logkit/pkg/xroute"
)

// usageError 表示参数层面的错误，映射为退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createValidateCommand(),
		createPlanCommand(),
		createEmitCommand(),
		createWatchCommand(),
	}
}

// createValidateCommand 创建 validate 子命令。
func createValidateCommand() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "校验配置文件，输出解析后的完整配置",
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd.String("config"))
			if err != nil {
				return err
			}
			return cmdValidate(cmd.Writer, cfg)
		},
	}
}

// createPlanCommand 创建 plan 子命令。
func createPlanCommand() *cli.Command {
	return &cli.Command{
		Name:    "plan",
		Aliases: []string{"p"},
		Usage:   "展示配置解析出的 sink 计划（不创建任何文件）",
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd.String("config"))
			if err != nil {
				return err
			}
			return cmdPlan(cmd.Writer, cfg)
		},
	}
}

// createEmitCommand 创建 emit 子命令。
func createEmitCommand() *cli.Command {
	return &cli.Command{
		Name:    "emit",
		Aliases: []string{"e"},
		Usage:   "按配置构造路由器并发送一条测试事件",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "level",
				Aliases: []string{"l"},
				Usage:   "事件级别",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "msg",
				Aliases: []string{"m"},
				Usage:   "事件消息",
				Value:   "logctl emit",
			},
			&cli.StringSliceFlag{
				Name:    "field",
				Aliases: []string{"f"},
				Usage:   "附加字段，key=value 形式，可重复",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd.String("config"))
			if err != nil {
				return err
			}
			return cmdEmit(cmd.Writer, cfg, cmd.String("level"), cmd.String("msg"), cmd.StringSlice("field"))
		},
	}
}

// createWatchCommand 创建 watch 子命令。
func createWatchCommand() *cli.Command {
	return &cli.Command{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "跟踪配置文件变更，每次变更后重新展示 sink 计划",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cmdWatch(ctx, cmd.Writer, cmd.String("config"))
		},
	}
}

// loadConfig 读取并解析配置文件。
// 未指定 --config 时使用空配置（全部走默认值），与库内行为一致。
func loadConfig(path string) (xconf.Config, error) {
	if path == "" {
		return xconf.Config{}, nil
	}
	cfg, err := xconf.FromFile(path)
	if err != nil {
		return xconf.Config{}, fmt.Errorf("加载配置 %s: %w", path, err)
	}
	return cfg, nil
}

// cmdValidate 校验配置并输出补全默认值后的完整配置。
func cmdValidate(w io.Writer, cfg xconf.Config) error {
	resolved, err := xconf.Resolve(cfg)
	if err != nil {
		return fmt.Errorf("配置无效: %w", err)
	}

	fmt.Fprintln(w, "配置有效")
	fmt.Fprintf(w, "级别:       %s\n", resolved.Level)
	fmt.Fprintf(w, "控制台输出: %v\n", resolved.PrettyPrint)
	if resolved.Destination == "" {
		fmt.Fprintln(w, "主输出:     （禁用）")
	} else {
		fmt.Fprintf(w, "主输出:     %s\n", resolved.Destination)
	}
	fmt.Fprintf(w, "轮转:       %s\n", describeRotation(resolved.Rotation))
	for _, lf := range resolved.LevelFiles {
		state := "禁用"
		if lf.Enabled {
			state = lf.Destination
		}
		fmt.Fprintf(w, "级别文件:   %-5s %s\n", lf.Level, state)
	}
	if resolved.Redaction != nil {
		fmt.Fprintf(w, "脱敏:       %d 条路径，替代文本 %q\n",
			len(resolved.Redaction.Paths), resolved.Redaction.Censor)
	}
	if len(resolved.BaseContext) > 0 {
		fmt.Fprintf(w, "基础上下文: %d 个字段\n", len(resolved.BaseContext))
	}
	return nil
}

// cmdPlan 展示解析后的 sink 计划。
// 只读展示，不创建目录和文件；顺序与运行时计划一致。
func cmdPlan(w io.Writer, cfg xconf.Config) error {
	resolved, err := xconf.Resolve(cfg)
	if err != nil {
		return fmt.Errorf("配置无效: %w", err)
	}

	n := 0
	if resolved.PrettyPrint {
		n++
		fmt.Fprintf(w, "%d. console  stderr  阈值 ≥ %s\n", n, resolved.Level)
	}
	if resolved.Destination != "" {
		n++
		fmt.Fprintf(w, "%d. file     %s  阈值 ≥ %s  (%s)\n",
			n, resolved.Destination, resolved.Level, describeRotation(resolved.Rotation))
	}
	for _, lf := range resolved.LevelFiles {
		if !lf.Enabled {
			continue
		}
		n++
		fmt.Fprintf(w, "%d. file     %s  精确 = %s  (%s)\n",
			n, lf.Destination, lf.Level, describeRotation(lf.Rotation))
	}
	if n == 0 {
		fmt.Fprintln(w, "计划为空：所有输出端均被禁用")
	}
	return nil
}

// cmdEmit 构造路由器并发送一条测试事件，验证 sink 真正可写。
func cmdEmit(w io.Writer, cfg xconf.Config, levelStr, msg string, fieldArgs []string) error {
	level, err := xlevel.ParseLevel(levelStr)
	if err != nil {
		return &usageError{msg: fmt.Sprintf("无效级别 %q", levelStr)}
	}

	fields, err := parseFields(fieldArgs)
	if err != nil {
		return err
	}

	router, cleanup, err := xroute.New(cfg)
	if err != nil {
		if router == nil {
			return fmt.Errorf("配置无效: %w", err)
		}
		// 部分 sink 失败：报告但继续发送，与库的降级语义一致
		fmt.Fprintf(os.Stderr, "警告: 部分 sink 构造失败: %v\n", err)
	}
	defer func() {
		if cerr := cleanup(); cerr != nil {
			fmt.Fprintf(os.Stderr, "警告: 关闭 sink 失败: %v\n", cerr)
		}
	}()

	if !router.Enabled(level) {
		fmt.Fprintf(w, "事件级别 %s 不会被任何 sink 接受（当前最低级别 %s）\n",
			level, router.GetLevel())
		return nil
	}

	router.Route(level, xroute.TextAndFields(msg, fields), nil)
	fmt.Fprintf(w, "已发送 %s 事件到 %d 个 sink 候选\n", level, len(router.Plan()))
	return nil
}

// cmdWatch 跟踪配置文件变更，直到被信号中断。
// 加载或校验失败不终止跟踪：用户修复文件后下一次变更仍会被处理。
func cmdWatch(ctx context.Context, w io.Writer, path string) error {
	if path == "" {
		return &usageError{msg: "watch 命令需要 --config 指定配置文件"}
	}

	render := func(cfg xconf.Config, err error) {
		if err != nil {
			fmt.Fprintf(w, "加载失败: %v\n", err)
			return
		}
		if perr := cmdPlan(w, cfg); perr != nil {
			fmt.Fprintf(w, "%v\n", perr)
		}
	}

	// 初始计划
	cfg, err := loadConfig(path)
	render(cfg, err)

	watcher, err := xconf.Watch(path, func(cfg xconf.Config, err error) {
		fmt.Fprintf(w, "\n[%s] 配置变更\n", time.Now().Format("15:04:05"))
		render(cfg, err)
	})
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Stop() }()

	watcher.StartAsync()
	fmt.Fprintf(w, "\n正在跟踪 %s（Ctrl+C 退出）\n", path)
	<-ctx.Done()
	return nil
}

// parseFields 解析 key=value 形式的字段参数。
func parseFields(args []string) (xroute.Fields, error) {
	if len(args) == 0 {
		return nil, nil
	}
	fields := make(xroute.Fields, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, &usageError{msg: fmt.Sprintf("字段参数 %q 不是 key=value 形式", arg)}
		}
		fields[key] = value
	}
	return fields, nil
}

// describeRotation 人类可读的轮转策略描述。
func describeRotation(p xconf.RotationPolicy) string {
	return fmt.Sprintf("每 %s 或 %s 轮转，保留 %d 份",
		p.Interval, humanize.Bytes(uint64(p.SizeBytes)), p.MaxFiles)
}
