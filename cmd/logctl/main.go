// logctl 是 logkit 配置的命令行检查工具。
//
// 用法:
//
//	logctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config   配置文件路径 (yaml/json)
//
// 命令:
//
//	validate       校验配置文件，输出解析后的完整配置
//	plan           展示配置解析出的 sink 计划（不创建任何文件）
//	emit           按配置构造路由器并发送一条测试事件
//	watch          跟踪配置文件变更，每次变更后重新展示计划
//	help           显示帮助信息
//
// 退出码:
//
//	0: 命令执行成功
//	1: 命令执行失败（配置无效、sink 构造失败等）
//	2: 参数错误（缺少配置文件、未知级别、未知命令等）
//
// 示例:
//
//	logctl -c app.yaml validate           # 校验配置
//	logctl -c app.yaml plan               # 预览 sink 计划
//	logctl -c app.yaml emit --level warn --msg "smoke test"
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "logctl",
		Usage:   "logkit 配置检查工具",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径 (yaml/json)",
			},
		},
		Commands:       createCommands(),
		DefaultCommand: "help",
		Authors: []any{
			"logkit Team",
		},
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
		Description: `logctl 读取 logkit 的声明式日志配置，在不接入应用的情况下
检查配置会被如何解释。

主要命令:
  validate            校验配置并输出补全默认值后的完整配置
  plan                展示会创建哪些 sink、各自的过滤器与轮转策略
  emit                真正构造路由器并发送一条测试事件
    --level, -l       事件级别 (trace/debug/info/warn/error/fatal)
    --msg, -m         事件消息
    --field, -f       附加字段，key=value 形式，可重复
  watch               跟踪配置文件变更（Ctrl+C 退出）`,
	}
}

func run() int {
	app := createApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandler(cancel)

	if err := app.Run(ctx, os.Args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}

// setupSignalHandler 设置信号处理。
// 设计决策: 第一次信号优雅取消，第二次信号强制退出（退出码 130 = 128 + SIGINT）。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel() // 第一次信号: 优雅取消

		<-sigCh
		signal.Stop(sigCh) // 回收订阅
		os.Exit(130)       // 第二次信号: 强制退出
	}()
}
