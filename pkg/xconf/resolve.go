package xconf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/omeyang/logkit/pkg/util/xfile"
	"github.com/omeyang/logkit/pkg/xlevel"
)

// 文档化的默认值。
const (
	// DefaultInterval 默认轮转周期
	DefaultInterval = "1d"

	// DefaultSize 默认单文件大小上限
	DefaultSize = "10M"

	// DefaultMaxFiles 默认保留文件数
	DefaultMaxFiles = 5

	// DefaultCensor 默认脱敏替换文本
	DefaultCensor = "[REDACTED]"

	// EnvRuntime 运行环境变量名，值为 production 时默认关闭 prettyPrint
	EnvRuntime = "APP_ENV"

	// runtimeProduction 生产环境的取值
	runtimeProduction = "production"
)

// DefaultLevel 默认最低路由级别
const DefaultLevel = xlevel.LevelInfo

// DefaultDestination 返回平台默认的主日志文件路径。
//
// 优先使用用户缓存目录（os.UserCacheDir），不可用时退化到系统临时目录。
func DefaultDestination() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "logkit", "app.log")
}

// defaultLevelEnabled 级别专属文件的默认启用状态
func defaultLevelEnabled(l xlevel.Level) bool {
	return l == xlevel.LevelFatal || l == xlevel.LevelError
}

// Resolve 将部分配置与默认值合并，产出全字段填充的 ResolvedConfig。
//
// 合并是浅合并：顶层字段逐项覆盖；rotation 与 levelFiles 按子键合并。
// 校验失败时返回本包的哨兵错误（errors.Is 可匹配），且不构造任何 sink。
func Resolve(cfg Config) (ResolvedConfig, error) {
	var out ResolvedConfig

	level := DefaultLevel
	if cfg.Level != "" {
		parsed, err := xlevel.ParseLevel(cfg.Level)
		if err != nil {
			return out, fmt.Errorf("%w: %q", ErrInvalidLevel, cfg.Level)
		}
		level = parsed
	}
	out.Level = level

	if cfg.PrettyPrint != nil {
		out.PrettyPrint = *cfg.PrettyPrint
	} else {
		out.PrettyPrint = os.Getenv(EnvRuntime) != runtimeProduction
	}

	destination := DefaultDestination()
	if cfg.Destination != nil {
		destination = *cfg.Destination
	}
	if destination != "" {
		clean, err := xfile.SanitizePath(destination)
		if err != nil {
			return out, fmt.Errorf("%w: destination: %w", ErrInvalidDestination, err)
		}
		destination = clean
	}
	out.Destination = destination

	rotation, err := resolveRotation(defaultRotationPolicy(), cfg.Rotation)
	if err != nil {
		return out, err
	}
	out.Rotation = rotation

	// 级别文件路径的派生目录：主目标所在目录；
	// 主目标被显式禁用时仍使用默认目标的目录（级别文件不应因此失去落点）
	defaultDir := filepath.Dir(DefaultDestination())
	if destination != "" {
		defaultDir = filepath.Dir(destination)
	}

	levelFiles, err := resolveLevelFiles(cfg.LevelFiles, rotation, defaultDir)
	if err != nil {
		return out, err
	}
	out.LevelFiles = levelFiles

	if cfg.Redaction != nil {
		if len(cfg.Redaction.Paths) == 0 {
			return out, fmt.Errorf("%w: redaction.paths", ErrEmptyRedactPaths)
		}
		censor := cfg.Redaction.Censor
		if censor == "" {
			censor = DefaultCensor
		}
		rule := RedactRule{
			Paths:  append([]string(nil), cfg.Redaction.Paths...),
			Censor: censor,
		}
		out.Redaction = &rule
	}

	if len(cfg.BaseContext) > 0 {
		out.BaseContext = make(map[string]any, len(cfg.BaseContext))
		for k, v := range cfg.BaseContext {
			out.BaseContext[k] = v
		}
	}

	if len(cfg.Serializers) > 0 {
		out.Serializers = make(map[string]Serializer, len(cfg.Serializers))
		for k, fn := range cfg.Serializers {
			if fn != nil {
				out.Serializers[k] = fn
			}
		}
	}

	return out, nil
}

// defaultRotationPolicy 返回全默认的轮转策略。
// 默认串是常量，解析失败属于编程错误，直接 panic 以便在测试期暴露。
func defaultRotationPolicy() RotationPolicy {
	interval, err := parseInterval(DefaultInterval)
	if err != nil {
		panic(fmt.Sprintf("xconf: default interval: %v", err))
	}
	size, err := humanize.ParseBytes(DefaultSize)
	if err != nil {
		panic(fmt.Sprintf("xconf: default size: %v", err))
	}
	return RotationPolicy{
		Interval:  interval,
		SizeBytes: int64(size), //nolint:gosec // 默认值远小于 int64 上限
		MaxFiles:  DefaultMaxFiles,
	}
}

// resolveRotation 按子键将原始轮转配置合并到基准策略上。
//
// 只覆盖原始配置中出现的子键：给出 size 不会丢失基准的 interval/maxFiles。
func resolveRotation(base RotationPolicy, raw Rotation) (RotationPolicy, error) {
	out := base

	if raw.Interval != "" {
		interval, err := parseInterval(raw.Interval)
		if err != nil {
			return out, fmt.Errorf("%w: %q: %w", ErrInvalidInterval, raw.Interval, err)
		}
		out.Interval = interval
	}

	if raw.Size != "" {
		size, err := humanize.ParseBytes(raw.Size)
		if err != nil {
			return out, fmt.Errorf("%w: %q: %w", ErrInvalidSize, raw.Size, err)
		}
		out.SizeBytes = int64(size) //nolint:gosec // humanize 解析结果受配置约束
	}

	if raw.MaxFiles != nil {
		if *raw.MaxFiles < 1 {
			return out, fmt.Errorf("%w: got %d", ErrInvalidMaxFiles, *raw.MaxFiles)
		}
		out.MaxFiles = *raw.MaxFiles
	}

	return out, nil
}

// resolveLevelFiles 产出按严重程度 fatal → trace 排列的全部六项级别文件配置。
func resolveLevelFiles(raw map[string]LevelFile, rotation RotationPolicy, defaultDir string) ([]ResolvedLevelFile, error) {
	// 原始 map 的 key 先统一解析为级别，未知级别名直接拒绝
	byLevel := make(map[xlevel.Level]LevelFile, len(raw))
	for name, entry := range raw {
		l, err := xlevel.ParseLevel(name)
		if err != nil {
			return nil, fmt.Errorf("%w: levelFiles key %q", ErrInvalidLevel, name)
		}
		byLevel[l] = entry
	}

	out := make([]ResolvedLevelFile, 0, len(xlevel.Levels()))
	for _, l := range xlevel.Levels() {
		resolved := ResolvedLevelFile{
			Level:       l,
			Enabled:     defaultLevelEnabled(l),
			Destination: filepath.Join(defaultDir, l.String()+".log"),
			Rotation:    rotation,
		}

		entry, ok := byLevel[l]
		if !ok {
			out = append(out, resolved)
			continue
		}

		if entry.Enabled != nil {
			resolved.Enabled = *entry.Enabled
		}
		if entry.Destination != "" {
			clean, err := xfile.SanitizePath(entry.Destination)
			if err != nil {
				return nil, fmt.Errorf("%w: levelFiles.%s.destination: %w", ErrInvalidDestination, l, err)
			}
			resolved.Destination = clean
		}
		if entry.Rotation != nil {
			merged, err := resolveRotation(rotation, *entry.Rotation)
			if err != nil {
				return nil, fmt.Errorf("levelFiles.%s: %w", l, err)
			}
			resolved.Rotation = merged
		}

		out = append(out, resolved)
	}

	return out, nil
}
