package xconf

import (
	"time"

	"github.com/omeyang/logkit/pkg/xlevel"
)

// Serializer 按字段名注册的值变换函数。
//
// 在事件上下文合并期对该字段的值调用，返回值替换原值。
// 未注册 serializer 的字段保持原值不变（恒等变换）。
// 变换函数必须是纯函数，不得阻塞。
type Serializer func(v any) any

// Config 用户提供的部分配置。
//
// 所有字段均可省略，省略的字段在 [Resolve] 时补齐文档化的默认值。
// 指针类型字段用于区分"未设置"与显式零值（如显式关闭 prettyPrint、
// 显式置空 destination 以禁用主文件输出）。
type Config struct {
	// Level 最低路由级别，六个级别名之一
	Level string `koanf:"level"`

	// PrettyPrint 是否启用人类可读的控制台输出
	// nil 时按运行环境推断：APP_ENV=production 为 false，否则为 true
	PrettyPrint *bool `koanf:"prettyPrint"`

	// Destination 主日志文件路径
	// nil 使用平台默认路径；显式空字符串表示不创建主文件输出
	Destination *string `koanf:"destination"`

	// Rotation 轮转策略，按子键与默认值合并
	Rotation Rotation `koanf:"rotation"`

	// LevelFiles 级别专属文件配置，key 为级别名，按子键与默认值合并
	LevelFiles map[string]LevelFile `koanf:"levelFiles"`

	// Redaction 脱敏规则，nil 表示不脱敏
	Redaction *Redaction `koanf:"redaction"`

	// BaseContext 附加到每条事件的基础上下文（最低优先级）
	BaseContext map[string]any `koanf:"baseContext"`

	// Serializers 按字段名注册的值变换，仅可编程设置，不从配置文件加载
	Serializers map[string]Serializer `koanf:"-"`
}

// Rotation 轮转策略的原始形式。
//
// 三个子键均可省略，省略的子键保留默认值（按子键合并）。
type Rotation struct {
	// Interval 轮转周期，Go 时长语法并额外支持 d/w 后缀（如 "1d"、"12h"）
	Interval string `koanf:"interval"`

	// Size 单文件大小上限，人类可读字节串（如 "10M"、"512KiB"）
	Size string `koanf:"size"`

	// MaxFiles 保留的文件数量，必须为正整数
	MaxFiles *int `koanf:"maxFiles"`
}

// LevelFile 单个级别专属文件的配置。
type LevelFile struct {
	// Enabled 是否启用该级别的专属文件
	// nil 时使用默认值：fatal/error 启用，其余禁用
	Enabled *bool `koanf:"enabled"`

	// Destination 该级别文件的显式路径
	// 为空时派生为 <主目标所在目录>/<级别名>.log
	Destination string `koanf:"destination"`

	// Rotation 覆盖该级别文件的轮转策略，nil 时沿用全局策略
	Rotation *Rotation `koanf:"rotation"`
}

// Redaction 脱敏规则的原始形式。
type Redaction struct {
	// Paths 点号路径列表（如 "req.headers.authorization"），必须非空
	Paths []string `koanf:"paths"`

	// Censor 替换文本，为空时使用 DefaultCensor
	Censor string `koanf:"censor"`
}

// RotationPolicy 完全解析后的轮转策略，三个字段总是有值。
type RotationPolicy struct {
	Interval  time.Duration
	SizeBytes int64
	MaxFiles  int
}

// RedactRule 完全解析后的脱敏规则。
type RedactRule struct {
	Paths  []string
	Censor string
}

// ResolvedLevelFile 完全解析后的级别专属文件配置。
//
// 六个级别各一项，Destination 总是有值（显式路径或派生路径），
// 即使 Enabled 为 false。
type ResolvedLevelFile struct {
	Level       xlevel.Level
	Enabled     bool
	Destination string
	Rotation    RotationPolicy
}

// ResolvedConfig 完全合并后的配置，所有可选字段均已填充默认值。
//
// Resolve 之后不可变，可在多个 goroutine 间自由共享读取。
type ResolvedConfig struct {
	Level       xlevel.Level
	PrettyPrint bool

	// Destination 主文件路径，空字符串表示不创建主文件输出
	Destination string

	Rotation RotationPolicy

	// LevelFiles 按严重程度 fatal → trace 排列的全部六项
	LevelFiles []ResolvedLevelFile

	// Redaction nil 表示不脱敏
	Redaction *RedactRule

	BaseContext map[string]any
	Serializers map[string]Serializer
}
