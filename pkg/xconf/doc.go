// Package xconf 定义 logkit 的声明式路由配置及其合并规则。
//
// # 核心功能
//
//   - [Config]: 用户提供的部分配置（任意字段子集）
//   - [Resolve]: 合并默认值，产出全字段填充的 [ResolvedConfig]
//   - [FromFile] / [FromBytes]: 基于 koanf 的 YAML/JSON 配置加载
//   - [Watch]: 基于 fsnotify 的配置文件变更监视（防抖 + 自动重载）
//
// # 合并语义
//
// 顶层字段逐项覆盖默认值；rotation 与 levelFiles 两个嵌套结构按子键合并
// 而非整体替换——只给出 rotation.size 的配置不会丢失默认的
// interval/maxFiles。
//
// # 默认值
//
// level=info；prettyPrint 在 APP_ENV=production 时为 false，否则为 true；
// destination 为平台默认路径（用户缓存目录下 logkit/app.log）；
// rotation={interval:"1d", size:"10M", maxFiles:5}；
// levelFiles 仅 fatal/error 默认启用；redaction.censor 默认 "[REDACTED]"。
//
// # 校验
//
// 配置错误在合并期同步返回（构造任何 sink 之前）：未知级别名、
// 非正整数 maxFiles、空 redaction.paths、无法解析的 interval/size。
// 所有校验错误都可通过 errors.Is 与本包的哨兵错误匹配。
package xconf
