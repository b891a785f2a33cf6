package xroute

import (
	"strings"

	"github.com/omeyang/logkit/pkg/xconf"
)

// redactFields 按点号路径把匹配字段替换为替代文本。
//
// 路径不存在或中途不是对象时静默跳过。顶层 map 由调用方持有所有权，
// 可以就地改写；嵌套 map 可能与业务代码共享，沿路径写时复制，
// 绝不改写调用方传入的原始数据。
func redactFields(fields Fields, rule *xconf.RedactRule) Fields {
	for _, path := range rule.Paths {
		segs := strings.Split(path, ".")
		redactPath(fields, segs, rule.Censor)
	}
	return fields
}

func redactPath(m map[string]any, segs []string, censor string) {
	if len(segs) == 0 {
		return
	}
	key := segs[0]
	if len(segs) == 1 {
		if _, ok := m[key]; ok {
			m[key] = censor
		}
		return
	}

	child, ok := asMap(m[key])
	if !ok {
		return
	}
	// 写时复制：嵌套层替换为浅拷贝后再下钻，原 map 保持不变
	cloned := make(map[string]any, len(child))
	for k, v := range child {
		cloned[k] = v
	}
	m[key] = cloned
	redactPath(cloned, segs[1:], censor)
}

func asMap(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case map[string]any:
		return x, true
	case Fields:
		return x, true
	}
	return nil, false
}
