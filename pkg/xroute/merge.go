package xroute

// mergeFields 按优先级合并事件上下文并应用变换。
//
// 优先级（同名键高者胜）：调用方字段 > 绑定上下文 > 基础上下文。
// 合并完成后依次应用顶层键的序列化器和脱敏规则。
// 返回的 map 为新分配，不与任何输入共享顶层结构。
func (r *Router) mergeFields(msgFields, extra Fields) Fields {
	n := len(r.cfg.BaseContext) + len(r.bound) + len(msgFields) + len(extra)
	if n == 0 && r.cfg.Redaction == nil {
		return nil
	}

	out := make(Fields, n)
	for k, v := range r.cfg.BaseContext {
		out[k] = v
	}
	for k, v := range r.bound {
		out[k] = v
	}
	for k, v := range msgFields {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}

	// 序列化器只作用于顶层键，且在脱敏之前执行
	for key, fn := range r.cfg.Serializers {
		if v, ok := out[key]; ok && fn != nil {
			out[key] = fn(v)
		}
	}

	if r.cfg.Redaction != nil {
		out = redactFields(out, r.cfg.Redaction)
	}
	return out
}
