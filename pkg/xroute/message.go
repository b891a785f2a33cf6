package xroute

// Message 日志调用的消息变体：自由文本或 record 形态的字段集合。
//
// 在调用边界显式区分两种形态，代替运行时类型探测。
// 零值 Message 是空文本消息。
type Message struct {
	text   string
	fields Fields
}

// Text 构造文本消息
func Text(s string) Message {
	return Message{text: s}
}

// Record 构造 record 形态的消息。
// 其字段并入事件上下文，显式 context 参数的同名键优先。
func Record(f Fields) Message {
	return Message{fields: f}
}

// TextAndFields 构造同时携带文本与字段的消息
func TextAndFields(s string, f Fields) Message {
	return Message{text: s, fields: f}
}
