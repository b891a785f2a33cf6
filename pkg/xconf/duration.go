package xconf

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// errEmptyDuration 时长字符串为空
var errEmptyDuration = errors.New("empty duration")

// parseInterval 解析轮转周期字符串。
//
// 接受 Go 时长语法（"12h"、"90m"），并额外支持天/周后缀："1d"、"2w"。
// time.ParseDuration 不支持 d/w（天的时长语义有歧义），这里按
// 1d=24h、1w=168h 的固定换算处理——轮转周期不需要日历精度。
func parseInterval(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errEmptyDuration
	}

	if d, err := time.ParseDuration(s); err == nil {
		if d <= 0 {
			return 0, errors.New("duration must be positive")
		}
		return d, nil
	}

	unit := s[len(s)-1]
	var per time.Duration
	switch unit {
	case 'd', 'D':
		per = 24 * time.Hour
	case 'w', 'W':
		per = 7 * 24 * time.Hour
	default:
		return 0, errors.New("unknown duration syntax")
	}

	n, err := strconv.ParseFloat(s[:len(s)-1], 64)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errors.New("duration must be positive")
	}

	return time.Duration(n * float64(per)), nil
}
