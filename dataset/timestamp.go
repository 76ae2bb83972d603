package dataset

import (
	"fmt"
	"time"

	"github.com/rushteam/sarkit/pkg/conv"
)

// 支持的字符串时间格式，按顺序尝试。
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp 把任意形式的时间戳归一到 time.Time：
//   - time.Time 原样返回
//   - 整数/浮点按 Unix 秒处理
//   - 字符串按 RFC3339、"2006-01-02 15:04:05"、"2006-01-02" 依次尝试
//
// 交互记录在进入模型之前都经过这里，衰减计算只面对单一时间线。
func ParseTimestamp(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case string:
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, val); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unsupported timestamp string %q", val)
	default:
		if sec, ok := conv.ToInt64(v); ok {
			return time.Unix(sec, 0).UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp value %v (%T)", v, v)
}
