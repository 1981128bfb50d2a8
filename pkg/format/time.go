package format

import (
	"fmt"
	"regexp"
	"strconv"
)

// lrcTimeRegex 匹配 mm:ss 或 mm:ss.x{1,3} 形式的时间
var lrcTimeRegex = regexp.MustCompile(`^(\d+):(\d{1,2})(?:\.(\d{1,3}))?$`)

// parseLRCTime 把 mm:ss.xx（或 mm:ss.xxx / mm:ss）解析为毫秒
// 两位小数按厘秒、三位按毫秒、一位按十分之一秒换算
func parseLRCTime(s string) (int64, error) {
	m := lrcTimeRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	minutes, _ := strconv.ParseInt(m[1], 10, 64)
	seconds, _ := strconv.ParseInt(m[2], 10, 64)
	if seconds >= 60 {
		return 0, fmt.Errorf("invalid timestamp %q: seconds out of range", s)
	}
	var frac int64
	if m[3] != "" {
		n, _ := strconv.ParseInt(m[3], 10, 64)
		switch len(m[3]) {
		case 1:
			frac = n * 100
		case 2:
			frac = n * 10
		case 3:
			frac = n
		}
	}
	return minutes*60_000 + seconds*1_000 + frac, nil
}

// formatLRCTime 把毫秒格式化为 mm:ss.xxx
// 序列化统一输出毫秒精度，保证解析结果再序列化不丢失时间信息
func formatLRCTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%02d:%02d.%03d", ms/60_000, ms%60_000/1_000, ms%1_000)
}
