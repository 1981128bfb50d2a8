package stripper

import "math"

// ScanLimitMode 表示扫描窗口的计算策略
type ScanLimitMode int

const (
	ScanAll      ScanLimitMode = iota // 不限制，扫描全部行
	ScanFixed                         // 固定行数
	ScanFraction                      // 总行数的比例
)

// ScanLimit 描述头部/尾部扫描窗口
// 零值表示不限制
type ScanLimit struct {
	Mode     ScanLimitMode
	Lines    int     // Mode 为 ScanFixed 时生效
	Fraction float64 // Mode 为 ScanFraction 时生效，取值 (0,1]
}

// Calculate 根据总行数求出实际窗口大小
func (l ScanLimit) Calculate(total int) int {
	switch l.Mode {
	case ScanFixed:
		if l.Lines < 0 {
			return 0
		}
		if l.Lines > total {
			return total
		}
		return l.Lines
	case ScanFraction:
		if l.Fraction <= 0 {
			return 0
		}
		if l.Fraction >= 1 {
			return total
		}
		return int(math.Ceil(float64(total) * l.Fraction))
	default:
		return total
	}
}

// Options 是元数据清理器的完整配置
// Keywords 和 RegexPatterns 同时为空时启用内置默认规则
type Options struct {
	Enabled              bool
	KeywordCaseSensitive bool
	EnableRegex          bool
	RegexCaseSensitive   bool
	Keywords             []string
	RegexPatterns        []string
	HeaderScanLimit      ScanLimit
	FooterScanLimit      ScanLimit
}

// DefaultOptions 返回启用状态下的默认配置：
// 关键词不区分大小写，正则清理开启，扫描窗口不限制
func DefaultOptions() Options {
	return Options{
		Enabled:     true,
		EnableRegex: true,
	}
}
