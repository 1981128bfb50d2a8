package stripper

import (
	"log"
	"regexp"
	"strings"

	"github.com/yleoer/lyric/pkg/rulecache"
)

// strippingRules 是由 Options 派生出的只读匹配规则：
// 预处理（按需小写化）后的关键词列表 + 编译完成的正则列表
// 每次清理调用重建一次，之后不再修改
type strippingRules struct {
	preparedKeywords     []string
	keywordCaseSensitive bool
	compiledRegexes      []*regexp.Regexp
}

// buildRules 根据配置构建匹配规则
// 非法正则会被记录日志后丢弃，不会中断整个清理流程；空白模式直接跳过
func buildRules(opts *Options, cache rulecache.Cache, logger *log.Logger) *strippingRules {
	rules := &strippingRules{keywordCaseSensitive: opts.KeywordCaseSensitive}

	if opts.KeywordCaseSensitive {
		rules.preparedKeywords = opts.Keywords
	} else {
		rules.preparedKeywords = make([]string, 0, len(opts.Keywords))
		for _, kw := range opts.Keywords {
			rules.preparedKeywords = append(rules.preparedKeywords, strings.ToLower(kw))
		}
	}

	if opts.EnableRegex && len(opts.RegexPatterns) > 0 {
		for _, pattern := range opts.RegexPatterns {
			if strings.TrimSpace(pattern) == "" {
				continue
			}
			re, err := cache.GetOrCompile(pattern, opts.RegexCaseSensitive)
			if err != nil {
				logger.Printf("WARN: [MetadataStripper] failed to compile regex '%s', rule dropped: %v", pattern, err)
				continue
			}
			rules.compiledRegexes = append(rules.compiledRegexes, re)
		}
	}

	return rules
}

func (r *strippingRules) hasRules() bool {
	return len(r.preparedKeywords) > 0 || len(r.compiledRegexes) > 0
}

// normalizeForKeywordCheck 在关键词匹配前对行文本做一层去包裹处理：
// 整行被一对方括号或圆括号包住时剥掉一层；
// 以未闭合的左括号开头时，去掉第一个对应右括号之前的全部内容
// 用于防御混入行内的 LRC 标签或演唱者/和声标注干扰元数据识别
func normalizeForKeywordCheck(text string) string {
	text = strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") && len(text) >= 2:
		text = text[1 : len(text)-1]
	case strings.HasPrefix(text, "["):
		if idx := strings.Index(text, "]"); idx >= 0 {
			text = strings.TrimLeft(text[idx+1:], " \t")
		}
	case strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") && len(text) >= 2:
		text = text[1 : len(text)-1]
	case strings.HasPrefix(text, "("):
		if idx := strings.Index(text, ")"); idx >= 0 {
			text = strings.TrimLeft(text[idx+1:], " \t")
		}
	}
	return text
}

// matches 判断一行文本是否命中任一规则
// 关键词规则作用于归一化文本：行须以某个关键词开头，且其后（允许空白）紧跟半角或全角冒号；
// 正则规则作用于原始文本，任一命中即可
func (r *strippingRules) matches(rawText string) bool {
	if len(r.preparedKeywords) > 0 {
		prepared := normalizeForKeywordCheck(rawText)
		if !r.keywordCaseSensitive {
			prepared = strings.ToLower(prepared)
		}
		for _, kw := range r.preparedKeywords {
			if rest, ok := strings.CutPrefix(prepared, kw); ok {
				rest = strings.TrimLeft(rest, " \t")
				if strings.HasPrefix(rest, ":") || strings.HasPrefix(rest, "：") {
					return true
				}
			}
		}
	}

	for _, re := range r.compiledRegexes {
		if re.MatchString(rawText) {
			return true
		}
	}

	return false
}
