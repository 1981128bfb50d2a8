// Package stripper 负责清理歌词头尾的描述性元数据行
// 诸如作词/作曲/发行等制作名单常以普通歌词行的形式混在正文前后，
// 本包按配置的关键词与正则规则从两端裁掉连续的元数据区段，不触碰正文内部
package stripper

import (
	"log"

	"github.com/yleoer/lyric/pkg/model"
	"github.com/yleoer/lyric/pkg/rulecache"
)

// Stripper 是元数据行清理器
type Stripper struct {
	cache  rulecache.Cache
	logger *log.Logger
}

// New 创建清理器，正则编译结果通过 cache 复用
func New(cache rulecache.Cache, logger *log.Logger) *Stripper {
	return &Stripper{cache: cache, logger: logger}
}

// Strip 按规则移除行序列头尾的元数据行，返回保留的切片
// 功能未启用、无有效规则或输入为空时原样返回；
// 头尾裁剪点重叠（整篇都被判定为元数据）时整体清空，这是刻意的全有或全无策略
func (s *Stripper) Strip(lines []*model.LyricLine, opts Options) []*model.LyricLine {
	if !opts.Enabled {
		return lines
	}

	effective := opts
	if len(opts.Keywords) == 0 && len(opts.RegexPatterns) == 0 {
		s.logger.Printf("[MetadataStripper] no custom rules supplied, loading built-in defaults")
		effective.Keywords = defaultKeywords
		effective.RegexPatterns = defaultRegexPatterns
	}
	rules := buildRules(&effective, s.cache, s.logger)

	if len(lines) == 0 || !rules.hasRules() {
		return lines
	}

	originalCount := len(lines)
	headerLimit := effective.HeaderScanLimit.Calculate(originalCount)
	footerLimit := effective.FooterScanLimit.Calculate(originalCount)

	firstLyricIndex := findFirstLyricLineIndex(lines, rules, headerLimit)
	lastLyricExclusive := findLastLyricLineExclusiveIndex(lines, firstLyricIndex, rules, footerLimit)

	switch {
	case firstLyricIndex < lastLyricExclusive:
		lines = lines[firstLyricIndex:lastLyricExclusive]
	case firstLyricIndex > 0 || lastLyricExclusive < originalCount:
		lines = lines[:0]
	}

	if len(lines) < originalCount {
		s.logger.Printf("[MetadataStripper] stripped %d of %d lines", originalCount-len(lines), originalCount)
	}
	return lines
}

// findFirstLyricLineIndex 在头部窗口内找出最后一个命中规则的行，
// 返回其下一个下标作为正文起点；窗口内没有命中时返回 0
// 取最后命中位置意味着夹在两个元数据行之间的普通行也会被一并裁掉
func findFirstLyricLineIndex(lines []*model.LyricLine, rules *strippingRules, limit int) int {
	lastMatching := -1
	for i, line := range lines {
		if i >= limit {
			break
		}
		if rules.matches(line.MainText()) {
			lastMatching = i
		}
	}
	return lastMatching + 1
}

// findLastLyricLineExclusiveIndex 在尾部窗口内（不早于正文起点）
// 顺序找出第一个命中规则的行，返回它作为正文终点（不含）；没有命中时返回总行数
func findLastLyricLineExclusiveIndex(lines []*model.LyricLine, firstLyricIndex int, rules *strippingRules, limit int) int {
	if firstLyricIndex >= len(lines) {
		return firstLyricIndex
	}

	start := len(lines) - limit
	if start < firstLyricIndex {
		start = firstLyricIndex
	}

	for i := start; i < len(lines); i++ {
		if rules.matches(lines[i].MainText()) {
			return i
		}
	}
	return len(lines)
}
