package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yleoer/lyric/pkg/model"
)

// lastLineDurationMs 是末行无法从后继行推断结束时间时使用的默认时长
const lastLineDurationMs = 5_000

// lrcParser 解析逐行 LRC
// 有损字段：逐字时间、演唱者、非主唱轨道在逐行 LRC 中不存在；
// 文本为空的时间戳行会被跳过
type lrcParser struct{}

type timedText struct {
	ms   int64
	text string
}

// Parse 解析 LRC 文本
// 同一行上的多个时间戳共享文本；无法解析的时间戳记为警告并跳过该行
func (p *lrcParser) Parse(input string) (*ParseResult, error) {
	result := &ParseResult{Metadata: model.Metadata{}}
	var entries []timedText

	for lineNo, raw := range strings.Split(input, "\n") {
		raw = strings.TrimRight(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}

		tags, rest, ok := splitLeadingBrackets(raw)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("line %d: no recognizable structure, skipped", lineNo+1))
			continue
		}

		var stamps []int64
		for _, tag := range tags {
			if ms, err := parseLRCTime(tag); err == nil {
				stamps = append(stamps, ms)
				continue
			}
			if key, value, ok := metadataTag(tag); ok && len(stamps) == 0 {
				result.Metadata.Add(key, value)
				continue
			}
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("line %d: unparseable tag [%s], skipped", lineNo+1, tag))
		}

		text := strings.TrimSpace(rest)
		if text == "" {
			continue
		}
		for _, ms := range stamps {
			entries = append(entries, timedText{ms: ms, text: text})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].ms < entries[j].ms })

	for i, e := range entries {
		end := e.ms + lastLineDurationMs
		if i+1 < len(entries) {
			end = entries[i+1].ms
		}
		result.Lines = append(result.Lines, model.NewTextLine(e.ms, end, e.text))
	}
	return result, nil
}

// splitLeadingBrackets 切出行首连续的方括号标签和剩余文本
// 行首不是方括号时返回 ok=false
func splitLeadingBrackets(line string) (tags []string, rest string, ok bool) {
	rest = line
	for strings.HasPrefix(rest, "[") {
		end := strings.Index(rest, "]")
		if end < 0 {
			break
		}
		tags = append(tags, rest[1:end])
		rest = rest[end+1:]
	}
	return tags, rest, len(tags) > 0
}

// lrcSerializer 把规范模型序列化为逐行 LRC
type lrcSerializer struct{}

// lrcTagNames 把规范键映射回 LRC 惯用的短标签
var lrcTagNames = map[model.CanonicalMetadataKey]string{
	model.KeyTitle:  "ti",
	model.KeyArtist: "ar",
	model.KeyAlbum:  "al",
	model.KeyAuthor: "by",
	model.KeyOffset: "offset",
}

// Serialize 输出 LRC 文本，元数据标签按键名排序以保证输出确定
func (s *lrcSerializer) Serialize(lines []*model.LyricLine, meta model.Metadata) (string, error) {
	var b strings.Builder
	writeMetadataTags(&b, meta)
	for _, line := range lines {
		b.WriteString("[")
		b.WriteString(formatLRCTime(line.StartMs))
		b.WriteString("]")
		b.WriteString(line.MainText())
		b.WriteString("\n")
	}
	return b.String(), nil
}

// writeMetadataTags 按确定顺序输出 [key:value] 元数据标签
func writeMetadataTags(b *strings.Builder, meta model.Metadata) {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	for _, k := range keys {
		key := model.CanonicalMetadataKey(k)
		tag := string(key)
		if short, ok := lrcTagNames[key]; ok {
			tag = short
		}
		for _, value := range meta[key] {
			fmt.Fprintf(b, "[%s:%s]\n", tag, value)
		}
	}
}
