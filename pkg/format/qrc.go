package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yleoer/lyric/pkg/model"
)

var (
	// qrcHeaderRegex 匹配 [起始毫秒,持续毫秒] 行头
	qrcHeaderRegex = regexp.MustCompile(`^\[(\d+),(\d+)\]`)
	// qrcSyllableRegex 匹配 文本(起始毫秒,持续毫秒) 片段
	qrcSyllableRegex = regexp.MustCompile(`([^(]*)\((\d+),(\d+)\)`)
)

// qrcParser 解析 QQ 音乐逐字歌词
// 行头为绝对毫秒的起始与时长，每个音节后跟 (起始,时长)
// 有损字段：演唱者、非主唱轨道
type qrcParser struct{}

// Parse 解析 QRC 文本
func (p *qrcParser) Parse(input string) (*ParseResult, error) {
	result := &ParseResult{Metadata: model.Metadata{}}

	for lineNo, raw := range strings.Split(input, "\n") {
		raw = strings.TrimRight(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}

		header := qrcHeaderRegex.FindStringSubmatch(raw)
		if header == nil {
			// 非时间行按元数据标签处理
			if tags, _, ok := splitLeadingBrackets(raw); ok {
				for _, tag := range tags {
					if key, value, ok := metadataTag(tag); ok {
						result.Metadata.Add(key, value)
						continue
					}
					result.Warnings = append(result.Warnings,
						fmt.Sprintf("line %d: unparseable tag [%s], skipped", lineNo+1, tag))
				}
			} else {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("line %d: no recognizable structure, skipped", lineNo+1))
			}
			continue
		}

		start, _ := strconv.ParseInt(header[1], 10, 64)
		duration, _ := strconv.ParseInt(header[2], 10, 64)
		track, warnings := parsePairedSyllables(raw[len(header[0]):], lineNo+1)
		result.Warnings = append(result.Warnings, warnings...)
		if len(track.Words) == 0 {
			continue
		}

		line := model.NewLine(start, start+duration)
		line.AddTrack(model.AnnotatedTrack{ContentType: model.ContentMain, Content: *track})
		result.Lines = append(result.Lines, line)
	}
	return result, nil
}

// parsePairedSyllables 把 文本(起始,时长) 序列解析为一条轨道
// 空格规则与增强 LRC 相同：空格变为 LeadingSpace 并开启新词
func parsePairedSyllables(text string, lineNo int) (*model.LyricTrack, []string) {
	matches := qrcSyllableRegex.FindAllStringSubmatch(text, -1)
	var warnings []string
	if len(matches) == 0 && strings.TrimSpace(text) != "" {
		warnings = append(warnings, fmt.Sprintf("line %d: no syllable timing found", lineNo))
	}

	track := &model.LyricTrack{}
	pendingSpace := false
	for _, m := range matches {
		trimmed := strings.TrimLeft(m[1], " ")
		leading := pendingSpace || len(trimmed) < len(m[1])
		body := strings.TrimRight(trimmed, " ")
		pendingSpace = len(body) < len(trimmed)
		if body == "" {
			continue
		}
		start, _ := strconv.ParseInt(m[2], 10, 64)
		duration, _ := strconv.ParseInt(m[3], 10, 64)

		syl := model.LyricSyllable{
			Text:         body,
			StartMs:      start,
			EndMs:        start + duration,
			Timed:        true,
			LeadingSpace: leading,
		}
		if leading || len(track.Words) == 0 {
			track.Words = append(track.Words, model.Word{})
		}
		last := &track.Words[len(track.Words)-1]
		last.Syllables = append(last.Syllables, syl)
	}
	return track, warnings
}

// qrcSerializer 把规范模型序列化为 QRC
type qrcSerializer struct{}

// Serialize 输出 QRC 文本
// 未计时的音节以行级时间整体标注
func (s *qrcSerializer) Serialize(lines []*model.LyricLine, meta model.Metadata) (string, error) {
	var b strings.Builder
	writeMetadataTags(&b, meta)
	for _, line := range lines {
		fmt.Fprintf(&b, "[%d,%d]", line.StartMs, line.EndMs-line.StartMs)
		track := line.MainTrack()
		if track != nil {
			writePairedSyllables(&b, &track.Content, line)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// writePairedSyllables 输出 文本(起始,时长) 序列
func writePairedSyllables(b *strings.Builder, track *model.LyricTrack, line *model.LyricLine) {
	for _, syl := range track.Syllables() {
		if syl.LeadingSpace {
			b.WriteString(" ")
		}
		b.WriteString(syl.Text)
		if syl.Timed {
			fmt.Fprintf(b, "(%d,%d)", syl.StartMs, syl.EndMs-syl.StartMs)
		} else {
			fmt.Fprintf(b, "(%d,%d)", line.StartMs, line.EndMs-line.StartMs)
		}
	}
}
