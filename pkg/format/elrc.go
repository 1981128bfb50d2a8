package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yleoer/lyric/pkg/model"
)

// elrcSyllableRegex 匹配 <时间戳>音节文本 片段
var elrcSyllableRegex = regexp.MustCompile(`<(\d+:\d{1,2}(?:\.\d{1,3})?)>([^<]*)`)

// elrcParser 解析带逐字时间戳的增强 LRC（如 ESLyric 输出）
// 行首为 [行时间]，其后为 <音节时间>文本 序列，行尾的 <时间> 封闭最后一个音节
// 有损字段：演唱者、非主唱轨道
type elrcParser struct{}

// Parse 解析增强 LRC 文本
func (p *elrcParser) Parse(input string) (*ParseResult, error) {
	result := &ParseResult{Metadata: model.Metadata{}}

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

		var lineStart int64 = -1
		for _, tag := range tags {
			if ms, err := parseLRCTime(tag); err == nil {
				lineStart = ms
				continue
			}
			if key, value, ok := metadataTag(tag); ok && lineStart < 0 {
				result.Metadata.Add(key, value)
				continue
			}
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("line %d: unparseable tag [%s], skipped", lineNo+1, tag))
		}
		if lineStart < 0 {
			continue
		}

		track, warnings := parseSyllableRun(rest, lineNo+1)
		result.Warnings = append(result.Warnings, warnings...)
		syls := track.Syllables()
		if len(syls) == 0 {
			continue
		}

		line := model.NewLine(lineStart, syls[len(syls)-1].EndMs)
		if line.EndMs < line.StartMs {
			line.EndMs = line.StartMs
		}
		line.AddTrack(model.AnnotatedTrack{ContentType: model.ContentMain, Content: *track})
		result.Lines = append(result.Lines, line)
	}
	return result, nil
}

// parseSyllableRun 把 <时间>文本 序列解析为一条轨道
// 音节结束时间取下一个时间戳；末尾缺少封闭时间戳时记警告并按零时长处理
// 文本中的空格转换为 LeadingSpace 标记，空格处开启新词
func parseSyllableRun(text string, lineNo int) (*model.LyricTrack, []string) {
	matches := elrcSyllableRegex.FindAllStringSubmatch(text, -1)
	var warnings []string
	if len(matches) == 0 && strings.TrimSpace(text) != "" {
		warnings = append(warnings, fmt.Sprintf("line %d: no syllable timing found", lineNo))
	}
	type rawSyl struct {
		startMs int64
		text    string
	}
	var raws []rawSyl
	for _, m := range matches {
		ms, err := parseLRCTime(m[1])
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: bad syllable timestamp <%s>, dropped", lineNo, m[1]))
			continue
		}
		raws = append(raws, rawSyl{startMs: ms, text: m[2]})
	}

	track := &model.LyricTrack{}
	pendingSpace := false
	for i, r := range raws {
		trimmed := strings.TrimLeft(r.text, " ")
		leading := pendingSpace || len(trimmed) < len(r.text)
		body := strings.TrimRight(trimmed, " ")
		pendingSpace = len(body) < len(trimmed)
		if body == "" {
			// 纯时间戳：封闭前一个音节
			continue
		}

		end := r.startMs
		if i+1 < len(raws) {
			end = raws[i+1].startMs
		} else {
			warnings = append(warnings, fmt.Sprintf("line %d: last syllable has no closing timestamp", lineNo))
		}

		syl := model.LyricSyllable{
			Text:         body,
			StartMs:      r.startMs,
			EndMs:        end,
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

// elrcSerializer 把规范模型序列化为增强 LRC
// 未计时的音节退化为仅含行级时间的普通 LRC 行
type elrcSerializer struct{}

// Serialize 输出增强 LRC 文本
func (s *elrcSerializer) Serialize(lines []*model.LyricLine, meta model.Metadata) (string, error) {
	var b strings.Builder
	writeMetadataTags(&b, meta)
	for _, line := range lines {
		b.WriteString("[")
		b.WriteString(formatLRCTime(line.StartMs))
		b.WriteString("]")

		track := line.MainTrack()
		if track == nil {
			b.WriteString("\n")
			continue
		}
		syls := track.Content.Syllables()
		timed := false
		for _, syl := range syls {
			if syl.Timed {
				timed = true
				break
			}
		}
		if !timed {
			b.WriteString(track.Content.Text())
			b.WriteString("\n")
			continue
		}

		var lastEnd int64
		for i, syl := range syls {
			// 音节间有空隙时先输出前一音节的封闭时间戳
			if i > 0 && syl.StartMs != lastEnd {
				b.WriteString("<")
				b.WriteString(formatLRCTime(lastEnd))
				b.WriteString(">")
			}
			b.WriteString("<")
			b.WriteString(formatLRCTime(syl.StartMs))
			b.WriteString(">")
			if syl.LeadingSpace {
				b.WriteString(" ")
			}
			b.WriteString(syl.Text)
			lastEnd = syl.EndMs
		}
		b.WriteString("<")
		b.WriteString(formatLRCTime(lastEnd))
		b.WriteString(">\n")
	}
	return b.String(), nil
}
