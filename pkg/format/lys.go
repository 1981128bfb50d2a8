package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yleoer/lyric/pkg/model"
)

// lysHeaderRegex 匹配 Lyricify Syllable 的行属性头 [0]~[8]
var lysHeaderRegex = regexp.MustCompile(`^\[(\d)\]`)

// LYS 行属性取值
// 0 未标记 1 左侧演唱者 2 右侧演唱者
// 3 背景和声 4 左侧背景和声 5 右侧背景和声
const (
	lysPropNone    = 0
	lysPropLeft    = 1
	lysPropRight   = 2
	lysPropBg      = 3
	lysPropBgLeft  = 4
	lysPropBgRight = 5
)

// LYS 属性中的左右演唱者映射为稳定的演唱者标识
const (
	lysAgentLeft  = "v1"
	lysAgentRight = "v2"
)

// lysParser 解析 Lyricify Syllable 格式
// 行属性携带演唱者与背景和声提示；背景行并入前一主唱行作为背景轨道
// 有损字段：合唱标识（LYS 属性无对应取值）
type lysParser struct{}

// Parse 解析 LYS 文本
func (p *lysParser) Parse(input string) (*ParseResult, error) {
	result := &ParseResult{Metadata: model.Metadata{}}

	for lineNo, raw := range strings.Split(input, "\n") {
		raw = strings.TrimRight(raw, "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}

		header := lysHeaderRegex.FindStringSubmatch(raw)
		if header == nil {
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

		prop := int(header[1][0] - '0')
		track, warnings := parsePairedSyllables(raw[len(header[0]):], lineNo+1)
		result.Warnings = append(result.Warnings, warnings...)
		syls := track.Syllables()
		if len(syls) == 0 {
			continue
		}
		start := syls[0].StartMs
		end := syls[len(syls)-1].EndMs

		if prop >= lysPropBg {
			// 背景和声：尽量附着到前一主唱行
			annotated := model.AnnotatedTrack{ContentType: model.ContentBackground, Content: *track}
			if n := len(result.Lines); n > 0 && result.Lines[n-1].TrackOf(model.ContentBackground) == nil {
				prev := result.Lines[n-1]
				prev.AddTrack(annotated)
				if end > prev.EndMs {
					prev.EndMs = end
				}
				continue
			}
			line := model.NewLine(start, end)
			line.Agent = lysAgent(prop)
			line.AddTrack(annotated)
			result.Lines = append(result.Lines, line)
			continue
		}

		line := model.NewLine(start, end)
		line.Agent = lysAgent(prop)
		line.AddTrack(model.AnnotatedTrack{ContentType: model.ContentMain, Content: *track})
		result.Lines = append(result.Lines, line)
	}
	return result, nil
}

// lysAgent 把 LYS 属性转换为演唱者标识
func lysAgent(prop int) string {
	switch prop {
	case lysPropLeft, lysPropBgLeft:
		return lysAgentLeft
	case lysPropRight, lysPropBgRight:
		return lysAgentRight
	default:
		return ""
	}
}

// lysProp 把演唱者标识转换回 LYS 属性
func lysProp(agent string, background bool) int {
	base := lysPropNone
	switch agent {
	case lysAgentLeft:
		base = lysPropLeft
	case lysAgentRight:
		base = lysPropRight
	}
	if background {
		return base + lysPropBg
	}
	return base
}

// lysSerializer 把规范模型序列化为 LYS
// 行内的背景轨道紧随主唱行以独立的背景属性行输出
type lysSerializer struct{}

// Serialize 输出 LYS 文本
func (s *lysSerializer) Serialize(lines []*model.LyricLine, meta model.Metadata) (string, error) {
	var b strings.Builder
	writeMetadataTags(&b, meta)
	for _, line := range lines {
		if track := line.MainTrack(); track != nil {
			fmt.Fprintf(&b, "[%d]", lysProp(line.Agent, false))
			writePairedSyllables(&b, &track.Content, line)
			b.WriteString("\n")
		}
		if track := line.TrackOf(model.ContentBackground); track != nil {
			fmt.Fprintf(&b, "[%d]", lysProp(line.Agent, true))
			writePairedSyllables(&b, &track.Content, line)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
