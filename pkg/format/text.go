package format

import (
	"strings"

	"github.com/yleoer/lyric/pkg/model"
)

// textParser 解析纯文本歌词：每个非空行即一行歌词，无时间信息
// 有损字段：全部时间信息、演唱者、元数据、非主唱轨道
type textParser struct{}

// Parse 解析纯文本
func (p *textParser) Parse(input string) (*ParseResult, error) {
	result := &ParseResult{Metadata: model.Metadata{}}
	for _, raw := range strings.Split(input, "\n") {
		raw = strings.TrimRight(raw, "\r")
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		result.Lines = append(result.Lines, model.NewTextLine(0, 0, text))
	}
	return result, nil
}

// textSerializer 输出纯文本：逐行主唱文本
type textSerializer struct{}

// Serialize 输出纯文本
func (s *textSerializer) Serialize(lines []*model.LyricLine, _ model.Metadata) (string, error) {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line.MainText())
		b.WriteString("\n")
	}
	return b.String(), nil
}
