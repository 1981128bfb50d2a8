// Package converter 提供歌词文本的繁简转换处理器
package converter

import "github.com/yleoer/lyric/pkg/model"

// TextConverter 定义文本转换器接口
type TextConverter interface {
	Convert(text string) string // 转换一段文本，失败时返回原文
}

// ConvertLines 对所有行、所有轨道的音节文本就地应用转换器
// 元数据不做转换
func ConvertLines(lines []*model.LyricLine, c TextConverter) {
	if c == nil {
		return
	}
	for _, line := range lines {
		for i := range line.Tracks {
			for _, syl := range line.Tracks[i].Content.Syllables() {
				syl.Text = c.Convert(syl.Text)
			}
		}
	}
}
