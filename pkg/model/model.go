package model

import "strings"

// ContentType 表示轨道在歌词行中承担的角色
type ContentType int

const (
	ContentMain         ContentType = iota // 主唱歌词
	ContentTranslation                     // 翻译
	ContentRomanization                    // 罗马音/拼音
	ContentBackground                      // 背景和声
)

// String 返回角色的可读名称
func (c ContentType) String() string {
	switch c {
	case ContentMain:
		return "main"
	case ContentTranslation:
		return "translation"
	case ContentRomanization:
		return "romanization"
	case ContentBackground:
		return "background"
	default:
		return "unknown"
	}
}

// LyricSyllable 表示一个音节
// StartMs/EndMs 仅在 Timed 为 true 时有效；
// LeadingSpace 标记该音节前有空格，用于无损还原显示文本
type LyricSyllable struct {
	Text         string
	StartMs      int64
	EndMs        int64
	Timed        bool
	LeadingSpace bool
}

// DurationMs 返回音节时长，未计时音节返回 0
func (s *LyricSyllable) DurationMs() int64 {
	if !s.Timed {
		return 0
	}
	return s.EndMs - s.StartMs
}

// Word 表示一个词，由若干有序音节组成
type Word struct {
	Syllables []LyricSyllable
}

// LyricTrack 表示一条轨道，由若干有序词组成
type LyricTrack struct {
	Words []Word
}

// Syllables 按顺序收集轨道内所有音节的指针，便于跨词遍历
func (t *LyricTrack) Syllables() []*LyricSyllable {
	var out []*LyricSyllable
	for i := range t.Words {
		for j := range t.Words[i].Syllables {
			out = append(out, &t.Words[i].Syllables[j])
		}
	}
	return out
}

// Text 拼接轨道的显示文本，依据 LeadingSpace 还原空格
func (t *LyricTrack) Text() string {
	var b strings.Builder
	for i := range t.Words {
		for j := range t.Words[i].Syllables {
			syl := &t.Words[i].Syllables[j]
			if syl.LeadingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(syl.Text)
		}
	}
	return b.String()
}

// AnnotatedTrack 给 LyricTrack 附加内容角色标记
type AnnotatedTrack struct {
	ContentType ContentType
	Content     LyricTrack
}

// LyricLine 表示一行歌词，时间单位为毫秒，要求 StartMs <= EndMs
// Agent 为演唱者标识，空字符串表示未识别
type LyricLine struct {
	StartMs int64
	EndMs   int64
	Agent   string
	Tracks  []AnnotatedTrack
}

// NewLine 创建一个指定时间范围的空行
func NewLine(startMs, endMs int64) *LyricLine {
	return &LyricLine{StartMs: startMs, EndMs: endMs}
}

// AddTrack 向行追加一条轨道
func (l *LyricLine) AddTrack(t AnnotatedTrack) {
	l.Tracks = append(l.Tracks, t)
}

// TrackOf 返回第一条指定角色的轨道，不存在时返回 nil
func (l *LyricLine) TrackOf(ct ContentType) *AnnotatedTrack {
	for i := range l.Tracks {
		if l.Tracks[i].ContentType == ct {
			return &l.Tracks[i]
		}
	}
	return nil
}

// MainTrack 返回主唱轨道，不存在时返回 nil
func (l *LyricLine) MainTrack() *AnnotatedTrack {
	return l.TrackOf(ContentMain)
}

// MainText 返回主唱轨道的显示文本，无主唱轨道时返回空字符串
func (l *LyricLine) MainText() string {
	if t := l.MainTrack(); t != nil {
		return t.Content.Text()
	}
	return ""
}

// NewTextLine 构造仅含一条主唱轨道、单音节文本的行，常用于逐行歌词格式
func NewTextLine(startMs, endMs int64, text string) *LyricLine {
	line := NewLine(startMs, endMs)
	line.AddTrack(AnnotatedTrack{
		ContentType: ContentMain,
		Content: LyricTrack{Words: []Word{{
			Syllables: []LyricSyllable{{Text: text}},
		}}},
	})
	return line
}
