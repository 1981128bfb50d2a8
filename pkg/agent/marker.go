package agent

import (
	"strconv"
	"strings"

	"github.com/yleoer/lyric/pkg/model"
)

// chorusAgent 是合唱部分的固定标识
const chorusAgent = "chorus"

// MarkerClassifier 是默认分类器：识别行首的对唱标记
// 支持"男：/女：/合：/左：/右：/男声：/A："等写法，半角全角冒号均可
// 只有当文档中出现至少两个不同标记时才认为存在对唱结构，
// 孤立的一次命中按普通歌词文本处理
type MarkerClassifier struct{}

// NewMarkerClassifier 创建行首标记分类器
func NewMarkerClassifier() *MarkerClassifier {
	return &MarkerClassifier{}
}

// chorusMarkers 映射到合唱的标记
var chorusMarkers = map[string]bool{
	"合": true, "合唱": true, "both": true, "all": true,
}

// knownMarkers 已知的中文对唱标记
var knownMarkers = map[string]bool{
	"男": true, "女": true, "合": true, "左": true, "右": true,
	"男声": true, "女声": true, "合唱": true,
}

// Classify 扫描全部行，返回识别出的演唱者分配
func (c *MarkerClassifier) Classify(lines []*model.LyricLine) []Assignment {
	type candidate struct {
		lineIndex int
		marker    string
		prefixLen int
	}

	var candidates []candidate
	distinct := make(map[string]bool)
	for i, line := range lines {
		track := line.MainTrack()
		if track == nil {
			continue
		}
		marker, prefixLen := detectMarker(rawTrackText(&track.Content))
		if marker == "" {
			continue
		}
		candidates = append(candidates, candidate{lineIndex: i, marker: marker, prefixLen: prefixLen})
		distinct[marker] = true
	}

	if len(distinct) < 2 {
		return nil
	}

	// 按首次出现顺序编号，保证同一输入得到确定的标识序列
	agentIDs := make(map[string]string)
	next := 1
	var out []Assignment
	for _, cand := range candidates {
		id, ok := agentIDs[cand.marker]
		if !ok {
			if chorusMarkers[strings.ToLower(cand.marker)] {
				id = chorusAgent
			} else {
				id = agentID(next)
				next++
			}
			agentIDs[cand.marker] = id
		}
		out = append(out, Assignment{LineIndex: cand.lineIndex, Agent: id, MarkerRune: cand.prefixLen})
	}
	return out
}

func agentID(n int) string {
	return "v" + strconv.Itoa(n)
}

// rawTrackText 按音节原文拼接轨道文本，不插入 LeadingSpace 产生的空格，
// 使返回值中的字符下标与音节字符一一对应
func rawTrackText(track *model.LyricTrack) string {
	var b strings.Builder
	for i := range track.Words {
		for j := range track.Words[i].Syllables {
			b.WriteString(track.Words[i].Syllables[j].Text)
		}
	}
	return b.String()
}

// detectMarker 检测行首标记，返回标记本身与整个前缀（标记+分隔符）的字符数
// 未检出时返回空标记
func detectMarker(text string) (marker string, prefixLen int) {
	runes := []rune(text)
	pos := 0
	for pos < len(runes) && (runes[pos] == ' ' || runes[pos] == '\t') {
		pos++
	}

	start := pos
	// 标记最长四个字符：中文标记、单个拉丁字母或 both/all 等合唱词
	for pos < len(runes) && pos-start < 4 {
		r := runes[pos]
		if r == ':' || r == '：' || r == ' ' || r == '\t' {
			break
		}
		pos++
	}
	candidate := string(runes[start:pos])
	if candidate == "" {
		return "", 0
	}
	if !knownMarkers[candidate] && !chorusMarkers[strings.ToLower(candidate)] && !isSingleLatinLetter(candidate) {
		return "", 0
	}

	for pos < len(runes) && (runes[pos] == ' ' || runes[pos] == '\t') {
		pos++
	}
	if pos >= len(runes) || (runes[pos] != ':' && runes[pos] != '：') {
		return "", 0
	}
	pos++
	for pos < len(runes) && runes[pos] == ' ' {
		pos++
	}
	// 标记独占一行（冒号后没有歌词）不算对唱标记
	if pos >= len(runes) {
		return "", 0
	}
	return candidate, pos
}

func isSingleLatinLetter(s string) bool {
	if len(s) != 1 {
		return false
	}
	c := s[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
