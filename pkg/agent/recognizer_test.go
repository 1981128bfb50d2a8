package agent

import (
	"io"
	"log"
	"testing"

	"github.com/yleoer/lyric/pkg/model"
)

func newTestRecognizer() *Recognizer {
	return New(nil, log.New(io.Discard, "", 0))
}

func makeLines(texts ...string) []*model.LyricLine {
	lines := make([]*model.LyricLine, 0, len(texts))
	for i, text := range texts {
		start := int64(i) * 1000
		lines = append(lines, model.NewTextLine(start, start+1000, text))
	}
	return lines
}

func TestRecognizeDuetMarkers(t *testing.T) {
	lines := makeLines("男：第一句", "女：第二句", "合：一起唱", "没有标记")
	newTestRecognizer().Recognize(lines)

	tests := []struct {
		index     int
		wantAgent string
		wantText  string
	}{
		{0, "v1", "第一句"},
		{1, "v2", "第二句"},
		{2, "chorus", "一起唱"},
		{3, "", "没有标记"},
	}
	for _, tt := range tests {
		if got := lines[tt.index].Agent; got != tt.wantAgent {
			t.Errorf("line %d: agent = %q, want %q", tt.index, got, tt.wantAgent)
		}
		if got := lines[tt.index].MainText(); got != tt.wantText {
			t.Errorf("line %d: text = %q, want %q", tt.index, got, tt.wantText)
		}
	}
}

func TestRecognizeLatinMarkers(t *testing.T) {
	lines := makeLines("A: first part", "B: second part", "A: again")
	newTestRecognizer().Recognize(lines)

	if lines[0].Agent != "v1" || lines[2].Agent != "v1" {
		t.Errorf("same marker must map to same agent: %q vs %q", lines[0].Agent, lines[2].Agent)
	}
	if lines[1].Agent != "v2" {
		t.Errorf("second marker agent = %q, want v2", lines[1].Agent)
	}
	if lines[0].MainText() != "first part" {
		t.Errorf("marker not stripped: %q", lines[0].MainText())
	}
}

func TestSingleMarkerNotActivated(t *testing.T) {
	// 只出现一种标记时按普通歌词文本处理
	lines := makeLines("男：孤立的一句", "普通歌词", "另一句")
	newTestRecognizer().Recognize(lines)

	if lines[0].Agent != "" {
		t.Errorf("single distinct marker must not activate recognition, got agent %q", lines[0].Agent)
	}
	if lines[0].MainText() != "男：孤立的一句" {
		t.Errorf("text must be untouched, got %q", lines[0].MainText())
	}
}

func TestPriorAgentKept(t *testing.T) {
	lines := makeLines("男：一句", "女：另一句")
	lines[0].Agent = "preassigned"
	newTestRecognizer().Recognize(lines)

	if lines[0].Agent != "preassigned" {
		t.Errorf("prior agent must be kept, got %q", lines[0].Agent)
	}
	// 未覆盖的行照常识别
	if lines[1].Agent != "v2" {
		t.Errorf("line 1 agent = %q, want v2", lines[1].Agent)
	}
}

func TestFullWidthColonMarker(t *testing.T) {
	lines := makeLines("左： 左边唱", "右： 右边唱")
	newTestRecognizer().Recognize(lines)

	if lines[0].Agent != "v1" || lines[1].Agent != "v2" {
		t.Errorf("got agents %q/%q, want v1/v2", lines[0].Agent, lines[1].Agent)
	}
	if lines[0].MainText() != "左边唱" {
		t.Errorf("marker with full-width colon not stripped: %q", lines[0].MainText())
	}
}

func TestMarkerOnlyLineIgnored(t *testing.T) {
	lines := makeLines("男：", "女：内容")
	newTestRecognizer().Recognize(lines)

	// "男：" 冒号后无歌词，不算标记；只剩一种标记，识别不激活
	if lines[0].Agent != "" || lines[1].Agent != "" {
		t.Errorf("got agents %q/%q, want none", lines[0].Agent, lines[1].Agent)
	}
}

func TestDetectMarker(t *testing.T) {
	tests := []struct {
		in         string
		wantMarker string
		wantPrefix int
	}{
		{"男：你好", "男", 2},
		{"女: hello", "女", 3},
		{"A: text", "A", 3},
		{"合唱：一起", "合唱", 3},
		{"both: together now", "both", 6},
		{"ALL: everyone", "ALL", 5},
		{"不是标记的长句子：其实是歌词", "", 0},
		{"hello: world", "", 0},
		{"男", "", 0},
		{"男：", "", 0},
	}
	for _, tt := range tests {
		marker, prefix := detectMarker(tt.in)
		if marker != tt.wantMarker || prefix != tt.wantPrefix {
			t.Errorf("detectMarker(%q) = (%q, %d), want (%q, %d)",
				tt.in, marker, prefix, tt.wantMarker, tt.wantPrefix)
		}
	}
}

func TestEnglishChorusWordMarkers(t *testing.T) {
	lines := makeLines("A: my part", "B: your part", "Both: together")
	newTestRecognizer().Recognize(lines)

	if lines[0].Agent != "v1" || lines[1].Agent != "v2" {
		t.Errorf("got agents %q/%q, want v1/v2", lines[0].Agent, lines[1].Agent)
	}
	if lines[2].Agent != "chorus" {
		t.Errorf("English chorus word agent = %q, want chorus", lines[2].Agent)
	}
	if lines[2].MainText() != "together" {
		t.Errorf("chorus marker not stripped: %q", lines[2].MainText())
	}
}

// staticClassifier 是测试用分类器，直接返回预设结果
type staticClassifier struct{ assignments []Assignment }

func (c *staticClassifier) Classify(_ []*model.LyricLine) []Assignment { return c.assignments }

func TestPluggableClassifier(t *testing.T) {
	lines := makeLines("line one", "line two")
	r := New(&staticClassifier{assignments: []Assignment{
		{LineIndex: 1, Agent: "v9"},
		{LineIndex: 5, Agent: "out-of-range"},
	}}, log.New(io.Discard, "", 0))

	r.Recognize(lines)
	if lines[1].Agent != "v9" {
		t.Errorf("custom classifier assignment not applied, got %q", lines[1].Agent)
	}
	if lines[0].Agent != "" {
		t.Errorf("unassigned line must keep empty agent, got %q", lines[0].Agent)
	}
}
