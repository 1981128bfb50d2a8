// Package agent 负责识别每行歌词的演唱者
// 对唱歌词常在行首用"男：/女：/A："之类的标记区分演唱者，
// 识别器根据这类结构线索为缺少演唱者的行补全标识；识别失败的行保持原状
package agent

import (
	"log"

	"github.com/yleoer/lyric/pkg/model"
)

// Assignment 表示一条识别结果
type Assignment struct {
	LineIndex  int    // 行下标
	Agent      string // 识别出的演唱者标识
	MarkerRune int    // 行首标记占用的字符数（含分隔符），应用时从主轨道剥除
}

// Classifier 定义演唱者分类器接口
// 识别启发式可以独立演进，替换实现不影响流水线契约
type Classifier interface {
	Classify(lines []*model.LyricLine) []Assignment
}

// Recognizer 把分类器的结果应用到歌词行上
type Recognizer struct {
	classifier Classifier
	logger     *log.Logger
}

// New 创建识别器；classifier 为 nil 时使用默认的行首标记分类器
func New(classifier Classifier, logger *log.Logger) *Recognizer {
	if classifier == nil {
		classifier = NewMarkerClassifier()
	}
	return &Recognizer{classifier: classifier, logger: logger}
}

// Recognize 运行分类器并就地应用识别结果
// 已经带有演唱者标识的行不被覆盖；本操作绝不使流水线失败
func (r *Recognizer) Recognize(lines []*model.LyricLine) {
	assignments := r.classifier.Classify(lines)
	applied := 0
	for _, a := range assignments {
		if a.LineIndex < 0 || a.LineIndex >= len(lines) {
			r.logger.Printf("WARN: [AgentRecognizer] assignment index %d out of range, skipped", a.LineIndex)
			continue
		}
		line := lines[a.LineIndex]
		if line.Agent != "" {
			continue
		}
		line.Agent = a.Agent
		if a.MarkerRune > 0 {
			if t := line.MainTrack(); t != nil {
				stripLeadingRunes(&t.Content, a.MarkerRune)
			}
		}
		applied++
	}
	if applied > 0 {
		r.logger.Printf("[AgentRecognizer] assigned agents to %d lines", applied)
	}
}

// stripLeadingRunes 从轨道开头剥除 n 个字符，清掉因此变空的音节和词
// 行首标记可能横跨多个音节，逐音节消耗
func stripLeadingRunes(track *model.LyricTrack, n int) {
	for n > 0 && len(track.Words) > 0 {
		word := &track.Words[0]
		if len(word.Syllables) == 0 {
			track.Words = track.Words[1:]
			continue
		}
		syl := &word.Syllables[0]
		runes := []rune(syl.Text)
		if len(runes) > n {
			syl.Text = string(runes[n:])
			return
		}
		n -= len(runes)
		word.Syllables = word.Syllables[1:]
		if len(word.Syllables) == 0 {
			track.Words = track.Words[1:]
		}
	}
}
