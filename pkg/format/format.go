// Package format 提供各歌词格式与规范模型之间的双向转换
// 每种格式注册一对解析器与序列化器；畸形内容记为警告而非中断整篇解析
package format

import (
	"errors"
	"fmt"

	"github.com/yleoer/lyric/pkg/model"
)

// Format 是歌词格式标签
type Format string

const (
	LRC         Format = "lrc"  // 逐行歌词
	EnhancedLRC Format = "elrc" // 带逐字时间戳的增强 LRC
	QRC         Format = "qrc"  // QQ 音乐逐字歌词
	LYS         Format = "lys"  // Lyricify Syllable，带演唱者属性
	Text        Format = "txt"  // 纯文本
)

// ErrUnknownFormat 表示格式标签未注册
var ErrUnknownFormat = errors.New("unknown lyric format")

// ParseResult 是一次解析的完整产物：规范行序列、元数据与非致命警告
type ParseResult struct {
	Lines    []*model.LyricLine
	Metadata model.Metadata
	Warnings []string
}

// Parser 把指定格式的文本解析为规范模型
type Parser interface {
	Parse(input string) (*ParseResult, error)
}

// Serializer 把规范模型序列化为指定格式的文本
type Serializer interface {
	Serialize(lines []*model.LyricLine, meta model.Metadata) (string, error)
}

type entry struct {
	parser     Parser
	serializer Serializer
}

var registry = map[Format]entry{
	LRC:         {parser: &lrcParser{}, serializer: &lrcSerializer{}},
	EnhancedLRC: {parser: &elrcParser{}, serializer: &elrcSerializer{}},
	QRC:         {parser: &qrcParser{}, serializer: &qrcSerializer{}},
	LYS:         {parser: &lysParser{}, serializer: &lysSerializer{}},
	Text:        {parser: &textParser{}, serializer: &textSerializer{}},
}

// ParseFormat 把用户输入的格式名归一化为格式标签
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case LRC, EnhancedLRC, QRC, LYS, Text:
		return Format(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ParserFor 返回格式对应的解析器
func ParserFor(f Format) (Parser, error) {
	e, ok := registry[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return e.parser, nil
}

// SerializerFor 返回格式对应的序列化器
func SerializerFor(f Format) (Serializer, error) {
	e, ok := registry[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return e.serializer, nil
}
