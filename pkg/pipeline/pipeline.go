// Package pipeline 编排一次完整的歌词转换：
// 解析 -> 后处理器链（清理 -> 平滑 -> 演唱者识别 -> 繁简转换）-> 序列化
// 处理器顺序固定，各自可独立开关；相同输入与配置必然产生逐字节相同的输出
package pipeline

import (
	"fmt"
	"log"

	"github.com/yleoer/lyric/pkg/agent"
	"github.com/yleoer/lyric/pkg/converter"
	"github.com/yleoer/lyric/pkg/format"
	"github.com/yleoer/lyric/pkg/model"
	"github.com/yleoer/lyric/pkg/rulecache"
	"github.com/yleoer/lyric/pkg/smoother"
	"github.com/yleoer/lyric/pkg/stripper"
)

// Options 是一次转换的完整配置
type Options struct {
	Source format.Format
	Target format.Format

	RunStripper        bool
	RunSmoother        bool
	RunAgentRecognizer bool

	Stripper stripper.Options
	Smoother smoother.Options

	// ChineseConverter 非 nil 时在序列化前对音节文本做繁简转换
	ChineseConverter converter.TextConverter
}

// Result 是一次转换的产物
// Warnings 收集解析与处理过程中的全部非致命问题，调用方负责展示
type Result struct {
	Lines    []*model.LyricLine
	Metadata model.Metadata
	Warnings []string
	Output   string
}

// Converter 是转换编排器，可被多个任务并发使用
// 规则编译缓存是唯一共享的可变资源，由 rulecache 自行加锁保护
type Converter struct {
	stripper   *stripper.Stripper
	recognizer *agent.Recognizer
	logger     *log.Logger
}

// New 创建编排器
// cache 为 nil 时使用进程级共享缓存；classifier 为 nil 时使用默认分类器
func New(cache rulecache.Cache, classifier agent.Classifier, logger *log.Logger) *Converter {
	if cache == nil {
		cache = rulecache.Default()
	}
	return &Converter{
		stripper:   stripper.New(cache, logger),
		recognizer: agent.New(classifier, logger),
		logger:     logger,
	}
}

// Convert 执行一次转换
// 未注册的格式标签返回错误且不产生部分结果；数据层面的异常一律进入警告列表
func (c *Converter) Convert(input string, opts Options) (*Result, error) {
	parser, err := format.ParserFor(opts.Source)
	if err != nil {
		return nil, fmt.Errorf("source format: %w", err)
	}
	serializer, err := format.SerializerFor(opts.Target)
	if err != nil {
		return nil, fmt.Errorf("target format: %w", err)
	}

	parsed, err := parser.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("parse %s input: %w", opts.Source, err)
	}

	result := &Result{
		Lines:    parsed.Lines,
		Metadata: parsed.Metadata,
		Warnings: parsed.Warnings,
	}

	if opts.RunStripper {
		result.Lines = c.stripper.Strip(result.Lines, opts.Stripper)
	}
	if opts.RunSmoother {
		smoother.Smooth(result.Lines, opts.Smoother)
	}
	if opts.RunAgentRecognizer {
		c.recognizer.Recognize(result.Lines)
	}
	if opts.ChineseConverter != nil {
		converter.ConvertLines(result.Lines, opts.ChineseConverter)
	}

	output, err := serializer.Serialize(result.Lines, result.Metadata)
	if err != nil {
		return nil, fmt.Errorf("serialize to %s: %w", opts.Target, err)
	}
	result.Output = output
	return result, nil
}
