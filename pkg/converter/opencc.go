package converter

import (
	"fmt"
	"log"

	"github.com/liuzl/gocc"
)

// openCCConverter 是 TextConverter 的 OpenCC 实现
type openCCConverter struct {
	converter *gocc.OpenCC
	logger    *log.Logger
}

// NewOpenCCConverter 按配置名初始化 OpenCC 转换器
// 配置名如 t2s（繁转简）、s2t（简转繁）等，与 OpenCC 字典同名
func NewOpenCCConverter(conversion string, logger *log.Logger) (TextConverter, error) {
	converter, err := gocc.New(conversion)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenCC converter %q: %w", conversion, err)
	}
	logger.Printf("OpenCC converter (%s) initialized.", conversion)
	return &openCCConverter{converter: converter, logger: logger}, nil
}

// Convert 转换一段文本，转换失败时返回原文保证流程健壮
func (c *openCCConverter) Convert(text string) string {
	out, err := c.converter.Convert(text)
	if err != nil {
		c.logger.Printf("WARN: failed to convert text %q: %v", text, err)
		return text
	}
	return out
}
