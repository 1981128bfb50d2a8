package store

// ConversionStore 定义转换结果本地缓存接口
type ConversionStore interface {
	SaveConversion(sourceHash, sourceFormat, targetFormat, output string) error // 保存一次转换结果
	GetConversion(sourceHash, sourceFormat, targetFormat string) (string, bool, error)
	Close() error
}
