package main

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/yleoer/lyric/pkg/config"
	"github.com/yleoer/lyric/pkg/converter"
	"github.com/yleoer/lyric/pkg/format"
	"github.com/yleoer/lyric/pkg/pipeline"
	"github.com/yleoer/lyric/pkg/store"
	"github.com/yleoer/lyric/pkg/util"
)

func main() {
	// 1. 初始化日志器
	logger := log.New(os.Stdout, "[Lyric] ", log.LstdFlags|log.Lshortfile)
	logger.Println("Starting lyric converter...")
	// 2. 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Printf("Configuration loaded: InputFile=%s, SourceFormat=%s, TargetFormat=%s",
		cfg.InputFile, cfg.SourceFormat, cfg.TargetFormat)
	// 3. 校验格式标签
	source, err := format.ParseFormat(cfg.SourceFormat)
	if err != nil {
		logger.Fatalf("Invalid source format: %v", err)
	}
	target, err := format.ParseFormat(cfg.TargetFormat)
	if err != nil {
		logger.Fatalf("Invalid target format: %v", err)
	}
	// 4. 初始化依赖服务
	// 4.1 繁简转换器（可选，初始化失败时降级为不转换）
	var textConverter converter.TextConverter
	if cfg.ChineseConversion != "" {
		textConverter, err = converter.NewOpenCCConverter(cfg.ChineseConversion, logger)
		if err != nil {
			logger.Printf("WARN: OpenCC converter unavailable, Chinese conversion disabled: %v", err)
			textConverter = nil
		}
	}
	// 4.2 本地转换缓存（可选）
	var cacheStore store.ConversionStore
	if cfg.CacheEnabled {
		cacheStore, err = store.NewSQLiteStore(cfg.DBPath, logger)
		if err != nil {
			logger.Fatalf("Failed to initialize conversion cache: %v", err)
		}
		defer cacheStore.Close()
	}
	// 4.3 转换流水线
	conv := pipeline.New(nil, nil, logger)
	opts := pipeline.Options{
		Source:             source,
		Target:             target,
		RunStripper:        cfg.RunStripper,
		RunSmoother:        cfg.RunSmoother,
		RunAgentRecognizer: cfg.RunAgentRecognizer,
		Stripper:           cfg.Stripper,
		Smoother:           cfg.Smoother,
		ChineseConverter:   textConverter,
	}
	// 5. 执行一次转换
	if err := runConversion(cfg, conv, opts, cacheStore, logger); err != nil {
		logger.Fatalf("Conversion failed: %v", err)
	}
	if !cfg.Watch {
		return
	}
	// 6. 监听输入文件变化并自动重新转换
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Fatalf("Error creating file watcher: %v", err)
	}
	defer watcher.Close()
	// 监听所在目录而不是文件本身，编辑器保存时常以改名替换文件
	if err := watcher.Add(filepath.Dir(cfg.InputFile)); err != nil {
		logger.Fatalf("Error watching directory of %s: %v", cfg.InputFile, err)
	}
	logger.Printf("Watching %s for changes...", cfg.InputFile)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			// 编辑器保存产生的临时文件事件直接忽略
			if !util.IsRelevantLyricFile(event.Name) {
				continue
			}
			if event.Name != cfg.InputFile {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Printf("Watcher event: %s, re-running conversion", event.Op.String())
			if err := runConversion(cfg, conv, opts, cacheStore, logger); err != nil {
				logger.Printf("ERROR: Conversion failed: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Printf("ERROR: Watcher error: %v", err)
		}
	}
}

// runConversion 读取输入文件、执行转换并写出结果
// 启用缓存时以输入内容哈希与格式对为键做查询与回填
func runConversion(cfg *config.Config, conv *pipeline.Converter, opts pipeline.Options, cacheStore store.ConversionStore, logger *log.Logger) error {
	input, err := util.ReadTextFileContent(cfg.InputFile)
	if err != nil {
		return err
	}

	var sourceHash string
	if cacheStore != nil {
		sum := sha256.Sum256([]byte(input))
		sourceHash = hex.EncodeToString(sum[:])
		if output, found, err := cacheStore.GetConversion(sourceHash, cfg.SourceFormat, cfg.TargetFormat); err == nil && found {
			logger.Println("Cache hit, skipping conversion.")
			return writeOutput(cfg, output, logger)
		}
	}

	result, err := conv.Convert(input, opts)
	if err != nil {
		return err
	}
	for _, warning := range result.Warnings {
		logger.Printf("WARN: %s", warning)
	}
	logger.Printf("Converted %d lines (%d warnings).", len(result.Lines), len(result.Warnings))

	if cacheStore != nil {
		if err := cacheStore.SaveConversion(sourceHash, cfg.SourceFormat, cfg.TargetFormat, result.Output); err != nil {
			logger.Printf("WARN: failed to cache conversion: %v", err)
		}
	}
	return writeOutput(cfg, result.Output, logger)
}

// writeOutput 把转换结果写到输出文件或标准输出
func writeOutput(cfg *config.Config, output string, logger *log.Logger) error {
	if cfg.OutputFile == "" {
		_, err := os.Stdout.WriteString(output)
		return err
	}
	if err := os.WriteFile(cfg.OutputFile, []byte(output), 0644); err != nil {
		return err
	}
	logger.Printf("Output written to %s", cfg.OutputFile)
	return nil
}
