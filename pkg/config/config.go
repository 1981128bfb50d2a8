package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yleoer/lyric/pkg/smoother"
	"github.com/yleoer/lyric/pkg/stripper"
)

// Config 是命令行工具的完整配置
type Config struct {
	InputFile    string // 输入歌词文件路径
	OutputFile   string // 输出文件路径，为空时写到标准输出
	SourceFormat string // 源格式标签
	TargetFormat string // 目标格式标签

	RunStripper        bool   // 是否清理元数据行
	RunSmoother        bool   // 是否平滑音节时间
	RunAgentRecognizer bool   // 是否识别演唱者
	ChineseConversion  string // OpenCC 配置名，为空时不转换

	Watch bool // 是否监听输入文件变化并自动重新转换

	CacheEnabled bool   // 是否启用本地转换缓存
	DataDir      string // SQLite数据库文件存放目录
	DBFileName   string // SQLite数据库文件名
	DBPath       string // 完整的数据库文件路径

	Stripper stripper.Options
	Smoother smoother.Options
}

const (
	defaultSourceFormat = "lrc"
	defaultTargetFormat = "lrc"
	defaultDataDir      = "/app/data"
	defaultDBFileName   = "lyric.db"
)

// LoadConfig 从环境变量或默认值加载配置
func LoadConfig() (*Config, error) {
	// 尝试加载 .env 文件
	_ = godotenv.Load()

	cfg := &Config{
		InputFile:          os.Getenv("INPUT_FILE"),
		OutputFile:         os.Getenv("OUTPUT_FILE"),
		SourceFormat:       os.Getenv("SOURCE_FORMAT"),
		TargetFormat:       os.Getenv("TARGET_FORMAT"),
		RunStripper:        parseBoolOrDefault(os.Getenv("RUN_STRIPPER"), true),
		RunSmoother:        parseBoolOrDefault(os.Getenv("RUN_SMOOTHER"), false),
		RunAgentRecognizer: parseBoolOrDefault(os.Getenv("RUN_AGENT_RECOGNIZER"), true),
		ChineseConversion:  os.Getenv("CHINESE_CONVERSION"),
		Watch:              parseBoolOrDefault(os.Getenv("WATCH"), false),
		CacheEnabled:       parseBoolOrDefault(os.Getenv("CACHE_ENABLED"), false),
		DataDir:            os.Getenv("DATA_DIR"),
		DBFileName:         os.Getenv("DB_FILE_NAME"),
	}

	// 设置默认值
	if cfg.SourceFormat == "" {
		cfg.SourceFormat = defaultSourceFormat
	}
	if cfg.TargetFormat == "" {
		cfg.TargetFormat = defaultTargetFormat
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	if cfg.DBFileName == "" {
		cfg.DBFileName = defaultDBFileName
	}
	cfg.DBPath = filepath.Join(cfg.DataDir, cfg.DBFileName)

	if cfg.InputFile == "" {
		return nil, fmt.Errorf("INPUT_FILE is required")
	}
	if cfg.CacheEnabled {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory %s: %w", cfg.DataDir, err)
		}
	}

	cfg.Stripper = loadStripperOptions()
	cfg.Smoother = loadSmootherOptions()
	return cfg, nil
}

// loadStripperOptions 加载元数据清理器配置
// 正则模式可能包含逗号，因此使用分号分隔
func loadStripperOptions() stripper.Options {
	opts := stripper.DefaultOptions()
	opts.Enabled = parseBoolOrDefault(os.Getenv("STRIP_ENABLED"), opts.Enabled)
	opts.KeywordCaseSensitive = parseBoolOrDefault(os.Getenv("STRIP_KEYWORD_CASE_SENSITIVE"), false)
	opts.EnableRegex = parseBoolOrDefault(os.Getenv("STRIP_REGEX_ENABLED"), opts.EnableRegex)
	opts.RegexCaseSensitive = parseBoolOrDefault(os.Getenv("STRIP_REGEX_CASE_SENSITIVE"), false)
	opts.Keywords = splitList(os.Getenv("STRIP_KEYWORDS"), ",")
	opts.RegexPatterns = splitList(os.Getenv("STRIP_REGEXES"), ";")
	if n := parseIntOrDefault(os.Getenv("STRIP_HEADER_SCAN_LINES"), 0); n > 0 {
		opts.HeaderScanLimit = stripper.ScanLimit{Mode: stripper.ScanFixed, Lines: n}
	}
	if n := parseIntOrDefault(os.Getenv("STRIP_FOOTER_SCAN_LINES"), 0); n > 0 {
		opts.FooterScanLimit = stripper.ScanLimit{Mode: stripper.ScanFixed, Lines: n}
	}
	return opts
}

// loadSmootherOptions 加载平滑器配置
func loadSmootherOptions() smoother.Options {
	opts := smoother.DefaultOptions()
	opts.Factor = parseFloatOrDefault(os.Getenv("SMOOTH_FACTOR"), opts.Factor)
	opts.Iterations = parseIntOrDefault(os.Getenv("SMOOTH_ITERATIONS"), opts.Iterations)
	opts.DurationThresholdMs = int64(parseIntOrDefault(os.Getenv("SMOOTH_DURATION_THRESHOLD_MS"), int(opts.DurationThresholdMs)))
	opts.GapThresholdMs = int64(parseIntOrDefault(os.Getenv("SMOOTH_GAP_THRESHOLD_MS"), int(opts.GapThresholdMs)))
	return opts
}

func splitList(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseBoolOrDefault(s string, defaultValue bool) bool {
	if s == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		log.Printf("Warning: Could not parse bool '%s', using default '%v'. Error: %v", s, defaultValue, err)
		return defaultValue
	}
	return v
}

func parseIntOrDefault(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Warning: Could not parse int '%s', using default '%d'. Error: %v", s, defaultValue, err)
		return defaultValue
	}
	return v
}

func parseFloatOrDefault(s string, defaultValue float64) float64 {
	if s == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Printf("Warning: Could not parse float '%s', using default '%v'. Error: %v", s, defaultValue, err)
		return defaultValue
	}
	return v
}
