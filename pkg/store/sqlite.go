package store

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// sqliteStore 是 ConversionStore 接口的 SQLite 实现
type sqliteStore struct {
	db     *sql.DB
	logger *log.Logger
}

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS conversions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_hash TEXT NOT NULL,
		source_format TEXT NOT NULL,
		target_format TEXT NOT NULL,
		output TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(source_hash, source_format, target_format)
	);
	`

// NewSQLiteStore 初始化 SQLite 数据库并返回 ConversionStore 接口实例
func NewSQLiteStore(dataSourceName string, log *log.Logger) (ConversionStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close() // 创建表失败也要关闭连接
		return nil, fmt.Errorf("failed to create conversions table: %w", err)
	}
	log.Printf("SQLite conversion cache initialized at: %s", dataSourceName)
	return &sqliteStore{db: db, logger: log}, nil
}

// Close 关闭数据库连接
func (s *sqliteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.logger.Println("SQLite conversion cache closed.")
		return err
	}
	return nil
}

// SaveConversion 保存一次转换结果，同键重复保存时覆盖旧值
func (s *sqliteStore) SaveConversion(sourceHash, sourceFormat, targetFormat, output string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO conversions (source_hash, source_format, target_format, output, created_at) VALUES (?, ?, ?, ?, ?)",
		sourceHash, sourceFormat, targetFormat, output, time.Now())
	if err != nil {
		s.logger.Printf("ERROR: Failed to save conversion %s (%s -> %s): %v", sourceHash, sourceFormat, targetFormat, err)
		return fmt.Errorf("failed to save conversion %s: %w", sourceHash, err)
	}
	return nil
}

// GetConversion 查询缓存的转换结果，未命中时返回 found=false
func (s *sqliteStore) GetConversion(sourceHash, sourceFormat, targetFormat string) (string, bool, error) {
	var output string
	err := s.db.QueryRow(
		"SELECT output FROM conversions WHERE source_hash = ? AND source_format = ? AND target_format = ?",
		sourceHash, sourceFormat, targetFormat).Scan(&output)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		s.logger.Printf("ERROR: Failed to query conversion %s: %v", sourceHash, err)
		return "", false, fmt.Errorf("failed to query conversion %s: %w", sourceHash, err)
	}
	return output, true, nil
}
