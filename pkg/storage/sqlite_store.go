package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore 基于 SQLite 的存储，适合需要把标记集中放在一个文件里的场景
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite 打开（必要时创建）SQLite 存储
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// 单线程事件模型，一个连接足够
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS config (
		grp TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (grp, key)
	);`)
	return err
}

// Get 读取值
func (s *SQLiteStore) Get(group, key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM config WHERE grp = ? AND key = ?`, group, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load %s/%s: %w", group, key, err)
	}
	return value, nil
}

// Set 写入值
func (s *SQLiteStore) Set(group, key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO config (grp, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(grp, key) DO UPDATE SET value = excluded.value`,
		group, key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", group, key, err)
	}
	return nil
}

// Unset 删除 key
func (s *SQLiteStore) Unset(group, key string) error {
	if _, err := s.db.Exec(`DELETE FROM config WHERE grp = ? AND key = ?`, group, key); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", group, key, err)
	}
	return nil
}

// Keys 按字典序列出 group 下的 key
func (s *SQLiteStore) Keys(group string) ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM config WHERE grp = ? ORDER BY key`, group)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", group, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Close 关闭数据库
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
