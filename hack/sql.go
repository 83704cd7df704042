package main

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/glebarez/go-sqlite"
)

// 初始化本地 sqlite 数据库表结构。用法: go run hack/sql.go [db path]
func main() {
	dbPath := "./db.sqlite3"
	if len(os.Args) > 1 {
		dbPath = os.Args[1]
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		log.Fatal(err)
	}

	_, _ = db.Query(`
		CREATE TABLE IF NOT EXISTS audio_file (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			object_key TEXT NOT NULL,
			filename TEXT NOT NULL,
			file_type TEXT NOT NULL,
			file_size INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT NOT NULL DEFAULT (datetime('now')),
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`)

	_, _ = db.Query(`
		CREATE TABLE IF NOT EXISTS transcript (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file_id INTEGER NOT NULL UNIQUE,
			status TEXT NOT NULL DEFAULT 'pending',
			raw_text TEXT,
			language TEXT,
			duration REAL NOT NULL DEFAULT 0,
			error TEXT,
			updated_at TEXT NOT NULL DEFAULT (datetime('now')),
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`)

	_, _ = db.Query(`
		CREATE TABLE IF NOT EXISTS segment (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			transcript_id INTEGER NOT NULL,
			start_time REAL NOT NULL,
			end_time REAL NOT NULL,
			text TEXT NOT NULL,
			normalized_text TEXT,
			translation TEXT,
			annotations JSON,
			phonetic_reading TEXT,
			word_timestamps JSON,
			updated_at TEXT NOT NULL DEFAULT (datetime('now')),
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`)
	_, _ = db.Query(`CREATE INDEX IF NOT EXISTS idx_segment_transcript ON segment (transcript_id, start_time);`)
}
