package transcription

import (
	"context"
	"fmt"
	"sync"
	"time"

	_ "github.com/gogf/gf/contrib/drivers/sqlite/v2"
	"github.com/gogf/gf/v2/database/gdb"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gfile"
	"github.com/gogf/gf/v2/util/grand"
)

var dbOnce sync.Once

// 与 hack/sql.go 保持一致的表结构
var testSchema = []string{
	`CREATE TABLE IF NOT EXISTS audio_file (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		object_key TEXT NOT NULL,
		filename TEXT NOT NULL,
		file_type TEXT NOT NULL,
		file_size INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL DEFAULT (datetime('now')),
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);`,
	`CREATE TABLE IF NOT EXISTS transcript (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file_id INTEGER NOT NULL UNIQUE,
		status TEXT NOT NULL DEFAULT 'pending',
		raw_text TEXT,
		language TEXT,
		duration REAL NOT NULL DEFAULT 0,
		error TEXT,
		updated_at TEXT NOT NULL DEFAULT (datetime('now')),
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);`,
	`CREATE TABLE IF NOT EXISTS segment (
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
	);`,
	`CREATE INDEX IF NOT EXISTS idx_segment_transcript ON segment (transcript_id, start_time);`,
}

// setupDB 为本包的落库测试准备一个独立的 sqlite 库，进程内只建一次。
func setupDB(ctx context.Context) {
	dbOnce.Do(func() {
		path := gfile.Temp(fmt.Sprintf("lingoplay_test_%s_%d.db", grand.S(8), time.Now().UnixNano()))
		gdb.SetConfig(gdb.Config{
			gdb.DefaultGroupName: gdb.ConfigGroup{
				gdb.ConfigNode{
					Type: "sqlite",
					Link: "sqlite::@file(" + path + ")",
				},
			},
		})
		for _, ddl := range testSchema {
			if _, err := g.DB().Exec(ctx, ddl); err != nil {
				panic(err)
			}
		}
	})
}
