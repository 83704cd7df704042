package transcription

import (
	"context"
	"time"

	"github.com/gogf/gf/v2/os/gcache"
)

// ProgressEntry 单个文件的最近进度，供前端轮询。
type ProgressEntry struct {
	FileId    int64     `json:"fileId"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress"` // 0-100
	Message   string    `json:"message"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Progress 进程级进度表，条目带 TTL 自动过期（默认 30 分钟），
// 只支持轮询读取，不提供推送。
type Progress struct {
	cache *gcache.Cache
	ttl   time.Duration
}

// NewProgress 构建进度表。
func NewProgress(ttl time.Duration) *Progress {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Progress{
		cache: gcache.New(),
		ttl:   ttl,
	}
}

// Set 写入一条进度。
func (p *Progress) Set(ctx context.Context, fileId int64, status string, pct int, msg string, cause error) {
	entry := ProgressEntry{
		FileId:    fileId,
		Status:    status,
		Progress:  pct,
		Message:   msg,
		UpdatedAt: time.Now(),
	}
	if cause != nil {
		entry.Error = cause.Error()
	}
	_ = p.cache.Set(ctx, fileId, entry, p.ttl)
}

// Get 读取某文件的最近进度，没有或已过期时 ok 为 false。
func (p *Progress) Get(ctx context.Context, fileId int64) (entry ProgressEntry, ok bool) {
	v, err := p.cache.Get(ctx, fileId)
	if err != nil || v.IsNil() {
		return entry, false
	}
	if err = v.Struct(&entry); err != nil {
		return entry, false
	}
	return entry, true
}

// Remove 删除某文件的进度。
func (p *Progress) Remove(ctx context.Context, fileId int64) {
	_, _ = p.cache.Remove(ctx, fileId)
}
