package transcription

import (
	"context"
	"testing"
	"time"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/test/gtest"

	"lingoplay-speech-service/internal/consts"
)

func TestProgressSetGet(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		p := NewProgress(time.Minute)

		_, ok := p.Get(ctx, 1)
		t.Assert(ok, false)

		p.Set(ctx, 1, consts.StatusProcessing, 5, "任务开始执行", nil)
		entry, ok := p.Get(ctx, 1)
		t.Assert(ok, true)
		t.Assert(entry.FileId, int64(1))
		t.Assert(entry.Status, consts.StatusProcessing)
		t.Assert(entry.Progress, 5)
		t.Assert(entry.Error, "")

		// 覆盖写入以最新为准
		p.Set(ctx, 1, consts.StatusFailed, 0, "转写失败", gerror.New("upstream 503"))
		entry, ok = p.Get(ctx, 1)
		t.Assert(ok, true)
		t.Assert(entry.Status, consts.StatusFailed)
		t.Assert(entry.Error, "upstream 503")
	})
}

func TestProgressTTLExpiry(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		p := NewProgress(50 * time.Millisecond)

		p.Set(ctx, 7, consts.StatusCompleted, 100, "转写完成", nil)
		_, ok := p.Get(ctx, 7)
		t.Assert(ok, true)

		time.Sleep(120 * time.Millisecond)
		_, ok = p.Get(ctx, 7)
		t.Assert(ok, false)
	})
}

func TestProgressRemove(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		ctx := context.Background()
		p := NewProgress(time.Minute)

		p.Set(ctx, 3, consts.StatusPending, 0, "任务已入队", nil)
		p.Remove(ctx, 3)
		_, ok := p.Get(ctx, 3)
		t.Assert(ok, false)
	})
}
