package transcription

import (
	"context"
	"time"

	"github.com/gogf/gf/v2/database/gdb"
	"github.com/gogf/gf/v2/encoding/gjson"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"

	"lingoplay-speech-service/internal/consts"
	"lingoplay-speech-service/internal/dao"
	"lingoplay-speech-service/internal/model/do"
)

// Coordinator 转写结果的事务性落库协调器。transcript 与其 segments
// 始终在同一个事务内整体替换，旧句段绝不和新 transcript 并存。
type Coordinator struct {
	batchSize int
}

// NewCoordinator 构建协调器，批大小默认 100。
func NewCoordinator(ctx context.Context) *Coordinator {
	return &Coordinator{
		batchSize: g.Cfg().MustGet(ctx, "transcribe.batchSize", 100).Int(),
	}
}

// SaveResult 在单个事务内保存转写结果：已有 transcript 则原地更新并清掉旧句段，
// 否则新建；随后分批插入新句段。返回 transcriptId。
func (c *Coordinator) SaveResult(ctx context.Context, fileId int64, res *NormalizedResult) (int64, error) {
	var transcriptId int64
	err := dao.Transcript.Transaction(ctx, func(ctx context.Context, tx gdb.TX) error {
		existing, err := dao.Transcript.Ctx(ctx).
			Where(dao.Transcript.Columns().FileId, fileId).One()
		if err != nil {
			return err
		}

		if !existing.IsEmpty() {
			// Found：原地更新，旧句段整体清除
			transcriptId = existing["id"].Int64()
			if _, err = dao.Transcript.Ctx(ctx).
				Data(do.Transcript{
					Status:   consts.StatusCompleted,
					RawText:  res.Text,
					Language: res.Language,
					Duration: res.Duration,
					Error:    "",
				}).
				Where(dao.Transcript.Columns().Id, transcriptId).Update(); err != nil {
				return err
			}
			if _, err = dao.Segment.Ctx(ctx).
				Where(dao.Segment.Columns().TranscriptId, transcriptId).Delete(); err != nil {
				return err
			}
		} else {
			// NotFound：新建
			transcriptId, err = dao.Transcript.Ctx(ctx).
				Data(do.Transcript{
					FileId:   fileId,
					Status:   consts.StatusCompleted,
					RawText:  res.Text,
					Language: res.Language,
					Duration: res.Duration,
					Error:    "",
				}).InsertAndGetId()
			if err != nil {
				return err
			}
		}

		return c.insertSegments(ctx, transcriptId, res.Segments)
	})
	if err != nil {
		return 0, gerror.WrapCode(consts.CodePersistenceFailure, err, "保存转写结果失败")
	}
	return transcriptId, nil
}

// insertSegments 分批插入句段，批间短暂让出，避免大结果长期占用事务。
func (c *Coordinator) insertSegments(ctx context.Context, transcriptId int64, segments []NormalizedSegment) error {
	size := c.batchSize
	if size <= 0 {
		size = 100
	}
	for i := 0; i < len(segments); i += size {
		j := i + size
		if j > len(segments) {
			j = len(segments)
		}
		rows := make([]do.Segment, 0, j-i)
		for _, seg := range segments[i:j] {
			row := do.Segment{
				TranscriptId: transcriptId,
				StartTime:    seg.Start,
				EndTime:      seg.End,
				Text:         seg.Text,
			}
			if len(seg.Words) > 0 {
				row.WordTimestamps = gjson.New(seg.Words)
			}
			rows = append(rows, row)
		}
		if _, err := dao.Segment.Ctx(ctx).Data(rows).Insert(); err != nil {
			return err
		}
		if j < len(segments) {
			time.Sleep(5 * time.Millisecond)
		}
	}
	return nil
}

// Cleanup 二次补偿清理。事务回滚之后再跑一遍，删掉该 fileId 名下所有
// 未完成的 transcript 及其句段。部分存储后端并不保证所有失败路径都能回滚。
func (c *Coordinator) Cleanup(ctx context.Context, fileId int64) {
	ids, err := dao.Transcript.Ctx(ctx).
		Fields(dao.Transcript.Columns().Id).
		Where(dao.Transcript.Columns().FileId, fileId).
		WhereNot(dao.Transcript.Columns().Status, consts.StatusCompleted).
		Array()
	if err != nil {
		g.Log().Warningf(ctx, "[file:%d] 补偿清理查询失败: %v", fileId, err)
		return
	}
	if len(ids) == 0 {
		return
	}
	if _, err = dao.Segment.Ctx(ctx).
		WhereIn(dao.Segment.Columns().TranscriptId, ids).Delete(); err != nil {
		g.Log().Warningf(ctx, "[file:%d] 补偿清理句段失败: %v", fileId, err)
	}
	if _, err = dao.Transcript.Ctx(ctx).
		WhereIn(dao.Transcript.Columns().Id, ids).Delete(); err != nil {
		g.Log().Warningf(ctx, "[file:%d] 补偿清理 transcript 失败: %v", fileId, err)
	}
}

// MarkProcessing 任务开始执行时把 transcript 行置为 processing（不存在则新建）。
func (c *Coordinator) MarkProcessing(ctx context.Context, fileId int64, language string) error {
	existing, err := dao.Transcript.Ctx(ctx).
		Where(dao.Transcript.Columns().FileId, fileId).One()
	if err != nil {
		return err
	}
	if existing.IsEmpty() {
		_, err = dao.Transcript.Ctx(ctx).Data(do.Transcript{
			FileId:   fileId,
			Status:   consts.StatusProcessing,
			Language: language,
			Error:    "",
		}).Insert()
		return err
	}
	_, err = dao.Transcript.Ctx(ctx).
		Data(do.Transcript{Status: consts.StatusProcessing, Error: ""}).
		Where(dao.Transcript.Columns().Id, existing["id"].Int64()).Update()
	return err
}

// MarkFailed 任务失败时把 transcript 行置为 failed 并带上可读错误信息，
// 供用户在界面上发起重试。
func (c *Coordinator) MarkFailed(ctx context.Context, fileId int64, cause error) {
	msg := "转写失败"
	if cause != nil {
		msg = cause.Error()
	}
	existing, err := dao.Transcript.Ctx(ctx).
		Where(dao.Transcript.Columns().FileId, fileId).One()
	if err != nil {
		g.Log().Warningf(ctx, "[file:%d] 标记失败状态时查询出错: %v", fileId, err)
		return
	}
	if existing.IsEmpty() {
		if _, err = dao.Transcript.Ctx(ctx).Data(do.Transcript{
			FileId: fileId,
			Status: consts.StatusFailed,
			Error:  msg,
		}).Insert(); err != nil {
			g.Log().Warningf(ctx, "[file:%d] 写入失败状态出错: %v", fileId, err)
		}
		return
	}
	if _, err = dao.Transcript.Ctx(ctx).
		Data(do.Transcript{Status: consts.StatusFailed, Error: msg}).
		Where(dao.Transcript.Columns().Id, existing["id"].Int64()).Update(); err != nil {
		g.Log().Warningf(ctx, "[file:%d] 写入失败状态出错: %v", fileId, err)
	}
}

// RevertPending 任务取消时把 transcript 行退回 pending（而不是 failed），
// 让后续的用户重试与全新提交无差别。排队中就被取消的任务行可能还停在
// 上一次的 failed 上，一并退回。
func (c *Coordinator) RevertPending(ctx context.Context, fileId int64) {
	if _, err := dao.Transcript.Ctx(ctx).
		Data(do.Transcript{Status: consts.StatusPending, Error: ""}).
		Where(dao.Transcript.Columns().FileId, fileId).
		WhereIn(dao.Transcript.Columns().Status, []string{consts.StatusProcessing, consts.StatusFailed}).
		Update(); err != nil {
		g.Log().Warningf(ctx, "[file:%d] 回退 pending 状态出错: %v", fileId, err)
	}
}
