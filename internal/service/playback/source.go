package playback

import (
	"context"

	"github.com/gogf/gf/v2/errors/gerror"

	"lingoplay-speech-service/internal/consts"
	"lingoplay-speech-service/internal/dao"
	"lingoplay-speech-service/internal/model/entity"
)

// LoadSegments 读取某文件已完成转写的全部句段，按 start 升序。
// 转写未完成时报错，播放端不应看到半成品字幕。
func LoadSegments(ctx context.Context, fileId int64) ([]Segment, error) {
	var transcript *entity.Transcript
	if err := dao.Transcript.Ctx(ctx).
		Where(dao.Transcript.Columns().FileId, fileId).Scan(&transcript); err != nil {
		return nil, gerror.Wrap(err, "查询 transcript 失败")
	}
	if transcript == nil {
		return nil, gerror.Newf("文件 %d 尚无转写记录", fileId)
	}
	if transcript.Status != consts.StatusCompleted {
		return nil, gerror.Newf("转写尚未完成（当前状态 %s）", transcript.Status)
	}

	var rows []entity.Segment
	if err := dao.Segment.Ctx(ctx).
		Where(dao.Segment.Columns().TranscriptId, transcript.Id).
		OrderAsc(dao.Segment.Columns().StartTime).
		Scan(&rows); err != nil {
		return nil, gerror.Wrap(err, "查询句段失败")
	}

	segments := make([]Segment, 0, len(rows))
	for _, r := range rows {
		segments = append(segments, Segment{
			Id:    r.Id,
			Start: r.StartTime,
			End:   r.EndTime,
			Text:  r.Text,
		})
	}
	return segments, nil
}

// NewSynchronizerForFile 按配置参数为某文件构建同步器。
func NewSynchronizerForFile(ctx context.Context, fileId int64) (*Synchronizer, error) {
	segments, err := LoadSegments(ctx, fileId)
	if err != nil {
		return nil, err
	}
	return NewSynchronizer(segments, DefaultOptions(ctx)), nil
}
