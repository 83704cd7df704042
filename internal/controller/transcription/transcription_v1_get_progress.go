package transcription

import (
	"context"

	"github.com/gogf/gf/v2/errors/gerror"

	v1 "lingoplay-speech-service/api/transcription/v1"
	"lingoplay-speech-service/internal/consts"
	"lingoplay-speech-service/internal/dao"
	"lingoplay-speech-service/internal/model/entity"
	transcriptionSvc "lingoplay-speech-service/internal/service/transcription"
)

// GetProgress 进度查询接口。优先读内存进度表（带 TTL），
// 条目过期后回退到 transcript 行的终态。
func (c *ControllerV1) GetProgress(ctx context.Context, req *v1.GetProgressReq) (res *v1.GetProgressRes, err error) {
	if entry, ok := transcriptionSvc.GetProgress(ctx, req.FileId); ok {
		return &v1.GetProgressRes{
			Status:   entry.Status,
			Progress: entry.Progress,
			Message:  entry.Message,
			Error:    entry.Error,
		}, nil
	}

	var transcript *entity.Transcript
	if err = dao.Transcript.Ctx(ctx).
		Where(dao.Transcript.Columns().FileId, req.FileId).
		Scan(&transcript); err != nil {
		return nil, gerror.Wrap(err, "查询转写记录失败")
	}
	if transcript == nil {
		return nil, gerror.Newf("文件 %d 尚无转写任务", req.FileId)
	}

	res = &v1.GetProgressRes{
		Status: transcript.Status,
		Error:  transcript.Error,
	}
	if transcript.Status == consts.StatusCompleted {
		res.Progress = 100
	}
	return res, nil
}
