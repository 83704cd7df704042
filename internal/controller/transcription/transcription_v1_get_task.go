package transcription

import (
	"context"

	"github.com/gogf/gf/v2/errors/gerror"

	v1 "lingoplay-speech-service/api/transcription/v1"
	"lingoplay-speech-service/internal/dao"
)

func (c *ControllerV1) GetTask(ctx context.Context, req *v1.GetTaskReq) (res *v1.GetTaskRes, err error) {
	res = &v1.GetTaskRes{}
	if err = dao.Transcript.Ctx(ctx).
		Where(dao.Transcript.Columns().FileId, req.FileId).
		Scan(&res.Transcript); err != nil {
		return nil, gerror.Wrap(err, "查询转写记录失败")
	}
	if res.Transcript == nil {
		return nil, gerror.Newf("文件 %d 尚无转写记录", req.FileId)
	}
	if err = dao.Segment.Ctx(ctx).
		Where(dao.Segment.Columns().TranscriptId, res.Transcript.Id).
		OrderAsc(dao.Segment.Columns().StartTime).
		Scan(&res.Segments); err != nil {
		return nil, gerror.Wrap(err, "查询句段失败")
	}
	return res, nil
}
