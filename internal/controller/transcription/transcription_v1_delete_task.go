package transcription

import (
	"context"

	"github.com/gogf/gf/v2/database/gdb"
	"github.com/gogf/gf/v2/errors/gcode"
	"github.com/gogf/gf/v2/errors/gerror"

	v1 "lingoplay-speech-service/api/transcription/v1"
	"lingoplay-speech-service/internal/dao"
	"lingoplay-speech-service/internal/model/entity"
	transcriptionSvc "lingoplay-speech-service/internal/service/transcription"
)

// DeleteTask 删除文件记录、转写记录与全部句段。在途任务先取消。
func (c *ControllerV1) DeleteTask(ctx context.Context, req *v1.DeleteTaskReq) (res *v1.DeleteTaskRes, err error) {
	res = &v1.DeleteTaskRes{}
	transcriptionSvc.CancelJob(req.FileId)

	err = dao.AudioFile.Transaction(ctx, func(ctx context.Context, tx gdb.TX) error {
		var transcript *entity.Transcript
		if err := dao.Transcript.Ctx(ctx).
			Where(dao.Transcript.Columns().FileId, req.FileId).
			Scan(&transcript); err != nil {
			return gerror.WrapCode(gcode.CodeDbOperationError, err, "查询转写记录失败")
		}
		if transcript != nil {
			if _, err := dao.Segment.Ctx(ctx).
				Where(dao.Segment.Columns().TranscriptId, transcript.Id).Delete(); err != nil {
				return gerror.WrapCode(gcode.CodeDbOperationError, err, "删除句段失败")
			}
			if _, err := dao.Transcript.Ctx(ctx).
				Where(dao.Transcript.Columns().Id, transcript.Id).Delete(); err != nil {
				return gerror.WrapCode(gcode.CodeDbOperationError, err, "删除转写记录失败")
			}
		}
		sqlRes, err := dao.AudioFile.Ctx(ctx).
			Where(dao.AudioFile.Columns().Id, req.FileId).Delete()
		if err != nil {
			return gerror.WrapCode(gcode.CodeDbOperationError, err, "删除文件记录失败")
		}
		if eftRow, _ := sqlRes.RowsAffected(); eftRow == 0 {
			return gerror.New("找不到任务。数据库影响行数为0。")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Success = true
	return res, nil
}
