package transcription

import (
	"context"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"

	v1 "lingoplay-speech-service/api/transcription/v1"
	"lingoplay-speech-service/internal/dao"
	"lingoplay-speech-service/internal/model/entity"
)

// GetTaskList 任务列表接口，按文件ID降序键集分页。
func (c *ControllerV1) GetTaskList(ctx context.Context, req *v1.GetTaskListReq) (res *v1.GetTaskListRes, err error) {
	res = &v1.GetTaskListRes{}

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	cols := dao.AudioFile.Columns()
	model := dao.AudioFile.Ctx(ctx)
	if req.LastFileId > 0 {
		model = model.WhereLT(cols.Id, req.LastFileId)
	}

	var files []entity.AudioFile
	if err = model.OrderDesc(cols.Id).Limit(limit).Scan(&files); err != nil {
		return nil, gerror.Wrap(err, "查询文件列表失败")
	}
	if res.Total, err = dao.AudioFile.Ctx(ctx).Count(); err != nil {
		return nil, gerror.Wrap(err, "统计文件总数失败")
	}
	if len(files) == 0 {
		return res, nil
	}

	// 批量带出各文件的转写状态，避免逐条查询
	fileIds := make([]int64, 0, len(files))
	for _, f := range files {
		fileIds = append(fileIds, f.Id)
	}
	var transcripts []entity.Transcript
	if err = dao.Transcript.Ctx(ctx).
		WhereIn(dao.Transcript.Columns().FileId, fileIds).
		Scan(&transcripts); err != nil {
		return nil, gerror.Wrap(err, "查询转写状态失败")
	}
	byFile := make(map[int64]*entity.Transcript, len(transcripts))
	for i := range transcripts {
		byFile[transcripts[i].FileId] = &transcripts[i]
	}

	for _, f := range files {
		meta := v1.TaskMeta{
			FileId:   f.Id,
			FileName: f.Filename,
			FileType: f.FileType,
			FileSize: f.FileSize,
		}
		if t := byFile[f.Id]; t != nil {
			meta.Status = t.Status
			meta.Language = t.Language
			meta.Duration = t.Duration
			meta.Error = t.Error
		}
		res.Tasks = append(res.Tasks, meta)
	}
	g.Log().Debugf(ctx, "任务列表返回 %d 条，总数 %d", len(res.Tasks), res.Total)
	return res, nil
}
