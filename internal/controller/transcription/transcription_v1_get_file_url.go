package transcription

import (
	"context"

	"github.com/gogf/gf/v2/errors/gerror"

	v1 "lingoplay-speech-service/api/transcription/v1"
	"lingoplay-speech-service/internal/dao"
	"lingoplay-speech-service/internal/model/entity"
	"lingoplay-speech-service/internal/service/volcengine"
)

func (c *ControllerV1) GetFileURL(ctx context.Context, req *v1.GetFileURLReq) (res *v1.GetFileURLRes, err error) {
	var file *entity.AudioFile
	if err = dao.AudioFile.Ctx(ctx).
		Where(dao.AudioFile.Columns().Id, req.FileId).Scan(&file); err != nil {
		return nil, gerror.Wrap(err, "查询文件记录失败")
	}
	if file == nil {
		return nil, gerror.Newf("文件 %d 不存在", req.FileId)
	}
	url, err := volcengine.PreSignedAudioURL(ctx, file.ObjectKey)
	if err != nil {
		return nil, err
	}
	return &v1.GetFileURLRes{FileURL: url}, nil
}
