package transcription

import (
	"context"

	v1 "lingoplay-speech-service/api/transcription/v1"
	transcriptionSvc "lingoplay-speech-service/internal/service/transcription"
)

// TaskSubmit 任务提交接口。同一文件重复提交会合并到已有任务（幂等）。
func (c *ControllerV1) TaskSubmit(ctx context.Context, req *v1.TaskSubmitReq) (res *v1.TaskSubmitRes, err error) {
	status, err := transcriptionSvc.Submit(ctx, req.FileId, req.Language)
	if err != nil {
		return nil, err
	}
	return &v1.TaskSubmitRes{Status: status}, nil
}
