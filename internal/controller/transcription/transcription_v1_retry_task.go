package transcription

import (
	"context"

	"github.com/gogf/gf/v2/errors/gerror"

	v1 "lingoplay-speech-service/api/transcription/v1"
	transcriptionSvc "lingoplay-speech-service/internal/service/transcription"
)

// RetryTask 重试接口。任务仍在队列中时拒绝，避免和在途任务打架。
func (c *ControllerV1) RetryTask(ctx context.Context, req *v1.RetryTaskReq) (res *v1.RetryTaskRes, err error) {
	if transcriptionSvc.IsQueued(req.FileId) {
		return nil, gerror.Newf("文件 %d 的任务仍在队列中，无需重试", req.FileId)
	}
	status, err := transcriptionSvc.Submit(ctx, req.FileId, req.Language)
	if err != nil {
		return nil, err
	}
	return &v1.RetryTaskRes{Status: status}, nil
}
