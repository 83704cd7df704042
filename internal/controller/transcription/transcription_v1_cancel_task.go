package transcription

import (
	"context"

	v1 "lingoplay-speech-service/api/transcription/v1"
	transcriptionSvc "lingoplay-speech-service/internal/service/transcription"
)

func (c *ControllerV1) CancelTask(ctx context.Context, req *v1.CancelTaskReq) (res *v1.CancelTaskRes, err error) {
	return &v1.CancelTaskRes{
		Cancelled: transcriptionSvc.CancelJob(req.FileId),
	}, nil
}
