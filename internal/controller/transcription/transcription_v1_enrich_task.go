package transcription

import (
	"context"

	v1 "lingoplay-speech-service/api/transcription/v1"
	transcriptionSvc "lingoplay-speech-service/internal/service/transcription"
)

func (c *ControllerV1) EnrichTask(ctx context.Context, req *v1.EnrichTaskReq) (res *v1.EnrichTaskRes, err error) {
	if err = transcriptionSvc.ReEnrich(ctx, req.FileId); err != nil {
		return nil, err
	}
	return &v1.EnrichTaskRes{Success: true}, nil
}
