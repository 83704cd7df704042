package playback

import (
	"context"

	v1 "lingoplay-speech-service/api/playback/v1"
	playbackSvc "lingoplay-speech-service/internal/service/playback"
)

func (c *ControllerV1) RangeSegments(ctx context.Context, req *v1.RangeSegmentsReq) (res *v1.RangeSegmentsRes, err error) {
	sync, err := playbackSvc.NewSynchronizerForFile(ctx, req.FileId)
	if err != nil {
		return nil, err
	}
	return &v1.RangeSegmentsRes{
		Segments: toViews(sync.SegmentsInRange(req.Start, req.End)),
	}, nil
}
