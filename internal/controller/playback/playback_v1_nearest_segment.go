package playback

import (
	"context"

	v1 "lingoplay-speech-service/api/playback/v1"
	playbackSvc "lingoplay-speech-service/internal/service/playback"
)

func (c *ControllerV1) NearestSegment(ctx context.Context, req *v1.NearestSegmentReq) (res *v1.NearestSegmentRes, err error) {
	sync, err := playbackSvc.NewSynchronizerForFile(ctx, req.FileId)
	if err != nil {
		return nil, err
	}
	return &v1.NearestSegmentRes{
		Segment: toView(sync.FindNearestSegment(req.Time)),
	}, nil
}
