package playback

import (
	"context"

	v1 "lingoplay-speech-service/api/playback/v1"
	playbackSvc "lingoplay-speech-service/internal/service/playback"
)

func (c *ControllerV1) GetWindow(ctx context.Context, req *v1.GetWindowReq) (res *v1.GetWindowRes, err error) {
	sync, err := playbackSvc.NewSynchronizerForFile(ctx, req.FileId)
	if err != nil {
		return nil, err
	}
	state := sync.StateAt(req.Time)
	res = &v1.GetWindowRes{
		Time:     state.Time,
		Current:  toView(state.Current),
		Upcoming: toViews(state.Upcoming),
		Previous: toViews(state.Previous),
	}
	return res, nil
}

func toView(seg *playbackSvc.Segment) *v1.SegmentView {
	if seg == nil {
		return nil
	}
	return &v1.SegmentView{
		Id:    seg.Id,
		Start: seg.Start,
		End:   seg.End,
		Text:  seg.Text,
	}
}

func toViews(segments []playbackSvc.Segment) []v1.SegmentView {
	out := make([]v1.SegmentView, 0, len(segments))
	for i := range segments {
		out = append(out, *toView(&segments[i]))
	}
	return out
}
