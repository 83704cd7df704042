package playback

import (
	"testing"

	"github.com/gogf/gf/v2/test/gtest"
)

func testOptions() Options {
	return Options{Preload: 1.0, Postload: 0.5, Lookahead: 3, Lookback: 3}
}

func twoSegments() []Segment {
	return []Segment{
		{Id: 1, Start: 0, End: 3, Text: "一"},
		{Id: 2, Start: 3, End: 6, Text: "二"},
	}
}

func TestStrictCurrentAtBoundaries(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		s := NewSynchronizer(twoSegments(), testOptions())

		state := s.StateAt(2.99)
		t.AssertNE(state.Current, nil)
		t.Assert(state.Current.Id, int64(1))

		state = s.StateAt(3.01)
		t.AssertNE(state.Current, nil)
		t.Assert(state.Current.Id, int64(2))

		state = s.StateAt(-1)
		t.Assert(state.Current, nil)

		state = s.StateAt(100)
		t.Assert(state.Current, nil)
	})
}

func TestTolerantWindowWiderThanStrict(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		s := NewSynchronizer(twoSegments(), testOptions())

		// -0.5 在第一段的预热窗口内，但不在严格区间内
		t.Assert(s.ActiveIndexAt(-0.5), 0)
		t.Assert(s.StateAt(-0.5).Current, nil)

		// 6.4 在第二段的滞留窗口内
		t.Assert(s.ActiveIndexAt(6.4), 1)
		t.Assert(s.StateAt(6.4).Current, nil)

		t.Assert(s.ActiveIndexAt(100), -1)
	})
}

func TestOverlappingSegmentsPickEarliest(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		s := NewSynchronizer([]Segment{
			{Id: 2, Start: 1, End: 5, Text: "后"},
			{Id: 1, Start: 0, End: 4, Text: "先"},
		}, testOptions())

		state := s.StateAt(2)
		t.AssertNE(state.Current, nil)
		t.Assert(state.Current.Id, int64(1))
	})
}

func TestWindowSlices(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		segments := make([]Segment, 0, 10)
		for i := 0; i < 10; i++ {
			segments = append(segments, Segment{
				Id:    int64(i + 1),
				Start: float64(i * 3),
				End:   float64(i*3 + 3),
			})
		}
		opts := testOptions()
		opts.Lookahead = 2
		opts.Lookback = 2
		s := NewSynchronizer(segments, opts)

		state := s.StateAt(13) // 第 5 段 [12,15]
		t.Assert(state.Current.Id, int64(5))
		t.Assert(len(state.Upcoming), 2)
		t.Assert(state.Upcoming[0].Id, int64(6))
		t.Assert(len(state.Previous), 2)
		t.Assert(state.Previous[0].Id, int64(3))
		t.Assert(state.Previous[1].Id, int64(4))

		// 列表开头：lookback 截断
		state = s.StateAt(1)
		t.Assert(state.Current.Id, int64(1))
		t.Assert(len(state.Previous), 0)

		// 间隙中：以下一个未来句段为锚点
		s2 := NewSynchronizer([]Segment{
			{Id: 1, Start: 0, End: 2},
			{Id: 2, Start: 5, End: 7},
		}, opts)
		state = s2.StateAt(3)
		t.Assert(state.Current, nil)
		t.Assert(len(state.Upcoming), 1)
		t.Assert(state.Upcoming[0].Id, int64(2))
		t.Assert(len(state.Previous), 1)
		t.Assert(state.Previous[0].Id, int64(1))
	})
}

func TestChangeNotification(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		s := NewSynchronizer(twoSegments(), testOptions())

		var fired int
		s.OnUpdate(func(State) { fired++ })

		_, changed := s.UpdateTime(1)
		t.Assert(changed, true)
		// 同一活跃句段内的重复 tick 不再通知
		_, changed = s.UpdateTime(1.5)
		t.Assert(changed, false)
		_, changed = s.UpdateTime(2)
		t.Assert(changed, false)
		// 进入第二段（宽容窗口下 4.0 已离开第一段）
		_, changed = s.UpdateTime(4.1)
		t.Assert(changed, true)
		t.Assert(fired, 2)
	})
}

func TestFindNearestSegment(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		s := NewSynchronizer(twoSegments(), testOptions())

		// 中点分别为 1.5 和 4.5
		t.Assert(s.FindNearestSegment(0).Id, int64(1))
		t.Assert(s.FindNearestSegment(4).Id, int64(2))
		t.Assert(s.FindNearestSegment(100).Id, int64(2))

		// 等距（t=3.0 距两中点各 1.5）取 start 更早者
		t.Assert(s.FindNearestSegment(3).Id, int64(1))

		empty := NewSynchronizer(nil, testOptions())
		t.Assert(empty.FindNearestSegment(3), nil)
	})
}

func TestSegmentsInRange(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		s := NewSynchronizer(twoSegments(), testOptions())

		got := s.SegmentsInRange(2, 4)
		t.Assert(len(got), 2)

		got = s.SegmentsInRange(0, 1)
		t.Assert(len(got), 1)
		t.Assert(got[0].Id, int64(1))

		// 区间颠倒自动纠正
		got = s.SegmentsInRange(4, 2)
		t.Assert(len(got), 2)

		got = s.SegmentsInRange(10, 20)
		t.Assert(len(got), 0)
	})
}
