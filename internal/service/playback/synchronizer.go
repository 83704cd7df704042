package playback

import (
	"context"
	"math"
	"sort"

	"github.com/gogf/gf/v2/frame/g"
)

// Segment 播放侧的句段视图，按 start 升序排列。
type Segment struct {
	Id    int64   `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Options 同步器参数。宽容窗口向前预热 Preload 秒、向后滞留 Postload 秒，
// 用于高亮与自动滚动；严格包含只用于判定"正在播放"。
type Options struct {
	Preload   float64
	Postload  float64
	Lookahead int
	Lookback  int
}

// DefaultOptions 从配置读取同步器参数。
func DefaultOptions(ctx context.Context) Options {
	return Options{
		Preload:   g.Cfg().MustGet(ctx, "playback.preloadSec", 1.0).Float64(),
		Postload:  g.Cfg().MustGet(ctx, "playback.postloadSec", 0.5).Float64(),
		Lookahead: g.Cfg().MustGet(ctx, "playback.lookahead", 3).Int(),
		Lookback:  g.Cfg().MustGet(ctx, "playback.lookback", 3).Int(),
	}
}

func (o Options) normalize() Options {
	if o.Preload < 0 {
		o.Preload = 0
	}
	if o.Postload < 0 {
		o.Postload = 0
	}
	if o.Lookahead <= 0 {
		o.Lookahead = 3
	}
	if o.Lookback <= 0 {
		o.Lookback = 3
	}
	return o
}

// State 某一时刻的字幕窗口。
type State struct {
	Time     float64   `json:"time"`
	Current  *Segment  `json:"current"`
	Upcoming []Segment `json:"upcoming"`
	Previous []Segment `json:"previous"`
}

// Synchronizer 把外部驱动的播放时钟映射到字幕窗口。相对时间无状态：
// 每次 UpdateTime 都基于全量句段重算，只保留上一次的活跃下标用于变更检测。
type Synchronizer struct {
	segments   []Segment
	opts       Options
	lastActive int
	onUpdate   func(State)
}

// NewSynchronizer 构建同步器。句段会被拷贝并按 start 升序排序，
// 源数据出现重叠时始终取 start 最小者，保证结果确定。
func NewSynchronizer(segments []Segment, opts Options) *Synchronizer {
	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})
	return &Synchronizer{
		segments:   sorted,
		opts:       opts.normalize(),
		lastActive: -1,
	}
}

// OnUpdate 注册窗口变更回调。只在活跃句段下标变化时触发，避免 UI 抖动。
func (s *Synchronizer) OnUpdate(fn func(State)) {
	s.onUpdate = fn
}

// UpdateTime 推进时钟并返回最新窗口。changed 表示活跃句段相对上一次
// 发生了变化。
func (s *Synchronizer) UpdateTime(t float64) (state State, changed bool) {
	state = s.StateAt(t)

	active := s.activeIndexAt(t)
	changed = active != s.lastActive
	s.lastActive = active

	if changed && s.onUpdate != nil {
		s.onUpdate(state)
	}
	return state, changed
}

// StateAt 计算 t 时刻的字幕窗口，不做变更检测。current 按严格包含
// [start, end] 判定，至多一个。
func (s *Synchronizer) StateAt(t float64) State {
	state := State{Time: t}

	currentIdx := -1
	for i := range s.segments {
		if t >= s.segments[i].Start && t <= s.segments[i].End {
			currentIdx = i
			break
		}
	}
	if currentIdx >= 0 {
		seg := s.segments[currentIdx]
		state.Current = &seg
	}

	// 以严格 current 为锚点切前后窗口；没有 current 时以第一个未来句段为界
	anchor := currentIdx
	if anchor < 0 {
		anchor = len(s.segments)
		for i := range s.segments {
			if s.segments[i].Start > t {
				anchor = i
				break
			}
		}
		state.Upcoming = s.slice(anchor, s.opts.Lookahead)
		state.Previous = s.sliceBack(anchor-1, s.opts.Lookback)
		return state
	}
	state.Upcoming = s.slice(anchor+1, s.opts.Lookahead)
	state.Previous = s.sliceBack(anchor-1, s.opts.Lookback)
	return state
}

// ActiveIndexAt 返回 t 时刻宽容窗口内的活跃句段下标，没有时为 -1。
// 宽容窗口 [start-preload, end+postload] 供高亮/滚动使用。
func (s *Synchronizer) ActiveIndexAt(t float64) int {
	return s.activeIndexAt(t)
}

func (s *Synchronizer) activeIndexAt(t float64) int {
	for i := range s.segments {
		if t >= s.segments[i].Start-s.opts.Preload && t <= s.segments[i].End+s.opts.Postload {
			return i
		}
	}
	return -1
}

// FindNearestSegment 找中点距 t 最近的句段（点击跳转/续播用）。
// 距离相等时取 start 更早者。空列表返回 nil。
func (s *Synchronizer) FindNearestSegment(t float64) *Segment {
	if len(s.segments) == 0 {
		return nil
	}
	best := 0
	bestDist := math.Abs((s.segments[0].Start+s.segments[0].End)/2 - t)
	for i := 1; i < len(s.segments); i++ {
		d := math.Abs((s.segments[i].Start+s.segments[i].End)/2 - t)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	seg := s.segments[best]
	return &seg
}

// SegmentsInRange 返回与 [a, b] 有交集的句段。
func (s *Synchronizer) SegmentsInRange(a, b float64) []Segment {
	if a > b {
		a, b = b, a
	}
	var out []Segment
	for _, seg := range s.segments {
		if seg.End >= a && seg.Start <= b {
			out = append(out, seg)
		}
	}
	return out
}

func (s *Synchronizer) slice(from, n int) []Segment {
	if from < 0 {
		from = 0
	}
	if from >= len(s.segments) || n <= 0 {
		return nil
	}
	to := from + n
	if to > len(s.segments) {
		to = len(s.segments)
	}
	out := make([]Segment, to-from)
	copy(out, s.segments[from:to])
	return out
}

func (s *Synchronizer) sliceBack(from, n int) []Segment {
	if from < 0 || n <= 0 {
		return nil
	}
	start := from - n + 1
	if start < 0 {
		start = 0
	}
	out := make([]Segment, from-start+1)
	copy(out, s.segments[start:from+1])
	return out
}
