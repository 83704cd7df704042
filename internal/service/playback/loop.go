package playback

import (
	"math"
	"sync"

	"github.com/gogf/gf/v2/errors/gerror"
)

// retriggerEpsilon 重触发保护窗口（秒）。播放时钟在同一渲染帧内可能把
// 同一次越界报多次，epsilon 内的重复越界只触发一次回跳。
const retriggerEpsilon = 0.25

// Loop A/B 循环控制器。仅在显式 SetLoop 且 start < end 时生效。
type Loop struct {
	mu          sync.Mutex
	start       float64
	end         float64
	active      bool
	lastTrigger float64
	onLoop      func(seekTo float64)
}

// NewLoop 构建未激活的循环控制器。
func NewLoop() *Loop {
	return &Loop{lastTrigger: -1}
}

// OnLoop 注册回跳回调，参数为循环起点。
func (l *Loop) OnLoop(fn func(seekTo float64)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onLoop = fn
}

// SetLoop 设置循环区间。
func (l *Loop) SetLoop(start, end float64) error {
	if start >= end {
		return gerror.Newf("循环区间非法: start=%.3f end=%.3f", start, end)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.start, l.end = start, end
	l.active = true
	l.lastTrigger = -1
	return nil
}

// ClearLoop 清除循环。
func (l *Loop) ClearLoop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.active = false
	l.lastTrigger = -1
}

// Range 返回当前循环区间，未激活时 ok 为 false。
func (l *Loop) Range() (start, end float64, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.start, l.end, l.active
}

// CheckLoop 每个时钟 tick 调用一次。越过循环终点时触发回跳回调并返回 true；
// epsilon 内的重复越界被吞掉。回跳生效（时钟回到区间内）后保护自动解除。
func (l *Loop) CheckLoop(t float64) bool {
	l.mu.Lock()
	if !l.active {
		l.mu.Unlock()
		return false
	}
	if t < l.end {
		if l.lastTrigger >= 0 && t < l.lastTrigger-retriggerEpsilon {
			l.lastTrigger = -1
		}
		l.mu.Unlock()
		return false
	}
	if l.lastTrigger >= 0 && math.Abs(t-l.lastTrigger) < retriggerEpsilon {
		l.mu.Unlock()
		return false
	}
	l.lastTrigger = t
	fn, seekTo := l.onLoop, l.start
	l.mu.Unlock()

	if fn != nil {
		fn(seekTo)
	}
	return true
}
