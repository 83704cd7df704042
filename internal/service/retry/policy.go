package retry

import (
	"time"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/util/grand"

	"lingoplay-speech-service/internal/consts"
)

// Policy 重试决策：某个错误能不能重试、第 N 次重试前睡多久。
// 纯函数，无状态，可以被多个 goroutine 共用。
type Policy struct {
	MaxAttempts int           // 总尝试次数（含首次）
	BaseDelay   time.Duration // 首次重试前的基础延迟
	Factor      int           // 指数增长因子
	MaxDelay    time.Duration // 延迟上限
	Jitter      bool          // 是否加随机抖动
}

// Default 管线默认策略：1s 起步、2 倍增长、共 3 次尝试（两次间隔约 1s、2s）。
func Default() *Policy {
	return &Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Factor:      2,
		MaxDelay:    30 * time.Second,
		Jitter:      false,
	}
}

// IsRetryable 按错误语义分类：只有瞬时故障（网络、超时、5xx）可重试。
// 取消、凭证缺失、参数校验类错误直接失败。
func (p *Policy) IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if consts.IsCancelled(err) {
		return false
	}
	return gerror.Code(err) == consts.CodeProviderTransient
}

// DelayForAttempt 返回第 attempt 次重试（0 起）前应等待的时长。
func (p *Policy) DelayForAttempt(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	delay := p.BaseDelay
	for i := 0; i < attempt; i++ {
		delay *= time.Duration(p.Factor)
		if delay >= p.MaxDelay {
			delay = p.MaxDelay
			break
		}
	}
	if p.Jitter && delay > 0 {
		// 抖动范围 [delay, delay*1.25]
		delay += time.Duration(grand.N(0, int(delay)/4))
	}
	return delay
}
