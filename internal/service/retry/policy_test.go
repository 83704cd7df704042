package retry

import (
	"context"
	"testing"
	"time"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/test/gtest"

	"lingoplay-speech-service/internal/consts"
)

func TestPolicyIsRetryable(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		p := Default()

		t.Assert(p.IsRetryable(nil), false)
		t.Assert(p.IsRetryable(gerror.NewCode(consts.CodeProviderTransient, "timeout")), true)
		t.Assert(p.IsRetryable(gerror.NewCode(consts.CodeProviderRejected, "missing credentials")), false)
		t.Assert(p.IsRetryable(gerror.NewCode(consts.CodeSourceMissing, "no audio")), false)
		t.Assert(p.IsRetryable(gerror.NewCode(consts.CodeCancelled, "cancelled")), false)
		t.Assert(p.IsRetryable(context.Canceled), false)
	})
}

func TestPolicyDelaySchedule(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		p := Default()

		t.Assert(p.DelayForAttempt(0), time.Second)
		t.Assert(p.DelayForAttempt(1), 2*time.Second)
		t.Assert(p.DelayForAttempt(2), 4*time.Second)
		t.Assert(p.DelayForAttempt(-1), time.Second)
	})
}

func TestPolicyDelayCap(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		p := &Policy{MaxAttempts: 10, BaseDelay: time.Second, Factor: 2, MaxDelay: 5 * time.Second}

		t.Assert(p.DelayForAttempt(10), 5*time.Second)
	})
}

func TestPolicyJitterBounds(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		p := &Policy{MaxAttempts: 3, BaseDelay: time.Second, Factor: 2, MaxDelay: 30 * time.Second, Jitter: true}

		for i := 0; i < 50; i++ {
			d := p.DelayForAttempt(1)
			t.AssertGE(d, 2*time.Second)
			t.AssertLE(d, 2*time.Second+500*time.Millisecond)
		}
	})
}
