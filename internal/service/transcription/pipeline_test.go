package transcription

import (
	"context"
	"testing"
	"time"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/test/gtest"

	"lingoplay-speech-service/internal/consts"
	"lingoplay-speech-service/internal/service/queue"
	"lingoplay-speech-service/internal/service/retry"
	"lingoplay-speech-service/internal/service/stt"
)

type stubLoader struct {
	payload *AudioPayload
	err     error
}

func (l *stubLoader) Load(ctx context.Context, fileId int64) (*AudioPayload, error) {
	return l.payload, l.err
}

type stubProvider struct {
	calls   int
	results []func() (*stt.Result, error)
}

func (p *stubProvider) Transcribe(ctx context.Context, req stt.Request) (*stt.Result, error) {
	i := p.calls
	p.calls++
	if i >= len(p.results) {
		i = len(p.results) - 1
	}
	return p.results[i]()
}

type stubSaver struct {
	saved        *NormalizedResult
	saveErr      error
	transcriptId int64
	cleanups     int
}

func (s *stubSaver) SaveResult(ctx context.Context, fileId int64, res *NormalizedResult) (int64, error) {
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	s.saved = res
	return s.transcriptId, nil
}

func (s *stubSaver) Cleanup(ctx context.Context, fileId int64) {
	s.cleanups++
}

func testJob(language string) *queue.Job {
	return &queue.Job{FileId: 1, Language: language}
}

func goodResult() (*stt.Result, error) {
	return &stt.Result{
		Text:     "こんにちは。元気ですか。",
		Language: "ja",
		Duration: 6,
		Segments: []stt.Segment{
			{Start: 0, End: 3, Text: "こんにちは。"},
			{Start: 3, End: 6, Text: "元気ですか。"},
		},
	}, nil
}

func transientErr() (*stt.Result, error) {
	return nil, gerror.NewCode(consts.CodeProviderTransient, "upstream 503")
}

func newTestPipeline(loader AudioLoader, provider Provider, saver Saver) (*Pipeline, *[]time.Duration) {
	p := NewPipeline(loader, provider, saver, retry.Default())
	delays := &[]time.Duration{}
	p.sleep = func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return ctx.Err()
	}
	return p, delays
}

func TestPipelineSuccess(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		loader := &stubLoader{payload: &AudioPayload{FileName: "a.mp3", Data: []byte("xx")}}
		provider := &stubProvider{results: []func() (*stt.Result, error){goodResult}}
		saver := &stubSaver{transcriptId: 42}
		p, _ := newTestPipeline(loader, provider, saver)

		var enriched []int64
		p.enrich = func(id int64) { enriched = append(enriched, id) }

		outcome := p.Run(context.Background(), testJob("ja"))
		t.Assert(outcome.Kind, OutcomeSuccess)
		t.Assert(outcome.TranscriptId, int64(42))
		t.Assert(outcome.SegmentCount, 2)
		t.Assert(provider.calls, 1)
		t.Assert(enriched, []int64{42})
		t.Assert(saver.saved.Language, "ja")
	})
}

func TestPipelineRetryExhaustion(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		loader := &stubLoader{payload: &AudioPayload{FileName: "a.mp3"}}
		provider := &stubProvider{results: []func() (*stt.Result, error){transientErr}}
		saver := &stubSaver{}
		p, delays := newTestPipeline(loader, provider, saver)

		outcome := p.Run(context.Background(), testJob("en"))
		t.Assert(outcome.Kind, OutcomeFailed)
		// 共 3 次尝试，两次退避间隔按指数表
		t.Assert(provider.calls, 3)
		t.Assert(*delays, []time.Duration{time.Second, 2 * time.Second})
		t.Assert(saver.cleanups, 0)
	})
}

func TestPipelineNonRetryableShortCircuit(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		loader := &stubLoader{payload: &AudioPayload{FileName: "a.mp3"}}
		provider := &stubProvider{results: []func() (*stt.Result, error){
			func() (*stt.Result, error) {
				return nil, gerror.NewCode(consts.CodeProviderRejected, "missing credentials")
			},
		}}
		p, delays := newTestPipeline(loader, provider, &stubSaver{})

		outcome := p.Run(context.Background(), testJob("en"))
		t.Assert(outcome.Kind, OutcomeFailed)
		t.Assert(provider.calls, 1)
		t.Assert(len(*delays), 0)
		t.Assert(gerror.Code(outcome.Err), consts.CodeProviderRejected)
	})
}

func TestPipelineSourceMissing(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		loader := &stubLoader{err: gerror.NewCode(consts.CodeSourceMissing, "音频对象不存在")}
		provider := &stubProvider{results: []func() (*stt.Result, error){goodResult}}
		p, _ := newTestPipeline(loader, provider, &stubSaver{})

		outcome := p.Run(context.Background(), testJob("en"))
		t.Assert(outcome.Kind, OutcomeFailed)
		t.Assert(provider.calls, 0)
		t.Assert(gerror.Code(outcome.Err), consts.CodeSourceMissing)
	})
}

func TestPipelineCancelledBeforeCall(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		loader := &stubLoader{payload: &AudioPayload{FileName: "a.mp3"}}
		provider := &stubProvider{results: []func() (*stt.Result, error){goodResult}}
		p, _ := newTestPipeline(loader, provider, &stubSaver{})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		outcome := p.Run(ctx, testJob("en"))
		t.Assert(outcome.Kind, OutcomeCancelled)
		t.Assert(provider.calls, 0)
	})
}

func TestPipelineCancelledDuringBackoff(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		loader := &stubLoader{payload: &AudioPayload{FileName: "a.mp3"}}
		provider := &stubProvider{results: []func() (*stt.Result, error){transientErr}}
		saver := &stubSaver{}
		p := NewPipeline(loader, provider, saver, retry.Default())

		ctx, cancel := context.WithCancel(context.Background())
		p.sleep = func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		}

		outcome := p.Run(ctx, testJob("en"))
		t.Assert(outcome.Kind, OutcomeCancelled)
		t.Assert(provider.calls, 1)
		t.Assert(saver.cleanups, 0)
	})
}

func TestPipelineCancelledDuringSave(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		loader := &stubLoader{payload: &AudioPayload{FileName: "a.mp3"}}
		provider := &stubProvider{results: []func() (*stt.Result, error){goodResult}}
		// 取消打断落库事务：终态是取消而不是失败
		saver := &stubSaver{saveErr: gerror.Wrap(context.Canceled, "事务被中断")}
		p, _ := newTestPipeline(loader, provider, saver)

		outcome := p.Run(context.Background(), testJob("ja"))
		t.Assert(outcome.Kind, OutcomeCancelled)
		t.AssertNil(outcome.Err)
		t.Assert(saver.cleanups, 1)
	})
}

func TestPipelinePersistenceFailureTriggersCleanup(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		loader := &stubLoader{payload: &AudioPayload{FileName: "a.mp3"}}
		provider := &stubProvider{results: []func() (*stt.Result, error){goodResult}}
		saver := &stubSaver{saveErr: gerror.New("disk full")}
		p, _ := newTestPipeline(loader, provider, saver)

		outcome := p.Run(context.Background(), testJob("en"))
		t.Assert(outcome.Kind, OutcomeFailed)
		t.Assert(saver.cleanups, 1)
		t.Assert(gerror.Code(outcome.Err), consts.CodePersistenceFailure)
	})
}
