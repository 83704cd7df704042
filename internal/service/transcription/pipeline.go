package transcription

import (
	"context"
	"time"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"

	"lingoplay-speech-service/internal/consts"
	"lingoplay-speech-service/internal/service/queue"
	"lingoplay-speech-service/internal/service/retry"
	"lingoplay-speech-service/internal/service/stt"
)

// OutcomeKind 管线终态
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeCancelled
	OutcomeFailed
)

// Outcome 一次转写任务的结果。Cancelled 与 Failed 严格区分，
// 调用方据此决定是否展示错误。
type Outcome struct {
	Kind         OutcomeKind
	TranscriptId int64
	SegmentCount int
	Err          error
}

// AudioPayload 从存储拉取到的音频
type AudioPayload struct {
	FileName string
	Data     []byte
}

// AudioLoader 音频源。找不到时返回 SourceMissing 类错误。
type AudioLoader interface {
	Load(ctx context.Context, fileId int64) (*AudioPayload, error)
}

// Provider 第三方转写服务
type Provider interface {
	Transcribe(ctx context.Context, req stt.Request) (*stt.Result, error)
}

// Saver 事务性落库协调器
type Saver interface {
	SaveResult(ctx context.Context, fileId int64, res *NormalizedResult) (int64, error)
	Cleanup(ctx context.Context, fileId int64)
}

// Pipeline 驱动单个任务走完 拉取音频 → 调用转写 → 归一化 → 落库 → 富化 的流程，
// 只有转写+落库阶段参与重试，富化永远不自动重试。
type Pipeline struct {
	loader   AudioLoader
	provider Provider
	saver    Saver
	policy   *retry.Policy

	// report 上报进度 (fileId, 0-100, message)，可为 nil
	report func(fileId int64, pct int, msg string)
	// enrich 落库成功后的富化钩子（内部自行 go 出去），可为 nil
	enrich func(transcriptId int64)
	// sleep 重试退避，测试中可替换
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPipeline 构建管线。
func NewPipeline(loader AudioLoader, provider Provider, saver Saver, policy *retry.Policy) *Pipeline {
	if policy == nil {
		policy = retry.Default()
	}
	return &Pipeline{
		loader:   loader,
		provider: provider,
		saver:    saver,
		policy:   policy,
		sleep:    sleepCtx,
	}
}

// Run 执行一个任务。取消信号在每次调用转写接口前检查，
// 已在途的请求不保证立即中断，但其结果会被丢弃。
func (p *Pipeline) Run(ctx context.Context, job *queue.Job) Outcome {
	p.progress(job.FileId, 10, "拉取音频")
	payload, err := p.loader.Load(ctx, job.FileId)
	if err != nil {
		return Outcome{Kind: OutcomeFailed, Err: err}
	}

	var result *stt.Result
	for attempt := 0; attempt < p.policy.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return Outcome{Kind: OutcomeCancelled}
		}
		p.progress(job.FileId, 30, "调用转写服务")
		result, err = p.provider.Transcribe(ctx, stt.Request{
			FileName: payload.FileName,
			Audio:    payload.Data,
			Language: job.Language,
		})
		if err == nil {
			break
		}
		if consts.IsCancelled(err) {
			return Outcome{Kind: OutcomeCancelled}
		}
		if !p.policy.IsRetryable(err) || attempt == p.policy.MaxAttempts-1 {
			return Outcome{Kind: OutcomeFailed, Err: err}
		}
		delay := p.policy.DelayForAttempt(attempt)
		g.Log().Warningf(ctx, "[file:%d] 第 %d 次转写失败，%v 后重试: %v", job.FileId, attempt+1, delay, err)
		if err = p.sleep(ctx, delay); err != nil {
			return Outcome{Kind: OutcomeCancelled}
		}
	}

	normalized, err := Normalize(result, job.Language)
	if err != nil {
		return Outcome{Kind: OutcomeFailed, Err: err}
	}

	if ctx.Err() != nil {
		// 取消的任务结果直接丢弃，不落库
		return Outcome{Kind: OutcomeCancelled}
	}

	p.progress(job.FileId, 70, "写入转写结果")
	transcriptId, err := p.saver.SaveResult(ctx, job.FileId, normalized)
	if err != nil {
		if consts.IsCancelled(err) {
			// 取消打断了落库事务：结果按取消丢弃，补偿清理换用不受取消影响的 ctx
			p.saver.Cleanup(context.WithoutCancel(ctx), job.FileId)
			return Outcome{Kind: OutcomeCancelled}
		}
		p.saver.Cleanup(ctx, job.FileId)
		return Outcome{Kind: OutcomeFailed, Err: gerror.WrapCode(consts.CodePersistenceFailure, err, "转写结果入库失败")}
	}

	p.progress(job.FileId, 90, "提交富化任务")
	if p.enrich != nil {
		p.enrich(transcriptId)
	}

	return Outcome{Kind: OutcomeSuccess, TranscriptId: transcriptId, SegmentCount: len(normalized.Segments)}
}

func (p *Pipeline) progress(fileId int64, pct int, msg string) {
	if p.report != nil {
		p.report(fileId, pct, msg)
	}
}

// sleepCtx 可被取消打断的退避等待。
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
