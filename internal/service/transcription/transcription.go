package transcription

import (
	"context"
	"time"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"

	"lingoplay-speech-service/internal/consts"
	"lingoplay-speech-service/internal/dao"
	"lingoplay-speech-service/internal/model/entity"
	"lingoplay-speech-service/internal/service/enrichment"
	"lingoplay-speech-service/internal/service/queue"
	"lingoplay-speech-service/internal/service/retry"
	"lingoplay-speech-service/internal/service/stt"
	"lingoplay-speech-service/internal/service/volcengine"
)

// Service 转写编排服务：队列、管线、落库协调器、进度表的组合体。
// 进程内只构建一次，由 Init 完成装配。
type Service struct {
	queue       *queue.Queue
	pipeline    *Pipeline
	coordinator *Coordinator
	progress    *Progress
	enricher    Enricher
}

var svc *Service

// Init 装配默认服务实例。在服务器启动时调用一次。
func Init(ctx context.Context) error {
	if svc != nil {
		return nil
	}

	coordinator := NewCoordinator(ctx)
	s := &Service{
		coordinator: coordinator,
		progress:    NewProgress(time.Duration(g.Cfg().MustGet(ctx, "transcribe.progressTTLMin", 30).Int()) * time.Minute),
		enricher:    enrichment.NewClient(ctx),
	}

	policy := &retry.Policy{
		MaxAttempts: g.Cfg().MustGet(ctx, "transcribe.maxAttempts", 3).Int(),
		BaseDelay:   time.Duration(g.Cfg().MustGet(ctx, "transcribe.retryBaseMs", 1000).Int()) * time.Millisecond,
		Factor:      2,
		MaxDelay:    30 * time.Second,
		Jitter:      g.Cfg().MustGet(ctx, "transcribe.retryJitter", false).Bool(),
	}
	s.pipeline = NewPipeline(&dbAudioLoader{}, stt.NewClient(ctx), coordinator, policy)
	s.pipeline.report = func(fileId int64, pct int, msg string) {
		s.progress.Set(ctx, fileId, consts.StatusProcessing, pct, msg, nil)
	}
	s.pipeline.enrich = func(transcriptId int64) {
		s.enrichDetached(transcriptId)
	}

	concurrency := g.Cfg().MustGet(ctx, "transcribe.concurrency", 1).Int()
	s.queue = queue.New(ctx, concurrency, s.execute, s.onStatus)

	svc = s
	g.Log().Infof(ctx, "转写服务已初始化，并发上限 %d", concurrency)
	return nil
}

// Submit 提交转写任务。幂等：同一文件已在队列中时返回已有任务的状态，
// 不会重复入队。
func Submit(ctx context.Context, fileId int64, language string) (string, error) {
	if svc == nil {
		return "", gerror.New("转写服务未初始化")
	}
	count, err := dao.AudioFile.Ctx(ctx).
		Where(dao.AudioFile.Columns().Id, fileId).Count()
	if err != nil {
		return "", gerror.Wrap(err, "查询音频文件失败")
	}
	if count == 0 {
		return "", gerror.Newf("音频文件 %d 不存在，请先上传", fileId)
	}
	if language == "" {
		language = "auto"
	}
	svc.queue.Enqueue(fileId, language)
	return consts.StatusPending, nil
}

// CancelJob 取消某文件的转写任务。
func CancelJob(fileId int64) bool {
	if svc == nil {
		return false
	}
	return svc.queue.Cancel(fileId)
}

// CancelAll 取消全部任务。
func CancelAll() {
	if svc != nil {
		svc.queue.CancelAll()
	}
}

// IsQueued 判断某文件是否在队列中（pending 或 processing）。
func IsQueued(fileId int64) bool {
	return svc != nil && svc.queue.IsQueued(fileId)
}

// GetProgress 读取某文件的最近进度。
func GetProgress(ctx context.Context, fileId int64) (ProgressEntry, bool) {
	if svc == nil {
		return ProgressEntry{}, false
	}
	return svc.progress.Get(ctx, fileId)
}

// ReEnrich 手动重跑富化。只对已完成的 transcript 生效，
// 这是富化失败后唯一的重试途径（自动重试不存在）。
func ReEnrich(ctx context.Context, fileId int64) error {
	if svc == nil {
		return gerror.New("转写服务未初始化")
	}
	var transcript *entity.Transcript
	if err := dao.Transcript.Ctx(ctx).
		Where(dao.Transcript.Columns().FileId, fileId).Scan(&transcript); err != nil {
		return gerror.Wrap(err, "查询 transcript 失败")
	}
	if transcript == nil {
		return gerror.Newf("文件 %d 尚无转写记录", fileId)
	}
	if transcript.Status != consts.StatusCompleted {
		return gerror.Newf("转写尚未完成（当前状态 %s），无法富化", transcript.Status)
	}
	return svc.EnrichTranscript(ctx, transcript.Id)
}

// Recover 启动时恢复：把上次进程退出时滞留在 processing 的任务退回 pending
// 并重新入队，pending 的直接重新入队。
func Recover(ctx context.Context) {
	if svc == nil {
		return
	}
	var records []entity.Transcript
	if err := dao.Transcript.Ctx(ctx).
		WhereIn(dao.Transcript.Columns().Status, []string{consts.StatusPending, consts.StatusProcessing}).
		Scan(&records); err != nil {
		g.Log().Warningf(ctx, "恢复滞留任务失败: %v", err)
		return
	}
	for _, r := range records {
		if r.Status == consts.StatusProcessing {
			svc.coordinator.RevertPending(ctx, r.FileId)
		}
		svc.queue.Enqueue(r.FileId, r.Language)
	}
	if len(records) > 0 {
		g.Log().Infof(ctx, "已恢复滞留任务 %d 个", len(records))
	}
}

// execute 队列执行回调：驱动管线并把终态落到 transcript 行上。
func (s *Service) execute(ctx context.Context, job *queue.Job) (string, error) {
	// 终态落库不能被任务取消打断
	bg := context.WithoutCancel(ctx)

	if err := s.coordinator.MarkProcessing(bg, job.FileId, job.Language); err != nil {
		g.Log().Warningf(ctx, "[file:%d] 标记 processing 失败: %v", job.FileId, err)
	}

	outcome := s.pipeline.Run(ctx, job)
	switch outcome.Kind {
	case OutcomeSuccess:
		g.Log().Infof(ctx, "[file:%d] 转写完成，transcript=%d，句段 %d 条",
			job.FileId, outcome.TranscriptId, outcome.SegmentCount)
		return consts.StatusCompleted, nil
	case OutcomeCancelled:
		s.coordinator.RevertPending(bg, job.FileId)
		return consts.StatusCancelled, nil
	default:
		s.coordinator.MarkFailed(bg, job.FileId, outcome.Err)
		return consts.StatusFailed, outcome.Err
	}
}

// onStatus 队列状态通知：刷进度表 + 记日志。
func (s *Service) onStatus(ctx context.Context, fileId int64, status string, err error) {
	switch status {
	case consts.StatusPending:
		s.progress.Set(ctx, fileId, status, 0, "任务已入队", nil)
	case consts.StatusProcessing:
		s.progress.Set(ctx, fileId, status, 5, "任务开始执行", nil)
	case consts.StatusCompleted:
		s.progress.Set(ctx, fileId, status, 100, "转写完成", nil)
	case consts.StatusCancelled:
		// 取消的任务一律把 transcript 行退回 pending，排队中被取消的也不例外
		s.coordinator.RevertPending(ctx, fileId)
		s.progress.Set(ctx, fileId, status, 0, "任务已取消", nil)
	case consts.StatusFailed:
		s.progress.Set(ctx, fileId, status, 0, "转写失败", err)
	}
	if err != nil {
		g.Log().Warningf(ctx, "[file:%d] 任务状态变更: %s, err: %v", fileId, status, err)
		return
	}
	g.Log().Infof(ctx, "[file:%d] 任务状态变更: %s", fileId, status)
}

// enrichDetached 富化以游离任务执行：自带超时的后台 ctx，
// 错误只记日志，不回写转写终态，进程退出也不等它收尾。
func (s *Service) enrichDetached(transcriptId int64) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := s.EnrichTranscript(bgCtx, transcriptId); err != nil {
			g.Log().Warningf(bgCtx, "[transcript:%d] 富化失败（不影响转写结果）: %v", transcriptId, err)
		}
	}()
}

// dbAudioLoader 组合 audio_file 表与对象存储，为管线取音频。
type dbAudioLoader struct{}

func (l *dbAudioLoader) Load(ctx context.Context, fileId int64) (*AudioPayload, error) {
	var file *entity.AudioFile
	if err := dao.AudioFile.Ctx(ctx).
		Where(dao.AudioFile.Columns().Id, fileId).Scan(&file); err != nil {
		return nil, gerror.Wrap(err, "查询音频文件失败")
	}
	if file == nil {
		return nil, gerror.NewCodef(consts.CodeSourceMissing, "音频文件 %d 不存在", fileId)
	}
	data, err := volcengine.FetchAudio(ctx, file.ObjectKey)
	if err != nil {
		return nil, err
	}
	return &AudioPayload{FileName: file.Filename, Data: data}, nil
}
