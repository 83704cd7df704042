package queue

import (
	"context"
	"sync"
	"time"

	"lingoplay-speech-service/internal/consts"
)

// StatusNotifier 任务状态变更回调 (fileId, status, err)。队列本身不落库，
// 所有副作用都通过回调暴露给观察者。
type StatusNotifier func(ctx context.Context, fileId int64, status string, err error)

// ExecuteFunc 任务执行回调。队列把任务放进 processing 槽位后调用，
// 回调内部需要自行观察 ctx 的取消信号，返回终态（completed/failed/cancelled）和错误。
type ExecuteFunc func(ctx context.Context, job *Job) (status string, err error)

// Job 队列中的一个转写任务。pending 期间归队列所有，
// 进入 processing 后所有权移交执行回调，到达终态后从内存中移除。
type Job struct {
	FileId    int64
	Language  string
	Status    string
	CreatedAt time.Time

	ctx    context.Context
	cancel context.CancelFunc
	handle *Handle
}

// Handle 取消句柄。对同一 fileId 重复入队会拿到同一个句柄。
type Handle struct {
	FileId int64
	q      *Queue
}

// Cancel 取消该句柄对应的任务。
func (h *Handle) Cancel() bool {
	return h.q.Cancel(h.FileId)
}

// Queue 有界并发转写任务队列。并发上限 N（默认 1，第三方转写接口默认串行以免触发限流），
// 同一 fileId 的任务合并，FIFO 准入。
type Queue struct {
	mu      sync.Mutex
	limit   int
	execute ExecuteFunc
	notify  StatusNotifier
	baseCtx context.Context

	jobs    map[int64]*Job // pending + processing
	waiting []int64        // pending 的 FIFO 等待序列
	running int
}

// New 创建队列。baseCtx 是所有任务 ctx 的父级，进程退出时统一取消。
func New(baseCtx context.Context, limit int, execute ExecuteFunc, notify StatusNotifier) *Queue {
	if limit <= 0 {
		limit = 1
	}
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &Queue{
		limit:   limit,
		execute: execute,
		notify:  notify,
		baseCtx: baseCtx,
		jobs:    make(map[int64]*Job),
	}
}

// Enqueue 入队。幂等：该 fileId 已有 pending/processing 任务时直接返回已有句柄，
// 不会产生重复任务。重新入队（取消后重试）视为一次全新准入，时间戳重新计。
func (q *Queue) Enqueue(fileId int64, language string) *Handle {
	q.mu.Lock()
	if existing, ok := q.jobs[fileId]; ok {
		h := existing.handle
		q.mu.Unlock()
		return h
	}

	ctx, cancel := context.WithCancel(q.baseCtx)
	job := &Job{
		FileId:    fileId,
		Language:  language,
		Status:    consts.StatusPending,
		CreatedAt: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
	}
	job.handle = &Handle{FileId: fileId, q: q}
	q.jobs[fileId] = job
	q.waiting = append(q.waiting, fileId)
	q.mu.Unlock()

	q.emit(fileId, consts.StatusPending, nil)
	q.dispatch()
	return job.handle
}

// Cancel 取消任务。pending 任务直接从等待序列移除并通知 cancelled；
// processing 任务只发取消信号，不阻塞调用方，终态由执行回调观察信号后给出。
func (q *Queue) Cancel(fileId int64) bool {
	q.mu.Lock()
	job, ok := q.jobs[fileId]
	if !ok {
		q.mu.Unlock()
		return false
	}

	if job.Status == consts.StatusPending {
		for i, id := range q.waiting {
			if id == fileId {
				q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
				break
			}
		}
		delete(q.jobs, fileId)
		job.Status = consts.StatusCancelled
		job.cancel()
		q.mu.Unlock()
		q.emit(fileId, consts.StatusCancelled, nil)
		return true
	}

	// processing：协作式取消
	job.cancel()
	q.mu.Unlock()
	return true
}

// CancelAll 取消所有任务。
func (q *Queue) CancelAll() {
	q.mu.Lock()
	ids := make([]int64, 0, len(q.jobs))
	for id := range q.jobs {
		ids = append(ids, id)
	}
	q.mu.Unlock()
	for _, id := range ids {
		q.Cancel(id)
	}
}

// IsQueued 判断该 fileId 是否有 pending/processing 任务。
func (q *Queue) IsQueued(fileId int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.jobs[fileId]
	return ok
}

// Stats 返回当前 (pending, processing) 数量。
func (q *Queue) Stats() (pending, processing int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiting), q.running
}

// dispatch 槽位空闲时按 FIFO 取最老的 pending 任务开始执行。
func (q *Queue) dispatch() {
	for {
		q.mu.Lock()
		if q.running >= q.limit || len(q.waiting) == 0 {
			q.mu.Unlock()
			return
		}
		fileId := q.waiting[0]
		q.waiting = q.waiting[1:]
		job := q.jobs[fileId]
		job.Status = consts.StatusProcessing
		q.running++
		q.mu.Unlock()

		go q.run(job)
	}
}

// run 执行单个任务并在结束后释放槽位、继续调度。
func (q *Queue) run(job *Job) {
	q.emit(job.FileId, consts.StatusProcessing, nil)

	status, err := q.execute(job.ctx, job)
	switch status {
	case consts.StatusCompleted, consts.StatusFailed, consts.StatusCancelled:
	default:
		status = consts.StatusFailed
	}

	q.mu.Lock()
	delete(q.jobs, job.FileId)
	q.running--
	q.mu.Unlock()
	job.cancel()

	q.emit(job.FileId, status, err)
	q.dispatch()
}

func (q *Queue) emit(fileId int64, status string, err error) {
	if q.notify != nil {
		q.notify(q.baseCtx, fileId, status, err)
	}
}
