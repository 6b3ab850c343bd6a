package worker

import (
	"context"
	"log/slog"
	"sync"
)

// Task 背景工作，ctx 在 Stop 之後才會被取消
type Task func(ctx context.Context)

// Pool 固定大小的背景工作池，目前用於書籍快取的非同步回填
type Pool interface {
	// Submit 佇列已滿或已停止時回傳 false，不會阻塞呼叫端
	Submit(Task) bool
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n, queue int, logger *slog.Logger) Pool {
	if n <= 0 {
		n = 1
	}
	if queue < 0 {
		queue = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &pool{
		jobs:   make(chan Task, queue),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.loop()
	}
	return p
}

type pool struct {
	mu      sync.RWMutex
	stopped bool
	jobs    chan Task
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *slog.Logger
}

func (p *pool) loop() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.run(job)
	}
}

func (p *pool) run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker task panicked", "panic", r)
		}
	}()
	job(p.ctx)
}

func (p *pool) Submit(t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	select {
	case p.jobs <- t:
		return true
	default:
		p.logger.Warn("worker queue full, task dropped")
		return false
	}
}

// Stop 等待已排入的工作完成後才返回
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
	p.cancel()
}
