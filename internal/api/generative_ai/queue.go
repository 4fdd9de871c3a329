package generativeAI

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/FACorreiaa/go-estate-assistant/app/observability/metrics"
)

const (
	defaultMaxAttempts    = 3
	defaultInitialBackoff = 5 * time.Second
)

// QueueConfig tunes retry behavior. Zero values fall back to the
// defaults (3 attempts, 5s initial backoff, doubling per attempt).
type QueueConfig struct {
	MaxAttempts    int
	InitialBackoff time.Duration
}

type completionResult struct {
	text string
	err  error
}

type queueItem struct {
	ctx    context.Context
	system string
	user   string
	result chan completionResult
}

// CompletionQueue serializes completion calls: strict FIFO, at most
// one in-flight call system-wide. It exists to protect the shared
// per-account rate limit, so every resolver in the process must share
// one instance. A failed item rejects only itself; draining continues.
type CompletionQueue struct {
	client         CompletionClient
	logger         *slog.Logger
	maxAttempts    int
	initialBackoff time.Duration

	mu       sync.Mutex
	pending  []*queueItem
	draining bool
}

func NewCompletionQueue(client CompletionClient, logger *slog.Logger, cfg QueueConfig) *CompletionQueue {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = defaultInitialBackoff
	}
	return &CompletionQueue{
		client:         client,
		logger:         logger,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
	}
}

// Enqueue appends the prompt to the queue and blocks until its turn is
// serviced. The call itself never runs inline, even when the queue is
// idle; that keeps ordering strict under bursts of concurrent enqueues.
func (q *CompletionQueue) Enqueue(ctx context.Context, system, user string) (string, error) {
	item := &queueItem{
		ctx:    ctx,
		system: system,
		user:   user,
		result: make(chan completionResult, 1),
	}

	q.mu.Lock()
	q.pending = append(q.pending, item)
	start := !q.draining
	if start {
		q.draining = true
	}
	depth := len(q.pending)
	q.mu.Unlock()

	metrics.Get().CompletionQueueDepth.Add(ctx, 1)
	q.logger.DebugContext(ctx, "completion enqueued", slog.Int("queue_depth", depth))

	if start {
		go q.drain()
	}

	res := <-item.result
	return res.text, res.err
}

// drain services items oldest-first until the queue is empty, then
// clears the draining flag. Runs on a single goroutine at a time.
func (q *CompletionQueue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		item := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		text, err := q.completeWithRetry(item.ctx, item.system, item.user)
		metrics.Get().CompletionQueueDepth.Add(item.ctx, -1)
		item.result <- completionResult{text: text, err: err}
	}
}

// completeWithRetry retries rate-limited calls with exponential
// backoff; any other error fails immediately. Exhausting attempts
// surfaces the last rate-limit error.
func (q *CompletionQueue) completeWithRetry(ctx context.Context, system, user string) (string, error) {
	backoff := q.initialBackoff
	var lastErr error
	for attempt := 1; attempt <= q.maxAttempts; attempt++ {
		text, err := q.client.Complete(ctx, system, user)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !IsRateLimited(err) || attempt == q.maxAttempts {
			return "", err
		}
		metrics.Get().CompletionRetriesTotal.Add(ctx, 1)
		q.logger.WarnContext(ctx, "completion rate limited, backing off",
			slog.Int("attempt", attempt),
			slog.Duration("backoff", backoff))
		time.Sleep(backoff)
		backoff *= 2
	}
	return "", lastErr
}
