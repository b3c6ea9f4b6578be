package linechat

import (
	"context"
	"sync"
	"time"
)

// Poller periodically syncs messages for one user and hands batches to a
// callback. The cursor is explicit state: it only ever advances to the
// maximum timestamp actually received, never to a locally generated clock,
// so a poll that races a concurrent send is corrected by the next poll.
type Poller struct {
	client   *Client
	userID   int64
	interval time.Duration
	onBatch  func([]Message)
	onError  func(error)

	mu     sync.Mutex
	cursor int64
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller builds a poller for userID starting at the given cursor.
// onError may be nil; sync failures are then dropped and retried next tick.
func NewPoller(c *Client, userID, cursor int64, interval time.Duration, onBatch func([]Message), onError func(error)) *Poller {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Poller{
		client:   c,
		userID:   userID,
		interval: interval,
		onBatch:  onBatch,
		onError:  onError,
		cursor:   cursor,
	}
}

// Cursor returns the highest timestamp consumed so far.
func (p *Poller) Cursor() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// PollOnce performs a single sync iteration and advances the cursor. Exposed
// so callers and tests can drive the loop deterministically.
func (p *Poller) PollOnce(ctx context.Context) error {
	msgs, err := p.client.Sync(ctx, p.userID, p.Cursor())
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		return nil
	}
	p.mu.Lock()
	for _, m := range msgs {
		if m.Timestamp > p.cursor {
			p.cursor = m.Timestamp
		}
	}
	p.mu.Unlock()
	if p.onBatch != nil {
		p.onBatch(msgs)
	}
	return nil
}

// Start launches the polling loop in a goroutine. Calling Start twice
// without an intervening Stop is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := p.PollOnce(ctx); err != nil && p.onError != nil {
					p.onError(err)
				}
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
